// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/vechain/stakeledger/metrics"
)

var (
	metricWrittenEvents        = metrics.LazyLoadCounter("logdb_written_events_count")
	metricEventQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter    = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricOffsetBucket         = metrics.LazyLoadHistogram("logdb_query_offset_bucket", []int64{
		0, 1_000, 5_000, 10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000,
	})
	metricLimitBucket = metrics.LazyLoadHistogram("logdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if !metrics.IsEnabled() {
		return
	}

	paramsUsed := make([]string, 0)
	if filter.Ledger != nil {
		paramsUsed = append(paramsUsed, "ledger")
	}
	if filter.Account != nil {
		paramsUsed = append(paramsUsed, "account")
	}
	if filter.Name != "" {
		paramsUsed = append(paramsUsed, "name")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options == nil {
		return
	}
	offset := filter.Options.Offset
	if offset > 1_000_000 {
		offset = 1_000_001
	}
	metricOffsetBucket().Observe(int64(offset))

	limit := filter.Options.Limit
	if limit > 1000 {
		limit = 1001
	}
	metricLimitBucket().Observe(int64(limit))
}
