// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/stakeledger/metrics"

var (
	metricStorageLoads   = metrics.LazyLoadCounterVec("state_storage_load_count", []string{"source"})
	metricCommittedSlots = metrics.LazyLoadCounter("state_committed_slot_count")
)
