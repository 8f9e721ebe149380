// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"

	"github.com/vechain/stakeledger/log"
)

var logger = log.WithContext("pkg", "clock")

// MaxOffset is the offset above which a warning is logged.
const MaxOffset = 5 * time.Second

// QueryFunc returns the offset of the local clock against a time server.
type QueryFunc func(server string) (time.Duration, error)

func queryNTP(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// NTP is the local clock corrected by the offset last measured against an NTP server.
type NTP struct {
	server string
	query  QueryFunc
	offset atomic.Int64 // nanoseconds
	now    func() time.Time
}

// NewNTP creates a NTP corrected clock. It starts with zero offset until the first Sync.
func NewNTP(server string) *NTP {
	return &NTP{server: server, query: queryNTP, now: time.Now}
}

func (c *NTP) Now() uint64 {
	return uint64(c.now().Add(c.Offset()).Unix())
}

// Offset returns the last measured offset.
func (c *NTP) Offset() time.Duration {
	return time.Duration(c.offset.Load())
}

// Sync measures the offset once. On failure the previous offset is kept.
func (c *NTP) Sync() error {
	offset, err := c.query(c.server)
	if err != nil {
		logger.Debug("failed to access NTP", "server", c.server, "err", err)
		return err
	}
	c.offset.Store(int64(offset))
	if offset > MaxOffset || offset < -MaxOffset {
		logger.Warn("clock offset detected", "offset", offset)
	}
	return nil
}

// Run syncs at every interval until ctx is done.
func (c *NTP) Run(ctx context.Context, interval time.Duration) {
	_ = c.Sync()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Sync()
		}
	}
}
