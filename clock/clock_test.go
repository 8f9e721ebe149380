// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	var c Clock = NewManual(100)
	assert.Equal(t, uint64(100), c.Now())

	m := c.(*Manual)
	assert.Equal(t, uint64(3700), m.Advance(3600))
	assert.Equal(t, uint64(3700), c.Now())

	m.Set(50)
	assert.Equal(t, uint64(50), c.Now())
}

func TestSystem(t *testing.T) {
	before := uint64(time.Now().Unix())
	now := System{}.Now()
	assert.GreaterOrEqual(t, now, before)
}

func TestNTPOffset(t *testing.T) {
	base := time.Unix(1_000_000, 0)
	c := NewNTP("test")
	c.now = func() time.Time { return base }

	assert.Equal(t, uint64(1_000_000), c.Now())

	c.query = func(string) (time.Duration, error) { return 90 * time.Second, nil }
	assert.NoError(t, c.Sync())
	assert.Equal(t, 90*time.Second, c.Offset())
	assert.Equal(t, uint64(1_000_090), c.Now())

	// failures keep the last offset
	c.query = func(string) (time.Duration, error) { return 0, errors.New("unreachable") }
	assert.Error(t, c.Sync())
	assert.Equal(t, uint64(1_000_090), c.Now())
}

func TestNTPRunStops(t *testing.T) {
	c := NewNTP("test")
	calls := make(chan struct{}, 16)
	c.query = func(string) (time.Duration, error) {
		select {
		case calls <- struct{}{}:
		default:
		}
		return time.Second, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, time.Millisecond)
		close(done)
	}()

	<-calls
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, time.Second, c.Offset())
}
