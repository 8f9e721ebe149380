// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the time source of the staking ledgers.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns the current time in unix seconds.
type Clock interface {
	Now() uint64
}

// System is the local wall clock.
type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Manual is a clock moved only by its owner. Safe for concurrent use.
type Manual struct {
	now atomic.Uint64
}

// NewManual creates a manual clock starting at now.
func NewManual(now uint64) *Manual {
	m := &Manual{}
	m.now.Store(now)
	return m
}

func (m *Manual) Now() uint64 {
	return m.now.Load()
}

// Set moves the clock to now. Moving backwards is allowed.
func (m *Manual) Set(now uint64) {
	m.now.Store(now)
}

// Advance moves the clock forward by seconds and returns the new time.
func (m *Manual) Advance(seconds uint64) uint64 {
	return m.now.Add(seconds)
}
