// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "context"

// LogDB defines the interface for ledger event log operations.
type LogDB interface {
	// FilterEvents filters events based on the given criteria.
	FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error)

	// NewestOpNum returns the number of the newest operation with logged events.
	NewestOpNum() (uint32, error)

	// Write stores the events of one operation atomically.
	Write(opNum uint32, events []*Event) error

	// Path returns the database path.
	Path() string

	// Close closes the log database.
	Close() error
}
