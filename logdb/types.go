// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// Event is a ledger event as stored in the db.
type Event struct {
	OpNum   uint32
	Index   uint32
	Ledger  thor.Address
	Name    string
	Account thor.Address
	Amount  *big.Int
	IDs     []*big.Int
	Param   string
	Time    uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds event time in unix seconds, both ends included.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter selects events. Nil fields match everything.
type EventFilter struct {
	Ledger  *thor.Address
	Account *thor.Address
	Name    string
	Range   *Range
	Options *Options
	Order   Order // default asc
}
