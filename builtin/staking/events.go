// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// Event names.
const (
	EventStaked         = "Staked"
	EventWithdrawn      = "Withdrawn"
	EventRewardsClaimed = "RewardsClaimed"
	EventCompounded     = "Compounded"
	EventFunded         = "Funded"
	EventParamUpdated   = "ParamUpdated"
)

// Event records a successful ledger operation.
type Event struct {
	Ledger  thor.Address
	Name    string
	Account thor.Address
	Amount  *big.Int   // staked, withdrawn, paid or funded amount, new value for ParamUpdated
	IDs     []*big.Int // token ids for id keyed ledgers
	Param   string     // parameter name for ParamUpdated
	Time    uint64
}

// Events collects the events of the operations sharing it.
// Events of a reverted operation are dropped. A nil *Events records nothing.
type Events struct {
	list []*Event
}

func NewEvents() *Events {
	return &Events{}
}

// List returns the recorded events in order.
func (e *Events) List() []*Event {
	if e == nil {
		return nil
	}
	return e.list
}

func (e *Events) emit(ev *Event) {
	if e != nil {
		e.list = append(e.list, ev)
	}
}

func (e *Events) mark() int {
	if e == nil {
		return 0
	}
	return len(e.list)
}

func (e *Events) revertTo(n int) {
	if e != nil && n < len(e.list) {
		e.list = e.list[:n]
	}
}
