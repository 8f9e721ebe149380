// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/builtin/staking/principal"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// ledger is the accrual engine shared by all variants.
type ledger[P principal.Pointer] struct {
	kind         string
	ctx          *solidity.Context
	clock        clock.Clock
	events       *Events
	params       *Params
	accounts     *solidity.Mapping[thor.Address, *Account[P]]
	totalStaked  *solidity.Uint256
	newPrincipal func() P
}

func newLedger[P principal.Pointer](
	kind string,
	addr thor.Address,
	state *state.State,
	clk clock.Clock,
	events *Events,
	newPrincipal func() P,
) *ledger[P] {
	ctx := solidity.NewContext(addr, state)
	return &ledger[P]{
		kind:         kind,
		ctx:          ctx,
		clock:        clk,
		events:       events,
		params:       newParams(ctx, clk, events),
		accounts:     solidity.NewMapping[thor.Address, *Account[P]](ctx, slotAccounts),
		totalStaked:  solidity.NewUint256(ctx, slotTotalStaked),
		newPrincipal: newPrincipal,
	}
}

// Address returns the address holding the ledger storage and custody.
func (l *ledger[P]) Address() thor.Address {
	return l.ctx.Address()
}

// Kind returns the variant name.
func (l *ledger[P]) Kind() string {
	return l.kind
}

func (l *ledger[P]) Params() *Params {
	return l.params
}

// TotalStaked returns the magnitude staked by all accounts.
func (l *ledger[P]) TotalStaked() (*big.Int, error) {
	v, err := l.totalStaked.Get()
	return v, errors.Wrap(err, "get total staked")
}

// Account returns the stored account of addr, as of its last settlement.
func (l *ledger[P]) Account(addr thor.Address) (*Account[P], error) {
	acc, err := l.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	var none P
	if acc.Principal == none {
		acc.Principal = l.newPrincipal()
	}
	if acc.UnclaimedRewards == nil {
		acc.UnclaimedRewards = new(big.Int)
	}
	return acc, nil
}

// Projected returns the account of addr settled at the current clock, without storing it.
func (l *ledger[P]) Projected(addr thor.Address) (*Account[P], error) {
	acc, err := l.Account(addr)
	if err != nil {
		return nil, err
	}
	if err := l.settle(acc, l.clock.Now()); err != nil {
		return nil, err
	}
	return acc, nil
}

func (l *ledger[P]) setAccount(addr thor.Address, acc *Account[P]) error {
	if acc.IsEmpty() {
		l.accounts.Delete(addr)
		return nil
	}
	return errors.Wrap(l.accounts.Set(addr, acc), "set account")
}

// pending returns the rewards accrued by acc since its last settlement.
// Only whole hours count.
func (l *ledger[P]) pending(acc *Account[P], now uint64) (*big.Int, error) {
	if now <= acc.TimeOfLastUpdate || acc.Principal.IsEmpty() {
		return new(big.Int), nil
	}
	hours := (now - acc.TimeOfLastUpdate) / thor.SecondsPerHour
	if hours == 0 {
		return new(big.Int), nil
	}
	rate, err := l.params.RewardRatePerHour()
	if err != nil {
		return nil, err
	}
	quantum, err := l.params.RewardQuantum()
	if err != nil {
		return nil, err
	}
	return accrue(acc.Principal.Magnitude(), rate, hours, quantum)
}

// accrue computes magnitude * rate * hours / quantum in 256 bits.
func accrue(magnitude, rate *big.Int, hours uint64, quantum *big.Int) (*big.Int, error) {
	m, overflow := uint256.FromBig(magnitude)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	r, overflow := uint256.FromBig(rate)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	q, overflow := uint256.FromBig(quantum)
	if overflow || q.IsZero() {
		return nil, ErrArithmeticOverflow
	}

	delta, overflow := new(uint256.Int).MulOverflow(m, r)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	if _, overflow = delta.MulOverflow(delta, uint256.NewInt(hours)); overflow {
		return nil, ErrArithmeticOverflow
	}
	return delta.Div(delta, q).ToBig(), nil
}

// settle moves pending rewards into the unclaimed balance and stamps now.
// Calling it twice at the same time adds nothing the second time.
func (l *ledger[P]) settle(acc *Account[P], now uint64) error {
	delta, err := l.pending(acc, now)
	if err != nil {
		return err
	}
	if delta.Sign() > 0 {
		sum := new(big.Int).Add(acc.UnclaimedRewards, delta)
		if sum.BitLen() > 256 {
			return ErrArithmeticOverflow
		}
		acc.UnclaimedRewards = sum
	}
	// a clock moving backwards must not reopen a settled window
	if now > acc.TimeOfLastUpdate {
		acc.TimeOfLastUpdate = now
	}
	return nil
}

// atomic runs fn against a checkpoint, reading the clock once.
// Any error reverts every storage write and event of fn.
func (l *ledger[P]) atomic(op string, caller thor.Address, fn func(now uint64) error) error {
	st := l.ctx.State()
	checkpoint := st.NewCheckpoint()
	mark := l.events.mark()
	now := l.clock.Now()

	if err := fn(now); err != nil {
		st.RevertTo(checkpoint)
		l.events.revertTo(mark)
		logger.Debug("operation reverted", "ledger", l.kind, "op", op, "caller", caller, "err", err)
		return err
	}
	logger.Debug("operation done", "ledger", l.kind, "op", op, "caller", caller, "time", now)
	return nil
}

func (l *ledger[P]) emit(name string, account thor.Address, amount *big.Int, ids []*big.Int, now uint64) {
	l.events.emit(&Event{
		Ledger:  l.Address(),
		Name:    name,
		Account: account,
		Amount:  amount,
		IDs:     ids,
		Time:    now,
	})
}

// claim settles caller and pays out its unclaimed rewards.
// available bounds the payout, pay performs bookkeeping and the transfer after the account is stored.
func (l *ledger[P]) claim(
	caller thor.Address,
	now uint64,
	available func() (*big.Int, error),
	pay func(amount *big.Int) error,
) (*big.Int, error) {
	acc, err := l.Account(caller)
	if err != nil {
		return nil, err
	}
	if err := l.settle(acc, now); err != nil {
		return nil, err
	}
	reward := acc.UnclaimedRewards
	if reward.Sign() == 0 {
		return nil, ErrNoRewardsToClaim
	}
	avail, err := available()
	if err != nil {
		return nil, err
	}
	if avail.Cmp(reward) < 0 {
		return nil, ErrInsufficientFunding
	}

	acc.UnclaimedRewards = new(big.Int)
	if err := l.setAccount(caller, acc); err != nil {
		return nil, err
	}
	l.emit(EventRewardsClaimed, caller, reward, nil, now)
	if err := pay(reward); err != nil {
		return nil, err
	}
	return reward, nil
}
