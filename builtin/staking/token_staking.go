// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/staking/principal"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// KindToken is the kind of TokenStaking ledgers.
const KindToken = "token"

// TokenStaking stakes a fungible token and pays rewards in the same token,
// out of a pool funded by anyone.
type TokenStaking struct {
	*ledger[*principal.Scalar]
	token   FungibleCustody
	funding *fundingPool
}

// NewTokenStaking binds the ledger at addr to state. token is both the staked and the reward asset.
func NewTokenStaking(addr thor.Address, state *state.State, clk clock.Clock, token FungibleCustody, events *Events) *TokenStaking {
	l := newLedger(KindToken, addr, state, clk, events, principal.NewScalar)
	return &TokenStaking{
		ledger:  l,
		token:   token,
		funding: newFundingPool(l.ctx),
	}
}

// TotalFunding returns the reward tokens funded and not yet paid.
func (t *TokenStaking) TotalFunding() (*big.Int, error) {
	return t.funding.Total()
}

// Stake locks amount of the caller's tokens. The first deposit must reach the minimum stake.
func (t *TokenStaking) Stake(caller thor.Address, amount *big.Int) error {
	return t.atomic("stake", caller, func(now uint64) error {
		if amount == nil || amount.Sign() <= 0 {
			return ErrBelowMinimumStake
		}
		acc, err := t.Account(caller)
		if err != nil {
			return err
		}
		if acc.Principal.IsEmpty() {
			minStake, err := t.params.MinStake()
			if err != nil {
				return err
			}
			if amount.Cmp(minStake) < 0 {
				return ErrBelowMinimumStake
			}
		}
		balance, err := t.token.BalanceOf(caller)
		if err != nil {
			return errors.Wrap(err, "balance of caller")
		}
		if balance.Cmp(amount) < 0 {
			return ErrInsufficientOwnedBalance
		}

		if err := t.settle(acc, now); err != nil {
			return err
		}
		acc.Principal.Add(amount)
		if err := t.setAccount(caller, acc); err != nil {
			return err
		}
		if err := t.totalStaked.Add(amount); err != nil {
			return errors.Wrap(err, "add total staked")
		}
		t.emit(EventStaked, caller, amount, nil, now)
		return t.token.Transfer(caller, t.Address(), amount)
	})
}

// Withdraw returns amount of staked tokens to the caller.
func (t *TokenStaking) Withdraw(caller thor.Address, amount *big.Int) error {
	return t.atomic("withdraw", caller, func(now uint64) error {
		acc, err := t.Account(caller)
		if err != nil {
			return err
		}
		if acc.Principal.IsEmpty() {
			return ErrNoTokensStaked
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrZeroAmount
		}
		if acc.Principal.Magnitude().Cmp(amount) < 0 {
			return ErrInsufficientStakedBalance
		}

		if err := t.settle(acc, now); err != nil {
			return err
		}
		acc.Principal.Sub(amount)
		if err := t.setAccount(caller, acc); err != nil {
			return err
		}
		if err := t.totalStaked.Sub(amount); err != nil {
			return errors.Wrap(err, "sub total staked")
		}
		t.emit(EventWithdrawn, caller, amount, nil, now)
		return t.token.Transfer(t.Address(), caller, amount)
	})
}

// WithdrawAll returns the whole stake and pays all rewards.
// It returns the withdrawn principal and the paid rewards.
func (t *TokenStaking) WithdrawAll(caller thor.Address) (withdrawn, paid *big.Int, err error) {
	err = t.atomic("withdrawAll", caller, func(now uint64) error {
		acc, err := t.Account(caller)
		if err != nil {
			return err
		}
		if acc.Principal.IsEmpty() {
			return ErrNoDeposit
		}
		if err := t.settle(acc, now); err != nil {
			return err
		}
		withdrawn = acc.Principal.Magnitude()
		paid = acc.UnclaimedRewards
		if paid.Sign() > 0 {
			funding, err := t.funding.Total()
			if err != nil {
				return err
			}
			if funding.Cmp(paid) < 0 {
				return ErrInsufficientFunding
			}
		}

		acc.Principal = principal.NewScalar()
		acc.UnclaimedRewards = new(big.Int)
		if err := t.setAccount(caller, acc); err != nil {
			return err
		}
		if err := t.totalStaked.Sub(withdrawn); err != nil {
			return errors.Wrap(err, "sub total staked")
		}
		t.emit(EventWithdrawn, caller, withdrawn, nil, now)
		if paid.Sign() > 0 {
			if err := t.funding.Sub(paid); err != nil {
				return err
			}
			t.emit(EventRewardsClaimed, caller, paid, nil, now)
		}
		return t.token.Transfer(t.Address(), caller, new(big.Int).Add(withdrawn, paid))
	})
	if err != nil {
		return nil, nil, err
	}
	return
}

// ClaimRewards pays the caller's rewards out of the funding pool and returns the paid amount.
func (t *TokenStaking) ClaimRewards(caller thor.Address) (paid *big.Int, err error) {
	err = t.atomic("claimRewards", caller, func(now uint64) error {
		paid, err = t.claim(caller, now, t.funding.Total, func(amount *big.Int) error {
			if err := t.funding.Sub(amount); err != nil {
				return err
			}
			return t.token.Transfer(t.Address(), caller, amount)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// Compound restakes the caller's rewards once the cooldown since its last settlement passed.
// The rewards move from the funding pool into principal, so the pool must cover them.
func (t *TokenStaking) Compound(caller thor.Address) (compounded *big.Int, err error) {
	err = t.atomic("compound", caller, func(now uint64) error {
		acc, err := t.Account(caller)
		if err != nil {
			return err
		}
		if acc.Principal.IsEmpty() {
			return ErrNoDeposit
		}
		cooldown, err := t.params.CompoundCooldown()
		if err != nil {
			return err
		}
		if now < acc.TimeOfLastUpdate || now-acc.TimeOfLastUpdate < cooldown {
			return ErrCompoundTooSoon
		}

		if err := t.settle(acc, now); err != nil {
			return err
		}
		compounded = acc.UnclaimedRewards
		if err := t.funding.Sub(compounded); err != nil {
			return err
		}
		acc.Principal.Add(compounded)
		acc.UnclaimedRewards = new(big.Int)
		if err := t.setAccount(caller, acc); err != nil {
			return err
		}
		if err := t.totalStaked.Add(compounded); err != nil {
			return errors.Wrap(err, "add total staked")
		}
		t.emit(EventCompounded, caller, compounded, nil, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return compounded, nil
}

// Fund deposits reward tokens into the pool. Anyone may fund.
func (t *TokenStaking) Fund(caller thor.Address, amount *big.Int) error {
	return t.atomic("fund", caller, func(now uint64) error {
		if amount == nil || amount.Sign() <= 0 {
			return ErrFundingAmountMustBePositive
		}
		balance, err := t.token.BalanceOf(caller)
		if err != nil {
			return errors.Wrap(err, "balance of caller")
		}
		if balance.Cmp(amount) < 0 {
			return ErrInsufficientOwnedBalance
		}
		if err := t.funding.Add(amount); err != nil {
			return err
		}
		t.emit(EventFunded, caller, amount, nil, now)
		return t.token.Transfer(caller, t.Address(), amount)
	})
}

// DepositInfo returns the stake of addr and its rewards as if settled now.
func (t *TokenStaking) DepositInfo(addr thor.Address) (staked, rewards *big.Int, err error) {
	acc, err := t.Projected(addr)
	if err != nil {
		return nil, nil, err
	}
	return acc.Principal.Magnitude(), acc.UnclaimedRewards, nil
}

// CompoundTimer returns the seconds left before addr may compound, zero if it may already
// or has nothing staked.
func (t *TokenStaking) CompoundTimer(addr thor.Address) (uint64, error) {
	acc, err := t.Account(addr)
	if err != nil {
		return 0, err
	}
	if acc.Principal.IsEmpty() {
		return 0, nil
	}
	cooldown, err := t.params.CompoundCooldown()
	if err != nil {
		return 0, err
	}
	now := t.clock.Now()
	if now < acc.TimeOfLastUpdate {
		// clock went back, Compound rejects until it passes the last update
		return saturatingAdd(acc.TimeOfLastUpdate-now, cooldown), nil
	}
	if elapsed := now - acc.TimeOfLastUpdate; elapsed < cooldown {
		return cooldown - elapsed, nil
	}
	return 0, nil
}

func saturatingAdd(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return math.MaxUint64
}
