// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/staking/principal"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// KindMultiToken is the kind of MultiTokenStaking ledgers.
const KindMultiToken = "multitoken"

// MultiTokenStaking stakes quantities of semi-fungible tokens. Every unit of any id
// weighs the same. Rewards are paid out of the ledger's own balance of the reward token.
type MultiTokenStaking struct {
	*ledger[*principal.IDQuantities]
	tokens  MultiTokenCustody
	rewards FungibleCustody
}

func NewMultiTokenStaking(
	addr thor.Address,
	state *state.State,
	clk clock.Clock,
	tokens MultiTokenCustody,
	rewards FungibleCustody,
	events *Events,
) *MultiTokenStaking {
	return &MultiTokenStaking{
		ledger:  newLedger(KindMultiToken, addr, state, clk, events, principal.NewIDQuantities),
		tokens:  tokens,
		rewards: rewards,
	}
}

// StakedIDsAndAmounts returns the ids staked by addr with their quantities, index aligned.
func (m *MultiTokenStaking) StakedIDsAndAmounts(addr thor.Address) (ids, amounts []*big.Int, err error) {
	acc, err := m.Account(addr)
	if err != nil {
		return nil, nil, err
	}
	ids, amounts = acc.Principal.List()
	return ids, amounts, nil
}

// Stake locks amount of token id held by the caller.
func (m *MultiTokenStaking) Stake(caller thor.Address, id, amount *big.Int) error {
	return m.atomic("stake", caller, func(now uint64) error {
		if id == nil || id.Sign() < 0 {
			return ErrNoTokensSupplied
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrBelowMinimumStake
		}
		balance, err := m.tokens.BalanceOf(caller, id)
		if err != nil {
			return errors.Wrap(err, "balance of caller")
		}
		if balance.Cmp(amount) < 0 {
			return ErrInsufficientOwnedBalance
		}

		acc, err := m.Account(caller)
		if err != nil {
			return err
		}
		if err := m.settle(acc, now); err != nil {
			return err
		}
		acc.Principal.Add(id, amount)
		if err := m.setAccount(caller, acc); err != nil {
			return err
		}
		if err := m.totalStaked.Add(amount); err != nil {
			return errors.Wrap(err, "add total staked")
		}
		m.emit(EventStaked, caller, amount, []*big.Int{new(big.Int).Set(id)}, now)
		return m.tokens.Transfer(caller, m.Address(), id, amount)
	})
}

// Withdraw returns amount of token id to the caller.
func (m *MultiTokenStaking) Withdraw(caller thor.Address, id, amount *big.Int) error {
	return m.atomic("withdraw", caller, func(now uint64) error {
		acc, err := m.Account(caller)
		if err != nil {
			return err
		}
		if acc.Principal.IsEmpty() {
			return ErrNoTokensStaked
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrZeroAmount
		}
		if id == nil {
			return ErrNotStakedByCaller
		}
		staked := acc.Principal.Get(id)
		if staked.Sign() == 0 {
			return ErrNotStakedByCaller
		}
		if staked.Cmp(amount) < 0 {
			return ErrInsufficientStakedBalance
		}

		if err := m.settle(acc, now); err != nil {
			return err
		}
		acc.Principal.Sub(id, amount)
		if err := m.setAccount(caller, acc); err != nil {
			return err
		}
		if err := m.totalStaked.Sub(amount); err != nil {
			return errors.Wrap(err, "sub total staked")
		}
		m.emit(EventWithdrawn, caller, amount, []*big.Int{new(big.Int).Set(id)}, now)
		return m.tokens.Transfer(m.Address(), caller, id, amount)
	})
}

// ClaimRewards pays the caller's rewards out of the ledger balance and returns the paid amount.
func (m *MultiTokenStaking) ClaimRewards(caller thor.Address) (paid *big.Int, err error) {
	err = m.atomic("claimRewards", caller, func(now uint64) error {
		paid, err = m.claim(caller, now, m.rewardBalance, func(amount *big.Int) error {
			return m.rewards.Transfer(m.Address(), caller, amount)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

func (m *MultiTokenStaking) rewardBalance() (*big.Int, error) {
	balance, err := m.rewards.BalanceOf(m.Address())
	return balance, errors.Wrap(err, "reward balance")
}
