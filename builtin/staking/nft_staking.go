// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/builtin/staking/principal"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// KindNFT is the kind of NFTStaking ledgers.
const KindNFT = "nft"

// NFTStaking stakes unique tokens, each one weighing a unit of principal.
// Rewards are paid out of the ledger's own balance of the reward token.
type NFTStaking struct {
	*ledger[*principal.IDSet]
	nft     NonFungibleCustody
	rewards FungibleCustody
	stakers *solidity.Mapping[*big.Int, thor.Address] // token id => staker
}

func NewNFTStaking(
	addr thor.Address,
	state *state.State,
	clk clock.Clock,
	nft NonFungibleCustody,
	rewards FungibleCustody,
	events *Events,
) *NFTStaking {
	l := newLedger(KindNFT, addr, state, clk, events, principal.NewIDSet)
	return &NFTStaking{
		ledger:  l,
		nft:     nft,
		rewards: rewards,
		stakers: solidity.NewMapping[*big.Int, thor.Address](l.ctx, slotStakers),
	}
}

// StakerOf returns the account that staked id, the zero address if id is not staked.
func (n *NFTStaking) StakerOf(id *big.Int) (thor.Address, error) {
	staker, err := n.stakers.Get(id)
	return staker, errors.Wrap(err, "get staker")
}

// StakeInfo returns the ids staked by addr and its rewards as if settled now.
func (n *NFTStaking) StakeInfo(addr thor.Address) (ids []*big.Int, rewards *big.Int, err error) {
	acc, err := n.Projected(addr)
	if err != nil {
		return nil, nil, err
	}
	return acc.Principal.List(), acc.UnclaimedRewards, nil
}

// Stake locks the given tokens of the caller. No id may be staked already, by anyone.
func (n *NFTStaking) Stake(caller thor.Address, ids []*big.Int) error {
	return n.atomic("stake", caller, func(now uint64) error {
		if len(ids) == 0 {
			return ErrNoTokensSupplied
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == nil || id.Sign() < 0 {
				return ErrInsufficientOwnedBalance
			}
			if seen[id.String()] {
				return ErrAlreadyStaked
			}
			seen[id.String()] = true

			staker, err := n.StakerOf(id)
			if err != nil {
				return err
			}
			if !staker.IsZero() {
				return ErrAlreadyStaked
			}
			owner, err := n.nft.OwnerOf(id)
			if err != nil {
				return errors.Wrap(err, "owner of token")
			}
			if owner != caller {
				return ErrInsufficientOwnedBalance
			}
		}

		acc, err := n.Account(caller)
		if err != nil {
			return err
		}
		if err := n.settle(acc, now); err != nil {
			return err
		}
		for _, id := range ids {
			acc.Principal.Insert(id)
			if err := n.stakers.Set(id, caller); err != nil {
				return errors.Wrap(err, "set staker")
			}
		}
		if err := n.setAccount(caller, acc); err != nil {
			return err
		}
		if err := n.totalStaked.Add(big.NewInt(int64(len(ids)))); err != nil {
			return errors.Wrap(err, "add total staked")
		}
		n.emit(EventStaked, caller, big.NewInt(int64(len(ids))), copyIDs(ids), now)
		for _, id := range ids {
			if err := n.nft.Transfer(caller, n.Address(), id); err != nil {
				return err
			}
		}
		return nil
	})
}

// Withdraw returns the given tokens to the caller, who must have staked every one of them.
func (n *NFTStaking) Withdraw(caller thor.Address, ids []*big.Int) error {
	return n.atomic("withdraw", caller, func(now uint64) error {
		acc, err := n.Account(caller)
		if err != nil {
			return err
		}
		if acc.Principal.IsEmpty() {
			return ErrNoTokensStaked
		}
		if len(ids) == 0 {
			return ErrNoTokensSupplied
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == nil || seen[id.String()] || !acc.Principal.Contains(id) {
				return ErrNotStakedByCaller
			}
			seen[id.String()] = true
		}

		if err := n.settle(acc, now); err != nil {
			return err
		}
		for _, id := range ids {
			acc.Principal.Remove(id)
			n.stakers.Delete(id)
		}
		if err := n.setAccount(caller, acc); err != nil {
			return err
		}
		if err := n.totalStaked.Sub(big.NewInt(int64(len(ids)))); err != nil {
			return errors.Wrap(err, "sub total staked")
		}
		n.emit(EventWithdrawn, caller, big.NewInt(int64(len(ids))), copyIDs(ids), now)
		for _, id := range ids {
			if err := n.nft.Transfer(n.Address(), caller, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClaimRewards pays the caller's rewards out of the ledger balance and returns the paid amount.
func (n *NFTStaking) ClaimRewards(caller thor.Address) (paid *big.Int, err error) {
	err = n.atomic("claimRewards", caller, func(now uint64) error {
		paid, err = n.claim(caller, now, n.rewardBalance, func(amount *big.Int) error {
			return n.rewards.Transfer(n.Address(), caller, amount)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

func (n *NFTStaking) rewardBalance() (*big.Int, error) {
	balance, err := n.rewards.BalanceOf(n.Address())
	return balance, errors.Wrap(err, "reward balance")
}

func copyIDs(ids []*big.Int) []*big.Int {
	out := make([]*big.Int, 0, len(ids))
	for _, id := range ids {
		out = append(out, new(big.Int).Set(id))
	}
	return out
}
