// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/vechain/stakeledger/builtin/staking/reverts"

var (
	ErrNotMaster                   = reverts.New("caller is not the master")
	ErrNoTokensStaked              = reverts.New("you have no tokens staked")
	ErrNotStakedByCaller           = reverts.New("token is not staked by caller")
	ErrInsufficientStakedBalance   = reverts.New("insufficient staked balance")
	ErrInsufficientOwnedBalance    = reverts.New("can't stake tokens you don't own")
	ErrAlreadyStaked               = reverts.New("token is already staked")
	ErrBelowMinimumStake           = reverts.New("amount is below minimum stake")
	ErrNoRewardsToClaim            = reverts.New("you have no rewards to claim")
	ErrNoDeposit                   = reverts.New("you have no deposit")
	ErrCompoundTooSoon             = reverts.New("compounding is not allowed yet")
	ErrFundingAmountMustBePositive = reverts.New("funding amount must be positive")
	ErrInsufficientFunding         = reverts.New("insufficient reward funding")
	ErrZeroAmount                  = reverts.New("amount must be positive")
	ErrNoTokensSupplied            = reverts.New("no tokens supplied")
	ErrArithmeticOverflow          = reverts.New("reward arithmetic overflow")
)
