// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/test/datagen"
	"github.com/vechain/stakeledger/thor"
)

func (e *testEnv) multiHolder(t *testing.T, id, amount int64) thor.Address {
	addr := datagen.RandAddress()
	require.NoError(t, e.multi.Mint(addr, big.NewInt(id), big.NewInt(amount)))
	return addr
}

func TestMultiTokenStake(t *testing.T) {
	env := newTestEnv(t)
	ms := env.multiTokenStaking(t)
	holder := env.multiHolder(t, 7, 10)
	require.NoError(t, env.multi.Mint(holder, big.NewInt(2), big.NewInt(5)))

	assert.ErrorIs(t, ms.Stake(holder, big.NewInt(7), big.NewInt(0)), ErrBelowMinimumStake)
	assert.ErrorIs(t, ms.Stake(holder, big.NewInt(7), big.NewInt(11)), ErrInsufficientOwnedBalance)
	assert.ErrorIs(t, ms.Stake(holder, big.NewInt(3), big.NewInt(1)), ErrInsufficientOwnedBalance)

	require.NoError(t, ms.Stake(holder, big.NewInt(7), big.NewInt(4)))
	require.NoError(t, ms.Stake(holder, big.NewInt(2), big.NewInt(5)))
	require.NoError(t, ms.Stake(holder, big.NewInt(7), big.NewInt(1)))

	stakedIDs, amounts, err := ms.StakedIDsAndAmounts(holder)
	require.NoError(t, err)
	assertIDs(t, []int64{2, 7}, stakedIDs)
	require.Len(t, amounts, 2)
	assertBig(t, 5, amounts[0])
	assertBig(t, 5, amounts[1])

	bal, err := env.multi.BalanceOf(holder, big.NewInt(7))
	require.NoError(t, err)
	assertBig(t, 5, bal)
	bal, err = env.multi.BalanceOf(ms.Address(), big.NewInt(7))
	require.NoError(t, err)
	assertBig(t, 5, bal)

	total, err := ms.TotalStaked()
	require.NoError(t, err)
	assertBig(t, 10, total)
}

func TestMultiTokenWithdraw(t *testing.T) {
	env := newTestEnv(t)
	ms := env.multiTokenStaking(t)
	holder := env.multiHolder(t, 7, 10)

	assert.ErrorIs(t, ms.Withdraw(holder, big.NewInt(7), big.NewInt(1)), ErrNoTokensStaked)
	require.NoError(t, ms.Stake(holder, big.NewInt(7), big.NewInt(10)))

	assert.ErrorIs(t, ms.Withdraw(holder, big.NewInt(7), big.NewInt(0)), ErrZeroAmount)
	assert.ErrorIs(t, ms.Withdraw(holder, big.NewInt(8), big.NewInt(1)), ErrNotStakedByCaller)
	assert.ErrorIs(t, ms.Withdraw(holder, big.NewInt(7), big.NewInt(11)), ErrInsufficientStakedBalance)

	env.advance(3 * thor.SecondsPerHour)
	require.NoError(t, ms.Withdraw(holder, big.NewInt(7), big.NewInt(10)))

	stakedIDs, amounts, err := ms.StakedIDsAndAmounts(holder)
	require.NoError(t, err)
	assert.Empty(t, stakedIDs)
	assert.Empty(t, amounts)

	acc, err := ms.Account(holder)
	require.NoError(t, err)
	assertBig(t, 300, acc.UnclaimedRewards)

	bal, err := env.multi.BalanceOf(holder, big.NewInt(7))
	require.NoError(t, err)
	assertBig(t, 10, bal)
}

func TestMultiTokenClaimRewards(t *testing.T) {
	env := newTestEnv(t)
	ms := env.multiTokenStaking(t)
	holder := env.multiHolder(t, 1, 3)

	require.NoError(t, ms.Stake(holder, big.NewInt(1), big.NewInt(3)))
	env.advance(2 * thor.SecondsPerHour)

	_, err := ms.ClaimRewards(holder)
	assert.ErrorIs(t, err, ErrInsufficientFunding)

	require.NoError(t, env.token.Mint(ms.Address(), big.NewInt(60)))
	paid, err := ms.ClaimRewards(holder)
	require.NoError(t, err)
	assertBig(t, 60, paid)
	assertBig(t, 60, env.balance(t, holder))
	assertBig(t, 0, env.balance(t, ms.Address()))
}

func TestMultiTokenOtherCaller(t *testing.T) {
	env := newTestEnv(t)
	ms := env.multiTokenStaking(t)
	holder := env.multiHolder(t, 1, 3)
	other := env.multiHolder(t, 2, 3)

	require.NoError(t, ms.Stake(holder, big.NewInt(1), big.NewInt(3)))
	require.NoError(t, ms.Stake(other, big.NewInt(2), big.NewInt(3)))

	assert.ErrorIs(t, ms.Withdraw(other, big.NewInt(1), big.NewInt(1)), ErrNotStakedByCaller)

	stakedIDs, amounts, err := ms.StakedIDsAndAmounts(holder)
	require.NoError(t, err)
	assertIDs(t, []int64{1}, stakedIDs)
	assertBig(t, 3, amounts[0])
}
