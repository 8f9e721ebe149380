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

func (e *testEnv) nftHolder(t *testing.T, tokenIDs ...int64) thor.Address {
	addr := datagen.RandAddress()
	for _, id := range tokenIDs {
		require.NoError(t, e.nft.Mint(addr, big.NewInt(id)))
	}
	return addr
}

func TestNFTStake(t *testing.T) {
	env := newTestEnv(t)
	ns := env.nftStaking(t)
	holder := env.nftHolder(t, 1, 2, 3)

	require.NoError(t, ns.Stake(holder, ids(3, 1)))

	staked, rewards, err := ns.StakeInfo(holder)
	require.NoError(t, err)
	assertIDs(t, []int64{1, 3}, staked)
	assertBig(t, 0, rewards)

	for _, id := range []int64{1, 3} {
		owner, err := env.nft.OwnerOf(big.NewInt(id))
		require.NoError(t, err)
		assert.Equal(t, ns.Address(), owner)

		staker, err := ns.StakerOf(big.NewInt(id))
		require.NoError(t, err)
		assert.Equal(t, holder, staker)
	}
	staker, err := ns.StakerOf(big.NewInt(2))
	require.NoError(t, err)
	assert.True(t, staker.IsZero())

	total, err := ns.TotalStaked()
	require.NoError(t, err)
	assertBig(t, 2, total)

	events := env.events.List()
	require.Len(t, events, 1)
	assert.Equal(t, EventStaked, events[0].Name)
	assertBig(t, 2, events[0].Amount)
	assertIDs(t, []int64{3, 1}, events[0].IDs)
}

func TestNFTStakeErrors(t *testing.T) {
	env := newTestEnv(t)
	ns := env.nftStaking(t)
	holder := env.nftHolder(t, 1, 2)
	other := env.nftHolder(t, 5)

	assert.ErrorIs(t, ns.Stake(holder, nil), ErrNoTokensSupplied)
	assert.ErrorIs(t, ns.Stake(holder, ids(1, 1)), ErrAlreadyStaked)
	assert.ErrorIs(t, ns.Stake(holder, ids(1, 5)), ErrInsufficientOwnedBalance)
	assert.ErrorIs(t, ns.Stake(holder, ids(9)), ErrInsufficientOwnedBalance)

	require.NoError(t, ns.Stake(holder, ids(1)))
	assert.ErrorIs(t, ns.Stake(holder, ids(2, 1)), ErrAlreadyStaked)
	assert.ErrorIs(t, ns.Stake(other, ids(1)), ErrAlreadyStaked)

	// the failed batch left token 2 with its owner
	owner, err := env.nft.OwnerOf(big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, holder, owner)
	assert.Len(t, env.events.List(), 1)
}

func TestNFTWithdrawByOtherCaller(t *testing.T) {
	env := newTestEnv(t)
	ns := env.nftStaking(t)
	holder := env.nftHolder(t, 3, 4)
	other := env.nftHolder(t, 7)

	require.NoError(t, ns.Stake(holder, ids(3, 4)))

	assert.ErrorIs(t, ns.Withdraw(other, ids(3, 4)), ErrNoTokensStaked)

	require.NoError(t, ns.Stake(other, ids(7)))
	assert.ErrorIs(t, ns.Withdraw(other, ids(3, 4)), ErrNotStakedByCaller)

	staked, _, err := ns.StakeInfo(holder)
	require.NoError(t, err)
	assertIDs(t, []int64{3, 4}, staked)
	for _, id := range []int64{3, 4} {
		staker, err := ns.StakerOf(big.NewInt(id))
		require.NoError(t, err)
		assert.Equal(t, holder, staker)
	}
}

func TestNFTWithdraw(t *testing.T) {
	env := newTestEnv(t)
	ns := env.nftStaking(t)
	holder := env.nftHolder(t, 1, 2, 3)

	require.NoError(t, ns.Stake(holder, ids(1, 2, 3)))
	assert.ErrorIs(t, ns.Withdraw(holder, nil), ErrNoTokensSupplied)
	assert.ErrorIs(t, ns.Withdraw(holder, ids(4)), ErrNotStakedByCaller)
	assert.ErrorIs(t, ns.Withdraw(holder, ids(2, 2)), ErrNotStakedByCaller)

	env.advance(2 * thor.SecondsPerHour)
	require.NoError(t, ns.Withdraw(holder, ids(2)))

	staked, rewards, err := ns.StakeInfo(holder)
	require.NoError(t, err)
	assertIDs(t, []int64{1, 3}, staked)
	// three tokens for two hours at 10 per token per hour
	assertBig(t, 60, rewards)

	owner, err := env.nft.OwnerOf(big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, holder, owner)
	staker, err := ns.StakerOf(big.NewInt(2))
	require.NoError(t, err)
	assert.True(t, staker.IsZero())

	// a withdrawn token may be staked again
	require.NoError(t, ns.Stake(holder, ids(2)))
}

func TestNFTClaimRewards(t *testing.T) {
	env := newTestEnv(t)
	ns := env.nftStaking(t)
	holder := env.nftHolder(t, 1, 2)

	require.NoError(t, ns.Stake(holder, ids(1, 2)))
	_, err := ns.ClaimRewards(holder)
	assert.ErrorIs(t, err, ErrNoRewardsToClaim)

	env.advance(5 * thor.SecondsPerHour)
	_, err = ns.ClaimRewards(holder)
	assert.ErrorIs(t, err, ErrInsufficientFunding)

	_, rewards, err := ns.StakeInfo(holder)
	require.NoError(t, err)
	assertBig(t, 100, rewards)

	require.NoError(t, env.token.Mint(ns.Address(), big.NewInt(1000)))
	paid, err := ns.ClaimRewards(holder)
	require.NoError(t, err)
	assertBig(t, 100, paid)
	assertBig(t, 100, env.balance(t, holder))
	assertBig(t, 900, env.balance(t, ns.Address()))

	_, err = ns.ClaimRewards(holder)
	assert.ErrorIs(t, err, ErrNoRewardsToClaim)
}

func TestNFTWithdrawAllKeepsRewards(t *testing.T) {
	env := newTestEnv(t)
	ns := env.nftStaking(t)
	holder := env.nftHolder(t, 1)

	require.NoError(t, ns.Stake(holder, ids(1)))
	env.advance(thor.SecondsPerHour)
	require.NoError(t, ns.Withdraw(holder, ids(1)))

	staked, rewards, err := ns.StakeInfo(holder)
	require.NoError(t, err)
	assert.Empty(t, staked)
	assertBig(t, 10, rewards)

	total, err := ns.TotalStaked()
	require.NoError(t, err)
	assertBig(t, 0, total)
}
