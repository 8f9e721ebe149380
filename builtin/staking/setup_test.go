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

	"github.com/vechain/stakeledger/builtin/token"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/test/datagen"
	"github.com/vechain/stakeledger/thor"
)

const startTime = uint64(1_700_000_000)

var (
	tokenLedgerAddr = thor.LedgerAddress("token-staking")
	nftLedgerAddr   = thor.LedgerAddress("nft-staking")
	multiLedgerAddr = thor.LedgerAddress("multi-token-staking")
)

type testEnv struct {
	state  *state.State
	clock  *clock.Manual
	events *Events
	master thor.Address

	token *token.Fungible
	nft   *token.NonFungible
	multi *token.MultiToken
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db, nil)
	return &testEnv{
		state:  st,
		clock:  clock.NewManual(startTime),
		events: NewEvents(),
		master: datagen.RandAddress(),
		token:  token.NewFungible(thor.LedgerAddress("token"), st),
		nft:    token.NewNonFungible(thor.LedgerAddress("nft"), st),
		multi:  token.NewMultiToken(thor.LedgerAddress("multi"), st),
	}
}

func (e *testEnv) tokenStaking(t *testing.T) *TokenStaking {
	ts := NewTokenStaking(tokenLedgerAddr, e.state, e.clock, e.token, e.events)
	require.NoError(t, ts.Params().Init(e.master, DefaultInitParams()))
	return ts
}

func (e *testEnv) nftStaking(t *testing.T) *NFTStaking {
	ns := NewNFTStaking(nftLedgerAddr, e.state, e.clock, e.nft, e.token, e.events)
	require.NoError(t, ns.Params().Init(e.master, DefaultInitParams()))
	return ns
}

func (e *testEnv) multiTokenStaking(t *testing.T) *MultiTokenStaking {
	ms := NewMultiTokenStaking(multiLedgerAddr, e.state, e.clock, e.multi, e.token, e.events)
	require.NoError(t, ms.Params().Init(e.master, DefaultInitParams()))
	return ms
}

// staker returns a fresh address holding amount fungible tokens.
func (e *testEnv) staker(t *testing.T, amount int64) thor.Address {
	addr := datagen.RandAddress()
	if amount > 0 {
		require.NoError(t, e.token.Mint(addr, big.NewInt(amount)))
	}
	return addr
}

func (e *testEnv) advance(seconds uint64) {
	e.clock.Advance(seconds)
}

func (e *testEnv) balance(t *testing.T, addr thor.Address) *big.Int {
	bal, err := e.token.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func ids(vs ...int64) []*big.Int {
	out := make([]*big.Int, 0, len(vs))
	for _, v := range vs {
		out = append(out, big.NewInt(v))
	}
	return out
}

// assertBig compares by value, big.Int internals differ between equal numbers.
func assertBig(t *testing.T, expected int64, actual *big.Int, msgAndArgs ...any) {
	t.Helper()
	require.NotNil(t, actual, msgAndArgs...)
	assert.Equal(t, big.NewInt(expected).String(), actual.String(), msgAndArgs...)
}

func assertIDs(t *testing.T, expected []int64, actual []*big.Int) {
	t.Helper()
	got := make([]int64, 0, len(actual))
	for _, id := range actual {
		got = append(got, id.Int64())
	}
	if len(expected) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.Equal(t, expected, got)
}
