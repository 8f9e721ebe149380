// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testruntime builds an in-memory runtime with a manual clock for tests.
package testruntime

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/logdb"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/runtime"
	"github.com/vechain/stakeledger/test/datagen"
	"github.com/vechain/stakeledger/thor"
)

// StartTime is the initial manual clock reading.
const StartTime = uint64(1_700_000_000)

// Ledger names of the test genesis.
const (
	Tokens = "tokens"
	NFTs   = "nfts"
	Multi  = "multi"
)

type Runtime struct {
	*runtime.Runtime
	Clock  *clock.Manual
	Logs   logdb.LogDB
	Master thor.Address
	Alice  thor.Address // 10000 tokens, nfts 1, 2 and 3
	Bob    thor.Address // 10000 tokens, 20 of multi token 7
}

// New returns a runtime with three ledgers of each kind. Every ledger holds 100000
// reward tokens and all of them use the default params.
func New(t *testing.T) *Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() {
		logs.Close()
		db.Close()
	})

	r := &Runtime{
		Clock:  clock.NewManual(StartTime),
		Logs:   logs,
		Master: datagen.RandAddress(),
		Alice:  datagen.RandAddress(),
		Bob:    datagen.RandAddress(),
	}
	genesis := &runtime.Genesis{
		Ledgers: []runtime.LedgerConfig{
			{Name: Tokens, Kind: staking.KindToken, Master: r.Master, Params: staking.DefaultInitParams()},
			{Name: NFTs, Kind: staking.KindNFT, Master: r.Master, Params: staking.DefaultInitParams()},
			{Name: Multi, Kind: staking.KindMultiToken, Master: r.Master, Params: staking.DefaultInitParams()},
		},
		Allocations: []runtime.Allocation{
			{
				Address: r.Alice,
				Amount:  big.NewInt(10_000),
				NFTs:    []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
			},
			{
				Address: r.Bob,
				Amount:  big.NewInt(10_000),
				Multi:   []runtime.MultiAllocation{{ID: big.NewInt(7), Amount: big.NewInt(20)}},
			},
			{Address: thor.LedgerAddress(NFTs), Amount: big.NewInt(100_000)},
			{Address: thor.LedgerAddress(Multi), Amount: big.NewInt(100_000)},
		},
	}
	r.Runtime, err = runtime.New(db, logs, r.Clock, genesis)
	require.NoError(t, err)
	return r
}

// MustExecute executes op and fails the test on error.
func (r *Runtime) MustExecute(t *testing.T, op *runtime.Op) *runtime.Result {
	t.Helper()
	res, err := r.Execute(op)
	require.NoError(t, err)
	return res
}
