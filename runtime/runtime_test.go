// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/builtin/staking/reverts"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/logdb"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/test/datagen"
	"github.com/vechain/stakeledger/thor"
)

const startTime = uint64(1_700_000_000)

type fixture struct {
	db      *lvldb.LevelDB
	logs    logdb.LogDB
	clock   *clock.Manual
	genesis *Genesis
	master  thor.Address
	alice   thor.Address
	bob     thor.Address
	rt      *Runtime
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() {
		logs.Close()
		db.Close()
	})

	f := &fixture{
		db:     db,
		logs:   logs,
		clock:  clock.NewManual(startTime),
		master: datagen.RandAddress(),
		alice:  datagen.RandAddress(),
		bob:    datagen.RandAddress(),
	}
	f.genesis = &Genesis{
		Ledgers: []LedgerConfig{
			{Name: "tokens", Kind: staking.KindToken, Master: f.master, Params: staking.DefaultInitParams()},
			{Name: "nfts", Kind: staking.KindNFT, Master: f.master, Params: staking.DefaultInitParams()},
			{Name: "multi", Kind: staking.KindMultiToken, Master: f.master, Params: staking.DefaultInitParams()},
		},
		Allocations: []Allocation{
			{Address: f.alice, Amount: big.NewInt(1000), NFTs: []*big.Int{big.NewInt(3), big.NewInt(4)}},
			{Address: f.bob, Amount: big.NewInt(50_000), Multi: []MultiAllocation{{ID: big.NewInt(1), Amount: big.NewInt(9)}}},
			{Address: thor.LedgerAddress("nfts"), Amount: big.NewInt(500)},
		},
	}
	f.rt, err = New(db, logs, f.clock, f.genesis)
	require.NoError(t, err)
	return f
}

func assertBig(t *testing.T, expected int64, actual *big.Int) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, big.NewInt(expected).String(), actual.String())
}

func TestGenesis(t *testing.T) {
	f := newFixture(t)

	bal, err := f.rt.Balance(f.alice)
	require.NoError(t, err)
	assertBig(t, 1000, bal)

	ledgers := f.rt.Ledgers()
	require.Len(t, ledgers, 3)
	assert.Equal(t, "multi", ledgers[0].Name)
	assert.Equal(t, staking.KindMultiToken, ledgers[0].Kind)
	assert.Equal(t, thor.LedgerAddress("multi"), ledgers[0].Address)

	values, err := f.rt.Params("nfts")
	require.NoError(t, err)
	assert.Equal(t, f.master, values.Master)
	assertBig(t, 10, values.RewardRatePerHour)

	totals, err := f.rt.Totals("nfts")
	require.NoError(t, err)
	assertBig(t, 0, totals.TotalStaked)
	assertBig(t, 500, totals.Balance)
	assert.Nil(t, totals.TotalFunding)

	_, err = f.rt.Params("nope")
	assert.ErrorIs(t, err, ErrUnknownLedger)
}

func TestGenesisReopen(t *testing.T) {
	f := newFixture(t)
	_, err := f.rt.Execute(&Op{Ledger: "tokens", Kind: OpStake, Caller: f.alice, Amount: big.NewInt(100)})
	require.NoError(t, err)

	rt, err := New(f.db, f.logs, f.clock, f.genesis)
	require.NoError(t, err)
	// allocations are not applied twice
	bal, err := rt.Balance(f.alice)
	require.NoError(t, err)
	assertBig(t, 900, bal)

	res, err := rt.Execute(&Op{Ledger: "tokens", Kind: OpStake, Caller: f.alice, Amount: big.NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), res.OpNum)

	other := *f.genesis
	other.Allocations = nil
	_, err = New(f.db, f.logs, f.clock, &other)
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestGenesisValidate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)

	for _, g := range []*Genesis{
		{Ledgers: []LedgerConfig{{Kind: staking.KindToken}}},
		{Ledgers: []LedgerConfig{{Name: "a", Kind: "bond"}}},
		{Ledgers: []LedgerConfig{{Name: "a", Kind: staking.KindToken}, {Name: "a", Kind: staking.KindNFT}}},
	} {
		_, err := New(db, logs, clock.NewManual(startTime), g)
		assert.Error(t, err)
	}
}

func TestExecuteCompound(t *testing.T) {
	f := newFixture(t)

	res, err := f.rt.Execute(&Op{Ledger: "tokens", Kind: OpStake, Caller: f.alice, Amount: big.NewInt(100)})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.OpNum)
	require.Len(t, res.Events, 1)
	assert.Equal(t, staking.EventStaked, res.Events[0].Name)

	f.clock.Advance(14_401)
	_, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpCompound, Caller: f.alice})
	assert.ErrorIs(t, err, staking.ErrInsufficientFunding)

	_, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpFund, Caller: f.bob, Amount: big.NewInt(5000)})
	require.NoError(t, err)
	res, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpCompound, Caller: f.alice})
	require.NoError(t, err)
	assertBig(t, 4000, res.Amount)

	totals, err := f.rt.Totals("tokens")
	require.NoError(t, err)
	assertBig(t, 4100, totals.TotalStaked)
	assertBig(t, 1000, totals.TotalFunding)
	assertBig(t, 5100, totals.Balance)

	info, err := f.rt.Account("tokens", f.alice)
	require.NoError(t, err)
	assertBig(t, 4100, info.Principal)
	assertBig(t, 0, info.UnclaimedRewards)
	assertBig(t, 0, info.ProjectedRewards)
	assert.Equal(t, startTime+14_401, info.TimeOfLastUpdate)
	assert.Equal(t, thor.DefaultCompoundCooldown, info.CompoundTimer)

	events, err := f.rt.Events(context.Background(), &logdb.EventFilter{Account: &f.alice})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, staking.EventCompounded, events[1].Name)
	assert.Equal(t, uint32(3), events[1].OpNum)
	assertBig(t, 4000, events[1].Amount)
}

func TestExecuteRevert(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.Execute(&Op{Ledger: "tokens", Kind: OpStake, Caller: f.alice, Amount: big.NewInt(100)})
	require.NoError(t, err)
	f.clock.Advance(thor.SecondsPerHour)

	_, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpClaimRewards, Caller: f.alice})
	assert.ErrorIs(t, err, staking.ErrInsufficientFunding)
	assert.True(t, reverts.IsRevertErr(err))

	info, err := f.rt.Account("tokens", f.alice)
	require.NoError(t, err)
	assertBig(t, 0, info.UnclaimedRewards)
	assertBig(t, 1000, info.ProjectedRewards)

	res, err := f.rt.Execute(&Op{Ledger: "tokens", Kind: OpFund, Caller: f.bob, Amount: big.NewInt(10_000)})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), res.OpNum)

	res, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpClaimRewards, Caller: f.alice})
	require.NoError(t, err)
	assertBig(t, 1000, res.Amount)

	totals, err := f.rt.Totals("tokens")
	require.NoError(t, err)
	assertBig(t, 100, totals.TotalStaked)
	assertBig(t, 9000, totals.TotalFunding)
	assertBig(t, 9100, totals.Balance)
}

func TestExecuteNFT(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.Execute(&Op{Ledger: "nfts", Kind: OpStake, Caller: f.alice, IDs: []*big.Int{big.NewInt(3), big.NewInt(4)}})
	require.NoError(t, err)

	_, err = f.rt.Execute(&Op{Ledger: "nfts", Kind: OpWithdraw, Caller: f.bob, IDs: []*big.Int{big.NewInt(3), big.NewInt(4)}})
	assert.ErrorIs(t, err, staking.ErrNoTokensStaked)

	_, err = f.rt.Execute(&Op{Ledger: "nfts", Kind: OpCompound, Caller: f.alice})
	assert.ErrorIs(t, err, ErrUnsupportedOp)

	f.clock.Advance(2 * thor.SecondsPerHour)
	res, err := f.rt.Execute(&Op{Ledger: "nfts", Kind: OpClaimRewards, Caller: f.alice})
	require.NoError(t, err)
	assertBig(t, 40, res.Amount)

	info, err := f.rt.Account("nfts", f.alice)
	require.NoError(t, err)
	assertBig(t, 2, info.Principal)
	require.Len(t, info.IDs, 2)
	assert.Equal(t, "3", info.IDs[0].String())
}

func TestExecuteMultiToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.Execute(&Op{Ledger: "multi", Kind: OpStake, Caller: f.bob, ID: big.NewInt(1), Amount: big.NewInt(6)})
	require.NoError(t, err)

	f.clock.Advance(thor.SecondsPerHour)
	info, err := f.rt.Account("multi", f.bob)
	require.NoError(t, err)
	assertBig(t, 6, info.Principal)
	require.Len(t, info.Amounts, 1)
	assertBig(t, 6, info.Amounts[0])
	assertBig(t, 60, info.ProjectedRewards)

	_, err = f.rt.Execute(&Op{Ledger: "multi", Kind: OpWithdraw, Caller: f.bob, ID: big.NewInt(1), Amount: big.NewInt(6)})
	require.NoError(t, err)
}

func TestExecuteSetParam(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.Execute(&Op{Ledger: "tokens", Kind: OpSetParam, Caller: f.alice, Param: staking.ParamMinStake, Amount: big.NewInt(5)})
	assert.ErrorIs(t, err, staking.ErrNotMaster)

	_, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpSetParam, Caller: f.master, Param: "bogus", Amount: big.NewInt(5)})
	assert.ErrorIs(t, err, ErrUnknownParam)

	res, err := f.rt.Execute(&Op{Ledger: "tokens", Kind: OpSetParam, Caller: f.master, Param: staking.ParamCompoundCooldown, Amount: big.NewInt(60)})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, staking.ParamCompoundCooldown, res.Events[0].Param)

	_, err = f.rt.Execute(&Op{Ledger: "tokens", Kind: OpSetParam, Caller: f.master, Param: staking.ParamMaster, To: f.alice})
	require.NoError(t, err)

	values, err := f.rt.Params("tokens")
	require.NoError(t, err)
	assert.Equal(t, uint64(60), values.CompoundCooldown)
	assert.Equal(t, f.alice, values.Master)
}

func TestExecuteTransfer(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.Execute(&Op{Kind: OpTransfer, Caller: f.alice, To: f.bob, Amount: big.NewInt(1001)})
	assert.True(t, reverts.IsRevertErr(err))

	res, err := f.rt.Execute(&Op{Kind: OpTransfer, Caller: f.alice, To: f.bob, Amount: big.NewInt(400)})
	require.NoError(t, err)
	assert.Empty(t, res.Events)

	bal, err := f.rt.Balance(f.bob)
	require.NoError(t, err)
	assertBig(t, 50_400, bal)
}

func TestExecuteUnknownLedger(t *testing.T) {
	f := newFixture(t)
	_, err := f.rt.Execute(&Op{Ledger: "nope", Kind: OpStake, Caller: f.alice, Amount: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrUnknownLedger)
	assert.False(t, reverts.IsRevertErr(err))
}
