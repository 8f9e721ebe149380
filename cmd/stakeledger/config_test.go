// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/thor"
)

func TestConfigGenesis(t *testing.T) {
	var cfg Config
	err := parseConfig(strings.NewReader(`
ledgers:
  - name: rewards
    kind: token
    master: "0x00000000000000000000000000000000000a57e2"
    params:
      rewardRatePerHour: "0x20"
      minStake: 5
      compoundCooldown: 60
  - name: items
    kind: multitoken
allocations:
  - address: "0x00000000000000000000000000000000000a11ce"
    amount: 115792089237316195423570985008687907853269984665640564039457584007913129639935
    nfts: [1, 0x2]
    multi:
      - {id: 7, amount: 3}
`), &cfg)
	require.NoError(t, err)

	g := cfg.Genesis()
	require.Len(t, g.Ledgers, 2)

	rewards := g.Ledgers[0]
	assert.Equal(t, "rewards", rewards.Name)
	assert.Equal(t, staking.KindToken, rewards.Kind)
	assert.Equal(t, "0x00000000000000000000000000000000000a57e2", rewards.Master.String())
	assert.Equal(t, "32", rewards.Params.RewardRatePerHour.String())
	assert.Equal(t, "5", rewards.Params.MinStake.String())
	assert.Equal(t, uint64(60), rewards.Params.CompoundCooldown)
	assert.Equal(t, thor.DefaultLockDuration, rewards.Params.LockDuration)
	assert.Equal(t, "1", rewards.Params.RewardQuantum.String())

	items := g.Ledgers[1]
	assert.True(t, items.Master.IsZero())
	assert.Equal(t, thor.DefaultCompoundCooldown, items.Params.CompoundCooldown)

	require.Len(t, g.Allocations, 1)
	alloc := g.Allocations[0]
	assert.Equal(t, 256, alloc.Amount.BitLen())
	require.Len(t, alloc.NFTs, 2)
	assert.Equal(t, "2", alloc.NFTs[1].String())
	require.Len(t, alloc.Multi, 1)
	assert.Equal(t, "7", alloc.Multi[0].ID.String())
	assert.Equal(t, "3", alloc.Multi[0].Amount.String())
}

func TestConfigErrors(t *testing.T) {
	for _, doc := range []string{
		"ledgers: [{name: a, kind: token, unknown: 1}]",
		"allocations: [{address: 0x12}]",
		"allocations: [{amount: -0x}]",
		// beyond 256 bits
		"allocations: [{amount: 115792089237316195423570985008687907853269984665640564039457584007913129639936}]",
	} {
		var cfg Config
		assert.Error(t, parseConfig(strings.NewReader(doc), &cfg), doc)
	}
}

func TestDevConfig(t *testing.T) {
	g := devConfig().Genesis()
	require.Len(t, g.Ledgers, 3)
	for _, l := range g.Ledgers {
		assert.Equal(t, devAccounts[0], l.Master)
	}
	assert.Len(t, g.Allocations, len(devAccounts)+2)

	id1, err := g.ID()
	require.NoError(t, err)
	id2, err := devConfig().Genesis().ID()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}
