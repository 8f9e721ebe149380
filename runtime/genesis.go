// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/builtin/token"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// Addresses of the native tokens every ledger is wired to.
var (
	TokenAddress      = thor.LedgerAddress("token")
	NFTAddress        = thor.LedgerAddress("nft")
	MultiTokenAddress = thor.LedgerAddress("multi-token")
)

var keyGenesisID = []byte("genesis-id")

// LedgerConfig declares a ledger instance.
type LedgerConfig struct {
	Name   string
	Kind   string // one of staking.KindToken, staking.KindNFT, staking.KindMultiToken
	Master thor.Address
	Params staking.InitParams
}

// MultiAllocation is a quantity of one multi token id.
type MultiAllocation struct {
	ID     *big.Int
	Amount *big.Int
}

// Allocation mints native tokens to an address at genesis.
type Allocation struct {
	Address thor.Address
	Amount  *big.Int
	NFTs    []*big.Int
	Multi   []MultiAllocation
}

// Genesis is the initial setup of a node.
type Genesis struct {
	Ledgers     []LedgerConfig
	Allocations []Allocation
}

// ID identifies the genesis, a db initialized with one genesis refuses any other.
func (g *Genesis) ID() (thor.Bytes32, error) {
	data, err := rlp.EncodeToBytes(g)
	if err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "encode genesis")
	}
	return thor.Blake2b(data), nil
}

func (g *Genesis) validate() error {
	seen := make(map[string]bool, len(g.Ledgers))
	for _, l := range g.Ledgers {
		if l.Name == "" {
			return errors.New("ledger without name")
		}
		if seen[l.Name] {
			return errors.Errorf("duplicated ledger %q", l.Name)
		}
		seen[l.Name] = true
		switch l.Kind {
		case staking.KindToken, staking.KindNFT, staking.KindMultiToken:
		default:
			return errors.Errorf("ledger %q: unknown kind %q", l.Name, l.Kind)
		}
	}
	return nil
}

// build writes the genesis into st.
func (g *Genesis) build(st *state.State, clk clock.Clock) error {
	fungible := token.NewFungible(TokenAddress, st)
	nft := token.NewNonFungible(NFTAddress, st)
	multi := token.NewMultiToken(MultiTokenAddress, st)

	for _, l := range g.Ledgers {
		params := staking.NewTokenStaking(thor.LedgerAddress(l.Name), st, clk, fungible, nil).Params()
		if err := params.Init(l.Master, l.Params); err != nil {
			return errors.Wrapf(err, "ledger %q", l.Name)
		}
	}
	for _, a := range g.Allocations {
		if a.Amount != nil && a.Amount.Sign() > 0 {
			if err := fungible.Mint(a.Address, a.Amount); err != nil {
				return errors.Wrapf(err, "allocate to %v", a.Address)
			}
		}
		for _, id := range a.NFTs {
			if err := nft.Mint(a.Address, id); err != nil {
				return errors.Wrapf(err, "allocate nft %v to %v", id, a.Address)
			}
		}
		for _, m := range a.Multi {
			if err := multi.Mint(a.Address, m.ID, m.Amount); err != nil {
				return errors.Wrapf(err, "allocate multi token %v to %v", m.ID, a.Address)
			}
		}
	}
	return nil
}

// setupGenesis builds the genesis on an empty db, or checks it against the one already built.
func setupGenesis(db kv.Store, g *Genesis, clk clock.Clock) error {
	id, err := g.ID()
	if err != nil {
		return err
	}
	meta := metaBucket.NewStore(db)
	stored, err := meta.Get(keyGenesisID)
	if err != nil && !meta.IsNotFound(err) {
		return errors.Wrap(err, "get genesis id")
	}
	if len(stored) > 0 {
		if thor.BytesToBytes32(stored) != id {
			return errors.Errorf("genesis mismatch: db has %v, config has %v", thor.BytesToBytes32(stored), id)
		}
		return nil
	}

	st := state.New(stateBucket.NewGetter(db), nil)
	if err := g.build(st, clk); err != nil {
		return err
	}
	if err := st.Stage().Commit(stateBucket.NewStore(db).NewBatch()); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	if err := meta.Put(keyGenesisID, id.Bytes()); err != nil {
		return errors.Wrap(err, "put genesis id")
	}
	logger.Info("genesis built", "id", id, "ledgers", len(g.Ledgers), "allocations", len(g.Allocations))
	return nil
}
