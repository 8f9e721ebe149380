// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements native tokens kept in ledger state: a fungible token,
// a non-fungible token and a multi token. They serve as custody for the staking ledgers.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/builtin/staking/reverts"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var (
	ErrInsufficientBalance = reverts.New("transfer amount exceeds balance")
	ErrNotOwner            = reverts.New("transfer of token that is not own")
	ErrAlreadyMinted       = reverts.New("token already minted")
	ErrInvalidAmount       = reverts.New("invalid amount")
)

var (
	slotBalances = nameToSlot("balances")
	slotOwners   = nameToSlot("owners")
	slotSupply   = nameToSlot("total-supply")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}

// balances is an address keyed amount table, zero amounts are kept as empty slots.
type balances[K solidity.Key] struct {
	m *solidity.Mapping[K, *big.Int]
}

func (b *balances[K]) get(key K) (*big.Int, error) {
	v, err := b.m.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}
	return v, nil
}

func (b *balances[K]) set(key K, v *big.Int) error {
	if v.Sign() == 0 {
		b.m.Delete(key)
		return nil
	}
	return errors.Wrap(b.m.Set(key, v), "set balance")
}

func (b *balances[K]) move(from, to K, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	fromBal, err := b.get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := b.set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := b.get(to)
	if err != nil {
		return err
	}
	return b.set(to, toBal.Add(toBal, amount))
}

// Fungible is a native fungible token.
type Fungible struct {
	addr     thor.Address
	balances *balances[thor.Address]
	supply   *solidity.Uint256
}

func NewFungible(addr thor.Address, state *state.State) *Fungible {
	ctx := solidity.NewContext(addr, state)
	return &Fungible{
		addr:     addr,
		balances: &balances[thor.Address]{solidity.NewMapping[thor.Address, *big.Int](ctx, slotBalances)},
		supply:   solidity.NewUint256(ctx, slotSupply),
	}
}

func (f *Fungible) Address() thor.Address {
	return f.addr
}

func (f *Fungible) BalanceOf(owner thor.Address) (*big.Int, error) {
	return f.balances.get(owner)
}

func (f *Fungible) TotalSupply() (*big.Int, error) {
	v, err := f.supply.Get()
	return v, errors.Wrap(err, "get total supply")
}

func (f *Fungible) Transfer(from, to thor.Address, amount *big.Int) error {
	return f.balances.move(from, to, amount)
}

// Mint creates amount new tokens for to.
func (f *Fungible) Mint(to thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	bal, err := f.balances.get(to)
	if err != nil {
		return err
	}
	if err := f.balances.set(to, bal.Add(bal, amount)); err != nil {
		return err
	}
	return errors.Wrap(f.supply.Add(amount), "add total supply")
}

// NonFungible is a native non-fungible token.
type NonFungible struct {
	addr   thor.Address
	owners *solidity.Mapping[*big.Int, thor.Address]
}

func NewNonFungible(addr thor.Address, state *state.State) *NonFungible {
	ctx := solidity.NewContext(addr, state)
	return &NonFungible{
		addr:   addr,
		owners: solidity.NewMapping[*big.Int, thor.Address](ctx, slotOwners),
	}
}

func (n *NonFungible) Address() thor.Address {
	return n.addr
}

// OwnerOf returns the owner of id, the zero address if id was never minted.
func (n *NonFungible) OwnerOf(id *big.Int) (thor.Address, error) {
	owner, err := n.owners.Get(id)
	return owner, errors.Wrap(err, "get owner")
}

func (n *NonFungible) Transfer(from, to thor.Address, id *big.Int) error {
	owner, err := n.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != from {
		return ErrNotOwner
	}
	return errors.Wrap(n.owners.Set(id, to), "set owner")
}

// Mint creates token id owned by to.
func (n *NonFungible) Mint(to thor.Address, id *big.Int) error {
	if id == nil || id.Sign() < 0 {
		return ErrInvalidAmount
	}
	owner, err := n.OwnerOf(id)
	if err != nil {
		return err
	}
	if !owner.IsZero() {
		return ErrAlreadyMinted
	}
	return errors.Wrap(n.owners.Set(id, to), "set owner")
}

// MultiToken is a native multi token, a fungible balance per token id.
type MultiToken struct {
	addr     thor.Address
	balances *balances[thor.Bytes32]
}

func NewMultiToken(addr thor.Address, state *state.State) *MultiToken {
	ctx := solidity.NewContext(addr, state)
	return &MultiToken{
		addr:     addr,
		balances: &balances[thor.Bytes32]{solidity.NewMapping[thor.Bytes32, *big.Int](ctx, slotBalances)},
	}
}

func (m *MultiToken) Address() thor.Address {
	return m.addr
}

func holdingKey(owner thor.Address, id *big.Int) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), id.Bytes())
}

func (m *MultiToken) BalanceOf(owner thor.Address, id *big.Int) (*big.Int, error) {
	return m.balances.get(holdingKey(owner, id))
}

func (m *MultiToken) Transfer(from, to thor.Address, id, amount *big.Int) error {
	return m.balances.move(holdingKey(from, id), holdingKey(to, id), amount)
}

// Mint creates amount units of id for to.
func (m *MultiToken) Mint(to thor.Address, id, amount *big.Int) error {
	if id == nil || id.Sign() < 0 || amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	key := holdingKey(to, id)
	bal, err := m.balances.get(key)
	if err != nil {
		return err
	}
	return m.balances.set(key, bal.Add(bal, amount))
}
