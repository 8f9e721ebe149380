// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// FungibleCustody moves a fungible asset between accounts.
type FungibleCustody interface {
	BalanceOf(owner thor.Address) (*big.Int, error)
	Transfer(from, to thor.Address, amount *big.Int) error
}

// NonFungibleCustody moves unique tokens between accounts.
type NonFungibleCustody interface {
	// OwnerOf returns the owner of id, the zero address if id does not exist.
	OwnerOf(id *big.Int) (thor.Address, error)
	Transfer(from, to thor.Address, id *big.Int) error
}

// MultiTokenCustody moves quantities of semi-fungible tokens between accounts.
type MultiTokenCustody interface {
	BalanceOf(owner thor.Address, id *big.Int) (*big.Int, error)
	Transfer(from, to thor.Address, id, amount *big.Int) error
}
