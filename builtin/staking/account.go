// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/stakeledger/builtin/staking/principal"
)

// Account is the stake of one caller in one ledger.
type Account[P principal.Principal] struct {
	Principal        P
	TimeOfLastUpdate uint64   // unix seconds of the last settlement
	UnclaimedRewards *big.Int // settled and not yet paid
}

// IsEmpty reports whether the account holds nothing, which makes it
// indistinguishable from an account that never staked.
func (a *Account[P]) IsEmpty() bool {
	return a.Principal.IsEmpty() && a.UnclaimedRewards.Sign() == 0
}
