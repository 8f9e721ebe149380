// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements staking ledgers accruing a fungible reward over time.
//
// TokenStaking locks a fungible amount, NFTStaking locks a set of token ids and
// MultiTokenStaking locks quantities per token id. All of them settle rewards with
// one time-weighted accrual engine. A ledger instance is bound to one state and
// is not safe for concurrent use.
package staking

import (
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/thor"
)

var logger = log.WithContext("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	slotAccounts    = nameToSlot("accounts")
	slotTotalStaked = nameToSlot("total-staked")
	slotFunding     = nameToSlot("total-funding")
	slotStakers     = nameToSlot("stakers")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}
