// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import "math/big"

// Constants of the staking ledgers.
const (
	SecondsPerHour uint64 = 3600

	DefaultCompoundCooldown uint64 = 4 * SecondsPerHour // 14400 seconds between compounds
	DefaultLockDuration     uint64 = 300                // informational staking period
)

// Keys of ledger params.
var (
	KeyRewardRatePerHour = BytesToBytes32([]byte("reward-rate-per-hour"))
	KeyMinStake          = BytesToBytes32([]byte("min-stake"))
	KeyCompoundCooldown  = BytesToBytes32([]byte("compound-cooldown"))
	KeyLockDuration      = BytesToBytes32([]byte("lock-duration"))
	KeyRewardQuantum     = BytesToBytes32([]byte("reward-quantum"))
	KeyMaster            = BytesToBytes32([]byte("master"))

	InitialRewardRatePerHour = big.NewInt(10)
	InitialRewardQuantum     = big.NewInt(1)
)

// LedgerAddress derives the deterministic address of a named ledger or token contract.
func LedgerAddress(name string) Address {
	h := Keccak256([]byte("stakeledger"), []byte(name))
	return BytesToAddress(h[12:])
}
