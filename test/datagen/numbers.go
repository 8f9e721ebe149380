// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math/big"
	mathrand "math/rand/v2"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}

// RandAmount returns a random amount in [1, max].
func RandAmount(max int64) *big.Int {
	return big.NewInt(mathrand.Int64N(max) + 1) //#nosec G404
}

// RandIDs returns n distinct token ids below 1<<32.
func RandIDs(n int) []*big.Int {
	seen := make(map[uint32]bool, n)
	ids := make([]*big.Int, 0, n)
	for len(ids) < n {
		v := mathrand.Uint32() //#nosec G404
		if seen[v] {
			continue
		}
		seen[v] = true
		ids = append(ids, new(big.Int).SetUint64(uint64(v)))
	}
	return ids
}
