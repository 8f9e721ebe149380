// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/solidity"
)

// fundingPool is the bookkeeping of reward tokens deposited and not yet paid out.
type fundingPool struct {
	total *solidity.Uint256
}

func newFundingPool(ctx *solidity.Context) *fundingPool {
	return &fundingPool{total: solidity.NewUint256(ctx, slotFunding)}
}

func (f *fundingPool) Total() (*big.Int, error) {
	v, err := f.total.Get()
	return v, errors.Wrap(err, "get total funding")
}

func (f *fundingPool) Add(amount *big.Int) error {
	return errors.Wrap(f.total.Add(amount), "add funding")
}

// Sub pays amount out of the pool, it never lets the pool go negative.
func (f *fundingPool) Sub(amount *big.Int) error {
	total, err := f.Total()
	if err != nil {
		return err
	}
	if total.Cmp(amount) < 0 {
		return ErrInsufficientFunding
	}
	f.total.Set(total.Sub(total, amount))
	return nil
}
