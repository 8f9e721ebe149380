// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/builtin/token"
	"github.com/vechain/stakeledger/thor"
)

// AccountInfo is the stake of an address in a ledger.
type AccountInfo struct {
	Principal        *big.Int   // magnitude of the principal
	IDs              []*big.Int // staked ids, nft and multi token ledgers
	Amounts          []*big.Int // quantities aligned with IDs, multi token ledgers
	UnclaimedRewards *big.Int   // settled rewards
	TimeOfLastUpdate uint64
	ProjectedRewards *big.Int // settled plus pending at the current clock
	CompoundTimer    uint64   // seconds before compounding is allowed, token ledgers
}

// Totals are the aggregates of a ledger.
type Totals struct {
	TotalStaked  *big.Int
	TotalFunding *big.Int // nil for ledgers paying out of their balance
	Balance      *big.Int // fungible tokens held by the ledger
}

func (rt *Runtime) view(name string, fn func(l any) error) error {
	ledger, err := rt.Ledger(name)
	if err != nil {
		return err
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return fn(rt.bind(ledger, rt.newState(), nil))
}

// Account returns the stake of addr in the named ledger.
func (rt *Runtime) Account(name string, addr thor.Address) (*AccountInfo, error) {
	info := &AccountInfo{}
	err := rt.view(name, func(l any) error {
		switch l := l.(type) {
		case *staking.TokenStaking:
			acc, err := l.Account(addr)
			if err != nil {
				return err
			}
			info.Principal = acc.Principal.Magnitude()
			info.UnclaimedRewards = acc.UnclaimedRewards
			info.TimeOfLastUpdate = acc.TimeOfLastUpdate
			if _, info.ProjectedRewards, err = l.DepositInfo(addr); err != nil {
				return err
			}
			info.CompoundTimer, err = l.CompoundTimer(addr)
			return err
		case *staking.NFTStaking:
			acc, err := l.Account(addr)
			if err != nil {
				return err
			}
			info.Principal = acc.Principal.Magnitude()
			info.UnclaimedRewards = acc.UnclaimedRewards
			info.TimeOfLastUpdate = acc.TimeOfLastUpdate
			info.IDs, info.ProjectedRewards, err = l.StakeInfo(addr)
			return err
		case *staking.MultiTokenStaking:
			acc, err := l.Account(addr)
			if err != nil {
				return err
			}
			info.Principal = acc.Principal.Magnitude()
			info.UnclaimedRewards = acc.UnclaimedRewards
			info.TimeOfLastUpdate = acc.TimeOfLastUpdate
			info.IDs, info.Amounts = acc.Principal.List()
			projected, err := l.Projected(addr)
			if err != nil {
				return err
			}
			info.ProjectedRewards = projected.UnclaimedRewards
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Params returns the parameters of the named ledger.
func (rt *Runtime) Params(name string) (*staking.Values, error) {
	var values *staking.Values
	err := rt.view(name, func(l any) (err error) {
		values, err = l.(interface{ Params() *staking.Params }).Params().Values()
		return
	})
	return values, err
}

// Totals returns the aggregates of the named ledger.
func (rt *Runtime) Totals(name string) (*Totals, error) {
	totals := &Totals{}
	err := rt.view(name, func(l any) (err error) {
		if totals.TotalStaked, err = l.(interface{ TotalStaked() (*big.Int, error) }).TotalStaked(); err != nil {
			return err
		}
		addr := l.(interface{ Address() thor.Address }).Address()
		if totals.Balance, err = token.NewFungible(TokenAddress, rt.newState()).BalanceOf(addr); err != nil {
			return err
		}
		if ts, ok := l.(*staking.TokenStaking); ok {
			totals.TotalFunding, err = ts.TotalFunding()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// Balance returns the fungible token balance of addr.
func (rt *Runtime) Balance(addr thor.Address) (*big.Int, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return token.NewFungible(TokenAddress, rt.newState()).BalanceOf(addr)
}
