// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledgers

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/runtime"
	"github.com/vechain/stakeledger/thor"
)

type Ledger struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Address thor.Address `json:"address"`
}

type Account struct {
	Principal        *math.HexOrDecimal256   `json:"principal"`
	IDs              []*math.HexOrDecimal256 `json:"ids,omitempty"`
	Amounts          []*math.HexOrDecimal256 `json:"amounts,omitempty"`
	UnclaimedRewards *math.HexOrDecimal256   `json:"unclaimedRewards"`
	TimeOfLastUpdate uint64                  `json:"timeOfLastUpdate"`
	ProjectedRewards *math.HexOrDecimal256   `json:"projectedRewards"`
	CompoundTimer    uint64                  `json:"compoundTimer"`
}

type Params struct {
	RewardRatePerHour *math.HexOrDecimal256 `json:"rewardRatePerHour"`
	MinStake          *math.HexOrDecimal256 `json:"minStake"`
	CompoundCooldown  uint64                `json:"compoundCooldown"`
	LockDuration      uint64                `json:"lockDuration"`
	RewardQuantum     *math.HexOrDecimal256 `json:"rewardQuantum"`
	Master            thor.Address          `json:"master"`
}

type Totals struct {
	TotalStaked  *math.HexOrDecimal256 `json:"totalStaked"`
	TotalFunding *math.HexOrDecimal256 `json:"totalFunding,omitempty"`
	Balance      *math.HexOrDecimal256 `json:"balance"`
}

// Op is an operation request. Fields a kind does not use are ignored.
type Op struct {
	Kind   runtime.OpKind          `json:"kind"`
	Caller thor.Address            `json:"caller"`
	Amount *math.HexOrDecimal256   `json:"amount,omitempty"`
	ID     *math.HexOrDecimal256   `json:"id,omitempty"`
	IDs    []*math.HexOrDecimal256 `json:"ids,omitempty"`
	Param  string                  `json:"param,omitempty"`
	To     *thor.Address           `json:"to,omitempty"`
}

type OpResult struct {
	OpNum  uint32                `json:"opNum"`
	Amount *math.HexOrDecimal256 `json:"amount,omitempty"`
	Paid   *math.HexOrDecimal256 `json:"paid,omitempty"`
	Events []*Event              `json:"events"`
}

type Event struct {
	Name    string                  `json:"name"`
	Account thor.Address            `json:"account"`
	Amount  *math.HexOrDecimal256   `json:"amount,omitempty"`
	IDs     []*math.HexOrDecimal256 `json:"ids,omitempty"`
	Param   string                  `json:"param,omitempty"`
	Time    uint64                  `json:"time"`
}

func hex256(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		return nil
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

func hex256s(vs []*big.Int) []*math.HexOrDecimal256 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]*math.HexOrDecimal256, 0, len(vs))
	for _, v := range vs {
		out = append(out, hex256(v))
	}
	return out
}

func bigInt(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return (*big.Int)(v)
}

func bigInts(vs []*math.HexOrDecimal256) []*big.Int {
	out := make([]*big.Int, 0, len(vs))
	for _, v := range vs {
		out = append(out, bigInt(v))
	}
	return out
}

func convertAccount(info *runtime.AccountInfo) *Account {
	return &Account{
		Principal:        hex256(info.Principal),
		IDs:              hex256s(info.IDs),
		Amounts:          hex256s(info.Amounts),
		UnclaimedRewards: hex256(info.UnclaimedRewards),
		TimeOfLastUpdate: info.TimeOfLastUpdate,
		ProjectedRewards: hex256(info.ProjectedRewards),
		CompoundTimer:    info.CompoundTimer,
	}
}

func convertParams(v *staking.Values) *Params {
	return &Params{
		RewardRatePerHour: hex256(v.RewardRatePerHour),
		MinStake:          hex256(v.MinStake),
		CompoundCooldown:  v.CompoundCooldown,
		LockDuration:      v.LockDuration,
		RewardQuantum:     hex256(v.RewardQuantum),
		Master:            v.Master,
	}
}

func convertOp(ledger string, op *Op) *runtime.Op {
	rop := &runtime.Op{
		Ledger: ledger,
		Kind:   op.Kind,
		Caller: op.Caller,
		Amount: bigInt(op.Amount),
		ID:     bigInt(op.ID),
		Param:  op.Param,
	}
	if len(op.IDs) > 0 {
		rop.IDs = bigInts(op.IDs)
	}
	if op.To != nil {
		rop.To = *op.To
	}
	return rop
}

func convertResult(res *runtime.Result) *OpResult {
	out := &OpResult{
		OpNum:  res.OpNum,
		Amount: hex256(res.Amount),
		Paid:   hex256(res.Paid),
		Events: make([]*Event, 0, len(res.Events)),
	}
	for _, ev := range res.Events {
		out.Events = append(out.Events, &Event{
			Name:    ev.Name,
			Account: ev.Account,
			Amount:  hex256(ev.Amount),
			IDs:     hex256s(ev.IDs),
			Param:   ev.Param,
			Time:    ev.Time,
		})
	}
	return out
}
