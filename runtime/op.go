// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/builtin/staking/reverts"
	"github.com/vechain/stakeledger/thor"
)

// OpKind names an operation.
type OpKind string

const (
	OpStake        OpKind = "stake"
	OpWithdraw     OpKind = "withdraw"
	OpWithdrawAll  OpKind = "withdrawAll"
	OpClaimRewards OpKind = "claimRewards"
	OpCompound     OpKind = "compound"
	OpFund         OpKind = "fund"
	OpSetParam     OpKind = "setParam"
	// OpTransfer moves fungible tokens, Ledger is ignored.
	OpTransfer OpKind = "transfer"
)

// Op is an operation submitted by Caller against the named ledger.
type Op struct {
	Ledger string
	Kind   OpKind
	Caller thor.Address
	Amount *big.Int
	ID     *big.Int     // multi token id
	IDs    []*big.Int   // nft ids
	Param  string       // parameter name for OpSetParam
	To     thor.Address // new master for the master param, recipient for OpTransfer
}

// Result is the outcome of an executed operation.
type Result struct {
	OpNum  uint32
	Amount *big.Int // paid, compounded or withdrawn amount, when the operation yields one
	Paid   *big.Int // rewards paid along a withdrawAll
	Events []*staking.Event
}

var (
	ErrUnsupportedOp = reverts.New("operation not supported by ledger")
	ErrUnknownParam  = reverts.New("unknown param")
)

func (op *Op) apply(l any, result *Result) (err error) {
	if op.Kind == OpSetParam {
		return op.setParam(l.(interface{ Params() *staking.Params }).Params())
	}
	switch l := l.(type) {
	case *staking.TokenStaking:
		switch op.Kind {
		case OpStake:
			return l.Stake(op.Caller, op.Amount)
		case OpWithdraw:
			return l.Withdraw(op.Caller, op.Amount)
		case OpWithdrawAll:
			result.Amount, result.Paid, err = l.WithdrawAll(op.Caller)
			return err
		case OpClaimRewards:
			result.Amount, err = l.ClaimRewards(op.Caller)
			return err
		case OpCompound:
			result.Amount, err = l.Compound(op.Caller)
			return err
		case OpFund:
			return l.Fund(op.Caller, op.Amount)
		}
	case *staking.NFTStaking:
		switch op.Kind {
		case OpStake:
			return l.Stake(op.Caller, op.IDs)
		case OpWithdraw:
			return l.Withdraw(op.Caller, op.IDs)
		case OpClaimRewards:
			result.Amount, err = l.ClaimRewards(op.Caller)
			return err
		}
	case *staking.MultiTokenStaking:
		switch op.Kind {
		case OpStake:
			return l.Stake(op.Caller, op.ID, op.Amount)
		case OpWithdraw:
			return l.Withdraw(op.Caller, op.ID, op.Amount)
		case OpClaimRewards:
			result.Amount, err = l.ClaimRewards(op.Caller)
			return err
		}
	}
	return errors.Wrapf(ErrUnsupportedOp, "%s", op.Kind)
}

func (op *Op) setParam(p *staking.Params) error {
	switch op.Param {
	case staking.ParamMaster:
		return p.SetMaster(op.Caller, op.To)
	case staking.ParamRewardRatePerHour:
		return p.SetRewardRatePerHour(op.Caller, op.Amount)
	case staking.ParamMinStake:
		return p.SetMinStake(op.Caller, op.Amount)
	case staking.ParamRewardQuantum:
		return p.SetRewardQuantum(op.Caller, op.Amount)
	case staking.ParamCompoundCooldown, staking.ParamLockDuration:
		if op.Amount == nil || !op.Amount.IsUint64() {
			return staking.ErrArithmeticOverflow
		}
		if op.Param == staking.ParamCompoundCooldown {
			return p.SetCompoundCooldown(op.Caller, op.Amount.Uint64())
		}
		return p.SetLockDuration(op.Caller, op.Amount.Uint64())
	}
	return errors.Wrapf(ErrUnknownParam, "%q", op.Param)
}
