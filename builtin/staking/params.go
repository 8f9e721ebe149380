// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/thor"
)

// Parameter names as recorded in ParamUpdated events.
const (
	ParamRewardRatePerHour = "rewardRatePerHour"
	ParamMinStake          = "minStake"
	ParamCompoundCooldown  = "compoundCooldown"
	ParamLockDuration      = "lockDuration"
	ParamRewardQuantum     = "rewardQuantum"
	ParamMaster            = "master"
)

// InitParams are the parameters a ledger starts with.
type InitParams struct {
	RewardRatePerHour *big.Int
	MinStake          *big.Int
	CompoundCooldown  uint64
	LockDuration      uint64
	RewardQuantum     *big.Int
}

func DefaultInitParams() InitParams {
	return InitParams{
		RewardRatePerHour: new(big.Int).Set(thor.InitialRewardRatePerHour),
		MinStake:          new(big.Int),
		CompoundCooldown:  thor.DefaultCompoundCooldown,
		LockDuration:      thor.DefaultLockDuration,
		RewardQuantum:     new(big.Int).Set(thor.InitialRewardQuantum),
	}
}

// withDefaults fills unset amounts with their defaults.
func (init InitParams) withDefaults() InitParams {
	def := DefaultInitParams()
	if init.RewardRatePerHour == nil {
		init.RewardRatePerHour = def.RewardRatePerHour
	}
	if init.MinStake == nil {
		init.MinStake = def.MinStake
	}
	if init.RewardQuantum == nil {
		init.RewardQuantum = def.RewardQuantum
	}
	return init
}

// Values is a snapshot of the parameters.
type Values struct {
	RewardRatePerHour *big.Int
	MinStake          *big.Int
	CompoundCooldown  uint64
	LockDuration      uint64
	RewardQuantum     *big.Int
	Master            thor.Address
}

// Params is the reward configuration of a ledger. Setters are reserved to the master.
// A change applies to every settlement after it and never touches settled rewards.
type Params struct {
	ctx    *solidity.Context
	clock  clock.Clock
	events *Events

	rewardRate   *solidity.Uint256
	minStake     *solidity.Uint256
	cooldown     *solidity.Uint256
	lockDuration *solidity.Uint256
	quantum      *solidity.Uint256
	master       *solidity.Address
}

func newParams(ctx *solidity.Context, clk clock.Clock, events *Events) *Params {
	return &Params{
		ctx:          ctx,
		clock:        clk,
		events:       events,
		rewardRate:   solidity.NewUint256(ctx, thor.KeyRewardRatePerHour),
		minStake:     solidity.NewUint256(ctx, thor.KeyMinStake),
		cooldown:     solidity.NewUint256(ctx, thor.KeyCompoundCooldown),
		lockDuration: solidity.NewUint256(ctx, thor.KeyLockDuration),
		quantum:      solidity.NewUint256(ctx, thor.KeyRewardQuantum),
		master:       solidity.NewAddress(ctx, thor.KeyMaster),
	}
}

// Init writes the initial parameters, unset amounts take their defaults.
// It is meant for ledger deployment and is not gated.
func (p *Params) Init(master thor.Address, init InitParams) error {
	init = init.withDefaults()
	for _, v := range []*big.Int{init.RewardRatePerHour, init.MinStake, init.RewardQuantum} {
		if err := checkUint256(v); err != nil {
			return err
		}
	}
	if init.RewardQuantum.Sign() == 0 {
		return ErrZeroAmount
	}
	p.rewardRate.Set(init.RewardRatePerHour)
	p.minStake.Set(init.MinStake)
	p.cooldown.Set(new(big.Int).SetUint64(init.CompoundCooldown))
	p.lockDuration.Set(new(big.Int).SetUint64(init.LockDuration))
	p.quantum.Set(init.RewardQuantum)
	p.master.Set(&master)
	return nil
}

func checkUint256(v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		return ErrArithmeticOverflow
	}
	return nil
}

func (p *Params) RewardRatePerHour() (*big.Int, error) {
	v, err := p.rewardRate.Get()
	return v, errors.Wrap(err, "get reward rate")
}

func (p *Params) MinStake() (*big.Int, error) {
	v, err := p.minStake.Get()
	return v, errors.Wrap(err, "get min stake")
}

func (p *Params) CompoundCooldown() (uint64, error) {
	v, err := p.cooldown.Get()
	if err != nil {
		return 0, errors.Wrap(err, "get compound cooldown")
	}
	return v.Uint64(), nil
}

func (p *Params) LockDuration() (uint64, error) {
	v, err := p.lockDuration.Get()
	if err != nil {
		return 0, errors.Wrap(err, "get lock duration")
	}
	return v.Uint64(), nil
}

// RewardQuantum returns the divisor applied to accrued rewards, never zero.
func (p *Params) RewardQuantum() (*big.Int, error) {
	v, err := p.quantum.Get()
	if err != nil {
		return nil, errors.Wrap(err, "get reward quantum")
	}
	if v.Sign() == 0 {
		v.Set(thor.InitialRewardQuantum)
	}
	return v, nil
}

func (p *Params) Master() (thor.Address, error) {
	v, err := p.master.Get()
	return v, errors.Wrap(err, "get master")
}

// Values reads all parameters at once.
func (p *Params) Values() (*Values, error) {
	var (
		v   Values
		err error
	)
	if v.RewardRatePerHour, err = p.RewardRatePerHour(); err != nil {
		return nil, err
	}
	if v.MinStake, err = p.MinStake(); err != nil {
		return nil, err
	}
	if v.CompoundCooldown, err = p.CompoundCooldown(); err != nil {
		return nil, err
	}
	if v.LockDuration, err = p.LockDuration(); err != nil {
		return nil, err
	}
	if v.RewardQuantum, err = p.RewardQuantum(); err != nil {
		return nil, err
	}
	if v.Master, err = p.Master(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (p *Params) onlyMaster(caller thor.Address) error {
	master, err := p.Master()
	if err != nil {
		return err
	}
	if caller != master {
		return ErrNotMaster
	}
	return nil
}

func (p *Params) updated(caller thor.Address, name string, value *big.Int) {
	p.events.emit(&Event{
		Ledger:  p.ctx.Address(),
		Name:    EventParamUpdated,
		Account: caller,
		Amount:  value,
		Param:   name,
		Time:    p.clock.Now(),
	})
	logger.Info("ledger param updated", "ledger", p.ctx.Address(), "param", name, "value", value)
}

func (p *Params) setUint256(caller thor.Address, name string, slot *solidity.Uint256, value *big.Int) error {
	if err := p.onlyMaster(caller); err != nil {
		return err
	}
	if err := checkUint256(value); err != nil {
		return err
	}
	slot.Set(value)
	p.updated(caller, name, value)
	return nil
}

func (p *Params) SetRewardRatePerHour(caller thor.Address, rate *big.Int) error {
	return p.setUint256(caller, ParamRewardRatePerHour, p.rewardRate, rate)
}

func (p *Params) SetMinStake(caller thor.Address, minStake *big.Int) error {
	return p.setUint256(caller, ParamMinStake, p.minStake, minStake)
}

func (p *Params) SetCompoundCooldown(caller thor.Address, seconds uint64) error {
	return p.setUint256(caller, ParamCompoundCooldown, p.cooldown, new(big.Int).SetUint64(seconds))
}

func (p *Params) SetLockDuration(caller thor.Address, seconds uint64) error {
	return p.setUint256(caller, ParamLockDuration, p.lockDuration, new(big.Int).SetUint64(seconds))
}

func (p *Params) SetRewardQuantum(caller thor.Address, quantum *big.Int) error {
	if quantum != nil && quantum.Sign() == 0 {
		if err := p.onlyMaster(caller); err != nil {
			return err
		}
		return ErrZeroAmount
	}
	return p.setUint256(caller, ParamRewardQuantum, p.quantum, quantum)
}

func (p *Params) SetMaster(caller thor.Address, master thor.Address) error {
	if err := p.onlyMaster(caller); err != nil {
		return err
	}
	p.master.Set(&master)
	p.updated(caller, ParamMaster, new(big.Int).SetBytes(master.Bytes()))
	return nil
}
