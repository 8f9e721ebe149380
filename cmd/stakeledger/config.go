// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/runtime"
	"github.com/vechain/stakeledger/thor"
)

// amount is a decimal or 0x prefixed hex 256-bit integer.
type amount struct {
	*big.Int
}

func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	v, ok := math.ParseBig256(node.Value)
	if !ok {
		return fmt.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	a.Int = v
	return nil
}

func (a *amount) big() *big.Int {
	if a == nil || a.Int == nil {
		return nil
	}
	return new(big.Int).Set(a.Int)
}

func bigs(as []*amount) []*big.Int {
	out := make([]*big.Int, 0, len(as))
	for _, a := range as {
		out = append(out, a.big())
	}
	return out
}

type paramsConfig struct {
	RewardRatePerHour *amount `yaml:"rewardRatePerHour"`
	MinStake          *amount `yaml:"minStake"`
	CompoundCooldown  *uint64 `yaml:"compoundCooldown"`
	LockDuration      *uint64 `yaml:"lockDuration"`
	RewardQuantum     *amount `yaml:"rewardQuantum"`
}

type ledgerConfig struct {
	Name   string       `yaml:"name"`
	Kind   string       `yaml:"kind"`
	Master thor.Address `yaml:"master"`
	Params paramsConfig `yaml:"params"`
}

type multiConfig struct {
	ID     *amount `yaml:"id"`
	Amount *amount `yaml:"amount"`
}

type allocationConfig struct {
	Address thor.Address  `yaml:"address"`
	Amount  *amount       `yaml:"amount"`
	NFTs    []*amount     `yaml:"nfts"`
	Multi   []multiConfig `yaml:"multi"`
}

// Config is the YAML node configuration.
type Config struct {
	Ledgers     []ledgerConfig     `yaml:"ledgers"`
	Allocations []allocationConfig `yaml:"allocations"`
}

func parseConfig(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode yaml")
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := parseConfig(f, &cfg); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return &cfg, nil
}

// Genesis converts the config, unset params take their defaults.
func (c *Config) Genesis() *runtime.Genesis {
	g := &runtime.Genesis{}
	for _, l := range c.Ledgers {
		params := staking.DefaultInitParams()
		if v := l.Params.RewardRatePerHour.big(); v != nil {
			params.RewardRatePerHour = v
		}
		if v := l.Params.MinStake.big(); v != nil {
			params.MinStake = v
		}
		if v := l.Params.RewardQuantum.big(); v != nil {
			params.RewardQuantum = v
		}
		if l.Params.CompoundCooldown != nil {
			params.CompoundCooldown = *l.Params.CompoundCooldown
		}
		if l.Params.LockDuration != nil {
			params.LockDuration = *l.Params.LockDuration
		}
		g.Ledgers = append(g.Ledgers, runtime.LedgerConfig{
			Name:   l.Name,
			Kind:   l.Kind,
			Master: l.Master,
			Params: params,
		})
	}
	for _, a := range c.Allocations {
		alloc := runtime.Allocation{
			Address: a.Address,
			Amount:  a.Amount.big(),
		}
		if len(a.NFTs) > 0 {
			alloc.NFTs = bigs(a.NFTs)
		}
		for _, m := range a.Multi {
			alloc.Multi = append(alloc.Multi, runtime.MultiAllocation{ID: m.ID.big(), Amount: m.Amount.big()})
		}
		g.Allocations = append(g.Allocations, alloc)
	}
	return g
}

// devConfig is used when no config is given: one ledger of each kind mastered by the
// first dev account, every dev account holding tokens, nfts and multi tokens.
func devConfig() *Config {
	cfg := &Config{}
	for _, kind := range []string{staking.KindToken, staking.KindNFT, staking.KindMultiToken} {
		cfg.Ledgers = append(cfg.Ledgers, ledgerConfig{Name: kind, Kind: kind, Master: devAccounts[0]})
	}
	for i, addr := range devAccounts {
		cfg.Allocations = append(cfg.Allocations, allocationConfig{
			Address: addr,
			Amount:  &amount{new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))},
			NFTs:    []*amount{{big.NewInt(int64(i*10 + 1))}, {big.NewInt(int64(i*10 + 2))}},
			Multi:   []multiConfig{{ID: &amount{big.NewInt(1)}, Amount: &amount{big.NewInt(100)}}},
		})
	}
	for _, kind := range []string{staking.KindNFT, staking.KindMultiToken} {
		cfg.Allocations = append(cfg.Allocations, allocationConfig{
			Address: thor.LedgerAddress(kind),
			Amount:  &amount{new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))},
		})
	}
	return cfg
}

var devAccounts = func() []thor.Address {
	var addrs []thor.Address
	for i := range 4 {
		addrs = append(addrs, thor.BytesToAddress(thor.Blake2b([]byte(fmt.Sprintf("dev-%d", i))).Bytes()))
	}
	return addrs
}()
