// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime hosts the staking ledgers of a node. It executes operations one at a time,
// each on a fresh state committed to the key-value store only when the operation succeeds.
package runtime

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/builtin/staking/reverts"
	"github.com/vechain/stakeledger/builtin/token"
	"github.com/vechain/stakeledger/cache"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/logdb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var logger = log.WithContext("pkg", "runtime")

const (
	stateBucket = kv.Bucket("s")
	metaBucket  = kv.Bucket("m")

	storageCacheSize = 16384
)

// ErrUnknownLedger is returned for a ledger name that is not configured.
var ErrUnknownLedger = errors.New("unknown ledger")

// Ledger describes a hosted ledger.
type Ledger struct {
	Name    string
	Kind    string
	Address thor.Address
}

// Runtime executes ledger operations against persistent storage.
type Runtime struct {
	mu      sync.RWMutex
	db      kv.Store
	cache   *cache.LRU
	logs    logdb.LogDB
	clock   clock.Clock
	ledgers map[string]*Ledger
	opNum   uint32
}

// New opens the runtime over db, building the genesis if db is empty.
func New(db kv.Store, logs logdb.LogDB, clk clock.Clock, genesis *Genesis) (*Runtime, error) {
	if err := genesis.validate(); err != nil {
		return nil, err
	}
	if err := setupGenesis(db, genesis, clk); err != nil {
		return nil, err
	}
	opNum, err := logs.NewestOpNum()
	if err != nil {
		return nil, errors.Wrap(err, "newest op num")
	}
	c, err := cache.NewLRU(storageCacheSize)
	if err != nil {
		return nil, err
	}

	ledgers := make(map[string]*Ledger, len(genesis.Ledgers))
	for _, l := range genesis.Ledgers {
		ledgers[l.Name] = &Ledger{
			Name:    l.Name,
			Kind:    l.Kind,
			Address: thor.LedgerAddress(l.Name),
		}
	}
	return &Runtime{
		db:      db,
		cache:   c,
		logs:    logs,
		clock:   clk,
		ledgers: ledgers,
		opNum:   opNum,
	}, nil
}

// Clock returns the clock operations are timed with.
func (rt *Runtime) Clock() clock.Clock {
	return rt.clock
}

// Ledgers returns the hosted ledgers sorted by name.
func (rt *Runtime) Ledgers() []*Ledger {
	out := make([]*Ledger, 0, len(rt.ledgers))
	for _, l := range rt.ledgers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Ledger returns the hosted ledger of the given name.
func (rt *Runtime) Ledger(name string) (*Ledger, error) {
	l, ok := rt.ledgers[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLedger, "%q", name)
	}
	return l, nil
}

func (rt *Runtime) newState() *state.State {
	return state.New(stateBucket.NewGetter(rt.db), rt.cache)
}

// bind instantiates the ledger over st.
func (rt *Runtime) bind(l *Ledger, st *state.State, events *staking.Events) any {
	fungible := token.NewFungible(TokenAddress, st)
	switch l.Kind {
	case staking.KindNFT:
		return staking.NewNFTStaking(l.Address, st, rt.clock, token.NewNonFungible(NFTAddress, st), fungible, events)
	case staking.KindMultiToken:
		return staking.NewMultiTokenStaking(l.Address, st, rt.clock, token.NewMultiToken(MultiTokenAddress, st), fungible, events)
	default:
		return staking.NewTokenStaking(l.Address, st, rt.clock, fungible, events)
	}
}

// Execute runs op and commits its effects. A failing op leaves storage untouched.
func (rt *Runtime) Execute(op *Op) (*Result, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	ledgerName := op.Ledger
	result, err := rt.execute(op)
	if op.Kind == OpTransfer {
		ledgerName = "-"
	}
	labels := map[string]string{"ledger": ledgerName, "op": string(op.Kind), "status": status(err)}
	metricOpCount().AddWithLabel(1, labels)
	metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": string(op.Kind)})
	if err != nil {
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "ledger", op.Ledger, "op", op.Kind, "caller", op.Caller, "reason", reverts.Reason(err))
		} else {
			logger.Warn("operation failed", "ledger", op.Ledger, "op", op.Kind, "caller", op.Caller, "err", err)
		}
		return nil, err
	}
	logger.Info("operation executed", "num", result.OpNum, "ledger", op.Ledger, "op", op.Kind, "caller", op.Caller, "events", len(result.Events))
	if changed, hit, miss := rt.cache.Stats.Stats(); changed {
		logger.Debug("storage cache stats", "hit", hit, "miss", miss, "hitrate", fmt.Sprintf("%.3f", rt.cache.Stats.HitRate()))
	}
	return result, nil
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case reverts.IsRevertErr(err):
		return "reverted"
	default:
		return "error"
	}
}

func (rt *Runtime) execute(op *Op) (*Result, error) {
	var (
		st     = rt.newState()
		events = staking.NewEvents()
		result = &Result{}
		ledger *Ledger
	)
	if op.Kind == OpTransfer {
		if err := token.NewFungible(TokenAddress, st).Transfer(op.Caller, op.To, op.Amount); err != nil {
			return nil, err
		}
	} else {
		var err error
		if ledger, err = rt.Ledger(op.Ledger); err != nil {
			return nil, err
		}
		if err := op.apply(rt.bind(ledger, st, events), result); err != nil {
			return nil, err
		}
	}

	if err := st.Stage().Commit(stateBucket.NewStore(rt.db).NewBatch()); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	rt.opNum++
	result.OpNum = rt.opNum
	result.Events = events.List()

	if err := rt.logs.Write(rt.opNum, toLogEvents(result.Events)); err != nil {
		// state is already committed, the event log lags behind
		logger.Error("failed to write events", "num", rt.opNum, "err", err)
	}
	if ledger != nil {
		rt.updateTotals(ledger, st)
	}
	return result, nil
}

func (rt *Runtime) updateTotals(l *Ledger, st *state.State) {
	if !metricsEnabled() {
		return
	}
	bound := rt.bind(l, st, nil)
	if total, err := bound.(interface{ TotalStaked() (*big.Int, error) }).TotalStaked(); err == nil && total.IsInt64() {
		metricLedgerTotals().SetWithLabel(total.Int64(), map[string]string{"ledger": l.Name, "total": "staked"})
	}
	if ts, ok := bound.(*staking.TokenStaking); ok {
		if funding, err := ts.TotalFunding(); err == nil && funding.IsInt64() {
			metricLedgerTotals().SetWithLabel(funding.Int64(), map[string]string{"ledger": l.Name, "total": "funding"})
		}
	}
}

func toLogEvents(events []*staking.Event) []*logdb.Event {
	out := make([]*logdb.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, &logdb.Event{
			Ledger:  ev.Ledger,
			Name:    ev.Name,
			Account: ev.Account,
			Amount:  ev.Amount,
			IDs:     ev.IDs,
			Param:   ev.Param,
			Time:    ev.Time,
		})
	}
	return out
}

// Events queries the event log.
func (rt *Runtime) Events(ctx context.Context, filter *logdb.EventFilter) ([]*logdb.Event, error) {
	return rt.logs.FilterEvents(ctx, filter)
}
