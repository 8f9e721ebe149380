// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/staking"
	"github.com/vechain/stakeledger/builtin/staking/reverts"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/logdb"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/runtime"
	"github.com/vechain/stakeledger/thor"
)

// step is either a clock advance, an operation or an account view. An operation
// may declare the revert reason it is expected to fail with.
type step struct {
	Advance uint64         `yaml:"advance"`
	Op      runtime.OpKind `yaml:"op"`
	Ledger  string         `yaml:"ledger"`
	Caller  string         `yaml:"caller"`
	Amount  *amount        `yaml:"amount"`
	ID      *amount        `yaml:"id"`
	IDs     []*amount      `yaml:"ids"`
	Param   string         `yaml:"param"`
	To      string         `yaml:"to"`
	Expect  string         `yaml:"expect"`
	Show    string         `yaml:"show"`
}

// Scenario is a scripted run against in-memory ledgers. Accounts names an address
// so steps can refer to it by name.
type Scenario struct {
	Start    uint64                  `yaml:"start"`
	Accounts map[string]thor.Address `yaml:"accounts"`
	Config   Config                  `yaml:"config"`
	Steps    []step                  `yaml:"steps"`
}

func loadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sc Scenario
	if err := parseConfig(f, &sc); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return &sc, nil
}

func (sc *Scenario) resolve(s string) (thor.Address, error) {
	if addr, ok := sc.Accounts[s]; ok {
		return addr, nil
	}
	return thor.ParseAddress(s)
}

func (sc *Scenario) name(addr thor.Address) string {
	for name, a := range sc.Accounts {
		if a == addr {
			return name
		}
	}
	return addr.String()
}

func (sc *Scenario) op(s *step) (*runtime.Op, error) {
	op := &runtime.Op{
		Ledger: s.Ledger,
		Kind:   s.Op,
		Amount: s.Amount.big(),
		ID:     s.ID.big(),
		Param:  s.Param,
	}
	if len(s.IDs) > 0 {
		op.IDs = bigs(s.IDs)
	}
	var err error
	if op.Caller, err = sc.resolve(s.Caller); err != nil {
		return nil, errors.WithMessage(err, "caller")
	}
	if s.To != "" {
		if op.To, err = sc.resolve(s.To); err != nil {
			return nil, errors.WithMessage(err, "to")
		}
	}
	return op, nil
}

// Run executes the steps in order and writes one line per step to w. It stops at the
// first step whose outcome differs from its expectation.
func (sc *Scenario) Run(w io.Writer) error {
	db, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer db.Close()
	logs, err := logdb.NewMem()
	if err != nil {
		return err
	}
	defer logs.Close()

	start := sc.Start
	if start == 0 {
		start = 1
	}
	clk := clock.NewManual(start)
	rt, err := runtime.New(db, logs, clk, sc.Config.Genesis())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	for i := range sc.Steps {
		s := &sc.Steps[i]
		if s.Advance > 0 {
			clk.Advance(s.Advance)
		}
		elapsed := fmt.Sprintf("+%ds", clk.Now()-start)
		if s.Advance > 0 {
			fmt.Fprintf(tw, "%d\t%s\tadvance %ds\n", i, elapsed, s.Advance)
		}
		if s.Op != "" {
			if err := sc.execute(tw, rt, i, elapsed, s); err != nil {
				return err
			}
		}
		if s.Show != "" {
			if err := sc.show(tw, rt, i, elapsed, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (sc *Scenario) execute(w io.Writer, rt *runtime.Runtime, i int, elapsed string, s *step) error {
	op, err := sc.op(s)
	if err != nil {
		return errors.WithMessagef(err, "step %d", i)
	}
	res, err := rt.Execute(op)
	if err != nil {
		if !reverts.IsRevertErr(err) {
			return errors.WithMessagef(err, "step %d", i)
		}
		reason := reverts.Reason(err)
		fmt.Fprintf(w, "%d\t%s\t%s %s %s\treverted: %s\n", i, elapsed, s.Op, s.Ledger, s.Caller, reason)
		if s.Expect == "" || !strings.Contains(reason, s.Expect) {
			return fmt.Errorf("step %d: unexpected revert %q", i, reason)
		}
		return nil
	}
	if s.Expect != "" {
		return fmt.Errorf("step %d: expected revert %q, succeeded", i, s.Expect)
	}

	events := make([]string, 0, len(res.Events))
	for _, ev := range res.Events {
		events = append(events, sc.formatEvent(ev))
	}
	log.Debug("step executed", "step", i, "op", s.Op, "opNum", res.OpNum)
	fmt.Fprintf(w, "%d\t%s\t%s %s %s\tok %s\n", i, elapsed, s.Op, s.Ledger, s.Caller, strings.Join(events, " "))
	return nil
}

func (sc *Scenario) formatEvent(ev *staking.Event) string {
	var args []string
	if ev.Param != "" {
		args = append(args, ev.Param)
	}
	args = append(args, sc.name(ev.Account))
	if len(ev.IDs) > 0 {
		ids := make([]string, 0, len(ev.IDs))
		for _, id := range ev.IDs {
			ids = append(ids, id.String())
		}
		args = append(args, "["+strings.Join(ids, ",")+"]")
	}
	if ev.Amount != nil {
		args = append(args, ev.Amount.String())
	}
	return ev.Name + "(" + strings.Join(args, ",") + ")"
}

func (sc *Scenario) show(w io.Writer, rt *runtime.Runtime, i int, elapsed string, s *step) error {
	addr, err := sc.resolve(s.Show)
	if err != nil {
		return errors.WithMessagef(err, "step %d: show", i)
	}
	info, err := rt.Account(s.Ledger, addr)
	if err != nil {
		return errors.WithMessagef(err, "step %d", i)
	}
	totals, err := rt.Totals(s.Ledger)
	if err != nil {
		return errors.WithMessagef(err, "step %d", i)
	}
	balance, err := rt.Balance(addr)
	if err != nil {
		return errors.WithMessagef(err, "step %d", i)
	}
	fmt.Fprintf(w, "%d\t%s\tshow %s %s\tprincipal=%v unclaimed=%v projected=%v balance=%v totalStaked=%v\n",
		i, elapsed, s.Ledger, s.Show,
		info.Principal, info.UnclaimedRewards, info.ProjectedRewards, balance, totals.TotalStaked)
	return nil
}
