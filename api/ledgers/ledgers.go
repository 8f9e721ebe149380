// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledgers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
	"github.com/vechain/stakeledger/runtime"
	"github.com/vechain/stakeledger/thor"
)

type Ledgers struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Ledgers {
	return &Ledgers{rt}
}

func (l *Ledgers) ledger(req *http.Request) (*runtime.Ledger, error) {
	ledger, err := l.rt.Ledger(mux.Vars(req)["ledger"])
	if err != nil {
		return nil, utils.NotFound(err)
	}
	return ledger, nil
}

func (l *Ledgers) handleList(w http.ResponseWriter, _ *http.Request) error {
	ledgers := l.rt.Ledgers()
	out := make([]*Ledger, 0, len(ledgers))
	for _, ledger := range ledgers {
		out = append(out, &Ledger{Name: ledger.Name, Kind: ledger.Kind, Address: ledger.Address})
	}
	return utils.WriteJSON(w, out)
}

func (l *Ledgers) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	ledger, err := l.ledger(req)
	if err != nil {
		return err
	}
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	info, err := l.rt.Account(ledger.Name, addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(info))
}

func (l *Ledgers) handleGetParams(w http.ResponseWriter, req *http.Request) error {
	ledger, err := l.ledger(req)
	if err != nil {
		return err
	}
	values, err := l.rt.Params(ledger.Name)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertParams(values))
}

func (l *Ledgers) handleGetTotals(w http.ResponseWriter, req *http.Request) error {
	ledger, err := l.ledger(req)
	if err != nil {
		return err
	}
	totals, err := l.rt.Totals(ledger.Name)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Totals{
		TotalStaked:  hex256(totals.TotalStaked),
		TotalFunding: hex256(totals.TotalFunding),
		Balance:      hex256(totals.Balance),
	})
}

func (l *Ledgers) handleExecute(w http.ResponseWriter, req *http.Request) error {
	ledger, err := l.ledger(req)
	if err != nil {
		return err
	}
	var op Op
	if err := utils.ParseJSON(req.Body, &op); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if op.Kind == "" {
		return utils.BadRequest(errors.New("body: kind is required"))
	}
	if op.Kind == runtime.OpTransfer {
		return utils.BadRequest(errors.New("body: transfer is not a ledger operation"))
	}
	res, err := l.rt.Execute(convertOp(ledger.Name, &op))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertResult(res))
}

func (l *Ledgers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /ledgers").
		HandlerFunc(utils.WrapHandlerFunc(l.handleList))
	sub.Path("/{ledger}/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /ledgers/{ledger}/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetAccount))
	sub.Path("/{ledger}/params").
		Methods(http.MethodGet).
		Name("GET /ledgers/{ledger}/params").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetParams))
	sub.Path("/{ledger}/totals").
		Methods(http.MethodGet).
		Name("GET /ledgers/{ledger}/totals").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetTotals))
	sub.Path("/{ledger}/ops").
		Methods(http.MethodPost).
		Name("POST /ledgers/{ledger}/ops").
		HandlerFunc(utils.WrapHandlerFunc(l.handleExecute))
}
