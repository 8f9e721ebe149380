// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"math/big"
	"net/http"

	cmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
	"github.com/vechain/stakeledger/logdb"
	"github.com/vechain/stakeledger/runtime"
	"github.com/vechain/stakeledger/thor"
)

// Event is a logged ledger event.
type Event struct {
	OpNum   uint32                   `json:"opNum"`
	Index   uint32                   `json:"index"`
	Ledger  thor.Address             `json:"ledger"`
	Name    string                   `json:"name"`
	Account thor.Address             `json:"account"`
	Amount  *cmath.HexOrDecimal256   `json:"amount,omitempty"`
	IDs     []*cmath.HexOrDecimal256 `json:"ids,omitempty"`
	Param   string                   `json:"param,omitempty"`
	Time    uint64                   `json:"time"`
}

func convertEvent(ev *logdb.Event) *Event {
	out := &Event{
		OpNum:   ev.OpNum,
		Index:   ev.Index,
		Ledger:  ev.Ledger,
		Name:    ev.Name,
		Account: ev.Account,
		Amount:  (*cmath.HexOrDecimal256)(ev.Amount),
		Param:   ev.Param,
		Time:    ev.Time,
	}
	for _, id := range ev.IDs {
		out.IDs = append(out.IDs, (*cmath.HexOrDecimal256)(new(big.Int).Set(id)))
	}
	return out
}

type Events struct {
	rt    *runtime.Runtime
	limit uint64
}

func New(rt *runtime.Runtime, logsLimit uint64) *Events {
	return &Events{
		rt,
		logsLimit,
	}
}

func (e *Events) parseFilter(req *http.Request) (*logdb.EventFilter, error) {
	query := req.URL.Query()
	filter := &logdb.EventFilter{Name: query.Get("name")}

	if name := query.Get("ledger"); name != "" {
		ledger, err := e.rt.Ledger(name)
		if err != nil {
			return nil, utils.NotFound(err)
		}
		filter.Ledger = &ledger.Address
	}
	if s := query.Get("account"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}

	from, err := utils.ParseUint64(query.Get("from"), 0)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "from"))
	}
	to, err := utils.ParseUint64(query.Get("to"), math.MaxInt64)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "to"))
	}
	if to > math.MaxInt64 {
		to = math.MaxInt64
	}
	if from > to {
		return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
	}
	if from > 0 || to < math.MaxInt64 {
		filter.Range = &logdb.Range{From: from, To: to}
	}

	offset, err := utils.ParseUint64(query.Get("offset"), 0)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "offset"))
	}
	if offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	limit, err := utils.ParseUint64(query.Get("limit"), e.limit)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "limit"))
	}
	if limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}
	filter.Options = &logdb.Options{Offset: offset, Limit: limit}

	switch order := logdb.Order(query.Get("order")); order {
	case "", logdb.ASC, logdb.DESC:
		filter.Order = order
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unknown value %q", order))
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := e.rt.Events(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		out = append(out, convertEvent(ev))
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
