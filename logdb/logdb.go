// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/thor"
)

const (
	insertEvent  = "INSERT OR REPLACE INTO event(seq, ledger, name, account, amount, ids, param, time) VALUES(?,?,?,?,?,?,?,?)"
	selectEvents = "SELECT seq, ledger, name, account, amount, ids, param, time FROM event WHERE 1"
)

type logDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (LogDB, error) {
	return open(path, "file:"+path+"?_journal_mode=WAL&_synchronous=NORMAL")
}

// NewMem create a log db in ram.
func NewMem() (LogDB, error) {
	return open(":memory:", ":memory:")
}

func open(path, dsn string) (LogDB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps an in-memory db alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &logDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

func (db *logDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *logDB) Path() string {
	return db.path
}

func (db *logDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, selectEvents+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var (
		args []any
		stmt = selectEvents
	)
	if filter.Ledger != nil {
		args = append(args, filter.Ledger.Bytes())
		stmt += " AND ledger = ?"
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ?"
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ?"
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *logDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     int64
			ledger  []byte
			name    string
			account []byte
			amount  []byte
			ids     []byte
			param   sql.NullString
			time    uint64
		)
		if err := rows.Scan(&seq, &ledger, &name, &account, &amount, &ids, &param, &time); err != nil {
			return nil, err
		}
		event := &Event{
			OpNum:   sequence(seq).OpNum(),
			Index:   sequence(seq).Index(),
			Ledger:  thor.BytesToAddress(ledger),
			Name:    name,
			Account: thor.BytesToAddress(account),
			Amount:  new(big.Int).SetBytes(amount),
			Param:   param.String,
			Time:    time,
		}
		if len(ids) > 0 {
			if err := rlp.DecodeBytes(ids, &event.IDs); err != nil {
				return nil, errors.Wrap(err, "decode ids")
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *logDB) NewestOpNum() (uint32, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).OpNum(), nil
}

func (db *logDB) Write(opNum uint32, events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	// prepared before the tx takes the only connection
	stmt, err := db.stmtCache.Prepare(insertEvent)
	if err != nil {
		return err
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	txStmt := tx.Stmt(stmt)
	for i, ev := range events {
		var ids []byte
		if len(ev.IDs) > 0 {
			if ids, err = rlp.EncodeToBytes(ev.IDs); err != nil {
				tx.Rollback()
				return errors.Wrap(err, "encode ids")
			}
		}
		var amount []byte
		if ev.Amount != nil {
			amount = ev.Amount.Bytes()
		}
		if _, err := txStmt.Exec(
			int64(newSequence(opNum, uint32(i))),
			ev.Ledger.Bytes(),
			ev.Name,
			ev.Account.Bytes(),
			amount,
			ids,
			ev.Param,
			ev.Time,
		); err != nil {
			tx.Rollback()
			return err
		}
		ev.OpNum, ev.Index = opNum, uint32(i)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricWrittenEvents().Add(int64(len(events)))
	return nil
}
