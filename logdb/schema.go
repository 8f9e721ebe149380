// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// event table of ledger events, seq orders them across operations.
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	ledger BLOB NOT NULL,
	name TEXT NOT NULL,
	account BLOB NOT NULL,
	amount BLOB,
	ids BLOB,
	param TEXT,
	time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(ledger, seq);
CREATE INDEX IF NOT EXISTS event_i1 ON event(account, seq);
CREATE INDEX IF NOT EXISTS event_i2 ON event(time);`
