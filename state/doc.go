// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides a revertible storage overlay over a key-value store.
// Every ledger slot lives at (address, key). Changes stay in memory until staged and committed.
package state
