// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/cache"
	"github.com/vechain/stakeledger/kv"
)

// Stage abstracts changes of a state ready to be written.
type Stage struct {
	changes map[storageKey]rlp.RawValue
	cache   *cache.LRU
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the batch and flushes it.
// The read cache is refreshed only once the batch has been written.
func (s *Stage) Commit(batch kv.Batch) error {
	for key, raw := range s.changes {
		var err error
		if len(raw) == 0 {
			err = batch.Delete(key.dbKey())
		} else {
			err = batch.Put(key.dbKey(), raw)
		}
		if err != nil {
			return errors.Wrap(err, "stage slot")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write batch")
	}
	metricCommittedSlots().Add(int64(len(s.changes)))

	if s.cache != nil {
		for key, raw := range s.changes {
			s.cache.Add(key, raw)
		}
	}
	return nil
}
