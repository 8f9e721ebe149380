// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakeledger/cache"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/stackedmap"
	"github.com/vechain/stakeledger/thor"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

// dbKey is the key of the slot in the backing store, address followed by slot key.
func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, len(k.addr)+len(k.key))
	return append(append(b, k.addr[:]...), k.key[:]...)
}

// State manages ledger storage.
// It is not safe for concurrent use.
type State struct {
	db    kv.Getter
	cache *cache.LRU // committed raw values, may be nil
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object over db. cache is optional and must only hold values committed to db.
func New(db kv.Getter, cache *cache.LRU) *State {
	s := &State{db: db, cache: cache}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key storageKey) (rlp.RawValue, bool, error) {
	if s.cache == nil {
		raw, err := s.loadFromDB(key)
		return raw, true, err
	}
	v, err := s.cache.GetOrLoad(key, func(any) (any, error) {
		return s.loadFromDB(key)
	})
	if err != nil {
		return nil, false, err
	}
	return v.(rlp.RawValue), true, nil
}

func (s *State) loadFromDB(key storageKey) (rlp.RawValue, error) {
	metricStorageLoads().AddWithLabel(1, map[string]string{"source": "db"})
	data, err := s.db.Get(key.dbKey())
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return thor.Bytes32{}, err
	}
	if len(raw) == 0 {
		return thor.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return thor.Blake2b(raw), nil
	}
	return thor.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr thor.Address, key, value thor.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
// An empty slot yields an empty value.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw. An empty value clears the slot.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	// the base level must stay so that writes remain possible
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage collects the cumulative changes for committing.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	for _, entry := range s.sm.Journal() {
		changes[entry.Key] = entry.Value
	}
	return &Stage{changes: changes, cache: s.cache}
}
