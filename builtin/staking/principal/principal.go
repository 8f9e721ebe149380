// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package principal holds the representations of staked principal.
// A scalar amount, a set of token ids, and per-id quantities all reduce to a magnitude
// that rewards accrue against.
package principal

import (
	"math/big"
	"sort"
)

// Principal is what an account has locked in a ledger.
type Principal interface {
	// Magnitude is the weight rewards accrue against.
	Magnitude() *big.Int
	IsEmpty() bool
}

// Pointer constrains ledgers to principals whose zero value is a nil pointer,
// the state of an account never stored.
type Pointer interface {
	Principal
	comparable
}

// Scalar is a fungible amount.
type Scalar struct {
	Amount *big.Int
}

func NewScalar() *Scalar {
	return &Scalar{Amount: new(big.Int)}
}

func (s *Scalar) Magnitude() *big.Int {
	if s.Amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(s.Amount)
}

func (s *Scalar) IsEmpty() bool {
	return s.Amount == nil || s.Amount.Sign() == 0
}

func (s *Scalar) Add(amount *big.Int) {
	s.Amount = new(big.Int).Add(s.Magnitude(), amount)
}

// Sub lowers the amount, it reports false and changes nothing if amount exceeds it.
func (s *Scalar) Sub(amount *big.Int) bool {
	cur := s.Magnitude()
	if cur.Cmp(amount) < 0 {
		return false
	}
	s.Amount = cur.Sub(cur, amount)
	return true
}

// IDSet is a set of token ids kept sorted ascending.
type IDSet struct {
	IDs []*big.Int
}

func NewIDSet() *IDSet {
	return &IDSet{}
}

func (s *IDSet) Magnitude() *big.Int {
	return big.NewInt(int64(len(s.IDs)))
}

func (s *IDSet) IsEmpty() bool {
	return len(s.IDs) == 0
}

func (s *IDSet) search(id *big.Int) (int, bool) {
	i := sort.Search(len(s.IDs), func(i int) bool { return s.IDs[i].Cmp(id) >= 0 })
	return i, i < len(s.IDs) && s.IDs[i].Cmp(id) == 0
}

func (s *IDSet) Contains(id *big.Int) bool {
	_, found := s.search(id)
	return found
}

// Insert adds id, it reports false if id is already present.
func (s *IDSet) Insert(id *big.Int) bool {
	i, found := s.search(id)
	if found {
		return false
	}
	s.IDs = append(s.IDs, nil)
	copy(s.IDs[i+1:], s.IDs[i:])
	s.IDs[i] = new(big.Int).Set(id)
	return true
}

// Remove drops id, it reports false if id is absent.
func (s *IDSet) Remove(id *big.Int) bool {
	i, found := s.search(id)
	if !found {
		return false
	}
	s.IDs = append(s.IDs[:i], s.IDs[i+1:]...)
	return true
}

// List returns a copy of the ids.
func (s *IDSet) List() []*big.Int {
	out := make([]*big.Int, 0, len(s.IDs))
	for _, id := range s.IDs {
		out = append(out, new(big.Int).Set(id))
	}
	return out
}

// Entry is the quantity staked for one token id.
type Entry struct {
	ID     *big.Int
	Amount *big.Int
}

// IDQuantities maps token ids to positive quantities, sorted by id.
// Entries never hold a zero quantity.
type IDQuantities struct {
	Entries []*Entry
}

func NewIDQuantities() *IDQuantities {
	return &IDQuantities{}
}

func (q *IDQuantities) Magnitude() *big.Int {
	sum := new(big.Int)
	for _, e := range q.Entries {
		sum.Add(sum, e.Amount)
	}
	return sum
}

func (q *IDQuantities) IsEmpty() bool {
	return len(q.Entries) == 0
}

func (q *IDQuantities) search(id *big.Int) (int, bool) {
	i := sort.Search(len(q.Entries), func(i int) bool { return q.Entries[i].ID.Cmp(id) >= 0 })
	return i, i < len(q.Entries) && q.Entries[i].ID.Cmp(id) == 0
}

// Get returns the quantity staked for id, zero if absent.
func (q *IDQuantities) Get(id *big.Int) *big.Int {
	if i, found := q.search(id); found {
		return new(big.Int).Set(q.Entries[i].Amount)
	}
	return new(big.Int)
}

// Add increases the quantity of id, creating the entry if absent.
func (q *IDQuantities) Add(id, amount *big.Int) {
	if amount.Sign() <= 0 {
		return
	}
	i, found := q.search(id)
	if found {
		q.Entries[i].Amount = new(big.Int).Add(q.Entries[i].Amount, amount)
		return
	}
	q.Entries = append(q.Entries, nil)
	copy(q.Entries[i+1:], q.Entries[i:])
	q.Entries[i] = &Entry{ID: new(big.Int).Set(id), Amount: new(big.Int).Set(amount)}
}

// Sub decreases the quantity of id and removes the entry when it reaches zero.
// It reports false and changes nothing if amount exceeds the quantity.
func (q *IDQuantities) Sub(id, amount *big.Int) bool {
	i, found := q.search(id)
	if !found {
		return amount.Sign() == 0
	}
	left := new(big.Int).Sub(q.Entries[i].Amount, amount)
	switch left.Sign() {
	case -1:
		return false
	case 0:
		q.Entries = append(q.Entries[:i], q.Entries[i+1:]...)
	default:
		q.Entries[i].Amount = left
	}
	return true
}

// List returns copies of the ids and their quantities, index aligned.
func (q *IDQuantities) List() (ids []*big.Int, amounts []*big.Int) {
	ids = make([]*big.Int, 0, len(q.Entries))
	amounts = make([]*big.Int, 0, len(q.Entries))
	for _, e := range q.Entries {
		ids = append(ids, new(big.Int).Set(e.ID))
		amounts = append(amounts, new(big.Int).Set(e.Amount))
	}
	return
}
