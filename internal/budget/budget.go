// Package budget tracks per-category spend caps and computes spent vs
// budget over an already-filtered set of Debit transactions.
package budget

import (
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/xinshuoliu/Finance/internal/store"
)

// FileName is the store document under the data directory.
const FileName = "budgets.json"

// Store maps category name -> spend cap. An absent entry means no budget
// is set, which is distinct from a budget of zero.
type Store struct {
	path string
	caps map[string]decimal.Decimal
}

// Load reads budgets.json from the data dir, falling back to an empty
// store on a missing or corrupt file.
func Load(dir string) *Store {
	s := &Store{
		path: filepath.Join(dir, FileName),
		caps: make(map[string]decimal.Decimal),
	}
	store.Load(s.path, &s.caps)
	if s.caps == nil {
		s.caps = make(map[string]decimal.Decimal)
	}
	return s
}

// Get returns the cap for a category and whether one is set.
func (s *Store) Get(category string) (decimal.Decimal, bool) {
	c, ok := s.caps[category]
	return c, ok
}

// Set saves a non-negative cap for a category and persists. A negative
// amount is rejected as a no-op reported false.
func (s *Store) Set(category string, amount decimal.Decimal) (bool, error) {
	if amount.IsNegative() {
		return false, nil
	}
	s.caps[category] = amount
	if err := store.Save(s.path, s.caps); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes a category's cap entirely, reverting it to unset, and
// persists. Clearing an unset category reports false.
func (s *Store) Clear(category string) (bool, error) {
	if _, ok := s.caps[category]; !ok {
		return false, nil
	}
	delete(s.caps, category)
	if err := store.Save(s.path, s.caps); err != nil {
		return false, err
	}
	return true, nil
}
