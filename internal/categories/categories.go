// Package categories owns the category -> keyword mapping that drives
// classification. The mapping is ordered: insertion order is the rule
// precedence seen by the classifier, so it must survive persistence.
package categories

import (
	"path/filepath"
	"strings"

	"github.com/xinshuoliu/Finance/internal/model"
	"github.com/xinshuoliu/Finance/internal/store"
)

// FileName is the store document under the data directory.
const FileName = "categories.json"

// Category is one named rule set.
type Category struct {
	Name     string
	Keywords []string
}

// Store holds the in-memory category mapping plus its backing file.
type Store struct {
	path string
	doc  document
}

// Load reads categories.json from the data dir. A missing or corrupt file
// falls back to the default store containing only the sentinel category.
func Load(dir string) *Store {
	s := &Store{path: filepath.Join(dir, FileName)}
	store.Load(s.path, &s.doc)
	s.ensureSentinel()
	return s
}

// ensureSentinel guarantees the sentinel category exists even when the
// loaded document predates it or was hand-edited.
func (s *Store) ensureSentinel() {
	if !s.doc.has(model.Uncategorized) {
		s.doc.prepend(model.Uncategorized)
	}
}

// Names returns all category names in insertion order.
func (s *Store) Names() []string {
	names := make([]string, len(s.doc.names))
	copy(names, s.doc.names)
	return names
}

// Categories returns the full ordered rule list.
func (s *Store) Categories() []Category {
	cats := make([]Category, 0, len(s.doc.names))
	for _, name := range s.doc.names {
		kws := s.doc.keywords[name]
		out := make([]string, len(kws))
		copy(out, kws)
		cats = append(cats, Category{Name: name, Keywords: out})
	}
	return cats
}

// Keywords returns the keyword list for a category, nil if absent.
func (s *Store) Keywords(name string) []string {
	kws, ok := s.doc.keywords[name]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// Has reports whether a category exists.
func (s *Store) Has(name string) bool {
	return s.doc.has(name)
}

// Add creates a new category with an empty keyword set and persists.
// Reports false without touching the store if the category already exists.
func (s *Store) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || s.doc.has(name) {
		return false, nil
	}
	s.doc.append(name)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Learn records a user correction: the transaction's details text becomes
// a keyword of the chosen category. The category is created if absent.
// Empty text and case-insensitive duplicates are no-ops reported as false.
func (s *Store) Learn(category, details string) (bool, error) {
	details = strings.TrimSpace(details)
	if details == "" {
		return false, nil
	}

	if !s.doc.has(category) {
		s.doc.append(category)
	}

	lowered := strings.ToLower(details)
	for _, kw := range s.doc.keywords[category] {
		if strings.ToLower(strings.TrimSpace(kw)) == lowered {
			return false, nil
		}
	}

	// Keep the raw text: case is preserved for display, matching lowers it.
	s.doc.keywords[category] = append(s.doc.keywords[category], details)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) save() error {
	return store.Save(s.path, &s.doc)
}
