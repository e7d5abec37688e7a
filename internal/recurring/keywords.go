// Package recurring flags subscription-like debits. Two decoupled parts:
// matching against the user's recurring keyword list, and unsupervised
// candidate detection by distinct-month frequency. Detection never adds
// keywords on its own.
package recurring

import (
	"path/filepath"
	"strings"

	"github.com/xinshuoliu/Finance/internal/store"
)

// FileName is the store document under the data directory.
const FileName = "recurring.json"

// Keywords is the ordered, user-declared recurring keyword list.
type Keywords struct {
	path  string
	words []string
}

// LoadKeywords reads recurring.json from the data dir, falling back to an
// empty list on a missing or corrupt file.
func LoadKeywords(dir string) *Keywords {
	k := &Keywords{path: filepath.Join(dir, FileName)}
	store.Load(k.path, &k.words)
	return k
}

// All returns the keywords in declaration order.
func (k *Keywords) All() []string {
	out := make([]string, len(k.words))
	copy(out, k.words)
	return out
}

// Add appends a keyword and persists. Empty text and case-insensitive
// duplicates are no-ops reported false.
func (k *Keywords) Add(word string) (bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return false, nil
	}

	lowered := strings.ToLower(word)
	for _, w := range k.words {
		if strings.ToLower(strings.TrimSpace(w)) == lowered {
			return false, nil
		}
	}

	k.words = append(k.words, word)
	if err := k.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a keyword (case-insensitive match) and persists.
// Reports false if the keyword was not present.
func (k *Keywords) Remove(word string) (bool, error) {
	lowered := strings.ToLower(strings.TrimSpace(word))

	kept := k.words[:0]
	removed := false
	for _, w := range k.words {
		if strings.ToLower(strings.TrimSpace(w)) == lowered {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	if !removed {
		return false, nil
	}

	k.words = kept
	if err := k.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (k *Keywords) save() error {
	words := k.words
	if words == nil {
		words = []string{}
	}
	return store.Save(k.path, words)
}
