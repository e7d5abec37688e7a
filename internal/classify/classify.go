// Package classify assigns a category to each transaction by matching the
// ordered keyword rules of the category store against the details text.
package classify

import (
	"strings"

	"github.com/xinshuoliu/Finance/internal/categories"
	"github.com/xinshuoliu/Finance/internal/model"
)

// Apply classifies transactions in place and returns the slice.
//
// Rules are evaluated in store insertion order and a later match
// overwrites an earlier one unconditionally: last match wins. Reordering
// categories therefore changes outcomes, which is user-observable and
// deliberate. Matching is an unanchored case-insensitive substring test
// against the trimmed details, so short keywords can over-match.
func Apply(txns []model.Transaction, store *categories.Store) []model.Transaction {
	for i := range txns {
		txns[i].Category = model.Uncategorized
	}

	for _, cat := range store.Categories() {
		if cat.Name == model.Uncategorized || len(cat.Keywords) == 0 {
			continue
		}

		lowered := make([]string, len(cat.Keywords))
		for i, kw := range cat.Keywords {
			lowered[i] = strings.ToLower(strings.TrimSpace(kw))
		}

		for i := range txns {
			details := txns[i].NormalizedDetails()
			for _, kw := range lowered {
				if kw != "" && strings.Contains(details, kw) {
					txns[i].Category = cat.Name
					break
				}
			}
		}
	}

	return txns
}
