// Package filter narrows a transaction set by date range, direction, and
// details search before it is handed to the engine's aggregations. The
// engine itself never filters; callers decide the window.
package filter

import (
	"strings"
	"time"

	"github.com/xinshuoliu/Finance/internal/model"
)

// Criteria describes the wanted transaction subset. Zero values leave the
// corresponding dimension unfiltered.
type Criteria struct {
	From      time.Time       // inclusive, date precision
	To        time.Time       // inclusive, date precision
	Direction model.Direction // "" keeps both directions
	Search    string          // case-insensitive substring of details
}

// Apply returns the transactions matching all set criteria, preserving
// input order.
func Apply(txns []model.Transaction, c Criteria) []model.Transaction {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	var out []model.Transaction
	for _, t := range txns {
		if !c.From.IsZero() && t.Date.Before(dateOnly(c.From)) {
			continue
		}
		if !c.To.IsZero() && t.Date.After(dateOnly(c.To)) {
			continue
		}
		if c.Direction != "" && t.Direction != c.Direction {
			continue
		}
		if search != "" && !strings.Contains(t.NormalizedDetails(), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Debits returns only the Debit transactions, preserving order.
func Debits(txns []model.Transaction) []model.Transaction {
	return Apply(txns, Criteria{Direction: model.Debit})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
