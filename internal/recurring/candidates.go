package recurring

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/xinshuoliu/Finance/internal/model"
)

const (
	// DefaultMinMonths is the default distinct-month threshold.
	DefaultMinMonths = 3
	// MinMonthsFloor and MinMonthsCeil bound the user-adjustable threshold.
	MinMonthsFloor = 2
	MinMonthsCeil  = 12
	// MaxCandidates caps the returned candidate list.
	MaxCandidates = 50
)

// Candidate is a merchant detected, not yet confirmed, as recurring.
type Candidate struct {
	Merchant    string
	Months      int // distinct calendar months with at least one debit
	Occurrences int
	Total       decimal.Decimal
	Average     decimal.Decimal
}

// ClampMinMonths snaps a threshold into the supported 2..12 range,
// substituting the default for non-positive input.
func ClampMinMonths(n int) int {
	if n <= 0 {
		return DefaultMinMonths
	}
	if n < MinMonthsFloor {
		return MinMonthsFloor
	}
	if n > MinMonthsCeil {
		return MinMonthsCeil
	}
	return n
}

// Candidates groups the given transactions (callers pass the debit
// window) by exact details string and returns merchants seen in at least
// minMonths distinct calendar months, sorted by distinct-month count then
// total amount, both descending, and capped at MaxCandidates rows.
func Candidates(txns []model.Transaction, minMonths int) []Candidate {
	minMonths = ClampMinMonths(minMonths)

	type acc struct {
		count  int
		total  decimal.Decimal
		months map[string]struct{}
	}

	merchants := make(map[string]*acc)
	for _, t := range txns {
		a, ok := merchants[t.Details]
		if !ok {
			a = &acc{months: make(map[string]struct{})}
			merchants[t.Details] = a
		}
		a.count++
		a.total = a.total.Add(t.Amount)
		a.months[t.MonthKey()] = struct{}{}
	}

	var candidates []Candidate
	for details, a := range merchants {
		if len(a.months) < minMonths {
			continue
		}
		candidates = append(candidates, Candidate{
			Merchant:    details,
			Months:      len(a.months),
			Occurrences: a.count,
			Total:       a.total,
			Average:     a.total.Div(decimal.NewFromInt(int64(a.count))),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Months != candidates[j].Months {
			return candidates[i].Months > candidates[j].Months
		}
		if !candidates[i].Total.Equal(candidates[j].Total) {
			return candidates[i].Total.GreaterThan(candidates[j].Total)
		}
		return candidates[i].Merchant < candidates[j].Merchant
	})

	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	return candidates
}
