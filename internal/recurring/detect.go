package recurring

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xinshuoliu/Finance/internal/model"
)

// MerchantSummary aggregates the matched transactions of one merchant
// (grouped by exact details string).
type MerchantSummary struct {
	Merchant        string
	Occurrences     int
	Total           decimal.Decimal
	Average         decimal.Decimal // mean per transaction
	MonthlyEstimate decimal.Decimal // mean of per-month sums
}

// Match selects transactions whose lowered details contain any of the
// recurring keywords as a substring, ordered by date descending. Callers
// hand in the wanted window, typically debits only. Matching mirrors the
// classifier's semantics but flags instead of categorizing; a transaction
// can be both categorized and flagged.
func Match(txns []model.Transaction, keywords []string) []model.Transaction {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	if len(lowered) == 0 {
		return nil
	}

	var matched []model.Transaction
	for _, t := range txns {
		details := t.NormalizedDetails()
		for _, kw := range lowered {
			if strings.Contains(details, kw) {
				matched = append(matched, t)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched
}

// Summarize groups matched transactions by merchant and computes count,
// total, mean, and the monthly estimate.
//
// The monthly estimate averages per-calendar-month sums rather than
// per-transaction amounts, so a merchant billing every other month is not
// overstated by the raw mean. Results are ordered by total descending.
func Summarize(matches []model.Transaction) []MerchantSummary {
	type acc struct {
		count   int
		total   decimal.Decimal
		byMonth map[string]decimal.Decimal
	}

	merchants := make(map[string]*acc)
	for _, t := range matches {
		a, ok := merchants[t.Details]
		if !ok {
			a = &acc{byMonth: make(map[string]decimal.Decimal)}
			merchants[t.Details] = a
		}
		a.count++
		a.total = a.total.Add(t.Amount)
		month := t.MonthKey()
		a.byMonth[month] = a.byMonth[month].Add(t.Amount)
	}

	summaries := make([]MerchantSummary, 0, len(merchants))
	for details, a := range merchants {
		occurrences := decimal.NewFromInt(int64(a.count))
		months := decimal.NewFromInt(int64(len(a.byMonth)))

		monthlyTotal := decimal.Zero
		for _, sum := range a.byMonth {
			monthlyTotal = monthlyTotal.Add(sum)
		}

		summaries = append(summaries, MerchantSummary{
			Merchant:        details,
			Occurrences:     a.count,
			Total:           a.total,
			Average:         a.total.Div(occurrences),
			MonthlyEstimate: monthlyTotal.Div(months),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].Total.Equal(summaries[j].Total) {
			return summaries[i].Total.GreaterThan(summaries[j].Total)
		}
		return summaries[i].Merchant < summaries[j].Merchant
	})
	return summaries
}
