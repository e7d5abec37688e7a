package classify

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/xinshuoliu/Finance/internal/model"
)

// CategoryTotal is one row of the expense summary.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// Summary aggregates Debit transactions into per-category spend totals,
// sorted by amount descending.
func Summary(txns []model.Transaction) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Direction != model.Debit {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for cat, sum := range sums {
		totals = append(totals, CategoryTotal{Category: cat, Amount: sum})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// TotalPayments sums the amounts of Credit transactions.
func TotalPayments(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Direction == model.Credit {
			total = total.Add(t.Amount)
		}
	}
	return total
}
