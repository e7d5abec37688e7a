package budget

import (
	"github.com/shopspring/decimal"

	"github.com/xinshuoliu/Finance/internal/classify"
	"github.com/xinshuoliu/Finance/internal/model"
)

// Line is the budget status of one category.
type Line struct {
	Category    string
	Spent       decimal.Decimal
	Budget      decimal.Decimal // zero when unset
	HasBudget   bool
	Over        bool            // spent > budget; equality is under
	Overage     decimal.Decimal // spent - budget when over
	Remaining   decimal.Decimal // budget - spent when under
	PercentUsed decimal.Decimal // spent/budget * 100, only when budget > 0
	Progress    float64         // display ratio clamped to 1.0
}

var hundred = decimal.NewFromInt(100)

// Report computes budget status per category over transactions the caller
// has already filtered to the wanted date range and the Debit direction.
// Categories without a set budget are reported with HasBudget false and
// take no part in over/under accounting.
func Report(txns []model.Transaction, s *Store) []Line {
	totals := classify.Summary(txns)

	lines := make([]Line, 0, len(totals))
	for _, t := range totals {
		line := Line{Category: t.Category, Spent: t.Amount}

		b, ok := s.Get(t.Category)
		line.Budget = b
		line.HasBudget = ok

		if ok && b.IsPositive() {
			ratio := t.Amount.Div(b)
			line.PercentUsed = ratio.Mul(hundred)
			line.Progress = ratio.InexactFloat64()
			if line.Progress > 1.0 {
				line.Progress = 1.0
			}

			if t.Amount.GreaterThan(b) {
				line.Over = true
				line.Overage = t.Amount.Sub(b)
			} else {
				// spent == budget lands here: fully used, not over.
				line.Remaining = b.Sub(t.Amount)
			}
		}

		lines = append(lines, line)
	}
	return lines
}
