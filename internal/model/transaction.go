package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left or entered the account.
type Direction string

const (
	// Debit is money out (source amount was zero or positive).
	Debit Direction = "Debit"
	// Credit is money in (source amount was negative).
	Credit Direction = "Credit"
)

// Uncategorized is the sentinel category every transaction starts in.
// It always exists in the category store and is never keyword-matched.
const Uncategorized = "Uncategorized"

// Transaction represents one parsed bank CSV row. Everything except
// Category is fixed at parse time.
type Transaction struct {
	Date      time.Time       // calendar date, time-of-day discarded
	Details   string          // merchant/description text, trimmed
	Amount    decimal.Decimal // magnitude, always >= 0
	Direction Direction
	Category  string
}

// DirectionFromAmount derives the direction from a signed source amount.
func DirectionFromAmount(amount decimal.Decimal) Direction {
	if amount.IsNegative() {
		return Credit
	}
	return Debit
}

// NormalizedDetails returns the details string the way matching sees it:
// lower-cased and trimmed.
func (t Transaction) NormalizedDetails() string {
	return strings.ToLower(strings.TrimSpace(t.Details))
}

// MonthKey returns the transaction's calendar month as "YYYY-MM".
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
