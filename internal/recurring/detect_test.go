package recurring

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinshuoliu/Finance/internal/importer"
	"github.com/xinshuoliu/Finance/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func debitOn(year int, month time.Month, day int, details, amount string) model.Transaction {
	return model.Transaction{
		Date:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Details:   details,
		Amount:    dec(amount),
		Direction: model.Debit,
	}
}

func TestMatch_SubstringCaseInsensitive(t *testing.T) {
	txns := []model.Transaction{
		debitOn(2024, 1, 5, "NETFLIX.COM 800-123", "15.99"),
		debitOn(2024, 1, 7, "METRO #123", "82.45"),
	}

	matches := Match(txns, []string{"netflix"})
	require.Len(t, matches, 1)
	assert.Equal(t, "NETFLIX.COM 800-123", matches[0].Details)
}

func TestMatch_OrderedDateDescending(t *testing.T) {
	txns := []model.Transaction{
		debitOn(2024, 1, 5, "NETFLIX.COM", "15.99"),
		debitOn(2024, 3, 5, "NETFLIX.COM", "15.99"),
		debitOn(2024, 2, 5, "NETFLIX.COM", "15.99"),
	}

	matches := Match(txns, []string{"netflix"})
	require.Len(t, matches, 3)
	assert.Equal(t, time.March, matches[0].Date.Month())
	assert.Equal(t, time.February, matches[1].Date.Month())
	assert.Equal(t, time.January, matches[2].Date.Month())
}

func TestMatch_NoKeywords(t *testing.T) {
	txns := []model.Transaction{debitOn(2024, 1, 5, "NETFLIX.COM", "15.99")}
	assert.Nil(t, Match(txns, nil))
	assert.Nil(t, Match(txns, []string{"  "}))
}

func TestSummarize_MonthlyEstimate(t *testing.T) {
	// $10 in January, $10 in March: the monthly estimate must average the
	// per-month sums ($10), not the per-transaction mean.
	txns := []model.Transaction{
		debitOn(2024, 1, 5, "GYM", "10.00"),
		debitOn(2024, 3, 5, "GYM", "10.00"),
	}

	summaries := Summarize(txns)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 2, s.Occurrences)
	assert.Equal(t, "20.00", s.Total.StringFixed(2))
	assert.Equal(t, "10.00", s.Average.StringFixed(2))
	assert.Equal(t, "10.00", s.MonthlyEstimate.StringFixed(2))
}

func TestSummarize_EstimateDiffersFromMean(t *testing.T) {
	// Three charges, but only two distinct months: the raw mean would
	// understate the monthly cost.
	txns := []model.Transaction{
		debitOn(2024, 1, 5, "CLOUD", "10.00"),
		debitOn(2024, 1, 20, "CLOUD", "10.00"),
		debitOn(2024, 3, 5, "CLOUD", "10.00"),
	}

	summaries := Summarize(txns)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "10.00", s.Average.StringFixed(2))
	// (20 + 10) / 2 months
	assert.Equal(t, "15.00", s.MonthlyEstimate.StringFixed(2))
}

func TestSummarize_GroupsByExactDetails(t *testing.T) {
	txns := []model.Transaction{
		debitOn(2024, 1, 5, "NETFLIX.COM", "15.99"),
		debitOn(2024, 1, 6, "NETFLIX.COM #2", "15.99"),
	}

	summaries := Summarize(txns)
	assert.Len(t, summaries, 2)
}

func TestCandidates_MinMonthBoundary(t *testing.T) {
	txns := []model.Transaction{
		debitOn(2024, 1, 5, "GYM", "30.00"),
		debitOn(2024, 2, 5, "GYM", "30.00"),
	}

	// Two distinct months: excluded at threshold 3, included at 2.
	assert.Empty(t, Candidates(txns, 3))

	got := Candidates(txns, 2)
	require.Len(t, got, 1)
	assert.Equal(t, "GYM", got[0].Merchant)
	assert.Equal(t, 2, got[0].Months)
	assert.Equal(t, 2, got[0].Occurrences)
	assert.Equal(t, "60.00", got[0].Total.StringFixed(2))
	assert.Equal(t, "30.00", got[0].Average.StringFixed(2))
}

func TestCandidates_SortedByMonthsThenTotal(t *testing.T) {
	var txns []model.Transaction
	// SPOTIFY: 3 months, $30 total. GYM: 3 months, $90 total. CLOUD: 4 months.
	for m := time.January; m <= time.March; m++ {
		txns = append(txns, debitOn(2024, m, 5, "SPOTIFY", "10.00"))
		txns = append(txns, debitOn(2024, m, 6, "GYM", "30.00"))
	}
	for m := time.January; m <= time.April; m++ {
		txns = append(txns, debitOn(2024, m, 7, "CLOUD", "5.00"))
	}

	got := Candidates(txns, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "CLOUD", got[0].Merchant)
	assert.Equal(t, "GYM", got[1].Merchant)
	assert.Equal(t, "SPOTIFY", got[2].Merchant)
}

func TestCandidates_CapsResults(t *testing.T) {
	var txns []model.Transaction
	for i := 0; i < MaxCandidates+10; i++ {
		merchant := fmt.Sprintf("MERCHANT %03d", i)
		for m := time.January; m <= time.March; m++ {
			txns = append(txns, debitOn(2024, m, 5, merchant, "10.00"))
		}
	}

	got := Candidates(txns, 3)
	assert.Len(t, got, MaxCandidates)
}

func TestClampMinMonths(t *testing.T) {
	assert.Equal(t, DefaultMinMonths, ClampMinMonths(0))
	assert.Equal(t, MinMonthsFloor, ClampMinMonths(1))
	assert.Equal(t, 5, ClampMinMonths(5))
	assert.Equal(t, MinMonthsCeil, ClampMinMonths(50))
}

// End to end: two NETFLIX rows through the bank parser and the keyword
// matcher.
func TestRecurring_EndToEnd(t *testing.T) {
	csv := "preamble,,\npreamble,,\n" +
		"Transaction Date,Description,Transaction Amount\n" +
		"20240101,NETFLIX.COM,-15.99\n" +
		"20240201,NETFLIX.COM,-15.99\n"

	p := &importer.BankParser{}
	txns, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	matches := Match(txns, []string{"netflix"})
	require.Len(t, matches, 2)
	assert.True(t, matches[0].Date.After(matches[1].Date))

	summaries := Summarize(matches)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "NETFLIX.COM", s.Merchant)
	assert.Equal(t, 2, s.Occurrences)
	assert.Equal(t, "31.98", s.Total.StringFixed(2))
	assert.Equal(t, "15.99", s.Average.StringFixed(2))
	assert.Equal(t, "15.99", s.MonthlyEstimate.StringFixed(2))
}
