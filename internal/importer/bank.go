package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xinshuoliu/Finance/internal/model"
)

// BankParser parses the bank's transaction CSV export: a two-row preamble,
// then a header row naming at least the date, description, and signed
// amount columns.
type BankParser struct{}

const (
	bankDateFormat   = "20060102"
	bankPreambleRows = 2

	colDate   = "Transaction Date"
	colDesc   = "Description"
	colAmount = "Transaction Amount"
)

// Format returns the parser name.
func (p *BankParser) Format() string { return "bank" }

// Parse reads a bank CSV export and returns Transactions. Any malformed
// row or missing column aborts the whole load with a single error; no
// partial results are returned.
func (p *BankParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // preamble rows have arbitrary shapes

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}

	if len(records) <= bankPreambleRows {
		return nil, fmt.Errorf("missing header row after %d preamble rows", bankPreambleRows)
	}

	header := records[bankPreambleRows]
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	rows := records[bankPreambleRows+1:]
	var txns []model.Transaction
	for i, rec := range rows {
		txn, err := parseBankRow(rec, cols)
		if err != nil {
			// Row numbers count from the top of the file.
			return nil, fmt.Errorf("row %d: %w", i+bankPreambleRows+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// columns holds the located indexes of the required header columns.
type columns struct {
	date   int
	desc   int
	amount int
}

// locateColumns finds the required columns by trimmed header name.
func locateColumns(header []string) (columns, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	cols := columns{date: -1, desc: -1, amount: -1}
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{colDate, &cols.date},
		{colDesc, &cols.desc},
		{colAmount, &cols.amount},
	} {
		idx, ok := byName[want.name]
		if !ok {
			return columns{}, fmt.Errorf("missing column %q", want.name)
		}
		*want.dst = idx
	}
	return cols, nil
}

func parseBankRow(rec []string, cols columns) (model.Transaction, error) {
	need := cols.date
	if cols.desc > need {
		need = cols.desc
	}
	if cols.amount > need {
		need = cols.amount
	}
	if len(rec) <= need {
		return model.Transaction{}, fmt.Errorf("expected at least %d fields, got %d", need+1, len(rec))
	}

	rawDate := strings.TrimSpace(rec[cols.date])
	date, err := time.Parse(bankDateFormat, rawDate)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}

	// Thousands separators are stripped before the decimal parse.
	rawAmount := strings.ReplaceAll(strings.TrimSpace(rec[cols.amount]), ",", "")
	signed, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[cols.amount], err)
	}

	return model.Transaction{
		Date:      date,
		Details:   strings.TrimSpace(rec[cols.desc]),
		Amount:    signed.Abs(),
		Direction: model.DirectionFromAmount(signed),
		Category:  model.Uncategorized,
	}, nil
}
