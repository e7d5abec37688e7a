package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDirectionFromAmount(t *testing.T) {
	assert.Equal(t, Credit, DirectionFromAmount(decimal.NewFromFloat(-15.99)))
	assert.Equal(t, Debit, DirectionFromAmount(decimal.NewFromFloat(45.00)))
	assert.Equal(t, Debit, DirectionFromAmount(decimal.Zero))
}

func TestNormalizedDetails(t *testing.T) {
	tx := Transaction{Details: "  NetFlix.COM  "}
	assert.Equal(t, "netflix.com", tx.NormalizedDetails())
}

func TestMonthKey(t *testing.T) {
	tx := Transaction{Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03", tx.MonthKey())
}
