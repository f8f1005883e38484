package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the aggregate totals for a transaction list. It is derived,
// never persisted, and recomputed on every change to the underlying list.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// CategoryAmount is one entry of the expense-only category breakdown.
// Percentage is the rounded share of the category within total expenses.
type CategoryAmount struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
}

// MonthPoint accumulates income and expense sums under a human-readable
// month label such as "Jan 24". The aggregator emits points in
// first-encounter order; First carries the earliest contributing timestamp
// so callers can re-sort chronologically for display.
type MonthPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`

	first time.Time
}

// First returns the timestamp of the first transaction accumulated into
// this point.
func (p MonthPoint) First() time.Time {
	return p.first
}

// NewMonthPoint creates a month point anchored at the given timestamp.
func NewMonthPoint(label string, first time.Time) MonthPoint {
	return MonthPoint{
		Month:   label,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		first:   first,
	}
}
