// Package aggregate derives display data from a flat transaction list.
// Every function is pure and deterministic for a given input; nothing
// here fetches, caches, or mutates its arguments.
package aggregate

import (
	"sort"
	"strings"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// TypeFilter selects which transaction types pass Filter.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

// monthLabelLayout renders "Jan 06" style labels for the monthly series.
const monthLabelLayout = "Jan 06"

// Summarize computes the aggregate totals for a transaction list.
func Summarize(transactions []models.Transaction) models.Summary {
	summary := models.Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalBalance: decimal.Zero,
	}

	for i := range transactions {
		txn := &transactions[i]
		switch txn.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
		case models.TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(txn.Amount)
		}
	}

	summary.TotalBalance = summary.TotalIncome.Sub(summary.TotalExpense)

	return summary
}

// ByCategory breaks expenses down per category with each category's
// rounded percentage share of total expenses. Income transactions are
// ignored. An input with no expenses yields an empty slice, not an error.
// Entries come back sorted descending by amount, ties broken by category
// name so the order is stable.
func ByCategory(transactions []models.Transaction) []models.CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	totalExpense := decimal.Zero

	for i := range transactions {
		txn := &transactions[i]
		if !txn.IsExpense() {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
		totalExpense = totalExpense.Add(txn.Amount)
	}

	if totalExpense.IsZero() {
		return []models.CategoryAmount{}
	}

	breakdown := make([]models.CategoryAmount, 0, len(totals))
	hundred := decimal.NewFromInt(100)
	for category, amount := range totals {
		breakdown = append(breakdown, models.CategoryAmount{
			Category:   category,
			Amount:     amount,
			Percentage: amount.Div(totalExpense).Mul(hundred).Round(0).IntPart(),
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Amount.Equal(breakdown[j].Amount) {
			return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}

// MonthlySeries accumulates income and expense sums per month label.
// Points are emitted in first-encounter order, not chronological order;
// callers that need a chronological display must sort by each point's
// First timestamp rather than by parsing the label.
func MonthlySeries(transactions []models.Transaction) []models.MonthPoint {
	series := make([]models.MonthPoint, 0)
	index := make(map[string]int)

	for i := range transactions {
		txn := &transactions[i]
		label := txn.Date.Format(monthLabelLayout)

		at, seen := index[label]
		if !seen {
			series = append(series, models.NewMonthPoint(label, txn.Date))
			at = len(series) - 1
			index[label] = at
		}

		switch txn.Type {
		case models.TransactionTypeIncome:
			series[at].Income = series[at].Income.Add(txn.Amount)
		case models.TransactionTypeExpense:
			series[at].Expense = series[at].Expense.Add(txn.Amount)
		}
	}

	return series
}

// Filter applies the type filter and the search term with AND semantics.
// The search matches case-insensitively as a substring of the note or the
// category. Filtering is idempotent: applying the same filter to its own
// output returns the same transactions.
func Filter(transactions []models.Transaction, typeFilter TypeFilter, searchTerm string) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		txn := &transactions[i]

		if typeFilter != FilterAll && txn.Type != string(typeFilter) {
			continue
		}

		if search != "" {
			note := strings.ToLower(txn.Note)
			category := strings.ToLower(txn.Category)
			if !strings.Contains(note, search) && !strings.Contains(category, search) {
				continue
			}
		}

		filtered = append(filtered, *txn)
	}

	return filtered
}
