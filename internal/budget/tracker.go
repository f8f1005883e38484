package budget

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Tracker combines stored budget targets with current-month spending to
// produce progress figures for the wallet view.
type Tracker struct {
	store Store
}

// NewTracker creates a tracker over the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Load reads the category to target-amount mapping. A missing or
// unparsable document degrades to an empty mapping; a parse failure is
// logged, never fatal.
func (t *Tracker) Load() map[string]decimal.Decimal {
	data, err := t.store.Load()
	if err != nil {
		slog.Warn("failed to load budget settings", "error", err)
		return map[string]decimal.Decimal{}
	}
	if len(data) == 0 {
		return map[string]decimal.Decimal{}
	}

	var budgets map[string]decimal.Decimal
	if err := json.Unmarshal(data, &budgets); err != nil {
		slog.Warn("failed to parse budget settings", "error", err)
		return map[string]decimal.Decimal{}
	}
	if budgets == nil {
		return map[string]decimal.Decimal{}
	}

	return budgets
}

// Save persists the mapping, replacing whatever was stored before.
func (t *Tracker) Save(budgets map[string]decimal.Decimal) error {
	data, err := json.Marshal(budgets)
	if err != nil {
		return fmt.Errorf("failed to encode budget settings: %w", err)
	}

	if err := t.store.Save(data); err != nil {
		return fmt.Errorf("failed to save budget settings: %w", err)
	}

	slog.Info("budget settings saved", "categories", len(budgets))
	return nil
}

// MonthlySpending sums expense amounts per category for transactions
// dated in the same calendar month and year as now.
func MonthlySpending(transactions []models.Transaction, now time.Time) map[string]decimal.Decimal {
	spending := make(map[string]decimal.Decimal)

	for i := range transactions {
		txn := &transactions[i]
		if !txn.IsExpense() {
			continue
		}
		if txn.Date.Year() != now.Year() || txn.Date.Month() != now.Month() {
			continue
		}
		spending[txn.Category] = spending[txn.Category].Add(txn.Amount)
	}

	return spending
}

// Progress returns spent as a percentage of budget. A zero or negative
// budget yields 0. The result is deliberately uncapped: values above 100
// signal an over-budget category.
func Progress(budget, spent decimal.Decimal) float64 {
	if budget.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	pct, _ := spent.Div(budget).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// Overall returns total spending as a percentage of the total budget
// across all categories.
func Overall(budgets, spending map[string]decimal.Decimal) float64 {
	totalBudget := decimal.Zero
	for _, amount := range budgets {
		totalBudget = totalBudget.Add(amount)
	}

	totalSpent := decimal.Zero
	for _, amount := range spending {
		totalSpent = totalSpent.Add(amount)
	}

	return Progress(totalBudget, totalSpent)
}

// Categories returns the union of budgeted categories, categories with
// current-month spending, and the default suggestion list, so a category
// with spend but no budget still shows up. Defaults keep their display
// order; extras follow sorted for a stable table.
func Categories(budgets, spending map[string]decimal.Decimal) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0, len(budgets)+len(spending))

	for _, category := range models.DefaultCategories() {
		seen[category] = true
		categories = append(categories, category)
	}

	extras := make([]string, 0)
	for category := range budgets {
		if !seen[category] {
			seen[category] = true
			extras = append(extras, category)
		}
	}
	for category := range spending {
		if !seen[category] {
			seen[category] = true
			extras = append(extras, category)
		}
	}

	sort.Strings(extras)
	return append(categories, extras...)
}
