// Package export renders transaction data for use outside the app.
package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fintrack/internal/models"
)

// ErrNoTransactions is returned when there is nothing to export. Callers
// treat it as an empty-data notice, not a failure.
var ErrNoTransactions = errors.New("no transactions to export")

var csvHeader = []string{"Date", "Type", "Category", "Amount", "Note"}

// CSV renders the transaction list as CSV text with a header row. Any
// field containing a comma, quote, or newline is wrapped in quotes with
// internal quotes doubled.
func CSV(transactions []models.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", ErrNoTransactions
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))

	for i := range transactions {
		txn := &transactions[i]
		row := []string{
			formatDate(txn),
			txn.Type,
			txn.Category,
			txn.Amount.String(),
			txn.Note,
		}

		b.WriteByte('\n')
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(field))
		}
	}

	return b.String(), nil
}

// WriteFile exports the transactions as CSV to the given path.
func WriteFile(transactions []models.Transaction, path string) error {
	content, err := CSV(transactions)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

// formatDate renders the short US date form, e.g. "1/5/2024".
func formatDate(txn *models.Transaction) string {
	return fmt.Sprintf("%d/%d/%d", int(txn.Date.Month()), txn.Date.Day(), txn.Date.Year())
}

func escapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
