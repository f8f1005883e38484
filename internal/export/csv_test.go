package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportTransaction(category, note string, amount string, date time.Time) models.Transaction {
	return models.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Type:     models.TransactionTypeExpense,
		Date:     date,
		Note:     note,
	}
}

func TestCSV_EmptyListReturnsSentinel(t *testing.T) {
	_, err := CSV(nil)

	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestCSV_HeaderAndRows(t *testing.T) {
	transactions := []models.Transaction{
		exportTransaction(models.CategoryFoodDining, "lunch", "12.50", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
	}

	content, err := CSV(transactions)

	require.NoError(t, err)
	lines := strings.Split(content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Type,Category,Amount,Note", lines[0])
	// decimal.String trims the parsed trailing zero, matching the raw
	// number the web export writes.
	assert.Equal(t, "1/5/2024,expense,Food & Dining,12.5,lunch", lines[1])
}

func TestCSV_QuotesFieldsWithSpecialCharacters(t *testing.T) {
	transactions := []models.Transaction{
		exportTransaction("Food, Drink", `said "hi"`, "5", time.Date(2024, 11, 23, 0, 0, 0, 0, time.UTC)),
	}

	content, err := CSV(transactions)

	require.NoError(t, err)
	lines := strings.Split(content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `11/23/2024,expense,"Food, Drink",5,"said ""hi"""`, lines[1])
}

func TestCSV_EmptyNoteStaysEmptyField(t *testing.T) {
	transactions := []models.Transaction{
		exportTransaction(models.CategoryOther, "", "1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	}

	content, err := CSV(transactions)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(content, ",Other,1,"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.csv")
	transactions := []models.Transaction{
		exportTransaction(models.CategoryBills, "rent", "900", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
	}

	require.NoError(t, WriteFile(transactions, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "4/1/2024,expense,Bills,900,rent")
}

func TestWriteFile_EmptyListWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance_data.csv")

	err := WriteFile(nil, path)

	assert.ErrorIs(t, err, ErrNoTransactions)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
