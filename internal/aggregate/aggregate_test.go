package aggregate

import (
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AggregateTestSuite struct {
	suite.Suite
	faker *gofakeit.Faker
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}

func (s *AggregateTestSuite) SetupTest() {
	s.faker = gofakeit.New(42)
}

func (s *AggregateTestSuite) transaction(txnType, category string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:       s.faker.Int64(),
		UserID:   1,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Type:     txnType,
		Date:     date,
		Note:     s.faker.Sentence(3),
	}
}

func (s *AggregateTestSuite) TestSummarize_BalanceIsIncomeMinusExpense() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeIncome, "Salary", 3000, date),
		s.transaction(models.TransactionTypeExpense, models.CategoryFoodDining, 120.50, date),
		s.transaction(models.TransactionTypeExpense, models.CategoryTransport, 79.50, date),
	}

	summary := Summarize(transactions)

	s.True(summary.TotalIncome.Equal(decimal.NewFromInt(3000)))
	s.True(summary.TotalExpense.Equal(decimal.NewFromInt(200)))
	s.True(summary.TotalBalance.Equal(summary.TotalIncome.Sub(summary.TotalExpense)))
}

func (s *AggregateTestSuite) TestSummarize_EmptyListYieldsZeroes() {
	summary := Summarize(nil)

	s.True(summary.TotalIncome.IsZero())
	s.True(summary.TotalExpense.IsZero())
	s.True(summary.TotalBalance.IsZero())
}

func (s *AggregateTestSuite) TestByCategory_IgnoresIncome() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeIncome, "Salary", 5000, date),
	}

	breakdown := ByCategory(transactions)

	s.Empty(breakdown)
	s.NotNil(breakdown)
}

func (s *AggregateTestSuite) TestByCategory_PercentagesAndOrdering() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeExpense, models.CategoryFoodDining, 300, date),
		s.transaction(models.TransactionTypeExpense, models.CategoryTransport, 100, date),
		s.transaction(models.TransactionTypeExpense, models.CategoryFoodDining, 200, date),
		s.transaction(models.TransactionTypeIncome, "Salary", 9999, date),
	}

	breakdown := ByCategory(transactions)

	s.Require().Len(breakdown, 2)
	s.Equal(models.CategoryFoodDining, breakdown[0].Category)
	s.True(breakdown[0].Amount.Equal(decimal.NewFromInt(500)))
	s.Equal(int64(83), breakdown[0].Percentage)
	s.Equal(models.CategoryTransport, breakdown[1].Category)
	s.Equal(int64(17), breakdown[1].Percentage)
}

func (s *AggregateTestSuite) TestByCategory_TiesBrokenByName() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeExpense, models.CategoryUtilities, 50, date),
		s.transaction(models.TransactionTypeExpense, models.CategoryBills, 50, date),
	}

	breakdown := ByCategory(transactions)

	s.Require().Len(breakdown, 2)
	s.Equal(models.CategoryBills, breakdown[0].Category)
	s.Equal(models.CategoryUtilities, breakdown[1].Category)
}

func (s *AggregateTestSuite) TestByCategory_SingleLargeExpense() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeExpense, models.CategoryFoodDining, 50000, date),
	}

	breakdown := ByCategory(transactions)

	s.Require().Len(breakdown, 1)
	s.Equal(int64(100), breakdown[0].Percentage)
	s.True(breakdown[0].Amount.Equal(decimal.NewFromInt(50000)))
}

func (s *AggregateTestSuite) TestMonthlySeries_AccumulatesPerMonth() {
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeIncome, "Salary", 3000, time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)),
		s.transaction(models.TransactionTypeExpense, models.CategoryBills, 400, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)),
		s.transaction(models.TransactionTypeExpense, models.CategoryFoodDining, 100, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	series := MonthlySeries(transactions)

	s.Require().Len(series, 2)
	s.Equal("Feb 24", series[0].Month)
	s.True(series[0].Income.Equal(decimal.NewFromInt(3000)))
	s.True(series[0].Expense.Equal(decimal.NewFromInt(400)))
	s.Equal("Mar 24", series[1].Month)
	s.True(series[1].Expense.Equal(decimal.NewFromInt(100)))
}

func (s *AggregateTestSuite) TestMonthlySeries_FirstEncounterOrderWithAnchor() {
	newer := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeExpense, models.CategoryOther, 10, newer),
		s.transaction(models.TransactionTypeExpense, models.CategoryOther, 20, older),
	}

	series := MonthlySeries(transactions)

	s.Require().Len(series, 2)
	s.Equal("Mar 24", series[0].Month)
	s.Equal(newer, series[0].First())
	s.Equal("Jan 24", series[1].Month)
	s.Equal(older, series[1].First())
}

func (s *AggregateTestSuite) TestFilter() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	groceries := models.Transaction{ID: 1, Amount: decimal.NewFromInt(40), Category: models.CategoryFoodDining, Type: models.TransactionTypeExpense, Date: date, Note: "Weekly groceries"}
	salary := models.Transaction{ID: 2, Amount: decimal.NewFromInt(3000), Category: "Salary", Type: models.TransactionTypeIncome, Date: date, Note: "March payroll"}
	taxi := models.Transaction{ID: 3, Amount: decimal.NewFromInt(15), Category: models.CategoryTransport, Type: models.TransactionTypeExpense, Date: date}
	all := []models.Transaction{groceries, salary, taxi}

	testCases := []struct {
		name       string
		typeFilter TypeFilter
		search     string
		wantIDs    []int64
	}{
		{"no filter returns everything", FilterAll, "", []int64{1, 2, 3}},
		{"income only", FilterIncome, "", []int64{2}},
		{"expense only", FilterExpense, "", []int64{1, 3}},
		{"search matches note case-insensitively", FilterAll, "GROCER", []int64{1}},
		{"search matches category", FilterAll, "transport", []int64{3}},
		{"type and search combine with AND", FilterExpense, "payroll", nil},
		{"whitespace-only search is no search", FilterAll, "   ", []int64{1, 2, 3}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			filtered := Filter(all, tc.typeFilter, tc.search)

			ids := make([]int64, 0, len(filtered))
			for _, txn := range filtered {
				ids = append(ids, txn.ID)
			}
			if tc.wantIDs == nil {
				s.Empty(ids)
			} else {
				s.Equal(tc.wantIDs, ids)
			}
		})
	}
}

func (s *AggregateTestSuite) TestFilter_Idempotent() {
	date := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		s.transaction(models.TransactionTypeExpense, models.CategoryFoodDining, 40, date),
		s.transaction(models.TransactionTypeIncome, "Salary", 3000, date),
	}

	once := Filter(transactions, FilterExpense, "food")
	twice := Filter(once, FilterExpense, "food")

	s.Equal(once, twice)
}
