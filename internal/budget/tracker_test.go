package budget

import (
	"errors"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type failingStore struct{}

func (failingStore) Load() ([]byte, error)  { return nil, errors.New("disk unavailable") }
func (failingStore) Save(data []byte) error { return errors.New("disk unavailable") }

type memoryStore struct {
	data []byte
}

func (m *memoryStore) Load() ([]byte, error) { return m.data, nil }
func (m *memoryStore) Save(data []byte) error {
	m.data = data
	return nil
}

type TrackerTestSuite struct {
	suite.Suite
	store   *memoryStore
	tracker *Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) SetupTest() {
	s.store = &memoryStore{}
	s.tracker = NewTracker(s.store)
}

func (s *TrackerTestSuite) TestLoad_EmptyStoreYieldsEmptyMap() {
	budgets := s.tracker.Load()

	s.NotNil(budgets)
	s.Empty(budgets)
}

func (s *TrackerTestSuite) TestLoad_CorruptDocumentDegradesToEmpty() {
	s.store.data = []byte("{not json")

	budgets := s.tracker.Load()

	s.NotNil(budgets)
	s.Empty(budgets)
}

func (s *TrackerTestSuite) TestLoad_StoreErrorDegradesToEmpty() {
	tracker := NewTracker(failingStore{})

	budgets := tracker.Load()

	s.NotNil(budgets)
	s.Empty(budgets)
}

func (s *TrackerTestSuite) TestSaveLoad_RoundTrip() {
	budgets := map[string]decimal.Decimal{
		models.CategoryFoodDining: decimal.NewFromInt(400),
		models.CategoryTransport:  decimal.RequireFromString("99.50"),
	}

	s.Require().NoError(s.tracker.Save(budgets))

	loaded := s.tracker.Load()
	s.Require().Len(loaded, 2)
	s.True(loaded[models.CategoryFoodDining].Equal(decimal.NewFromInt(400)))
	s.True(loaded[models.CategoryTransport].Equal(decimal.RequireFromString("99.50")))
}

func (s *TrackerTestSuite) TestSave_StoreErrorIsReported() {
	tracker := NewTracker(failingStore{})

	err := tracker.Save(map[string]decimal.Decimal{})

	s.Error(err)
}

func (s *TrackerTestSuite) TestProgress() {
	testCases := []struct {
		name   string
		budget string
		spent  string
		want   float64
	}{
		{"half used", "200", "100", 50},
		{"over budget stays uncapped", "200", "250", 125},
		{"zero budget yields zero", "0", "100", 0},
		{"negative budget yields zero", "-10", "100", 0},
		{"nothing spent", "200", "0", 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got := Progress(decimal.RequireFromString(tc.budget), decimal.RequireFromString(tc.spent))
			s.InDelta(tc.want, got, 0.001)
		})
	}
}

func (s *TrackerTestSuite) TestMonthlySpending_OnlyCurrentMonthExpenses() {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{Type: models.TransactionTypeExpense, Category: models.CategoryFoodDining, Amount: decimal.NewFromInt(50), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Type: models.TransactionTypeExpense, Category: models.CategoryFoodDining, Amount: decimal.NewFromInt(30), Date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)},
		{Type: models.TransactionTypeExpense, Category: models.CategoryFoodDining, Amount: decimal.NewFromInt(99), Date: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)},
		{Type: models.TransactionTypeExpense, Category: models.CategoryFoodDining, Amount: decimal.NewFromInt(99), Date: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Type: models.TransactionTypeIncome, Category: "Salary", Amount: decimal.NewFromInt(3000), Date: now},
	}

	spending := MonthlySpending(transactions, now)

	s.Require().Len(spending, 1)
	s.True(spending[models.CategoryFoodDining].Equal(decimal.NewFromInt(80)))
}

func (s *TrackerTestSuite) TestOverall() {
	budgets := map[string]decimal.Decimal{
		models.CategoryFoodDining: decimal.NewFromInt(300),
		models.CategoryTransport:  decimal.NewFromInt(100),
	}
	spending := map[string]decimal.Decimal{
		models.CategoryFoodDining: decimal.NewFromInt(200),
	}

	s.InDelta(50, Overall(budgets, spending), 0.001)
	s.InDelta(0, Overall(nil, spending), 0.001)
}

func (s *TrackerTestSuite) TestCategories_UnionKeepsDefaultOrderThenSortedExtras() {
	budgets := map[string]decimal.Decimal{
		"Travel": decimal.NewFromInt(500),
	}
	spending := map[string]decimal.Decimal{
		"Books":                   decimal.NewFromInt(20),
		models.CategoryFoodDining: decimal.NewFromInt(50),
	}

	categories := Categories(budgets, spending)

	defaults := models.DefaultCategories()
	s.Require().Len(categories, len(defaults)+2)
	s.Equal(defaults, categories[:len(defaults)])
	s.Equal([]string{"Books", "Travel"}, categories[len(defaults):])
}
