package api

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"fintrack/internal/dto"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/session"
	"fintrack/internal/validation"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	demoHistoryDays  = 120
	demoSalaryDay    = 25
	demoDailyChance  = 0.6
	demoSalaryAmount = 4200
)

// categorySpend bounds the fake amounts per expense category.
type categorySpend struct {
	category string
	min, max float64
}

var demoSpendPool = []categorySpend{
	{models.CategoryFoodDining, 8, 90},
	{models.CategoryTransport, 3, 60},
	{models.CategoryEntertainment, 10, 80},
	{models.CategoryShopping, 15, 250},
	{models.CategoryHealthFitness, 20, 120},
	{models.CategoryBills, 40, 200},
	{models.CategoryUtilities, 30, 150},
	{models.CategoryOther, 5, 70},
}

// demoClient fabricates a plausible transaction history so the app runs
// without a backend. It accepts any credentials and keeps state in memory
// for the lifetime of the process.
type demoClient struct {
	mu           sync.Mutex
	session      *session.Manager
	validator    *validation.Validator
	rng          *rand.Rand
	faker        *gofakeit.Faker
	profile      models.Profile
	transactions []models.Transaction
	nextID       int64
}

// NewDemoClient creates an offline client seeded with generated history.
func NewDemoClient(sess *session.Manager) Client {
	seed := time.Now().UnixNano()
	c := &demoClient{
		session:   sess,
		validator: validation.GetValidator(),
		rng:       rand.New(rand.NewSource(seed)),
		faker:     gofakeit.New(uint64(seed)),
		nextID:    1,
	}

	c.profile = models.Profile{
		ID:       1,
		Email:    c.faker.Email(),
		FullName: c.faker.Name(),
	}
	c.generateHistory(time.Now())

	return c
}

func (c *demoClient) Login(ctx context.Context, email, password string) (string, error) {
	c.mu.Lock()
	c.profile.Email = email
	c.mu.Unlock()

	token := "demo-" + c.faker.UUID()
	c.session.SetToken(token)
	return token, nil
}

func (c *demoClient) Register(ctx context.Context, req dto.RegisterRequest) (*models.Profile, error) {
	if err := c.validator.Struct(req); err != nil {
		if msg := c.validator.FirstError(err); msg != "" {
			return nil, &apperrors.APIError{Code: apperrors.ValidationField, Message: msg}
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = models.Profile{ID: 1, Email: req.Email, FullName: req.FullName}
	profile := c.profile
	return &profile, nil
}

func (c *demoClient) CurrentUser(ctx context.Context) (*models.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile := c.profile
	return &profile, nil
}

func (c *demoClient) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Transaction, len(c.transactions))
	copy(out, c.transactions)

	// Newest first, matching the backend's ordering.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	return out, nil
}

func (c *demoClient) CreateTransaction(ctx context.Context, input dto.TransactionInput) (*models.Transaction, error) {
	if err := c.validator.Struct(input); err != nil {
		if msg := c.validator.FirstError(err); msg != "" {
			return nil, &apperrors.APIError{Code: apperrors.ValidationField, Message: msg}
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	created := models.Transaction{
		ID:       c.nextID,
		UserID:   c.profile.ID,
		Amount:   input.Amount,
		Category: input.Category,
		Type:     input.Type,
		Date:     input.Date,
		Note:     input.Note,
	}
	c.nextID++
	c.transactions = append(c.transactions, created)

	return &created, nil
}

func (c *demoClient) DeleteTransaction(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.transactions {
		if c.transactions[i].ID == id {
			c.transactions = append(c.transactions[:i], c.transactions[i+1:]...)
			return nil
		}
	}

	return &apperrors.APIError{
		Code:    apperrors.ResourceNotFound,
		Message: apperrors.GetErrorMessage(apperrors.ResourceNotFound),
	}
}

// generateHistory seeds a few months of salary credits and day-to-day
// spending ending at now.
func (c *demoClient) generateHistory(now time.Time) {
	start := now.AddDate(0, 0, -demoHistoryDays)

	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		if day.Day() == demoSalaryDay {
			c.append(models.TransactionTypeIncome, "Salary", demoSalaryAmount, "Monthly salary", day)
		}

		if c.rng.Float64() > demoDailyChance {
			continue
		}

		spend := demoSpendPool[c.rng.Intn(len(demoSpendPool))]
		amount := c.faker.Float64Range(spend.min, spend.max)
		note := ""
		if c.rng.Float64() < 0.5 {
			note = c.faker.ProductName()
		}

		at := day.Add(time.Duration(c.rng.Intn(14)+8) * time.Hour)
		c.append(models.TransactionTypeExpense, spend.category, amount, note, at)
	}
}

func (c *demoClient) append(txType, category string, amount float64, note string, at time.Time) {
	c.transactions = append(c.transactions, models.Transaction{
		ID:       c.nextID,
		UserID:   c.profile.ID,
		Amount:   decimal.NewFromFloat(amount).Round(2),
		Category: category,
		Type:     txType,
		Date:     at,
		Note:     note,
	})
	c.nextID++
}
