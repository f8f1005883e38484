package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
)

// Transaction is a single dated income or expense record held by the client.
// The backend owns the record; the client keeps it only for the lifetime of a
// fetch. Sign is carried by Type, never by the numeric sign of Amount.
type Transaction struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Date     time.Time       `json:"date"`
	Note     string          `json:"note"`
}

// UnmarshalJSON tolerates a null note, which the backend emits for
// transactions created without one.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID       int64           `json:"id"`
		UserID   int64           `json:"user_id"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		Type     string          `json:"type"`
		Date     time.Time       `json:"date"`
		Note     *string         `json:"note"`
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	t.ID = a.ID
	t.UserID = a.UserID
	t.Amount = a.Amount
	t.Category = a.Category
	t.Type = a.Type
	t.Date = a.Date
	t.Note = ""
	if a.Note != nil {
		t.Note = *a.Note
	}

	return nil
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Category == "" {
		return errors.New("transaction category is required")
	}

	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	return nil
}

// IsIncome returns true if the transaction adds to the balance
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense returns true if the transaction subtracts from the balance
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}
