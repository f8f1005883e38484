package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionInput is the create payload for POST /transactions/.
// The backend enforces the same constraints; validating here keeps a
// bad submission from ever leaving the client.
type TransactionInput struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,positive_amount"`
	Category string          `json:"category" validate:"required,min=1,max=100"`
	Type     string          `json:"type" validate:"required,transaction_type"`
	Date     time.Time       `json:"date" validate:"required"`
	Note     string          `json:"note,omitempty" validate:"max=500"`
}
