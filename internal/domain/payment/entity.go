// internal/domain/payment/entity.go
package payment

import (
	"database/sql"
	"time"
)

// Method is how the customer pays. Card and wallet methods go through an
// external gateway; cash and bank transfers are settled manually by staff.
type Method string

const (
	MethodCard         Method = "card"
	MethodWallet       Method = "wallet"
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodWallet, MethodCash, MethodBankTransfer:
		return true
	}
	return false
}

// RequiresGateway reports whether a gateway session must be created for
// this method before the payment is usable.
func (m Method) RequiresGateway() bool {
	return m == MethodCard || m == MethodWallet
}

type Payment struct {
	ID      int64   `json:"id" db:"id"`
	QuoteID int64   `json:"quote_id" db:"quote_id"`
	Amount  float64 `json:"amount" db:"amount"`

	Currency      string         `json:"currency" db:"currency"`
	Status        Status         `json:"status" db:"status"`
	Method        Method         `json:"payment_method" db:"payment_method"`
	Gateway       sql.NullString `json:"payment_gateway,omitempty" db:"payment_gateway"`
	TransactionID sql.NullString `json:"transaction_id,omitempty" db:"transaction_id"`

	PaidAt    sql.NullTime   `json:"paid_at,omitempty" db:"paid_at"`
	DueDate   sql.NullTime   `json:"due_date,omitempty" db:"due_date"`
	Notes     sql.NullString `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
