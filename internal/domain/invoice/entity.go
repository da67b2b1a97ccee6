// internal/domain/invoice/entity.go
package invoice

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusIssued    Status = "issued"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID            int64         `json:"id" db:"id"`
	InvoiceNumber string        `json:"invoice_number" db:"invoice_number"`
	QuoteID       int64         `json:"quote_id" db:"quote_id"`
	PaymentID     sql.NullInt64 `json:"payment_id,omitempty" db:"payment_id"`

	Status      Status       `json:"status" db:"status"`
	IssuedDate  time.Time    `json:"issued_date" db:"issued_date"`
	DueDate     sql.NullTime `json:"due_date,omitempty" db:"due_date"`
	Subtotal    float64      `json:"subtotal" db:"subtotal"`
	TaxAmount   float64      `json:"tax_amount" db:"tax_amount"`
	TotalAmount float64      `json:"total_amount" db:"total_amount"`

	Notes     sql.NullString `json:"notes,omitempty" db:"notes"`
	PDFURL    sql.NullString `json:"pdf_url,omitempty" db:"pdf_url"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
