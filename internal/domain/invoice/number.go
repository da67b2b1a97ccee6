// internal/domain/invoice/number.go
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRate is the Moroccan TVA applied to every invoice subtotal.
const TaxRate = 0.20

// PaymentTermsDays is the window between issuing and the due date.
const PaymentTermsDays = 30

// FormatNumber renders the sequential invoice number, e.g. INV-2026-00042.
// Sequence numbers are per-year, strictly increasing and never reused.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%05d", year, seq)
}

// ComputeTotals derives tax and total from a subtotal, rounding each figure
// to 2 decimal places for presentation.
func ComputeTotals(subtotal float64) (taxAmount, totalAmount float64) {
	sub := decimal.NewFromFloat(subtotal)
	tax := sub.Mul(decimal.NewFromFloat(TaxRate)).Round(2)
	total := sub.Add(tax).Round(2)
	taxAmount, _ = tax.Float64()
	totalAmount, _ = total.Float64()
	return taxAmount, totalAmount
}
