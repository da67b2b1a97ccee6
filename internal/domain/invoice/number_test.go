package invoice_test

import (
	"testing"

	"cctv-service/internal/domain/invoice"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		year int
		seq  int64
		want string
	}{
		{2026, 1, "INV-2026-00001"},
		{2026, 42, "INV-2026-00042"},
		{2026, 99999, "INV-2026-99999"},
		{2026, 123456, "INV-2026-123456"},
		{2027, 1, "INV-2027-00001"},
	}

	for _, tt := range tests {
		if got := invoice.FormatNumber(tt.year, tt.seq); got != tt.want {
			t.Errorf("FormatNumber(%d, %d) = %q, want %q", tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		wantTax   float64
		wantTotal float64
	}{
		{"round thousand", 1000, 200, 1200},
		{"worked example", 28300, 5660, 33960},
		{"zero", 0, 0, 0},
		{"cents rounding", 10.99, 2.20, 13.19},
		{"repeating fraction", 33.33, 6.67, 40.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, total := invoice.ComputeTotals(tt.subtotal)
			if tax != tt.wantTax {
				t.Errorf("tax = %v, want %v", tax, tt.wantTax)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}
