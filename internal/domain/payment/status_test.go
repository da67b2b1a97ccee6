package payment_test

import (
	"testing"

	"cctv-service/internal/domain/payment"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to payment.Status
		want     bool
	}{
		{payment.StatusPending, payment.StatusCompleted, true},
		{payment.StatusPending, payment.StatusFailed, true},
		{payment.StatusPending, payment.StatusRefunded, false},
		{payment.StatusCompleted, payment.StatusRefunded, true},
		{payment.StatusCompleted, payment.StatusPending, false},
		{payment.StatusCompleted, payment.StatusFailed, false},
		{payment.StatusFailed, payment.StatusPending, false},
		{payment.StatusRefunded, payment.StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := payment.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestMethod(t *testing.T) {
	for _, m := range []payment.Method{payment.MethodCard, payment.MethodWallet, payment.MethodCash, payment.MethodBankTransfer} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if payment.Method("crypto").Valid() {
		t.Error("unknown method must not be valid")
	}

	if !payment.MethodCard.RequiresGateway() || !payment.MethodWallet.RequiresGateway() {
		t.Error("card and wallet go through the gateway")
	}
	if payment.MethodCash.RequiresGateway() || payment.MethodBankTransfer.RequiresGateway() {
		t.Error("cash and bank transfers are settled by staff")
	}
}

func TestStatusValidAndTerminal(t *testing.T) {
	for _, s := range []payment.Status{payment.StatusPending, payment.StatusCompleted, payment.StatusFailed, payment.StatusRefunded} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if payment.Status("chargeback").Valid() {
		t.Error("unknown status must not be valid")
	}

	// Refunded and failed are final. Completed can still move to refunded.
	if payment.StatusCompleted.Terminal() {
		t.Error("completed is not terminal")
	}
	if !payment.StatusFailed.Terminal() || !payment.StatusRefunded.Terminal() {
		t.Error("failed and refunded are terminal")
	}
}
