package quote_test

import (
	"testing"

	"cctv-service/internal/domain/quote"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []quote.Status{quote.StatusNew, quote.StatusContacted, quote.StatusConverted, quote.StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []quote.Status{"", "pending", "NEW", "done"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if quote.StatusNew.Terminal() || quote.StatusContacted.Terminal() {
		t.Error("new and contacted are not terminal")
	}
	if !quote.StatusConverted.Terminal() || !quote.StatusRejected.Terminal() {
		t.Error("converted and rejected are terminal")
	}
	if quote.Status("bogus").Terminal() {
		t.Error("unknown status must not report terminal")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to quote.Status
		want     bool
	}{
		{quote.StatusNew, quote.StatusContacted, true},
		{quote.StatusNew, quote.StatusConverted, true},
		{quote.StatusNew, quote.StatusRejected, true},
		{quote.StatusContacted, quote.StatusConverted, true},
		{quote.StatusContacted, quote.StatusRejected, true},
		{quote.StatusContacted, quote.StatusNew, false},
		{quote.StatusConverted, quote.StatusRejected, false},
		{quote.StatusConverted, quote.StatusNew, false},
		{quote.StatusRejected, quote.StatusContacted, false},
		{quote.Status("bogus"), quote.StatusNew, false},
		{quote.StatusNew, quote.Status("bogus"), false},
	}

	for _, tt := range tests {
		if got := quote.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
