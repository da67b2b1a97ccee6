package installation_test

import (
	"testing"

	"cctv-service/internal/domain/installation"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to installation.Status
		want     bool
	}{
		{installation.StatusPending, installation.StatusInProgress, true},
		{installation.StatusPending, installation.StatusFailed, true},
		{installation.StatusPending, installation.StatusCompleted, false},
		{installation.StatusInProgress, installation.StatusCompleted, true},
		{installation.StatusInProgress, installation.StatusFailed, true},
		{installation.StatusInProgress, installation.StatusPending, false},
		{installation.StatusCompleted, installation.StatusInProgress, false},
		{installation.StatusCompleted, installation.StatusFailed, false},
		{installation.StatusFailed, installation.StatusPending, false},
		{installation.Status("cancelled"), installation.StatusFailed, false},
	}

	for _, tt := range tests {
		if got := installation.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusValidAndTerminal(t *testing.T) {
	valid := []installation.Status{
		installation.StatusPending,
		installation.StatusInProgress,
		installation.StatusCompleted,
		installation.StatusFailed,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if installation.Status("in_progress").Valid() {
		t.Error("underscored spelling must not be valid")
	}

	if installation.StatusPending.Terminal() || installation.StatusInProgress.Terminal() {
		t.Error("pending and in-progress are not terminal")
	}
	if !installation.StatusCompleted.Terminal() || !installation.StatusFailed.Terminal() {
		t.Error("completed and failed are terminal")
	}
}
