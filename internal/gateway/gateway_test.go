package gateway_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cctv-service/internal/gateway"
	xerrors "cctv-service/internal/pkg/errors"
)

func TestNew(t *testing.T) {
	cfg := gateway.Config{StripeSecretKey: "sk_test_123", AppURL: "http://localhost:8080"}

	tests := []struct {
		name     string
		provider string
		wantName string
	}{
		{"stripe", "stripe", "stripe"},
		{"paypal", "paypal", "paypal"},
		{"manual", "manual", "manual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, err := gateway.New(tt.provider, cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gw.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", gw.Name(), tt.wantName)
			}
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := gateway.New("mpesa", cfg); !errors.Is(err, xerrors.ErrInvalidInput) {
			t.Errorf("got %v, want ErrInvalidInput", err)
		}
	})
}

func TestManualGateway(t *testing.T) {
	ctx := context.Background()
	gw := gateway.NewManualGateway()

	t.Run("sessions are local references", func(t *testing.T) {
		sess, err := gw.CreateSession(ctx, 1200, "MAD", map[string]string{"payment_id": "7"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(sess.ID, "man_") {
			t.Errorf("session ID %q should carry the man_ prefix", sess.ID)
		}
		if sess.URL != "" {
			t.Errorf("manual sessions have no checkout URL, got %q", sess.URL)
		}

		other, err := gw.CreateSession(ctx, 1200, "MAD", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if other.ID == sess.ID {
			t.Error("session references must be unique")
		}
	})

	t.Run("verification is refused", func(t *testing.T) {
		if _, err := gw.VerifyPayment(ctx, "man_abc"); !errors.Is(err, xerrors.ErrGateway) {
			t.Errorf("got %v, want ErrGateway", err)
		}
	})

	t.Run("refund is a local no-op", func(t *testing.T) {
		if err := gw.Refund(ctx, "man_abc"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestWalletGateway(t *testing.T) {
	ctx := context.Background()
	gw := gateway.NewWalletGateway()

	if _, err := gw.CreateSession(ctx, 500, "MAD", nil); !errors.Is(err, xerrors.ErrGateway) {
		t.Errorf("CreateSession: got %v, want ErrGateway", err)
	}
	if _, err := gw.VerifyPayment(ctx, "ref"); !errors.Is(err, xerrors.ErrGateway) {
		t.Errorf("VerifyPayment: got %v, want ErrGateway", err)
	}
	if err := gw.Refund(ctx, "ref"); !errors.Is(err, xerrors.ErrGateway) {
		t.Errorf("Refund: got %v, want ErrGateway", err)
	}
}
