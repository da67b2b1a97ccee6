// internal/gateway/gateway.go
package gateway

import (
	"context"
	"fmt"

	xerrors "cctv-service/internal/pkg/errors"
)

// Session is a checkout session handle created at the provider.
type Session struct {
	ID  string `json:"session_id"`
	URL string `json:"url,omitempty"`
}

// VerifyResult is the provider's answer for a session reference.
// Status "paid" is the only value that completes a payment.
type VerifyResult struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

const StatusPaid = "paid"

// Gateway abstracts an external payment provider. Implementations must not
// touch local storage; callers own the surrounding transaction semantics.
type Gateway interface {
	Name() string
	CreateSession(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Session, error)
	VerifyPayment(ctx context.Context, reference string) (*VerifyResult, error)
	Refund(ctx context.Context, reference string) error
}

type Config struct {
	StripeSecretKey string
	AppURL          string
}

// New builds a gateway by its configured name.
func New(name string, cfg Config) (Gateway, error) {
	switch name {
	case "stripe":
		return NewCardGateway(cfg.StripeSecretKey, cfg.AppURL)
	case "paypal":
		return NewWalletGateway(), nil
	case "manual":
		return NewManualGateway(), nil
	default:
		return nil, fmt.Errorf("%w: unknown gateway %q", xerrors.ErrInvalidInput, name)
	}
}
