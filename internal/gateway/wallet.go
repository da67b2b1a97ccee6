// internal/gateway/wallet.go
package gateway

import (
	"context"
	"fmt"

	xerrors "cctv-service/internal/pkg/errors"
)

// WalletGateway is the PayPal integration slot. The upstream integration is
// not live yet, so every call reports a typed gateway error; payment
// creation rolls the local record back on that error.
type WalletGateway struct{}

func NewWalletGateway() *WalletGateway { return &WalletGateway{} }

func (g *WalletGateway) Name() string { return "paypal" }

func (g *WalletGateway) CreateSession(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Session, error) {
	return nil, fmt.Errorf("%w: paypal integration not available", xerrors.ErrGateway)
}

func (g *WalletGateway) VerifyPayment(ctx context.Context, reference string) (*VerifyResult, error) {
	return nil, fmt.Errorf("%w: paypal verification not available", xerrors.ErrGateway)
}

func (g *WalletGateway) Refund(ctx context.Context, reference string) error {
	return fmt.Errorf("%w: paypal refunds not available", xerrors.ErrGateway)
}
