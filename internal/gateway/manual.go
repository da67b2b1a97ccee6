// internal/gateway/manual.go
package gateway

import (
	"context"
	"fmt"

	xerrors "cctv-service/internal/pkg/errors"

	"github.com/google/uuid"
)

// ManualGateway backs cash and bank-transfer payments. Sessions are local
// references only; settlement is confirmed by staff, never by verification.
type ManualGateway struct{}

func NewManualGateway() *ManualGateway { return &ManualGateway{} }

func (g *ManualGateway) Name() string { return "manual" }

func (g *ManualGateway) CreateSession(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Session, error) {
	return &Session{ID: "man_" + uuid.NewString()}, nil
}

func (g *ManualGateway) VerifyPayment(ctx context.Context, reference string) (*VerifyResult, error) {
	return nil, fmt.Errorf("%w: manual payments are confirmed by staff", xerrors.ErrGateway)
}

func (g *ManualGateway) Refund(ctx context.Context, reference string) error {
	return nil
}
