// internal/gateway/stripe.go
package gateway

import (
	"context"
	"fmt"
	"math"

	xerrors "cctv-service/internal/pkg/errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// CardGateway processes card payments through Stripe checkout sessions.
type CardGateway struct {
	sc     *client.API
	appURL string
}

func NewCardGateway(secretKey, appURL string) (*CardGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("missing STRIPE_SECRET_KEY")
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &CardGateway{sc: sc, appURL: appURL}, nil
}

func (g *CardGateway) Name() string { return "stripe" }

func (g *CardGateway) CreateSession(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("CCTV Installation"),
				},
				UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(g.appURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.appURL + "/payment/cancel"),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe session create: %v", xerrors.ErrGateway, err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (g *CardGateway) VerifyPayment(ctx context.Context, reference string) (*VerifyResult, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.sc.CheckoutSessions.Get(reference, params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe session retrieve: %v", xerrors.ErrGateway, err)
	}

	result := &VerifyResult{
		Status: string(sess.PaymentStatus),
		Amount: float64(sess.AmountTotal) / 100,
	}
	return result, nil
}

// Refund is a stubbed capability: refunds are settled out of band against
// the provider and only the local record changes state.
func (g *CardGateway) Refund(ctx context.Context, reference string) error {
	return nil
}
