package payments

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeCheckout creates Stripe Checkout sessions in payment mode.
type StripeCheckout struct {
	sessions *session.Client
}

// NewStripeCheckout builds a client with its own time-bounded HTTP backend,
// so a slow Stripe call cannot hold a booking request open indefinitely.
func NewStripeCheckout(secretKey string, timeout time.Duration) *StripeCheckout {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	})
	return &StripeCheckout{
		sessions: &session.Client{B: backend, Key: secretKey},
	}
}

func (s *StripeCheckout) CreateCheckout(ctx context.Context, p CheckoutParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		CustomerEmail:      stripe.String(p.CustomerEmail),
		ClientReferenceID:  stripe.String(p.ReferenceID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.Name),
						Description: stripe.String(p.Description),
						Images:      stripe.StringSlice([]string{p.ImageURL}),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		log.Printf("stripe: checkout session creation failed: %v", err)
		return nil, ErrCheckoutFailed
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}
