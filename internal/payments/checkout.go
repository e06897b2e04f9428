// Package payments is the boundary to the payment collaborator. The ledger
// only ever sees CheckoutCreator; the Stripe transport stays behind it.
package payments

import (
	"context"
	"errors"
)

// ErrCheckoutFailed is the single error surfaced for any collaborator
// failure, timeouts included. The underlying cause is logged, not returned.
var ErrCheckoutFailed = errors.New("checkout session creation failed")

// CheckoutParams describe one payment to collect. Amount is in minor
// currency units.
type CheckoutParams struct {
	AmountMinor   int64
	Currency      string
	Name          string
	Description   string
	ImageURL      string
	CustomerEmail string
	ReferenceID   string
	SuccessURL    string
	CancelURL     string
}

// Session is the opaque result handed back to the client: the session id
// stored on the booking and the URL the patient is redirected to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutCreator creates a hosted checkout session for one appointment.
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, p CheckoutParams) (*Session, error)
}
