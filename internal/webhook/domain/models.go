// Package domain defines the Stripe webhook ingestion contract. Events are
// matched on provider identifiers and applied as keyed status updates, so a
// redelivered event always converges on the same end state.
package domain

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidPayload   = errors.New("invalid_payload")
)

// Event types handled by the portal.
const (
	EventCheckoutSessionCompleted    = "checkout.session.completed"
	EventCustomerSubscriptionUpdated = "customer.subscription.updated"
	EventCustomerSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaymentFailed        = "invoice.payment_failed"
)

type Service interface {
	// HandleEvent verifies (when possible) and applies one webhook
	// delivery. A nil return must be acknowledged with HTTP 200 even for
	// unrecognized event types; ErrInvalidSignature maps to HTTP 400; any
	// other error maps to HTTP 500 so Stripe redelivers.
	HandleEvent(ctx context.Context, payload []byte, headers http.Header) error
}
