// Package domain defines the checkout-session creation contract: a plan
// name, an amount in minor currency units, and a customer email go in; a
// Stripe-hosted checkout URL and session id come out.
package domain

import (
	"context"
	"errors"
)

var (
	// ErrMissingFields is returned when any of planName/amount/email is
	// absent from the request.
	ErrMissingFields = errors.New("missing required fields")
	// ErrNotConfigured is returned before any network call when no Stripe
	// secret key is configured.
	ErrNotConfigured = errors.New("stripe secret key is not configured")
)

type CreateSessionRequest struct {
	PlanName string `json:"planName"`
	Amount   int64  `json:"amount"`
	Email    string `json:"email"`

	// Origin is taken from the request's Origin header and anchors the
	// success/cancel redirect URLs.
	Origin string `json:"-"`
}

type CreateSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (CreateSessionResponse, error)
}
