// Package domain contains the persisted subscription record and its status
// lifecycle. A row is created exactly once per checkout session in status
// pending; every later change is a keyed update driven by a Stripe webhook.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status represents lifecycle states for a subscription record. Stripe
// statuses without an explicit mapping are stored verbatim.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

var (
	ErrNotFound = errors.New("subscription_not_found")
)

// Record tracks one checkout session and the subscription it becomes.
type Record struct {
	ID                   snowflake.ID `gorm:"primaryKey" json:"id"`
	UserEmail            string       `gorm:"type:text;not null;index" json:"user_email"`
	PlanName             string       `gorm:"type:text;not null" json:"plan_name"`
	StripeSessionID      string       `gorm:"type:text;not null;uniqueIndex" json:"stripe_session_id"`
	StripeCustomerID     *string      `gorm:"type:text" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string      `gorm:"type:text;index" json:"stripe_subscription_id,omitempty"`
	AmountCents          int64        `gorm:"not null" json:"amount_cents"`
	Status               Status       `gorm:"type:text;not null" json:"status"`
	CreatedAt            time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "subscriptions" }
