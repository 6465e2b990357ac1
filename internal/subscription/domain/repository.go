package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists subscription records. Insert is the only creation
// path; the update methods are keyed on Stripe identifiers and never insert,
// which keeps webhook redelivery idempotent.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Record) error
	ActivateBySessionID(ctx context.Context, db *gorm.DB, sessionID, customerID, subscriptionID string) error
	UpdateStatusBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string, status Status) error
	FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*Record, error)
	FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*Record, error)
}
