package repository

import (
	"context"
	"errors"
	"time"

	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() subscriptiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *subscriptiondomain.Record) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (
			id, user_email, plan_name, stripe_session_id, stripe_customer_id,
			stripe_subscription_id, amount_cents, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserEmail,
		record.PlanName,
		record.StripeSessionID,
		record.StripeCustomerID,
		record.StripeSubscriptionID,
		record.AmountCents,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
	).Error
}

func (r *repo) ActivateBySessionID(ctx context.Context, db *gorm.DB, sessionID, customerID, subscriptionID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, stripe_customer_id = ?, stripe_subscription_id = ?, updated_at = ?
		 WHERE stripe_session_id = ?`,
		subscriptiondomain.StatusActive,
		nullIfEmpty(customerID),
		nullIfEmpty(subscriptionID),
		time.Now().UTC(),
		sessionID,
	).Error
}

// Provider id columns stay NULL until Stripe supplies a value.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *repo) UpdateStatusBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string, status subscriptiondomain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions
		 SET status = ?, updated_at = ?
		 WHERE stripe_subscription_id = ?`,
		status,
		time.Now().UTC(),
		subscriptionID,
	).Error
}

func (r *repo) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*subscriptiondomain.Record, error) {
	var record subscriptiondomain.Record
	err := db.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscriptiondomain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*subscriptiondomain.Record, error) {
	var record subscriptiondomain.Record
	err := db.WithContext(ctx).
		Where("stripe_subscription_id = ?", subscriptionID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscriptiondomain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}
