// Package domain defines the read-only pricing plan catalog.
package domain

import (
	"context"

	"gorm.io/gorm"
)

// Plan is a pricing tier seeded by migration. The catalog feeds the pricing
// page; checkout accepts the client-submitted plan name and amount as-is.
type Plan struct {
	Code        string `gorm:"column:code;primaryKey" json:"code"`
	Name        string `gorm:"column:name" json:"name"`
	AmountCents int64  `gorm:"column:amount_cents" json:"amountCents"`
	Interval    string `gorm:"column:interval" json:"interval"`
	Description string `gorm:"column:description" json:"description"`
}

func (Plan) TableName() string {
	return "plans"
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]Plan, error)
}
