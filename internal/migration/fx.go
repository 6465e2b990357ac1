package migration

import (
	"github.com/markproof/portal/internal/config"
	plandomain "github.com/markproof/portal/internal/plan/domain"
	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite has no golang-migrate driver wired here; AutoMigrate
			// keeps local development working against the same models.
			err := conn.AutoMigrate(
				&subscriptiondomain.Record{},
				&trialdomain.Lead{},
				&plandomain.Plan{},
			)
			if err != nil {
				return err
			}
			return seedPlans(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)

func seedPlans(conn *gorm.DB) error {
	plans := []plandomain.Plan{
		{Code: "starter", Name: "Starter", AmountCents: 9900, Interval: "month", Description: "Monitoring for a single brand"},
		{Code: "professional", Name: "Professional", AmountCents: 49900, Interval: "month", Description: "Protection for growing teams"},
		{Code: "enterprise", Name: "Enterprise", AmountCents: 199900, Interval: "month", Description: "Full coverage for global brands"},
	}
	return conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&plans).Error
}
