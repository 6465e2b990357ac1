package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_plan_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.Exec(`CREATE TABLE plans (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		interval TEXT NOT NULL,
		description TEXT
	)`).Error
	if err != nil {
		t.Fatalf("schema exec failed: %v", err)
	}

	seed := `INSERT INTO plans (code, name, amount_cents, interval, description) VALUES
		('enterprise', 'Enterprise', 199900, 'month', 'Full coverage for global brands'),
		('starter', 'Starter', 9900, 'month', 'Monitoring for a single brand'),
		('professional', 'Professional', 49900, 'month', 'Protection for growing teams')`
	if err := db.Exec(seed).Error; err != nil {
		t.Fatalf("seed exec failed: %v", err)
	}

	return db
}

func TestListOrdersByAmount(t *testing.T) {
	db := setupTestDB(t)

	plans, err := Provide().List(context.Background(), db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}

	codes := []string{plans[0].Code, plans[1].Code, plans[2].Code}
	expected := []string{"starter", "professional", "enterprise"}
	for i := range expected {
		if codes[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, codes)
		}
	}
	if plans[1].AmountCents != 49900 || plans[1].Interval != "month" {
		t.Fatalf("unexpected professional plan %+v", plans[1])
	}
}
