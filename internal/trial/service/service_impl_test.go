package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
	trialrepo "github.com/markproof/portal/internal/trial/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_trial_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.Exec(`CREATE TABLE trial_signups (
		id BIGINT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		company TEXT,
		ai_use_case TEXT,
		created_at DATETIME NOT NULL
	)`).Error
	if err != nil {
		t.Fatalf("schema exec failed: %v", err)
	}

	return db
}

type stubEmailProvider struct {
	sent     int
	lastTo   []string
	lastName string
	lastData map[string]any
	err      error
}

func (p *stubEmailProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	return p.err
}

func (p *stubEmailProvider) SendTemplate(ctx context.Context, to []string, templateName string, data map[string]any) error {
	p.sent++
	p.lastTo = to
	p.lastName = templateName
	p.lastData = data
	return p.err
}

func newTestService(t *testing.T, db *gorm.DB, mail *stubEmailProvider) trialdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(4)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	return &service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		repo:  trialrepo.Provide(),
		email: mail,
	}
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	mail := &stubEmailProvider{}
	svc := newTestService(t, db, mail)

	result, err := svc.Signup(context.Background(), trialdomain.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Company:   "Analytical Engines",
		AIUseCase: "brand monitoring",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if result.ID == "" || result.Email != "ada@example.com" || !result.EmailSent {
		t.Fatalf("unexpected result %+v", result)
	}
	if mail.sent != 1 || mail.lastName != "trial_welcome" {
		t.Fatalf("expected one trial_welcome send, got %d %q", mail.sent, mail.lastName)
	}
	if mail.lastTo[0] != "ada@example.com" {
		t.Fatalf("unexpected recipient %v", mail.lastTo)
	}
	if mail.lastData["FirstName"] != "Ada" {
		t.Fatalf("unexpected template data %v", mail.lastData)
	}

	lead, err := trialrepo.Provide().FindByEmail(context.Background(), db, "ada@example.com")
	if err != nil {
		t.Fatalf("find lead: %v", err)
	}
	if lead.FirstName != "Ada" || lead.Company != "Analytical Engines" {
		t.Fatalf("unexpected lead %+v", lead)
	}
}

func TestSignupMissingFields(t *testing.T) {
	db := setupTestDB(t)
	mail := &stubEmailProvider{}
	svc := newTestService(t, db, mail)

	requests := []trialdomain.SignupRequest{
		{LastName: "Lovelace", Email: "ada@example.com"},
		{FirstName: "Ada", Email: "ada@example.com"},
		{FirstName: "Ada", LastName: "Lovelace"},
		{FirstName: "  ", LastName: "Lovelace", Email: "ada@example.com"},
	}
	for _, req := range requests {
		if _, err := svc.Signup(context.Background(), req); !errors.Is(err, trialdomain.ErrMissingFields) {
			t.Fatalf("expected missing fields for %+v, got %v", req, err)
		}
	}
	if mail.sent != 0 {
		t.Fatalf("expected no emails, got %d", mail.sent)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	mail := &stubEmailProvider{}
	svc := newTestService(t, db, mail)

	req := trialdomain.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, trialdomain.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	if mail.sent != 1 {
		t.Fatalf("expected single email, got %d", mail.sent)
	}
}

func TestSignupEmailFailureStillSucceeds(t *testing.T) {
	db := setupTestDB(t)
	mail := &stubEmailProvider{err: errors.New("smtp: connection refused")}
	svc := newTestService(t, db, mail)

	result, err := svc.Signup(context.Background(), trialdomain.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("signup must survive email failure: %v", err)
	}
	if result.EmailSent {
		t.Fatalf("expected emailSent=false, got %+v", result)
	}

	if _, err := trialrepo.Provide().FindByEmail(context.Background(), db, "ada@example.com"); err != nil {
		t.Fatalf("lead must be persisted despite email failure: %v", err)
	}
}
