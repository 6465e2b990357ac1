// Package domain defines the trial-signup lead capture contract.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrDuplicateEmail = errors.New("email already registered")
)

// SignupRequest is the JSON body of a trial-signup submission.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	AIUseCase string `json:"aiUseCase"`
}

// Validate trims the submitted fields and checks the required ones.
func (r *SignupRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.AIUseCase = strings.TrimSpace(r.AIUseCase)

	if r.FirstName == "" || r.LastName == "" || r.Email == "" {
		return ErrMissingFields
	}
	return nil
}

// Lead is a captured trial signup.
type Lead struct {
	ID        snowflake.ID `gorm:"column:id;primaryKey"`
	FirstName string       `gorm:"column:first_name"`
	LastName  string       `gorm:"column:last_name"`
	Email     string       `gorm:"column:email;uniqueIndex"`
	Company   string       `gorm:"column:company"`
	AIUseCase string       `gorm:"column:ai_use_case"`
	CreatedAt time.Time    `gorm:"column:created_at"`
}

func (Lead) TableName() string {
	return "trial_signups"
}

// SignupResult reports the stored lead and whether the welcome email went out.
type SignupResult struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	EmailSent bool   `json:"emailSent"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, lead *Lead) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Lead, error)
}

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResult, error)
}
