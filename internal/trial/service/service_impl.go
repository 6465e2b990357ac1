package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/markproof/portal/internal/providers/email"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
	"github.com/markproof/portal/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  trialdomain.Repository
	Email email.Provider
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  trialdomain.Repository
	email email.Provider
}

func NewService(p Params) trialdomain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("trial"),
		genID: p.GenID,
		repo:  p.Repo,
		email: p.Email,
	}
}

func (s *service) Signup(ctx context.Context, req trialdomain.SignupRequest) (*trialdomain.SignupResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead := &trialdomain.Lead{
		ID:        s.genID.Generate(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		AIUseCase: req.AIUseCase,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, lead); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, trialdomain.ErrDuplicateEmail
		}
		return nil, err
	}

	// The welcome email is fire-and-forget. A delivery failure is logged and
	// the signup still succeeds.
	emailSent := true
	err := s.email.SendTemplate(ctx, []string{lead.Email}, "trial_welcome", map[string]any{
		"FirstName": lead.FirstName,
		"LastName":  lead.LastName,
		"Company":   lead.Company,
	})
	if err != nil {
		emailSent = false
		s.log.Error("trial welcome email failed",
			zap.Error(err),
			zap.String("email", lead.Email),
		)
	}

	return &trialdomain.SignupResult{
		ID:        lead.ID.String(),
		Email:     lead.Email,
		EmailSent: emailSent,
	}, nil
}
