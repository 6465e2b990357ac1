package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	checkoutdomain "github.com/markproof/portal/internal/checkout/domain"
	"github.com/markproof/portal/internal/config"
	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  subscriptiondomain.Repository
	Cfg   config.Config
}

type service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   subscriptiondomain.Repository
	stripe *stripeClient
}

func NewService(p Params) checkoutdomain.Service {
	return &service{
		db:     p.DB,
		log:    p.Log.Named("checkout"),
		genID:  p.GenID,
		repo:   p.Repo,
		stripe: newStripeClient(p.Cfg.StripeSecretKey),
	}
}

func (s *service) CreateSession(ctx context.Context, req checkoutdomain.CreateSessionRequest) (checkoutdomain.CreateSessionResponse, error) {
	planName := strings.TrimSpace(req.PlanName)
	email := strings.TrimSpace(req.Email)
	if planName == "" || email == "" || req.Amount <= 0 {
		return checkoutdomain.CreateSessionResponse{}, checkoutdomain.ErrMissingFields
	}

	// Config check happens before any network call.
	if s.stripe.apiKey == "" {
		return checkoutdomain.CreateSessionResponse{}, checkoutdomain.ErrNotConfigured
	}

	session, err := s.stripe.createCheckoutSession(ctx, planName, req.Amount, email, strings.TrimRight(req.Origin, "/"))
	if err != nil {
		return checkoutdomain.CreateSessionResponse{}, err
	}

	now := time.Now().UTC()
	record := &subscriptiondomain.Record{
		ID:              s.genID.Generate(),
		UserEmail:       email,
		PlanName:        planName,
		StripeSessionID: session.ID,
		AmountCents:     req.Amount,
		Status:          subscriptiondomain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Best effort: the session already exists at Stripe, so a failed insert
	// must not block the customer from reaching the checkout URL.
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		s.log.Error("failed to record pending subscription",
			zap.Error(err),
			zap.String("session_id", session.ID),
			zap.String("plan", planName),
		)
	}

	return checkoutdomain.CreateSessionResponse{
		URL:       session.URL,
		SessionID: session.ID,
	}, nil
}
