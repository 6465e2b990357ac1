package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markproof/portal/internal/checkout"
	checkoutdomain "github.com/markproof/portal/internal/checkout/domain"
	"github.com/markproof/portal/internal/config"
	obsmiddleware "github.com/markproof/portal/internal/observability/logger"
	obsmetrics "github.com/markproof/portal/internal/observability/metrics"
	obstracing "github.com/markproof/portal/internal/observability/tracing"
	"github.com/markproof/portal/internal/plan"
	plandomain "github.com/markproof/portal/internal/plan/domain"
	"github.com/markproof/portal/internal/providers/email"
	"github.com/markproof/portal/internal/providers/pdf"
	"github.com/markproof/portal/internal/roi"
	roidomain "github.com/markproof/portal/internal/roi/domain"
	"github.com/markproof/portal/internal/subscription"
	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
	"github.com/markproof/portal/internal/trial"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
	"github.com/markproof/portal/internal/webhook"
	webhookdomain "github.com/markproof/portal/internal/webhook/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	email.Module,
	pdf.Module,
	roi.Module,
	checkout.Module,
	webhook.Module,
	subscription.Module,
	trial.Module,
	plan.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(CORSMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	roiSvc          roidomain.Service
	checkoutSvc     checkoutdomain.Service
	webhookSvc      webhookdomain.Service
	trialSvc        trialdomain.Service
	planRepo        plandomain.Repository
	subscriptionRep subscriptiondomain.Repository
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	ROISvc          roidomain.Service
	CheckoutSvc     checkoutdomain.Service
	WebhookSvc      webhookdomain.Service
	TrialSvc        trialdomain.Service
	PlanRepo        plandomain.Repository
	SubscriptionRep subscriptiondomain.Repository
	ObsMetrics      *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		roiSvc:          p.ROISvc,
		checkoutSvc:     p.CheckoutSvc,
		webhookSvc:      p.WebhookSvc,
		trialSvc:        p.TrialSvc,
		planRepo:        p.PlanRepo,
		subscriptionRep: p.SubscriptionRep,
		obsMetrics:      p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- ROI calculator --------
	api.POST("/roi/estimate", s.EstimateROI)
	api.GET("/roi/presets", s.ListROIPresets)
	api.POST("/roi/report", s.DownloadROIReport)

	// -------- Plans --------
	api.GET("/plans", s.ListPlans)

	// -------- Checkout --------
	api.POST("/checkout/sessions", s.CreateCheckoutSession)

	// -------- Stripe Webhooks --------
	api.POST("/webhooks/stripe", s.HandleStripeWebhook)

	// -------- Trial Signups --------
	api.POST("/trial-signups", s.CreateTrialSignup)

	// -------- Subscriptions --------
	api.GET("/subscriptions/:sessionId", s.GetSubscriptionBySession)
}
