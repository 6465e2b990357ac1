package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	checkoutdomain "github.com/markproof/portal/internal/checkout/domain"
	"github.com/markproof/portal/internal/config"
	plandomain "github.com/markproof/portal/internal/plan/domain"
	"github.com/markproof/portal/internal/providers/pdf"
	roidomain "github.com/markproof/portal/internal/roi/domain"
	roiservice "github.com/markproof/portal/internal/roi/service"
	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeCheckoutService struct {
	calls int
	resp  checkoutdomain.CreateSessionResponse
	err   error
}

func (f *fakeCheckoutService) CreateSession(ctx context.Context, req checkoutdomain.CreateSessionRequest) (checkoutdomain.CreateSessionResponse, error) {
	f.calls++
	_ = ctx
	_ = req
	return f.resp, f.err
}

type fakeWebhookService struct {
	calls       int
	lastPayload []byte
	lastHeaders http.Header
	err         error
}

func (f *fakeWebhookService) HandleEvent(ctx context.Context, payload []byte, headers http.Header) error {
	f.calls++
	f.lastPayload = payload
	f.lastHeaders = headers
	_ = ctx
	return f.err
}

type fakeTrialService struct {
	calls  int
	result *trialdomain.SignupResult
	err    error
}

func (f *fakeTrialService) Signup(ctx context.Context, req trialdomain.SignupRequest) (*trialdomain.SignupResult, error) {
	f.calls++
	_ = ctx
	_ = req
	return f.result, f.err
}

type fakePlanRepo struct {
	plans []plandomain.Plan
	err   error
}

func (f *fakePlanRepo) List(ctx context.Context, db *gorm.DB) ([]plandomain.Plan, error) {
	_ = ctx
	_ = db
	return f.plans, f.err
}

type fakeSubscriptionRepo struct {
	record *subscriptiondomain.Record
	err    error
}

func (f *fakeSubscriptionRepo) Insert(ctx context.Context, db *gorm.DB, record *subscriptiondomain.Record) error {
	return nil
}

func (f *fakeSubscriptionRepo) ActivateBySessionID(ctx context.Context, db *gorm.DB, sessionID, customerID, subscriptionID string) error {
	return nil
}

func (f *fakeSubscriptionRepo) UpdateStatusBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string, status subscriptiondomain.Status) error {
	return nil
}

func (f *fakeSubscriptionRepo) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*subscriptiondomain.Record, error) {
	return f.record, f.err
}

func (f *fakeSubscriptionRepo) FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*subscriptiondomain.Record, error) {
	return f.record, f.err
}

type stubPDFProvider struct{}

func (p *stubPDFProvider) GenerateROIReport(ctx context.Context, data pdf.ReportData) (io.Reader, error) {
	_ = ctx
	_ = data
	return bytes.NewReader([]byte("%PDF-1.7 stub")), nil
}

func newROIService(t *testing.T) roidomain.Service {
	t.Helper()

	holder, err := config.NewCalculatorConfigHolder()
	if err != nil {
		t.Fatalf("calculator holder: %v", err)
	}
	return roiservice.NewService(roiservice.Params{
		Log:        zap.NewNop(),
		Calculator: holder,
		PDF:        &stubPDFProvider{},
	})
}

type testDeps struct {
	checkout *fakeCheckoutService
	webhook  *fakeWebhookService
	trial    *fakeTrialService
	plans    *fakePlanRepo
	subs     *fakeSubscriptionRepo
}

func newTestServer(t *testing.T) (*Server, *testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(CORSMiddleware())
	engine.Use(ErrorHandlingMiddleware())

	deps := &testDeps{
		checkout: &fakeCheckoutService{
			resp: checkoutdomain.CreateSessionResponse{
				URL:       "https://checkout.stripe.com/pay/cs_test_abc",
				SessionID: "cs_test_abc",
			},
		},
		webhook: &fakeWebhookService{},
		trial: &fakeTrialService{
			result: &trialdomain.SignupResult{
				ID:        snowflake.ID(1001).String(),
				Email:     "ada@example.com",
				EmailSent: true,
			},
		},
		plans: &fakePlanRepo{
			plans: []plandomain.Plan{
				{Code: "starter", Name: "Starter", AmountCents: 9900, Interval: "month"},
				{Code: "professional", Name: "Professional", AmountCents: 49900, Interval: "month"},
				{Code: "enterprise", Name: "Enterprise", AmountCents: 199900, Interval: "month"},
			},
		},
		subs: &fakeSubscriptionRepo{
			record: &subscriptiondomain.Record{
				ID:              snowflake.ID(2002),
				UserEmail:       "buyer@example.com",
				PlanName:        "Professional",
				StripeSessionID: "cs_test_abc",
				AmountCents:     49900,
				Status:          subscriptiondomain.StatusActive,
				CreatedAt:       time.Now().UTC(),
				UpdatedAt:       time.Now().UTC(),
			},
		},
	}

	srv := &Server{
		engine:          engine,
		cfg:             config.Config{},
		roiSvc:          newROIService(t),
		checkoutSvc:     deps.checkout,
		webhookSvc:      deps.webhook,
		trialSvc:        deps.trial,
		planRepo:        deps.plans,
		subscriptionRep: deps.subs,
	}
	srv.registerAPIRoutes()

	return srv, deps
}
