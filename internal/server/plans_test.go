package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
)

func TestListPlansHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Plans []struct {
			Code        string `json:"code"`
			AmountCents int64  `json:"amountCents"`
		} `json:"plans"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(resp.Plans))
	}
	if resp.Plans[0].Code != "starter" || resp.Plans[0].AmountCents != 9900 {
		t.Fatalf("unexpected first plan %+v", resp.Plans[0])
	}
}

func TestGetSubscriptionBySessionHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/cs_test_abc", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "active" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}

func TestGetSubscriptionBySessionNotFound(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.subs.record = nil
	deps.subs.err = subscriptiondomain.ErrNotFound

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/cs_missing", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
