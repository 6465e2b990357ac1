package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEstimateROIHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{
		"asset_value": 50000,
		"unauthorized_uses": 10,
		"average_loss": 30000,
		"protection_cost": 5000,
		"monthly_subscription": 249,
		"recovery_rate": 70,
		"growth_rate": 5
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roi/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			PotentialLosses      float64 `json:"potential_losses"`
			AnnualProtectionCost float64 `json:"annual_protection_cost"`
			RecoveredRevenue     float64 `json:"recovered_revenue"`
			NetSavings           float64 `json:"net_savings"`
			ROI                  float64 `json:"roi"`
		} `json:"result"`
		Projection []struct {
			Year int `json:"year"`
		} `json:"projection"`
		Band string `json:"band"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Result.PotentialLosses != 300000 {
		t.Fatalf("unexpected potential losses %v", resp.Result.PotentialLosses)
	}
	if resp.Result.AnnualProtectionCost != 7988 {
		t.Fatalf("unexpected annual protection cost %v", resp.Result.AnnualProtectionCost)
	}
	if len(resp.Projection) != 5 {
		t.Fatalf("expected 5 projection years, got %d", len(resp.Projection))
	}
	if resp.Band != "Exceptional" {
		t.Fatalf("unexpected band %q", resp.Band)
	}
}

func TestEstimateROICoercesGarbageInput(t *testing.T) {
	srv, _ := newTestServer(t)

	// String numbers coerce, garbage becomes zero; the endpoint never rejects.
	body := `{
		"asset_value": "50000",
		"unauthorized_uses": "ten",
		"average_loss": 30000
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roi/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			PotentialLosses float64 `json:"potential_losses"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.PotentialLosses != 0 {
		t.Fatalf("expected zeroed losses for garbage uses, got %v", resp.Result.PotentialLosses)
	}
}

func TestListROIPresetsHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roi/presets", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Presets []struct {
			Name string `json:"name"`
		} `json:"presets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(resp.Presets))
	}
	if resp.Presets[0].Name != "Startup" {
		t.Fatalf("unexpected first preset %q", resp.Presets[0].Name)
	}
}

func TestDownloadROIReportHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"scenario":"Startup"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roi/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("expected PDF bytes, got %q", w.Body.String())
	}
}

func TestDownloadROIReportUnknownScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"scenario":"Galactic"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roi/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
