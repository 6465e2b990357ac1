package service

import (
	"context"
	"math"
	"testing"

	"github.com/markproof/portal/internal/config"
	roidomain "github.com/markproof/portal/internal/roi/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) roidomain.Service {
	t.Helper()

	holder, err := config.NewCalculatorConfigHolder()
	if err != nil {
		t.Fatalf("new calculator config holder: %v", err)
	}

	return NewService(Params{
		Log:        zap.NewNop(),
		Calculator: holder,
		PDF:        &stubPDFProvider{},
	})
}

func TestComputeWorkedExample(t *testing.T) {
	params := roidomain.Params{
		AssetValue:          500000,
		UnauthorizedUses:    30,
		AverageLoss:         10000,
		ProtectionCost:      2000,
		MonthlySubscription: 499,
		RecoveryRate:        70,
		GrowthRate:          5,
	}

	result := Compute(params)

	assert.Equal(t, 300000.0, result.PotentialLosses)
	assert.Equal(t, 7988.0, result.AnnualProtectionCost)
	assert.Equal(t, 210000.0, result.RecoveredRevenue)
	assert.Equal(t, 202012.0, result.NetSavings)
	assert.InDelta(t, 2529.4, result.ROI, 1.0)
	assert.Equal(t, "Exceptional", BandFor(config.DefaultCalculatorConfig().Bands, result.ROI))
}

func TestComputeInvariants(t *testing.T) {
	cases := []roidomain.Params{
		{},
		{UnauthorizedUses: 10, AverageLoss: 2500, RecoveryRate: 60},
		{UnauthorizedUses: 5, AverageLoss: 100, ProtectionCost: 10000, MonthlySubscription: 99, RecoveryRate: 50},
		{UnauthorizedUses: 1, AverageLoss: 1, RecoveryRate: 150, GrowthRate: 300},
	}

	for _, params := range cases {
		result := Compute(params)
		if result.NetSavings != result.RecoveredRevenue-result.AnnualProtectionCost {
			t.Fatalf("net savings mismatch for %+v", params)
		}
		if result.AnnualProtectionCost == 0 && result.ROI != 0 {
			t.Fatalf("expected zero ROI with zero protection cost, got %f", result.ROI)
		}
	}
}

func TestComputeDoesNotClampPercentages(t *testing.T) {
	result := Compute(roidomain.Params{
		UnauthorizedUses:    10,
		AverageLoss:         1000,
		ProtectionCost:      100,
		RecoveryRate:        150,
	})

	// 150% recovery propagates as-is.
	assert.Equal(t, 15000.0, result.RecoveredRevenue)
}

func TestProjectSeries(t *testing.T) {
	params := roidomain.Params{
		UnauthorizedUses:    30,
		AverageLoss:         10000,
		ProtectionCost:      2000,
		MonthlySubscription: 499,
		RecoveryRate:        70,
		GrowthRate:          5,
	}

	result := Compute(params)
	projection := Project(params)

	if len(projection) != roidomain.ProjectionYears {
		t.Fatalf("expected %d projection years, got %d", roidomain.ProjectionYears, len(projection))
	}

	assert.Equal(t, result.PotentialLosses, projection[0].Losses)
	assert.Equal(t, result.NetSavings, projection[0].Savings)

	for i, year := range projection {
		assert.Equal(t, i, year.Year)
		assert.Equal(t, result.AnnualProtectionCost, year.Protection)
	}

	// Year 1 compounds once: 300000 * 1.05 = 315000.
	assert.Equal(t, 315000.0, projection[1].Losses)
	assert.Equal(t, math.Round(result.NetSavings*math.Pow(1.05, 4)), projection[4].Savings)
}

func TestBandForThresholds(t *testing.T) {
	bands := config.DefaultCalculatorConfig().Bands

	tests := []struct {
		roi  float64
		want string
	}{
		{250, "Exceptional"},
		{200, "Strong"}, // boundary is exclusive
		{150, "Strong"},
		{100, "Good"},
		{60, "Good"},
		{50, "Moderate"},
		{0.1, "Moderate"},
		{0, "Review Needed"},
		{-40, "Review Needed"},
	}

	for _, tt := range tests {
		if got := BandFor(bands, tt.roi); got != tt.want {
			t.Fatalf("BandFor(%f) = %q, want %q", tt.roi, got, tt.want)
		}
	}
}

func TestPresetForStartup(t *testing.T) {
	svc := newTestService(t)

	preset, err := svc.PresetFor(context.Background(), "Startup")
	if err != nil {
		t.Fatalf("preset lookup: %v", err)
	}

	want := roidomain.Params{
		AssetValue:          50000,
		UnauthorizedUses:    10,
		AverageLoss:         2500,
		ProtectionCost:      500,
		MonthlySubscription: 99,
		RecoveryRate:        60,
		GrowthRate:          15,
	}
	assert.Equal(t, want, preset.Params)

	// Recomputation from the preset is deterministic.
	first := svc.Estimate(context.Background(), preset.Params)
	second := svc.Estimate(context.Background(), preset.Params)
	assert.Equal(t, first, second)

	_, err = svc.PresetFor(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, roidomain.ErrPresetNotFound)
}

func TestEstimateBandsResult(t *testing.T) {
	svc := newTestService(t)

	estimate := svc.Estimate(context.Background(), roidomain.Params{
		UnauthorizedUses: 10,
		AverageLoss:      100,
		RecoveryRate:     50,
	})

	// Zero protection cost pins ROI at 0.
	assert.Equal(t, 0.0, estimate.Result.ROI)
	assert.Equal(t, "Review Needed", estimate.Band)
	assert.Len(t, estimate.Projection, roidomain.ProjectionYears)
}
