package service

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/markproof/portal/internal/config"
	"github.com/markproof/portal/internal/providers/pdf"
	roidomain "github.com/markproof/portal/internal/roi/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Calculator *config.CalculatorConfigHolder
	PDF        pdf.Provider
}

type service struct {
	log        *zap.Logger
	calculator *config.CalculatorConfigHolder
	pdf        pdf.Provider
}

func NewService(p Params) roidomain.Service {
	return &service{
		log:        p.Log.Named("roi"),
		calculator: p.Calculator,
		pdf:        p.PDF,
	}
}

// Compute derives the five result metrics from the calculator inputs. ROI is
// defined as 0 when the annual protection cost is 0.
func Compute(params roidomain.Params) roidomain.Result {
	potentialLosses := params.UnauthorizedUses * params.AverageLoss
	annualProtectionCost := params.ProtectionCost + params.MonthlySubscription*12
	recoveredRevenue := potentialLosses * (params.RecoveryRate / 100)
	netSavings := recoveredRevenue - annualProtectionCost

	roi := 0.0
	if annualProtectionCost > 0 {
		roi = (netSavings / annualProtectionCost) * 100
	}

	return roidomain.Result{
		PotentialLosses:      potentialLosses,
		AnnualProtectionCost: annualProtectionCost,
		RecoveredRevenue:     recoveredRevenue,
		NetSavings:           netSavings,
		ROI:                  roi,
	}
}

// Project builds the five-year series. Losses and savings compound by the
// growth rate and are rounded per year; the protection cost stays flat.
func Project(params roidomain.Params) []roidomain.ProjectionYear {
	result := Compute(params)

	projection := make([]roidomain.ProjectionYear, 0, roidomain.ProjectionYears)
	for i := 0; i < roidomain.ProjectionYears; i++ {
		factor := math.Pow(1+params.GrowthRate/100, float64(i))
		projection = append(projection, roidomain.ProjectionYear{
			Year:       i,
			Losses:     math.Round(params.UnauthorizedUses * params.AverageLoss * factor),
			Protection: result.AnnualProtectionCost,
			Savings:    math.Round(result.NetSavings * factor),
		})
	}
	return projection
}

// BandFor labels an ROI percentage against the configured bands, evaluated
// highest threshold first. Ties fall through to the next band.
func BandFor(bands []config.ROIBand, roi float64) string {
	for _, band := range bands {
		if roi > band.Min {
			return band.Label
		}
	}
	return config.FallbackBandLabel
}

// RecommendationFor picks one of four canned report sentences.
func RecommendationFor(roi float64) string {
	switch {
	case roi > 100:
		return "Brand protection delivers an outstanding return for your profile. We recommend activating full monitoring immediately to stop ongoing losses."
	case roi > 50:
		return "Protection pays for itself well within the first year. Starting with the Professional plan covers your current exposure."
	case roi > 0:
		return "Protection produces a positive return at your current exposure. Consider starting with the Starter plan and scaling as unauthorized use grows."
	default:
		return "At your current parameters the protection cost exceeds recovered revenue. Review your asset value and incident estimates, or talk to our team about a tailored plan."
	}
}

func (s *service) Estimate(ctx context.Context, params roidomain.Params) roidomain.Estimate {
	result := Compute(params)
	return roidomain.Estimate{
		Params:     params,
		Result:     result,
		Projection: Project(params),
		Band:       BandFor(s.calculator.Get().Bands, result.ROI),
	}
}

func (s *service) Presets(ctx context.Context) []roidomain.Preset {
	cfg := s.calculator.Get()
	presets := make([]roidomain.Preset, 0, len(cfg.Presets))
	for _, p := range cfg.Presets {
		presets = append(presets, toPreset(p))
	}
	return presets
}

func (s *service) PresetFor(ctx context.Context, name string) (roidomain.Preset, error) {
	for _, p := range s.calculator.Get().Presets {
		if strings.EqualFold(strings.TrimSpace(name), p.Name) {
			return toPreset(p), nil
		}
	}
	return roidomain.Preset{}, roidomain.ErrPresetNotFound
}

func (s *service) Report(ctx context.Context, params roidomain.Params) (io.Reader, error) {
	estimate := s.Estimate(ctx, params)

	reader, err := s.pdf.GenerateROIReport(ctx, pdf.ReportData{
		GeneratedAt:    time.Now().UTC().Format("January 2, 2006"),
		Params:         estimate.Params,
		Result:         estimate.Result,
		Projection:     estimate.Projection,
		Band:           estimate.Band,
		Recommendation: RecommendationFor(estimate.Result.ROI),
	})
	if err != nil {
		s.log.Error("roi report generation failed", zap.Error(err))
		return nil, err
	}
	return reader, nil
}

func toPreset(p config.ScenarioPreset) roidomain.Preset {
	return roidomain.Preset{
		Name: p.Name,
		Params: roidomain.Params{
			AssetValue:          p.AssetValue,
			UnauthorizedUses:    p.UnauthorizedUses,
			AverageLoss:         p.AverageLoss,
			ProtectionCost:      p.ProtectionCost,
			MonthlySubscription: p.MonthlySubscription,
			RecoveryRate:        p.RecoveryRate,
			GrowthRate:          p.GrowthRate,
		},
	}
}
