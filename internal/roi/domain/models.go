// Package domain contains the ROI calculator model: seven numeric business
// parameters in, five derived metrics and a five-year projection out.
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric is a float64 that tolerates sloppy client input. Strings are
// parsed, anything unparsable coerces to 0 instead of failing the request.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Numeric(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			*n = Numeric(parsed)
			return nil
		}
	}

	*n = 0
	return nil
}

// Params are the seven calculator inputs. Percentage fields are expected in
// 0-100 but are not clamped; out-of-range values propagate.
type Params struct {
	AssetValue          float64 `json:"asset_value"`
	UnauthorizedUses    float64 `json:"unauthorized_uses"`
	AverageLoss         float64 `json:"average_loss"`
	ProtectionCost      float64 `json:"protection_cost"`
	MonthlySubscription float64 `json:"monthly_subscription"`
	RecoveryRate        float64 `json:"recovery_rate"`
	GrowthRate          float64 `json:"growth_rate"`
}

// EstimateRequest is the wire form of Params with input coercion applied.
type EstimateRequest struct {
	AssetValue          Numeric `json:"asset_value"`
	UnauthorizedUses    Numeric `json:"unauthorized_uses"`
	AverageLoss         Numeric `json:"average_loss"`
	ProtectionCost      Numeric `json:"protection_cost"`
	MonthlySubscription Numeric `json:"monthly_subscription"`
	RecoveryRate        Numeric `json:"recovery_rate"`
	GrowthRate          Numeric `json:"growth_rate"`
}

func (r EstimateRequest) Params() Params {
	return Params{
		AssetValue:          float64(r.AssetValue),
		UnauthorizedUses:    float64(r.UnauthorizedUses),
		AverageLoss:         float64(r.AverageLoss),
		ProtectionCost:      float64(r.ProtectionCost),
		MonthlySubscription: float64(r.MonthlySubscription),
		RecoveryRate:        float64(r.RecoveryRate),
		GrowthRate:          float64(r.GrowthRate),
	}
}

// Result holds the five derived metrics.
type Result struct {
	PotentialLosses      float64 `json:"potential_losses"`
	AnnualProtectionCost float64 `json:"annual_protection_cost"`
	RecoveredRevenue     float64 `json:"recovered_revenue"`
	NetSavings           float64 `json:"net_savings"`
	ROI                  float64 `json:"roi"`
}

// ProjectionYear is one line of the five-year projection series.
type ProjectionYear struct {
	Year       int     `json:"year"`
	Losses     float64 `json:"losses"`
	Protection float64 `json:"protection"`
	Savings    float64 `json:"savings"`
}

// Estimate bundles everything a single recomputation produces.
type Estimate struct {
	Params     Params           `json:"params"`
	Result     Result           `json:"result"`
	Projection []ProjectionYear `json:"projection"`
	Band       string           `json:"band"`
}

// Preset is a named fixed bundle of calculator parameters.
type Preset struct {
	Name   string `json:"name"`
	Params Params `json:"params"`
}

// ProjectionYears is the fixed length of the projection series.
const ProjectionYears = 5
