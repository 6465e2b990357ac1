package config

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CalculatorConfig drives the ROI calculator: the named scenario presets
// offered as one-click shortcuts and the interpretation bands applied to the
// computed ROI percentage. Marketing tunes these without a redeploy, so the
// file is watched and hot-reloaded.
type CalculatorConfig struct {
	Presets []ScenarioPreset `mapstructure:"presets"`
	Bands   []ROIBand        `mapstructure:"bands"`
}

// ScenarioPreset is a fixed bundle of the seven calculator parameters.
type ScenarioPreset struct {
	Name                string  `mapstructure:"name" json:"name"`
	AssetValue          float64 `mapstructure:"assetValue" json:"asset_value"`
	UnauthorizedUses    float64 `mapstructure:"unauthorizedUses" json:"unauthorized_uses"`
	AverageLoss         float64 `mapstructure:"averageLoss" json:"average_loss"`
	ProtectionCost      float64 `mapstructure:"protectionCost" json:"protection_cost"`
	MonthlySubscription float64 `mapstructure:"monthlySubscription" json:"monthly_subscription"`
	RecoveryRate        float64 `mapstructure:"recoveryRate" json:"recovery_rate"`
	GrowthRate          float64 `mapstructure:"growthRate" json:"growth_rate"`
}

// ROIBand labels an ROI percentage strictly above Min. Bands are evaluated
// highest Min first; an ROI matching no band gets the fallback label.
type ROIBand struct {
	Label string  `mapstructure:"label" json:"label"`
	Min   float64 `mapstructure:"min" json:"min"`
}

const FallbackBandLabel = "Review Needed"

func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Presets: []ScenarioPreset{
			{Name: "Startup", AssetValue: 50000, UnauthorizedUses: 10, AverageLoss: 2500, ProtectionCost: 500, MonthlySubscription: 99, RecoveryRate: 60, GrowthRate: 15},
			{Name: "Mid-Size", AssetValue: 500000, UnauthorizedUses: 30, AverageLoss: 10000, ProtectionCost: 2000, MonthlySubscription: 499, RecoveryRate: 70, GrowthRate: 10},
			{Name: "Enterprise", AssetValue: 5000000, UnauthorizedUses: 100, AverageLoss: 50000, ProtectionCost: 10000, MonthlySubscription: 1999, RecoveryRate: 80, GrowthRate: 8},
		},
		Bands: []ROIBand{
			{Label: "Exceptional", Min: 200},
			{Label: "Strong", Min: 100},
			{Label: "Good", Min: 50},
			{Label: "Moderate", Min: 0},
		},
	}
}

// CalculatorConfigHolder stores the current calculator config behind an
// atomic so request handlers never observe a partial reload.
type CalculatorConfigHolder struct {
	current atomic.Value // holds CalculatorConfig
}

func NewCalculatorConfigHolder() (*CalculatorConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("calculator")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/markproof")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MARKPROOF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &CalculatorConfigHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultCalculatorConfig())
		return holder, nil
	}

	var cfg CalculatorConfig
	if err := v.UnmarshalKey("calculator", &cfg); err != nil {
		return nil, err
	}
	if err := validateCalculatorConfig(cfg); err != nil {
		return nil, err
	}
	holder.current.Store(normalizeCalculatorConfig(cfg))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CalculatorConfig
		if err := v.UnmarshalKey("calculator", &updated); err != nil {
			log.Printf("[calculator-config] reload failed: %v", err)
			return
		}
		if err := validateCalculatorConfig(updated); err != nil {
			log.Printf("[calculator-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(normalizeCalculatorConfig(updated))
		log.Printf("[calculator-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CalculatorConfigHolder) Get() CalculatorConfig {
	return h.current.Load().(CalculatorConfig)
}

func validateCalculatorConfig(cfg CalculatorConfig) error {
	if len(cfg.Presets) == 0 {
		return errors.New("calculator.presets cannot be empty")
	}
	for _, p := range cfg.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return errors.New("calculator preset name cannot be empty")
		}
	}
	if len(cfg.Bands) == 0 {
		return errors.New("calculator.bands cannot be empty")
	}
	return nil
}

func normalizeCalculatorConfig(cfg CalculatorConfig) CalculatorConfig {
	sort.SliceStable(cfg.Bands, func(i, j int) bool {
		return cfg.Bands[i].Min > cfg.Bands[j].Min
	})
	return cfg
}
