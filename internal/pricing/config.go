package pricing

import "boxoffice/internal/shared/config"

// FromConfig builds the engine configuration from the application config,
// falling back to house defaults for anything unset.
func FromConfig(p config.PricingConfig) Config {
	cfg := DefaultConfig()

	if p.ChildRate > 0 {
		cfg.Rates.Child = p.ChildRate
	}
	if p.SeniorRate > 0 {
		cfg.Rates.Senior = p.SeniorRate
	}
	if p.GroupRate > 0 {
		cfg.Rates.Group = p.GroupRate
	}
	if p.LoyaltyRate > 0 {
		cfg.Rates.Loyalty = p.LoyaltyRate
	}
	if p.GroupThreshold > 0 {
		cfg.Rates.GroupThreshold = p.GroupThreshold
	}
	if p.FallbackBasePrice > 0 {
		cfg.FallbackBasePrice = p.FallbackBasePrice
	}
	if p.Mode == string(ModeZone) {
		cfg.Mode = ModeZone
	}

	return cfg
}
