package config

import (
	"shopfx/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// PolicyStore reads the pricing policy from the live viper instance on
// every call. Buffer and rounding are shop-level settings that can change
// between requests, so they are never cached on a currency.
type PolicyStore struct {
	v *viper.Viper
}

func NewPolicyStore(v *viper.Viper) *PolicyStore {
	return &PolicyStore{v: v}
}

func (p *PolicyStore) Policy() domain.PricingPolicy {
	buffer := decimal.Zero
	if raw := p.v.GetString("currency.buffer"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil {
			buffer = parsed
		}
	}
	return domain.PricingPolicy{
		Buffer:               buffer,
		RoundUp:              p.v.GetBool("currency.round_up"),
		PsychologicalPricing: p.v.GetBool("currency.psychological_pricing"),
	}
}
