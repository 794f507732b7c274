package domain

import "github.com/shopspring/decimal"

// PricingPolicy is the shop-level price presentation configuration. It is
// read fresh on every conversion because the shop settings can change
// between requests.
type PricingPolicy struct {
	// Buffer is added to the source amount before conversion, to cover
	// exchange fees and rate drift.
	Buffer decimal.Decimal
	// RoundUp snaps converted prices to the nearest half-unit, rounding
	// past the half-point up to the next whole unit.
	RoundUp bool
	// PsychologicalPricing shaves one minor unit off whole-unit results,
	// turning 1.00 into 0.99.
	PsychologicalPricing bool
}
