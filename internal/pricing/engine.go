package pricing

import (
	"context"
	"errors"
	"strings"

	"shopfx/internal/adapters"
	"shopfx/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	one      = decimal.NewFromInt(1)
	half     = decimal.New(5, -1) // 0.5
	oneMinor = decimal.New(1, -2) // 0.01
)

// Engine converts display amounts from the primary currency into an
// accepted currency, applying the shop's buffer, rounding and
// psychological-pricing policy. The policy is read fresh on every call.
type Engine struct {
	registry adapters.CurrencyRegistry
	rates    adapters.RateSource
	policy   adapters.PolicySource
}

// ConvertToCurrency converts amount into the currency named by code.
//
// A zero amount short-circuits to zero untouched. Amounts already in the
// primary currency, or targeting a code that is unknown or not accepted,
// skip conversion entirely; psychological pricing still applies to them.
// A missing exchange rate degrades to rate 1.00 but the amount still
// flows through buffer and rounding.
func (e *Engine) ConvertToCurrency(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	primary, err := e.registry.GetPrimary(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	policy := e.policy.Policy()
	code = normalize(code)

	value := amount
	if code != primary.Code && e.isConvertible(ctx, code) {
		rate := one
		latest, rateErr := e.rates.LatestRate(ctx, code)
		switch {
		case rateErr == nil:
			rate = latest
		case errors.Is(rateErr, domain.ErrNoRateAvailable):
			logrus.WithField("currency", code).Debug("no exchange rate recorded, using 1.00")
		default:
			return decimal.Decimal{}, rateErr
		}

		value = amount.Add(policy.Buffer).Mul(rate).RoundBank(2)
		if policy.RoundUp {
			value = snapToHalfUnit(value)
		}
	}

	if policy.PsychologicalPricing && value.Mod(one).IsZero() {
		value = value.Sub(oneMinor)
	}
	return value, nil
}

func (e *Engine) isConvertible(ctx context.Context, code string) bool {
	cur, err := e.registry.Lookup(ctx, code)
	return err == nil && cur.Offered()
}

// snapToHalfUnit rounds past the half-point up to the next whole unit and
// everything else down to the half-unit. The down-bias matches the shop's
// long-standing pricing behaviour.
func snapToHalfUnit(value decimal.Decimal) decimal.Decimal {
	if value.Mod(one).GreaterThan(half) {
		return value.Ceil()
	}
	return value.Floor().Add(half)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NewEngine(registry adapters.CurrencyRegistry, rates adapters.RateSource, policy adapters.PolicySource) *Engine {
	return &Engine{registry: registry, rates: rates, policy: policy}
}
