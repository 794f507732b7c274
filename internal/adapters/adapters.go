package adapters

import (
	"context"
	"net"
	"time"

	"shopfx/internal/domain"

	"github.com/shopspring/decimal"
)

// CurrencyRegistry is the read/write surface of the currency table.
// SetPrimary must be atomic: readers never observe zero or two primaries.
type CurrencyRegistry interface {
	GetPrimary(ctx context.Context) (domain.Currency, error)
	ListAccepted(ctx context.Context) ([]domain.Currency, error)
	Lookup(ctx context.Context, code string) (domain.Currency, error)
	SetPrimary(ctx context.Context, code string) error
	ByCountry(ctx context.Context, countryCode string) (domain.Currency, error)
}

// RateRepository persists daily exchange rates. InsertRate reports whether
// a new row was created; inserting an existing (currency, date) is a no-op.
type RateRepository interface {
	LatestRate(ctx context.Context, code string) (decimal.Decimal, error)
	InsertRate(ctx context.Context, code string, day time.Time, rate decimal.Decimal) (bool, error)
}

// RateSource serves the most recent recorded rate for a currency.
type RateSource interface {
	LatestRate(ctx context.Context, code string) (decimal.Decimal, error)
}

// RateRecorder appends a daily rate, reporting whether it was newly created.
type RateRecorder interface {
	RecordRate(ctx context.Context, code string, day time.Time, rate decimal.Decimal) (bool, error)
}

// RateProvider fetches current quotes for the given symbols relative to base.
type RateProvider interface {
	FetchRates(ctx context.Context, base string, symbols []string) (domain.RateSheet, error)
}

// ProfileRepository serves a shopper's stored currency preference.
// An empty code with nil error means no preference is stored.
type ProfileRepository interface {
	PreferredCurrency(ctx context.Context, shopperID string) (string, error)
}

// CountryResolver maps a client IP to an ISO 3166-1 alpha-2 country code.
type CountryResolver interface {
	CountryCode(ip net.IP) (string, error)
}

// Notifier delivers operational summaries to the shop administrators.
type Notifier interface {
	NotifyAdmins(ctx context.Context, subject, body string) error
}

// LatestRateCache caches the latest rate per currency code.
type LatestRateCache interface {
	Get(code string) (decimal.Decimal, bool)
	Set(code string, rate decimal.Decimal)
	Del(code string)
}

// PolicySource yields the current pricing policy; implementations read the
// live shop configuration rather than a startup snapshot.
type PolicySource interface {
	Policy() domain.PricingPolicy
}
