package currency

import (
	"context"
	"strings"

	"shopfx/internal/adapters"
	"shopfx/internal/domain"
)

// Service is the currency registry. It normalizes codes before hitting
// the repository and is the only write path for the primary switch.
type Service struct {
	repo   adapters.CurrencyRegistry
	locale string
}

func (s *Service) GetPrimary(ctx context.Context) (domain.Currency, error) {
	return s.repo.GetPrimary(ctx)
}

func (s *Service) ListAccepted(ctx context.Context) ([]domain.Currency, error) {
	return s.repo.ListAccepted(ctx)
}

func (s *Service) Lookup(ctx context.Context, code string) (domain.Currency, error) {
	code = NormalizeCode(code)
	if code == "" {
		return domain.Currency{}, domain.ErrUnknownCurrency
	}
	return s.repo.Lookup(ctx, code)
}

// SetPrimary promotes code to the single primary currency, forcing it
// accepted. The repository performs the switch atomically.
func (s *Service) SetPrimary(ctx context.Context, code string) error {
	code = NormalizeCode(code)
	if code == "" {
		return domain.ErrUnknownCurrency
	}
	return s.repo.SetPrimary(ctx, code)
}

func (s *Service) ByCountry(ctx context.Context, countryCode string) (domain.Currency, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		return domain.Currency{}, domain.ErrUnknownCurrency
	}
	return s.repo.ByCountry(ctx, countryCode)
}

// NormalizeCode upper-cases and trims an ISO 4217 code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NewService(repo adapters.CurrencyRegistry, locale string) *Service {
	if locale == "" {
		locale = "en"
	}
	return &Service{repo: repo, locale: locale}
}
