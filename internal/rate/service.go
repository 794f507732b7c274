package rate

import (
	"context"
	"time"

	"shopfx/internal/adapters"

	"github.com/shopspring/decimal"
)

// Service is the exchange rate store: latest-rate reads through a small
// cache, append-only daily inserts. The cache may be nil.
type Service struct {
	repo  adapters.RateRepository
	cache adapters.LatestRateCache
}

func (s *Service) LatestRate(ctx context.Context, code string) (decimal.Decimal, error) {
	if s.cache != nil {
		if rate, ok := s.cache.Get(code); ok {
			return rate, nil
		}
	}

	rate, err := s.repo.LatestRate(ctx, code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if s.cache != nil {
		s.cache.Set(code, rate)
	}
	return rate, nil
}

// RecordRate appends a daily rate and reports whether a new row was
// created. Re-recording an existing (currency, date) is a no-op. A newly
// created row evicts the cached latest rate for that currency.
func (s *Service) RecordRate(ctx context.Context, code string, day time.Time, rate decimal.Decimal) (bool, error) {
	created, err := s.repo.InsertRate(ctx, code, day, rate)
	if err != nil {
		return false, err
	}
	if created && s.cache != nil {
		s.cache.Del(code)
	}
	return created, nil
}

func NewService(repo adapters.RateRepository, cache adapters.LatestRateCache) *Service {
	return &Service{repo: repo, cache: cache}
}
