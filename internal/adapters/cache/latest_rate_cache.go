package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"
)

// RistrettoLatestRateCache keeps the most recent exchange rate per
// currency code. Entries are dropped when a newer daily rate is recorded.
type RistrettoLatestRateCache struct {
	cache *ristretto.Cache
}

func NewLatestRateCache(maxItems int64) (*RistrettoLatestRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create latest rate cache failed: %w", err)
	}
	return &RistrettoLatestRateCache{cache: c}, nil
}

func (c *RistrettoLatestRateCache) Get(code string) (decimal.Decimal, bool) {
	if v, ok := c.cache.Get(code); ok {
		rate, ok := v.(decimal.Decimal)
		return rate, ok
	}
	return decimal.Decimal{}, false
}

func (c *RistrettoLatestRateCache) Set(code string, rate decimal.Decimal) {
	c.cache.Set(code, rate, 1)
}

func (c *RistrettoLatestRateCache) Del(code string) {
	c.cache.Del(code)
}

func (c *RistrettoLatestRateCache) Close() { c.cache.Close() }
