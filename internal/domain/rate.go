package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one daily quote for a currency, expressed as units of
// the currency per 1 unit of the primary currency. Rows are append-only
// and unique per (currency, date).
type ExchangeRate struct {
	CurrencyCode string
	Date         time.Time
	Rate         decimal.Decimal
}

func (e ExchangeRate) String() string {
	return fmt.Sprintf("%s %s", e.CurrencyCode, e.Rate.StringFixed(4))
}

// RateSheet is one parsed rate provider response: the reporting date and
// the quoted rate per currency code.
type RateSheet struct {
	Date  time.Time
	Base  string
	Rates map[string]decimal.Decimal
}
