package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopfx/internal/domain"

	"github.com/shopspring/decimal"
)

// FixerClient talks to a fixer.io style rate provider:
// GET {base_url}/{day}?base={code}&symbols={csv}[&access_key={key}].
type FixerClient struct {
	http      *http.Client
	baseURL   string
	accessKey string
}

type apiResponse struct {
	Date  string                 `json:"date"`
	Base  string                 `json:"base"`
	Rates map[string]json.Number `json:"rates"`
}

// FetchRates requests the latest quotes for symbols relative to base.
func (c *FixerClient) FetchRates(ctx context.Context, base string, symbols []string) (domain.RateSheet, error) {
	return c.FetchRatesOn(ctx, "latest", base, symbols)
}

// FetchRatesOn requests quotes for a specific day path segment, either a
// YYYY-MM-DD date or the provider's "latest" alias.
func (c *FixerClient) FetchRatesOn(ctx context.Context, day string, base string, symbols []string) (domain.RateSheet, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.RateSheet{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + day
	query := u.Query()
	query.Set("base", base)
	query.Set("symbols", strings.Join(symbols, ","))
	if c.accessKey != "" {
		query.Set("access_key", c.accessKey)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateSheet{}, fmt.Errorf("failed to create request for base %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.RateSheet{}, fmt.Errorf("failed to execute request for base %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.RateSheet{}, fmt.Errorf("unexpected status code %d for base %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateSheet{}, fmt.Errorf("failed to decode response for base %q: %w", base, err)
	}
	if body.Rates == nil {
		return domain.RateSheet{}, fmt.Errorf("response for base %q is missing rates", base)
	}

	date, err := time.Parse(time.DateOnly, body.Date)
	if err != nil {
		return domain.RateSheet{}, fmt.Errorf("failed to parse reporting date %q: %w", body.Date, err)
	}

	rates := make(map[string]decimal.Decimal, len(body.Rates))
	for code, raw := range body.Rates {
		rate, rateErr := decimal.NewFromString(raw.String())
		if rateErr != nil {
			return domain.RateSheet{}, fmt.Errorf("failed to parse rate for %q: %w", code, rateErr)
		}
		rates[code] = rate
	}

	return domain.RateSheet{Date: date, Base: body.Base, Rates: rates}, nil
}

func NewFixerClient(httpClient *http.Client, baseURL string, accessKey string) *FixerClient {
	return &FixerClient{http: httpClient, baseURL: baseURL, accessKey: accessKey}
}
