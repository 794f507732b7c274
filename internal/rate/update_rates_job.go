package rate

import (
	"context"
	"fmt"
	"strings"

	"shopfx/internal/adapters"
	"shopfx/internal/domain"

	"github.com/sirupsen/logrus"
)

// UpdateExchangeRates pulls current quotes for every accepted non-primary
// currency, relative to the primary currency, and records them.
//
// One provider request is made per run. A failed or malformed provider
// response yields an empty result, not an error: the run simply records
// nothing and the next scheduled run retries. Quoted codes that match no
// accepted currency are ignored. The returned slice holds only the rows
// newly created during this run; rows that already existed for the
// reporting date are excluded.
func UpdateExchangeRates(ctx context.Context, execID string, registry adapters.CurrencyRegistry, store adapters.RateRecorder, provider adapters.RateProvider) ([]domain.ExchangeRate, error) {
	primary, err := registry.GetPrimary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve primary currency: %w", err)
	}

	accepted, err := registry.ListAccepted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted currencies: %w", err)
	}

	symbols := make([]string, 0, len(accepted))
	for _, cur := range accepted {
		if cur.Code != primary.Code {
			symbols = append(symbols, cur.Code)
		}
	}
	if len(symbols) == 0 {
		logrus.Infof("No accepted currencies besides the primary; execID: %s", execID)
		return nil, nil
	}

	sheet, err := provider.FetchRates(ctx, primary.Code, symbols)
	if err != nil {
		logrus.WithError(err).Warnf("Rate provider request failed, nothing recorded; execID: %s", execID)
		return nil, nil
	}

	updated := make([]domain.ExchangeRate, 0, len(symbols))
	for _, code := range symbols {
		quote, ok := sheet.Rates[code]
		if !ok {
			continue
		}
		created, recordErr := store.RecordRate(ctx, code, sheet.Date, quote)
		if recordErr != nil {
			logrus.WithError(recordErr).Warnf("Skipping rate for '%s', it'll be recorded next time; execID: %s", code, execID)
			continue
		}
		if created {
			updated = append(updated, domain.ExchangeRate{CurrencyCode: code, Date: sheet.Date, Rate: quote})
		}
	}

	logrus.Infof("%d exchange rates were recorded; execID: %s", len(updated), execID)
	return updated, nil
}

// NotifyUpdateSummary mails the administrators the outcome of one update
// run: how many currencies were updated and the recorded rates.
func NotifyUpdateSummary(ctx context.Context, notifier adapters.Notifier, updated []domain.ExchangeRate) error {
	subject := fmt.Sprintf("Updated %d currencies", len(updated))

	var body strings.Builder
	for _, rate := range updated {
		fmt.Fprintf(&body, "* %s\n", rate)
	}

	return notifier.NotifyAdmins(ctx, subject, body.String())
}
