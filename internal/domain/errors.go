package domain

import "errors"

var (
	// ErrNotConfigured means no primary currency exists yet.
	ErrNotConfigured = errors.New("no primary currency configured")
	// ErrUnknownCurrency means the requested code is not in the registry.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrNoRateAvailable means no exchange rate has been recorded for the currency.
	ErrNoRateAvailable = errors.New("no exchange rate available")
)
