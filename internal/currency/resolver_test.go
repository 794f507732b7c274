package currency

import (
	"context"
	"errors"
	"net"
	"testing"

	"shopfx/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolver_SessionCurrency_WinsOverProfileAndGeo(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	profiles := new(MockProfileRepository)
	countries := new(MockCountryResolver)
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()

	resolver := NewResolver(registry, profiles, countries)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{
		SessionCurrency: "gbp",
		ShopperID:       "shopper-1",
		IP:              "81.2.69.160",
	})

	require.NoError(t, err)
	require.Equal(t, "GBP", code)
	profiles.AssertNotCalled(t, "PreferredCurrency", mock.Anything, mock.Anything)
	countries.AssertNotCalled(t, "CountryCode", mock.Anything)
}

func TestResolver_SessionCurrencyUnknown_FallsThrough(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	profiles := new(MockProfileRepository)
	registry.On("Lookup", mock.Anything, "BTC").Return(domain.Currency{}, domain.ErrUnknownCurrency).Once()
	profiles.On("PreferredCurrency", mock.Anything, "shopper-1").Return("EUR", nil).Once()
	registry.On("Lookup", mock.Anything, "EUR").Return(eur, nil).Once()

	resolver := NewResolver(registry, profiles, nil)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{
		SessionCurrency: "BTC",
		ShopperID:       "shopper-1",
	})

	require.NoError(t, err)
	require.Equal(t, "EUR", code)
}

func TestResolver_ProfilePreference_Used(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	profiles := new(MockProfileRepository)
	profiles.On("PreferredCurrency", mock.Anything, "shopper-1").Return("GBP", nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()

	resolver := NewResolver(registry, profiles, nil)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{ShopperID: "shopper-1"})

	require.NoError(t, err)
	require.Equal(t, "GBP", code)
}

func TestResolver_ProfileError_FallsThroughToPrimary(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	profiles := new(MockProfileRepository)
	profiles.On("PreferredCurrency", mock.Anything, "shopper-1").Return("", errors.New("db down")).Once()
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	resolver := NewResolver(registry, profiles, nil)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{ShopperID: "shopper-1"})

	require.NoError(t, err)
	require.Equal(t, "EUR", code)
}

func TestResolver_GeoIPMatch_Used(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	countries := new(MockCountryResolver)
	countries.On("CountryCode", net.ParseIP("81.2.69.160")).Return("GB", nil).Once()
	registry.On("ByCountry", mock.Anything, "GB").Return(gbp, nil).Once()

	resolver := NewResolver(registry, nil, countries)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{IP: "81.2.69.160"})

	require.NoError(t, err)
	require.Equal(t, "GBP", code)
}

func TestResolver_GeoIPNoMatchingCurrency_FallsThroughToPrimary(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	countries := new(MockCountryResolver)
	countries.On("CountryCode", net.ParseIP("81.2.69.160")).Return("GB", nil).Once()
	registry.On("ByCountry", mock.Anything, "GB").Return(domain.Currency{}, domain.ErrUnknownCurrency).Once()
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	resolver := NewResolver(registry, nil, countries)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{IP: "81.2.69.160"})

	require.NoError(t, err)
	require.Equal(t, "EUR", code)
}

func TestResolver_GeoIPFailure_FallsThroughToPrimary(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	countries := new(MockCountryResolver)
	countries.On("CountryCode", mock.Anything).Return("", errors.New("address not found")).Once()
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	resolver := NewResolver(registry, nil, countries)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{IP: "81.2.69.160"})

	require.NoError(t, err)
	require.Equal(t, "EUR", code)
}

func TestResolver_UnparsableIP_SkipsGeoStep(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	countries := new(MockCountryResolver)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	resolver := NewResolver(registry, nil, countries)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{IP: "not-an-ip"})

	require.NoError(t, err)
	require.Equal(t, "EUR", code)
	countries.AssertNotCalled(t, "CountryCode", mock.Anything)
}

func TestResolver_NothingMatches_PrimaryWins(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	resolver := NewResolver(registry, nil, nil)
	code, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{})

	require.NoError(t, err)
	require.Equal(t, "EUR", code)
}

func TestResolver_NoPrimary_Propagates(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	registry.On("GetPrimary", mock.Anything).Return(domain.Currency{}, domain.ErrNotConfigured).Once()

	resolver := NewResolver(registry, nil, nil)
	_, err := resolver.CurrencyForRequest(context.Background(), RequestInfo{})

	require.ErrorIs(t, err, domain.ErrNotConfigured)
}
