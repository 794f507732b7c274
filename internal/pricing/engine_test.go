package pricing

import (
	"context"
	"errors"
	"testing"

	"shopfx/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockCurrencyRegistry struct{ mock.Mock }

func (m *MockCurrencyRegistry) GetPrimary(ctx context.Context) (domain.Currency, error) {
	args := m.Called(ctx)
	cur, _ := args.Get(0).(domain.Currency)
	return cur, args.Error(1)
}

func (m *MockCurrencyRegistry) ListAccepted(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	currencies, _ := args.Get(0).([]domain.Currency)
	return currencies, args.Error(1)
}

func (m *MockCurrencyRegistry) Lookup(ctx context.Context, code string) (domain.Currency, error) {
	args := m.Called(ctx, code)
	cur, _ := args.Get(0).(domain.Currency)
	return cur, args.Error(1)
}

func (m *MockCurrencyRegistry) SetPrimary(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCurrencyRegistry) ByCountry(ctx context.Context, countryCode string) (domain.Currency, error) {
	args := m.Called(ctx, countryCode)
	cur, _ := args.Get(0).(domain.Currency)
	return cur, args.Error(1)
}

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) LatestRate(ctx context.Context, code string) (decimal.Decimal, error) {
	args := m.Called(ctx, code)
	rate, _ := args.Get(0).(decimal.Decimal)
	return rate, args.Error(1)
}

type stubPolicy struct{ policy domain.PricingPolicy }

func (s stubPolicy) Policy() domain.PricingPolicy { return s.policy }

// --- helpers ---

var (
	eur = domain.Currency{Code: "EUR", Symbol: "€", Primary: true, Accepted: true}
	gbp = domain.Currency{Code: "GBP", Symbol: "£", Accepted: true}
)

func d(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return parsed
}

func requireDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	require.True(t, d(t, expected).Equal(got), "expected %s, got %s", expected, got)
}

func newEngine(registry *MockCurrencyRegistry, rates *MockRateSource, policy domain.PricingPolicy) *Engine {
	return NewEngine(registry, rates, stubPolicy{policy: policy})
}

// --- ConvertToCurrency ---

func TestConvert_ZeroAmount_ShortCircuits(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	engine := newEngine(registry, rates, domain.PricingPolicy{Buffer: d(t, "0.10"), PsychologicalPricing: true})

	got, err := engine.ConvertToCurrency(context.Background(), decimal.Zero, "GBP")

	require.NoError(t, err)
	requireDecimal(t, "0.00", got)
	registry.AssertNotCalled(t, "GetPrimary", mock.Anything)
}

func TestConvert_PrimaryCurrency_Identity(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "EUR")

	require.NoError(t, err)
	requireDecimal(t, "1.00", got)
	registry.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	rates.AssertNotCalled(t, "LatestRate", mock.Anything, mock.Anything)
}

func TestConvert_RateApplied(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "0.75"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "GBP")

	require.NoError(t, err)
	requireDecimal(t, "0.75", got)
}

func TestConvert_CodeIsNormalized(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "0.75"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), " gbp ")

	require.NoError(t, err)
	requireDecimal(t, "0.75", got)
	registry.AssertExpectations(t)
}

func TestConvert_MissingRate_FallsBackToOne(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(decimal.Decimal{}, domain.ErrNoRateAvailable).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "GBP")

	require.NoError(t, err)
	requireDecimal(t, "1.00", got)
}

func TestConvert_BufferAdded(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(decimal.Decimal{}, domain.ErrNoRateAvailable).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{Buffer: d(t, "0.10")})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "GBP")

	require.NoError(t, err)
	requireDecimal(t, "1.10", got)
}

func TestConvert_QuantizesBankersRounding(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "1.11"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "0.33"), "GBP")

	// 0.33 * 1.11 = 0.3663 -> 0.37
	require.NoError(t, err)
	requireDecimal(t, "0.37", got)
}

func TestConvert_RoundUp_PastHalf_GoesToWholeUnit(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "1.11"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{RoundUp: true})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "0.50"), "GBP")

	// 0.50 * 1.11 = 0.555 -> 0.56 -> past the half-point -> 1.00
	require.NoError(t, err)
	requireDecimal(t, "1.00", got)
}

func TestConvert_RoundUp_BelowHalf_SnapsToHalfUnit(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "1.11"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{RoundUp: true})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "0.33"), "GBP")

	// 0.33 * 1.11 = 0.3663 -> 0.37 -> snapped down to 0.50
	require.NoError(t, err)
	requireDecimal(t, "0.50", got)
}

func TestConvert_PsychologicalPricing_WholeUnit(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "2.00"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{PsychologicalPricing: true})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "GBP")

	require.NoError(t, err)
	requireDecimal(t, "1.99", got)
}

func TestConvert_PsychologicalPricing_NotWholeUnit(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	rates.On("LatestRate", mock.Anything, "GBP").Return(d(t, "2.00"), nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{PsychologicalPricing: true})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "0.75"), "GBP")

	require.NoError(t, err)
	requireDecimal(t, "1.50", got)
}

func TestConvert_PsychologicalPricing_AppliesToPrimary(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{PsychologicalPricing: true})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "EUR")

	require.NoError(t, err)
	requireDecimal(t, "0.99", got)
}

func TestConvert_PsychologicalPricing_Off(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "EUR")

	require.NoError(t, err)
	requireDecimal(t, "1.00", got)
}

func TestConvert_UnknownCurrency_DegradesToNoConversion(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "BTC").Return(domain.Currency{}, domain.ErrUnknownCurrency).Once()

	// buffer must not leak into the unconverted amount
	engine := newEngine(registry, rates, domain.PricingPolicy{Buffer: d(t, "0.10")})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "BTC")

	require.NoError(t, err)
	requireDecimal(t, "1.00", got)
	rates.AssertNotCalled(t, "LatestRate", mock.Anything, mock.Anything)
}

func TestConvert_NotAcceptedCurrency_DegradesToNoConversion(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "JPY").Return(domain.Currency{Code: "JPY"}, nil).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	got, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "JPY")

	require.NoError(t, err)
	requireDecimal(t, "1.00", got)
	rates.AssertNotCalled(t, "LatestRate", mock.Anything, mock.Anything)
}

func TestConvert_NoPrimaryConfigured_Propagates(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(domain.Currency{}, domain.ErrNotConfigured).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	_, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "GBP")

	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestConvert_RateLookupFailure_Propagates(t *testing.T) {
	registry := new(MockCurrencyRegistry)
	rates := new(MockRateSource)
	registry.On("GetPrimary", mock.Anything).Return(eur, nil).Once()
	registry.On("Lookup", mock.Anything, "GBP").Return(gbp, nil).Once()
	wantErr := errors.New("db down")
	rates.On("LatestRate", mock.Anything, "GBP").Return(decimal.Decimal{}, wantErr).Once()

	engine := newEngine(registry, rates, domain.PricingPolicy{})
	_, err := engine.ConvertToCurrency(context.Background(), d(t, "1.00"), "GBP")

	require.ErrorIs(t, err, wantErr)
}
