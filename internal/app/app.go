package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"shopfx/internal/adapters"
	"shopfx/internal/adapters/cache"
	"shopfx/internal/adapters/geoip"
	"shopfx/internal/adapters/httpclient"
	adaptermail "shopfx/internal/adapters/mail"
	"shopfx/internal/adapters/postgres"
	"shopfx/internal/api"
	"shopfx/internal/api/handler"
	"shopfx/internal/config"
	"shopfx/internal/currency"
	"shopfx/internal/domain"
	"shopfx/internal/platform/db"
	httpserver "shopfx/internal/platform/http"
	"shopfx/internal/pricing"
	"shopfx/internal/rate"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Components holds the wired application graph.
type Components struct {
	Cfg      *config.AppConfig
	Registry *currency.Service
	Resolver *currency.Resolver
	Engine   *pricing.Engine
	Rates    *rate.Service
	Provider adapters.RateProvider
	Notifier adapters.Notifier

	closers []func()
}

func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Bootstrap loads configuration, connects and migrates the database, and
// wires every component.
func Bootstrap(ctx context.Context) (*Components, error) {
	appCfg, err := config.Init()
	if err != nil {
		return nil, err
	}

	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	components := &Components{Cfg: appCfg}

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err = db.Migrate(startupCtx, appCfg.DbServer); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return nil, err
	}
	logrus.Info("✅ Migrations applied")

	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, err
	}
	components.closers = append(components.closers, pool.Close)
	logrus.Info("✅ Postgres connection successful")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Rate provider modules, registered at process start
	providerRegistry := rate.NewProviderRegistry()
	providerRegistry.Register(rate.ProviderDescriptor{
		Key:  "fixer",
		Name: "fixer.io style JSON API",
		New: func() (adapters.RateProvider, error) {
			baseURL := strings.TrimSuffix(appCfg.RateProviderAPI.BaseURL, "/")
			if baseURL == "" {
				return nil, fmt.Errorf("exchange rate api base url is required")
			}
			return httpclient.NewFixerClient(baseHTTPClient, baseURL, appCfg.RateProviderAPI.AccessKey), nil
		},
	})
	provider, err := providerRegistry.Build(appCfg.RateProviderAPI.Provider)
	if err != nil {
		components.Close()
		return nil, err
	}
	components.Provider = provider

	// Repositories and cache
	currencyRepo := postgres.NewCurrencyRepository(pool)
	rateRepo := postgres.NewRateRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	rateCache, err := cache.NewLatestRateCache(appCfg.Shop.CacheSize)
	if err != nil {
		components.Close()
		return nil, err
	}
	components.closers = append(components.closers, rateCache.Close)

	// Geo-IP is optional; without a database path the resolver skips the step.
	var countries adapters.CountryResolver
	if appCfg.GeoIP.DbPath != "" {
		geoResolver, geoErr := geoip.Open(appCfg.GeoIP.DbPath)
		if geoErr != nil {
			logrus.WithError(geoErr).Warn("Geo-IP database unavailable, resolver step disabled")
		} else {
			countries = geoResolver
			components.closers = append(components.closers, func() { _ = geoResolver.Close() })
		}
	}

	// Services
	components.Registry = currency.NewService(currencyRepo, appCfg.Shop.DefaultLocale)
	components.Rates = rate.NewService(rateRepo, rateCache)
	components.Resolver = currency.NewResolver(components.Registry, profileRepo, countries)
	components.Engine = pricing.NewEngine(components.Registry, components.Rates, config.NewPolicyStore(viper.GetViper()))
	components.Notifier = adaptermail.NewAdminNotifier(appCfg.Mail)

	return components, nil
}

// Run wires the application components, starts the HTTP server and the
// rate update scheduler, and blocks until ctx is canceled.
func Run(ctx context.Context) error {
	components, err := Bootstrap(ctx)
	if err != nil {
		return err
	}
	defer components.Close()

	interval := time.Duration(components.Cfg.Scheduler.UpdateIntervalHours) * time.Hour
	scheduler := rate.NewScheduler(components.Registry, components.Rates, components.Provider, components.Notifier, interval)
	// Ensure scheduler stops before the DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	priceHandler := handler.NewHandler(components.Registry, components.Resolver, components.Engine, components.Rates)
	router := api.NewRouter(priceHandler)

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, components.Cfg.HTTPServer, router); serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// UpdateRatesOnce performs a single exchange rate update run and sends the
// admin summary. Used by the scheduled-job CLI.
func UpdateRatesOnce(ctx context.Context) ([]domain.ExchangeRate, error) {
	components, err := Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	execID := uuid.NewString()
	updated, err := rate.UpdateExchangeRates(ctx, execID, components.Registry, components.Rates, components.Provider)
	if err != nil {
		return nil, err
	}

	if notifyErr := rate.NotifyUpdateSummary(ctx, components.Notifier, updated); notifyErr != nil {
		logrus.WithError(notifyErr).Error("Update summary notification failed")
	}
	return updated, nil
}
