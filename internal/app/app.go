package app

import (
	"context"
	"currencyconverter/internal/adapters/cache"
	"currencyconverter/internal/adapters/httpclient"
	"currencyconverter/internal/api"
	"currencyconverter/internal/auth"
	"currencyconverter/internal/config"
	httpserver "currencyconverter/internal/platform/http"
	"currencyconverter/internal/platform/metrics"
	"currencyconverter/internal/platform/resilience"
	"currencyconverter/internal/rate"
	"currencyconverter/internal/rate/handler"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and warm-up scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	if appCfg.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateMetrics := metrics.NewRateMetrics()

	rateCache, err := cache.NewRateCache(appCfg.Cache.MaxItems, cache.WithDropObserver(rateMetrics.RecordCacheDrop))
	if err != nil {
		logrus.WithError(err).Error("Failed to create rate cache")
		return err
	}
	defer rateCache.Close()

	// Retry wraps the breaker, so every retry attempt is counted by it.
	policy := resilience.Pipeline{
		resilience.NewRetry(resilience.RetryConfig{
			Attempts:    appCfg.Retry.Attempts,
			BackoffBase: appCfg.Retry.BackoffBase,
			BackoffUnit: appCfg.Retry.BackoffUnit(),
		}),
		resilience.NewBreaker(resilience.BreakerConfig{
			Name:             rate.ProviderFrankfurter,
			FailureThreshold: appCfg.CircuitBreaker.FailureThreshold,
			BreakDuration:    appCfg.CircuitBreaker.BreakDuration(),
		}, rateMetrics.RecordBreakerState),
	}

	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	frankfurter := httpclient.NewFrankfurterClient(
		baseHTTPClient,
		appCfg.ExchangeRateProvider.BaseURL,
		httpclient.WithPolicy(policy),
		httpclient.WithObserver(rateMetrics.RecordUpstreamRequest),
	)

	factory := rate.NewFactory(map[string]rate.Provider{
		rate.ProviderFrankfurter: rate.NewCachingProvider(
			frankfurter,
			rateCache,
			rate.WithCacheTTL(appCfg.Cache.TTL()),
			rate.WithCacheObserver(rateMetrics.RecordCacheLookup),
		),
	})
	provider, err := factory.Get(appCfg.ExchangeRateProvider.ClientName)
	if err != nil {
		logrus.WithError(err).Error("Failed to resolve exchange rate provider")
		return err
	}
	logrus.Infof("✅ Exchange rate provider %q selected", appCfg.ExchangeRateProvider.ClientName)

	rateService := rate.NewService(provider, rate.NewCurrencyDenylist(appCfg.ExchangeRateProvider.UnsupportedCurrencies))

	if len(appCfg.Warmup.Bases) > 0 {
		scheduler := rate.NewScheduler(rateService, appCfg.Warmup.Bases, appCfg.Warmup.Interval())
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
	}

	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret:     appCfg.JWT.Secret,
		Issuer:     appCfg.JWT.Issuer,
		Audience:   appCfg.JWT.Audience,
		Expiration: appCfg.JWT.Expiration(),
	})

	// Handlers and router
	router := api.NewRouter(
		api.RouterConfig{
			ExposeErrors:        appCfg.HTTPServer.ExposeErrors,
			MaxRequestsInWindow: appCfg.RateLimit.MaxRequestsInWindow,
			Window:              appCfg.RateLimit.Window(),
		},
		tokens,
		auth.NewHandler(auth.NewDirectory(), tokens),
		handler.NewRateHandler(rateService, appCfg.HTTPServer.ExposeErrors),
		rateMetrics.Handler(),
	)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
