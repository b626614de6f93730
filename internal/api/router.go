package api

import (
	_ "currencyconverter/docs"
	"currencyconverter/internal/auth"
	"currencyconverter/internal/platform/correlation"
	httpserver "currencyconverter/internal/platform/http"
	"currencyconverter/internal/rate/handler"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	swagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	ExposeErrors        bool
	MaxRequestsInWindow int
	Window              time.Duration
}

func NewRouter(cfg RouterConfig, tokens *auth.TokenService, authHandler *auth.Handler, rateHandler *handler.Handler, metrics http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(correlation.Middleware)
	router.Use(RequestLogger(tokens.ClientID))
	router.Use(httpserver.Recoverer(cfg.ExposeErrors))
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", metrics)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.MaxRequestsInWindow,
			cfg.Window,
			httprate.WithKeyFuncs(clientKey(tokens)),
		))

		r.Post("/user/authenticate", authHandler.Authenticate)

		r.Route("/currency", func(r chi.Router) {
			r.Use(auth.Authenticate(tokens))
			r.Get("/latest-rates", rateHandler.GetLatestRates)
			r.With(auth.RequireRole(auth.RoleAdmin)).Post("/convert", rateHandler.ConvertCurrency)
			r.With(auth.RequireRole(auth.RoleAdmin)).Get("/historical-rates", rateHandler.GetHistoricalRates)
		})
	})
	return router
}

// clientKey partitions the rate limit by authenticated user, falling back to the Host header.
func clientKey(tokens *auth.TokenService) httprate.KeyFunc {
	return func(r *http.Request) (string, error) {
		if claims, err := tokens.FromRequest(r); err == nil {
			return "user:" + claims.Name, nil
		}
		return "host:" + r.Host, nil
	}
}
