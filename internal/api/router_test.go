package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"currencyconverter/internal/adapters/cache"
	"currencyconverter/internal/adapters/httpclient"
	"currencyconverter/internal/auth"
	"currencyconverter/internal/platform/correlation"
	"currencyconverter/internal/platform/metrics"
	"currencyconverter/internal/rate"
	"currencyconverter/internal/rate/handler"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router        http.Handler
	tokens        *auth.TokenService
	upstreamCalls *atomic.Int32
}

func newTestEnv(t *testing.T, maxRequests int) *testEnv {
	t.Helper()

	calls := new(atomic.Int32)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"AUD":1.7458,"USD":1.0921}}`))
	}))
	t.Cleanup(upstream.Close)

	rateCache, err := cache.NewRateCache(100)
	require.NoError(t, err)
	t.Cleanup(rateCache.Close)

	m := metrics.NewRateMetrics()
	client := httpclient.NewFrankfurterClient(upstream.Client(), upstream.URL, httpclient.WithObserver(m.RecordUpstreamRequest))
	provider := rate.NewCachingProvider(client, rateCache, rate.WithCacheObserver(m.RecordCacheLookup))
	service := rate.NewService(provider, rate.NewCurrencyDenylist([]string{"TRY", "PLN", "THB", "MXN"}))

	tokens := auth.NewTokenService(auth.TokenConfig{Secret: "router-test-secret", Issuer: "test", Audience: "test", Expiration: time.Hour})
	router := NewRouter(
		RouterConfig{MaxRequestsInWindow: maxRequests, Window: time.Minute},
		tokens,
		auth.NewHandler(auth.NewDirectory(), tokens),
		handler.NewRateHandler(service, false),
		m.Handler(),
	)
	return &testEnv{router: router, tokens: tokens, upstreamCalls: calls}
}

func (e *testEnv) do(t *testing.T, method, target, body string, user *auth.User) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if user != nil {
		token, err := e.tokens.Generate(*user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

var (
	admin = &auth.User{Name: "admin", Role: auth.RoleAdmin}
	user  = &auth.User{Name: "user", Role: auth.RoleUser}
)

func TestRouter_Healthz(t *testing.T) {
	env := newTestEnv(t, 100)
	rr := env.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_CorrelationIDEchoed(t *testing.T) {
	env := newTestEnv(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(correlation.HeaderName, "req-1")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, "req-1", rr.Header().Get(correlation.HeaderName))
}

func TestRouter_AuthenticateThenFetchLatestRates(t *testing.T) {
	env := newTestEnv(t, 100)

	rr := env.do(t, http.MethodPost, "/api/v1/user/authenticate", `{"userName":"user","password":"User"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var tokenEnv struct {
		Data string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokenEnv))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/latest-rates?baseCurrency=EUR", nil)
	req.Header.Set("Authorization", "Bearer "+tokenEnv.Data)
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"success":true,"message":"Successful.","data":{"base":"EUR","rates":{"AUD":1.7458,"USD":1.0921}}}`, rr.Body.String())
}

func TestRouter_LatestRatesCachedAcrossRequests(t *testing.T) {
	env := newTestEnv(t, 100)

	for i := 0; i < 3; i++ {
		rr := env.do(t, http.MethodGet, "/api/v1/currency/latest-rates?baseCurrency=eur", "", user)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	require.Equal(t, int32(1), env.upstreamCalls.Load())

	rr := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Contains(t, rr.Body.String(), `cache_lookups_total{operation="latest_rates",result="hit"} 2`)
	require.Contains(t, rr.Body.String(), `upstream_requests_total{endpoint="latest",outcome="success"} 1`)
}

func TestRouter_RequiresToken(t *testing.T) {
	env := newTestEnv(t, 100)

	rr := env.do(t, http.MethodGet, "/api/v1/currency/latest-rates?baseCurrency=EUR", "", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Zero(t, env.upstreamCalls.Load())
}

func TestRouter_AdminOnlyEndpoints(t *testing.T) {
	env := newTestEnv(t, 100)

	rr := env.do(t, http.MethodPost, "/api/v1/currency/convert", `{"from":"EUR","to":"AUD","amount":100}`, user)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/v1/currency/historical-rates?baseCurrency=EUR&startDate=2024-01-01&endDate=2024-01-31", "", user)
	require.Equal(t, http.StatusForbidden, rr.Code)

	require.Zero(t, env.upstreamCalls.Load())
}

func TestRouter_ConvertCurrency(t *testing.T) {
	env := newTestEnv(t, 100)

	rr := env.do(t, http.MethodPost, "/api/v1/currency/convert", `{"from":"EUR","to":"AUD","amount":100}`, admin)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{
		"success": true,
		"message": "Successful.",
		"data": {"from":"EUR","to":"AUD","amount":100,"convertedAmount":174.58}
	}`, rr.Body.String())
}

func TestRouter_ConvertDenylistedCurrency(t *testing.T) {
	env := newTestEnv(t, 100)

	rr := env.do(t, http.MethodPost, "/api/v1/currency/convert", `{"from":"EUR","to":"try","amount":100}`, admin)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.JSONEq(t, `{"success":false,"message":"Unsupported currency.","data":null}`, rr.Body.String())
	require.Zero(t, env.upstreamCalls.Load())
}

func TestRouter_RateLimited(t *testing.T) {
	env := newTestEnv(t, 2)

	for i := 0; i < 2; i++ {
		rr := env.do(t, http.MethodGet, "/api/v1/currency/latest-rates?baseCurrency=EUR", "", user)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := env.do(t, http.MethodGet, "/api/v1/currency/latest-rates?baseCurrency=EUR", "", user)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	// other users have their own window
	rr = env.do(t, http.MethodGet, "/api/v1/currency/latest-rates?baseCurrency=EUR", "", admin)
	require.Equal(t, http.StatusOK, rr.Code)
}
