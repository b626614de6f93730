package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
)

// RateMetrics holds the collectors for upstream traffic, cache efficiency and breaker state.
type RateMetrics struct {
	registry *prometheus.Registry

	UpstreamRequestsTotal *prometheus.CounterVec
	CacheLookupsTotal     *prometheus.CounterVec
	CacheDroppedWrites    prometheus.Counter
	CircuitBreakerState   prometheus.Gauge
}

func NewRateMetrics() *RateMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &RateMetrics{
		registry: registry,

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Requests issued to the exchange rate provider, by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Rate cache lookups, by provider operation and hit or miss",
			},
			[]string{"operation", "result"},
		),

		CacheDroppedWrites: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_dropped_writes_total",
				Help: "Rate cache writes refused or dropped by the cache",
			},
		),

		// 0 closed, 1 half-open, 2 open
		CircuitBreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Current state of the upstream circuit breaker",
			},
		),
	}
}

func (m *RateMetrics) RecordUpstreamRequest(endpoint, outcome string) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func (m *RateMetrics) RecordCacheLookup(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(operation, result).Inc()
}

func (m *RateMetrics) RecordCacheDrop(string) {
	m.CacheDroppedWrites.Inc()
}

func (m *RateMetrics) RecordBreakerState(_, to gobreaker.State) {
	m.CircuitBreakerState.Set(float64(to))
}

// Handler exposes the collectors in the Prometheus text format.
func (m *RateMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
