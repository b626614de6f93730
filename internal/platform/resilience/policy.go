package resilience

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// Operation is a single outbound attempt. Any returned error counts as a failure.
type Operation func(ctx context.Context) error

type Policy interface {
	Execute(ctx context.Context, op Operation) error
}

// Pipeline applies policies outermost first: Pipeline{retry, breaker} retries
// calls that pass through the breaker.
type Pipeline []Policy

func (p Pipeline) Execute(ctx context.Context, op Operation) error {
	wrapped := op
	for i := len(p) - 1; i >= 0; i-- {
		policy, next := p[i], wrapped
		wrapped = func(ctx context.Context) error {
			return policy.Execute(ctx, next)
		}
	}
	return wrapped(ctx)
}

type RetryConfig struct {
	Attempts    int
	BackoffBase float64
	BackoffUnit time.Duration
}

// Retry re-runs a failed operation up to Attempts more times,
// waiting BackoffUnit * BackoffBase^attempt between tries, without jitter.
type Retry struct {
	cfg RetryConfig
}

func NewRetry(cfg RetryConfig) *Retry {
	if cfg.Attempts < 0 {
		cfg.Attempts = 0
	}
	if cfg.BackoffBase < 1 {
		cfg.BackoffBase = 2
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = time.Second
	}
	return &Retry{cfg: cfg}
}

func (r *Retry) Execute(ctx context.Context, op Operation) error {
	return backoff.Retry(func() error { return op(ctx) }, r.backOff(ctx))
}

// Delays returns the wait before each retry attempt.
func (r *Retry) Delays() []time.Duration {
	delays := make([]time.Duration, 0, r.cfg.Attempts)
	for attempt := 1; attempt <= r.cfg.Attempts; attempt++ {
		delays = append(delays, r.delay(attempt))
	}
	return delays
}

func (r *Retry) delay(attempt int) time.Duration {
	return time.Duration(float64(r.cfg.BackoffUnit) * math.Pow(r.cfg.BackoffBase, float64(attempt)))
}

func (r *Retry) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.delay(1)
	b.Multiplier = r.cfg.BackoffBase
	b.RandomizationFactor = 0
	b.MaxInterval = r.delay(max(r.cfg.Attempts, 1))
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.cfg.Attempts)), ctx)
}

type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	BreakDuration    time.Duration
}

// Breaker opens after FailureThreshold consecutive failures and rejects calls
// for BreakDuration. Afterwards a single trial call decides whether it closes again.
// One instance must be shared by every caller of the same upstream.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewBreaker(cfg BreakerConfig, onStateChange func(from, to gobreaker.State)) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.BreakDuration <= 0 {
		cfg.BreakDuration = 30 * time.Second
	}
	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	}
	if onStateChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			onStateChange(from, to)
		}
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Execute(ctx context.Context, op Operation) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, op(ctx)
	})
	return err
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// IsRejected reports whether err was produced by an open or saturated breaker
// rather than by the operation itself.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
