package adapters

import (
	"context"
	"currencyconverter/internal/domain"
	"time"
)

// RateClient is the upstream capability every provider variant is built on.
type RateClient interface {
	FetchLatest(ctx context.Context, base string) (domain.RateSnapshot, error)
	FetchRange(ctx context.Context, base string, start, end time.Time) (domain.HistoricalRateSeries, error)
}

type RateCache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}
