package rate

import (
	"context"
	"currencyconverter/internal/adapters"
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/correlation"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultCacheTTL = 5 * time.Minute

// Provider operation names, used in logs and cache metrics.
const (
	OpLatestRates     = "latest_rates"
	OpConvertCurrency = "convert_currency"
	OpHistoricalRates = "historical_rates"

	OpRefreshLatestRates = "refresh_latest_rates"
)

// Provider answers rate queries with result envelopes. Anticipated failures
// (upstream down, unknown currency, unparseable history) come back as failed
// envelopes; the error return is reserved for anything else.
type Provider interface {
	GetLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error)
	ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Result[domain.ConversionResult], error)
	GetHistoricalRates(ctx context.Context, q domain.HistoricalQuery) (domain.PagedResult[domain.HistoricalRateSeries], error)
	// RefreshLatestRates skips the cache read and replaces the cached entry on success.
	RefreshLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error)
}

type CachingProvider struct {
	client        adapters.RateClient
	cache         adapters.RateCache
	ttl           time.Duration
	onCacheLookup func(operation string, hit bool)
}

type ProviderOption func(*CachingProvider)

func WithCacheTTL(ttl time.Duration) ProviderOption {
	return func(p *CachingProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func WithCacheObserver(observer func(operation string, hit bool)) ProviderOption {
	return func(p *CachingProvider) { p.onCacheLookup = observer }
}

func (p *CachingProvider) GetLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error) {
	log := logrus.WithFields(logrus.Fields{
		"correlation_id": correlation.FromContext(ctx),
		"operation":      OpLatestRates,
		"base":           base,
	})
	log.Info("Fetching latest exchange rates")

	key := latestRatesKey(base)
	if cached, ok := lookup[domain.RateSnapshot](p, OpLatestRates, key); ok {
		return domain.Ok(cached), nil
	}
	return p.fetchLatest(ctx, log, base)
}

func (p *CachingProvider) RefreshLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error) {
	log := logrus.WithFields(logrus.Fields{
		"correlation_id": correlation.FromContext(ctx),
		"operation":      OpRefreshLatestRates,
		"base":           base,
	})
	log.Debug("Refreshing latest exchange rates")
	return p.fetchLatest(ctx, log, base)
}

// fetchLatest asks the upstream for base and caches the snapshot on success.
func (p *CachingProvider) fetchLatest(ctx context.Context, log *logrus.Entry, base string) (domain.Result[domain.RateSnapshot], error) {
	snapshot, err := p.client.FetchLatest(ctx, strings.ToUpper(base))
	if err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			return domain.Result[domain.RateSnapshot]{}, err
		}
		log.WithError(err).Warn(domain.MessageFetchRatesFailed)
		return domain.Fail[domain.RateSnapshot](domain.MessageFetchRatesFailed), nil
	}

	p.cache.Set(latestRatesKey(base), snapshot, p.ttl)
	return domain.Ok(snapshot), nil
}

// ConvertCurrency always asks the upstream for fresh rates of from on a miss;
// it does not read entries cached by GetLatestRates.
func (p *CachingProvider) ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Result[domain.ConversionResult], error) {
	log := logrus.WithFields(logrus.Fields{
		"correlation_id": correlation.FromContext(ctx),
		"operation":      OpConvertCurrency,
		"from":           from,
		"to":             to,
		"amount":         amount.String(),
	})
	log.Info("Converting currency")

	key := convertCurrencyKey(from, to, amount)
	if cached, ok := lookup[domain.ConversionResult](p, OpConvertCurrency, key); ok {
		return domain.Ok(cached), nil
	}

	snapshot, err := p.client.FetchLatest(ctx, strings.ToUpper(from))
	if err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			return domain.Result[domain.ConversionResult]{}, err
		}
		log.WithError(err).Warn(domain.MessageFetchRatesFailed)
		return domain.Fail[domain.ConversionResult](domain.MessageFetchRatesFailed), nil
	}

	rate, ok := snapshot.Rates[strings.ToUpper(to)]
	if !ok {
		log.Warn(domain.MessageCurrencyNotSupported)
		return domain.Fail[domain.ConversionResult](domain.MessageCurrencyNotSupported), nil
	}

	result := domain.ConversionResult{
		From:            strings.ToUpper(from),
		To:              strings.ToUpper(to),
		Amount:          amount,
		ConvertedAmount: amount.Mul(rate),
	}
	p.cache.Set(key, result, p.ttl)
	return domain.Ok(result), nil
}

func (p *CachingProvider) GetHistoricalRates(ctx context.Context, q domain.HistoricalQuery) (domain.PagedResult[domain.HistoricalRateSeries], error) {
	log := logrus.WithFields(logrus.Fields{
		"correlation_id": correlation.FromContext(ctx),
		"operation":      OpHistoricalRates,
		"base":           q.Base,
		"start":          q.Start.Format(domain.DateLayout),
		"end":            q.End.Format(domain.DateLayout),
		"page":           q.Page,
		"page_size":      q.PageSize,
	})
	log.Info("Fetching historical exchange rates")

	key := historicalRatesKey(q.Base, q.Start, q.End)
	series, ok := lookup[domain.HistoricalRateSeries](p, OpHistoricalRates, key)
	if !ok {
		fetched, err := p.client.FetchRange(ctx, strings.ToUpper(q.Base), q.Start, q.End)
		if err != nil {
			msg := domain.MessageFetchHistoricalFailed
			if errors.Is(err, domain.ErrMalformedResponse) {
				msg = domain.MessageParseHistoricalFailed
			}
			log.WithError(err).Warn(msg)
			res := domain.FailPaged[domain.HistoricalRateSeries](msg)
			res.Page, res.PageSize = q.Page, q.PageSize
			return res, nil
		}
		series = fetched
		p.cache.Set(key, series, p.ttl)
	}

	paged, total := paginate(series, q.Page, q.PageSize)
	return domain.PagedResult[domain.HistoricalRateSeries]{
		Result:   domain.Ok(paged),
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
	}, nil
}

// lookup reads key from the cache; an entry of an unexpected type counts as a miss.
func lookup[T any](p *CachingProvider, operation, key string) (T, bool) {
	raw, _ := p.cache.Get(key)
	v, hit := raw.(T)
	if p.onCacheLookup != nil {
		p.onCacheLookup(operation, hit)
	}
	return v, hit
}

func NewCachingProvider(client adapters.RateClient, cache adapters.RateCache, opts ...ProviderOption) *CachingProvider {
	p := &CachingProvider{client: client, cache: cache, ttl: DefaultCacheTTL}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
