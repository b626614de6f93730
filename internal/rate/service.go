package rate

import (
	"context"
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/correlation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service is the entry point for currency operations. It refuses conversions
// involving denylisted currencies and delegates everything else to the provider.
type Service struct {
	provider Provider
	denylist *CurrencyDenylist
}

func (s *Service) GetLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error) {
	return s.provider.GetLatestRates(ctx, base)
}

func (s *Service) ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Result[domain.ConversionResult], error) {
	if s.denylist.Contains(from) || s.denylist.Contains(to) {
		logrus.WithFields(logrus.Fields{
			"correlation_id": correlation.FromContext(ctx),
			"operation":      OpConvertCurrency,
			"from":           from,
			"to":             to,
		}).Info("Conversion refused for denylisted currency")
		return domain.Fail[domain.ConversionResult](domain.MessageUnsupportedCurrency), nil
	}
	return s.provider.ConvertCurrency(ctx, from, to, amount)
}

func (s *Service) GetHistoricalRates(ctx context.Context, q domain.HistoricalQuery) (domain.PagedResult[domain.HistoricalRateSeries], error) {
	return s.provider.GetHistoricalRates(ctx, q)
}

// RefreshLatestRates re-fetches rates for base regardless of what is cached.
func (s *Service) RefreshLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error) {
	return s.provider.RefreshLatestRates(ctx, base)
}

func NewService(provider Provider, denylist *CurrencyDenylist) *Service {
	if denylist == nil {
		denylist = NewCurrencyDenylist(nil)
	}
	return &Service{provider: provider, denylist: denylist}
}
