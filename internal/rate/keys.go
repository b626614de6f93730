package rate

import (
	"currencyconverter/internal/domain"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cache keys are built from lower-cased codes so lookups ignore the caller's casing.

func latestRatesKey(base string) string {
	return "LatestRates-" + strings.ToLower(base)
}

func convertCurrencyKey(from, to string, amount decimal.Decimal) string {
	return "ConvertCurrency-" + strings.ToLower(from) + "-" + strings.ToLower(to) + "-" + amount.String()
}

// Page and page size are not part of the key: every page of a range shares one entry.
func historicalRatesKey(base string, start, end time.Time) string {
	return "HistoricalExchangeRates-" + strings.ToLower(base) + "-" + start.Format(domain.DateLayout) + "-" + end.Format(domain.DateLayout)
}
