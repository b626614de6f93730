package rate

import (
	"currencyconverter/internal/domain"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// paginate returns the requested page of series, ordered by ascending date,
// and the number of dates in the whole series.
func paginate(series domain.HistoricalRateSeries, page, pageSize int) (domain.HistoricalRateSeries, int) {
	dates := slices.Sorted(maps.Keys(series.Rates))
	total := len(dates)

	skip, end := pageBounds(total, page, pageSize)

	paged := make(map[string]map[string]decimal.Decimal, end-skip)
	for _, date := range dates[skip:end] {
		paged[date] = series.Rates[date]
	}
	return domain.HistoricalRateSeries{Rates: paged}, total
}

// pageBounds returns the [skip, end) window of page within total items.
// Pages past the end yield an empty window; no intermediate value overflows.
func pageBounds(total, page, pageSize int) (int, int) {
	if pageSize <= 0 {
		return 0, 0
	}
	before := max(page-1, 0)
	if before > total/pageSize {
		return total, total
	}
	skip := min(before*pageSize, total)
	return skip, skip + min(pageSize, total-skip)
}
