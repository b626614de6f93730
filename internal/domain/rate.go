package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar day format used by the upstream and by cache keys.
const DateLayout = "2006-01-02"

func init() {
	// rates and amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type RateSnapshot struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type ConversionResult struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}

// HistoricalRateSeries maps an ISO date to the rates published for that day.
type HistoricalRateSeries struct {
	Rates map[string]map[string]decimal.Decimal `json:"rates"`
}

type HistoricalQuery struct {
	Base     string
	Start    time.Time
	End      time.Time
	Page     int
	PageSize int
}
