package handler

import (
	"context"
	"currencyconverter/internal/domain"
	httpserver "currencyconverter/internal/platform/http"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

type CurrencyService interface {
	GetLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error)
	ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Result[domain.ConversionResult], error)
	GetHistoricalRates(ctx context.Context, q domain.HistoricalQuery) (domain.PagedResult[domain.HistoricalRateSeries], error)
}

type Handler struct {
	service      CurrencyService
	exposeErrors bool
}

func NewRateHandler(service CurrencyService, exposeErrors bool) *Handler {
	return &Handler{service: service, exposeErrors: exposeErrors}
}

// writeEnvelope maps the envelope's success flag to 200 or 400.
func writeEnvelope(w http.ResponseWriter, success bool, body any) {
	status := http.StatusOK
	if !success {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeUnexpected(w http.ResponseWriter, err error) {
	httpserver.WriteUnexpectedError(w, err, h.exposeErrors)
}
