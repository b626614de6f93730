package handler

import (
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/correlation"
	"currencyconverter/internal/rate"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// GetLatestRates godoc
// @Summary Latest exchange rates
// @Description Latest rates for a base currency, served from cache for up to 5 minutes
// @Tags Currency
// @Produce json
// @Security BearerAuth
// @Param baseCurrency query string true "Base currency code" example(EUR)
// @Success 200 {object} domain.Result[domain.RateSnapshot]
// @Failure 400 {object} domain.Result[domain.RateSnapshot]
// @Failure 401 {object} domain.Result[string]
// @Failure 500 {object} httpserver.UnexpectedErrorResponse
// @Router /currency/latest-rates [get]
func (h *Handler) GetLatestRates(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("baseCurrency")))

	if err := validateBase(base); err != nil {
		writeEnvelope(w, false, domain.Fail[domain.RateSnapshot](err.Error()))
		return
	}

	res, err := h.service.GetLatestRates(r.Context(), base)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"handler":        "GetLatestRates",
			"base":           base,
			"correlation_id": correlation.FromContext(r.Context()),
		}).Error("latest rates request failed unexpectedly")
		h.writeUnexpected(w, err)
		return
	}

	writeEnvelope(w, res.Success, res)
}

func validateBase(base string) error {
	if base == "" {
		return rate.ErrBaseRequired
	}
	return rate.ValidateCode(base)
}
