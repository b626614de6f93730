package handler

import (
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/correlation"
	"currencyconverter/internal/rate"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertRequest struct {
	From   string          `json:"from" example:"EUR"`
	To     string          `json:"to" example:"AUD"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"100"`
}

// ConvertCurrency godoc
// @Summary Convert an amount between currencies
// @Description Converts using the latest upstream rate with exact decimal arithmetic. Admin only.
// @Tags Currency
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} domain.Result[domain.ConversionResult]
// @Failure 400 {object} domain.Result[domain.ConversionResult]
// @Failure 401 {object} domain.Result[string]
// @Failure 403 {object} domain.Result[string]
// @Failure 500 {object} httpserver.UnexpectedErrorResponse
// @Router /currency/convert [post]
func (h *Handler) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ConvertRequest
	if err := dec.Decode(&req); err != nil {
		writeEnvelope(w, false, domain.Fail[domain.ConversionResult]("invalid request body"))
		return
	}

	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))

	if err := rate.ValidateConversion(from, to, req.Amount); err != nil {
		writeEnvelope(w, false, domain.Fail[domain.ConversionResult](err.Error()))
		return
	}

	res, err := h.service.ConvertCurrency(r.Context(), from, to, req.Amount)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"handler":        "ConvertCurrency",
			"from":           from,
			"to":             to,
			"correlation_id": correlation.FromContext(r.Context()),
		}).Error("conversion request failed unexpectedly")
		h.writeUnexpected(w, err)
		return
	}

	writeEnvelope(w, res.Success, res)
}
