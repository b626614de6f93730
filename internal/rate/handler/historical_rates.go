package handler

import (
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/correlation"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

var (
	errStartDateInvalid = errors.New("startDate must be a date in yyyy-MM-dd format")
	errEndDateInvalid   = errors.New("endDate must be a date in yyyy-MM-dd format")
	errDateRange        = errors.New("endDate must not be before startDate")
	errPageInvalid      = errors.New("page must be a positive integer")
	errPageSizeInvalid  = errors.New("pageSize must be a positive integer")
)

// GetHistoricalRates godoc
// @Summary Historical exchange rates
// @Description Daily rates for a base currency over a date range, paginated by date. Admin only.
// @Tags Currency
// @Produce json
// @Security BearerAuth
// @Param baseCurrency query string true "Base currency code" example(USD)
// @Param startDate query string true "First day, yyyy-MM-dd" example(2024-01-01)
// @Param endDate query string true "Last day, yyyy-MM-dd" example(2024-01-31)
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Dates per page" default(10)
// @Success 200 {object} domain.PagedResult[domain.HistoricalRateSeries]
// @Failure 400 {object} domain.PagedResult[domain.HistoricalRateSeries]
// @Failure 401 {object} domain.Result[string]
// @Failure 403 {object} domain.Result[string]
// @Failure 500 {object} httpserver.UnexpectedErrorResponse
// @Router /currency/historical-rates [get]
func (h *Handler) GetHistoricalRates(w http.ResponseWriter, r *http.Request) {
	q, err := parseHistoricalQuery(r)
	if err != nil {
		writeEnvelope(w, false, domain.FailPaged[domain.HistoricalRateSeries](err.Error()))
		return
	}

	res, err := h.service.GetHistoricalRates(r.Context(), q)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"handler":        "GetHistoricalRates",
			"base":           q.Base,
			"correlation_id": correlation.FromContext(r.Context()),
		}).Error("historical rates request failed unexpectedly")
		h.writeUnexpected(w, err)
		return
	}

	writeEnvelope(w, res.Success, res)
}

func parseHistoricalQuery(r *http.Request) (domain.HistoricalQuery, error) {
	values := r.URL.Query()
	q := domain.HistoricalQuery{
		Base:     strings.ToUpper(strings.TrimSpace(values.Get("baseCurrency"))),
		Page:     defaultPage,
		PageSize: defaultPageSize,
	}

	if err := validateBase(q.Base); err != nil {
		return q, err
	}

	var err error
	if q.Start, err = time.Parse(domain.DateLayout, strings.TrimSpace(values.Get("startDate"))); err != nil {
		return q, errStartDateInvalid
	}
	if q.End, err = time.Parse(domain.DateLayout, strings.TrimSpace(values.Get("endDate"))); err != nil {
		return q, errEndDateInvalid
	}
	if q.End.Before(q.Start) {
		return q, errDateRange
	}

	if raw := values.Get("page"); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil || q.Page < 1 {
			return q, errPageInvalid
		}
	}
	if raw := values.Get("pageSize"); raw != "" {
		if q.PageSize, err = strconv.Atoi(raw); err != nil || q.PageSize < 1 {
			return q, errPageSizeInvalid
		}
	}
	return q, nil
}
