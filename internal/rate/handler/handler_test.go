package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"currencyconverter/internal/domain"
	httpserver "currencyconverter/internal/platform/http"
	"currencyconverter/internal/rate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) GetLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error) {
	args := m.Called(ctx, base)
	res, _ := args.Get(0).(domain.Result[domain.RateSnapshot])
	return res, args.Error(1)
}

func (m *MockService) ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Result[domain.ConversionResult], error) {
	args := m.Called(ctx, from, to, amount)
	res, _ := args.Get(0).(domain.Result[domain.ConversionResult])
	return res, args.Error(1)
}

func (m *MockService) GetHistoricalRates(ctx context.Context, q domain.HistoricalQuery) (domain.PagedResult[domain.HistoricalRateSeries], error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(domain.PagedResult[domain.HistoricalRateSeries])
	return res, args.Error(1)
}

type envelopeJSON struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelopeJSON {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var env envelopeJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

// --- GetLatestRates ---

func TestHandler_GetLatestRates_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	snapshot := domain.RateSnapshot{Base: "EUR", Rates: map[string]decimal.Decimal{"AUD": decimal.RequireFromString("1.7458")}}
	mockService.On("GetLatestRates", mock.Anything, "EUR").Return(domain.Ok(snapshot), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/currency/latest-rates?baseCurrency=%20eur", nil)
	rr := httptest.NewRecorder()
	h.GetLatestRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
	require.Equal(t, domain.MessageSuccess, env.Message)
	require.JSONEq(t, `{"base":"EUR","rates":{"AUD":1.7458}}`, string(env.Data))
	mockService.AssertExpectations(t)
}

func TestHandler_GetLatestRates_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{name: "missing", query: "", wantMsg: rate.ErrBaseRequired.Error()},
		{name: "too long", query: "?baseCurrency=EURO", wantMsg: rate.ErrInvalidCode.Error()},
		{name: "digits", query: "?baseCurrency=E1R", wantMsg: rate.ErrInvalidCode.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewRateHandler(mockService, false)

			rr := httptest.NewRecorder()
			h.GetLatestRates(rr, httptest.NewRequest(http.MethodGet, "/currency/latest-rates"+tc.query, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeEnvelope(t, rr)
			require.False(t, env.Success)
			require.Equal(t, tc.wantMsg, env.Message)
			require.Equal(t, "null", string(env.Data))
			mockService.AssertNotCalled(t, "GetLatestRates", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_GetLatestRates_FailureEnvelopeIsBadRequest(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	mockService.On("GetLatestRates", mock.Anything, "USD").
		Return(domain.Fail[domain.RateSnapshot](domain.MessageFetchRatesFailed), nil).Once()

	rr := httptest.NewRecorder()
	h.GetLatestRates(rr, httptest.NewRequest(http.MethodGet, "/currency/latest-rates?baseCurrency=USD", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, domain.MessageFetchRatesFailed, env.Message)
}

func TestHandler_GetLatestRates_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	mockService.On("GetLatestRates", mock.Anything, "USD").
		Return(domain.Result[domain.RateSnapshot]{}, errors.New("unexpected token")).Once()

	rr := httptest.NewRecorder()
	h.GetLatestRates(rr, httptest.NewRequest(http.MethodGet, "/currency/latest-rates?baseCurrency=USD", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var res httpserver.UnexpectedErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, httpserver.UnexpectedErrorMessage, res.DisplayMessage)
	require.Empty(t, res.ErrorMessage)
}

// --- ConvertCurrency ---

func TestHandler_ConvertCurrency_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	amount := decimal.NewFromInt(100)
	result := domain.ConversionResult{From: "EUR", To: "AUD", Amount: amount, ConvertedAmount: decimal.RequireFromString("174.58")}
	mockService.On("ConvertCurrency", mock.Anything, "EUR", "AUD", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	})).Return(domain.Ok(result), nil).Once()

	body := `{"from":"eur","to":"aud","amount":100}`
	rr := httptest.NewRecorder()
	h.ConvertCurrency(rr, httptest.NewRequest(http.MethodPost, "/currency/convert", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
	require.JSONEq(t, `{"from":"EUR","to":"AUD","amount":100,"convertedAmount":174.58}`, string(env.Data))
	mockService.AssertExpectations(t)
}

func TestHandler_ConvertCurrency_BadRequests(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "invalid json", body: `{`, wantMsg: "invalid request body"},
		{name: "unknown field", body: `{"from":"EUR","to":"AUD","amount":1,"rate":2}`, wantMsg: "invalid request body"},
		{name: "missing from", body: `{"to":"AUD","amount":1}`, wantMsg: rate.ErrFromRequired.Error()},
		{name: "missing to", body: `{"from":"EUR","amount":1}`, wantMsg: rate.ErrToRequired.Error()},
		{name: "zero amount", body: `{"from":"EUR","to":"AUD","amount":0}`, wantMsg: rate.ErrAmountNotPositive.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewRateHandler(mockService, false)

			rr := httptest.NewRecorder()
			h.ConvertCurrency(rr, httptest.NewRequest(http.MethodPost, "/currency/convert", strings.NewReader(tc.body)))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeEnvelope(t, rr)
			require.False(t, env.Success)
			require.Equal(t, tc.wantMsg, env.Message)
			mockService.AssertNotCalled(t, "ConvertCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ConvertCurrency_UnsupportedCurrency(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	mockService.On("ConvertCurrency", mock.Anything, "TRY", "EUR", mock.Anything).
		Return(domain.Fail[domain.ConversionResult](domain.MessageUnsupportedCurrency), nil).Once()

	rr := httptest.NewRecorder()
	h.ConvertCurrency(rr, httptest.NewRequest(http.MethodPost, "/currency/convert", strings.NewReader(`{"from":"TRY","to":"EUR","amount":"10.5"}`)))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	require.Equal(t, domain.MessageUnsupportedCurrency, env.Message)
}

func TestHandler_ConvertCurrency_InternalErrorExposed(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, true)

	mockService.On("ConvertCurrency", mock.Anything, "EUR", "AUD", mock.Anything).
		Return(domain.Result[domain.ConversionResult]{}, errors.New("malformed upstream response")).Once()

	rr := httptest.NewRecorder()
	h.ConvertCurrency(rr, httptest.NewRequest(http.MethodPost, "/currency/convert", strings.NewReader(`{"from":"EUR","to":"AUD","amount":1}`)))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var res httpserver.UnexpectedErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "malformed upstream response", res.ErrorMessage)
}

// --- GetHistoricalRates ---

func TestHandler_GetHistoricalRates_DefaultsPaging(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	want := domain.HistoricalQuery{
		Base:     "USD",
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Page:     1,
		PageSize: 10,
	}
	series := domain.HistoricalRateSeries{Rates: map[string]map[string]decimal.Decimal{
		"2024-01-02": {"EUR": decimal.RequireFromString("0.91")},
	}}
	mockService.On("GetHistoricalRates", mock.Anything, want).Return(domain.PagedResult[domain.HistoricalRateSeries]{
		Result: domain.Ok(series), Page: 1, PageSize: 10, Total: 21,
	}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistoricalRates(rr, httptest.NewRequest(http.MethodGet,
		"/currency/historical-rates?baseCurrency=usd&startDate=2024-01-01&endDate=2024-01-31", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{
		"success": true,
		"message": "Successful.",
		"data": {"rates": {"2024-01-02": {"EUR": 0.91}}},
		"page": 1,
		"pageSize": 10,
		"total": 21
	}`, rr.Body.String())
	mockService.AssertExpectations(t)
}

func TestHandler_GetHistoricalRates_ExplicitPaging(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	mockService.On("GetHistoricalRates", mock.Anything, mock.MatchedBy(func(q domain.HistoricalQuery) bool {
		return q.Page == 3 && q.PageSize == 5
	})).Return(domain.PagedResult[domain.HistoricalRateSeries]{
		Result: domain.Ok(domain.HistoricalRateSeries{}), Page: 3, PageSize: 5, Total: 11,
	}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistoricalRates(rr, httptest.NewRequest(http.MethodGet,
		"/currency/historical-rates?baseCurrency=USD&startDate=2024-01-01&endDate=2024-01-31&page=3&pageSize=5", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_GetHistoricalRates_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{name: "missing base", query: "startDate=2024-01-01&endDate=2024-01-31", wantMsg: rate.ErrBaseRequired.Error()},
		{name: "bad start", query: "baseCurrency=USD&startDate=01/01/2024&endDate=2024-01-31", wantMsg: errStartDateInvalid.Error()},
		{name: "bad end", query: "baseCurrency=USD&startDate=2024-01-01", wantMsg: errEndDateInvalid.Error()},
		{name: "reversed range", query: "baseCurrency=USD&startDate=2024-02-01&endDate=2024-01-31", wantMsg: errDateRange.Error()},
		{name: "zero page", query: "baseCurrency=USD&startDate=2024-01-01&endDate=2024-01-31&page=0", wantMsg: errPageInvalid.Error()},
		{name: "bad page size", query: "baseCurrency=USD&startDate=2024-01-01&endDate=2024-01-31&pageSize=ten", wantMsg: errPageSizeInvalid.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewRateHandler(mockService, false)

			rr := httptest.NewRecorder()
			h.GetHistoricalRates(rr, httptest.NewRequest(http.MethodGet, "/currency/historical-rates?"+tc.query, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			env := decodeEnvelope(t, rr)
			require.False(t, env.Success)
			require.Equal(t, tc.wantMsg, env.Message)
			mockService.AssertNotCalled(t, "GetHistoricalRates", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_GetHistoricalRates_ParseFailureEnvelope(t *testing.T) {
	mockService := new(MockService)
	h := NewRateHandler(mockService, false)

	mockService.On("GetHistoricalRates", mock.Anything, mock.Anything).
		Return(domain.FailPaged[domain.HistoricalRateSeries](domain.MessageParseHistoricalFailed), nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistoricalRates(rr, httptest.NewRequest(http.MethodGet,
		"/currency/historical-rates?baseCurrency=USD&startDate=2024-01-01&endDate=2024-01-31", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	require.Equal(t, domain.MessageParseHistoricalFailed, env.Message)
}
