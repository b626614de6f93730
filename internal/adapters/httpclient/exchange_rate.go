package httpclient

import (
	"context"
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/resilience"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EndpointLatest = "latest"
	EndpointRange  = "range"
)

// Request outcomes reported to the observer.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// FrankfurterClient talks to a Frankfurter-compatible rates API.
// Every request goes through the configured resilience policy.
type FrankfurterClient struct {
	http     *http.Client
	baseURL  string
	policy   resilience.Policy
	observer func(endpoint, outcome string)
}

type Option func(*FrankfurterClient)

func WithPolicy(policy resilience.Policy) Option {
	return func(c *FrankfurterClient) { c.policy = policy }
}

// WithObserver registers a callback invoked once per logical request.
func WithObserver(observer func(endpoint, outcome string)) Option {
	return func(c *FrankfurterClient) { c.observer = observer }
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type rangeResponse struct {
	Rates map[string]map[string]decimal.Decimal `json:"rates"`
}

func (c *FrankfurterClient) FetchLatest(ctx context.Context, base string) (domain.RateSnapshot, error) {
	body, err := c.get(ctx, EndpointLatest, "latest", base)
	if err != nil {
		return domain.RateSnapshot{}, err
	}

	var resp latestResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("failed to decode latest rates for currency %q: %w: %v", base, domain.ErrMalformedResponse, err)
	}
	if resp.Rates == nil {
		return domain.RateSnapshot{}, fmt.Errorf("latest rates for currency %q have no rates: %w", base, domain.ErrMalformedResponse)
	}
	if resp.Base == "" {
		resp.Base = base
	}

	return domain.RateSnapshot{Base: resp.Base, Rates: resp.Rates}, nil
}

func (c *FrankfurterClient) FetchRange(ctx context.Context, base string, start, end time.Time) (domain.HistoricalRateSeries, error) {
	segment := start.Format(domain.DateLayout) + ".." + end.Format(domain.DateLayout)
	body, err := c.get(ctx, EndpointRange, segment, base)
	if err != nil {
		return domain.HistoricalRateSeries{}, err
	}

	var resp rangeResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return domain.HistoricalRateSeries{}, fmt.Errorf("failed to decode historical rates for currency %q: %w: %v", base, domain.ErrMalformedResponse, err)
	}
	if resp.Rates == nil {
		return domain.HistoricalRateSeries{}, fmt.Errorf("historical rates for currency %q have no rates: %w", base, domain.ErrMalformedResponse)
	}

	return domain.HistoricalRateSeries{Rates: resp.Rates}, nil
}

// get performs the request through the policy and returns the raw 2xx body.
// Transport errors and non-2xx statuses are failures and are retried by the policy.
func (c *FrankfurterClient) get(ctx context.Context, endpoint, segment, base string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + segment
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	var body []byte
	err = c.policy.Execute(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if reqErr != nil {
			return fmt.Errorf("failed to create request for currency %q: %w", base, reqErr)
		}

		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return fmt.Errorf("failed to execute request for currency %q: %w", base, doErr)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// drain so the connection goes back to the pool
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status)
		}

		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("failed to read response for currency %q: %w", base, readErr)
		}
		body = b
		return nil
	})

	switch {
	case err == nil:
		c.observe(endpoint, OutcomeSuccess)
		return body, nil
	case resilience.IsRejected(err):
		c.observe(endpoint, OutcomeRejected)
	default:
		c.observe(endpoint, OutcomeFailure)
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}

func (c *FrankfurterClient) observe(endpoint, outcome string) {
	if c.observer != nil {
		c.observer(endpoint, outcome)
	}
}

func NewFrankfurterClient(httpClient *http.Client, baseURL string, opts ...Option) *FrankfurterClient {
	c := &FrankfurterClient{http: httpClient, baseURL: baseURL, policy: resilience.Pipeline{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
