// Package openexchangerates is an HTTP client for an openexchangerates.org
// compatible "latest rates" endpoint.
package openexchangerates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/ports/providers"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const maxErrorBodyBytes = 512

var (
	errMissingRates  = errors.New("response has no rates object")
	errMissingSymbol = errors.New("symbol not present in rates")
	errNoSymbols     = errors.New("rates object is empty")
)

// Client implements providers.RatesProvider. Every outbound call first waits
// on a token bucket so a burst of cache misses cannot exhaust the plan quota.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit throttles outbound calls to perSecond with the given burst.
// A non-positive perSecond disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger used for outbound call diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client for baseURL authenticated with appID.
func NewClient(baseURL, appID string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		appID:      appID,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ providers.RatesProvider = (*Client)(nil)

func (c *Client) FetchAllSymbols(ctx context.Context) ([]string, error) {
	rates, err := c.fetchRates(ctx, nil)
	if err == nil && len(rates) == 0 {
		err = errNoSymbols
	}
	if err != nil {
		c.logger.Error("Failed to fetch currency symbols", slog.String("error", err.Error()))
		return nil, apperrors.Wrap(apperrors.KindUpstreamUnavailable, apperrors.MsgCurrenciesUnavailable, err)
	}

	symbols := make([]string, 0, len(rates))
	for code := range rates {
		symbols = append(symbols, strings.ToUpper(code))
	}
	c.logger.Debug("Fetched currency symbols", slog.Int("count", len(symbols)))
	return symbols, nil
}

func (c *Client) FetchRate(ctx context.Context, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	value, err := c.fetchRate(ctx, from, to)
	if err != nil {
		c.logger.Error("Failed to fetch exchange rate",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("error", err.Error()))
		return 0, apperrors.Wrap(apperrors.KindUpstreamUnavailable, apperrors.MsgRatesUnavailable, err)
	}
	c.logger.Debug("Fetched exchange rate", slog.String("from", from), slog.String("to", to), slog.Float64("rate", value))
	return value, nil
}

func (c *Client) fetchRate(ctx context.Context, from, to string) (float64, error) {
	rates, err := c.fetchRates(ctx, url.Values{"base": {from}, "symbols": {to}})
	if err != nil {
		return 0, err
	}

	raw, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingSymbol, to)
	}
	parsed, err := decimal.NewFromString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return 0, fmt.Errorf("rate for %s is not a number: %w", to, err)
	}
	value := parsed.InexactFloat64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("rate for %s is not finite", to)
	}
	return value, nil
}

// fetchRates performs the GET and returns the undecoded members of "rates".
func (c *Client) fetchRates(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rates endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("app_id", c.appID)
	for k, v := range params {
		query[k] = v
	}
	endpoint.RawQuery = query.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	rawRates, ok := envelope["rates"]
	if !ok {
		return nil, errMissingRates
	}
	var rates map[string]json.RawMessage
	if err := json.Unmarshal(rawRates, &rates); err != nil {
		return nil, fmt.Errorf("rates is not an object: %w", err)
	}
	if rates == nil {
		return nil, errMissingRates
	}
	return rates, nil
}
