// Package opendata fetches station measurements from the Toulouse Métropole
// OpenDataSoft records API.
package opendata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/tlsemeteo/meteo-console/internal/domain"
)

// Readings below this temperature are sensor glitches in the source data;
// the API query filters them server-side and the parser drops any stragglers.
const minPlausibleTemperature = -40.0

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")

	// ErrCircuitOpen is returned while the breaker is rejecting calls after
	// repeated upstream failures.
	ErrCircuitOpen = errors.New("opendata circuit open")
)

// Client calls the OpenDataSoft records endpoint for a station dataset.
// Transient failures are retried with exponential backoff behind a circuit
// breaker, so a dead API degrades to fast failures instead of hanging the
// console on every menu choice.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger

	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewClient creates an API client for the given records endpoint base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "opendata",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger:         logger,
		maxRetries:     3,
		initialBackoff: 200 * time.Millisecond,
		maxBackoff:     5 * time.Second,
	}
}

// FetchMeasurements returns up to limit measurements for the station's
// dataset, newest first as served by the API. Records that fail to parse or
// validate are skipped with a warning rather than failing the whole fetch.
func (c *Client) FetchMeasurements(ctx context.Context, stationID int, dataset string, limit int) ([]domain.Measurement, error) {
	if dataset == "" {
		return nil, fmt.Errorf("station %d has no dataset configured", stationID)
	}

	params := url.Values{
		"limit":    {fmt.Sprintf("%d", limit)},
		"order_by": {"heure_utc DESC"},
		"where":    {fmt.Sprintf("temperature_en_degre_c > %g", minPlausibleTemperature)},
	}
	fullURL := fmt.Sprintf("%s/%s/records?%s", c.baseURL, url.PathEscape(dataset), params.Encode())

	body, err := c.doRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var resp recordsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode records response: %w", err)
	}

	measurements := make([]domain.Measurement, 0, len(resp.Results))
	for _, rec := range resp.Results {
		m, err := c.parseRecord(stationID, rec)
		if err != nil {
			c.logger.Warn("skipping record", "station_id", stationID, "error", err)
			continue
		}
		measurements = append(measurements, m)
	}

	return measurements, nil
}

// doRequest executes the GET with retries and the circuit breaker, returning
// the response body.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	backoff := c.initialBackoff
	var lastErr error

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetchOnce(ctx, fullURL)
		})
		if err == nil {
			return result.([]byte), nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.maxRetries || !isRetryable(err) {
			return nil, lastErr
		}

		c.logger.Debug("retrying opendata request", "attempt", attempt+1, "backoff", backoff, "error", err)
		if !sleepWithContext(ctx, backoff) {
			return nil, ctx.Err()
		}
		backoff = min(backoff*2, c.maxBackoff)
	}
}

func (c *Client) fetchOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "meteo-console/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opendata request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("opendata API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) parseRecord(stationID int, rec record) (domain.Measurement, error) {
	if rec.Time == "" {
		return domain.Measurement{}, errors.New("record has no timestamp")
	}
	ts, err := time.Parse(time.RFC3339, rec.Time)
	if err != nil {
		return domain.Measurement{}, fmt.Errorf("parse timestamp %q: %w", rec.Time, err)
	}
	if rec.Temperature < minPlausibleTemperature {
		return domain.Measurement{}, fmt.Errorf("aberrant temperature %.1f", rec.Temperature)
	}

	m := domain.NewMeasurement(stationID, ts, rec.Temperature, rec.Humidity, rec.Pressure, rec.Rain)
	m.WindSpeed = rec.WindSpeed
	m.WindDirection = rec.WindDirection

	if err := m.Validate(); err != nil {
		return domain.Measurement{}, err
	}
	return m, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, errRateLimited) || errors.Is(err, errServerError)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// OpenDataSoft response types; field names follow the weather datasets'
// French column names.

type recordsResponse struct {
	TotalCount int      `json:"total_count"`
	Results    []record `json:"results"`
}

type record struct {
	Temperature   float64 `json:"temperature_en_degre_c"`
	Humidity      float64 `json:"humidite"`
	Pressure      float64 `json:"pression"`
	Rain          float64 `json:"pluie"`
	WindSpeed     float64 `json:"force_moyenne_du_vecteur_vent"`
	WindDirection int     `json:"direction_du_vecteur_vent_moyen"`
	Time          string  `json:"heure_utc"`
}
