package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// APIKeyPlaceholder is the sample value shipped in .env.example; it counts as unset.
const APIKeyPlaceholder = "YOUR_API_KEY_HERE"

const (
	endpointCurrent  = "weather"
	endpointForecast = "forecast"
)

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	FetchCurrentAndForecast(ctx context.Context, query model.LocationQuery, unit model.Unit) (*model.WeatherBundle, error)
}

// Options configures a weather repository.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

// weatherRepository implements WeatherRepository against OpenWeatherMap
type weatherRepository struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.SugaredLogger
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(opts Options, httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: opts.Timeout}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &weatherRepository{
		httpClient: client,
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		logger:     logger,
	}
}

// FetchCurrentAndForecast requests current conditions and the 3-hourly
// forecast in parallel. Either both succeed or the call fails.
func (r *weatherRepository) FetchCurrentAndForecast(ctx context.Context, query model.LocationQuery, unit model.Unit) (*model.WeatherBundle, error) {
	if r.apiKey == "" || r.apiKey == APIKeyPlaceholder {
		return nil, ErrConfiguration
	}
	if !query.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuery, query.String())
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: unit %q", ErrInvalidQuery, unit)
	}

	params := url.Values{}
	for k, v := range query.Params() {
		params.Set(k, v)
	}
	params.Set("appid", r.apiKey)
	params.Set("units", string(unit))

	var (
		current  model.OpenWeatherMapResponse
		forecast model.OpenWeatherMapForecastResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.getJSON(gctx, endpointCurrent, params, &current) })
	g.Go(func() error { return r.getJSON(gctx, endpointForecast, params, &forecast) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.WeatherBundle{
		Current:         model.NewCurrentConditions(current),
		ForecastSamples: model.NewForecastSamples(forecast),
	}, nil
}

// getJSON performs one GET against endpoint and decodes the body into out.
func (r *weatherRepository) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("%s/%s?%s", r.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.Warnw("Weather API returned an error", "endpoint", endpoint, "status", resp.StatusCode, "body", string(body))
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
