package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/forecast"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/preferences"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
)

var (
	// ErrStaleResponse is returned when a newer lookup was issued while this one was in flight.
	ErrStaleResponse = errors.New("superseded by a newer lookup")
	ErrEmptyCity     = errors.New("city name is empty")
)

// Dashboard is everything the renderer needs for one screen. Current and
// Days are nil when no city has been looked up yet.
type Dashboard struct {
	Query       string
	Unit        model.Unit
	Current     *model.CurrentConditions
	Days        []model.DaySummary
	IsFavorite  bool
	Preferences model.Preferences
}

type WeatherServiceInterface interface {
	Lookup(ctx context.Context, query model.LocationQuery, unit model.Unit) (*Dashboard, error)
	Restore(ctx context.Context) (*Dashboard, error)
	SetUnit(ctx context.Context, unit model.Unit) (*Dashboard, error)
	ToggleFavorite(ctx context.Context, city string) ([]string, error)
	Preferences(ctx context.Context) model.Preferences
}

type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Prefs       *preferences.Manager
	Aggregator  forecast.Aggregator
	Logger      *zap.SugaredLogger

	// seq numbers lookups; only the most recently issued one may complete.
	seq atomic.Uint64
}

func NewWeatherService(repo repository.WeatherRepository, prefs *preferences.Manager, agg forecast.Aggregator, logger *zap.SugaredLogger) *WeatherService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WeatherService{
		WeatherRepo: repo,
		Prefs:       prefs,
		Aggregator:  agg,
		Logger:      logger,
	}
}

// Lookup fetches and aggregates weather for query. An empty unit means the
// stored preference. On success the looked-up city becomes the last city.
func (s *WeatherService) Lookup(ctx context.Context, query model.LocationQuery, unit model.Unit) (*Dashboard, error) {
	token := s.seq.Add(1)
	if unit == "" {
		unit = s.Prefs.Load(ctx).Unit
	}

	bundle, err := s.WeatherRepo.FetchCurrentAndForecast(ctx, query, unit)
	if latest := s.seq.Load(); token != latest {
		s.Logger.Debugw("Discarding stale weather response", "query", query.String(), "token", token, "latest", latest)
		return nil, ErrStaleResponse
	}
	if err != nil {
		s.Logger.Errorw("Weather lookup failed", "query", query.String(), "unit", unit, "error", err)
		return nil, err
	}

	lastCity, isCity := query.City()
	if !isCity {
		lastCity = bundle.Current.City
	}
	s.Prefs.Save(ctx, preferences.Update{LastCity: lastCity})

	prefs := s.Prefs.Load(ctx)
	current := bundle.Current
	return &Dashboard{
		Query:       lastCity,
		Unit:        unit,
		Current:     &current,
		Days:        s.Aggregator.Aggregate(bundle.ForecastSamples),
		IsFavorite:  slices.Contains(prefs.Favorites, current.City),
		Preferences: prefs,
	}, nil
}

// Restore shows the last city in the stored unit, or just the preferences
// when there is no last city.
func (s *WeatherService) Restore(ctx context.Context) (*Dashboard, error) {
	prefs := s.Prefs.Load(ctx)
	if prefs.LastCity == "" {
		return &Dashboard{Unit: prefs.Unit, Preferences: prefs}, nil
	}
	return s.Lookup(ctx, model.ByCityName(prefs.LastCity), prefs.Unit)
}

// SetUnit stores unit and refreshes the last city in it. The lookup uses unit
// even when the write was dropped.
func (s *WeatherService) SetUnit(ctx context.Context, unit model.Unit) (*Dashboard, error) {
	if !unit.Valid() {
		return nil, repository.ErrInvalidQuery
	}
	s.Prefs.Save(ctx, preferences.Update{Unit: unit})

	prefs := s.Prefs.Load(ctx)
	if prefs.LastCity == "" {
		return &Dashboard{Unit: unit, Preferences: prefs}, nil
	}
	return s.Lookup(ctx, model.ByCityName(prefs.LastCity), unit)
}

func (s *WeatherService) ToggleFavorite(ctx context.Context, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrEmptyCity
	}
	return s.Prefs.ToggleFavorite(ctx, city), nil
}

func (s *WeatherService) Preferences(ctx context.Context) model.Preferences {
	return s.Prefs.Load(ctx)
}
