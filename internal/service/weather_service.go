package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"ulascansenturk/openweather-client/internal/db/weatherquery"
	"ulascansenturk/openweather-client/internal/providers"
)

var (
	ErrQueryLogDisabled = errors.New("query log is disabled")
	ErrQueryNotFound    = errors.New("no query logged for city")
)

type WeatherService interface {
	GetWeatherByCity(ctx context.Context, city string) (json.RawMessage, error)
	GetWeatherByCoords(ctx context.Context, lat, lon float64) (json.RawMessage, error)
	GetForecastByCity(ctx context.Context, city string) (json.RawMessage, error)
	GetLatestQuery(city string) (*weatherquery.WeatherQuery, error)
}

type weatherService struct {
	client           providers.WeatherClient
	weatherQueryRepo weatherquery.Repository
}

// NewWeatherService wraps client. weatherQueryRepo may be nil, in which case
// no query log is kept.
func NewWeatherService(client providers.WeatherClient, weatherQueryRepo weatherquery.Repository) WeatherService {
	return &weatherService{
		client:           client,
		weatherQueryRepo: weatherQueryRepo,
	}
}

func (s *weatherService) GetWeatherByCity(ctx context.Context, city string) (json.RawMessage, error) {
	start := time.Now()
	payload, err := s.client.GetWeatherByCity(ctx, city)

	s.recordQuery(&weatherquery.WeatherQuery{
		Endpoint: providers.WeatherEndpoint,
		City:     city,
	}, start, err)

	return payload, err
}

func (s *weatherService) GetWeatherByCoords(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	start := time.Now()
	payload, err := s.client.GetWeatherByCoords(ctx, lat, lon)

	s.recordQuery(&weatherquery.WeatherQuery{
		Endpoint:  providers.WeatherEndpoint,
		Latitude:  &lat,
		Longitude: &lon,
	}, start, err)

	return payload, err
}

func (s *weatherService) GetForecastByCity(ctx context.Context, city string) (json.RawMessage, error) {
	start := time.Now()
	payload, err := s.client.GetForecastByCity(ctx, city)

	s.recordQuery(&weatherquery.WeatherQuery{
		Endpoint: providers.ForecastEndpoint,
		City:     city,
	}, start, err)

	return payload, err
}

func (s *weatherService) GetLatestQuery(city string) (*weatherquery.WeatherQuery, error) {
	if s.weatherQueryRepo == nil {
		return nil, ErrQueryLogDisabled
	}

	query, err := s.weatherQueryRepo.GetRecentWeatherQuery(city)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrQueryNotFound, city)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read query log: %w", err)
	}

	return query, nil
}

func (s *weatherService) recordQuery(query *weatherquery.WeatherQuery, start time.Time, callErr error) {
	elapsed := time.Since(start)

	query.DurationMs = elapsed.Milliseconds()
	query.Succeeded = callErr == nil
	query.StatusCode = statusCodeOf(callErr)

	log.Debug().
		Str("endpoint", query.Endpoint).
		Str("city", query.City).
		Int("status_code", query.StatusCode).
		Dur("elapsed", elapsed).
		Msg("openweather request completed")

	if s.weatherQueryRepo == nil {
		return
	}

	if err := s.weatherQueryRepo.LogWeatherQuery(query); err != nil {
		log.Error().Err(err).Str("endpoint", query.Endpoint).Msg("Failed to log weather query")
	}
}

func statusCodeOf(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var httpErr *providers.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	return 0
}
