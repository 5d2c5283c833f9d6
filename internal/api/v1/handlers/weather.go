package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/openweather-client/internal/providers"
	"ulascansenturk/openweather-client/internal/service"
)

type WeatherHandler struct {
	weatherService service.WeatherService
	timeout        time.Duration
}

func NewWeatherHandler(weatherService service.WeatherService, timeout time.Duration) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		timeout:        timeout,
	}
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/weather":
		h.GetWeather(w, r)
	case "/forecast":
		h.GetForecast(w, r)
	case "/queries/latest":
		h.GetLatestQuery(w, r)
	default:
		respondWithError(w, http.StatusNotFound, "not found")
	}
}

// GetWeather serves current weather either by city (q) or by coordinates
// (lat and lon). q takes precedence when both are given.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.URL.Path != "/weather" {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if city := query.Get("q"); city != "" {
		payload, err := h.weatherService.GetWeatherByCity(ctx, city)
		if err != nil {
			respondWithServiceError(w, err, log.Error().Str("city", city))
			return
		}

		respondWithRaw(w, http.StatusOK, payload)
		return
	}

	if !query.Has("lat") || !query.Has("lon") {
		respondWithError(w, http.StatusBadRequest, "location parameter 'q' or both 'lat' and 'lon' are required")
		return
	}

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "parameter 'lat' must be a number")
		return
	}

	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "parameter 'lon' must be a number")
		return
	}

	payload, err := h.weatherService.GetWeatherByCoords(ctx, lat, lon)
	if err != nil {
		respondWithServiceError(w, err, log.Error().Float64("lat", lat).Float64("lon", lon))
		return
	}

	respondWithRaw(w, http.StatusOK, payload)
}

func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.URL.Path != "/forecast" {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	city := r.URL.Query().Get("q")
	if city == "" {
		respondWithError(w, http.StatusBadRequest, "location parameter 'q' is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	payload, err := h.weatherService.GetForecastByCity(ctx, city)
	if err != nil {
		respondWithServiceError(w, err, log.Error().Str("city", city))
		return
	}

	respondWithRaw(w, http.StatusOK, payload)
}

func (h *WeatherHandler) GetLatestQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	city := r.URL.Query().Get("q")
	if city == "" {
		respondWithError(w, http.StatusBadRequest, "location parameter 'q' is required")
		return
	}

	query, err := h.weatherService.GetLatestQuery(city)
	switch {
	case errors.Is(err, service.ErrQueryLogDisabled):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, service.ErrQueryNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Str("city", city).Msg("failed to read query log")
		respondWithError(w, http.StatusInternalServerError, "failed to read query log: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, QueryLogResponse{
		Endpoint:   query.Endpoint,
		City:       query.City,
		Latitude:   query.Latitude,
		Longitude:  query.Longitude,
		StatusCode: query.StatusCode,
		Succeeded:  query.Succeeded,
		DurationMs: query.DurationMs,
		CreatedAt:  query.CreatedAt,
	})
}

// respondWithServiceError maps provider failures onto gateway statuses.
// Provider 4xx responses keep their status so callers see e.g. "city not found",
// except 401/403 which concern the server's own credential. Transport failures
// get a fixed detail: their causes can carry the outbound request.
func respondWithServiceError(w http.ResponseWriter, err error, event *zerolog.Event) {
	event.Err(err).Msg("failed to get weather data")

	var httpErr *providers.HTTPError
	var networkErr *providers.NetworkError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		respondWithError(w, http.StatusGatewayTimeout, "weather provider timed out")
	case errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden):
		respondWithError(w, http.StatusBadGateway, "weather provider rejected the configured credentials")
	case errors.As(err, &httpErr) && httpErr.StatusCode >= 400 && httpErr.StatusCode < 500:
		respondWithError(w, httpErr.StatusCode, "failed to get weather data: "+err.Error())
	case errors.As(err, &httpErr):
		respondWithError(w, http.StatusBadGateway, "failed to get weather data: "+err.Error())
	case errors.As(err, &networkErr):
		respondWithError(w, http.StatusBadGateway, "weather provider is unreachable")
	default:
		respondWithError(w, http.StatusInternalServerError, "failed to get weather data")
	}
}
