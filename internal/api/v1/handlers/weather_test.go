package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"ulascansenturk/openweather-client/internal/api/v1/handlers"
	"ulascansenturk/openweather-client/internal/db/weatherquery"
	"ulascansenturk/openweather-client/internal/mocks"
	"ulascansenturk/openweather-client/internal/providers"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"ulascansenturk/openweather-client/internal/service"
)

type WeatherHandlerTestSuite struct {
	suite.Suite
	mockService *mocks.MockWeatherService
	handler     *handlers.WeatherHandler
}

func (s *WeatherHandlerTestSuite) SetupTest() {
	s.mockService = mocks.NewMockWeatherService(s.T())
	s.handler = handlers.NewWeatherHandler(s.mockService, 5*time.Second)
}

func (s *WeatherHandlerTestSuite) serve(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()

	s.handler.ServeHTTP(recorder, req)

	return recorder
}

func (s *WeatherHandlerTestSuite) decodeError(recorder *httptest.ResponseRecorder) handlers.Error {
	var response handlers.ErrorResponse
	err := json.NewDecoder(recorder.Body).Decode(&response)
	s.Require().NoError(err)
	s.Require().Len(response.Errors, 1)
	return response.Errors[0]
}

func (s *WeatherHandlerTestSuite) TestWeatherByCityPassesBodyThrough() {
	body := `{"name":"Istanbul","main":{"temp":25.5}}`

	s.mockService.On("GetWeatherByCity", mock.Anything, "Istanbul").
		Return(json.RawMessage(body), nil)

	recorder := s.serve(http.MethodGet, "/weather?q=Istanbul")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("application/json", recorder.Header().Get("Content-Type"))
	s.Equal(body, recorder.Body.String())
}

func (s *WeatherHandlerTestSuite) TestWeatherByCoords() {
	s.mockService.On("GetWeatherByCoords", mock.Anything, 41.0082, 28.9784).
		Return(json.RawMessage(`{"temp": 21}`), nil)

	recorder := s.serve(http.MethodGet, "/weather?lat=41.0082&lon=28.9784")

	s.Equal(http.StatusOK, recorder.Code)
	s.JSONEq(`{"temp": 21}`, recorder.Body.String())
}

func (s *WeatherHandlerTestSuite) TestCityTakesPrecedenceOverCoords() {
	s.mockService.On("GetWeatherByCity", mock.Anything, "Paris").
		Return(json.RawMessage(`{"temp": 12}`), nil)

	recorder := s.serve(http.MethodGet, "/weather?q=Paris&lat=1&lon=2")

	s.Equal(http.StatusOK, recorder.Code)
	s.mockService.AssertNotCalled(s.T(), "GetWeatherByCoords", mock.Anything, mock.Anything, mock.Anything)
}

func (s *WeatherHandlerTestSuite) TestWeatherMissingLocation() {
	recorder := s.serve(http.MethodGet, "/weather")

	s.Equal(http.StatusBadRequest, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("BAD_REQUEST", apiErr.Code)
	s.Contains(apiErr.Detail, "location parameter")
}

func (s *WeatherHandlerTestSuite) TestWeatherOnlyLatitude() {
	recorder := s.serve(http.MethodGet, "/weather?lat=10")

	s.Equal(http.StatusBadRequest, recorder.Code)
	s.Equal("BAD_REQUEST", s.decodeError(recorder).Code)
}

func (s *WeatherHandlerTestSuite) TestWeatherInvalidCoordinates() {
	recorder := s.serve(http.MethodGet, "/weather?lat=north&lon=10")
	s.Equal(http.StatusBadRequest, recorder.Code)
	s.Contains(s.decodeError(recorder).Detail, "'lat'")

	recorder = s.serve(http.MethodGet, "/weather?lat=10&lon=east")
	s.Equal(http.StatusBadRequest, recorder.Code)
	s.Contains(s.decodeError(recorder).Detail, "'lon'")
}

func (s *WeatherHandlerTestSuite) TestForecastByCity() {
	body := `{"cnt":40,"list":[]}`

	s.mockService.On("GetForecastByCity", mock.Anything, "Berlin").
		Return(json.RawMessage(body), nil)

	recorder := s.serve(http.MethodGet, "/forecast?q=Berlin")

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(body, recorder.Body.String())
}

func (s *WeatherHandlerTestSuite) TestForecastMissingCity() {
	recorder := s.serve(http.MethodGet, "/forecast")

	s.Equal(http.StatusBadRequest, recorder.Code)
	s.Contains(s.decodeError(recorder).Detail, "location parameter 'q' is required")
}

func (s *WeatherHandlerTestSuite) TestWrongMethod() {
	for _, target := range []string{"/weather?q=Istanbul", "/forecast?q=Istanbul", "/queries/latest?q=Istanbul"} {
		recorder := s.serve(http.MethodPost, target)

		s.Equal(http.StatusMethodNotAllowed, recorder.Code)

		apiErr := s.decodeError(recorder)
		s.Equal("METHOD_NOT_ALLOWED", apiErr.Code)
		s.Contains(apiErr.Detail, "method not allowed")
	}
}

func (s *WeatherHandlerTestSuite) TestWrongPath() {
	recorder := s.serve(http.MethodGet, "/onecall?q=Istanbul")

	s.Equal(http.StatusNotFound, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("NOT_FOUND", apiErr.Code)
	s.Contains(apiErr.Detail, "not found")
}

func (s *WeatherHandlerTestSuite) TestProviderClientErrorKeepsStatus() {
	providerErr := &providers.HTTPError{
		Endpoint:   "/weather",
		StatusCode: http.StatusNotFound,
		Message:    "city not found",
	}

	s.mockService.On("GetWeatherByCity", mock.Anything, "Atlantis").Return(nil, providerErr)

	recorder := s.serve(http.MethodGet, "/weather?q=Atlantis")

	s.Equal(http.StatusNotFound, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("NOT_FOUND", apiErr.Code)
	s.Contains(apiErr.Detail, "city not found")
}

func (s *WeatherHandlerTestSuite) TestProviderUnauthorized() {
	providerErr := &providers.HTTPError{
		Endpoint:   "/forecast",
		StatusCode: http.StatusUnauthorized,
		Message:    "Invalid API key.",
	}

	s.mockService.On("GetForecastByCity", mock.Anything, "Rome").Return(nil, providerErr)

	recorder := s.serve(http.MethodGet, "/forecast?q=Rome")

	s.Equal(http.StatusBadGateway, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("BAD_GATEWAY", apiErr.Code)
	s.Equal("weather provider rejected the configured credentials", apiErr.Detail)
}

func (s *WeatherHandlerTestSuite) TestProviderForbiddenIsBadGateway() {
	providerErr := &providers.HTTPError{Endpoint: "/weather", StatusCode: http.StatusForbidden}

	s.mockService.On("GetWeatherByCity", mock.Anything, "Rome").Return(nil, providerErr)

	recorder := s.serve(http.MethodGet, "/weather?q=Rome")

	s.Equal(http.StatusBadGateway, recorder.Code)
	s.Equal("BAD_GATEWAY", s.decodeError(recorder).Code)
}

func (s *WeatherHandlerTestSuite) TestProviderServerErrorIsBadGateway() {
	providerErr := &providers.HTTPError{Endpoint: "/weather", StatusCode: http.StatusServiceUnavailable}

	s.mockService.On("GetWeatherByCoords", mock.Anything, 1.5, 2.5).Return(nil, providerErr)

	recorder := s.serve(http.MethodGet, "/weather?lat=1.5&lon=2.5")

	s.Equal(http.StatusBadGateway, recorder.Code)
	s.Equal("BAD_GATEWAY", s.decodeError(recorder).Code)
}

func (s *WeatherHandlerTestSuite) TestNetworkErrorIsBadGateway() {
	networkErr := &providers.NetworkError{Endpoint: "/weather", Err: errors.New("connection refused")}

	s.mockService.On("GetWeatherByCity", mock.Anything, "Oslo").Return(nil, networkErr)

	recorder := s.serve(http.MethodGet, "/weather?q=Oslo")

	s.Equal(http.StatusBadGateway, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("BAD_GATEWAY", apiErr.Code)
	s.Equal("weather provider is unreachable", apiErr.Detail)
}

func (s *WeatherHandlerTestSuite) TestUnexpectedServiceError() {
	s.mockService.On("GetForecastByCity", mock.Anything, "Lima").Return(nil, errors.New("service error"))

	recorder := s.serve(http.MethodGet, "/forecast?q=Lima")

	s.Equal(http.StatusInternalServerError, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("INTERNAL_ERROR", apiErr.Code)
	s.Equal("failed to get weather data", apiErr.Detail)
}

func (s *WeatherHandlerTestSuite) TestContextTimeout() {
	location := "SlowCity"

	s.mockService.On("GetWeatherByCity", mock.Anything, location).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(nil, &providers.NetworkError{Endpoint: "/weather", Err: context.DeadlineExceeded})

	s.handler = handlers.NewWeatherHandler(s.mockService, 50*time.Millisecond)

	recorder := s.serve(http.MethodGet, "/weather?q="+location)

	s.Equal(http.StatusGatewayTimeout, recorder.Code)

	apiErr := s.decodeError(recorder)
	s.Equal("GATEWAY_TIMEOUT", apiErr.Code)
	s.Equal("weather provider timed out", apiErr.Detail)
}

func (s *WeatherHandlerTestSuite) TestLatestQuery() {
	createdAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	s.mockService.On("GetLatestQuery", "Madrid").Return(&weatherquery.WeatherQuery{
		ID:         3,
		Endpoint:   "/forecast",
		City:       "Madrid",
		StatusCode: 200,
		Succeeded:  true,
		DurationMs: 120,
		CreatedAt:  createdAt,
	}, nil)

	recorder := s.serve(http.MethodGet, "/queries/latest?q=Madrid")

	s.Equal(http.StatusOK, recorder.Code)

	var response handlers.QueryLogResponse
	s.Require().NoError(json.NewDecoder(recorder.Body).Decode(&response))
	s.Equal("/forecast", response.Endpoint)
	s.Equal("Madrid", response.City)
	s.Equal(200, response.StatusCode)
	s.True(response.Succeeded)
	s.Equal(int64(120), response.DurationMs)
	s.True(createdAt.Equal(response.CreatedAt))
}

func (s *WeatherHandlerTestSuite) TestLatestQueryNotFound() {
	s.mockService.On("GetLatestQuery", "Nowhere").Return(nil, service.ErrQueryNotFound)

	recorder := s.serve(http.MethodGet, "/queries/latest?q=Nowhere")

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *WeatherHandlerTestSuite) TestLatestQueryDisabled() {
	s.mockService.On("GetLatestQuery", "Madrid").Return(nil, service.ErrQueryLogDisabled)

	recorder := s.serve(http.MethodGet, "/queries/latest?q=Madrid")

	s.Equal(http.StatusServiceUnavailable, recorder.Code)
	s.Equal("SERVICE_UNAVAILABLE", s.decodeError(recorder).Code)
}

func (s *WeatherHandlerTestSuite) TestLatestQueryMissingCity() {
	recorder := s.serve(http.MethodGet, "/queries/latest")

	s.Equal(http.StatusBadRequest, recorder.Code)
	s.mockService.AssertNotCalled(s.T(), "GetLatestQuery", mock.Anything)
}

func TestWeatherHandlerSuite(t *testing.T) {
	suite.Run(t, new(WeatherHandlerTestSuite))
}

func TestUnreachableProviderDoesNotExposeAPIKey(t *testing.T) {
	const apiKey = "SECRET_OPENWEATHER_KEY"

	var logs bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&logs)
	defer func() { log.Logger = previous }()

	provider := httptest.NewServer(http.NotFoundHandler())
	deadURL := provider.URL
	provider.Close()

	client := providers.NewWeatherClient(deadURL, apiKey, nil)
	handler := handlers.NewWeatherHandler(service.NewWeatherService(client, nil), 5*time.Second)

	for _, target := range []string{"/weather?q=Paris", "/weather?lat=48.85&lon=2.35", "/forecast?q=Paris"} {
		t.Run(target, func(t *testing.T) {
			logs.Reset()
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

			require.Equal(t, http.StatusBadGateway, recorder.Code)
			assert.NotContains(t, recorder.Body.String(), apiKey)
			assert.Contains(t, recorder.Body.String(), "weather provider is unreachable")
			assert.NotEmpty(t, logs.String())
			assert.NotContains(t, logs.String(), apiKey)
		})
	}
}
