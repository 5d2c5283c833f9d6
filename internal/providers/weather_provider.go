package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	WeatherEndpoint  = "/weather"
	ForecastEndpoint = "/forecast"

	metricUnits = "metric"
)

type WeatherClient interface {
	GetWeatherByCity(ctx context.Context, city string) (json.RawMessage, error)
	GetWeatherByCoords(ctx context.Context, lat, lon float64) (json.RawMessage, error)
	GetForecastByCity(ctx context.Context, city string) (json.RawMessage, error)
}

type openWeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewWeatherClient returns a client for the OpenWeatherMap 2.5 API. An empty
// baseURL falls back to DefaultBaseURL and a nil httpClient to a client
// without a timeout; cancellation is left to the caller's context.
func NewWeatherClient(baseURL, apiKey string, httpClient *http.Client) WeatherClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &openWeatherClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

func (c *openWeatherClient) GetWeatherByCity(ctx context.Context, city string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", city)

	return c.get(ctx, WeatherEndpoint, params)
}

func (c *openWeatherClient) GetWeatherByCoords(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("lat", FormatCoordinate(lat))
	params.Set("lon", FormatCoordinate(lon))

	return c.get(ctx, WeatherEndpoint, params)
}

func (c *openWeatherClient) GetForecastByCity(ctx context.Context, city string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", city)

	return c.get(ctx, ForecastEndpoint, params)
}

func (c *openWeatherClient) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	params.Set("appid", c.apiKey)
	params.Set("units", metricUnits)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, withoutURL(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: withoutURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(endpoint, resp.StatusCode, body)
	}

	return json.RawMessage(body), nil
}

// withoutURL drops the *url.Error wrapper, whose message repeats the request
// URL and with it the appid credential.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// FormatCoordinate renders v with the fewest digits that parse back to v.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
