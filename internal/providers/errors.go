package providers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NetworkError reports a request that never produced an HTTP response
// (DNS, connection, cancellation) or whose body could not be read.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("openweather %s request failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError reports a non-2xx response from the provider.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       []byte
	Message    string
}

func newHTTPError(endpoint string, statusCode int, body []byte) *HTTPError {
	var payload struct {
		Message string `json:"message"`
	}
	// error bodies look like {"cod":"404","message":"city not found"}
	_ = json.Unmarshal(body, &payload)

	return &HTTPError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Body:       body,
		Message:    payload.Message,
	}
}

func (e *HTTPError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = strings.TrimSpace(string(e.Body))
	}
	if detail == "" {
		return fmt.Sprintf("openweather %s returned status code: %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("openweather %s returned status code: %d: %s", e.Endpoint, e.StatusCode, detail)
}
