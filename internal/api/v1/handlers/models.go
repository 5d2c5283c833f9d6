package handlers

import "time"

type QueryLogResponse struct {
	Endpoint   string    `json:"endpoint"`
	City       string    `json:"city"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	StatusCode int       `json:"status_code"`
	Succeeded  bool      `json:"succeeded"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}
