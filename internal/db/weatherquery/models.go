package weatherquery

import (
	"time"
)

// WeatherQuery is one outbound provider call. Latitude and Longitude are only
// set for coordinate lookups; StatusCode is 0 when no response was received.
type WeatherQuery struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Endpoint   string    `json:"endpoint" gorm:"size:32"`
	City       string    `json:"city,omitempty" gorm:"index:idx_city;index:idx_city_created_at"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	StatusCode int       `json:"status_code" gorm:"column:status_code"`
	Succeeded  bool      `json:"succeeded"`
	DurationMs int64     `json:"duration_ms" gorm:"column:duration_ms"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_created_at;index:idx_city_created_at"`
}

func (WeatherQuery) TableName() string {
	return "weather_queries"
}
