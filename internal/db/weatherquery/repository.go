package weatherquery

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	LogWeatherQuery(query *WeatherQuery) error
	GetRecentWeatherQuery(city string) (*WeatherQuery, error)
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

func (r *WeatherSQLRepository) LogWeatherQuery(query *WeatherQuery) error {
	if query.CreatedAt.IsZero() {
		query.CreatedAt = time.Now()
	}

	return r.db.Create(query).Error
}

func (r *WeatherSQLRepository) GetRecentWeatherQuery(city string) (*WeatherQuery, error) {
	var query WeatherQuery
	err := r.db.Where("city = ?", city).Order("created_at DESC").First(&query).Error
	if err != nil {
		return nil, err
	}
	return &query, nil
}
