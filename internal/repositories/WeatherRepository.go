package repositories

import (
	"context"
	"errors"
	"net/http"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

var (
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrMalformedResponse = errors.New("malformed response")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error)
	FetchForecast(ctx context.Context, c models.Coordinate) (models.ForecastSeries, error)
}

type GeocodingRepository interface {
	ReverseGeocode(ctx context.Context, c models.Coordinate, limit int) ([]models.Place, error)
}

type CityRepository interface {
	FindCities(ctx context.Context, q models.CityQuery) (models.CityPage, error)
}

type Repositories struct {
	Weather   WeatherRepository
	Geocoding GeocodingRepository
	Cities    CityRepository
}

func InitRepositories(cfg *config.Config, l *logger.Logger) Repositories {
	weatherClient := &http.Client{Timeout: cfg.Weather.Timeout}

	return Repositories{
		Weather:   NewOpenWeatherRepository(cfg.Weather.BaseURL, cfg.Weather.APIKey, l, weatherClient),
		Geocoding: NewOpenWeatherGeocoder(cfg.Weather.GeoBaseURL, cfg.Weather.APIKey, l, weatherClient),
		Cities:    NewGeoDBRepository(cfg.Cities, l),
	}
}
