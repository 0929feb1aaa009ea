package models

import "time"

type CurrentConditions struct {
	City         string    `json:"city" example:"New Delhi"`
	Description  string    `json:"description" example:"clear sky"`
	IconCode     string    `json:"icon_code" example:"01d"`
	TemperatureC float64   `json:"temperature_c" example:"21.5"`
	FeelsLikeC   float64   `json:"feels_like_c" example:"20.9"`
	HumidityPct  int       `json:"humidity_pct" example:"40"`
	PressureHPa  float64   `json:"pressure_hpa" example:"1012"`
	WindSpeedMs  float64   `json:"wind_speed_ms" example:"3.1"`
	ObservedAt   time.Time `json:"observed_at"`
}

type ForecastEntry struct {
	Time         time.Time `json:"time"`
	Description  string    `json:"description"`
	IconCode     string    `json:"icon_code"`
	TemperatureC float64   `json:"temperature_c"`
	FeelsLikeC   float64   `json:"feels_like_c"`
	TempMinC     float64   `json:"temp_min_c"`
	TempMaxC     float64   `json:"temp_max_c"`
	HumidityPct  int       `json:"humidity_pct"`
	PressureHPa  float64   `json:"pressure_hpa"`
	CloudsPct    int       `json:"clouds_pct"`
	WindSpeedMs  float64   `json:"wind_speed_ms"`
}

// ForecastSeries keeps the provider's entry order.
type ForecastSeries struct {
	City           string          `json:"city"`
	TimezoneOffset int             `json:"timezone_offset"`
	Entries        []ForecastEntry `json:"entries"`
}

// WeatherSnapshot pairs current conditions and forecast fetched together for
// one coordinate. Current.City and Forecast.City always equal City.
type WeatherSnapshot struct {
	City       string            `json:"city"`
	Coordinate Coordinate        `json:"coordinate"`
	Current    CurrentConditions `json:"current"`
	Forecast   ForecastSeries    `json:"forecast"`
	FetchedAt  time.Time         `json:"fetched_at"`
	Generation uint64            `json:"generation"`
}

func NewWeatherSnapshot(city string, c Coordinate, current CurrentConditions, forecast ForecastSeries) WeatherSnapshot {
	current.City = city
	forecast.City = city

	return WeatherSnapshot{
		City:       city,
		Coordinate: c,
		Current:    current,
		Forecast:   forecast,
		FetchedAt:  time.Now().UTC(),
	}
}
