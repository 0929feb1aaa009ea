package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const (
	OpenWeatherBaseURL    = "https://api.openweathermap.org/data/2.5"
	OpenWeatherGeoBaseURL = "https://api.openweathermap.org/geo/1.0"

	metricUnits = "metric"
)

type OpenWeatherRepository struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	tracer     trace.Tracer
	l          *logger.Logger
}

func NewOpenWeatherRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) *OpenWeatherRepository {
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}

	return &OpenWeatherRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		tracer:     otel.Tracer("weather-dashboard/repositories"),
		l:          l,
	}
}

func (o *OpenWeatherRepository) Name() string {
	return "openweather"
}

type openWeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type openWeatherMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type OpenWeatherCurrentResponse struct {
	Dt      int64                  `json:"dt"`
	Name    string                 `json:"name"`
	Weather []openWeatherCondition `json:"weather"`
	Main    *openWeatherMain       `json:"main"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type OpenWeatherForecastResponse struct {
	List []struct {
		Dt      int64                  `json:"dt"`
		Main    openWeatherMain        `json:"main"`
		Weather []openWeatherCondition `json:"weather"`
		Clouds  struct {
			All int `json:"all"`
		} `json:"clouds"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

func (o *OpenWeatherRepository) FetchCurrent(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error) {
	ctx, span := o.tracer.Start(ctx, "openweather.current")
	defer span.End()

	var response OpenWeatherCurrentResponse
	if err := getJSON(ctx, o.httpClient, o.l, o.weatherURL("/weather", c), "current", &response); err != nil {
		recordError(span, err)
		return models.CurrentConditions{}, err
	}

	if response.Main == nil || len(response.Weather) == 0 {
		err := fmt.Errorf("%w: current conditions without main or weather block", ErrMalformedResponse)
		recordError(span, err)
		return models.CurrentConditions{}, err
	}

	current := models.CurrentConditions{
		Description:  response.Weather[0].Description,
		IconCode:     response.Weather[0].Icon,
		TemperatureC: response.Main.Temp,
		FeelsLikeC:   response.Main.FeelsLike,
		HumidityPct:  response.Main.Humidity,
		PressureHPa:  response.Main.Pressure,
		WindSpeedMs:  response.Wind.Speed,
	}
	if response.Dt > 0 {
		current.ObservedAt = time.Unix(response.Dt, 0).UTC()
	}

	span.SetAttributes(attribute.Float64("temperature_c", current.TemperatureC))

	return current, nil
}

func (o *OpenWeatherRepository) FetchForecast(ctx context.Context, c models.Coordinate) (models.ForecastSeries, error) {
	ctx, span := o.tracer.Start(ctx, "openweather.forecast")
	defer span.End()

	var response OpenWeatherForecastResponse
	if err := getJSON(ctx, o.httpClient, o.l, o.weatherURL("/forecast", c), "forecast", &response); err != nil {
		recordError(span, err)
		return models.ForecastSeries{}, err
	}

	series := models.ForecastSeries{
		TimezoneOffset: response.City.Timezone,
		Entries:        make([]models.ForecastEntry, 0, len(response.List)),
	}

	for _, item := range response.List {
		entry := models.ForecastEntry{
			Time:         time.Unix(item.Dt, 0).UTC(),
			TemperatureC: item.Main.Temp,
			FeelsLikeC:   item.Main.FeelsLike,
			TempMinC:     item.Main.TempMin,
			TempMaxC:     item.Main.TempMax,
			HumidityPct:  item.Main.Humidity,
			PressureHPa:  item.Main.Pressure,
			CloudsPct:    item.Clouds.All,
			WindSpeedMs:  item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.IconCode = item.Weather[0].Icon
		}
		series.Entries = append(series.Entries, entry)
	}

	span.SetAttributes(attribute.Int("entries", len(series.Entries)))

	return series, nil
}

func (o *OpenWeatherRepository) weatherURL(path string, c models.Coordinate) string {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	values.Set("appid", o.apiKey)
	values.Set("units", metricUnits)

	return o.baseURL + path + "?" + values.Encode()
}

// OpenWeatherGeocoder resolves coordinates to place names through the
// provider's reverse-geocoding endpoint.
type OpenWeatherGeocoder struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	tracer     trace.Tracer
	l          *logger.Logger
}

func NewOpenWeatherGeocoder(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) *OpenWeatherGeocoder {
	if baseURL == "" {
		baseURL = OpenWeatherGeoBaseURL
	}

	return &OpenWeatherGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		tracer:     otel.Tracer("weather-dashboard/repositories"),
		l:          l,
	}
}

func (g *OpenWeatherGeocoder) ReverseGeocode(ctx context.Context, c models.Coordinate, limit int) ([]models.Place, error) {
	ctx, span := g.tracer.Start(ctx, "openweather.reverse")
	defer span.End()

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	values.Set("limit", strconv.Itoa(limit))
	values.Set("appid", g.apiKey)

	var places []models.Place
	if err := getJSON(ctx, g.httpClient, g.l, g.baseURL+"/reverse?"+values.Encode(), "reverse", &places); err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("places", len(places)))

	return places, nil
}

// getJSON performs a GET request and decodes a 200 JSON body into out.
func getJSON(ctx context.Context, client HTTPClient, l *logger.Logger, rawURL, endpoint string, out any) error {
	l.Debug("making openweather API request", map[string]any{
		"endpoint": endpoint,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	l.Debug("received openweather API response", map[string]any{
		"endpoint":   endpoint,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, endpoint)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse JSON response: %v", ErrMalformedResponse, err)
	}

	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
