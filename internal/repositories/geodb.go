package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const (
	GeoDBBaseURL = "https://wft-geo-db.p.rapidapi.com/v1/geo"
	GeoDBAPIHost = "wft-geo-db.p.rapidapi.com"
)

// GeoDBRepository searches the GeoDB cities directory.
type GeoDBRepository struct {
	client   *resty.Client
	pageSize int
	tracer   trace.Tracer
	l        *logger.Logger
}

func NewGeoDBRepository(cfg config.CitiesConfig, l *logger.Logger) *GeoDBRepository {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = GeoDBBaseURL
	}
	host := cfg.APIHost
	if host == "" {
		host = GeoDBAPIHost
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("X-RapidAPI-Key", cfg.APIKey).
		SetHeader("X-RapidAPI-Host", host).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		l.Debug("received cities API response", map[string]any{
			"status":   resp.StatusCode(),
			"duration": resp.Time().String(),
			"bytes":    len(resp.Body()),
		})
		return nil
	})

	return &GeoDBRepository{
		client:   client,
		pageSize: cfg.PageSize,
		tracer:   otel.Tracer("weather-dashboard/repositories"),
		l:        l,
	}
}

type GeoDBCitiesResponse struct {
	Data []struct {
		Name        string  `json:"name"`
		CountryCode string  `json:"countryCode"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	} `json:"data"`
	Metadata struct {
		CurrentOffset int `json:"currentOffset"`
		TotalCount    int `json:"totalCount"`
	} `json:"metadata"`
}

func (g *GeoDBRepository) FindCities(ctx context.Context, q models.CityQuery) (models.CityPage, error) {
	ctx, span := g.tracer.Start(ctx, "geodb.cities")
	defer span.End()

	limit := q.Limit
	if limit <= 0 {
		limit = g.pageSize
	}

	params := map[string]string{
		"countryIds": q.CountryIDs,
		"namePrefix": q.NamePrefix,
		"offset":     strconv.Itoa(q.Offset),
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	span.SetAttributes(
		attribute.String("name_prefix", q.NamePrefix),
		attribute.Int("offset", q.Offset),
	)

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/cities")
	if err != nil {
		recordError(span, err)
		return models.CityPage{}, fmt.Errorf("failed to do request: %w", err)
	}

	if !resp.IsSuccess() {
		err := fmt.Errorf("%w: %d from cities", ErrUnexpectedStatus, resp.StatusCode())
		recordError(span, err)
		return models.CityPage{}, err
	}

	var response GeoDBCitiesResponse
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		err = fmt.Errorf("%w: failed to parse JSON response: %v", ErrMalformedResponse, err)
		recordError(span, err)
		return models.CityPage{}, err
	}

	page := models.CityPage{
		Cities:     make([]models.CitySelection, 0, len(response.Data)),
		Offset:     q.Offset,
		TotalCount: response.Metadata.TotalCount,
	}
	for _, city := range response.Data {
		page.Cities = append(page.Cities, models.NewCitySelection(city.Name, city.CountryCode, models.Coordinate{
			Latitude:  city.Latitude,
			Longitude: city.Longitude,
		}))
	}

	span.SetAttributes(attribute.Int("cities", len(page.Cities)))

	return page, nil
}
