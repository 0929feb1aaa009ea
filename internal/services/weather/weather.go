package weather

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// CityResolver names a coordinate for display.
type CityResolver interface {
	ResolveCityName(ctx context.Context, c models.Coordinate) string
}

// Fetcher runs one fetch cycle: name the location, then load current
// conditions and forecast side by side.
type Fetcher struct {
	resolver CityResolver
	repo     repositories.WeatherRepository
	tracer   trace.Tracer
	l        *logger.Logger
}

func NewFetcher(resolver CityResolver, repo repositories.WeatherRepository, l *logger.Logger) *Fetcher {
	return &Fetcher{
		resolver: resolver,
		repo:     repo,
		tracer:   otel.Tracer("weather-dashboard/weather"),
		l:        l,
	}
}

// FetchWeather returns a snapshot for c. A non-empty cityName skips reverse
// geocoding. Both provider calls must succeed, otherwise no snapshot is
// returned.
func (f *Fetcher) FetchWeather(ctx context.Context, c models.Coordinate, cityName string) (models.WeatherSnapshot, error) {
	ctx, span := f.tracer.Start(ctx, "weather.fetch", trace.WithAttributes(
		attribute.Float64("lat", c.Latitude),
		attribute.Float64("lon", c.Longitude),
	))
	defer span.End()

	if err := c.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return models.WeatherSnapshot{}, err
	}

	city := cityName
	if city == "" {
		city = f.resolver.ResolveCityName(ctx, c)
	}
	span.SetAttributes(attribute.String("city", city))

	f.l.Info("starting weather fetch", map[string]any{
		"params":   c.RequestParams(),
		"city":     city,
		"provider": f.repo.Name(),
	})

	var (
		current  models.CurrentConditions
		forecast models.ForecastSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = f.repo.FetchCurrent(gctx, c)
		return errors.Wrap(err, "current conditions")
	})
	g.Go(func() error {
		var err error
		forecast, err = f.repo.FetchForecast(gctx, c)
		return errors.Wrap(err, "forecast")
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.l.Warning("weather fetch failed", map[string]any{
			"params": c.RequestParams(),
			"city":   city,
			"err":    err.Error(),
		})
		return models.WeatherSnapshot{}, errors.Wrap(err, "weather fetch failed")
	}

	snapshot := models.NewWeatherSnapshot(city, c, current, forecast)

	f.l.Info("successfully fetched weather", map[string]any{
		"city":            city,
		"forecastEntries": len(forecast.Entries),
	})

	return snapshot, nil
}
