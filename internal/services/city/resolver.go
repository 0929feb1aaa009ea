package city

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// FallbackName is shown when the coordinate cannot be resolved to a city.
const FallbackName = "Your Location"

// Resolver turns coordinates into a display name. It never fails: a missing
// name must not block the weather fetch.
type Resolver struct {
	repo   repositories.GeocodingRepository
	tracer trace.Tracer
	l      *logger.Logger
}

func NewResolver(repo repositories.GeocodingRepository, l *logger.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		tracer: otel.Tracer("weather-dashboard/city"),
		l:      l,
	}
}

func (r *Resolver) ResolveCityName(ctx context.Context, c models.Coordinate) string {
	ctx, span := r.tracer.Start(ctx, "city.resolve")
	defer span.End()

	places, err := r.repo.ReverseGeocode(ctx, c, 1)
	if err != nil {
		r.l.Warning("reverse geocoding failed, using fallback name", map[string]any{
			"params": c.RequestParams(),
			"err":    err.Error(),
		})
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackName
	}

	if len(places) == 0 || strings.TrimSpace(places[0].Name) == "" {
		r.l.Debug("reverse geocoding returned no name", map[string]any{"params": c.RequestParams()})
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackName
	}

	span.SetAttributes(attribute.String("city", places[0].Name))

	return places[0].Name
}
