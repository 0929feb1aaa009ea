package dashboard

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/render"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type OutcomeKind string

const (
	Applied    OutcomeKind = "applied"
	Superseded OutcomeKind = "superseded"
	Failed     OutcomeKind = "failed"
)

type Reason string

const (
	ReasonNetwork  Reason = "network"
	ReasonStatus   Reason = "status"
	ReasonDecode   Reason = "decode"
	ReasonCanceled Reason = "canceled"
	ReasonInvalid  Reason = "invalid_coordinate"
)

// Outcome reports what happened to one fetch cycle. Reason and Err are only
// set for Failed.
type Outcome struct {
	Kind       OutcomeKind
	Generation uint64
	Reason     Reason
	Err        error
}

// Status is a consistent read of the dashboard.
type Status struct {
	State       State
	Generation  uint64
	Placeholder string
	Snapshot    *models.WeatherSnapshot
}

type WeatherFetcher interface {
	FetchWeather(ctx context.Context, c models.Coordinate, cityName string) (models.WeatherSnapshot, error)
}

// Dashboard coordinates fetch cycles for one session. Each trigger takes the
// next generation; only the cycle holding the newest generation may replace
// the snapshot.
type Dashboard struct {
	fetcher WeatherFetcher
	tracer  trace.Tracer
	l       *logger.Logger

	mu          sync.Mutex
	state       State
	generation  uint64
	snapshot    *models.WeatherSnapshot
	placeholder string
}

func New(fetcher WeatherFetcher, l *logger.Logger) *Dashboard {
	return &Dashboard{
		fetcher:     fetcher,
		tracer:      otel.Tracer("weather-dashboard/dashboard"),
		l:           l,
		state:       Idle,
		placeholder: render.DefaultPlaceholder,
	}
}

// Locate runs a cycle for a position reported by the browser. The city name
// comes from reverse geocoding.
func (d *Dashboard) Locate(ctx context.Context, c models.Coordinate) Outcome {
	return d.run(ctx, c, "")
}

// Select runs a cycle for a search selection, labelled with its display name.
func (d *Dashboard) Select(ctx context.Context, sel models.CitySelection) Outcome {
	return d.run(ctx, sel.Coordinate, sel.Label)
}

// GeolocationFailed records that the browser could not provide a position.
// The dashboard stays as it is.
func (d *Dashboard) GeolocationFailed(reason string) {
	d.l.Warning("geolocation unavailable", map[string]any{
		"reason": reason,
	})
}

func (d *Dashboard) View() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := Status{
		State:       d.state,
		Generation:  d.generation,
		Placeholder: d.placeholder,
	}
	if d.snapshot != nil {
		snapshot := *d.snapshot
		st.Snapshot = &snapshot
	}

	return st
}

func (d *Dashboard) run(ctx context.Context, c models.Coordinate, cityName string) Outcome {
	d.mu.Lock()
	d.generation++
	gen := d.generation
	d.state = Loading
	d.mu.Unlock()

	ctx, span := d.tracer.Start(ctx, "dashboard.cycle", trace.WithAttributes(
		attribute.Int64("generation", int64(gen)),
	))
	defer span.End()

	d.l.Debug("fetch cycle started", map[string]any{
		"generation": gen,
		"params":     c.RequestParams(),
	})

	snapshot, err := d.fetcher.FetchWeather(ctx, c, cityName)

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation {
		d.l.Info("discarding superseded fetch cycle", map[string]any{
			"generation": gen,
			"newest":     d.generation,
		})
		span.SetAttributes(attribute.String("outcome", string(Superseded)))
		return Outcome{Kind: Superseded, Generation: gen}
	}

	if err != nil {
		if d.snapshot != nil {
			d.state = Ready
		} else {
			d.state = Idle
		}
		reason := classify(err)
		d.l.Error(err, map[string]any{
			"generation": gen,
			"reason":     string(reason),
			"params":     c.RequestParams(),
		})
		span.RecordError(err)
		span.SetAttributes(attribute.String("outcome", string(Failed)))
		return Outcome{Kind: Failed, Generation: gen, Reason: reason, Err: err}
	}

	snapshot.Generation = gen
	d.snapshot = &snapshot
	d.placeholder = snapshot.City
	d.state = Ready

	span.SetAttributes(attribute.String("outcome", string(Applied)))
	d.l.Info("dashboard updated", map[string]any{
		"generation": gen,
		"city":       snapshot.City,
	})

	return Outcome{Kind: Applied, Generation: gen}
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	case errors.Is(err, models.ErrInvalidCoordinate):
		return ReasonInvalid
	case errors.Is(err, repositories.ErrUnexpectedStatus):
		return ReasonStatus
	case errors.Is(err, repositories.ErrMalformedResponse):
		return ReasonDecode
	default:
		return ReasonNetwork
	}
}
