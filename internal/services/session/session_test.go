package session_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/search"
	"weather-dashboard/internal/services/session"
	"weather-dashboard/pkg/logger"
)

type MockFetcher struct{}

func (MockFetcher) FetchWeather(ctx context.Context, c models.Coordinate, cityName string) (models.WeatherSnapshot, error) {
	return models.NewWeatherSnapshot(cityName, c, models.CurrentConditions{}, models.ForecastSeries{}), nil
}

type MockCityRepository struct{}

func (MockCityRepository) FindCities(ctx context.Context, q models.CityQuery) (models.CityPage, error) {
	return models.CityPage{}, nil
}

func newManager() *session.Manager {
	return session.NewManager(MockFetcher{}, MockCityRepository{}, session.Options{
		CountryIDs: "IN",
		Debounce:   time.Second,
	}, logger.NewZapLogger("test-app", io.Discard))
}

func TestManager_GetOrCreate(t *testing.T) {
	m := newManager()
	defer m.Close()

	s := m.GetOrCreate("")
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.NotNil(t, s.Dashboard)
	assert.NotNil(t, s.Searcher)

	again := m.GetOrCreate(s.ID)
	assert.Same(t, s, again)

	other := m.GetOrCreate("not-a-known-id")
	assert.NotEqual(t, s.ID, other.ID, "unknown ids are never adopted")
	assert.Equal(t, 2, m.Len())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := newManager()
	defer m.Close()

	a := m.GetOrCreate("")
	b := m.GetOrCreate("")

	outcome := a.Dashboard.Select(context.Background(), models.NewCitySelection("Delhi", "IN", models.Coordinate{Latitude: 28.6, Longitude: 77.2}))
	require.Equal(t, "applied", string(outcome.Kind))

	assert.NotNil(t, a.Dashboard.View().Snapshot)
	assert.Nil(t, b.Dashboard.View().Snapshot)
}

func TestManager_Sweep(t *testing.T) {
	m := newManager()
	defer m.Close()

	idle := m.GetOrCreate("")

	pending := make(chan error, 1)
	go func() {
		_, err := idle.Searcher.Search(context.Background(), "Del", false)
		pending <- err
	}()

	time.Sleep(30 * time.Millisecond)
	active := m.GetOrCreate("")

	removed := m.Sweep(20 * time.Millisecond)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())
	assert.Same(t, active, m.GetOrCreate(active.ID))
	assert.NotSame(t, idle, m.GetOrCreate(idle.ID), "swept session is not resumed")

	select {
	case err := <-pending:
		assert.ErrorIs(t, err, search.ErrStopped)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("pending search was not stopped by the sweep")
	}
}

func TestManager_Close(t *testing.T) {
	m := newManager()

	s := m.GetOrCreate("")
	m.Close()

	assert.Equal(t, 0, m.Len())
	_, err := s.Searcher.Search(context.Background(), "Pune", false)
	assert.ErrorIs(t, err, search.ErrStopped)
}
