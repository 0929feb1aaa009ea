package models_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
)

func TestParseCoordinate(t *testing.T) {
	c, err := models.ParseCoordinate("19.0760 72.8777")
	require.NoError(t, err)
	assert.Equal(t, 19.076, c.Latitude)
	assert.Equal(t, 72.8777, c.Longitude)

	c, err = models.ParseCoordinate("  -33.86   151.2 ")
	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Latitude: -33.86, Longitude: 151.2}, c)
}

func TestParseCoordinate_Invalid(t *testing.T) {
	cases := []string{"", "19.07", "a b", "19.07 x", "91 10", "10 181", "1 2 3"}
	for _, value := range cases {
		_, err := models.ParseCoordinate(value)
		assert.Truef(t, errors.Is(err, models.ErrInvalidCoordinate), "value %q", value)
	}
}

func TestCoordinateValueRoundTrip(t *testing.T) {
	c := models.Coordinate{Latitude: 28.6139, Longitude: 77.209}
	assert.Equal(t, "28.6139 77.209", c.Value())

	parsed, err := models.ParseCoordinate(c.Value())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestNewCitySelection(t *testing.T) {
	sel := models.NewCitySelection("Mumbai", "IN", models.Coordinate{Latitude: 19.076, Longitude: 72.8777})
	assert.Equal(t, "Mumbai, IN", sel.Label)
	assert.Equal(t, "19.076 72.8777", sel.Coordinate.Value())
}

func TestCityPage_HasMore(t *testing.T) {
	page := models.CityPage{Cities: make([]models.CitySelection, 5), Offset: 0, TotalCount: 12}
	assert.True(t, page.HasMore())

	page.Offset = 10
	page.Cities = page.Cities[:2]
	assert.False(t, page.HasMore())
}

func TestNewWeatherSnapshot_StampsCity(t *testing.T) {
	current := models.CurrentConditions{City: "stale", Description: "clear sky"}
	forecast := models.ForecastSeries{City: "other", Entries: []models.ForecastEntry{{Description: "rain"}}}

	snap := models.NewWeatherSnapshot("New Delhi", models.Coordinate{Latitude: 28.6, Longitude: 77.2}, current, forecast)

	assert.Equal(t, "New Delhi", snap.City)
	assert.Equal(t, "New Delhi", snap.Current.City)
	assert.Equal(t, "New Delhi", snap.Forecast.City)
	assert.False(t, snap.FetchedAt.IsZero())
}
