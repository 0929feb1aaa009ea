// Package render shapes weather data for display. Every function here is pure.
package render

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"weather-dashboard/internal/models"
)

// ForecastDays is the number of forecast entries shown on the card.
const ForecastDays = 7

// FormatTemperature rounds half up to a whole degree: 21.5 is "22°C", -0.5 is "0°C".
func FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%d°C", int(math.Floor(celsius+0.5)))
}

func IconPath(code string) string {
	return "icons/" + code + ".png"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type CurrentCard struct {
	City        string `json:"city" example:"New Delhi"`
	Description string `json:"description" example:"clear sky"`
	Icon        string `json:"icon" example:"icons/01d.png"`
	Temperature string `json:"temperature" example:"22°C"`
	FeelsLike   string `json:"feels_like" example:"21°C"`
	Wind        string `json:"wind" example:"3.1 m/s"`
	Humidity    string `json:"humidity" example:"40%"`
	Pressure    string `json:"pressure" example:"1012 hPa"`
}

func NewCurrentCard(c models.CurrentConditions) CurrentCard {
	return CurrentCard{
		City:        c.City,
		Description: c.Description,
		Icon:        IconPath(c.IconCode),
		Temperature: FormatTemperature(c.TemperatureC),
		FeelsLike:   FormatTemperature(c.FeelsLikeC),
		Wind:        formatNumber(c.WindSpeedMs) + " m/s",
		Humidity:    strconv.Itoa(c.HumidityPct) + "%",
		Pressure:    formatNumber(c.PressureHPa) + " hPa",
	}
}

type ForecastItem struct {
	Day         string `json:"day" example:"Friday"`
	Time        string `json:"time" example:"23:30"`
	Description string `json:"description" example:"few clouds"`
	Icon        string `json:"icon" example:"icons/02d.png"`
	MinMax      string `json:"min_max" example:"22°C / 23°C"`
	Pressure    string `json:"pressure" example:"1011 hPa"`
	Humidity    string `json:"humidity" example:"45%"`
	Clouds      string `json:"clouds" example:"20%"`
	Wind        string `json:"wind" example:"2.4 m/s"`
	FeelsLike   string `json:"feels_like" example:"22°C"`
}

type ForecastCard struct {
	City  string         `json:"city" example:"New Delhi"`
	Items []ForecastItem `json:"items"`
}

// NewForecastCard keeps the first ForecastDays entries in provider order and
// labels them in the city's local time.
func NewForecastCard(f models.ForecastSeries) ForecastCard {
	zone := time.FixedZone("city", f.TimezoneOffset)

	entries := f.Entries
	if len(entries) > ForecastDays {
		entries = entries[:ForecastDays]
	}

	card := ForecastCard{City: f.City, Items: make([]ForecastItem, 0, len(entries))}
	for _, e := range entries {
		local := e.Time.In(zone)
		card.Items = append(card.Items, ForecastItem{
			Day:         local.Weekday().String(),
			Time:        local.Format("15:04"),
			Description: e.Description,
			Icon:        IconPath(e.IconCode),
			MinMax:      FormatTemperature(e.TempMinC) + " / " + FormatTemperature(e.TempMaxC),
			Pressure:    formatNumber(e.PressureHPa) + " hPa",
			Humidity:    strconv.Itoa(e.HumidityPct) + "%",
			Clouds:      strconv.Itoa(e.CloudsPct) + "%",
			Wind:        formatNumber(e.WindSpeedMs) + " m/s",
			FeelsLike:   FormatTemperature(e.FeelsLikeC),
		})
	}

	return card
}

// View is what the dashboard shows for one snapshot.
type View struct {
	Current  CurrentCard  `json:"current"`
	Forecast ForecastCard `json:"forecast"`
}

func NewView(s models.WeatherSnapshot) View {
	return View{
		Current:  NewCurrentCard(s.Current),
		Forecast: NewForecastCard(s.Forecast),
	}
}
