package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-dashboard/docs"
	"weather-dashboard/internal/services/dashboard"
	"weather-dashboard/internal/services/session"
	"weather-dashboard/pkg/logger"
)

// SessionCookie carries the session id between page loads and API calls.
const SessionCookie = "wd_session"

const (
	sessionKey  = "session"
	iconBaseURL = "https://openweathermap.org/img/wn"
)

type routes struct {
	title         string
	secureCookies bool
	sessions      *session.Manager
	fetcher       dashboard.WeatherFetcher
	l             *logger.Logger
}

func NewRouter(
	app *fiber.App,
	title string,
	secureCookies bool,
	sessions *session.Manager,
	fetcher dashboard.WeatherFetcher,
	l *logger.Logger,
) {
	r := &routes{
		title:         title,
		secureCookies: secureCookies,
		sessions:      sessions,
		fetcher:       fetcher,
		l:             l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/icons/:icon", r.handleIcon)

	app.Get("/", r.withSession, r.handlePage)

	api := app.Group("/api/v1")
	api.Get("/weather", r.handleWeather)

	api.Get("/dashboard", r.withSession, r.handleDashboard)
	api.Post("/location", r.withSession, r.handleLocation)
	api.Post("/location/denied", r.withSession, r.handleLocationDenied)
	api.Post("/selection", r.withSession, r.handleSelection)
	api.Get("/cities", r.withSession, r.handleCities)
}

// withSession attaches the caller's session, issuing a new cookie when the
// presented one is missing or expired.
func (r *routes) withSession(c *fiber.Ctx) error {
	id := c.Cookies(SessionCookie)
	s := r.sessions.GetOrCreate(id)

	if s.ID != id {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    s.ID,
			Path:     "/",
			HTTPOnly: true,
			Secure:   r.secureCookies,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	c.Locals(sessionKey, s)

	return c.Next()
}

func sessionFrom(c *fiber.Ctx) *session.Session {
	return c.Locals(sessionKey).(*session.Session)
}
