package http

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/render"
	"weather-dashboard/internal/services/dashboard"
	"weather-dashboard/internal/services/search"
)

var validate = validator.New()

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat"`
}

// DashboardResponse is the current dashboard of the caller's session.
// SnapshotGeneration is the cycle that produced View, 0 when there is none.
type DashboardResponse struct {
	State              string       `json:"state" example:"ready"`
	Generation         uint64       `json:"generation" example:"3"`
	SnapshotGeneration uint64       `json:"snapshot_generation" example:"2"`
	Placeholder        string       `json:"placeholder" example:"Mumbai, IN"`
	View               *render.View `json:"view,omitempty"`
}

// CycleResponse reports one fetch cycle together with the dashboard after it
type CycleResponse struct {
	Outcome         string `json:"outcome" example:"applied"`
	Reason          string `json:"reason,omitempty" example:"network"`
	CycleGeneration uint64 `json:"cycle_generation" example:"3"`
	DashboardResponse
}

// CityOption is one entry of the search dropdown
type CityOption struct {
	Value string `json:"value" example:"19.076 72.8777"`
	Label string `json:"label" example:"Mumbai, IN"`
}

// CitiesResponse represents the options loaded for a query so far
type CitiesResponse struct {
	Query      string       `json:"query" example:"Mum"`
	Options    []CityOption `json:"options"`
	HasMore    bool         `json:"has_more" example:"true"`
	Superseded bool         `json:"superseded" example:"false"`
}

// WeatherResponse represents the rendered weather for a coordinate
type WeatherResponse struct {
	Latitude  float64     `json:"latitude" example:"28.6139"`
	Longitude float64     `json:"longitude" example:"77.209"`
	City      string      `json:"city" example:"New Delhi"`
	View      render.View `json:"view"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type geolocationErrorRequest struct {
	Message string `json:"message" validate:"max=512"`
}

type selectionRequest struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label" validate:"required,max=256"`
}

type citiesQuery struct {
	Query string `validate:"required,max=100"`
	More  bool
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, "Missing required field: "+field)
		case "gte", "lte":
			msgs = append(msgs, "Field "+field+" is out of range")
		default:
			msgs = append(msgs, "Invalid field: "+field)
		}
	}

	return strings.Join(msgs, "; ")
}

func newDashboardResponse(st dashboard.Status) DashboardResponse {
	resp := DashboardResponse{
		State:       st.State.String(),
		Generation:  st.Generation,
		Placeholder: st.Placeholder,
	}
	if st.Snapshot != nil {
		view := render.NewView(*st.Snapshot)
		resp.View = &view
		resp.SnapshotGeneration = st.Snapshot.Generation
	}
	return resp
}

func newCycleResponse(o dashboard.Outcome, st dashboard.Status) CycleResponse {
	return CycleResponse{
		Outcome:           string(o.Kind),
		Reason:            string(o.Reason),
		CycleGeneration:   o.Generation,
		DashboardResponse: newDashboardResponse(st),
	}
}

// handlePage renders the dashboard document
func (r *routes) handlePage(c *fiber.Ctx) error {
	s := sessionFrom(c)
	st := s.Dashboard.View()

	page := render.Page{Title: r.title, Placeholder: st.Placeholder}
	if st.Snapshot != nil {
		view := render.NewView(*st.Snapshot)
		page.View = &view
		page.SnapshotGeneration = st.Snapshot.Generation
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return render.WritePage(c, page)
}

// GetDashboard godoc
// @Summary Get dashboard
// @Description Returns the state, search placeholder and rendered weather of the caller's session
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse "Successful response"
// @Router /api/v1/dashboard [get]
func (r *routes) handleDashboard(c *fiber.Ctx) error {
	return c.JSON(newDashboardResponse(sessionFrom(c).Dashboard.View()))
}

// ReportLocation godoc
// @Summary Report geolocation
// @Description Starts a fetch cycle for the position reported by the browser. The city name is resolved by reverse geocoding.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body locationRequest true "Browser position"
// @Success 200 {object} CycleResponse "Cycle outcome and resulting dashboard"
// @Failure 400 {object} ErrorResponse "Bad request - invalid coordinates"
// @Router /api/v1/location [post]
func (r *routes) handleLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: validationMessage(err),
		})
	}

	d := sessionFrom(c).Dashboard
	outcome := d.Locate(c.UserContext(), models.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude})

	return c.JSON(newCycleResponse(outcome, d.View()))
}

// ReportLocationDenied godoc
// @Summary Report geolocation failure
// @Description Records that the browser could not provide a position. The dashboard is left unchanged.
// @Tags Dashboard
// @Accept json
// @Param request body geolocationErrorRequest false "Browser error message"
// @Success 204 "Recorded"
// @Router /api/v1/location/denied [post]
func (r *routes) handleLocationDenied(c *fiber.Ctx) error {
	var req geolocationErrorRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid request body",
			})
		}
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: validationMessage(err),
		})
	}

	sessionFrom(c).Dashboard.GeolocationFailed(req.Message)

	return c.SendStatus(fiber.StatusNoContent)
}

// SelectCity godoc
// @Summary Select a searched city
// @Description Starts a fetch cycle for a search option. The option label is used as the city name.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body selectionRequest true "Selected option"
// @Success 200 {object} CycleResponse "Cycle outcome and resulting dashboard"
// @Failure 400 {object} ErrorResponse "Bad request - malformed option value"
// @Router /api/v1/selection [post]
func (r *routes) handleSelection(c *fiber.Ctx) error {
	var req selectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: validationMessage(err),
		})
	}

	coord, err := models.ParseCoordinate(req.Value)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid option value, expected \"<lat> <lon>\"",
		})
	}

	d := sessionFrom(c).Dashboard
	outcome := d.Select(c.UserContext(), models.CitySelection{Label: req.Label, Coordinate: coord})

	return c.JSON(newCycleResponse(outcome, d.View()))
}

// SearchCities godoc
// @Summary Search cities
// @Description Typeahead city search. New queries are debounced per session; more=true loads the next page of the same query.
// @Tags Search
// @Produce json
// @Param q query string true "City name prefix" example(Mum)
// @Param more query boolean false "Load the next page of the same query"
// @Success 200 {object} CitiesResponse "Options loaded so far, or superseded=true when a newer query replaced this one"
// @Failure 400 {object} ErrorResponse "Bad request - missing query"
// @Failure 502 {object} ErrorResponse "City directory unavailable"
// @Router /api/v1/cities [get]
func (r *routes) handleCities(c *fiber.Ctx) error {
	q := citiesQuery{
		Query: strings.TrimSpace(c.Query("q")),
		More:  c.QueryBool("more", false),
	}
	if err := validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: q",
		})
	}

	res, err := sessionFrom(c).Searcher.Search(c.UserContext(), q.Query, q.More)
	if search.IsSuperseded(err) || errors.Is(err, search.ErrStopped) {
		return c.JSON(CitiesResponse{Query: q.Query, Options: []CityOption{}, Superseded: true})
	}
	if err != nil {
		r.l.Error(err, map[string]any{
			"query": q.Query,
			"more":  q.More,
		})
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Failed to search cities",
		})
	}

	resp := CitiesResponse{
		Query:   res.Query,
		Options: make([]CityOption, 0, len(res.Options)),
		HasMore: res.HasMore,
	}
	for _, opt := range res.Options {
		resp.Options = append(resp.Options, CityOption{Value: opt.Coordinate.Value(), Label: opt.Label})
	}

	return c.JSON(resp)
}

// GetWeather godoc
// @Summary Get weather for a coordinate
// @Description Fetches current conditions and forecast for a coordinate without touching session state
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(28.6139)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(77.209)
// @Param city query string false "Display name; skips reverse geocoding when set" example(New Delhi)
// @Success 200 {object} WeatherResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 502 {object} ErrorResponse "Weather provider unavailable"
// @Router /api/v1/weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/v1/weather?lat=28.6139&lon=77.209"
func (r *routes) handleWeather(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lon := c.Query("lon")

	if lat == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: lat",
		})
	}

	if lon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: lon",
		})
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid latitude format",
		})
	}

	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid longitude format",
		})
	}

	coord := models.Coordinate{Latitude: latFloat, Longitude: lonFloat}
	if err := coord.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Latitude must be between -90 and 90 and longitude between -180 and 180",
		})
	}

	snapshot, err := r.fetcher.FetchWeather(c.UserContext(), coord, strings.TrimSpace(c.Query("city")))
	if err != nil {
		r.l.Error(err, map[string]any{
			"lat": latFloat,
			"lon": lonFloat,
		})

		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Failed to fetch weather data",
		})
	}

	return c.JSON(WeatherResponse{
		Latitude:  latFloat,
		Longitude: lonFloat,
		City:      snapshot.City,
		View:      render.NewView(snapshot),
	})
}

// handleIcon sends the browser to the provider's icon for a condition code
func (r *routes) handleIcon(c *fiber.Ctx) error {
	code := strings.TrimSuffix(c.Params("icon"), ".png")
	if code == "" || strings.ContainsAny(code, "/.?#") {
		return fiber.ErrNotFound
	}

	return c.Redirect(iconBaseURL+"/"+code+"@2x.png", fiber.StatusFound)
}
