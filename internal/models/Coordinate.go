package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

type Coordinate struct {
	Latitude  float64 `json:"latitude" example:"28.6139"`
	Longitude float64 `json:"longitude" example:"77.209"`
}

// ParseCoordinate parses a search option value of the form "<lat> <lon>".
func ParseCoordinate(value string) (Coordinate, error) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: expected \"<lat> <lon>\", got %q", ErrInvalidCoordinate, value)
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinate, parts[0])
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinate, parts[1])
	}

	c := Coordinate{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinate)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinate)
	}
	return nil
}

// Value is the inverse of ParseCoordinate.
func (c Coordinate) Value() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + " " + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

func (c Coordinate) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Latitude, c.Longitude)
}
