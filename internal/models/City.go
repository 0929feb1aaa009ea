package models

import "fmt"

// CitySelection is one option of the location search.
type CitySelection struct {
	Label      string     `json:"label" example:"Mumbai, IN"`
	Coordinate Coordinate `json:"coordinate"`
}

func NewCitySelection(name, countryCode string, c Coordinate) CitySelection {
	return CitySelection{
		Label:      fmt.Sprintf("%s, %s", name, countryCode),
		Coordinate: c,
	}
}

// Place is a reverse-geocoding result.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type CityQuery struct {
	NamePrefix string
	CountryIDs string
	Offset     int
	Limit      int
}

type CityPage struct {
	Cities     []CitySelection
	Offset     int
	TotalCount int
}

func (p CityPage) HasMore() bool {
	return p.Offset+len(p.Cities) < p.TotalCount
}
