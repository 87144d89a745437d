package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the measurement system requested from the weather API.
type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

// Valid reports whether u is one of the supported unit systems.
func (u Unit) Valid() bool {
	return u == UnitMetric || u == UnitImperial
}

// ParseUnit accepts "metric" or "imperial" in any case.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("unknown unit %q", s)
	}
	return u, nil
}

// Preferences are the persisted per-user dashboard settings.
type Preferences struct {
	Unit      Unit     `json:"unit"`
	Favorites []string `json:"favorites"`
	LastCity  string   `json:"last_city"`
}

// LocationQuery is either a city name or a coordinate pair.
type LocationQuery struct {
	city      string
	lat, lon  float64
	hasCoords bool
}

func ByCityName(name string) LocationQuery {
	return LocationQuery{city: strings.TrimSpace(name)}
}

func ByCoordinates(lat, lon float64) LocationQuery {
	return LocationQuery{lat: lat, lon: lon, hasCoords: true}
}

// City returns the city name and true for a city query.
func (q LocationQuery) City() (string, bool) {
	return q.city, !q.hasCoords
}

// Coordinates returns the coordinates and true for a coordinate query.
func (q LocationQuery) Coordinates() (lat, lon float64, ok bool) {
	return q.lat, q.lon, q.hasCoords
}

// Valid rejects empty city names and out-of-range coordinates.
func (q LocationQuery) Valid() bool {
	if q.hasCoords {
		return q.lat >= -90 && q.lat <= 90 && q.lon >= -180 && q.lon <= 180
	}
	return q.city != ""
}

// Params returns the OpenWeatherMap location parameters for the query.
func (q LocationQuery) Params() map[string]string {
	if q.hasCoords {
		return map[string]string{
			"lat": strconv.FormatFloat(q.lat, 'f', -1, 64),
			"lon": strconv.FormatFloat(q.lon, 'f', -1, 64),
		}
	}
	return map[string]string{"q": q.city}
}

func (q LocationQuery) String() string {
	if q.hasCoords {
		return fmt.Sprintf("%g,%g", q.lat, q.lon)
	}
	return q.city
}
