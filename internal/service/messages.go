package service

import (
	"errors"

	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
)

const (
	MsgConfiguration  = "Please set your OpenWeatherMap API key (OPENWEATHERMAP_API_KEY) before using the dashboard."
	MsgInvalidQuery   = "Please enter a city name or valid coordinates."
	MsgFetchFailed    = "Could not fetch weather data. Check the city name or try again later."
	MsgLocationFailed = "Unable to fetch weather for your location. Try searching by city."
	MsgStaleResponse  = "A newer search replaced this one."
)

// UserMessage converts a lookup error into the single status line shown to
// the user. Network and API failures read the same; status codes stay in logs.
func UserMessage(err error, byCoordinates bool) string {
	switch {
	case errors.Is(err, repository.ErrConfiguration):
		return MsgConfiguration
	case errors.Is(err, repository.ErrInvalidQuery), errors.Is(err, ErrEmptyCity):
		return MsgInvalidQuery
	case errors.Is(err, ErrStaleResponse):
		return MsgStaleResponse
	case byCoordinates:
		return MsgLocationFailed
	default:
		return MsgFetchFailed
	}
}
