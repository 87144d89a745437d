package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit(" Imperial ")
	assert.NoError(t, err)
	assert.Equal(t, UnitImperial, u)

	_, err = ParseUnit("kelvin")
	assert.Error(t, err)
}

func TestLocationQuery(t *testing.T) {
	city := ByCityName("  São Paulo ")
	name, ok := city.City()
	assert.True(t, ok)
	assert.Equal(t, "São Paulo", name)
	assert.True(t, city.Valid())
	assert.Equal(t, map[string]string{"q": "São Paulo"}, city.Params())

	coords := ByCoordinates(-33.8688, 151.2093)
	_, ok = coords.City()
	assert.False(t, ok)
	assert.True(t, coords.Valid())
	assert.Equal(t, map[string]string{"lat": "-33.8688", "lon": "151.2093"}, coords.Params())
	assert.Equal(t, "-33.8688,151.2093", coords.String())

	assert.False(t, ByCityName("").Valid())
	assert.False(t, ByCoordinates(0, 181).Valid())
}

func TestNewForecastSamples_KeepsOrder(t *testing.T) {
	var resp OpenWeatherMapForecastResponse
	resp.List = []OpenWeatherMapForecastItem{
		{Dt: 1, DtTxt: "2024-01-01 00:00:00", Weather: []OpenWeatherMapCondition{{Description: "mist", Icon: "50n"}}},
		{Dt: 2, DtTxt: "2024-01-01 03:00:00"},
	}
	samples := NewForecastSamples(resp)
	assert.Len(t, samples, 2)
	assert.Equal(t, int64(1), samples[0].Timestamp)
	assert.Equal(t, "mist", samples[0].Condition)
	assert.Equal(t, "", samples[1].Icon)
}

func TestNewCurrentConditions_NoWeather(t *testing.T) {
	var resp OpenWeatherMapResponse
	resp.Name = "Reykjavik"
	resp.Sys.Country = "IS"
	c := NewCurrentConditions(resp)
	assert.Equal(t, "Reykjavik", c.City)
	assert.Equal(t, "IS", c.Country)
	assert.Empty(t, c.Description)
}
