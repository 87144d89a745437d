// Package render formats dashboard data for display.
package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

const (
	iconBaseURL = "https://openweathermap.org/img/wn/"
	defaultIcon = "01d"
)

// FormatTemp rounds to the nearest degree, halves upward, and appends the unit symbol.
func FormatTemp(value float64, unit model.Unit) string {
	return fmt.Sprintf("%d°%s", int(math.Floor(value+0.5)), tempSymbol(unit))
}

func tempSymbol(unit model.Unit) string {
	if unit == model.UnitImperial {
		return "F"
	}
	return "C"
}

// FormatWind shows m/s for metric and mph for imperial.
func FormatWind(speed float64, unit model.Unit) string {
	s := strconv.FormatFloat(speed, 'f', -1, 64)
	if unit == model.UnitImperial {
		return s + " mph"
	}
	return s + " m/s"
}

// IconURL returns the OpenWeatherMap icon image; large selects the @2x variant.
func IconURL(icon string, large bool) string {
	if icon == "" {
		icon = defaultIcon
	}
	if large {
		return iconBaseURL + icon + "@2x.png"
	}
	return iconBaseURL + icon + ".png"
}

// CurrentView is the current-conditions panel.
type CurrentView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	IconURL     string `json:"icon_url"`
	Favorite    bool   `json:"favorite"`
}

// DayCard is one tile of the forecast strip.
type DayCard struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	DayMonth    string `json:"day_month"`
	Max         string `json:"max"`
	Min         string `json:"min"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	IconURL     string `json:"icon_url"`
}

func Current(c model.CurrentConditions, unit model.Unit, favorite bool) CurrentView {
	title := c.City
	if c.Country != "" {
		title += ", " + c.Country
	}
	return CurrentView{
		Title:       title,
		Description: c.Description,
		Temperature: FormatTemp(c.Temperature, unit),
		FeelsLike:   FormatTemp(c.FeelsLike, unit),
		Humidity:    fmt.Sprintf("%d%%", c.Humidity),
		Wind:        FormatWind(c.WindSpeed, unit),
		IconURL:     IconURL(c.Icon, true),
		Favorite:    favorite,
	}
}

func DayCards(days []model.DaySummary, unit model.Unit) []DayCard {
	cards := make([]DayCard, 0, len(days))
	for _, d := range days {
		rep := d.Representative
		cards = append(cards, DayCard{
			Date:        d.Date.Format("2006-01-02"),
			Weekday:     d.Date.Format("Mon"),
			DayMonth:    d.Date.Format("Jan 2"),
			Max:         FormatTemp(d.MaxTemp, unit),
			Min:         FormatTemp(d.MinTemp, unit),
			Description: rep.Condition,
			Humidity:    fmt.Sprintf("%d%%", rep.Humidity),
			IconURL:     IconURL(rep.Icon, false),
		})
	}
	return cards
}
