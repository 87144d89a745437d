package model

import "time"

// CurrentConditions is the subset of the current-weather payload the dashboard shows.
type CurrentConditions struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
}

// ForecastSample is one 3-hour forecast data point.
type ForecastSample struct {
	Timestamp     int64   `json:"timestamp"`
	TimestampText string  `json:"timestamp_text"`
	Temperature   float64 `json:"temperature"`
	Humidity      int     `json:"humidity"`
	Condition     string  `json:"condition"`
	Icon          string  `json:"icon"`
}

// Time returns the sample instant in UTC.
func (s ForecastSample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// DaySummary aggregates the samples of one UTC calendar date.
type DaySummary struct {
	Date           time.Time      `json:"date"`
	Representative ForecastSample `json:"representative"`
	MinTemp        float64        `json:"min_temp"`
	MaxTemp        float64        `json:"max_temp"`
}

// WeatherBundle is the joint result of the current and forecast lookups.
type WeatherBundle struct {
	Current         CurrentConditions
	ForecastSamples []ForecastSample
}

// NewCurrentConditions maps the raw /weather payload.
func NewCurrentConditions(data OpenWeatherMapResponse) CurrentConditions {
	current := CurrentConditions{
		City:        data.Name,
		Country:     data.Sys.Country,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		WindSpeed:   data.Wind.Speed,
	}
	if len(data.Weather) > 0 {
		current.Description = data.Weather[0].Description
		current.Icon = data.Weather[0].Icon
	}
	return current
}

// NewForecastSamples maps the raw /forecast list, preserving its order.
func NewForecastSamples(data OpenWeatherMapForecastResponse) []ForecastSample {
	samples := make([]ForecastSample, 0, len(data.List))
	for _, item := range data.List {
		sample := ForecastSample{
			Timestamp:     item.Dt,
			TimestampText: item.DtTxt,
			Temperature:   item.Main.Temp,
			Humidity:      item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			sample.Condition = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	return samples
}
