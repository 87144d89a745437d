// Package forecast turns the 3-hourly forecast series into daily summaries.
package forecast

import (
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// DefaultMaxDays is the number of day summaries the dashboard shows.
const DefaultMaxDays = 5

// representativeTime marks the sample chosen to stand for its day.
const representativeTime = "12:00:00"

// Aggregator groups samples by UTC calendar date. MaxDays <= 0 means DefaultMaxDays.
type Aggregator struct {
	MaxDays int
}

// Aggregate summarizes samples with the default day cap.
func Aggregate(samples []model.ForecastSample) []model.DaySummary {
	return Aggregator{}.Aggregate(samples)
}

// Aggregate summarizes samples, which must be in non-decreasing timestamp
// order: days are emitted in the order their first sample appears, so
// chronological input yields ascending dates.
func (a Aggregator) Aggregate(samples []model.ForecastSample) []model.DaySummary {
	maxDays := a.MaxDays
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}

	days := groupByDay(samples)
	if len(days.order) > maxDays {
		days.order = days.order[:maxDays]
	}

	summaries := make([]model.DaySummary, 0, len(days.order))
	for _, date := range days.order {
		summaries = append(summaries, summarize(date, days.groups[date]))
	}
	return summaries
}

// dayIndex is a map of day groups that remembers key insertion order.
type dayIndex struct {
	order  []time.Time
	groups map[time.Time][]model.ForecastSample
}

func groupByDay(samples []model.ForecastSample) dayIndex {
	idx := dayIndex{groups: make(map[time.Time][]model.ForecastSample)}
	for _, s := range samples {
		date := dateOf(s)
		if _, ok := idx.groups[date]; !ok {
			idx.order = append(idx.order, date)
		}
		idx.groups[date] = append(idx.groups[date], s)
	}
	return idx
}

func dateOf(s model.ForecastSample) time.Time {
	ts := s.Time()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// summarize requires a non-empty group.
func summarize(date time.Time, group []model.ForecastSample) model.DaySummary {
	summary := model.DaySummary{
		Date:           date,
		Representative: representative(group),
		MinTemp:        group[0].Temperature,
		MaxTemp:        group[0].Temperature,
	}
	for _, s := range group[1:] {
		if s.Temperature < summary.MinTemp {
			summary.MinTemp = s.Temperature
		}
		if s.Temperature > summary.MaxTemp {
			summary.MaxTemp = s.Temperature
		}
	}
	return summary
}

// representative picks the noon sample, or the earliest one when the day has none.
func representative(group []model.ForecastSample) model.ForecastSample {
	for _, s := range group {
		if strings.Contains(s.TimestampText, representativeTime) {
			return s
		}
	}
	return group[0]
}
