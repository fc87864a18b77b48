// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"pomoflow/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates the history log across days.
type Summary struct {
	Days              int
	FocusSessions     int
	FocusSeconds      int
	IntakeMl          int
	AvgFocusMinutes   float64
	AvgIntakeMl       float64
	BestFocusDay      string
	BestFocusSessions int
}

// Summarize computes totals and per-day averages over day aggregates.
func Summarize(days []model.DayAggregate) Summary {
	var sum Summary
	sum.Days = len(days)
	for _, day := range days {
		sum.FocusSessions += day.FocusSessions
		sum.FocusSeconds += day.FocusSeconds
		sum.IntakeMl += day.IntakeMl
		if day.FocusSessions > sum.BestFocusSessions {
			sum.BestFocusSessions = day.FocusSessions
			sum.BestFocusDay = day.Day
		}
	}
	if sum.Days > 0 {
		sum.AvgFocusMinutes = float64(sum.FocusSeconds) / 60.0 / float64(sum.Days)
		sum.AvgIntakeMl = float64(sum.IntakeMl) / float64(sum.Days)
	}
	return sum
}

// FocusMinutesSeries extracts per-day focus minutes for plotting.
func FocusMinutesSeries(days []model.DayAggregate) []float64 {
	out := make([]float64, len(days))
	for i, day := range days {
		out[i] = float64(day.FocusSeconds) / 60.0
	}
	return out
}

// IntakeSeries extracts per-day intake in ml for plotting.
func IntakeSeries(days []model.DayAggregate) []float64 {
	out := make([]float64, len(days))
	for i, day := range days {
		out[i] = float64(day.IntakeMl)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
