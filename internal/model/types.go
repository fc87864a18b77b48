// Package model defines shared data structures.
package model

import "time"

// Config defines the widget's runtime settings.
type Config struct {
	FocusMinutes int
	BreakMinutes int
	DailyGoalMl  int
	SipMl        int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since *time.Time
	Last  int
}

// SessionRecord captures one finished countdown for the history log.
type SessionRecord struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Phase          string
	PlannedSeconds int
	Completed      bool
}

// IntakeRecord captures one logged drink.
type IntakeRecord struct {
	At       time.Time
	AmountMl int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID      int64
	EndedAt        time.Time
	Phase          string
	PlannedSeconds int
	Completed      bool
}

// DayAggregate summarizes one calendar day.
type DayAggregate struct {
	Day           string // YYYY-MM-DD
	FocusSessions int
	FocusSeconds  int
	IntakeMl      int
}

// TodayTotals holds the running totals for the current day, used to seed
// the widget at startup.
type TodayTotals struct {
	FocusSessions int
	IntakeMl      int
}
