// Package hydration tracks daily water intake against an expected pace.
package hydration

import (
	"errors"
	"fmt"
	"time"
)

// Pace heuristic constants. The active window runs 06:00-22:00; no reminder
// fires before 08:00, and intake may lag the expected pace by 20% before
// the reminder raises.
const (
	windowStartHour   = 6
	windowHours       = 16
	reminderStartHour = 8
	graceFactor       = 0.8
)

// Validation errors.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Tracker owns the daily goal, accumulated intake, and the derived
// behind-pace reminder flag. The flag is recomputed on every mutation and
// may be re-evaluated periodically via EvaluateReminder; it is never set
// any other way.
type Tracker struct {
	goalMl   int
	intakeMl int
	reminder bool

	now func() time.Time
}

// New returns a tracker with zero intake for the given daily goal.
func New(goalMl int) (*Tracker, error) {
	t := &Tracker{now: time.Now}
	if err := t.SetDailyGoal(goalMl); err != nil {
		return nil, err
	}
	return t, nil
}

// SetDailyGoal changes the daily goal and recomputes the reminder.
func (t *Tracker) SetDailyGoal(ml int) error {
	if ml <= 0 {
		return fmt.Errorf("%w: daily goal must be positive, got %d", ErrInvalidConfig, ml)
	}
	t.goalMl = ml
	t.EvaluateReminder(t.now().Hour())
	return nil
}

// AddIntake records a drink and recomputes the reminder.
func (t *Tracker) AddIntake(ml int) error {
	if ml <= 0 {
		return fmt.Errorf("%w: intake must be positive, got %d", ErrInvalidAmount, ml)
	}
	t.intakeMl += ml
	t.EvaluateReminder(t.now().Hour())
	return nil
}

// EvaluateReminder recomputes the behind-pace flag for the given hour of
// day and returns it. Expected intake grows linearly from 06:00 over a
// 16-hour window; hours past 22:00 keep growing the expectation rather
// than capping it.
func (t *Tracker) EvaluateReminder(hourOfDay int) bool {
	elapsed := hourOfDay - windowStartHour
	if elapsed < 0 {
		elapsed = 0
	}
	expected := float64(t.goalMl) / windowHours * float64(elapsed)
	t.reminder = hourOfDay >= reminderStartHour && float64(t.intakeMl) < expected*graceFactor
	return t.reminder
}

// IntakePercent reports progress toward the daily goal, capped at 100.
func (t *Tracker) IntakePercent() float64 {
	if t.goalMl <= 0 {
		return 0
	}
	pct := float64(t.intakeMl) / float64(t.goalMl) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// RemainingMl reports how much is left to reach the goal, floored at zero.
func (t *Tracker) RemainingMl() int {
	if t.intakeMl >= t.goalMl {
		return 0
	}
	return t.goalMl - t.intakeMl
}

// GoalMet reports whether the daily goal has been reached.
func (t *Tracker) GoalMet() bool {
	return t.intakeMl >= t.goalMl
}

// ReminderActive reports the behind-pace flag from the last evaluation.
func (t *Tracker) ReminderActive() bool {
	return t.reminder
}

// Intake returns the accumulated intake in ml.
func (t *Tracker) Intake() int {
	return t.intakeMl
}

// DailyGoal returns the configured goal in ml.
func (t *Tracker) DailyGoal() int {
	return t.goalMl
}
