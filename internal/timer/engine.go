// Package timer implements the focus/break countdown state machine.
package timer

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the current countdown mode.
type Phase int

// Countdown phases.
const (
	PhaseFocus Phase = iota
	PhaseBreak
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseFocus:
		return "focus"
	case PhaseBreak:
		return "break"
	default:
		return "unknown"
	}
}

// ClearDelay is how long the session-complete flag stays visible before the
// host-scheduled clear fires.
const ClearDelay = 3 * time.Second

// ErrInvalidConfig reports a non-positive duration.
var ErrInvalidConfig = errors.New("invalid config")

// Engine owns the countdown state. It is driven externally: the host calls
// Tick once per elapsed second while the engine is running, and schedules a
// one-shot ClearCompleted call ClearDelay after each completion. All methods
// are synchronous and expect a single logical thread of control.
type Engine struct {
	phase        Phase
	remaining    int // seconds
	running      bool
	focusMinutes int
	breakMinutes int

	completed bool
	// completionSeq increments on every completion edge. A pending scheduled
	// clear carries the sequence it was issued for; ClearCompleted ignores
	// stale sequences, so a clear superseded by Reset or a newer completion
	// can never wipe a fresh flag.
	completionSeq int
}

// New returns an idle engine in the focus phase with a full countdown.
func New(focusMinutes, breakMinutes int) (*Engine, error) {
	e := &Engine{}
	if err := e.Configure(focusMinutes, breakMinutes); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure sets the phase durations. When the engine is idle in the focus
// phase the countdown is reseeded immediately; otherwise the new durations
// take effect on the next reset or phase transition.
func (e *Engine) Configure(focusMinutes, breakMinutes int) error {
	if focusMinutes <= 0 {
		return fmt.Errorf("%w: focus duration must be positive, got %d", ErrInvalidConfig, focusMinutes)
	}
	if breakMinutes <= 0 {
		return fmt.Errorf("%w: break duration must be positive, got %d", ErrInvalidConfig, breakMinutes)
	}
	e.focusMinutes = focusMinutes
	e.breakMinutes = breakMinutes
	if !e.running && e.phase == PhaseFocus {
		e.remaining = focusMinutes * 60
	}
	return nil
}

// Start resumes the countdown. No-op if already running.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.completed = false
}

// Pause stops the countdown without touching phase or remaining time.
func (e *Engine) Pause() {
	e.running = false
}

// Reset stops the countdown and returns to a full focus phase.
func (e *Engine) Reset() {
	e.running = false
	e.phase = PhaseFocus
	e.remaining = e.focusMinutes * 60
	e.completed = false
}

// Tick advances the countdown by one second. No-op while paused. When the
// countdown reaches zero the phase flips, the new phase's duration is
// loaded, the engine stops, and the session-complete flag is raised; the
// host must call Start again to begin the next phase.
func (e *Engine) Tick() {
	if !e.running {
		return
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return
	}
	if e.phase == PhaseFocus {
		e.phase = PhaseBreak
		e.remaining = e.breakMinutes * 60
	} else {
		e.phase = PhaseFocus
		e.remaining = e.focusMinutes * 60
	}
	e.running = false
	e.completed = true
	e.completionSeq++
}

// ClearCompleted lowers the session-complete flag if token still identifies
// the latest completion. Stale tokens are ignored.
func (e *Engine) ClearCompleted(token int) {
	if token != e.completionSeq {
		return
	}
	e.completed = false
}

// CompletionToken identifies the latest completion for scheduling its clear.
func (e *Engine) CompletionToken() int {
	return e.completionSeq
}

// ProgressPercent reports how far the current phase has advanced, 0-100.
func (e *Engine) ProgressPercent() float64 {
	total := e.phaseDuration() * 60
	if total <= 0 {
		return 0
	}
	pct := float64(total-e.remaining) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Remaining returns the seconds left in the current phase.
func (e *Engine) Remaining() int {
	return e.remaining
}

// Running reports whether ticks currently advance the countdown.
func (e *Engine) Running() bool {
	return e.running
}

// SessionJustCompleted reports whether a phase finished within the current
// display window.
func (e *Engine) SessionJustCompleted() bool {
	return e.completed
}

// FocusMinutes returns the configured focus duration.
func (e *Engine) FocusMinutes() int {
	return e.focusMinutes
}

// BreakMinutes returns the configured break duration.
func (e *Engine) BreakMinutes() int {
	return e.breakMinutes
}

func (e *Engine) phaseDuration() int {
	if e.phase == PhaseBreak {
		return e.breakMinutes
	}
	return e.focusMinutes
}
