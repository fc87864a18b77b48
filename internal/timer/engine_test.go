package timer

import (
	"errors"
	"testing"
)

func TestNewStartsIdleInFocus(t *testing.T) {
	e, err := New(25, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.Phase() != PhaseFocus {
		t.Fatalf("expected focus phase, got %v", e.Phase())
	}
	if e.Remaining() != 25*60 {
		t.Fatalf("expected %d seconds, got %d", 25*60, e.Remaining())
	}
	if e.Running() {
		t.Fatal("expected idle engine")
	}
}

func TestNewRejectsNonPositiveDurations(t *testing.T) {
	cases := []struct {
		name       string
		focus, brk int
	}{
		{name: "zero focus", focus: 0, brk: 5},
		{name: "negative focus", focus: -1, brk: 5},
		{name: "zero break", focus: 25, brk: 0},
		{name: "negative break", focus: 25, brk: -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.focus, tc.brk); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigureReseedsOnlyWhenIdleInFocus(t *testing.T) {
	e, err := New(25, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Configure(10, 5); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if e.Remaining() != 10*60 {
		t.Fatalf("idle focus should reseed, got %d", e.Remaining())
	}

	e.Start()
	e.Tick()
	before := e.Remaining()
	if err := e.Configure(50, 5); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if e.Remaining() != before {
		t.Fatalf("running configure must not touch remaining: got %d, want %d", e.Remaining(), before)
	}
}

func TestConfigureInvalidLeavesStateUnchanged(t *testing.T) {
	e, err := New(25, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Configure(0, 5); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if e.FocusMinutes() != 25 || e.BreakMinutes() != 5 {
		t.Fatalf("durations changed after failed configure: %d/%d", e.FocusMinutes(), e.BreakMinutes())
	}
	if e.Remaining() != 25*60 {
		t.Fatalf("remaining changed after failed configure: %d", e.Remaining())
	}
}

func TestTickIsNoopWhilePaused(t *testing.T) {
	e, err := New(25, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		e.Tick()
	}
	if e.Remaining() != 25*60 {
		t.Fatalf("paused ticks changed remaining: %d", e.Remaining())
	}
	if e.Phase() != PhaseFocus {
		t.Fatalf("paused ticks changed phase: %v", e.Phase())
	}
}

func TestCompletionFlipsPhaseAndStops(t *testing.T) {
	e, err := New(1, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	if e.Phase() != PhaseBreak {
		t.Fatalf("expected break phase after completion, got %v", e.Phase())
	}
	if e.Remaining() != 5*60 {
		t.Fatalf("expected break countdown loaded, got %d", e.Remaining())
	}
	if e.Running() {
		t.Fatal("engine must stop on completion")
	}
	if !e.SessionJustCompleted() {
		t.Fatal("expected session-complete flag raised")
	}
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	e, err := New(1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	if e.Phase() != PhaseFocus {
		t.Fatalf("expected focus phase after break completion, got %v", e.Phase())
	}
	if e.Remaining() != 60 {
		t.Fatalf("expected focus countdown loaded, got %d", e.Remaining())
	}
}

func TestClearCompleted(t *testing.T) {
	e, err := New(1, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	token := e.CompletionToken()
	e.ClearCompleted(token)
	if e.SessionJustCompleted() {
		t.Fatal("expected flag cleared")
	}
}

func TestStaleClearDoesNotTouchNewCompletion(t *testing.T) {
	e, err := New(1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	stale := e.CompletionToken()

	// Second completion before the first clear fires.
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	e.ClearCompleted(stale)
	if !e.SessionJustCompleted() {
		t.Fatal("stale clear must not wipe a fresh completion")
	}
	e.ClearCompleted(e.CompletionToken())
	if e.SessionJustCompleted() {
		t.Fatal("current clear should wipe the flag")
	}
}

func TestResetSupersedesPendingClear(t *testing.T) {
	e, err := New(1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	pending := e.CompletionToken()
	e.Reset()
	if e.SessionJustCompleted() {
		t.Fatal("reset must clear the flag")
	}
	if e.Phase() != PhaseFocus || e.Remaining() != 60 {
		t.Fatalf("reset state wrong: phase=%v remaining=%d", e.Phase(), e.Remaining())
	}

	// The pending clear fires after a new completion; it must be inert.
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	e.ClearCompleted(pending)
	if !e.SessionJustCompleted() {
		t.Fatal("clear pending from before reset wiped a new completion")
	}
}

func TestProgressMonotonicWhileRunning(t *testing.T) {
	e, err := New(1, 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	prev := e.ProgressPercent()
	for i := 0; i < 59; i++ {
		e.Tick()
		cur := e.ProgressPercent()
		if cur < prev {
			t.Fatalf("progress decreased: %f -> %f", prev, cur)
		}
		if cur < 0 || cur > 100 {
			t.Fatalf("progress out of range: %f", cur)
		}
		prev = cur
	}
}

func TestStartAfterCompletionRunsNextPhase(t *testing.T) {
	e, err := New(1, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	e.Start()
	if !e.Running() {
		t.Fatal("expected engine running")
	}
	if e.SessionJustCompleted() {
		t.Fatal("start must clear the session-complete flag")
	}
	e.Tick()
	if e.Remaining() != 2*60-1 {
		t.Fatalf("expected break counting down, got %d", e.Remaining())
	}
}
