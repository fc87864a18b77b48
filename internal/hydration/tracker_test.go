package hydration

import (
	"errors"
	"testing"
	"time"
)

func newAt(t *testing.T, goalMl, hour int) *Tracker {
	t.Helper()
	tr := &Tracker{now: func() time.Time {
		return time.Date(2025, 3, 10, hour, 30, 0, 0, time.UTC)
	}}
	if err := tr.SetDailyGoal(goalMl); err != nil {
		t.Fatalf("SetDailyGoal failed: %v", err)
	}
	return tr
}

func TestNewRejectsNonPositiveGoal(t *testing.T) {
	for _, goal := range []int{0, -100} {
		if _, err := New(goal); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("goal %d: expected ErrInvalidConfig, got %v", goal, err)
		}
	}
}

func TestAddIntakeRejectsNonPositiveAmounts(t *testing.T) {
	tr := newAt(t, 2000, 10)
	for _, ml := range []int{0, -5} {
		if err := tr.AddIntake(ml); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", ml, err)
		}
	}
	if tr.Intake() != 0 {
		t.Fatalf("failed additions mutated intake: %d", tr.Intake())
	}
}

func TestReminderBehindPaceMidMorning(t *testing.T) {
	tr := newAt(t, 2000, 10)
	// Expected by 10:00 is 2000/16*4 = 500ml; zero intake is behind the
	// 80% grace line.
	if !tr.EvaluateReminder(10) {
		t.Fatal("expected reminder active at 10:00 with zero intake")
	}
}

func TestReminderQuietBeforeEight(t *testing.T) {
	tr := newAt(t, 2000, 7)
	if tr.EvaluateReminder(7) {
		t.Fatal("no reminder may fire before 08:00")
	}
	if tr.ReminderActive() {
		t.Fatal("flag must stay clear before 08:00")
	}
}

func TestReminderClearsWhenOnPace(t *testing.T) {
	tr := newAt(t, 2000, 10)
	if err := tr.AddIntake(450); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	// 450 >= 500*0.8, on pace.
	if tr.EvaluateReminder(10) {
		t.Fatal("expected reminder clear when within grace margin")
	}
}

func TestReminderExpectationUncappedAfterWindow(t *testing.T) {
	// Past 22:00 the expectation keeps growing; by 23:00 it exceeds the
	// goal itself, so even a met goal can fall behind.
	tr := newAt(t, 2000, 23)
	if err := tr.AddIntake(2000); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	// Expected at 23:00 is 2000/16*17 = 2125; 2000 < 2125*0.8 is false.
	if tr.EvaluateReminder(23) {
		t.Fatal("2000ml is still within grace of 2125ml expectation")
	}
	tr2 := newAt(t, 2000, 23)
	if err := tr2.AddIntake(1600); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	// 1600 < 2125*0.8 = 1700.
	if !tr2.EvaluateReminder(23) {
		t.Fatal("expected reminder active past the window when behind")
	}
}

func TestGoalMetProjections(t *testing.T) {
	tr := newAt(t, 2000, 12)
	if err := tr.AddIntake(2000); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	if tr.RemainingMl() != 0 {
		t.Fatalf("expected 0 remaining, got %d", tr.RemainingMl())
	}
	if tr.IntakePercent() != 100 {
		t.Fatalf("expected 100%%, got %f", tr.IntakePercent())
	}
	if !tr.GoalMet() {
		t.Fatal("expected goal met")
	}
	for hour := 8; hour <= 22; hour++ {
		if tr.EvaluateReminder(hour) {
			t.Fatalf("reminder active at hour %d with goal met", hour)
		}
	}
}

func TestIntakePercentCapped(t *testing.T) {
	tr := newAt(t, 1000, 12)
	if err := tr.AddIntake(1500); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	if tr.IntakePercent() != 100 {
		t.Fatalf("expected percent capped at 100, got %f", tr.IntakePercent())
	}
	if tr.RemainingMl() != 0 {
		t.Fatalf("expected 0 remaining, got %d", tr.RemainingMl())
	}
}

func TestAddIntakeRecomputesReminder(t *testing.T) {
	tr := newAt(t, 2000, 10)
	tr.EvaluateReminder(10)
	if !tr.ReminderActive() {
		t.Fatal("expected reminder active before drinking")
	}
	if err := tr.AddIntake(600); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	if tr.ReminderActive() {
		t.Fatal("expected reminder cleared by the mutation itself")
	}
}

func TestSetDailyGoalRecomputesReminder(t *testing.T) {
	tr := newAt(t, 1000, 10)
	if err := tr.AddIntake(300); err != nil {
		t.Fatalf("AddIntake failed: %v", err)
	}
	// 300 >= (1000/16*4)*0.8 = 200, on pace for the small goal.
	if tr.ReminderActive() {
		t.Fatal("expected on pace for 1000ml goal")
	}
	if err := tr.SetDailyGoal(4000); err != nil {
		t.Fatalf("SetDailyGoal failed: %v", err)
	}
	// Expected jumps to 1000; 300 < 800.
	if !tr.ReminderActive() {
		t.Fatal("expected goal change to re-raise the reminder")
	}
}
