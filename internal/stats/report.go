// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"pomoflow/internal/model"
)

const (
	terminalWidthBackup = 80
	sparkLabelWidth     = 16
	colorCyan           = "\x1b[36m"
	colorReset          = "\x1b[0m"
)

// RenderSummary prints overall totals for the day aggregates.
func RenderSummary(w io.Writer, days []model.DayAggregate) error {
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, "No history yet.")
		return err
	}
	sum := Summarize(days)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Days: %d\n", sum.Days); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Focus sessions: %d\n", sum.FocusSessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Focus time: %.1f h\n", float64(sum.FocusSeconds)/3600.0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg focus/day: %.1f min\n", sum.AvgFocusMinutes); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg intake/day: %.0f ml\n", sum.AvgIntakeMl); err != nil {
		return err
	}
	if sum.BestFocusDay != "" {
		if _, err := fmt.Fprintf(w, "Best day: %s (%d sessions)\n", sum.BestFocusDay, sum.BestFocusSessions); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderDayTable prints one row per day.
func RenderDayTable(w io.Writer, days []model.DayAggregate) error {
	if len(days) == 0 {
		return nil
	}
	headers := []string{"Day", "Sessions", "Focus (min)", "Intake (ml)"}
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{
			day.Day,
			fmt.Sprintf("%d", day.FocusSessions),
			fmt.Sprintf("%.0f", float64(day.FocusSeconds)/60.0),
			fmt.Sprintf("%d", day.IntakeMl),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	if _, err := fmt.Fprintln(w, "Daily"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderTrends prints per-day sparklines for focus time and intake, sized
// to the terminal when writing to one.
func RenderTrends(w io.Writer, days []model.DayAggregate) error {
	if len(days) < 2 {
		return nil
	}
	width := terminalWidth() - sparkLabelWidth
	if width < 10 {
		width = 10
	}
	useColor := shouldUseColor(w)
	lines := []struct {
		label  string
		values []float64
	}{
		{label: "Focus (min)", values: FocusMinutesSeries(days)},
		{label: "Intake (ml)", values: IntakeSeries(days)},
	}
	if _, err := fmt.Fprintln(w, "Trends (oldest to newest)"); err != nil {
		return err
	}
	for _, line := range lines {
		values := line.values
		if len(values) > width {
			values = values[len(values)-width:]
		}
		spark := Sparkline(values)
		if useColor {
			spark = colorCyan + spark + colorReset
		}
		if _, err := fmt.Fprintf(w, "%-*s %s\n", sparkLabelWidth-1, line.label, spark); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
