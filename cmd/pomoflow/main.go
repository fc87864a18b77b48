// Package main provides the CLI entrypoint for pomoflow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pomoflow/internal/config"
	"pomoflow/internal/hydration"
	"pomoflow/internal/model"
	"pomoflow/internal/stats"
	"pomoflow/internal/statsui"
	"pomoflow/internal/store"
	"pomoflow/internal/timer"
	"pomoflow/internal/tui"
)

const (
	defaultFocusMinutes = 25
	defaultBreakMinutes = 5
	defaultGoalMl       = 2000
	defaultSipMl        = 250
)

var (
	widgetFocus int
	widgetBreak int
	widgetGoal  int
	widgetSip   int

	statsSince string
	statsLast  int
	statsPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pomoflow",
		Short:         "Focus timer and water tracker widget",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runWidgetCmd,
	}

	rootCmd.Flags().IntVar(&widgetFocus, "focus", defaultFocusMinutes, "focus duration in minutes")
	rootCmd.Flags().IntVar(&widgetBreak, "break", defaultBreakMinutes, "break duration in minutes")
	rootCmd.Flags().IntVar(&widgetGoal, "goal", defaultGoalMl, "daily water goal in ml")
	rootCmd.Flags().IntVar(&widgetSip, "sip", defaultSipMl, "ml added per drink key press")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runWidgetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "focus", &widgetFocus, fileCfg.Timer.FocusMinutes)
	applyIntConfig(cmd, "break", &widgetBreak, fileCfg.Timer.BreakMinutes)
	applyIntConfig(cmd, "goal", &widgetGoal, fileCfg.Hydration.DailyGoalMl)
	applyIntConfig(cmd, "sip", &widgetSip, fileCfg.Hydration.SipMl)

	cfg := model.Config{
		FocusMinutes: widgetFocus,
		BreakMinutes: widgetBreak,
		DailyGoalMl:  widgetGoal,
		SipMl:        widgetSip,
	}

	engine, err := timer.New(cfg.FocusMinutes, cfg.BreakMinutes)
	if err != nil {
		return err
	}
	tracker, err := hydration.New(cfg.DailyGoalMl)
	if err != nil {
		return err
	}
	if cfg.SipMl <= 0 {
		return fmt.Errorf("--sip must be greater than 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	today, err := st.TodayTotals(context.Background(), time.Now())
	if err != nil {
		logErrf("failed to load today's totals: %v\n", err)
	} else if today.IntakeMl > 0 {
		if err := tracker.AddIntake(today.IntakeMl); err != nil {
			logErrf("failed to seed today's intake: %v\n", err)
		}
	}

	widget := tui.NewModel(cfg, engine, tracker, st, today)
	program := tea.NewProgram(widget, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus and hydration history",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since: sinceTime,
		Last:  statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if plainStatsWanted(statsPlain, int(os.Stdout.Fd())) {
		return runPlainStats(st, cfg)
	}

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

// plainStatsWanted reports whether to print the plain report instead of
// launching the stats TUI. Piped or redirected stdout always gets the plain
// report.
func plainStatsWanted(plainFlag bool, stdoutFd int) bool {
	return plainFlag || !term.IsTerminal(stdoutFd)
}

func runPlainStats(st *store.Store, cfg model.StatsConfig) error {
	days, err := st.DayAggregates(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load day aggregates: %w", err)
	}
	if err := stats.RenderSummary(os.Stdout, days); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderDayTable(os.Stdout, days); err != nil {
		return fmt.Errorf("failed to render day table: %w", err)
	}
	if err := stats.RenderTrends(os.Stdout, days); err != nil {
		return fmt.Errorf("failed to render trends: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pomoflow configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# focus = %d    # Focus duration in minutes (1-120 recommended)
# break = %d     # Break duration in minutes (1-60 recommended)

[hydration]
# goal = %d   # Daily water goal in ml (500-5000 recommended)
# sip = %d     # Ml added per drink key press (1-1000 recommended)
`,
		defaultFocusMinutes,
		defaultBreakMinutes,
		defaultGoalMl,
		defaultSipMl,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
