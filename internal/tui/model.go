// Package tui provides the Bubble Tea widget interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoflow/internal/hydration"
	"pomoflow/internal/model"
	"pomoflow/internal/store"
	"pomoflow/internal/timer"
)

// Recommended bound for a single custom intake entry.
const maxCustomIntakeMl = 1000

const reminderInterval = time.Minute

type tickMsg time.Time

type clearCompletedMsg struct {
	token int
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	clockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	flashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	panelStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea widget UI.
type Model struct {
	cfg     model.Config
	engine  *timer.Engine
	tracker *hydration.Tracker
	store   *store.Store

	timerBar progress.Model
	waterBar progress.Model

	input     textinput.Model
	inputMode bool
	inputErr  string

	width  int
	height int

	sessionsToday    int
	sessionStartedAt time.Time
	sessionPlanned   int

	lastReminderEval time.Time
	now              func() time.Time
}

// NewModel constructs the widget model.
func NewModel(cfg model.Config, engine *timer.Engine, tracker *hydration.Tracker, st *store.Store, today model.TodayTotals) *Model {
	timerBar := progress.New(progress.WithDefaultGradient())
	waterBar := progress.New(progress.WithSolidFill("#1E90FF"))

	input := textinput.New()
	input.Placeholder = "ml"
	input.CharLimit = 4
	input.Width = 6

	m := &Model{
		cfg:           cfg,
		engine:        engine,
		tracker:       tracker,
		store:         st,
		timerBar:      timerBar,
		waterBar:      waterBar,
		input:         input,
		sessionsToday: today.FocusSessions,
		now:           time.Now,
	}
	m.tracker.EvaluateReminder(m.now().Hour())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width - 12
		if barWidth > 48 {
			barWidth = 48
		}
		if barWidth < 10 {
			barWidth = 10
		}
		m.timerBar.Width = barWidth
		m.waterBar.Width = barWidth
		return m, nil
	case tickMsg:
		return m.handleTick()
	case clearCompletedMsg:
		m.engine.ClearCompleted(msg.token)
		return m, nil
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	token := m.engine.CompletionToken()
	endedPhase := m.engine.Phase()
	m.engine.Tick()

	var clear tea.Cmd
	if newToken := m.engine.CompletionToken(); newToken != token {
		m.recordSession(endedPhase, true)
		if endedPhase == timer.PhaseFocus {
			m.sessionsToday++
		}
		clear = tea.Tick(timer.ClearDelay, func(time.Time) tea.Msg {
			return clearCompletedMsg{token: newToken}
		})
	}

	if now := m.now(); m.lastReminderEval.IsZero() || now.Sub(m.lastReminderEval) >= reminderInterval {
		m.tracker.EvaluateReminder(now.Hour())
		m.lastReminderEval = now
	}

	if clear != nil {
		return m, tea.Batch(tickCmd(), clear)
	}
	return m, tickCmd()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ", "s":
		m.toggleTimer()
		return m, nil
	case "r":
		m.resetTimer()
		return m, nil
	case "d":
		m.addIntake(m.cfg.SipMl)
		return m, nil
	case "a":
		m.inputMode = true
		m.inputErr = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	default:
		return m, nil
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.inputMode = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		amount, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || amount <= 0 {
			m.inputErr = "enter a positive amount in ml"
			return m, nil
		}
		if amount > maxCustomIntakeMl {
			m.inputErr = fmt.Sprintf("max %d ml per entry", maxCustomIntakeMl)
			return m, nil
		}
		m.inputMode = false
		m.input.Blur()
		m.addIntake(amount)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) toggleTimer() {
	if m.engine.Running() {
		m.engine.Pause()
		return
	}
	if m.sessionStartedAt.IsZero() {
		m.sessionStartedAt = m.now()
		// A fresh session always starts from a full countdown, so this
		// is the duration the user actually runs even if the engine is
		// reconfigured mid-session.
		m.sessionPlanned = m.engine.Remaining()
	}
	m.engine.Start()
}

func (m *Model) resetTimer() {
	if !m.sessionStartedAt.IsZero() {
		m.recordSession(m.engine.Phase(), false)
	}
	m.engine.Reset()
}

func (m *Model) recordSession(phase timer.Phase, completed bool) {
	startedAt := m.sessionStartedAt
	planned := m.sessionPlanned
	m.sessionStartedAt = time.Time{}
	m.sessionPlanned = 0
	if startedAt.IsZero() {
		startedAt = m.now()
	}
	if planned <= 0 {
		planned = m.engine.FocusMinutes() * 60
		if phase == timer.PhaseBreak {
			planned = m.engine.BreakMinutes() * 60
		}
	}
	rec := model.SessionRecord{
		StartedAt:      startedAt,
		EndedAt:        m.now(),
		Phase:          phase.String(),
		PlannedSeconds: planned,
		Completed:      completed,
	}
	if _, err := m.store.InsertSession(context.Background(), rec); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

func (m *Model) addIntake(ml int) {
	if err := m.tracker.AddIntake(ml); err != nil {
		logErrf("failed to add intake: %v\n", err)
		return
	}
	rec := model.IntakeRecord{At: m.now(), AmountMl: ml}
	if _, err := m.store.InsertIntake(context.Background(), rec); err != nil {
		logErrf("failed to save intake: %v\n", err)
	}
	// AddIntake already recomputed the reminder; just push back the
	// periodic re-check.
	m.lastReminderEval = m.now()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.renderTimerPanel()),
		panelStyle.Render(m.renderWaterPanel()),
	)
	footer := footerStyle.Render(m.renderFooter())
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderTimerPanel() string {
	title := "Focus"
	if m.engine.Phase() == timer.PhaseBreak {
		title = "Break"
	}
	state := "paused"
	if m.engine.Running() {
		state = "running"
	}
	lines := []string{
		titleStyle.Render(title) + mutedStyle.Render("  "+state),
		clockStyle.Render(formatClock(m.engine.Remaining())),
		m.timerBar.ViewAs(m.engine.ProgressPercent() / 100),
	}
	if m.engine.SessionJustCompleted() {
		flash := "Break over, back to focus!"
		if m.engine.Phase() == timer.PhaseBreak {
			flash = "Focus session complete, take a break!"
		}
		lines = append(lines, flashStyle.Render(flash))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderWaterPanel() string {
	lines := []string{
		titleStyle.Render("Water"),
		fmt.Sprintf("%d / %d ml (%.0f%%)", m.tracker.Intake(), m.tracker.DailyGoal(), m.tracker.IntakePercent()),
		m.waterBar.ViewAs(m.tracker.IntakePercent() / 100),
	}
	if m.tracker.GoalMet() {
		lines = append(lines, flashStyle.Render("Daily goal met!"))
	} else {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d ml to go", m.tracker.RemainingMl())))
	}
	if m.tracker.ReminderActive() {
		lines = append(lines, alertStyle.Render("Behind pace, time to drink!"))
	}
	if m.inputMode {
		lines = append(lines, "Add amount: "+m.input.View())
		if m.inputErr != "" {
			lines = append(lines, errStyle.Render(m.inputErr))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Today: %d focus · %d ml", m.sessionsToday, m.tracker.Intake()),
		"space start/pause",
		"r reset",
		fmt.Sprintf("d drink %dml", m.cfg.SipMl),
		"a custom",
		"q quit",
	}
	return strings.Join(segments, "  ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
