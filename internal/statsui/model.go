// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoflow/internal/model"
	"pomoflow/internal/stats"
	"pomoflow/internal/store"
)

const (
	tabOverview = iota
	tabDays
	tabSessions
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	days     []model.DayAggregate
	sessions []model.SessionAggregate
	errMsg   string

	tabs      []string
	activeTab int
	overview  viewport.Model
	dayTable  table.Model
	sessTable table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Days", "Sessions"},
	}
	m.overview = viewport.New(0, 0)
	m.initTables()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			switch m.activeTab {
			case tabDays:
				m.dayTable.GotoTop()
			case tabSessions:
				m.sessTable.GotoTop()
			default:
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			switch m.activeTab {
			case tabDays:
				m.dayTable.GotoBottom()
			case tabSessions:
				m.sessTable.GotoBottom()
			default:
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			switch m.activeTab {
			case tabDays:
				m.dayTable, cmd = m.dayTable.Update(msg)
			case tabSessions:
				m.sessTable, cmd = m.sessTable.Update(msg)
			default:
				m.overview, cmd = m.overview.Update(msg)
			}
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := footerStyle.Render("h/l tabs  g/G top/bottom  q quit")
	bodyHeight := m.height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	var body string
	if m.errMsg != "" {
		body = errorStyle.Render(m.errMsg)
	} else {
		switch m.activeTab {
		case tabDays:
			body = m.dayTable.View()
		case tabSessions:
			body = m.sessTable.View()
		default:
			body = m.overview.View()
		}
	}
	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabDays {
		m.dayTable.Focus()
	} else {
		m.dayTable.Blur()
	}
	if m.activeTab == tabSessions {
		m.sessTable.Focus()
	} else {
		m.sessTable.Blur()
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		parts = append(parts, style.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) initTables() {
	m.dayTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Day", Width: 12},
			{Title: "Sessions", Width: 9},
			{Title: "Focus (min)", Width: 12},
			{Title: "Intake (ml)", Width: 12},
		}),
	)
	m.sessTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Ended", Width: 17},
			{Title: "Phase", Width: 6},
			{Title: "Planned", Width: 8},
			{Title: "Done", Width: 5},
		}),
	)
}

func (m *Model) refresh() {
	ctx := context.Background()
	days, err := m.store.DayAggregates(ctx, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load day aggregates: %v", err)
		return
	}
	sessions, err := m.store.ListSessions(ctx, m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load sessions: %v", err)
		return
	}
	m.days = days
	m.sessions = sessions
	m.errMsg = ""

	dayRows := make([]table.Row, 0, len(days))
	for _, day := range days {
		dayRows = append(dayRows, table.Row{
			day.Day,
			fmt.Sprintf("%d", day.FocusSessions),
			fmt.Sprintf("%.0f", float64(day.FocusSeconds)/60.0),
			fmt.Sprintf("%d", day.IntakeMl),
		})
	}
	m.dayTable.SetRows(dayRows)

	sessRows := make([]table.Row, 0, len(sessions))
	for _, sess := range sessions {
		done := "no"
		if sess.Completed {
			done = "yes"
		}
		sessRows = append(sessRows, table.Row{
			sess.EndedAt.Local().Format("2006-01-02 15:04"),
			sess.Phase,
			fmt.Sprintf("%d min", sess.PlannedSeconds/60),
			done,
		})
	}
	m.sessTable.SetRows(sessRows)

	m.overview.SetContent(m.renderOverview())
}

func (m *Model) renderOverview() string {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, m.days); err != nil {
		return fmt.Sprintf("failed to render summary: %v", err)
	}
	if len(m.days) > 1 {
		focus := stats.Sparkline(stats.FocusMinutesSeries(m.days))
		intake := stats.Sparkline(stats.IntakeSeries(m.days))
		fmt.Fprintln(&buf, "Trends (oldest to newest)")
		fmt.Fprintf(&buf, "Focus (min)  %s\n", focus)
		fmt.Fprintf(&buf, "Intake (ml)  %s\n", intake)
	}
	return buf.String()
}

func (m *Model) updateLayout() {
	bodyHeight := m.height - 4
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.dayTable.SetHeight(bodyHeight)
	m.sessTable.SetHeight(bodyHeight)
}
