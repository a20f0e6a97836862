package cli

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

type tickMsg time.Time

// dashboardMsg carries one poll result.
type dashboardMsg struct {
	view *app.DashboardView
	err  error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type watchKeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")), k.Quit}
}

// ── model ────────────────────────────────────────────────────────────────────

// watchModel polls the dashboard on a fixed interval and renders it in a
// scrollable viewport.
type watchModel struct {
	source   app.DashboardUseCase
	loc      *time.Location
	interval time.Duration
	keys     watchKeyMap

	vp       viewport.Model
	ready    bool
	last     *app.DashboardView
	err      error
	quitting bool
}

func newWatchModel(source app.DashboardUseCase, loc *time.Location, interval time.Duration) watchModel {
	return watchModel{
		source:   source,
		loc:      loc,
		interval: interval,
		keys:     defaultWatchKeys(),
		vp:       viewport.New(80, 24),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m watchModel) fetch() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		view, err := source.Dashboard(context.Background())
		return dashboardMsg{view: view, err: err}
	}
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-2, 1)
		m.ready = true
		m.vp.SetContent(m.body())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetch()
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())

	case dashboardMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.last = msg.view
		}
		m.vp.SetContent(m.body())
		return m, nil
	}
	return m, nil
}

func (m watchModel) body() string {
	var b strings.Builder
	switch {
	case m.last != nil:
		b.WriteString(formatter.FormatDashboard(*m.last, m.loc))
	case m.err == nil:
		b.WriteString(formatter.Dim("Loading…") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	return b.String()
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}
	content := m.body()
	if m.ready {
		content = m.vp.View()
	}
	hints := make([]string, 0, 3)
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return content + "\n" + strings.Join(hints, "  ")
}
