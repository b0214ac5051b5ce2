// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/bananatype/internal/chart"
	"github.com/verte-zerg/bananatype/internal/model"
	"github.com/verte-zerg/bananatype/internal/session"
	"github.com/verte-zerg/bananatype/internal/stats"
)

const (
	chartHeight  = 12
	defaultWidth = 80
	maxPassage   = 80
)

// pollMsg wakes the model up to drain clock ticks.
type pollMsg time.Time

func poll() tea.Cmd {
	return tea.Tick(session.PollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Model implements the Bubble Tea typing UI on top of a session machine.
type Model struct {
	machine *session.Machine
	logger  zerolog.Logger

	styles styles
	keys   keyMap
	help   help.Model
	gauge  progress.Model
	cache  cellCache

	width  int
	height int

	last     *model.Result
	captured bool
}

// NewModel constructs a typing TUI model.
func NewModel(m *session.Machine, theme model.Theme, logger zerolog.Logger) *Model {
	st := newStyles(theme)
	ui := &Model{
		machine: m,
		logger:  logger,
		styles:  st,
		keys:    newKeyMap(),
		help:    help.New(),
		gauge:   progress.New(progress.WithSolidFill(theme.Highlight), progress.WithoutPercentage()),
		cache:   cellCache{styles: st},
	}
	ui.cache.rebuild(m)
	return ui
}

// LastResult returns the most recent finished test, if any.
func (m *Model) LastResult() (model.Result, bool) {
	if m.last == nil {
		return model.Result{}, false
	}
	return *m.last, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return poll()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case pollMsg:
		if m.machine.State() == session.Quit {
			return m, nil
		}
		m.drain()
		return m, poll()
	case tea.KeyMsg:
		for _, ev := range m.events(msg) {
			res := m.machine.Handle(ev)
			if res.Quit {
				return m, tea.Quit
			}
			m.apply(res)
		}
		m.drain()
		return m, nil
	default:
		return m, nil
	}
}

// events maps a key press to session events for the current screen.
func (m *Model) events(msg tea.KeyMsg) []session.Event {
	state := m.machine.State()
	if state == session.Finished {
		switch {
		case key.Matches(msg, m.keys.Restart):
			return []session.Event{session.Restart()}
		case key.Matches(msg, m.keys.Leave):
			return []session.Event{session.QuitEvent()}
		}
		m.logger.Trace().Str("key", msg.String()).Msg("key ignored on results screen")
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []session.Event{session.QuitEvent()}
	case key.Matches(msg, m.keys.QuickRestart):
		return []session.Event{session.Restart()}
	case key.Matches(msg, m.keys.Backspace):
		return []session.Event{session.Backspace()}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []session.Event{session.Char(' ')}
	case tea.KeyRunes:
		out := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, session.Char(r))
		}
		return out
	}
	m.logger.Trace().Str("key", msg.String()).Stringer("state", state).Msg("key ignored")
	return nil
}

func (m *Model) apply(res session.Result) {
	if res.Reset {
		m.cache.rebuild(m.machine)
		m.captured = false
		return
	}
	m.cache.update(m.machine, res.Changed)
	m.captureResult()
}

// drain counts queued ticks. The clock may also end the test here.
func (m *Model) drain() {
	m.machine.Drain()
	m.captureResult()
}

func (m *Model) captureResult() {
	if m.captured || m.machine.State() != session.Finished {
		return
	}
	res := m.machine.Snapshot().Result()
	m.last = &res
	m.captured = true
	m.logger.Debug().Float64("net_wpm", res.NetWPM).Str("reason", res.Reason).Msg("result captured")
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.machine.State() {
	case session.Quit:
		return ""
	case session.Finished:
		return m.place(m.resultsView())
	default:
		return m.place(m.typingView())
	}
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	return max(min(int(float64(width)*0.8), maxPassage), 1)
}

func (m *Model) typingView() string {
	snap := m.machine.Snapshot()
	width := m.contentWidth()

	m.gauge.Width = max(width-6, 1)
	gauge := fmt.Sprintf("%s %3.0fs", m.gauge.ViewAs(snap.Progress()), snap.Remaining())
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Gross WPM", fmt.Sprintf("%.0f", snap.GrossWPM)),
		metricCard("Net WPM", fmt.Sprintf("%.0f", snap.NetWPM)),
		metricCard("Accuracy", fmt.Sprintf("%.0f%%", snap.Accuracy)),
	)
	passage := wrapStyledRunes(m.cache.runes, width)

	m.keys.finished = false
	footer := m.help.View(m.keys)
	if series := m.machine.NetSeries(); len(series) > 1 {
		footer = footerStyle.Render(stats.Sparkline(series)) + "  " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.title.Render("BananaType"),
		gauge,
		cards,
		"",
		lipgloss.NewStyle().Width(width+1).Render(passage),
		"",
		footer,
	)
}

func (m *Model) resultsView() string {
	res, ok := m.LastResult()
	if !ok {
		res = m.machine.Snapshot().Result()
	}
	width := m.contentWidth()

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Gross WPM", fmt.Sprintf("%.0f", res.GrossWPM)),
		metricCard("Net WPM", fmt.Sprintf("%.0f", res.NetWPM)),
		metricCard("Accuracy", fmt.Sprintf("%.0f%%", res.Accuracy)),
	)

	var buf bytes.Buffer
	series, opts := chart.ForResult(res, chart.WidthFor(width), chartHeight)
	opts.ForceColor = true
	if err := chart.Render(&buf, series, opts); err != nil {
		m.logger.Error().Err(err).Msg("failed to render chart")
	}

	m.keys.finished = true
	hint := footerStyle.Render("Press r to restart or q to quit.\nNote: Press tab during a test to quick restart.")
	return lipgloss.JoinVertical(lipgloss.Center,
		cards,
		"",
		strings.TrimRight(buf.String(), "\n"),
		"",
		hint,
		m.help.View(m.keys),
	)
}
