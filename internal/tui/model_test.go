package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/bananatype/internal/clock"
	"github.com/verte-zerg/bananatype/internal/model"
	"github.com/verte-zerg/bananatype/internal/session"
)

type firstWord struct{}

func (firstWord) Intn(int) int { return 0 }

func newTestModel(t *testing.T, words []string, count int) *Model {
	t.Helper()
	m, err := session.New(session.Config{
		Words:     words,
		Source:    firstWord{},
		WordCount: count,
		ClockOptions: []clock.Option{clock.WithAfter(func(time.Duration) <-chan time.Time {
			return make(chan time.Time)
		})},
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(m.Close)
	return NewModel(m, model.DefaultTheme(), zerolog.Nop())
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingUpdatesCache(t *testing.T) {
	m := newTestModel(t, []string{"cat"}, 2)
	typeText(m, "cx")

	if m.machine.Position() != 2 {
		t.Fatalf("expected position 2, got %d", m.machine.Position())
	}
	if m.machine.State() != session.Running {
		t.Fatalf("expected running, got %s", m.machine.State())
	}
	if m.cache.runes[0].s != m.styles.correct.Render("c") {
		t.Fatalf("expected first cell correct")
	}
	if m.cache.runes[1].s != m.styles.incorrect.Render("a") {
		t.Fatalf("expected second cell incorrect with the passage char")
	}
	if m.cache.runes[2].s != m.styles.cursor.Render("t") {
		t.Fatalf("expected cursor on third cell")
	}

	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.machine.Position() != 1 {
		t.Fatalf("expected backspace to move back, got %d", m.machine.Position())
	}
	if m.cache.runes[1].s != m.styles.cursor.Render("a") {
		t.Fatalf("expected cursor back on second cell")
	}
}

func TestPastedRunesAreTypedInOrder(t *testing.T) {
	m := newTestModel(t, []string{"cat"}, 2)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cat")})
	if m.machine.Position() != 3 {
		t.Fatalf("expected position 3, got %d", m.machine.Position())
	}
	if m.machine.Snapshot().Correct != 3 {
		t.Fatalf("expected 3 correct chars")
	}
}

func TestTabRestarts(t *testing.T) {
	m := newTestModel(t, []string{"cat"}, 2)
	typeText(m, "ca")
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.machine.State() != session.Idle || m.machine.Position() != 0 {
		t.Fatalf("expected fresh idle session, got %s at %d", m.machine.State(), m.machine.Position())
	}
	if m.cache.runes[0].s != m.styles.cursor.Render("c") {
		t.Fatalf("expected cache rebuilt with cursor at start")
	}
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(t, []string{"cat"}, 2)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after quit")
	}
}

func TestExhaustionShowsResults(t *testing.T) {
	m := newTestModel(t, []string{"go"}, 1)
	if _, ok := m.LastResult(); ok {
		t.Fatalf("expected no result before finishing")
	}
	typeText(m, "go ")

	if m.machine.State() != session.Finished {
		t.Fatalf("expected finished, got %s", m.machine.State())
	}
	res, ok := m.LastResult()
	if !ok {
		t.Fatalf("expected captured result")
	}
	if res.Correct != 3 || res.Reason != "passage exhausted" {
		t.Fatalf("unexpected result: %+v", res)
	}
	view := m.View()
	for _, want := range []string{"Your Results", "Press r to restart or q to quit.", "Net WPM"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in results view:\n%s", want, view)
		}
	}

	// Typing is ignored on the results screen.
	typeText(m, "x")
	if m.machine.State() != session.Finished {
		t.Fatalf("expected results screen to stay")
	}

	typeText(m, "r")
	if m.machine.State() != session.Idle {
		t.Fatalf("expected r to restart, got %s", m.machine.State())
	}
	if _, ok := m.LastResult(); !ok {
		t.Fatalf("expected last result to survive a restart")
	}

	// q is an ordinary character while typing.
	typeText(m, "q")
	if m.machine.Position() != 1 {
		t.Fatalf("expected q to be typed, got position %d", m.machine.Position())
	}
}

func TestResultsScreenQuitKeys(t *testing.T) {
	m := newTestModel(t, []string{"go"}, 1)
	typeText(m, "go ")
	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.machine.State() != session.Quit {
		t.Fatalf("expected quit state, got %s", m.machine.State())
	}
}

func TestTypingViewShowsMetrics(t *testing.T) {
	m := newTestModel(t, []string{"cat"}, 3)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{"BananaType", "Gross WPM", "Net WPM", "Accuracy", "30s", "cat"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in typing view:\n%s", want, view)
		}
	}
}

func TestPollKeepsTicking(t *testing.T) {
	m := newTestModel(t, []string{"cat"}, 3)
	_, cmd := m.Update(pollMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("expected another poll to be scheduled")
	}
}
