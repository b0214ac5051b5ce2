package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bananatype/internal/engine"
	"github.com/verte-zerg/bananatype/internal/model"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// styles holds the per-state cell styles derived from a theme.
type styles struct {
	untouched      lipgloss.Style
	word           lipgloss.Style
	correct        lipgloss.Style
	incorrect      lipgloss.Style
	incorrectSpace lipgloss.Style
	cursor         lipgloss.Style
	title          lipgloss.Style
}

func newStyles(t model.Theme) styles {
	return styles{
		untouched:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Foreground)),
		word:           lipgloss.NewStyle().Foreground(lipgloss.Color(t.Highlight)),
		correct:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Correct)),
		incorrect:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Incorrect)),
		incorrectSpace: lipgloss.NewStyle().Background(lipgloss.Color(t.Incorrect)),
		cursor:         lipgloss.NewStyle().Foreground(lipgloss.Color(t.Cursor)).Background(lipgloss.Color(t.Foreground)),
		title:          lipgloss.NewStyle().Foreground(lipgloss.Color(t.Highlight)).Bold(true),
	}
}

// cellStyle picks the style of a cell. Untyped letters of the current word are
// highlighted.
func (s styles) cellStyle(c engine.Cell, current bool) lipgloss.Style {
	switch c.State {
	case engine.Correct:
		return s.correct
	case engine.Incorrect:
		if c.IsSpace() {
			return s.incorrectSpace
		}
		return s.incorrect
	case engine.Cursor:
		return s.cursor
	default:
		if current && !c.IsSpace() {
			return s.word
		}
		return s.untouched
	}
}

func (s styles) render(c engine.Cell, current bool) styledRune {
	return styledRune{
		s:       s.cellStyle(c, current).Render(string(c.Char)),
		width:   runewidth.RuneWidth(c.Char),
		isSpace: c.IsSpace(),
	}
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}
