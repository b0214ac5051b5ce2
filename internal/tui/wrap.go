package tui

import (
	"strings"

	"github.com/verte-zerg/bananatype/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// cellCache keeps one rendered string per passage cell so a keystroke only
// restyles the cells it touched.
type cellCache struct {
	styles styles
	runes  []styledRune
	word   int
}

// cellSource is the read side of the session the cache renders from.
type cellSource interface {
	Len() int
	Cell(i int) engine.Cell
	CurrentWord() int
	WordRange(word int) engine.Range
}

func (c *cellCache) rebuild(src cellSource) {
	c.word = src.CurrentWord()
	c.runes = make([]styledRune, src.Len())
	for i := range c.runes {
		c.restyleAt(src, i)
	}
}

func (c *cellCache) restyleAt(src cellSource, i int) {
	cell := src.Cell(i)
	c.runes[i] = c.styles.render(cell, c.word >= 0 && cell.Word == c.word)
}

func (c *cellCache) restyle(src cellSource, r engine.Range) {
	for i := max(r.Start, 0); i < min(r.End, len(c.runes)); i++ {
		c.restyleAt(src, i)
	}
}

// update restyles the changed cells and, when the cursor moved into another
// word, both the old and the new word.
func (c *cellCache) update(src cellSource, changed engine.Range) {
	if len(c.runes) != src.Len() {
		c.rebuild(src)
		return
	}
	if word := src.CurrentWord(); word != c.word {
		old := c.word
		c.word = word
		c.restyle(src, src.WordRange(old))
		c.restyle(src, src.WordRange(word))
	}
	c.restyle(src, changed)
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits in width. Words
// longer than a line are split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		// A separator may hang past the edge so the cursor on it stays visible.
		if lineWidth+item.width > width && len(line) > 0 && !item.isSpace {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx+1]))
				out.WriteRune('\n')
				line = append(line[:0:0], line[lastSpaceIdx+1:]...)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = -1
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}
