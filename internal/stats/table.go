package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is a table header with its alignment.
type column struct {
	title string
	right bool
}

func left(title string) column  { return column{title: title} }
func right(title string) column { return column{title: title, right: true} }

// formatTable aligns rows under cols by display width, so wide runes in corpus
// names and sources keep the columns straight. Trailing padding is trimmed.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := 0; i < min(len(row), len(cols)); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, formatRow(cols, widths, row))
	}
	return lines
}

func formatRow(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		var value string
		if i < len(row) {
			value = row[i]
		}
		if c.right {
			cells[i] = runewidth.FillLeft(value, widths[i])
		} else {
			cells[i] = runewidth.FillRight(value, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
