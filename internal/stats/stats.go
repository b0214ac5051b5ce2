// Package stats renders plain-text summaries of typing results.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/bananatype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderResults prints the figures of a finished test.
func RenderResults(w io.Writer, res model.Result) error {
	if _, err := fmt.Fprintln(w, "Your Results"); err != nil {
		return err
	}
	rows := [][]string{
		{"Gross WPM", fmt.Sprintf("%.2f", res.GrossWPM)},
		{"Net WPM", fmt.Sprintf("%.2f", res.NetWPM)},
		{"Accuracy", fmt.Sprintf("%.2f%%", res.Accuracy)},
		{"Correct", fmt.Sprintf("%d", res.Correct)},
		{"Incorrect", fmt.Sprintf("%d", res.Incorrect)},
		{"Mistakes", fmt.Sprintf("%d", res.TotalIncorrect)},
		{"Time", fmt.Sprintf("%.1fs / %.0fs", res.Elapsed, res.Duration)},
	}
	if res.Reason != "" {
		rows = append(rows, []string{"Ended", res.Reason})
	}
	return writeLines(w, formatTable([]column{left("Metric"), right("Value")}, rows))
}

// RenderCorpora prints the imported corpora.
func RenderCorpora(w io.Writer, corpora []model.CorpusInfo) error {
	if len(corpora) == 0 {
		_, err := fmt.Fprintln(w, "No imported corpora.")
		return err
	}
	rows := make([][]string, 0, len(corpora))
	for _, c := range corpora {
		imported := "-"
		if !c.ImportedAt.IsZero() {
			imported = c.ImportedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{c.Lang, fmt.Sprintf("%d", c.WordCount), imported, c.Source})
	}
	return writeLines(w, formatTable([]column{left("Lang"), right("Words"), left("Imported"), left("Source")}, rows))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
