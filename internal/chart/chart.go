// Package chart draws braille line charts of WPM over time.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/verte-zerg/bananatype/internal/model"
)

// Point is one (x, y) sample.
type Point struct {
	X float64
	Y float64
}

// Series is a named line. Series share the chart axes.
type Series struct {
	Name   string
	Points []Point
}

// Options controls the chart frame. Zero maxima are derived from the data.
type Options struct {
	Title      string
	XTitle     string
	YTitle     string
	XMax       float64
	YMax       float64
	Width      int
	Height     int
	ForceColor bool
}

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultHeight       = 10
	minWidth            = 10
	axisSeparator       = " ┤"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	yHeadroom           = 10
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

// Net WPM is drawn first in cyan, gross second in magenta.
var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
}

// ForResult returns the net and gross WPM series of a finished test with the
// axes used on the results screen: time from 0 to the test duration and WPM
// from 0 to the best gross value plus some headroom.
func ForResult(res model.Result, width, height int) ([]Series, Options) {
	net := make([]Point, 0, len(res.Samples))
	gross := make([]Point, 0, len(res.Samples))
	maxGross := 0.0
	for _, s := range res.Samples {
		net = append(net, Point{X: s.Time, Y: s.NetWPM})
		gross = append(gross, Point{X: s.Time, Y: s.GrossWPM})
		maxGross = math.Max(maxGross, s.GrossWPM)
	}
	return []Series{{Name: "net", Points: net}, {Name: "gross", Points: gross}}, Options{
		Title:  "Your Results",
		XTitle: "Time",
		YTitle: "Words per Minute",
		XMax:   res.Duration,
		YMax:   maxGross + yHeadroom,
		Width:  width,
		Height: height,
	}
}

// Render writes the chart to w. Color is used when forced or when w is a
// terminal, unless NO_COLOR is set.
func Render(w io.Writer, series []Series, opts Options) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}
	width := opts.Width
	if width <= 0 {
		width = WidthFor(TerminalWidth())
	}
	width = max(width, minWidth)

	xMax, yMax := opts.XMax, opts.YMax
	if xMax <= 0 || yMax <= 0 {
		dataX, dataY := extent(series)
		if xMax <= 0 {
			xMax = dataX
		}
		if yMax <= 0 {
			yMax = dataY + yHeadroom
		}
	}
	if xMax <= 0 {
		xMax = 1
	}

	layers := make([][][]uint8, len(series))
	for si, s := range series {
		layers[si] = makeCells(height, width)
		style := lineStyles[si%len(lineStyles)]
		prevX, prevY := -1, -1
		for _, p := range s.Points {
			px := scale(p.X, xMax, width*2)
			py := height*4 - 1 - scale(p.Y, yMax, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setBrailleDot(layers[si], dx, dy)
					}
				})
			} else {
				setBrailleDot(layers[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, opts.ForceColor)
	labels := yLabels(height, yMax)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, utf8.RuneCountInString(l))
	}

	if opts.Title != "" {
		if _, err := fmt.Fprintln(w, opts.Title); err != nil {
			return err
		}
	}
	if opts.YTitle != "" {
		if _, err := fmt.Fprintln(w, opts.YTitle); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", labelWidth, labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, colorIdx := composeCell(layers, x, y)
			ch := brailleFromMask(mask)
			if useColor && colorIdx >= 0 {
				row.WriteString(colorPalette[colorIdx%len(colorPalette)].code)
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	pad := strings.Repeat(" ", labelWidth+utf8.RuneCountInString(axisSeparator)-1)
	if _, err := fmt.Fprintln(w, pad+"└"+strings.Repeat("─", width)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, pad+" "+xLabels(width, xMax, opts.XTitle)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, renderLegend(series, useColor))
	return err
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func extent(series []Series) (xMax, yMax float64) {
	for _, s := range series {
		for _, p := range s.Points {
			xMax = math.Max(xMax, p.X)
			yMax = math.Max(yMax, p.Y)
		}
	}
	return xMax, yMax
}

// scale maps v in [0, limit] onto a dot index in [0, dots).
func scale(v, limit float64, dots int) int {
	if dots <= 1 || limit <= 0 {
		return 0
	}
	idx := int(math.Round(v / limit * float64(dots-1)))
	return min(max(idx, 0), dots-1)
}

// WidthFor computes a chart width that fits within the total available width.
func WidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minWidth
	}
	// Widest label is "999" plus the separator.
	return max(totalWidth-3-utf8.RuneCountInString(axisSeparator), minWidth)
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func yLabels(height int, yMax float64) []string {
	labels := make([]string, height)
	labels[0] = fmt.Sprintf("%.0f", yMax)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.0f", yMax*float64(4*height-1-4*(height/2))/float64(4*height-1))
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

// xLabels places 0, the midpoint and the end under the axis with the title in
// the first gap.
func xLabels(width int, xMax float64, title string) string {
	line := []rune(strings.Repeat(" ", width))
	put := func(pos int, s string) {
		r := []rune(s)
		pos = min(max(pos, 0), max(width-len(r), 0))
		for i, ch := range r {
			if pos+i < len(line) {
				line[pos+i] = ch
			}
		}
	}
	put(0, "0")
	put(width/2-1, fmt.Sprintf("%.0f", xMax/2))
	put(width, fmt.Sprintf("%.0f", xMax))
	if title != "" && width/4+len(title) < width/2-2 {
		put(width/4, title)
	}
	return strings.TrimRight(string(line), " ")
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range layers {
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x09)
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", marker, s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// drawLine walks the Bresenham line from (x0, y0) to (x1, y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if y < 0 || x < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask returns the Unicode braille bit for a dot in a 2x4 cell.
func brailleDotMask(x, y int) uint8 {
	if y == 3 {
		return 0x40 << x
	}
	return (1 << y) << (3 * x)
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
