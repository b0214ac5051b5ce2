// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Lang     string
	CapsPct  float64
	PunctPct float64
	PunctSet string
	Seed     int64
}

// Theme holds the colors the typing screen is drawn with. Values are lipgloss
// color strings (hex or ANSI numbers).
type Theme struct {
	Foreground string
	Highlight  string
	Cursor     string
	Correct    string
	Incorrect  string
}

// DefaultTheme mirrors the classic palette: gray text, yellow accents.
func DefaultTheme() Theme {
	return Theme{
		Foreground: "#8C8C8C",
		Highlight:  "#C89A3A",
		Cursor:     "#F0F0F0",
		Correct:    "#7FBF7F",
		Incorrect:  "#FF4D4F",
	}
}

// WPMSample is one point of a result's WPM curve.
type WPMSample struct {
	Time     float64
	NetWPM   float64
	GrossWPM float64
}

// Result captures a finished typing test.
type Result struct {
	FinishedAt     time.Time
	Reason         string
	Elapsed        float64
	Duration       float64
	GrossWPM       float64
	NetWPM         float64
	Accuracy       float64
	Correct        int
	Incorrect      int
	TotalIncorrect int
	Samples        []WPMSample
}

// CorpusInfo describes a word corpus held in the store.
type CorpusInfo struct {
	Lang       string
	Source     string
	ImportedAt time.Time
	WordCount  int
}
