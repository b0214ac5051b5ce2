// Package engine holds the passage being typed and judges keystrokes against it.
package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus is returned when there are no words to sample from.
var ErrEmptyCorpus = errors.New("corpus is empty")

// ErrInvalidCount is returned when a passage is requested with no words.
var ErrInvalidCount = errors.New("word count must be > 0")

// State is the display state of a cell.
type State uint8

const (
	Untouched State = iota
	Correct
	Incorrect
	// Cursor is never stored; it is overlaid on the cell at the cursor position
	// when a view is taken.
	Cursor
)

func (s State) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Cursor:
		return "cursor"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Cell is one character of the passage.
type Cell struct {
	Char  rune
	State State
	// Word is the index of the word owning the cell. A separator space belongs to
	// the word before it.
	Word int
}

// IsSpace reports whether the cell is a word separator.
func (c Cell) IsSpace() bool {
	return c.Char == ' '
}

// Source yields uniform random indices in [0, n).
type Source interface {
	Intn(n int) int
}

// Decorator optionally rewrites a sampled word before it is laid out.
type Decorator interface {
	Decorate(word string) string
}

// Passage is a fixed arena of cells, allocated once per session.
type Passage struct {
	cells []Cell
	words [][2]int
}

// Build samples count words from corpus with replacement and lays them out with a
// single space after each one.
func Build(corpus []string, count int, src Source) (*Passage, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	usable := 0
	for _, w := range corpus {
		if w != "" {
			usable++
		}
	}
	if usable == 0 {
		return nil, ErrEmptyCorpus
	}
	dec, _ := src.(Decorator)
	words := make([]string, 0, count)
	for len(words) < count {
		word := corpus[src.Intn(len(corpus))]
		if word == "" {
			continue
		}
		if dec != nil {
			word = dec.Decorate(word)
		}
		words = append(words, word)
	}
	return FromWords(words), nil
}

// FromWords lays out the given words verbatim.
func FromWords(words []string) *Passage {
	size := 0
	for _, w := range words {
		size += len([]rune(w)) + 1
	}
	p := &Passage{
		cells: make([]Cell, 0, size),
		words: make([][2]int, 0, len(words)),
	}
	for i, w := range words {
		start := len(p.cells)
		for _, r := range w {
			p.cells = append(p.cells, Cell{Char: r, Word: i})
		}
		p.cells = append(p.cells, Cell{Char: ' ', Word: i})
		p.words = append(p.words, [2]int{start, len(p.cells)})
	}
	return p
}

// Len returns the number of cells.
func (p *Passage) Len() int {
	return len(p.cells)
}

// Words returns the number of words.
func (p *Passage) Words() int {
	return len(p.words)
}

// Text returns the passage as a plain string.
func (p *Passage) Text() string {
	runes := make([]rune, len(p.cells))
	for i, c := range p.cells {
		runes[i] = c.Char
	}
	return string(runes)
}

// WordRange returns the half-open cell range of a word, separator included.
func (p *Passage) WordRange(word int) Range {
	if word < 0 || word >= len(p.words) {
		return Range{}
	}
	return Range{Start: p.words[word][0], End: p.words[word][1]}
}

// Range is a half-open interval of cell indices.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range covers no cells.
func (r Range) Empty() bool {
	return r.End <= r.Start
}
