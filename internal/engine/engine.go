package engine

import "github.com/verte-zerg/bananatype/internal/score"

// Engine tracks the cursor inside a passage and reports every judgement to a
// score tracker. It is not safe for concurrent use.
type Engine struct {
	passage *Passage
	score   *score.Tracker
	pos     int
}

// New returns an Engine positioned at the start of p.
func New(p *Passage, t *score.Tracker) *Engine {
	return &Engine{passage: p, score: t}
}

// Position returns the index of the next character to type.
func (e *Engine) Position() int {
	return e.pos
}

// Len returns the passage length.
func (e *Engine) Len() int {
	return e.passage.Len()
}

// Exhausted reports whether every character has been typed.
func (e *Engine) Exhausted() bool {
	return e.pos >= e.passage.Len()
}

// Passage returns the underlying passage.
func (e *Engine) Passage() *Passage {
	return e.passage
}

// ApplyChar judges c against the expected character and advances the cursor.
// It returns the cells whose view changed. Calling it on an exhausted passage is a
// programming error.
func (e *Engine) ApplyChar(c rune) Range {
	if e.Exhausted() {
		panic("engine: ApplyChar past end of passage")
	}
	cell := &e.passage.cells[e.pos]
	if cell.Char == c {
		cell.State = Correct
		e.score.RecordCorrect()
	} else {
		// A mistyped separator is scored like any other miss; the renderer tells
		// it apart by the cell being a space.
		cell.State = Incorrect
		e.score.RecordIncorrect()
	}
	e.pos++
	return e.window(e.pos - 1)
}

// ApplyBackspace undoes the last judged character. It is a no-op at the start.
func (e *Engine) ApplyBackspace() Range {
	if e.pos == 0 {
		return Range{}
	}
	cell := &e.passage.cells[e.pos-1]
	switch cell.State {
	case Correct:
		e.score.RecordCorrectBackspace()
	case Incorrect:
		e.score.RecordIncorrectBackspace()
	default:
		panic("engine: backspace over an unjudged cell")
	}
	cell.State = Untouched
	e.pos--
	return e.window(e.pos)
}

// window covers start and the cell after it, clipped to the passage.
func (e *Engine) window(start int) Range {
	end := start + 2
	if end > e.passage.Len() {
		end = e.passage.Len()
	}
	return Range{Start: start, End: end}
}

// Cell returns the view of cell i, with the cursor overlaid.
func (e *Engine) Cell(i int) Cell {
	c := e.passage.cells[i]
	if i == e.pos {
		c.State = Cursor
	}
	return c
}

// Cells returns a copy of the passage with the cursor overlaid. Once the passage is
// exhausted no cell is marked Cursor.
func (e *Engine) Cells() []Cell {
	out := make([]Cell, len(e.passage.cells))
	copy(out, e.passage.cells)
	if e.pos < len(out) {
		out[e.pos].State = Cursor
	}
	return out
}

// Judgement returns the stored state of cell i, ignoring the cursor.
func (e *Engine) Judgement(i int) State {
	return e.passage.cells[i].State
}

// CurrentWord returns the index of the word under the cursor, or -1 at the end.
func (e *Engine) CurrentWord() int {
	if e.Exhausted() {
		return -1
	}
	return e.passage.cells[e.pos].Word
}
