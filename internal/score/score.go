// Package score accumulates per-keystroke correctness and derives typing metrics.
package score

// CharsPerWord is the conventional number of characters counted as one word.
const CharsPerWord = 5.0

// Tracker counts judged keystrokes.
//
// incorrect is the net count and drops on a corrective backspace. totalIncorrect is
// monotonic and feeds Accuracy, so fixed mistakes still count against it.
type Tracker struct {
	correct        int
	incorrect      int
	totalIncorrect int
}

// RecordCorrect counts a keystroke that matched the expected character.
func (t *Tracker) RecordCorrect() {
	t.correct++
}

// RecordIncorrect counts a keystroke that did not match.
func (t *Tracker) RecordIncorrect() {
	t.incorrect++
	t.totalIncorrect++
}

// RecordCorrectBackspace undoes a correct keystroke.
func (t *Tracker) RecordCorrectBackspace() {
	t.correct--
}

// RecordIncorrectBackspace undoes an incorrect keystroke. The lifetime total is kept.
func (t *Tracker) RecordIncorrectBackspace() {
	t.incorrect--
}

// Correct returns the number of currently standing correct characters.
func (t *Tracker) Correct() int { return t.correct }

// Incorrect returns the number of currently standing incorrect characters.
func (t *Tracker) Incorrect() int { return t.incorrect }

// TotalIncorrect returns every incorrect keystroke ever recorded.
func (t *Tracker) TotalIncorrect() int { return t.totalIncorrect }

// GrossWPM counts every standing keystroke, correct or not.
func (t *Tracker) GrossWPM(elapsedSeconds float64) float64 {
	if elapsedSeconds == 0 {
		return 0
	}
	return (float64(t.correct+t.incorrect) / CharsPerWord) / (elapsedSeconds / 60)
}

// NetWPM is GrossWPM minus the per-minute rate of standing errors. It is not clamped
// and goes negative when errors dominate.
func (t *Tracker) NetWPM(elapsedSeconds float64) float64 {
	if elapsedSeconds == 0 {
		return 0
	}
	return t.GrossWPM(elapsedSeconds) - float64(t.incorrect)/(elapsedSeconds/60)
}

// Accuracy returns the lifetime percentage of correct keystrokes, 100 when nothing
// has been judged yet.
func (t *Tracker) Accuracy() float64 {
	den := t.correct + t.totalIncorrect
	if den == 0 {
		return 100
	}
	return float64(t.correct) / float64(den) * 100
}
