// Package session runs one timed typing test: it merges clock ticks with keystroke
// events and decides when a test starts, restarts and ends.
package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/bananatype/internal/clock"
	"github.com/verte-zerg/bananatype/internal/engine"
	"github.com/verte-zerg/bananatype/internal/history"
	"github.com/verte-zerg/bananatype/internal/model"
	"github.com/verte-zerg/bananatype/internal/score"
)

const (
	// WordCount is the number of words sampled into each passage.
	WordCount = 100
	// Duration is the length of a test.
	Duration = 30 * time.Second
	// Rate is the number of clock ticks per second.
	Rate = 2.0
	// HistoryInterval is the spacing of WPM samples kept for the results chart.
	HistoryInterval = time.Second
)

// PollInterval bounds how long the foreground loop waits before draining ticks.
const PollInterval = time.Duration(float64(time.Second) / Rate)

// State is the phase of the session.
type State int

const (
	Idle State = iota
	Running
	Finished
	Quit
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EventKind identifies a user action.
type EventKind int

const (
	EventChar EventKind = iota
	EventBackspace
	EventRestart
	EventQuit
)

// Event is one user action, already decoded from the keyboard.
type Event struct {
	Kind EventKind
	Char rune
}

// Char returns a character event.
func Char(r rune) Event { return Event{Kind: EventChar, Char: r} }

// Backspace returns a backspace event.
func Backspace() Event { return Event{Kind: EventBackspace} }

// Restart returns a restart event.
func Restart() Event { return Event{Kind: EventRestart} }

// QuitEvent returns a quit event.
func QuitEvent() Event { return Event{Kind: EventQuit} }

// Result describes the effect of an event.
type Result struct {
	// Changed lists cells whose view changed. Reset is set instead when the whole
	// passage was replaced.
	Changed engine.Range
	Reset   bool
	// Finished is set when this event ended the test.
	Finished bool
	Quit     bool
}

// Config defines a session. Words and Source are required.
type Config struct {
	Words     []string
	Source    engine.Source
	WordCount int
	Duration  time.Duration
	Rate      float64
	// ClockOptions are passed to every clock the session starts.
	ClockOptions []clock.Option
	Logger       zerolog.Logger
}

// Machine owns the passage, score and history of the current test. All methods
// must be called from the same goroutine; only the clock runs elsewhere.
type Machine struct {
	cfg    Config
	clock  *clock.Clock
	logger zerolog.Logger

	state   State
	passage *engine.Passage
	engine  *engine.Engine
	score   *score.Tracker
	history *history.Log

	stream      *clock.Stream
	ticks       int
	sampleTicks int
	finishedBy  string
}

// New validates cfg and builds the first passage.
func New(cfg Config) (*Machine, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("session source is required")
	}
	if cfg.WordCount == 0 {
		cfg.WordCount = WordCount
	}
	if cfg.Duration == 0 {
		cfg.Duration = Duration
	}
	if cfg.Rate == 0 {
		cfg.Rate = Rate
	}
	if cfg.Duration < 0 || cfg.Rate < 0 {
		return nil, fmt.Errorf("session duration and rate must be positive")
	}
	m := &Machine{
		cfg:         cfg,
		clock:       clock.New(cfg.Duration, cfg.Rate, cfg.ClockOptions...),
		logger:      cfg.Logger,
		sampleTicks: int(math.Max(1, math.Round(HistoryInterval.Seconds()*cfg.Rate))),
	}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) reset() error {
	p, err := engine.Build(m.cfg.Words, m.cfg.WordCount, m.cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to build passage: %w", err)
	}
	m.stopClock()
	m.passage = p
	m.score = &score.Tracker{}
	m.engine = engine.New(p, m.score)
	m.history = &history.Log{}
	m.ticks = 0
	m.finishedBy = ""
	m.state = Idle
	m.refresh()
	return nil
}

func (m *Machine) stopClock() {
	if m.stream == nil {
		return
	}
	m.stream.Stop()
	m.stream = nil
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Elapsed returns the seconds counted by the clock so far.
func (m *Machine) Elapsed() float64 {
	return float64(m.ticks) / m.cfg.Rate
}

// Handle applies one user event.
func (m *Machine) Handle(ev Event) Result {
	switch ev.Kind {
	case EventQuit:
		m.stopClock()
		m.state = Quit
		m.logger.Debug().Msg("session quit")
		return Result{Quit: true}
	case EventRestart:
		if m.state == Quit {
			return Result{}
		}
		prev := m.state
		if err := m.reset(); err != nil {
			// The corpus was validated by New and never changes.
			panic(err)
		}
		m.logger.Debug().Stringer("from", prev).Msg("session restarted")
		return Result{Reset: true}
	case EventChar, EventBackspace:
	default:
		return Result{}
	}

	switch m.state {
	case Idle:
		m.start()
	case Running:
	default:
		return Result{}
	}

	var res Result
	if ev.Kind == EventBackspace {
		res.Changed = m.engine.ApplyBackspace()
	} else {
		res.Changed = m.engine.ApplyChar(ev.Char)
		if m.engine.Exhausted() {
			m.finish("passage exhausted")
			res.Finished = true
			return res
		}
	}
	m.refresh()
	return res
}

func (m *Machine) start() {
	if m.stream == nil {
		m.stream = m.clock.Start(context.Background())
		m.logger.Debug().Uint64("gen", m.stream.Gen).Msg("clock started")
	}
	m.state = Running
}

func (m *Machine) finish(reason string) {
	m.stopClock()
	m.state = Finished
	m.finishedBy = reason
	m.logger.Debug().
		Str("reason", reason).
		Float64("elapsed", m.Elapsed()).
		Float64("net_wpm", m.score.NetWPM(m.Elapsed())).
		Float64("gross_wpm", m.score.GrossWPM(m.Elapsed())).
		Float64("accuracy", m.score.Accuracy()).
		Msg("session finished")
}

// Tick counts one clock notification. Ticks from an abandoned stream, or that
// arrive outside a running test, are ignored. It reports whether the tick counted.
func (m *Machine) Tick(t clock.Tick) bool {
	if m.state != Running || m.stream == nil || t.Gen != m.stream.Gen {
		m.logger.Debug().Uint64("gen", t.Gen).Int("seq", t.Seq).Msg("stale tick dropped")
		return false
	}
	m.ticks++
	if m.Elapsed() >= m.cfg.Duration.Seconds() {
		m.finish("time up")
		return true
	}
	m.refresh()
	return true
}

// Drain processes every tick already queued by the clock without blocking and
// returns how many counted.
func (m *Machine) Drain() int {
	counted := 0
	for m.stream != nil {
		select {
		case t, ok := <-m.stream.C:
			if !ok {
				// The stream ran dry before the elapsed time reached the duration,
				// which happens when duration*rate is not a whole number.
				m.stream = nil
				if m.state == Running {
					m.finish("clock exhausted")
				}
				return counted
			}
			if m.Tick(t) {
				counted++
			}
		default:
			return counted
		}
	}
	return counted
}

// refresh samples WPM for the chart at every history interval.
func (m *Machine) refresh() {
	if m.ticks%m.sampleTicks != 0 {
		return
	}
	elapsed := m.Elapsed()
	m.history.Record(elapsed, m.score.NetWPM(elapsed), m.score.GrossWPM(elapsed))
}

// Close stops the clock.
func (m *Machine) Close() {
	m.stopClock()
}

// Position returns the cursor position.
func (m *Machine) Position() int {
	return m.engine.Position()
}

// Cell returns the current view of one cell.
func (m *Machine) Cell(i int) engine.Cell {
	return m.engine.Cell(i)
}

// Len returns the passage length.
func (m *Machine) Len() int {
	return m.engine.Len()
}

// CurrentWord returns the word under the cursor, or -1.
func (m *Machine) CurrentWord() int {
	return m.engine.CurrentWord()
}

// WordRange returns the cells of a word.
func (m *Machine) WordRange(word int) engine.Range {
	return m.passage.WordRange(word)
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	State          State
	Cells          []engine.Cell
	Position       int
	Elapsed        float64
	Duration       float64
	GrossWPM       float64
	NetWPM         float64
	Accuracy       float64
	Correct        int
	Incorrect      int
	TotalIncorrect int
	History        []history.Sample
	Generation     uint64
	FinishedBy     string
}

// Remaining returns the seconds left on the clock.
func (s Snapshot) Remaining() float64 {
	return math.Max(0, s.Duration-s.Elapsed)
}

// Progress returns the elapsed fraction of the test in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return math.Min(1, s.Elapsed/s.Duration)
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	elapsed := m.Elapsed()
	snap := Snapshot{
		State:          m.state,
		Cells:          m.engine.Cells(),
		Position:       m.engine.Position(),
		Elapsed:        elapsed,
		Duration:       m.cfg.Duration.Seconds(),
		GrossWPM:       m.score.GrossWPM(elapsed),
		NetWPM:         m.score.NetWPM(elapsed),
		Accuracy:       m.score.Accuracy(),
		Correct:        m.score.Correct(),
		Incorrect:      m.score.Incorrect(),
		TotalIncorrect: m.score.TotalIncorrect(),
		History:        m.history.Samples(),
		FinishedBy:     m.finishedBy,
	}
	if m.stream != nil {
		snap.Generation = m.stream.Gen
	}
	return snap
}

// NetSeries returns the sampled net WPM values.
func (m *Machine) NetSeries() []float64 {
	return m.history.NetSeries()
}

// Result summarizes the current test for reporting.
func (s Snapshot) Result() model.Result {
	samples := make([]model.WPMSample, len(s.History))
	for i, h := range s.History {
		samples[i] = model.WPMSample{Time: h.Time, NetWPM: h.NetWPM, GrossWPM: h.GrossWPM}
	}
	return model.Result{
		FinishedAt:     time.Now(),
		Reason:         s.FinishedBy,
		Elapsed:        s.Elapsed,
		Duration:       s.Duration,
		GrossWPM:       s.GrossWPM,
		NetWPM:         s.NetWPM,
		Accuracy:       s.Accuracy,
		Correct:        s.Correct,
		Incorrect:      s.Incorrect,
		TotalIncorrect: s.TotalIncorrect,
		Samples:        samples,
	}
}
