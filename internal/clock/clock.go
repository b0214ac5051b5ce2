// Package clock provides the background countdown that paces a typing session.
package clock

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

// Tick is one notification from a running stream.
type Tick struct {
	// Gen identifies the stream that produced the tick.
	Gen uint64
	// Seq is 1-based within the stream.
	Seq int
}

// Clock starts tick streams of a fixed duration and rate.
type Clock struct {
	duration time.Duration
	rate     float64
	after    func(time.Duration) <-chan time.Time
	gen      atomic.Uint64
}

// Option configures a Clock.
type Option func(*Clock)

// WithAfter replaces time.After as the source of inter-tick delays.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(c *Clock) {
		c.after = after
	}
}

// New returns a Clock emitting rate ticks per second for duration.
func New(duration time.Duration, rate float64, opts ...Option) *Clock {
	c := &Clock{
		duration: duration,
		rate:     rate,
		after:    time.After,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Total returns how many ticks a stream emits.
func (c *Clock) Total() int {
	if c.rate <= 0 || c.duration <= 0 {
		return 0
	}
	return int(math.Round(c.duration.Seconds() * c.rate))
}

// Interval returns the delay between consecutive ticks.
func (c *Clock) Interval() time.Duration {
	if c.rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.rate)
}

// Rate returns ticks per second.
func (c *Clock) Rate() float64 { return c.rate }

// Duration returns the length of a full stream.
func (c *Clock) Duration() time.Duration { return c.duration }

// Stream is the consumer side of one started countdown.
type Stream struct {
	Gen    uint64
	C      <-chan Tick
	cancel context.CancelFunc
}

// Stop abandons the stream. No tick is sent after Stop returns; ticks already
// queued stay in the channel and are the consumer's to ignore.
func (s *Stream) Stop() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
}

// Start launches a producer goroutine that sends Total ticks, one per Interval,
// then closes the channel. The channel holds every tick, so the producer never
// blocks on a slow consumer.
func (c *Clock) Start(ctx context.Context) *Stream {
	gen := c.gen.Add(1)
	total := c.Total()
	interval := c.Interval()
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Tick, total)

	go func() {
		defer close(ch)
		for seq := 1; seq <= total; seq++ {
			select {
			case <-ctx.Done():
				return
			case <-c.after(interval):
			}
			// A cancel that races the delay must still win.
			if ctx.Err() != nil {
				return
			}
			ch <- Tick{Gen: gen, Seq: seq}
		}
	}()

	return &Stream{Gen: gen, C: ch, cancel: cancel}
}
