package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestStreamEmitsExactTotal(t *testing.T) {
	c := New(30*time.Second, 2, WithAfter(immediate))
	require.Equal(t, 60, c.Total())
	require.Equal(t, 500*time.Millisecond, c.Interval())

	s := c.Start(context.Background())
	count := 0
	for tick := range s.C {
		count++
		require.Equal(t, count, tick.Seq)
		require.Equal(t, s.Gen, tick.Gen)
	}
	require.Equal(t, 60, count)
}

func TestRestartUsesNewGeneration(t *testing.T) {
	c := New(time.Second, 4, WithAfter(immediate))
	first := c.Start(context.Background())
	second := c.Start(context.Background())
	require.NotEqual(t, first.Gen, second.Gen)

	for tick := range second.C {
		require.Equal(t, second.Gen, tick.Gen)
	}
	first.Stop()
}

func TestStopHaltsProducer(t *testing.T) {
	block := make(chan time.Time)
	c := New(10*time.Second, 2, WithAfter(func(time.Duration) <-chan time.Time { return block }))
	s := c.Start(context.Background())
	s.Stop()

	select {
	case _, ok := <-s.C:
		require.False(t, ok, "stopped stream must not emit")
	case <-time.After(time.Second):
		t.Fatalf("stream was not closed after Stop")
	}
}

func TestRealTimerPacing(t *testing.T) {
	c := New(100*time.Millisecond, 50)
	start := time.Now()
	s := c.Start(context.Background())
	count := 0
	for range s.C {
		count++
	}
	require.Equal(t, 5, count)
	require.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestZeroRateEmitsNothing(t *testing.T) {
	c := New(time.Second, 0)
	s := c.Start(context.Background())
	_, ok := <-s.C
	require.False(t, ok)
}
