// Package history keeps the time series of WPM samples taken during a session.
package history

// Sample is one point of the WPM series.
type Sample struct {
	Time     float64
	NetWPM   float64
	GrossWPM float64
}

// Log is an append-only series with strictly increasing sample times.
// The zero value is ready to use.
type Log struct {
	samples []Sample
}

// Record appends a sample unless its time does not advance past the last one,
// in which case the first sample at that time wins. It reports whether the sample
// was kept.
func (l *Log) Record(time, netWPM, grossWPM float64) bool {
	if n := len(l.samples); n > 0 && l.samples[n-1].Time >= time {
		return false
	}
	l.samples = append(l.samples, Sample{Time: time, NetWPM: netWPM, GrossWPM: grossWPM})
	return true
}

// Len returns the number of samples.
func (l *Log) Len() int {
	return len(l.samples)
}

// Samples returns a copy of the series.
func (l *Log) Samples() []Sample {
	out := make([]Sample, len(l.samples))
	copy(out, l.samples)
	return out
}

// Last returns the most recent sample.
func (l *Log) Last() (Sample, bool) {
	if len(l.samples) == 0 {
		return Sample{}, false
	}
	return l.samples[len(l.samples)-1], true
}

// NetSeries returns the net WPM values in time order.
func (l *Log) NetSeries() []float64 {
	out := make([]float64, len(l.samples))
	for i, s := range l.samples {
		out[i] = s.NetWPM
	}
	return out
}

// GrossSeries returns the gross WPM values in time order.
func (l *Log) GrossSeries() []float64 {
	out := make([]float64, len(l.samples))
	for i, s := range l.samples {
		out[i] = s.GrossWPM
	}
	return out
}

// MaxGross returns the highest gross WPM seen, 0 for an empty log.
func MaxGross(samples []Sample) float64 {
	best := 0.0
	for _, s := range samples {
		if s.GrossWPM > best {
			best = s.GrossWPM
		}
	}
	return best
}
