package pwp

import "gonum.org/v1/gonum/floats"

// Signal is an observation sink: subscribe it to any node's output and it
// accumulates every interval it's given, coalescing a new interval into the
// last one when they share the same function. Grounded on
// original_source/notifiers.py's Signal.
type Signal struct {
	intervals []Interval
}

// NewSignal returns an empty Signal.
func NewSignal() *Signal {
	return &Signal{}
}

// Append records interval, extending the last stored interval in place if
// it carries the same function.
func (s *Signal) Append(interval Interval) error {
	if n := len(s.intervals); n > 0 && s.intervals[n-1].Function.Equal(interval.Function) {
		s.intervals[n-1].End = interval.End
		return nil
	}
	s.intervals = append(s.intervals, interval)
	return nil
}

// Intervals returns the accumulated intervals in arrival order.
func (s *Signal) Intervals() []Interval {
	return s.intervals
}

// pointsPerCurve is how many evenly-spaced samples a degree-2 interval
// contributes to Points — enough to render its curvature plausibly without
// unbounded output for long traces.
const pointsPerCurve = 20

// Points samples every accumulated interval into (time, value) pairs
// suitable for plotting or export: degree-≤1 intervals contribute just
// their two endpoints (the function is exactly determined by them), while
// degree-2 intervals are sampled at pointsPerCurve evenly-spaced points.
func (s *Signal) Points() ([]float64, []float64) {
	var times, values []float64
	for _, interval := range s.intervals {
		if interval.Function.Degree() < 2 {
			times = append(times, interval.Start, interval.End)
			values = append(values, interval.Function.Eval(interval.Start), interval.Function.Eval(interval.End))
			continue
		}
		samples := make([]float64, pointsPerCurve)
		floats.Span(samples, interval.Start, interval.End)
		for _, t := range samples {
			times = append(times, t)
			values = append(values, interval.Function.Eval(t))
		}
	}
	return times, values
}
