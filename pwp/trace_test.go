package pwp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignalAppendCoalescesSameFunction(t *testing.T) {
	s := NewSignal()
	require.NoError(t, s.Append(NewInterval(0, 1, Constant(2))))
	require.NoError(t, s.Append(NewInterval(1, 2, Constant(2))))

	assertIntervalsEqual(t, s.Intervals(), []Interval{NewInterval(0, 2, Constant(2))})
}

func TestSignalAppendKeepsSeparateIntervalsForDifferentFunctions(t *testing.T) {
	s := NewSignal()
	require.NoError(t, s.Append(NewInterval(0, 1, Constant(2))))
	require.NoError(t, s.Append(NewInterval(1, 2, Constant(3))))

	assertIntervalsEqual(t, s.Intervals(), []Interval{
		NewInterval(0, 1, Constant(2)),
		NewInterval(1, 2, Constant(3)),
	})
}

func TestSignalPointsForLowDegreeIntervalsUsesEndpoints(t *testing.T) {
	s := NewSignal()
	require.NoError(t, s.Append(NewInterval(0, 1, Linear(1, 0))))

	times, values := s.Points()

	require.Equal(t, []float64{0, 1}, times)
	require.Equal(t, []float64{0, 1}, values)
}

func TestSignalPointsForQuadraticIntervalSamplesMultiplePoints(t *testing.T) {
	s := NewSignal()
	require.NoError(t, s.Append(NewInterval(0, 1, Full(1, 0, 0))))

	times, values := s.Points()

	require.Len(t, times, pointsPerCurve)
	require.Len(t, values, pointsPerCurve)
	require.InDelta(t, 0.0, times[0], EPS)
	require.InDelta(t, 1.0, times[len(times)-1], EPS)
}
