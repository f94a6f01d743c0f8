package pwp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type moveCall struct {
	removed, added Interval
}

type recordingWindowObserver struct {
	adds  []Interval
	moves []moveCall
}

func (r *recordingWindowObserver) OnAdd(interval Interval) error {
	r.adds = append(r.adds, interval)
	return nil
}

func (r *recordingWindowObserver) OnMove(removed, added Interval) error {
	r.moves = append(r.moves, moveCall{removed, added})
	return nil
}

func assertMovesEqual(t *testing.T, got []moveCall, want []moveCall) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if !got[i].removed.Equal(want[i].removed) || !got[i].added.Equal(want[i].added) {
			t.Errorf("move[%d] = (%v, %v), want (%v, %v)", i, got[i].removed, got[i].added, want[i].removed, want[i].added)
		}
	}
}

func TestWindowIntervalFillThenSlide(t *testing.T) {
	w := NewWindowInterval(1.0)
	obs := &recordingWindowObserver{}
	w.Subscribe(obs)

	require.NoError(t, w.Add(NewInterval(0, 0.5, Constant(0))))
	require.NoError(t, w.Add(NewInterval(0.5, 0.8, Constant(1))))
	require.NoError(t, w.Add(NewInterval(0.8, 1.2, Constant(2))))
	require.NoError(t, w.Add(NewInterval(1.2, 1.6, Constant(3))))

	assertIntervalsEqual(t, obs.adds, []Interval{
		NewInterval(0.0, 0.5, Constant(0)),
		NewInterval(0.5, 0.8, Constant(1)),
		NewInterval(0.8, 1.0, Constant(2)),
	})
	assertMovesEqual(t, obs.moves, []moveCall{
		{NewInterval(0.0, 0.2, Constant(0)), NewInterval(1.0, 1.2, Constant(2))},
		{NewInterval(0.2, 0.5, Constant(0)), NewInterval(1.2, 1.5, Constant(3))},
		{NewInterval(0.5, 0.6, Constant(1)), NewInterval(1.5, 1.6, Constant(3))},
	})
}

func TestWindowIntervalSimple(t *testing.T) {
	w := NewWindowInterval(2.0)
	obs := &recordingWindowObserver{}
	w.Subscribe(obs)

	require.NoError(t, w.Add(NewInterval(0, 2.5, Constant(0))))
	require.NoError(t, w.Add(NewInterval(2.5, 3, Constant(1))))
	require.NoError(t, w.Add(NewInterval(3, 5.0, Constant(2))))

	assertIntervalsEqual(t, obs.adds, []Interval{
		NewInterval(0.0, 2.0, Constant(0)),
	})
	assertMovesEqual(t, obs.moves, []moveCall{
		{NewInterval(0.0, 0.5, Constant(0)), NewInterval(2.0, 2.5, Constant(0))},
		{NewInterval(0.5, 1.0, Constant(0)), NewInterval(2.5, 3.0, Constant(1))},
		{NewInterval(1.0, 2.5, Constant(0)), NewInterval(3.0, 4.5, Constant(2))},
		{NewInterval(2.5, 3.0, Constant(1)), NewInterval(4.5, 5.0, Constant(2))},
	})
}

func TestWindowIntervalShortWindow(t *testing.T) {
	w := NewWindowInterval(0.5)
	obs := &recordingWindowObserver{}
	w.Subscribe(obs)

	require.NoError(t, w.Add(NewInterval(0, 1.0, Constant(0))))

	assertIntervalsEqual(t, obs.adds, []Interval{
		NewInterval(0.0, 0.5, Constant(0)),
	})
	assertMovesEqual(t, obs.moves, []moveCall{
		{NewInterval(0.0, 0.5, Constant(0)), NewInterval(0.5, 1.0, Constant(0))},
	})
}

func TestWindowIntervalPropagatesObserverError(t *testing.T) {
	w := NewWindowInterval(1.0)
	w.Subscribe(errObserver{})

	err := w.Add(NewInterval(0, 2, Constant(0)))

	require.ErrorIs(t, err, errBoom)
}

type errObserver struct{}

func (errObserver) OnAdd(Interval) error            { return errBoom }
func (errObserver) OnMove(Interval, Interval) error { return errBoom }
