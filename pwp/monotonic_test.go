package pwp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinMonotonicEdgeRemovePartial(t *testing.T) {
	me := NewMinMonotonicEdge()
	require.NoError(t, me.Add(NewInterval(0, 1, Constant(0))))
	require.NoError(t, me.Add(NewInterval(1, 2, Constant(1))))
	require.NoError(t, me.Add(NewInterval(2, 3, Constant(2))))

	removed, err := me.Remove(1.5)

	require.NoError(t, err)
	assertIntervalsEqual(t, removed, []Interval{
		NewInterval(0, 1, Constant(0)),
		NewInterval(1, 1.5, Constant(1)),
	})
}

func TestMinMonotonicEdgeRemoveExactlyOneEntry(t *testing.T) {
	me := NewMinMonotonicEdge()
	require.NoError(t, me.Add(NewInterval(0, 1, Constant(0))))
	require.NoError(t, me.Add(NewInterval(1, 2, Constant(1))))
	require.NoError(t, me.Add(NewInterval(2, 3, Constant(2))))

	removed, err := me.Remove(1)

	require.NoError(t, err)
	assertIntervalsEqual(t, removed, []Interval{NewInterval(0, 1, Constant(0))})
}

func TestMinMonotonicEdgeRemoveEverything(t *testing.T) {
	me := NewMinMonotonicEdge()
	require.NoError(t, me.Add(NewInterval(0, 1, Constant(0))))
	require.NoError(t, me.Add(NewInterval(1, 2, Constant(1))))
	require.NoError(t, me.Add(NewInterval(2, 3, Constant(2))))

	removed, err := me.Remove(3)

	require.NoError(t, err)
	assertIntervalsEqual(t, removed, []Interval{
		NewInterval(0, 1, Constant(0)),
		NewInterval(1, 2, Constant(1)),
		NewInterval(2, 3, Constant(2)),
	})
}

func TestMinMonotonicEdgeRemoveSliver(t *testing.T) {
	me := NewMinMonotonicEdge()
	require.NoError(t, me.Add(NewInterval(0, 1, Constant(0))))
	require.NoError(t, me.Add(NewInterval(1, 2, Constant(1))))
	require.NoError(t, me.Add(NewInterval(2, 3, Constant(2))))

	removed, err := me.Remove(0.2)

	require.NoError(t, err)
	assertIntervalsEqual(t, removed, []Interval{NewInterval(0, 0.2, Constant(0))})
}

func TestMinMonotonicEdgeAddEvictsWorseCandidates(t *testing.T) {
	me := NewMinMonotonicEdge()
	require.NoError(t, me.Add(NewInterval(0, 1, Constant(0))))
	require.NoError(t, me.Add(NewInterval(1, 2, Constant(2))))
	require.NoError(t, me.Add(NewInterval(2, 3, Constant(1))))

	removed, err := me.Remove(1.5)

	require.NoError(t, err)
	assertIntervalsEqual(t, removed, []Interval{
		NewInterval(0, 1, Constant(0)),
		NewInterval(1, 1.5, Constant(1)),
	})
}

func TestMinMonotonicEdgeAddEvictsDownToOneEntry(t *testing.T) {
	me := NewMinMonotonicEdge()
	require.NoError(t, me.Add(NewInterval(0, 1, Constant(1))))
	require.NoError(t, me.Add(NewInterval(1, 2, Constant(2))))
	require.NoError(t, me.Add(NewInterval(2, 3, Constant(0))))

	removed, err := me.Remove(1)

	require.NoError(t, err)
	assertIntervalsEqual(t, removed, []Interval{NewInterval(0, 1, Constant(0))})
}

func TestMinLemireSlidesAndEvicts(t *testing.T) {
	lemire := NewMinLemire()
	require.NoError(t, lemire.Add(NewInterval(0, 1, Constant(5))))

	result, err := lemire.Move(NewInterval(0, 1, Constant(5)), NewInterval(1, 2, Constant(3)))

	require.NoError(t, err)
	assertIntervalsEqual(t, result, []Interval{NewInterval(0, 1, Constant(3))})
}

func TestMaxLemireSlidesAndEvicts(t *testing.T) {
	lemire := NewMaxLemire()
	require.NoError(t, lemire.Add(NewInterval(0, 1, Constant(5))))

	result, err := lemire.Move(NewInterval(0, 1, Constant(5)), NewInterval(1, 2, Constant(8)))

	require.NoError(t, err)
	assertIntervalsEqual(t, result, []Interval{NewInterval(0, 1, Constant(8))})
}
