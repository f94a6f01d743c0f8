package pwp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertIntervalsEqual(t *testing.T, got, want []Interval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d intervals, want %d\n got: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("interval[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIntegrateConstant(t *testing.T) {
	interval := NewInterval(0, 1, Constant(2))

	got, err := interval.Integrate()

	assert.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestIntegrateLinear(t *testing.T) {
	interval := NewInterval(1, 2, Linear(1, 1))

	got, err := interval.Integrate()

	assert.NoError(t, err)
	assert.InDelta(t, 5.0/2.0, got, EPS)
}

func TestIntegrateFullIsError(t *testing.T) {
	interval := NewInterval(1, 2, Full(1, 1, 1))

	_, err := interval.Integrate()

	assert.ErrorIs(t, err, ErrInvalidDegree)
}

func TestApplyOperator(t *testing.T) {
	op := func(p Polynomial) Polynomial { return p.Add(Constant(1)) }
	interval := NewInterval(1, 2, Constant(3))

	got := interval.ApplyOperator(op)

	assert.True(t, got.Equal(NewInterval(1, 2, Constant(4))))
}

func TestApplyBinaryOperator(t *testing.T) {
	op := func(a, b Polynomial) Polynomial { return a.Add(b) }
	left := NewInterval(1, 2, Constant(3))
	right := NewInterval(1, 2, Constant(3))

	got, err := left.ApplyBinaryOperator(op, right)

	assert.NoError(t, err)
	assert.True(t, got.Equal(NewInterval(1, 2, Constant(6))))
}

func TestMinIntervalLeftConstant(t *testing.T) {
	left := NewInterval(1, 2, Constant(3))
	right := NewInterval(1, 2, Constant(4))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{left})
}

func TestMinIntervalRightConstant(t *testing.T) {
	left := NewInterval(1, 2, Constant(4))
	right := NewInterval(1, 2, Constant(3))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{right})
}

func TestMinIntervalRightLinear(t *testing.T) {
	left := NewInterval(1, 2, Linear(1, 0))
	right := NewInterval(1, 2, Linear(-1, 3))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{
		NewInterval(1, 1.5, Linear(1, 0)),
		NewInterval(1.5, 2, Linear(-1, 3)),
	})
}

func TestMinIntervalSameInterval(t *testing.T) {
	left := NewInterval(1, 2, Linear(1, 0))
	right := NewInterval(1, 2, Linear(1, 0))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{right})
}

func TestMinIntervalPolynomialWithNoZeros(t *testing.T) {
	left := NewInterval(1, 2, Full(1, 0, 0))
	right := NewInterval(1, 2, Linear(1, -.1))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{right})
}

func TestMinIntervalPolynomialWithZeros(t *testing.T) {
	left := NewInterval(0, 1, Full(1, 0, 0))
	right := NewInterval(0, 1, Linear(1, -.1))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{
		NewInterval(0.0, 0.1127016653792583, Linear(1, -0.1)),
		NewInterval(0.1127016653792583, 0.8872983346207417, Full(1, 0, 0)),
		NewInterval(0.8872983346207417, 1.0, Linear(1, -0.1)),
	})
}

func TestMinIntervalWithZerosOnLeftBound(t *testing.T) {
	left := NewInterval(0, 1, Linear(1, 0))
	right := NewInterval(0, 1, Constant(0))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{NewInterval(0, 1, Constant(0))})
}

func TestMinIntervalWithZerosOnRightBound(t *testing.T) {
	left := NewInterval(0, 1, Linear(-1, 1))
	right := NewInterval(0, 1, Constant(0))

	got, err := left.MinInterval(right)

	assert.NoError(t, err)
	assertIntervalsEqual(t, got, []Interval{NewInterval(0, 1, Constant(0))})
}

func TestMinIntervalIsCommutative(t *testing.T) {
	left := NewInterval(0, 1, Full(1, 0, 0))
	right := NewInterval(0, 1, Linear(1, -.1))

	fromLeft, err := left.MinInterval(right)
	assert.NoError(t, err)
	fromRight, err := right.MinInterval(left)
	assert.NoError(t, err)

	assertIntervalsEqual(t, fromLeft, fromRight)
}

func TestIntervalHigherThanWithLinearFunction(t *testing.T) {
	interval := NewInterval(-1, 1, Linear(1, 0))

	got := interval.HigherThan(0)

	assertIntervalsEqual(t, got, []Interval{
		NewInterval(-1, 0, Constant(0)),
		NewInterval(0, 1, Constant(1)),
	})
}

func TestIntervalHigherThanWithFullPolynomialFunction(t *testing.T) {
	interval := NewInterval(-2, 2, Full(1, 0, -1))

	got := interval.HigherThan(0)

	assertIntervalsEqual(t, got, []Interval{
		NewInterval(-2, -1, Constant(1)),
		NewInterval(-1, 1, Constant(0)),
		NewInterval(1, 2, Constant(1)),
	})
}

func TestIntervalMoveAbove(t *testing.T) {
	first := NewInterval(0, 1, Linear(1, 1))
	second := NewInterval(3, 4, Linear(1, 5))

	got := first.MoveAbove(second)

	assert.True(t, got.Equal(NewInterval(3, 4, Linear(1, -2))))
}

func TestIntervalShift(t *testing.T) {
	interval := NewInterval(0, 1, Linear(1, 1))

	got := interval.Shift(2)

	assert.True(t, got.Equal(NewInterval(2, 3, Linear(1, -1))))
}
