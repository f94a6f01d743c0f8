package pwp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLeftSubsetWhenTrue(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{3.0, 30}
	iv := IntervalValued{first, second}

	assert.True(t, iv.IsLeftSubset(IntervalValued{first, third}))
}

func TestIsLeftSubsetWhenFalse(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{1.50, 30}
	iv := IntervalValued{first, second}

	assert.False(t, iv.IsLeftSubset(IntervalValued{first, third}))
}

func TestIsLeftSubsetWithSameInterval(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	iv := IntervalValued{first, second}

	assert.False(t, iv.IsLeftSubset(iv))
}

func TestLeftMinus(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{1.5, 30}
	iv := IntervalValued{first, second}
	toBeRemoved := IntervalValued{first, third}

	got, err := iv.LeftMinus(toBeRemoved)

	assert.NoError(t, err)
	assert.Equal(t, IntervalValued{third, second}, got)
}

func TestGetValue(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	iv := IntervalValued{first, second}

	assert.Equal(t, 20.0, iv.GetValue(math.Min))
}

func TestIsProlongOf(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{3.0, 25}
	iv := IntervalValued{first, second}
	prolong := IntervalValued{second, third}

	assert.True(t, prolong.IsProlongOf(iv))
}

func TestIsNotAProlongBecauseOfNonConstantValue(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{3.0, 26}
	iv := IntervalValued{first, second}
	prolong := IntervalValued{second, third}

	assert.False(t, prolong.IsProlongOf(iv))
}

func TestIsNotAProlongBecauseOfTimes(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{3.0, 25}
	fourth := TimedValue{4.0, 25}
	iv := IntervalValued{first, second}
	prolong := IntervalValued{third, fourth}

	assert.False(t, prolong.IsProlongOf(iv))
}

func TestJoinLeftOf(t *testing.T) {
	first := TimedValue{1.0, 20}
	second := TimedValue{2.0, 25}
	third := TimedValue{2.0, 25}
	fourth := TimedValue{4.0, 25}
	iv := IntervalValued{first, second}
	prolong := IntervalValued{third, fourth}

	got := iv.JoinLeftOf(prolong)

	assert.Equal(t, IntervalValued{first, fourth}, got)
}

func TestIntervalQueueAddCoalescesProlongingTail(t *testing.T) {
	var q IntervalQueue
	q.Add(TimedValue{1.0, 20}, TimedValue{2.0, 25})
	q.Add(TimedValue{2.0, 25}, TimedValue{4.0, 25})

	value, err := q.Evaluate(math.Min)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, value)
}

func TestIntervalQueueRemoveExactHead(t *testing.T) {
	var q IntervalQueue
	q.Add(TimedValue{1.0, 20}, TimedValue{2.0, 25})
	q.Add(TimedValue{3.0, 30}, TimedValue{4.0, 35})

	err := q.Remove(TimedValue{1.0, 20}, TimedValue{2.0, 25})

	assert.NoError(t, err)
	value, err := q.Evaluate(math.Min)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, value)
}

func TestIntervalQueueRemoveLeftSubsetShrinksHead(t *testing.T) {
	var q IntervalQueue
	q.Add(TimedValue{1.0, 20}, TimedValue{3.0, 30})

	err := q.Remove(TimedValue{1.0, 20}, TimedValue{2.0, 25})

	assert.NoError(t, err)
	assert.True(t, q.IsFull())
}

func TestIntervalQueueRemoveOnEmptyQueueIsInvalid(t *testing.T) {
	var q IntervalQueue
	err := q.Remove(TimedValue{1.0, 20}, TimedValue{2.0, 25})

	assert.ErrorIs(t, err, ErrInvalidRemoval)
}

func TestIntervalQueueEvaluateOnEmptyQueueIsError(t *testing.T) {
	var q IntervalQueue
	_, err := q.Evaluate(math.Min)

	assert.ErrorIs(t, err, ErrEmptyBuffer)
}
