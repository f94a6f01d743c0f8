package pwp

// IntervalValued pairs two TimedValue endpoints into a flat-endpoint segment,
// used by IntervalQueue for the min/max window operators' endpoint-based
// reductions.
type IntervalValued struct {
	Left, Right TimedValue
}

func timedValueEqual(a, b TimedValue) bool {
	return nearlyEqual(a.Time, b.Time) && nearlyEqual(a.Value, b.Value)
}

// Equal reports whether iv and other share both endpoints.
func (iv IntervalValued) Equal(other IntervalValued) bool {
	return timedValueEqual(iv.Left, other.Left) && timedValueEqual(iv.Right, other.Right)
}

// IsLeftSubset reports whether iv shares other's left endpoint but ends
// strictly before it — i.e. iv is the left portion of other.
func (iv IntervalValued) IsLeftSubset(other IntervalValued) bool {
	return timedValueEqual(other.Left, iv.Left) && iv.Right.Time < other.Right.Time-EPS
}

// LeftMinus returns iv with the left portion up to other's right endpoint
// removed, i.e. [other.Right, iv.Right]. Comparisons are made explicitly on
// the Time field, not the full (time, value) tuple — comparing values would
// misorder endpoints whenever two samples share a timestamp but differ in
// value.
func (iv IntervalValued) LeftMinus(other IntervalValued) (IntervalValued, error) {
	if other.Right.Time > iv.Right.Time+EPS {
		return IntervalValued{}, ErrInvalidRemoval
	}
	return IntervalValued{other.Right, iv.Right}, nil
}

// GetValue applies a binary reducer (e.g. math.Min, math.Max) to iv's two
// endpoint values.
func (iv IntervalValued) GetValue(reducer func(a, b float64) float64) float64 {
	return reducer(iv.Left.Value, iv.Right.Value)
}

// IsProlongOf reports whether iv directly continues other at a constant
// value: iv starts where other ends, and the value is unchanged across the
// join.
func (iv IntervalValued) IsProlongOf(other IntervalValued) bool {
	return nearlyEqual(iv.Left.Time, other.Right.Time) &&
		nearlyEqual(iv.Left.Value, iv.Right.Value) &&
		nearlyEqual(iv.Right.Value, other.Right.Value)
}

// JoinLeftOf returns the segment spanning iv's left endpoint through other's
// right endpoint.
func (iv IntervalValued) JoinLeftOf(other IntervalValued) IntervalValued {
	return IntervalValued{iv.Left, other.Right}
}

// IntervalQueue holds an ordered sequence of IntervalValued segments,
// supporting coalescing Add, subset-aware Remove, and reducer-based
// Evaluate — the state behind the Min/Max window operators.
type IntervalQueue struct {
	segments []IntervalValued
}

// Add appends the segment [first, second]. If it prolongs the current tail
// (same value, contiguous in time) the tail is extended in place rather than
// a new segment appended, so a run of equal-valued samples stays one
// segment instead of growing one entry per sample.
func (q *IntervalQueue) Add(first, second TimedValue) {
	segment := IntervalValued{first, second}
	if n := len(q.segments); n > 0 && segment.IsProlongOf(q.segments[n-1]) {
		q.segments[n-1] = q.segments[n-1].JoinLeftOf(segment)
		return
	}
	q.segments = append(q.segments, segment)
}

// Remove removes [first, second] from the front of the queue. The argument
// must equal the head (popped outright) or be a left subset of it (head is
// shrunk to [second, headRight]); otherwise it fails with ErrInvalidRemoval.
func (q *IntervalQueue) Remove(first, second TimedValue) error {
	if len(q.segments) == 0 {
		return ErrInvalidRemoval
	}
	target := IntervalValued{first, second}
	head := q.segments[0]
	if head.Equal(target) {
		q.segments = q.segments[1:]
		return nil
	}
	if !target.IsLeftSubset(head) {
		return ErrInvalidRemoval
	}
	shrunk, err := head.LeftMinus(target)
	if err != nil {
		return err
	}
	q.segments[0] = shrunk
	return nil
}

// IsFull reports whether the queue holds any segments.
func (q *IntervalQueue) IsFull() bool {
	return len(q.segments) > 0
}

// Evaluate reduces every segment to a value via reducer (applied to the
// segment's own endpoint pair), then folds those values together with the
// same reducer. Fails with ErrEmptyBuffer if the queue is empty.
func (q *IntervalQueue) Evaluate(reducer func(a, b float64) float64) (float64, error) {
	if len(q.segments) == 0 {
		return 0, ErrEmptyBuffer
	}
	result := q.segments[0].GetValue(reducer)
	for _, seg := range q.segments[1:] {
		result = reducer(result, seg.GetValue(reducer))
	}
	return result, nil
}
