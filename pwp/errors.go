// Package pwp implements the piecewise-polynomial interval algebra, the
// sliding-window operators, and the push-based dataflow engine that evaluates
// composed signal expressions over streams of timestamped samples.
package pwp

import "errors"

// EPS is the numeric tolerance used for all time and polynomial-coefficient
// comparisons (split positions, endpoint equality, window invariants).
const EPS = 1e-5

// Error kinds returned by the core algebra. Propagation is fail-fast: these
// signify programmer/contract faults (malformed intervals, out-of-range
// split points, degree mismatches) and are never recovered from internally.
// An undefined-valued Interval is not an error — it is first-class data used
// to represent gaps in the stream.
var (
	// ErrInvalidInterval is returned when an operation that requires two
	// intervals to share endpoints is given intervals that do not.
	ErrInvalidInterval = errors.New("pwp: intervals do not share endpoints")

	// ErrInvalidSplit is returned by Interval.Split when the split offset
	// falls outside [0, length].
	ErrInvalidSplit = errors.New("pwp: split position outside [0, length]")

	// ErrInvalidProjection is returned by Interval.ProjectOnto when the
	// target interval is not contained within the source.
	ErrInvalidProjection = errors.New("pwp: projection target not contained in source")

	// ErrInvalidDegree is returned by Interval.Integrate when the interval's
	// polynomial has degree 2 (a definite integral of a quadratic would need
	// degree 3, which this algebra never produces).
	ErrInvalidDegree = errors.New("pwp: definite integral undefined for degree-2 polynomial")

	// ErrInvalidRemoval is returned by IntervalQueue.Remove when the argument
	// is neither equal to the head nor a left-subset of it.
	ErrInvalidRemoval = errors.New("pwp: removal argument is not the head or a left subset of it")

	// ErrEmptyBuffer is returned by IntervalQueue.Evaluate when the queue
	// holds no segments to reduce over.
	ErrEmptyBuffer = errors.New("pwp: reduction requested on an empty queue")
)
