package pwp

import "fmt"

// TimedValue is a single (time, value) endpoint, used by IntervalValued and
// the window min/max endpoint-queue reductions.
type TimedValue struct {
	Time  float64
	Value float64
}

// Interval is a maximal contiguous time range [Start, End] over which
// Function describes the signal. Intervals are value types, immutable after
// construction; every transformation below returns a new Interval.
type Interval struct {
	Start, End float64
	Function   Polynomial
}

// NewInterval constructs an interval over [start, end] with the given
// polynomial. Callers are responsible for start <= end.
func NewInterval(start, end float64, function Polynomial) Interval {
	return Interval{Start: start, End: end, Function: function}
}

// Length returns End - Start.
func (i Interval) Length() float64 {
	return i.End - i.Start
}

// Equal reports whether i and other have endpoints matching within EPS and
// coincident functions.
func (i Interval) Equal(other Interval) bool {
	return nearlyEqual(i.Start, other.Start) &&
		nearlyEqual(i.End, other.End) &&
		i.Function.Equal(other.Function)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g - %g] | %s", i.Start, i.End, i.Function)
}

// Split divides i at offset t from Start into two intervals sharing i's
// function: [Start, Start+t] and [Start+t, End]. Fails with ErrInvalidSplit
// if t falls outside [0, Length()] (beyond EPS tolerance).
func (i Interval) Split(t float64) (Interval, Interval, error) {
	if t < -EPS || t > i.Length()+EPS {
		return Interval{}, Interval{}, ErrInvalidSplit
	}
	splitAt := i.Start + t
	return Interval{i.Start, splitAt, i.Function}, Interval{splitAt, i.End, i.Function}, nil
}

// Subset returns i restricted to [start, end] with the same function. The
// caller ensures containment.
func (i Interval) Subset(start, end float64) Interval {
	return Interval{start, end, i.Function}
}

// requireSameBounds returns ErrInvalidInterval unless i and other share
// endpoints within EPS — the precondition for Add, Sub, and the binary
// operator helpers.
func (i Interval) requireSameBounds(other Interval) error {
	if !nearlyEqual(i.Start, other.Start) || !nearlyEqual(i.End, other.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Add returns the interval over i's bounds whose function is i.Function +
// other.Function. Requires identical endpoints.
func (i Interval) Add(other Interval) (Interval, error) {
	if err := i.requireSameBounds(other); err != nil {
		return Interval{}, err
	}
	return Interval{i.Start, i.End, i.Function.Add(other.Function)}, nil
}

// Sub returns the interval over i's bounds whose function is i.Function -
// other.Function. Requires identical endpoints.
func (i Interval) Sub(other Interval) (Interval, error) {
	if err := i.requireSameBounds(other); err != nil {
		return Interval{}, err
	}
	return Interval{i.Start, i.End, i.Function.Sub(other.Function)}, nil
}

// ApplyOperator returns the interval over i's bounds with op applied to its
// function.
func (i Interval) ApplyOperator(op func(Polynomial) Polynomial) Interval {
	return Interval{i.Start, i.End, op(i.Function)}
}

// ApplyBinaryOperator returns the interval over i's bounds with op applied to
// i's and other's functions. Requires identical endpoints.
func (i Interval) ApplyBinaryOperator(op func(a, b Polynomial) Polynomial, other Interval) (Interval, error) {
	if err := i.requireSameBounds(other); err != nil {
		return Interval{}, err
	}
	return Interval{i.Start, i.End, op(i.Function, other.Function)}, nil
}

// Integrate returns the definite integral of i's function over [Start, End].
// Fails with ErrInvalidDegree if the function is degree 2.
func (i Interval) Integrate() (float64, error) {
	antiderivative, err := i.Function.Integral()
	if err != nil {
		return 0, err
	}
	return antiderivative.Eval(i.End) - antiderivative.Eval(i.Start), nil
}

// Integral returns the interval over i's bounds whose function F is the
// antiderivative of i's function, anchored so F(Start) = 0.
func (i Interval) Integral() (Interval, error) {
	antiderivative, err := i.Function.Integral()
	if err != nil {
		return Interval{}, err
	}
	anchor := antiderivative.Eval(i.Start)
	return Interval{i.Start, i.End, antiderivative.Sub(Constant(anchor))}, nil
}

// MoveAbove translates i's function onto other's domain so that the value at
// the new start matches i's value at its own start.
func (i Interval) MoveAbove(other Interval) Interval {
	delta := i.Start - other.Start
	return Interval{other.Start, other.End, i.Function.AddToX(delta)}
}

// Shift translates i by delta along the time axis.
func (i Interval) Shift(delta float64) Interval {
	return Interval{i.Start + delta, i.End + delta, i.Function.AddToX(-delta)}
}

// ProjectOnto restricts i to other's endpoints. Fails with ErrInvalidProjection
// if other is not contained within i.
func (i Interval) ProjectOnto(other Interval) (Interval, error) {
	if i.Start > other.Start+EPS || i.End < other.End-EPS {
		return Interval{}, ErrInvalidProjection
	}
	return Interval{other.Start, other.End, i.Function}, nil
}

// Zeros returns the real roots of (i.Function - other.Function) that fall
// within [i.Start, i.End] (± EPS).
func (i Interval) Zeros(other Interval) []float64 {
	diff := i.Function.Sub(other.Function)
	return filterWithinDomain(diff.Zeros(), i.Start, i.End)
}

func filterWithinDomain(zeros []float64, start, end float64) []float64 {
	out := make([]float64, 0, len(zeros))
	for _, z := range zeros {
		if z >= start-EPS && z <= end+EPS {
			out = append(out, z)
		}
	}
	return out
}

// containsNear reports whether v appears (within EPS) anywhere in zeros.
func containsNear(zeros []float64, v float64) bool {
	for _, z := range zeros {
		if nearlyEqual(z, v) {
			return true
		}
	}
	return false
}

// buildPartition returns the ordered boundary points [start, zeros..., end],
// deduplicating endpoints already present in zeros. Shared by
// MinInterval/MaxInterval/HigherThan/LowerThan's partition-then-compare scheme.
func buildPartition(start, end float64, zeros []float64) []float64 {
	pts := make([]float64, 0, len(zeros)+2)
	if !containsNear(zeros, start) {
		pts = append(pts, start)
	}
	pts = append(pts, zeros...)
	if !containsNear(zeros, end) {
		pts = append(pts, end)
	}
	return pts
}

// GetExtremeValue returns (f(Start), f(End)).
func (i Interval) GetExtremeValue() (float64, float64) {
	return i.Function.Eval(i.Start), i.Function.Eval(i.End)
}

// GetExtremeValueWithTime returns the two endpoints as TimedValues.
func (i Interval) GetExtremeValueWithTime() (TimedValue, TimedValue) {
	left, right := i.GetExtremeValue()
	return TimedValue{i.Start, left}, TimedValue{i.End, right}
}

// IsIncreasing, IsDecreasing, and IsConstant are decided from endpoint values
// only, not the derivative.
func (i Interval) IsIncreasing() bool {
	l, r := i.GetExtremeValue()
	return l < r
}

func (i Interval) IsDecreasing() bool {
	l, r := i.GetExtremeValue()
	return r < l
}

func (i Interval) IsConstant() bool {
	l, r := i.GetExtremeValue()
	return nearlyEqual(l, r)
}

// IsUndefined reports whether i carries the Undefined polynomial.
func (i Interval) IsUndefined() bool {
	return i.Function.IsUndefined()
}

// MinInterval returns the pointwise minimum of i and other as a partition of
// sub-intervals. Requires identical endpoints. Uses an "i <= other"
// comparison per sub-interval, so i wins at an exact tie.
func (i Interval) MinInterval(other Interval) ([]Interval, error) {
	if err := i.requireSameBounds(other); err != nil {
		return nil, err
	}
	zeros := i.Zeros(other)
	if len(zeros) == 0 {
		selfLeft := i.Function.Eval(i.Start)
		otherLeft := other.Function.Eval(other.Start)
		if selfLeft <= otherLeft {
			return []Interval{i}, nil
		}
		return []Interval{other}, nil
	}
	pts := buildPartition(i.Start, i.End, zeros)
	result := make([]Interval, 0, len(pts)-1)
	for k := 0; k < len(pts)-1; k++ {
		mid := (pts[k] + pts[k+1]) / 2
		fn := other.Function
		if i.Function.Eval(mid) <= other.Function.Eval(mid) {
			fn = i.Function
		}
		result = append(result, Interval{pts[k], pts[k+1], fn})
	}
	return result, nil
}

// MaxInterval returns the pointwise maximum of i and other as a partition of
// sub-intervals. Requires identical endpoints. Uses the same "i <= other"
// comparison as MinInterval, so other wins at an exact tie.
func (i Interval) MaxInterval(other Interval) ([]Interval, error) {
	if err := i.requireSameBounds(other); err != nil {
		return nil, err
	}
	zeros := i.Zeros(other)
	if len(zeros) == 0 {
		selfLeft := i.Function.Eval(i.Start)
		otherLeft := other.Function.Eval(other.Start)
		if selfLeft <= otherLeft {
			return []Interval{other}, nil
		}
		return []Interval{i}, nil
	}
	pts := buildPartition(i.Start, i.End, zeros)
	result := make([]Interval, 0, len(pts)-1)
	for k := 0; k < len(pts)-1; k++ {
		mid := (pts[k] + pts[k+1]) / 2
		fn := i.Function
		if i.Function.Eval(mid) <= other.Function.Eval(mid) {
			fn = other.Function
		}
		result = append(result, Interval{pts[k], pts[k+1], fn})
	}
	return result, nil
}

// HigherThan thresholds i against a constant, returning a partition of
// constant 0/1 sub-intervals.
func (i Interval) HigherThan(threshold float64) []Interval {
	return i.threshold(threshold, func(v, t float64) bool { return v > t })
}

// LowerThan thresholds i against a constant, returning a partition of
// constant 0/1 sub-intervals.
func (i Interval) LowerThan(threshold float64) []Interval {
	return i.threshold(threshold, func(v, t float64) bool { return v < t })
}

func (i Interval) threshold(t float64, satisfies func(v, t float64) bool) []Interval {
	diff := i.Function.Sub(Constant(t))
	zeros := filterWithinDomain(diff.Zeros(), i.Start, i.End)
	toConst := func(v float64) Polynomial {
		if satisfies(v, t) {
			return Constant(1)
		}
		return Constant(0)
	}
	if len(zeros) == 0 {
		return []Interval{{i.Start, i.End, toConst(i.Function.Eval(i.Start))}}
	}
	pts := buildPartition(i.Start, i.End, zeros)
	result := make([]Interval, 0, len(pts)-1)
	for k := 0; k < len(pts)-1; k++ {
		mid := (pts[k] + pts[k+1]) / 2
		result = append(result, Interval{pts[k], pts[k+1], toConst(i.Function.Eval(mid))})
	}
	return result
}
