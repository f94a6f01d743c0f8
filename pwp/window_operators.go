package pwp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// WindowOperator is the C5 family's common interface: Add extends the window
// with a fresh interval (nothing has left yet), Move reports an
// eviction/admission pair and returns the resulting output intervals.
// Grounded on original_source/elements.py's WindowOperator base class.
type WindowOperator interface {
	Add(interval Interval) error
	Move(removed, added Interval) ([]Interval, error)
}

// IntegralWindowOperator maintains a running definite integral over the
// window, re-deriving it incrementally on every slide rather than
// re-integrating the whole window.
type IntegralWindowOperator struct {
	value float64
}

// NewIntegralWindowOperator returns an Integral operator starting at 0.
func NewIntegralWindowOperator() *IntegralWindowOperator {
	return &IntegralWindowOperator{}
}

// Add accumulates interval's definite integral into the running total.
func (o *IntegralWindowOperator) Add(interval Interval) error {
	v, err := interval.Integrate()
	if err != nil {
		return err
	}
	o.value += v
	return nil
}

// Move updates the running total for one evict/admit step and returns the
// single interval describing the integral's value over [removed.Start,
// removed.End] as the window slides across it.
func (o *IntegralWindowOperator) Move(removed, added Interval) ([]Interval, error) {
	addedAbove := added.MoveAbove(removed)
	removedIntegral, err := removed.Function.Integral()
	if err != nil {
		return nil, err
	}
	addedIntegral, err := addedAbove.Function.Integral()
	if err != nil {
		return nil, err
	}
	anchor := o.value + removedIntegral.Eval(removed.Start) - addedIntegral.Eval(addedAbove.Start)
	function := Constant(anchor).Add(addedIntegral).Sub(removedIntegral)
	o.value = function.Eval(removed.End)
	return []Interval{{removed.Start, removed.End, function}}, nil
}

// MinWindowOperator tracks the pointwise minimum over the window using an
// IntervalQueue of endpoint values, re-partitioning only the evicted span
// against the minimum of everything that remains.
type MinWindowOperator struct {
	values IntervalQueue
}

// NewMinWindowOperator returns an empty Min operator.
func NewMinWindowOperator() *MinWindowOperator {
	return &MinWindowOperator{}
}

// Add records interval's endpoint values.
func (o *MinWindowOperator) Add(interval Interval) error {
	left, right := interval.GetExtremeValueWithTime()
	o.values.Add(left, right)
	return nil
}

func (o *MinWindowOperator) remove(removed Interval) error {
	left, right := removed.GetExtremeValueWithTime()
	return o.values.Remove(left, right)
}

// Move evicts removed's endpoint values, computes the pointwise minimum of
// removed against whatever remains in the window, then re-partitions that
// against the incoming (domain-aligned) added interval.
func (o *MinWindowOperator) Move(removed, added Interval) ([]Interval, error) {
	if err := o.remove(removed); err != nil {
		return nil, err
	}
	firstChunk := []Interval{removed}
	if o.values.IsFull() {
		otherMin, err := o.values.Evaluate(math.Min)
		if err != nil {
			return nil, err
		}
		constantInterval := Interval{removed.Start, removed.End, Constant(otherMin)}
		chunk, err := removed.MinInterval(constantInterval)
		if err != nil {
			return nil, err
		}
		firstChunk = chunk
	}
	result, err := minimizeChunksAgainstAdded(firstChunk, removed, added)
	if err != nil {
		return nil, err
	}
	if err := o.Add(added); err != nil {
		return nil, err
	}
	return result, nil
}

// Min2WindowOperator is an alternative Min implementation tracking a flat
// list of endpoint values rather than an IntervalQueue of segments. It keeps
// its own remove/partition logic rather than sharing MinWindowOperator's —
// the two track different state and reconverging them would cost more than
// the duplication they'd save.
type Min2WindowOperator struct {
	times  []float64
	values []float64
}

// NewMin2WindowOperator returns an empty Min2 operator.
func NewMin2WindowOperator() *Min2WindowOperator {
	return &Min2WindowOperator{}
}

// Add records both of interval's endpoint (time, value) pairs.
func (o *Min2WindowOperator) Add(interval Interval) error {
	o.times = append(o.times, interval.Start, interval.End)
	o.values = append(o.values, interval.Function.Eval(interval.Start), interval.Function.Eval(interval.End))
	return nil
}

func (o *Min2WindowOperator) remove(removed Interval) {
	c := 0
	for c < len(o.times) && o.times[c] <= removed.End+EPS {
		c++
	}
	o.times = o.times[c:]
	o.values = o.values[c:]
}

// Move discards the entries evicted by removed, flattens a decreasing removed
// to the constant at its end value and an increasing added to the constant
// at its start value, then re-partitions
// removed against the minimum of whatever values remain before reinserting
// added.
func (o *Min2WindowOperator) Move(removed, added Interval) ([]Interval, error) {
	o.remove(removed)
	if removed.IsDecreasing() {
		removed = Interval{removed.Start, removed.End, Constant(removed.Function.Eval(removed.End))}
	}
	if added.IsIncreasing() {
		added = Interval{added.Start, added.End, Constant(added.Function.Eval(added.Start))}
	}
	firstChunk := []Interval{removed}
	if len(o.times) > 0 {
		minimum := floats.Min(o.values)
		chunk, err := removed.MinInterval(Interval{removed.Start, removed.End, Constant(minimum)})
		if err != nil {
			return nil, err
		}
		firstChunk = chunk
	}
	result, err := minimizeChunksAgainstAdded(firstChunk, removed, added)
	if err != nil {
		return nil, err
	}
	if err := o.Add(added); err != nil {
		return nil, err
	}
	return result, nil
}

// minimizeChunksAgainstAdded projects added (shifted onto removed's domain)
// across each of firstChunk's pieces and takes the pointwise minimum,
// concatenating the partitions. Shared by Min and Min2's Move.
func minimizeChunksAgainstAdded(firstChunk []Interval, removed, added Interval) ([]Interval, error) {
	addedShifted := added.MoveAbove(removed)
	var result []Interval
	for _, chunk := range firstChunk {
		projected, err := addedShifted.ProjectOnto(chunk)
		if err != nil {
			return nil, err
		}
		mins, err := chunk.MinInterval(projected)
		if err != nil {
			return nil, err
		}
		result = append(result, mins...)
	}
	return result, nil
}

// MaxWindowOperator is Min's pointwise-maximum mirror.
type MaxWindowOperator struct {
	values IntervalQueue
}

// NewMaxWindowOperator returns an empty Max operator.
func NewMaxWindowOperator() *MaxWindowOperator {
	return &MaxWindowOperator{}
}

// Add records interval's endpoint values.
func (o *MaxWindowOperator) Add(interval Interval) error {
	left, right := interval.GetExtremeValueWithTime()
	o.values.Add(left, right)
	return nil
}

func (o *MaxWindowOperator) remove(removed Interval) error {
	left, right := removed.GetExtremeValueWithTime()
	return o.values.Remove(left, right)
}

// Move mirrors MinWindowOperator.Move using MaxInterval and math.Max.
func (o *MaxWindowOperator) Move(removed, added Interval) ([]Interval, error) {
	if err := o.remove(removed); err != nil {
		return nil, err
	}
	firstChunk := []Interval{removed}
	if o.values.IsFull() {
		otherMax, err := o.values.Evaluate(math.Max)
		if err != nil {
			return nil, err
		}
		constantInterval := Interval{removed.Start, removed.End, Constant(otherMax)}
		chunk, err := removed.MaxInterval(constantInterval)
		if err != nil {
			return nil, err
		}
		firstChunk = chunk
	}
	addedShifted := added.MoveAbove(removed)
	var result []Interval
	for _, chunk := range firstChunk {
		projected, err := addedShifted.ProjectOnto(chunk)
		if err != nil {
			return nil, err
		}
		maxes, err := chunk.MaxInterval(projected)
		if err != nil {
			return nil, err
		}
		result = append(result, maxes...)
	}
	if err := o.Add(added); err != nil {
		return nil, err
	}
	return result, nil
}
