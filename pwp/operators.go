package pwp

// UnaryOperator transforms one interval into zero or more output intervals.
type UnaryOperator func(Interval) ([]Interval, error)

// BinaryOperator combines two same-bounds intervals into zero or more output
// intervals.
type BinaryOperator func(left, right Interval) ([]Interval, error)

// These are the thin interval-level operators used to compose the generic
// Unary/Binary dataflow nodes. Each wraps a single Interval/Polynomial method
// as a one-element (or pass-through) result list.

// AddOperator returns the operator computing left+right.
func AddOperator() BinaryOperator {
	return func(left, right Interval) ([]Interval, error) {
		sum, err := left.Add(right)
		if err != nil {
			return nil, err
		}
		return []Interval{sum}, nil
	}
}

// SubOperator returns the operator computing left-right.
func SubOperator() BinaryOperator {
	return func(left, right Interval) ([]Interval, error) {
		diff, err := left.Sub(right)
		if err != nil {
			return nil, err
		}
		return []Interval{diff}, nil
	}
}

// MinOperator returns the operator computing the pointwise minimum.
func MinOperator() BinaryOperator {
	return func(left, right Interval) ([]Interval, error) {
		return left.MinInterval(right)
	}
}

// MaxOperator returns the operator computing the pointwise maximum.
func MaxOperator() BinaryOperator {
	return func(left, right Interval) ([]Interval, error) {
		return left.MaxInterval(right)
	}
}

// HigherThanOperator thresholds an interval against a constant, interval
// value 1 where the function exceeds threshold, 0 elsewhere.
func HigherThanOperator(threshold float64) UnaryOperator {
	return func(in Interval) ([]Interval, error) {
		return in.HigherThan(threshold), nil
	}
}

// LowerThanOperator thresholds an interval against a constant, interval value
// 1 where the function is below threshold, 0 elsewhere.
func LowerThanOperator(threshold float64) UnaryOperator {
	return func(in Interval) ([]Interval, error) {
		return in.LowerThan(threshold), nil
	}
}

// ShiftOperator translates an interval along the time axis by delta.
func ShiftOperator(delta float64) UnaryOperator {
	return func(in Interval) ([]Interval, error) {
		return []Interval{in.Shift(delta)}, nil
	}
}

// MultConstOperator scales an interval's function by a constant.
func MultConstOperator(k float64) UnaryOperator {
	return func(in Interval) ([]Interval, error) {
		return []Interval{in.ApplyOperator(func(p Polynomial) Polynomial {
			return p.MultByConst(k)
		})}, nil
	}
}

// FilterOperator gates left by right: passes left through unchanged when
// right's function is the constant 1, otherwise emits an undefined interval
// over left's domain.
func FilterOperator() BinaryOperator {
	return func(left, right Interval) ([]Interval, error) {
		if right.Function.Equal(Constant(1)) {
			return []Interval{left}, nil
		}
		return []Interval{{Start: left.Start, End: left.End, Function: UndefinedPolynomial()}}, nil
	}
}
