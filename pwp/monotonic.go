package pwp

// MonotonicEdge is the shared Lemire-style monotonic stack behind
// MinMonotonicEdge and MaxMonotonicEdge: it keeps a stack of intervals whose
// start values are monotonic under worseThan, evicting (or splitting) the
// tail whenever a new value would dominate it. Grounded on
// original_source/elements.py's MinMonotonicEdge/MaxMonotonicEdge, factored
// to share the comparator-independent bookkeeping.
type MonotonicEdge struct {
	intervals []Interval
	worseThan func(topStartValue, newValue float64) bool
}

func newMonotonicEdge(worseThan func(a, b float64) bool) *MonotonicEdge {
	return &MonotonicEdge{worseThan: worseThan}
}

// push admits a new candidate (value, newInterval), evicting any tail
// entries worseThan it, splitting the new tail at the point it crosses value
// if needed, and bridging the gap with a flat segment at value.
//
// The boundary-crossing split operates on the stack's current tail (the
// entry adjacent to the new value), not its head — original_source's
// MinMonotonicEdge/MaxMonotonicEdge index the head here, which only
// coincides with the tail when a single entry remains; this splits the tail
// directly so the fix holds for longer stacks too.
func (m *MonotonicEdge) push(value float64, newInterval Interval) error {
	var start *float64
	for len(m.intervals) > 0 {
		top := m.intervals[len(m.intervals)-1]
		if !m.worseThan(top.Function.Eval(top.Start), value) {
			break
		}
		m.intervals = m.intervals[:len(m.intervals)-1]
		s := top.Start
		start = &s
	}
	if len(m.intervals) > 0 {
		top := m.intervals[len(m.intervals)-1]
		zeros := filterWithinDomain(top.Function.Sub(Constant(value)).Zeros(), top.Start, top.End)
		if len(zeros) > 0 {
			zero := zeros[0]
			left, _, err := top.Split(zero - top.Start)
			if err != nil {
				return err
			}
			m.intervals[len(m.intervals)-1] = left
			s := left.End
			start = &s
		}
	}
	if start != nil && !nearlyEqual(*start, newInterval.Start) {
		m.intervals = append(m.intervals, Interval{*start, newInterval.Start, Constant(value)})
	}
	m.intervals = append(m.intervals, newInterval)
	return nil
}

// remove pops length's worth of interval from the head of the stack,
// splitting the head entry if it's longer than what remains to be removed.
func (m *MonotonicEdge) remove(length float64) ([]Interval, error) {
	var removed []Interval
	partial := 0.0
	for partial < length-EPS && len(m.intervals) > 0 {
		candidate := m.intervals[0]
		if candidate.Length() <= length-partial+EPS {
			removed = append(removed, candidate)
			partial += candidate.Length()
			m.intervals = m.intervals[1:]
		} else {
			left, right, err := candidate.Split(length - partial)
			if err != nil {
				return nil, err
			}
			removed = append(removed, left)
			m.intervals[0] = right
			partial = length
		}
	}
	return removed, nil
}

// MinMonotonicEdge maintains a stack of candidate running minima whose start
// values are non-decreasing from head to tail. An increasing interval keeps its own shape (its minimum is
// at its start); a non-increasing one flattens to a constant at its end
// value, since only that tail value can ever surface as a future minimum.
type MinMonotonicEdge struct {
	edge *MonotonicEdge
}

// NewMinMonotonicEdge returns an empty running-minimum edge.
func NewMinMonotonicEdge() *MinMonotonicEdge {
	return &MinMonotonicEdge{edge: newMonotonicEdge(func(a, b float64) bool { return a > b })}
}

// Add admits interval into the running-minimum stack.
func (m *MinMonotonicEdge) Add(interval Interval) error {
	value := interval.Function.Eval(interval.End)
	newInterval := Interval{interval.Start, interval.End, Constant(value)}
	if interval.IsIncreasing() {
		value = interval.Function.Eval(interval.Start)
		newInterval = interval
	}
	return m.edge.push(value, newInterval)
}

// Remove evicts length's worth of interval from the stack's head.
func (m *MinMonotonicEdge) Remove(length float64) ([]Interval, error) {
	return m.edge.remove(length)
}

// MaxMonotonicEdge is MinMonotonicEdge's running-maximum mirror: a stack
// whose start values are non-increasing from head to tail. A non-decreasing interval flattens to a
// constant at its end value; a decreasing one keeps its own shape.
type MaxMonotonicEdge struct {
	edge *MonotonicEdge
}

// NewMaxMonotonicEdge returns an empty running-maximum edge.
func NewMaxMonotonicEdge() *MaxMonotonicEdge {
	return &MaxMonotonicEdge{edge: newMonotonicEdge(func(a, b float64) bool { return a < b })}
}

// Add admits interval into the running-maximum stack.
func (m *MaxMonotonicEdge) Add(interval Interval) error {
	value := interval.Function.Eval(interval.Start)
	newInterval := interval
	if interval.IsIncreasing() {
		value = interval.Function.Eval(interval.End)
		newInterval = Interval{interval.Start, interval.End, Constant(value)}
	}
	return m.edge.push(value, newInterval)
}

// Remove evicts length's worth of interval from the stack's head.
func (m *MaxMonotonicEdge) Remove(length float64) ([]Interval, error) {
	return m.edge.remove(length)
}

// MinLemire is the running-minimum WindowOperator built on MinMonotonicEdge
// (the Lemire sliding-window-minimum algorithm).
type MinLemire struct {
	edge *MinMonotonicEdge
}

// NewMinLemire returns an empty MinLemire operator.
func NewMinLemire() *MinLemire {
	return &MinLemire{edge: NewMinMonotonicEdge()}
}

// Add admits interval into the edge.
func (l *MinLemire) Add(interval Interval) error {
	return l.edge.Add(interval)
}

// Move admits added then evicts removed's length from the edge's head.
func (l *MinLemire) Move(removed, added Interval) ([]Interval, error) {
	if err := l.edge.Add(added); err != nil {
		return nil, err
	}
	return l.edge.Remove(removed.Length())
}

// MaxLemire is the running-maximum WindowOperator built on MaxMonotonicEdge.
//
// original_source/elements.py's MaxLemire.move computes a `results` slice
// from an extra remove/re-add pass before discarding it unused and falling
// through to the same admit-then-evict steps as MinLemire.move; that dead
// computation isn't reproduced here.
type MaxLemire struct {
	edge *MaxMonotonicEdge
}

// NewMaxLemire returns an empty MaxLemire operator.
func NewMaxLemire() *MaxLemire {
	return &MaxLemire{edge: NewMaxMonotonicEdge()}
}

// Add admits interval into the edge.
func (l *MaxLemire) Add(interval Interval) error {
	return l.edge.Add(interval)
}

// Move admits added then evicts removed's length from the edge's head.
func (l *MaxLemire) Move(removed, added Interval) ([]Interval, error) {
	if err := l.edge.Add(added); err != nil {
		return nil, err
	}
	return l.edge.Remove(removed.Length())
}
