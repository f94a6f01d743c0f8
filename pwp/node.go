package pwp

import "math"

// IntervalObserver receives emitted intervals — the Go analogue of
// notifiers.py's bare-callable observer list. It returns an error so that a
// failure anywhere downstream (graphs can chain arbitrarily deep through
// Memory's wiring) propagates back to the original Receive call instead of
// being swallowed mid-broadcast.
type IntervalObserver func(Interval) error

// Notifier is the small broadcast mixin every dataflow node embeds (C6),
// grounded on original_source/notifiers.py's IntervalNotifier.
type Notifier struct {
	observers []IntervalObserver
}

// Subscribe registers o to receive every interval this node emits.
func (n *Notifier) Subscribe(o IntervalObserver) {
	n.observers = append(n.observers, o)
}

// Notify broadcasts a single interval to all observers, stopping at the
// first error.
func (n *Notifier) Notify(interval Interval) error {
	for _, o := range n.observers {
		if err := o(interval); err != nil {
			return err
		}
	}
	return nil
}

// NotifyMultiple broadcasts each interval in order, stopping at the first
// error.
func (n *Notifier) NotifyMultiple(intervals []Interval) error {
	for _, interval := range intervals {
		if err := n.Notify(interval); err != nil {
			return err
		}
	}
	return nil
}

// PWLSource turns a stream of (time, value) samples into piecewise-linear
// intervals, one per consecutive pair.
type PWLSource struct {
	Notifier
	have        bool
	time, value float64
}

// NewPWLSource returns an empty piecewise-linear source.
func NewPWLSource() *PWLSource {
	return &PWLSource{}
}

// Receive admits a new sample, emitting the linear interval spanning it and
// the previous sample (if any).
func (s *PWLSource) Receive(time, value float64) error {
	var err error
	if s.have {
		m := (value - s.value) / (time - s.time)
		q := s.value - s.time*m
		err = s.Notify(Interval{s.time, time, Linear(m, q)})
	}
	s.time, s.value, s.have = time, value, true
	return err
}

// PWCSource turns a stream of (time, value) samples into piecewise-constant
// intervals: the value observed at the start of a pair holds until the next
// sample arrives.
type PWCSource struct {
	Notifier
	have        bool
	time, value float64
}

// NewPWCSource returns an empty piecewise-constant source.
func NewPWCSource() *PWCSource {
	return &PWCSource{}
}

// Receive admits a new sample, emitting the constant interval spanning the
// previous sample's value up to time (if there was a previous sample).
func (s *PWCSource) Receive(time, value float64) error {
	var err error
	if s.have {
		err = s.Notify(Interval{s.time, time, Constant(s.value)})
	}
	s.time, s.value, s.have = time, value, true
	return err
}

// UnaryNode applies a UnaryOperator to each received interval.
type UnaryNode struct {
	Notifier
	operator UnaryOperator
}

// NewUnaryNode wraps operator as a dataflow node.
func NewUnaryNode(operator UnaryOperator) *UnaryNode {
	return &UnaryNode{operator: operator}
}

// Receive applies the operator and broadcasts its output.
func (n *UnaryNode) Receive(input Interval) error {
	out, err := n.operator(input)
	if err != nil {
		return err
	}
	return n.NotifyMultiple(out)
}

// BinaryNode aligns two independently-advancing input streams and applies a
// BinaryOperator once both sides cover the same span. Gaps between the two
// streams' start times are filled with Undefined intervals. Grounded on
// original_source/nodes.py's BinaryNode.
type BinaryNode struct {
	Notifier
	left, right []Interval
	operator    BinaryOperator
}

// NewBinaryNode wraps operator as a binary dataflow node.
func NewBinaryNode(operator BinaryOperator) *BinaryNode {
	return &BinaryNode{operator: operator}
}

func (n *BinaryNode) merge() error {
	left := n.left[0]
	right := n.right[0]
	switch {
	case right.Start < left.Start-EPS:
		if err := n.Notify(Interval{right.Start, left.Start, UndefinedPolynomial()}); err != nil {
			return err
		}
		right.Start = left.Start
		n.right[0] = right
	case left.Start < right.Start-EPS:
		if err := n.Notify(Interval{left.Start, right.Start, UndefinedPolynomial()}); err != nil {
			return err
		}
		left.Start = right.Start
		n.left[0] = left
	case left.End < right.End-EPS:
		rightLeft, rightRight, err := right.Split(left.End - right.Start)
		if err != nil {
			return err
		}
		n.right[0] = rightRight
		n.left = n.left[1:]
		out, err := n.operator(left, rightLeft)
		if err != nil {
			return err
		}
		return n.NotifyMultiple(out)
	case right.End < left.End-EPS:
		leftLeft, leftRight, err := left.Split(right.End - left.Start)
		if err != nil {
			return err
		}
		n.left[0] = leftRight
		n.right = n.right[1:]
		out, err := n.operator(leftLeft, right)
		if err != nil {
			return err
		}
		return n.NotifyMultiple(out)
	default:
		n.left = n.left[1:]
		n.right = n.right[1:]
		out, err := n.operator(left, right)
		if err != nil {
			return err
		}
		return n.NotifyMultiple(out)
	}
	return nil
}

// ReceiveLeft admits an interval on the left input, draining the merge
// buffer while both sides are non-empty.
func (n *BinaryNode) ReceiveLeft(interval Interval) error {
	n.left = append(n.left, interval)
	for len(n.left) > 0 && len(n.right) > 0 {
		if err := n.merge(); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveRight admits an interval on the right input, draining the merge
// buffer while both sides are non-empty.
func (n *BinaryNode) ReceiveRight(interval Interval) error {
	n.right = append(n.right, interval)
	for len(n.left) > 0 && len(n.right) > 0 {
		if err := n.merge(); err != nil {
			return err
		}
	}
	return nil
}

// NaryOperator reduces one aligned interval per named input into zero or
// more output intervals.
type NaryOperator func(inputs []Interval) ([]Interval, error)

// NaryNode is BinaryNode generalized to N named inputs, each buffered
// independently and merged once every input has a pending interval.
// Grounded on original_source/nodes.py's NaryNode.
type NaryNode struct {
	Notifier
	names     []string
	locations map[string][]Interval
	operator  NaryOperator
}

// NewNaryNode wraps operator as an N-ary dataflow node.
func NewNaryNode(operator NaryOperator) *NaryNode {
	return &NaryNode{locations: make(map[string][]Interval), operator: operator}
}

// AddReceiver registers a named input location.
func (n *NaryNode) AddReceiver(name string) {
	n.names = append(n.names, name)
	n.locations[name] = nil
}

func (n *NaryNode) shouldMerge() bool {
	for _, q := range n.locations {
		if len(q) == 0 {
			return false
		}
	}
	return true
}

// Receive admits interval on the named input, draining the merge buffer
// while every input has a pending interval.
func (n *NaryNode) Receive(name string, interval Interval) error {
	n.locations[name] = append(n.locations[name], interval)
	for n.shouldMerge() {
		if err := n.merge(); err != nil {
			return err
		}
	}
	return nil
}

func (n *NaryNode) merge() error {
	minStart, maxStart := math.Inf(1), math.Inf(-1)
	for _, q := range n.locations {
		if q[0].Start < minStart {
			minStart = q[0].Start
		}
		if q[0].Start > maxStart {
			maxStart = q[0].Start
		}
	}
	if !nearlyEqual(minStart, maxStart) {
		if err := n.Notify(Interval{minStart, maxStart, UndefinedPolynomial()}); err != nil {
			return err
		}
		for name, q := range n.locations {
			_, right, err := q[0].Split(maxStart - q[0].Start)
			if err != nil {
				return err
			}
			n.locations[name][0] = right
		}
	}
	minEnd := math.Inf(1)
	for _, q := range n.locations {
		if q[0].End < minEnd {
			minEnd = q[0].End
		}
	}
	cut := make([]Interval, 0, len(n.names))
	for _, name := range n.names {
		q := n.locations[name]
		head := q[0]
		if head.End > minEnd+EPS {
			left, right, err := head.Split(minEnd - head.Start)
			if err != nil {
				return err
			}
			cut = append(cut, left)
			n.locations[name][0] = right
		} else {
			cut = append(cut, head)
			n.locations[name] = q[1:]
		}
	}
	out, err := n.operator(cut)
	if err != nil {
		return err
	}
	return n.NotifyMultiple(out)
}

// WindowNode adapts a WindowOperator into a dataflow node by subscribing it
// to a WindowInterval: every interval received is fed into the window, and
// the intervals the operator returns from each Move are re-broadcast
// downstream (Add only updates the operator's state).
type WindowNode struct {
	Notifier
	window   *WindowInterval
	operator WindowOperator
}

// NewWindowNode wires operator to window and returns the resulting node.
func NewWindowNode(window *WindowInterval, operator WindowOperator) *WindowNode {
	node := &WindowNode{window: window, operator: operator}
	window.Subscribe(node)
	return node
}

// OnAdd implements WindowObserver: the window simply opened wider.
func (n *WindowNode) OnAdd(interval Interval) error {
	return n.operator.Add(interval)
}

// OnMove implements WindowObserver: the window slid, so broadcast whatever
// the operator reports for this eviction/admission step.
func (n *WindowNode) OnMove(removed, added Interval) error {
	results, err := n.operator.Move(removed, added)
	if err != nil {
		return err
	}
	return n.NotifyMultiple(results)
}

// Receive feeds interval into the underlying window.
func (n *WindowNode) Receive(interval Interval) error {
	return n.window.Add(interval)
}

// MinOptimalWindowNode is a single-pass running-minimum window: unlike
// WindowNode+MinLemire, it never separates a WindowInterval's buffering from
// MinMonotonicEdge's candidate stack — incoming intervals are admitted
// straight into the stack (always flattened to their extreme-value
// constant), and the slide amount is derived from how much the stack has
// grown past length. Grounded on original_source/nodes.py's
// MinOptimalWindowNode, reusing the MonotonicEdge primitives already proven
// out for MinMonotonicEdge (the original's copy of the push/pop/bridge logic
// inline here split at the absolute zero rather than the offset from its
// interval's start; this uses the corrected offset form instead).
type MinOptimalWindowNode struct {
	Notifier
	length float64
	edge   *MonotonicEdge
}

// NewMinOptimalWindowNode returns an empty running-minimum window of the
// given length.
func NewMinOptimalWindowNode(length float64) *MinOptimalWindowNode {
	return &MinOptimalWindowNode{length: length, edge: newMonotonicEdge(func(a, b float64) bool { return a > b })}
}

// Receive admits addInterval, flattened to its extreme-value constant, then
// slides out however much the window has grown past its configured length.
func (n *MinOptimalWindowNode) Receive(addInterval Interval) error {
	windowLength := 0.0
	if len(n.edge.intervals) > 0 {
		windowLength = n.edge.intervals[len(n.edge.intervals)-1].End - n.edge.intervals[0].Start
	}
	toSlide := addInterval.Length() - (n.length - windowLength)

	value := addInterval.Function.Eval(addInterval.End)
	if addInterval.IsIncreasing() {
		value = addInterval.Function.Eval(addInterval.Start)
	}
	flat := Interval{addInterval.Start, addInterval.End, Constant(value)}
	if err := n.edge.push(value, flat); err != nil {
		return err
	}

	if toSlide <= 0 {
		return nil
	}
	removed, err := n.edge.remove(toSlide)
	if err != nil {
		return err
	}
	return n.NotifyMultiple(removed)
}

// MinOptimalWindowNode2 is MinOptimalWindowNode's sibling implementation,
// tracking the window's logical start/end as persistent fields rather than
// recomputing them from the stack's current head/tail before every
// admission. Kept distinct rather than unified with MinOptimalWindowNode:
// the two maintain their window boundary differently enough that merging
// them would need a branch on every call.
type MinOptimalWindowNode2 struct {
	Notifier
	length                 float64
	edge                   *MonotonicEdge
	startWindow, endWindow float64
	hasWindow              bool
}

// NewMinOptimalWindowNode2 returns an empty running-minimum window of the
// given length.
func NewMinOptimalWindowNode2(length float64) *MinOptimalWindowNode2 {
	return &MinOptimalWindowNode2{length: length, edge: newMonotonicEdge(func(a, b float64) bool { return a > b })}
}

// Receive admits addInterval, flattened to its extreme-value constant,
// updates the persistent window bounds, then slides out however much the
// window has grown past its configured length.
func (n *MinOptimalWindowNode2) Receive(addInterval Interval) error {
	value := addInterval.Function.Eval(addInterval.End)
	if addInterval.IsIncreasing() {
		value = addInterval.Function.Eval(addInterval.Start)
	}
	flat := Interval{addInterval.Start, addInterval.End, Constant(value)}
	if err := n.edge.push(value, flat); err != nil {
		return err
	}
	if !n.hasWindow {
		n.startWindow = n.edge.intervals[0].Start
		n.hasWindow = true
	}
	n.endWindow = addInterval.End

	toSlide := n.endWindow - n.startWindow - n.length
	if toSlide <= 0 {
		return nil
	}
	removed, err := n.edge.remove(toSlide)
	if err != nil {
		return err
	}
	if len(n.edge.intervals) > 0 {
		n.startWindow = n.edge.intervals[0].Start
	} else {
		n.startWindow = n.endWindow
	}
	return n.NotifyMultiple(removed)
}
