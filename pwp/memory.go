package pwp

// Computation is a pending per-variable callback — the binding between a
// Memory cell and whichever node consumes it next.
type Computation func(interval Interval) error

// Memory holds the graph's current state: the latest interval produced for
// every variable, and the list of computations subscribed to each variable's
// updates. Wiring a node (AddUnaryNode/AddBinaryNode/AddNaryNode) both
// registers its inputs as computations and routes its output back through
// Receive, so the whole graph runs synchronously off of Receive calls.
// Grounded on original_source/elements.py's Memory.
type Memory struct {
	observers map[string][]Computation
	memory    map[string]Interval
}

// NewMemory returns an empty graph memory.
func NewMemory() *Memory {
	return &Memory{
		observers: make(map[string][]Computation),
		memory:    make(map[string]Interval),
	}
}

// AddComputation registers computation to run whenever fromVariable
// receives a new interval.
func (m *Memory) AddComputation(fromVariable string, computation Computation) {
	m.observers[fromVariable] = append(m.observers[fromVariable], computation)
}

// Receive records interval as variable's latest value and runs every
// computation subscribed to it, in registration order, stopping at the
// first error.
func (m *Memory) Receive(variable string, interval Interval) error {
	m.memory[variable] = interval
	for _, computation := range m.observers[variable] {
		if err := computation(interval); err != nil {
			return err
		}
	}
	return nil
}

// GetValue returns variable's latest interval, and whether one has been
// received yet.
func (m *Memory) GetValue(variable string) (Interval, bool) {
	interval, ok := m.memory[variable]
	return interval, ok
}

// unaryReceiver is the interface UnaryNode, WindowNode, MinOptimalWindowNode,
// and MinOptimalWindowNode2 all expose to Memory's wiring.
type unaryReceiver interface {
	Receive(Interval) error
	Subscribe(IntervalObserver)
}

// AddUnaryNode wires node between fromVariable and toVariable: every
// interval fromVariable receives is fed to node, and everything node emits
// is recorded as toVariable's new value.
func (m *Memory) AddUnaryNode(fromVariable, toVariable string, node unaryReceiver) {
	m.AddComputation(fromVariable, node.Receive)
	node.Subscribe(func(interval Interval) error {
		return m.Receive(toVariable, interval)
	})
}

// sourceNotifier is the interface PWLSource/PWCSource expose to Memory's
// wiring — they originate intervals rather than reacting to them, so they
// connect to toVariable by subscription alone.
type sourceNotifier interface {
	Subscribe(IntervalObserver)
}

// ConnectSource routes node's emitted intervals into toVariable. Unlike
// AddUnaryNode, the caller drives node directly (e.g. from pwp/ingest) by
// calling its own Receive(time, value) rather than going through a
// Computation.
func (m *Memory) ConnectSource(toVariable string, node sourceNotifier) {
	node.Subscribe(func(interval Interval) error {
		return m.Receive(toVariable, interval)
	})
}

// binaryReceiver is the interface BinaryNode exposes to Memory's wiring.
type binaryReceiver interface {
	ReceiveLeft(Interval) error
	ReceiveRight(Interval) error
	Subscribe(IntervalObserver)
}

// AddBinaryNode wires node between fromVariableLeft/fromVariableRight and
// toVariable.
func (m *Memory) AddBinaryNode(fromVariableLeft, fromVariableRight, toVariable string, node binaryReceiver) {
	m.AddComputation(fromVariableLeft, node.ReceiveLeft)
	m.AddComputation(fromVariableRight, node.ReceiveRight)
	node.Subscribe(func(interval Interval) error {
		return m.Receive(toVariable, interval)
	})
}

// naryReceiver is the interface NaryNode exposes to Memory's wiring.
type naryReceiver interface {
	AddReceiver(name string)
	Receive(name string, interval Interval) error
	Subscribe(IntervalObserver)
}

// AddNaryNode wires node across fromVariables and toVariable, registering
// one named receiver per input variable.
func (m *Memory) AddNaryNode(fromVariables []string, toVariable string, node naryReceiver) {
	for _, fromVariable := range fromVariables {
		node.AddReceiver(fromVariable)
		variable := fromVariable
		m.AddComputation(fromVariable, func(interval Interval) error {
			return node.Receive(variable, interval)
		})
	}
	node.Subscribe(func(interval Interval) error {
		return m.Receive(toVariable, interval)
	})
}
