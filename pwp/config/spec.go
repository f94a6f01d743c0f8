// Package config loads a declarative description of a PWP dataflow graph —
// sources, operator nodes, and the variables wired between them — from
// YAML, and builds the pwp.Memory instance it describes.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/pwptrace/pwptrace/pwp"
)

// sourceV1Kinds maps the deprecated v1 source kind names to their v2
// equivalents, the same upgrade-on-load shape the rest of this stack's
// config loaders use for renamed enum values.
var sourceV1Kinds = map[string]string{
	"linear":   "pwl",
	"constant": "pwc",
}

// GraphSpec is the top-level graph configuration, loaded from YAML via
// LoadGraphSpec(path).
type GraphSpec struct {
	Version       string       `yaml:"version"`
	Sources       []SourceSpec `yaml:"sources"`
	Nodes         []NodeSpec   `yaml:"nodes"`
	Observe       []string     `yaml:"observe"`
	WindowDefault float64      `yaml:"window_default,omitempty"`
}

// SourceSpec declares a raw input variable fed by timestamped samples.
type SourceSpec struct {
	Variable string `yaml:"variable"`
	Kind     string `yaml:"kind"` // "pwl" or "pwc"
}

// NodeSpec declares one operator node in the graph. Which of Input /
// Left+Right / Inputs is populated depends on Kind's arity.
type NodeSpec struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Input     string   `yaml:"input,omitempty"`
	Left      string   `yaml:"left,omitempty"`
	Right     string   `yaml:"right,omitempty"`
	Inputs    []string `yaml:"inputs,omitempty"`
	Output    string   `yaml:"output"`
	Threshold float64  `yaml:"threshold,omitempty"`
	Delta     float64  `yaml:"delta,omitempty"`
	Const     float64  `yaml:"const,omitempty"`
	Length    float64  `yaml:"length,omitempty"`
}

var unaryKinds = map[string]bool{
	"higher_than": true, "lower_than": true, "shift": true, "mult_const": true,
}

var binaryKinds = map[string]bool{
	"add": true, "sub": true, "min": true, "max": true, "filter": true,
}

var windowKinds = map[string]bool{
	"window_integral": true, "window_min": true, "window_max": true,
	"window_min2": true, "window_min_lemire": true, "window_max_lemire": true,
	"min_optimal": true, "min_optimal2": true,
}

var naryKinds = map[string]bool{
	"nary_sum": true, "nary_max": true,
}

// LoadGraphSpec reads and parses a graph specification from path, upgrading
// deprecated v1 source kind names in place.
func LoadGraphSpec(path string) (*GraphSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph spec: %w", err)
	}
	var spec GraphSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing graph spec: %w", err)
	}
	upgradeSourceKinds(&spec)
	return &spec, nil
}

func upgradeSourceKinds(spec *GraphSpec) {
	for i := range spec.Sources {
		if v2, ok := sourceV1Kinds[spec.Sources[i].Kind]; ok {
			logrus.Warnf("deprecated source kind %q auto-mapped to %q; update your graph spec", spec.Sources[i].Kind, v2)
			spec.Sources[i].Kind = v2
		}
	}
}

// Validate checks that every node names a known kind with the arguments its
// arity requires, and that Observe only names variables the graph actually
// produces.
func (s *GraphSpec) Validate() error {
	known := make(map[string]bool, len(s.Sources)+len(s.Nodes))
	for _, src := range s.Sources {
		if src.Kind != "pwl" && src.Kind != "pwc" {
			return fmt.Errorf("source %q: unknown kind %q", src.Variable, src.Kind)
		}
		known[src.Variable] = true
	}
	for i, n := range s.Nodes {
		if n.Output == "" {
			return fmt.Errorf("node[%d] %q: output variable required", i, n.Name)
		}
		switch {
		case unaryKinds[n.Kind]:
			if n.Input == "" {
				return fmt.Errorf("node[%d] %q: kind %q requires input", i, n.Name, n.Kind)
			}
		case binaryKinds[n.Kind]:
			if n.Left == "" || n.Right == "" {
				return fmt.Errorf("node[%d] %q: kind %q requires left and right", i, n.Name, n.Kind)
			}
		case windowKinds[n.Kind]:
			if n.Input == "" {
				return fmt.Errorf("node[%d] %q: kind %q requires input", i, n.Name, n.Kind)
			}
			if n.Length <= 0 && s.WindowDefault <= 0 {
				return fmt.Errorf("node[%d] %q: kind %q requires a positive length", i, n.Name, n.Kind)
			}
		case naryKinds[n.Kind]:
			if len(n.Inputs) < 2 {
				return fmt.Errorf("node[%d] %q: kind %q requires at least two inputs", i, n.Name, n.Kind)
			}
		default:
			return fmt.Errorf("node[%d] %q: unknown kind %q", i, n.Name, n.Kind)
		}
		known[n.Output] = true
	}
	for _, v := range s.Observe {
		if !known[v] {
			return fmt.Errorf("observe: variable %q is never produced", v)
		}
	}
	return nil
}

func (n NodeSpec) windowLength(spec *GraphSpec) float64 {
	if n.Length > 0 {
		return n.Length
	}
	return spec.WindowDefault
}

// Source is the subset of pwp.PWLSource/pwp.PWCSource's API a caller needs
// in order to drive ingested samples into a built graph.
type Source interface {
	Receive(time, value float64) error
}

// Build constructs the pwp.Memory graph the spec describes, returning the
// sources keyed by variable name (so a caller can drive them from ingested
// samples) and a Signal per observed variable.
func Build(spec *GraphSpec) (*pwp.Memory, map[string]Source, map[string]*pwp.Signal, error) {
	memory := pwp.NewMemory()
	sources := make(map[string]Source)

	for _, src := range spec.Sources {
		switch src.Kind {
		case "pwl":
			node := pwp.NewPWLSource()
			memory.ConnectSource(src.Variable, node)
			sources[src.Variable] = node
		case "pwc":
			node := pwp.NewPWCSource()
			memory.ConnectSource(src.Variable, node)
			sources[src.Variable] = node
		}
	}

	for _, n := range spec.Nodes {
		if err := wireNode(memory, spec, n); err != nil {
			return nil, nil, nil, fmt.Errorf("wiring node %q: %w", n.Name, err)
		}
	}

	signals := make(map[string]*pwp.Signal, len(spec.Observe))
	for _, variable := range spec.Observe {
		signal := pwp.NewSignal()
		memory.AddComputation(variable, signal.Append)
		signals[variable] = signal
	}

	return memory, sources, signals, nil
}

func wireNode(memory *pwp.Memory, spec *GraphSpec, n NodeSpec) error {
	switch n.Kind {
	case "higher_than":
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewUnaryNode(pwp.HigherThanOperator(n.Threshold)))
	case "lower_than":
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewUnaryNode(pwp.LowerThanOperator(n.Threshold)))
	case "shift":
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewUnaryNode(pwp.ShiftOperator(n.Delta)))
	case "mult_const":
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewUnaryNode(pwp.MultConstOperator(n.Const)))
	case "add":
		memory.AddBinaryNode(n.Left, n.Right, n.Output, pwp.NewBinaryNode(pwp.AddOperator()))
	case "sub":
		memory.AddBinaryNode(n.Left, n.Right, n.Output, pwp.NewBinaryNode(pwp.SubOperator()))
	case "min":
		memory.AddBinaryNode(n.Left, n.Right, n.Output, pwp.NewBinaryNode(pwp.MinOperator()))
	case "max":
		memory.AddBinaryNode(n.Left, n.Right, n.Output, pwp.NewBinaryNode(pwp.MaxOperator()))
	case "filter":
		memory.AddBinaryNode(n.Left, n.Right, n.Output, pwp.NewBinaryNode(pwp.FilterOperator()))
	case "window_integral":
		window := pwp.NewWindowInterval(n.windowLength(spec))
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewWindowNode(window, pwp.NewIntegralWindowOperator()))
	case "window_min":
		window := pwp.NewWindowInterval(n.windowLength(spec))
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewWindowNode(window, pwp.NewMinWindowOperator()))
	case "window_min2":
		window := pwp.NewWindowInterval(n.windowLength(spec))
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewWindowNode(window, pwp.NewMin2WindowOperator()))
	case "window_max":
		window := pwp.NewWindowInterval(n.windowLength(spec))
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewWindowNode(window, pwp.NewMaxWindowOperator()))
	case "window_min_lemire":
		window := pwp.NewWindowInterval(n.windowLength(spec))
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewWindowNode(window, pwp.NewMinLemire()))
	case "window_max_lemire":
		window := pwp.NewWindowInterval(n.windowLength(spec))
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewWindowNode(window, pwp.NewMaxLemire()))
	case "min_optimal":
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewMinOptimalWindowNode(n.windowLength(spec)))
	case "min_optimal2":
		memory.AddUnaryNode(n.Input, n.Output, pwp.NewMinOptimalWindowNode2(n.windowLength(spec)))
	case "nary_sum":
		memory.AddNaryNode(n.Inputs, n.Output, pwp.NewNaryNode(sumReducer))
	case "nary_max":
		memory.AddNaryNode(n.Inputs, n.Output, pwp.NewNaryNode(maxReducer))
	default:
		return fmt.Errorf("unknown node kind %q", n.Kind)
	}
	return nil
}

// sumReducer and maxReducer are the built-in NaryOperator reducers a graph
// spec can select for an nary node: each combines one aligned interval per
// input via repeated pairwise Add (sumReducer, yielding a single interval) or
// MaxInterval (maxReducer, yielding the partition at the crossings).
func sumReducer(inputs []pwp.Interval) ([]pwp.Interval, error) {
	acc := inputs[0]
	for _, in := range inputs[1:] {
		var err error
		acc, err = acc.Add(in)
		if err != nil {
			return nil, err
		}
	}
	return []pwp.Interval{acc}, nil
}

func maxReducer(inputs []pwp.Interval) ([]pwp.Interval, error) {
	chunks := []pwp.Interval{inputs[0]}
	for _, in := range inputs[1:] {
		var next []pwp.Interval
		for _, chunk := range chunks {
			maxed, err := chunk.MaxInterval(in.Subset(chunk.Start, chunk.End))
			if err != nil {
				return nil, err
			}
			next = append(next, maxed...)
		}
		chunks = next
	}
	return chunks, nil
}
