package backend

import (
	"fmt"

	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// Ansatz describes the parametrized state preparation an evaluator samples.
// Variational forms implement it.
type Ansatz interface {
	NumParameters() int
	Qubits() int
}

// Evaluator is the external evaluation contract. Calls are blocking black
// boxes with no framework timeout; evaluation failures propagate unchanged to
// the caller of the top-level execution.
type Evaluator interface {
	Name() string
	// Expectation returns the figure of merit for one parameter vector.
	Expectation(op input.Operator, ansatz Ansatz, params []float64, mode string) (float64, error)
	// ExpectationBatch evaluates several parameter vectors, returning values
	// in input order.
	ExpectationBatch(op input.Operator, ansatz Ansatz, paramSets [][]float64, mode string) ([]float64, error)
}

// Options is the explicit set of recognized backend setup options. Unknown
// keys are rejected during resolution like any other section's properties.
type Options struct {
	Name  string
	Shots int
	Seed  int64
	Noise bool
}

// OptionsFromSection reads backend options from a resolved backend section.
func OptionsFromSection(props config.Properties) Options {
	opts := Options{
		Name:  props.String("name"),
		Shots: props.Int("shots"),
		Noise: props.Bool("noise"),
	}
	if props.Has("seed") {
		opts.Seed = props.Int64("seed")
	}
	return opts
}

// New constructs the evaluator selected by the options.
func New(opts Options) (Evaluator, error) {
	switch opts.Name {
	case "", LocalSamplerName:
		return NewLocalSampler(opts.Shots, opts.Seed, opts.Noise), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", opts.Name)
	}
}
