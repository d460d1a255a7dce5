package optimize

import "fmt"

// Bound is an inclusive per-variable bound.
type Bound struct {
	Lower float64
	Upper float64
}

// Problem describes one optimization run: the objective to minimize and the
// optional shape information a variant may use. The objective evaluator is a
// closure owned by the algorithm that constructed the problem; optimizers
// never reach the evaluation backend directly.
type Problem struct {
	Dimension int
	// Objective evaluates a single parameter vector.
	Objective func(x []float64) (float64, error)
	// BatchObjective, when non-nil, evaluates several parameter vectors in one
	// call, returning values in input order. Variants that probe multiple
	// points per iteration may prefer it; it is a calling convention, not a
	// concurrency mechanism.
	BatchObjective func(xs [][]float64) ([]float64, error)
	// Gradient, when non-nil, evaluates the objective gradient.
	Gradient func(x []float64) ([]float64, error)
	// Bounds, when non-nil, holds one bound per variable.
	Bounds []Bound
	// InitialPoint, when non-nil, is the starting parameter vector.
	InitialPoint []float64
}

// Result is the outcome of an optimization run.
type Result struct {
	// Point is the best parameter vector found.
	Point []float64
	// Value is the objective value at Point.
	Value float64
	// Evaluations counts objective evaluations performed, including batched
	// ones individually.
	Evaluations int
	// Reason states why iteration terminated.
	Reason string
}

// Optimizer is the uniform contract every optimizer variant implements.
type Optimizer interface {
	Name() string
	Capabilities() Capabilities
	Optimize(p *Problem) (*Result, error)
}

// evalCounter wraps a problem's evaluators and counts every evaluation.
type evalCounter struct {
	problem *Problem
	count   int
}

func newEvalCounter(p *Problem) *evalCounter {
	return &evalCounter{problem: p}
}

func (c *evalCounter) eval(x []float64) (float64, error) {
	c.count++
	return c.problem.Objective(x)
}

// evalBatch evaluates several points, through the batch objective when the
// problem offers one and through repeated scalar calls otherwise. Result
// order matches input order either way.
func (c *evalCounter) evalBatch(xs [][]float64) ([]float64, error) {
	if c.problem.BatchObjective != nil {
		c.count += len(xs)
		return c.problem.BatchObjective(xs)
	}
	values := make([]float64, len(xs))
	for i, x := range xs {
		v, err := c.eval(x)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func validateProblem(p *Problem) error {
	if p == nil {
		return fmt.Errorf("optimization problem is required")
	}
	if p.Dimension <= 0 {
		return fmt.Errorf("optimization problem dimension must be positive, got %d", p.Dimension)
	}
	if p.Objective == nil {
		return fmt.Errorf("optimization problem has no objective evaluator")
	}
	return nil
}

func clonePoint(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
