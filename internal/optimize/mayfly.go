//go:build !nomayfly

package optimize

import (
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// Mayfly wraps the external mayfly evolutionary optimizer. The variant is
// excluded from the registry when built with the nomayfly tag.
type Mayfly struct {
	maxIters   int
	population int
	seed       int64
}

// NewMayfly creates a mayfly optimizer adapter.
func NewMayfly(maxIters, population int, seed int64) *Mayfly {
	if maxIters <= 0 {
		maxIters = 200
	}
	// The library needs a minimum population to split into male and female
	// swarms.
	if population < 20 {
		population = 20
	}
	return &Mayfly{maxIters: maxIters, population: population, seed: seed}
}

func mayflyAvailable() bool {
	return true
}

func (o *Mayfly) Name() string {
	return "Mayfly"
}

func (o *Mayfly) Capabilities() Capabilities {
	return Capabilities{
		Gradient:     SupportIgnored,
		Bounds:       SupportRequired,
		InitialPoint: SupportIgnored,
	}
}

func (o *Mayfly) Optimize(p *Problem) (*Result, error) {
	prob, err := prepare(o, p)
	if err != nil {
		return nil, err
	}
	counter := newEvalCounter(prob)

	// The library's objective cannot return an error; capture the first one
	// and surface it after the run.
	var evalErr error
	objective := func(x []float64) float64 {
		if evalErr != nil {
			return math.Inf(1)
		}
		v, err := counter.eval(x)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		return v
	}

	cfg := mayfly.NewDefaultConfig()
	cfg.ObjectiveFunc = objective
	cfg.ProblemSize = prob.Dimension
	cfg.MaxIterations = o.maxIters
	cfg.NPop = o.population
	// The library takes scalar bounds shared by all dimensions, so
	// heterogeneous per-variable bounds are widened to their envelope.
	cfg.LowerBound, cfg.UpperBound = boundsEnvelope(prob.Bounds)
	cfg.Rand = rand.New(rand.NewSource(o.seed))

	result, err := mayfly.Optimize(cfg)
	if evalErr != nil {
		return nil, evalErr
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Point:       clonePoint(result.GlobalBest.Position),
		Value:       result.GlobalBest.Cost,
		Evaluations: counter.count,
		Reason:      "max iterations reached",
	}, nil
}

// boundsEnvelope reduces per-variable bounds to the widest scalar pair
// covering every variable.
func boundsEnvelope(bounds []Bound) (float64, float64) {
	lower, upper := bounds[0].Lower, bounds[0].Upper
	for _, b := range bounds[1:] {
		lower = math.Min(lower, b.Lower)
		upper = math.Max(upper, b.Upper)
	}
	return lower, upper
}

func newMayflyBuilder(maxIters, population int, seed int64) Optimizer {
	return NewMayfly(maxIters, population, seed)
}
