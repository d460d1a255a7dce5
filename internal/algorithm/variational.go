package algorithm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/quantafold/hybrid-core/internal/backend"
	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/optimize"
	"github.com/quantafold/hybrid-core/internal/varform"
)

// variational is the hybrid iterative loop shared by the variational
// algorithms: it builds an optimization problem whose objective closes over
// the evaluation backend and hands it to the configured optimizer. The
// algorithm owns the objective closure; the optimizer never calls the backend
// directly.
type variational struct {
	name         string
	operator     input.Operator
	form         varform.VariationalForm
	optimizer    optimize.Optimizer
	operatorMode string
	initialPoint []float64
	batchMode    bool
	seed         int64

	evaluator backend.Evaluator
}

func (v *variational) Name() string {
	return v.name
}

func (v *variational) SetupBackend(ev backend.Evaluator, opts backend.Options) error {
	v.evaluator = ev
	return nil
}

func (v *variational) SetSeed(seed int64) {
	v.seed = seed
}

func (v *variational) Run(ctx context.Context) (Result, error) {
	if v.evaluator == nil {
		return nil, fmt.Errorf("%s has no evaluation backend configured", v.name)
	}

	form := v.form.ForQubits(v.operator.Qubits())
	initialPoint := v.initialPoint
	if len(initialPoint) == 0 {
		initialPoint = form.PreferredInitialPoint(rand.New(rand.NewSource(v.seed)))
	}
	if len(initialPoint) != form.NumParameters() {
		return nil, fmt.Errorf("initial point has %d parameters, ansatz needs %d", len(initialPoint), form.NumParameters())
	}

	problem := &optimize.Problem{
		Dimension: form.NumParameters(),
		Objective: func(x []float64) (float64, error) {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			return v.evaluator.Expectation(v.operator, form, x, v.operatorMode)
		},
		Bounds:       form.Bounds(),
		InitialPoint: initialPoint,
	}
	if v.batchMode {
		problem.BatchObjective = func(xs [][]float64) ([]float64, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return v.evaluator.ExpectationBatch(v.operator, form, xs, v.operatorMode)
		}
	}

	start := time.Now()
	opt, err := v.optimizer.Optimize(problem)
	if err != nil {
		return nil, err
	}

	return Result{
		"energy":      opt.Value,
		"eigvals":     []complex128{complex(opt.Value, 0)},
		"opt_params":  opt.Point,
		"eval_count":  opt.Evaluations,
		"eval_time":   time.Since(start).Seconds(),
		"termination": opt.Reason,
	}, nil
}
