package optimize

import "math"

// GradientDescent is a fixed-step descent on the objective gradient. When the
// problem supplies no gradient evaluator, central finite differences are used
// instead, costing two objective evaluations per variable per step.
type GradientDescent struct {
	maxEvals int
	eta      float64
	tol      float64
}

const finiteDiffStep = 1e-6

// NewGradientDescent creates a gradient-descent optimizer.
func NewGradientDescent(maxEvals int, eta, tol float64) *GradientDescent {
	if maxEvals <= 0 {
		maxEvals = 1000
	}
	if eta <= 0 {
		eta = 0.1
	}
	if tol <= 0 {
		tol = 1e-6
	}
	return &GradientDescent{maxEvals: maxEvals, eta: eta, tol: tol}
}

func (o *GradientDescent) Name() string {
	return "GradientDescent"
}

func (o *GradientDescent) Capabilities() Capabilities {
	return Capabilities{
		Gradient:     SupportSupported,
		Bounds:       SupportIgnored,
		InitialPoint: SupportRequired,
	}
}

func (o *GradientDescent) Optimize(p *Problem) (*Result, error) {
	prob, err := prepare(o, p)
	if err != nil {
		return nil, err
	}
	counter := newEvalCounter(prob)

	x := clonePoint(prob.InitialPoint)
	fx, err := counter.eval(x)
	if err != nil {
		return nil, err
	}

	reason := "evaluation budget exhausted"
	for counter.count < o.maxEvals {
		grad, err := o.gradientAt(counter, prob, x)
		if err != nil {
			return nil, err
		}

		norm := 0.0
		for _, g := range grad {
			norm += g * g
		}
		if math.Sqrt(norm) < o.tol {
			reason = "gradient norm below tolerance"
			break
		}

		for i := range x {
			x[i] -= o.eta * grad[i]
		}
		fx, err = counter.eval(x)
		if err != nil {
			return nil, err
		}
	}

	return &Result{Point: x, Value: fx, Evaluations: counter.count, Reason: reason}, nil
}

func (o *GradientDescent) gradientAt(counter *evalCounter, prob *Problem, x []float64) ([]float64, error) {
	if prob.Gradient != nil {
		return prob.Gradient(x)
	}

	probes := make([][]float64, 0, 2*len(x))
	for i := range x {
		plus := clonePoint(x)
		plus[i] += finiteDiffStep
		minus := clonePoint(x)
		minus[i] -= finiteDiffStep
		probes = append(probes, plus, minus)
	}
	values, err := counter.evalBatch(probes)
	if err != nil {
		return nil, err
	}

	grad := make([]float64, len(x))
	for i := range x {
		grad[i] = (values[2*i] - values[2*i+1]) / (2 * finiteDiffStep)
	}
	return grad, nil
}
