package optimize

import (
	"math"
	"math/rand"
)

// SPSA implements simultaneous-perturbation stochastic approximation. Each
// trial estimates the gradient from two objective evaluations at random
// symmetric perturbations, so the per-trial cost is independent of the
// problem dimension. The two probe points of a trial form one natural batch.
type SPSA struct {
	maxTrials int
	a         float64
	c         float64
	seed      int64
}

// Standard SPSA gain-sequence exponents.
const (
	spsaAlpha = 0.602
	spsaGamma = 0.101
)

// NewSPSA creates an SPSA optimizer.
func NewSPSA(maxTrials int, a, c float64, seed int64) *SPSA {
	if maxTrials <= 0 {
		maxTrials = 1000
	}
	if a <= 0 {
		a = 0.2
	}
	if c <= 0 {
		c = 0.1
	}
	return &SPSA{maxTrials: maxTrials, a: a, c: c, seed: seed}
}

func (o *SPSA) Name() string {
	return "SPSA"
}

func (o *SPSA) Capabilities() Capabilities {
	return Capabilities{
		Gradient:     SupportIgnored,
		Bounds:       SupportIgnored,
		InitialPoint: SupportRequired,
	}
}

func (o *SPSA) Optimize(p *Problem) (*Result, error) {
	prob, err := prepare(o, p)
	if err != nil {
		return nil, err
	}
	counter := newEvalCounter(prob)
	rng := rand.New(rand.NewSource(o.seed))

	theta := clonePoint(prob.InitialPoint)
	best := clonePoint(theta)
	bestValue := math.MaxFloat64
	stability := float64(o.maxTrials) / 10

	for k := 1; k <= o.maxTrials; k++ {
		ak := o.a / math.Pow(float64(k)+stability, spsaAlpha)
		ck := o.c / math.Pow(float64(k), spsaGamma)

		delta := make([]float64, prob.Dimension)
		plus := make([]float64, prob.Dimension)
		minus := make([]float64, prob.Dimension)
		for i := range delta {
			if rng.Intn(2) == 0 {
				delta[i] = 1
			} else {
				delta[i] = -1
			}
			plus[i] = theta[i] + ck*delta[i]
			minus[i] = theta[i] - ck*delta[i]
		}

		values, err := counter.evalBatch([][]float64{plus, minus})
		if err != nil {
			return nil, err
		}
		if values[0] < bestValue {
			bestValue = values[0]
			best = clonePoint(plus)
		}
		if values[1] < bestValue {
			bestValue = values[1]
			best = clonePoint(minus)
		}

		for i := range theta {
			ghat := (values[0] - values[1]) / (2 * ck * delta[i])
			theta[i] -= ak * ghat
		}
	}

	final, err := counter.eval(theta)
	if err != nil {
		return nil, err
	}
	if final < bestValue {
		bestValue = final
		best = clonePoint(theta)
	}

	return &Result{
		Point:       best,
		Value:       bestValue,
		Evaluations: counter.count,
		Reason:      "trial budget exhausted",
	}, nil
}
