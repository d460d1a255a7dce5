package optimize

// COBYLA is a derivative-free local search. The numeric routine is a
// coordinate pattern search with a shrinking trust radius, starting at rhobeg
// and terminating once the radius falls below tol or the evaluation budget is
// spent.
type COBYLA struct {
	maxEvals int
	rhoBeg   float64
	tol      float64
}

// NewCOBYLA creates a COBYLA optimizer.
func NewCOBYLA(maxEvals int, rhoBeg, tol float64) *COBYLA {
	if maxEvals <= 0 {
		maxEvals = 1000
	}
	if rhoBeg <= 0 {
		rhoBeg = 1.0
	}
	if tol <= 0 {
		tol = 1e-4
	}
	return &COBYLA{maxEvals: maxEvals, rhoBeg: rhoBeg, tol: tol}
}

func (o *COBYLA) Name() string {
	return "COBYLA"
}

func (o *COBYLA) Capabilities() Capabilities {
	return Capabilities{
		Gradient:     SupportIgnored,
		Bounds:       SupportIgnored,
		InitialPoint: SupportRequired,
	}
}

func (o *COBYLA) Optimize(p *Problem) (*Result, error) {
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

	rho := o.rhoBeg
	for rho > o.tol && counter.count < o.maxEvals {
		improved := false
		for i := 0; i < prob.Dimension && counter.count < o.maxEvals; i++ {
			for _, direction := range []float64{1, -1} {
				trial := clonePoint(x)
				trial[i] += direction * rho
				ft, err := counter.eval(trial)
				if err != nil {
					return nil, err
				}
				if ft < fx {
					x, fx = trial, ft
					improved = true
					break
				}
				if counter.count >= o.maxEvals {
					break
				}
			}
		}
		if !improved {
			rho /= 2
		}
	}

	reason := "trust radius below tolerance"
	if counter.count >= o.maxEvals {
		reason = "evaluation budget exhausted"
	}
	return &Result{Point: x, Value: fx, Evaluations: counter.count, Reason: reason}, nil
}
