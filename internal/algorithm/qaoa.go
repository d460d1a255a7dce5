package algorithm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/optimize"
	"github.com/quantafold/hybrid-core/internal/varform"
)

// qaoaForm is the ansatz the approximate-optimization algorithm constructs
// for itself from the operator and its repetition count p: one mixing and one
// phase angle per repetition.
type qaoaForm struct {
	qubits int
	p      int
}

func (f *qaoaForm) Name() string {
	return "QAOAVarForm"
}

func (f *qaoaForm) Qubits() int {
	return f.qubits
}

func (f *qaoaForm) Depth() int {
	return f.p
}

func (f *qaoaForm) NumParameters() int {
	return 2 * f.p
}

func (f *qaoaForm) Bounds() []optimize.Bound {
	bounds := make([]optimize.Bound, f.NumParameters())
	for i := range bounds {
		bounds[i] = optimize.Bound{Lower: -math.Pi, Upper: math.Pi}
	}
	return bounds
}

func (f *qaoaForm) PreferredInitialPoint(rng *rand.Rand) []float64 {
	point := make([]float64, f.NumParameters())
	if rng == nil {
		return point
	}
	for i := range point {
		point[i] = (rng.Float64()*2 - 1) * math.Pi
	}
	return point
}

func (f *qaoaForm) ForQubits(n int) varform.VariationalForm {
	sized := *f
	sized.qubits = n
	return &sized
}

// NewQAOA creates the approximate-optimization algorithm. Unlike VQE it owns
// its ansatz; only the optimizer is a configured dependency.
func NewQAOA(in *input.EnergyInput, opt optimize.Optimizer, p int, operatorMode string, initialPoint []float64, batchMode bool) (Algorithm, error) {
	if in == nil {
		return nil, fmt.Errorf("EnergyInput instance is required")
	}
	if opt == nil {
		return nil, fmt.Errorf("optimizer is required")
	}
	if p < 1 {
		return nil, fmt.Errorf("repetition count p must be at least 1, got %d", p)
	}
	return &variational{
		name:         "QAOA",
		operator:     in.Operator,
		form:         &qaoaForm{qubits: in.Operator.Qubits(), p: p},
		optimizer:    opt,
		operatorMode: operatorMode,
		initialPoint: initialPoint,
		batchMode:    batchMode,
	}, nil
}
