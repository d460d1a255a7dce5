package algorithm

import (
	"context"
	"fmt"
	"sort"

	"github.com/quantafold/hybrid-core/internal/input"
)

// exactMaxQubits bounds the brute-force enumeration.
const exactMaxQubits = 20

// ExactEigensolver computes the exact lowest values of a diagonal operator by
// enumerating spin assignments. It is a classical reference algorithm with no
// optimizer or backend dependency.
type ExactEigensolver struct {
	operator input.Operator
	k        int
}

// NewExactEigensolver creates the exact solver.
func NewExactEigensolver(in *input.EnergyInput, k int) (*ExactEigensolver, error) {
	if in == nil {
		return nil, fmt.Errorf("EnergyInput instance is required")
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	if !in.Operator.Diagonal() {
		return nil, fmt.Errorf("exact eigensolver requires a diagonal operator (I and Z factors only)")
	}
	if in.Operator.Qubits() > exactMaxQubits {
		return nil, fmt.Errorf("operator acts on %d qubits, exact enumeration is limited to %d", in.Operator.Qubits(), exactMaxQubits)
	}
	return &ExactEigensolver{operator: in.Operator, k: k}, nil
}

func (e *ExactEigensolver) Name() string {
	return "ExactEigensolver"
}

func (e *ExactEigensolver) Run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qubits := e.operator.Qubits()
	total := 1 << qubits
	energies := make([]float64, 0, total)

	for assignment := 0; assignment < total; assignment++ {
		energy := 0.0
		for _, term := range e.operator.Paulis {
			weight := 1.0
			for j, factor := range term.Label {
				if factor == 'Z' && assignment&(1<<j) != 0 {
					weight = -weight
				}
			}
			energy += term.Coeff.Real * weight
		}
		energies = append(energies, energy)
	}
	sort.Float64s(energies)

	k := e.k
	if k > len(energies) {
		k = len(energies)
	}
	eigvals := make([]complex128, k)
	for i := 0; i < k; i++ {
		eigvals[i] = complex(energies[i], 0)
	}

	return Result{
		"energy":  energies[0],
		"eigvals": eigvals,
	}, nil
}
