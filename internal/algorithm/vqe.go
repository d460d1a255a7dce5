package algorithm

import (
	"fmt"

	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/optimize"
	"github.com/quantafold/hybrid-core/internal/varform"
)

// NewVQE creates a variational eigenvalue estimation algorithm: the
// configured variational form spans the trial states, the classical optimizer
// minimizes the backend-reported expectation.
func NewVQE(in *input.EnergyInput, form varform.VariationalForm, opt optimize.Optimizer, operatorMode string, initialPoint []float64, batchMode bool) (Algorithm, error) {
	if in == nil {
		return nil, fmt.Errorf("EnergyInput instance is required")
	}
	if form == nil {
		return nil, fmt.Errorf("variational form is required")
	}
	if opt == nil {
		return nil, fmt.Errorf("optimizer is required")
	}
	return &variational{
		name:         "VQE",
		operator:     in.Operator,
		form:         form,
		optimizer:    opt,
		operatorMode: operatorMode,
		initialPoint: initialPoint,
		batchMode:    batchMode,
	}, nil
}
