package optimize

import (
	"testing"
)

func TestGradientDescentMinimizesSphere(t *testing.T) {
	opt := NewGradientDescent(1000, 0.1, 1e-6)
	result, err := opt.Optimize(&Problem{
		Dimension:    2,
		Objective:    sphere,
		InitialPoint: []float64{1, 1},
	})
	if err != nil {
		t.Fatalf("failed to optimize: %v", err)
	}

	if result.Value > 1e-10 {
		t.Fatalf("expected near-zero minimum, got %v at %v", result.Value, result.Point)
	}
	if result.Reason != "gradient norm below tolerance" {
		t.Fatalf("unexpected termination reason %q", result.Reason)
	}
	if result.Evaluations == 0 || result.Evaluations > 1000 {
		t.Fatalf("unexpected evaluation count %d", result.Evaluations)
	}
}

func TestGradientDescentUsesSuppliedGradient(t *testing.T) {
	gradientCalls := 0
	opt := NewGradientDescent(1000, 0.1, 1e-6)
	result, err := opt.Optimize(&Problem{
		Dimension: 2,
		Objective: sphere,
		Gradient: func(x []float64) ([]float64, error) {
			gradientCalls++
			grad := make([]float64, len(x))
			for i, v := range x {
				grad[i] = 2 * v
			}
			return grad, nil
		},
		InitialPoint: []float64{1, -1},
	})
	if err != nil {
		t.Fatalf("failed to optimize: %v", err)
	}

	if gradientCalls == 0 {
		t.Fatalf("supplied gradient was never used")
	}
	if result.Value > 1e-10 {
		t.Fatalf("expected near-zero minimum, got %v", result.Value)
	}
	// One objective evaluation per step; finite differences would add four.
	if result.Evaluations >= gradientCalls*3 {
		t.Fatalf("evaluation count %d suggests finite differencing despite a gradient (%d gradient calls)", result.Evaluations, gradientCalls)
	}
}

func TestGradientDescentStopsOnBudget(t *testing.T) {
	opt := NewGradientDescent(10, 1e-9, 1e-12)
	result, err := opt.Optimize(&Problem{
		Dimension:    2,
		Objective:    sphere,
		InitialPoint: []float64{5, 5},
	})
	if err != nil {
		t.Fatalf("failed to optimize: %v", err)
	}
	if result.Reason != "evaluation budget exhausted" {
		t.Fatalf("unexpected termination reason %q", result.Reason)
	}
}
