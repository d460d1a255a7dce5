package backend

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/quantafold/hybrid-core/internal/input"
)

// LocalSamplerName is the name of the built-in reference evaluator.
const LocalSamplerName = "local_sampler"

// LocalSampler is a deterministic in-process evaluator used as a stand-in for
// a remote evaluation service. Each Pauli term contributes its coefficient
// scaled by a smooth trigonometric weight of the per-qubit angles, so the
// surface is bounded, differentiable, and cheap to probe. With noise enabled,
// a seeded shot-noise term of magnitude 1/sqrt(shots) is added.
type LocalSampler struct {
	shots int
	noise bool
	rng   *rand.Rand
}

// NewLocalSampler creates a local sampler.
func NewLocalSampler(shots int, seed int64, noise bool) *LocalSampler {
	if shots <= 0 {
		shots = 1024
	}
	return &LocalSampler{
		shots: shots,
		noise: noise,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (s *LocalSampler) Name() string {
	return LocalSamplerName
}

func (s *LocalSampler) Expectation(op input.Operator, ansatz Ansatz, params []float64, mode string) (float64, error) {
	if ansatz == nil {
		return 0, fmt.Errorf("local sampler requires an ansatz")
	}
	if len(params) != ansatz.NumParameters() {
		return 0, fmt.Errorf("expected %d parameters, got %d", ansatz.NumParameters(), len(params))
	}

	angles := foldAngles(params, ansatz.Qubits())
	value := 0.0
	for _, term := range op.Paulis {
		weight := 1.0
		for j, factor := range term.Label {
			theta := angles[j%len(angles)]
			switch factor {
			case 'I':
				// contributes fully
			case 'Z':
				weight *= math.Cos(theta)
			case 'X':
				weight *= math.Sin(theta)
			case 'Y':
				weight *= math.Sin(theta) * math.Cos(theta)
			}
		}
		value += term.Coeff.Real * weight
	}

	if s.noise {
		value += s.rng.NormFloat64() / math.Sqrt(float64(s.shots))
	}
	return value, nil
}

func (s *LocalSampler) ExpectationBatch(op input.Operator, ansatz Ansatz, paramSets [][]float64, mode string) ([]float64, error) {
	values := make([]float64, len(paramSets))
	for i, params := range paramSets {
		v, err := s.Expectation(op, ansatz, params, mode)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// foldAngles reduces a parameter vector to one effective angle per qubit by
// summing the parameters assigned to each qubit across layers.
func foldAngles(params []float64, qubits int) []float64 {
	if qubits <= 0 {
		qubits = 1
	}
	angles := make([]float64, qubits)
	for i, p := range params {
		angles[i%qubits] += p
	}
	return angles
}
