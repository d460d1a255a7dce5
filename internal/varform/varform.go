package varform

import (
	"math"
	"math/rand"

	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/optimize"
	"github.com/quantafold/hybrid-core/internal/registry"
)

// VariationalForm is a parametrized ansatz. A form is configured with its
// depth and entanglement layout, then sized to the operator's qubit count by
// the algorithm that consumes it.
type VariationalForm interface {
	Name() string
	Qubits() int
	Depth() int
	NumParameters() int
	// Bounds returns one bound per parameter.
	Bounds() []optimize.Bound
	// PreferredInitialPoint draws a starting point for the parameters.
	PreferredInitialPoint(rng *rand.Rand) []float64
	// ForQubits returns a copy of the form sized to the given qubit count.
	ForQubits(n int) VariationalForm
}

// Form is the layered-rotation ansatz family backing the RY and RYRZ
// variants: rotationsPerQubit rotation angles per qubit per layer, with
// depth entangling layers between them.
type Form struct {
	name              string
	qubits            int
	depth             int
	entanglement      string
	rotationsPerQubit int
}

// NewRY creates a single-rotation layered form.
func NewRY(depth int, entanglement string) *Form {
	return &Form{name: "RY", depth: depth, entanglement: entanglement, rotationsPerQubit: 1}
}

// NewRYRZ creates a double-rotation layered form.
func NewRYRZ(depth int, entanglement string) *Form {
	return &Form{name: "RYRZ", depth: depth, entanglement: entanglement, rotationsPerQubit: 2}
}

func (f *Form) Name() string {
	return f.name
}

func (f *Form) Qubits() int {
	return f.qubits
}

func (f *Form) Depth() int {
	return f.depth
}

// Entanglement returns the declared entangling layout (full or linear).
func (f *Form) Entanglement() string {
	return f.entanglement
}

func (f *Form) NumParameters() int {
	return f.rotationsPerQubit * f.qubits * (f.depth + 1)
}

func (f *Form) Bounds() []optimize.Bound {
	bounds := make([]optimize.Bound, f.NumParameters())
	for i := range bounds {
		bounds[i] = optimize.Bound{Lower: -math.Pi, Upper: math.Pi}
	}
	return bounds
}

func (f *Form) PreferredInitialPoint(rng *rand.Rand) []float64 {
	point := make([]float64, f.NumParameters())
	if rng == nil {
		return point
	}
	for i := range point {
		point[i] = (rng.Float64()*2 - 1) * math.Pi
	}
	return point
}

func (f *Form) ForQubits(n int) VariationalForm {
	sized := *f
	sized.qubits = n
	return &sized
}

// RegisterBuiltIn registers the built-in variational forms and their builders.
func RegisterBuiltIn(reg *registry.Registry, fac *factory.Factory) error {
	schema := registry.Schema{
		Properties: map[string]registry.PropertySpec{
			"depth": {Type: registry.TypeInteger, Default: 3, Minimum: registry.Min(1)},
			"entanglement": {
				Type:    registry.TypeString,
				Default: "full",
				Enum:    []any{"full", "linear"},
			},
		},
	}

	variants := []struct {
		name        string
		description string
		build       func(depth int, entanglement string) VariationalForm
	}{
		{
			name:        "RY",
			description: "Layered single-rotation ansatz",
			build: func(depth int, entanglement string) VariationalForm {
				return NewRY(depth, entanglement)
			},
		},
		{
			name:        "RYRZ",
			description: "Layered double-rotation ansatz",
			build: func(depth int, entanglement string) VariationalForm {
				return NewRYRZ(depth, entanglement)
			},
		},
	}

	for _, v := range variants {
		descriptor := &registry.Descriptor{
			Name:        v.name,
			Role:        registry.RoleVariationalForm,
			Description: v.description,
			Schema:      schema,
		}
		if err := reg.Register(descriptor); err != nil {
			return err
		}
		build := v.build
		err := fac.RegisterBuilder(registry.RoleVariationalForm, v.name, func(ctx factory.BuildContext) (any, error) {
			return build(ctx.Section.Int("depth"), ctx.Section.String("entanglement")), nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
