package input

import (
	"encoding/json"
	"fmt"

	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// EnergyInputName is the registered name of the energy input adapter.
const EnergyInputName = "EnergyInput"

// EnergyInput is the external input artifact for energy-style problems: the
// operator whose ground value the algorithm estimates.
type EnergyInput struct {
	Operator Operator
}

// NewEnergyInput creates an EnergyInput after validating the operator.
func NewEnergyInput(op Operator) (*EnergyInput, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return &EnergyInput{Operator: op}, nil
}

// Name returns the adapter's registered component name.
func (e *EnergyInput) Name() string {
	return EnergyInputName
}

// ToProperties renders the artifact in its property form, the shape persisted
// under the input section of a resolved configuration.
func (e *EnergyInput) ToProperties() (map[string]any, error) {
	data, err := json.Marshal(e.Operator)
	if err != nil {
		return nil, fmt.Errorf("failed to encode operator: %w", err)
	}
	var props map[string]any
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("failed to decode operator properties: %w", err)
	}
	normalized, _ := config.Normalize(props).(map[string]any)
	return normalized, nil
}

// FromProperties reconstructs an EnergyInput from its property form.
func FromProperties(props map[string]any) (*EnergyInput, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input properties: %w", err)
	}
	var op Operator
	if err := json.Unmarshal(data, &op); err != nil {
		return nil, fmt.Errorf("failed to decode operator from input properties: %w", err)
	}
	return NewEnergyInput(op)
}

// RegisterBuiltIn registers the built-in input adapters and their builders.
func RegisterBuiltIn(reg *registry.Registry, fac *factory.Factory) error {
	descriptor := &registry.Descriptor{
		Name:        EnergyInputName,
		Role:        registry.RoleInput,
		Description: "Operator input for energy estimation problems",
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"paulis": {Type: registry.TypeArray, Default: []any{}},
			},
		},
		Problems: []string{"energy", "ising"},
	}
	if err := reg.Register(descriptor); err != nil {
		return err
	}
	return fac.RegisterBuilder(registry.RoleInput, EnergyInputName, func(ctx factory.BuildContext) (any, error) {
		props := map[string]any{}
		for key, value := range ctx.Section {
			if key == "name" {
				continue
			}
			props[key] = value
		}
		return FromProperties(props)
	})
}
