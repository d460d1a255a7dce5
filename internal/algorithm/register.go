package algorithm

import (
	"fmt"

	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/optimize"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/internal/varform"
)

var operatorModeSpec = registry.PropertySpec{
	Type:    registry.TypeString,
	Default: "matrix",
	Enum:    []any{"matrix", "paulis", "grouped_paulis"},
}

var initialPointSpec = registry.PropertySpec{
	Type:     registry.TypeArray,
	Nullable: true,
	Default:  nil,
}

// RegisterBuiltIn registers the built-in algorithms and their builders.
func RegisterBuiltIn(reg *registry.Registry, fac *factory.Factory) error {
	if err := registerVQE(reg, fac); err != nil {
		return err
	}
	if err := registerQAOA(reg, fac); err != nil {
		return err
	}
	return registerExact(reg, fac)
}

func registerVQE(reg *registry.Registry, fac *factory.Factory) error {
	descriptor := &registry.Descriptor{
		Name:        "VQE",
		Role:        registry.RoleAlgorithm,
		Description: "Variational eigenvalue estimation",
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"operator_mode": operatorModeSpec,
				"initial_point": initialPointSpec,
				"batch_mode":    {Type: registry.TypeBoolean, Default: false},
			},
			Dependencies: []registry.Dependency{
				{Role: registry.RoleOptimizer, DefaultName: "COBYLA"},
				{Role: registry.RoleVariationalForm, DefaultName: "RYRZ"},
			},
			RequiresInput: true,
		},
		Problems: []string{"energy", "ising"},
	}
	if err := reg.Register(descriptor); err != nil {
		return err
	}
	return fac.RegisterBuilder(registry.RoleAlgorithm, "VQE", func(ctx factory.BuildContext) (any, error) {
		in, err := energyInput(ctx)
		if err != nil {
			return nil, err
		}
		opt, ok := ctx.Dependency(registry.RoleOptimizer).(optimize.Optimizer)
		if !ok {
			return nil, fmt.Errorf("optimizer dependency is missing")
		}
		form, ok := ctx.Dependency(registry.RoleVariationalForm).(varform.VariationalForm)
		if !ok {
			return nil, fmt.Errorf("variational form dependency is missing")
		}
		return NewVQE(
			in,
			form,
			opt,
			ctx.Section.String("operator_mode"),
			ctx.Section.Floats("initial_point"),
			ctx.Section.Bool("batch_mode"),
		)
	})
}

func registerQAOA(reg *registry.Registry, fac *factory.Factory) error {
	descriptor := &registry.Descriptor{
		Name:        "QAOA",
		Role:        registry.RoleAlgorithm,
		Description: "Approximate optimization over a self-constructed ansatz",
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"operator_mode": operatorModeSpec,
				"p":             {Type: registry.TypeInteger, Default: 1, Minimum: registry.Min(1)},
				"initial_point": initialPointSpec,
				"batch_mode":    {Type: registry.TypeBoolean, Default: false},
			},
			Dependencies: []registry.Dependency{
				{Role: registry.RoleOptimizer, DefaultName: "COBYLA"},
			},
			RequiresInput: true,
		},
		Problems: []string{"ising"},
	}
	if err := reg.Register(descriptor); err != nil {
		return err
	}
	return fac.RegisterBuilder(registry.RoleAlgorithm, "QAOA", func(ctx factory.BuildContext) (any, error) {
		in, err := energyInput(ctx)
		if err != nil {
			return nil, err
		}
		opt, ok := ctx.Dependency(registry.RoleOptimizer).(optimize.Optimizer)
		if !ok {
			return nil, fmt.Errorf("optimizer dependency is missing")
		}
		return NewQAOA(
			in,
			opt,
			ctx.Section.Int("p"),
			ctx.Section.String("operator_mode"),
			ctx.Section.Floats("initial_point"),
			ctx.Section.Bool("batch_mode"),
		)
	})
}

func registerExact(reg *registry.Registry, fac *factory.Factory) error {
	descriptor := &registry.Descriptor{
		Name:        "ExactEigensolver",
		Role:        registry.RoleAlgorithm,
		Description: "Classical exact reference for diagonal operators",
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"k": {Type: registry.TypeInteger, Default: 1, Minimum: registry.Min(1)},
			},
			RequiresInput: true,
		},
		Problems: []string{"energy", "ising"},
	}
	if err := reg.Register(descriptor); err != nil {
		return err
	}
	return fac.RegisterBuilder(registry.RoleAlgorithm, "ExactEigensolver", func(ctx factory.BuildContext) (any, error) {
		in, err := energyInput(ctx)
		if err != nil {
			return nil, err
		}
		return NewExactEigensolver(in, ctx.Section.Int("k"))
	})
}

func energyInput(ctx factory.BuildContext) (*input.EnergyInput, error) {
	if ctx.Input == nil {
		return nil, fmt.Errorf("EnergyInput instance is required")
	}
	in, ok := ctx.Input.(*input.EnergyInput)
	if !ok {
		return nil, fmt.Errorf("unexpected input artifact %T", ctx.Input)
	}
	return in, nil
}
