package optimize

import (
	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/registry"
)

// RegisterBuiltIn registers the built-in optimizer variants and their
// builders. Called once during process initialization.
func RegisterBuiltIn(reg *registry.Registry, fac *factory.Factory) error {
	variants := []struct {
		descriptor *registry.Descriptor
		builder    factory.Builder
	}{
		{
			descriptor: &registry.Descriptor{
				Name:        "COBYLA",
				Role:        registry.RoleOptimizer,
				Description: "Derivative-free local search with a shrinking trust radius",
				Schema: registry.Schema{
					Properties: map[string]registry.PropertySpec{
						"max_evals": {Type: registry.TypeInteger, Default: 1000, Minimum: registry.Min(1)},
						"rhobeg":    {Type: registry.TypeNumber, Default: 1.0},
						"tol":       {Type: registry.TypeNumber, Default: 1e-4},
					},
				},
			},
			builder: func(ctx factory.BuildContext) (any, error) {
				return NewCOBYLA(
					ctx.Section.Int("max_evals"),
					ctx.Section.Float("rhobeg"),
					ctx.Section.Float("tol"),
				), nil
			},
		},
		{
			descriptor: &registry.Descriptor{
				Name:        "SPSA",
				Role:        registry.RoleOptimizer,
				Description: "Simultaneous-perturbation stochastic approximation",
				Schema: registry.Schema{
					Properties: map[string]registry.PropertySpec{
						"max_trials": {Type: registry.TypeInteger, Default: 1000, Minimum: registry.Min(1)},
						"a":          {Type: registry.TypeNumber, Default: 0.2},
						"c":          {Type: registry.TypeNumber, Default: 0.1},
						"seed":       {Type: registry.TypeInteger, Default: 42},
					},
				},
			},
			builder: func(ctx factory.BuildContext) (any, error) {
				return NewSPSA(
					ctx.Section.Int("max_trials"),
					ctx.Section.Float("a"),
					ctx.Section.Float("c"),
					ctx.Section.Int64("seed"),
				), nil
			},
		},
		{
			descriptor: &registry.Descriptor{
				Name:        "GradientDescent",
				Role:        registry.RoleOptimizer,
				Description: "Fixed-step gradient descent with finite-difference fallback",
				Schema: registry.Schema{
					Properties: map[string]registry.PropertySpec{
						"max_evals": {Type: registry.TypeInteger, Default: 1000, Minimum: registry.Min(1)},
						"eta":       {Type: registry.TypeNumber, Default: 0.1},
						"tol":       {Type: registry.TypeNumber, Default: 1e-6},
					},
				},
			},
			builder: func(ctx factory.BuildContext) (any, error) {
				return NewGradientDescent(
					ctx.Section.Int("max_evals"),
					ctx.Section.Float("eta"),
					ctx.Section.Float("tol"),
				), nil
			},
		},
		{
			descriptor: &registry.Descriptor{
				Name:        "Mayfly",
				Role:        registry.RoleOptimizer,
				Description: "Evolutionary search via the external mayfly library",
				Schema: registry.Schema{
					Properties: map[string]registry.PropertySpec{
						"max_iters":  {Type: registry.TypeInteger, Default: 200, Minimum: registry.Min(1)},
						"population": {Type: registry.TypeInteger, Default: 20, Minimum: registry.Min(20)},
						"seed":       {Type: registry.TypeInteger, Default: 42},
					},
				},
				Available: mayflyAvailable,
			},
			builder: func(ctx factory.BuildContext) (any, error) {
				return newMayflyBuilder(
					ctx.Section.Int("max_iters"),
					ctx.Section.Int("population"),
					ctx.Section.Int64("seed"),
				), nil
			},
		},
	}

	for _, v := range variants {
		if err := reg.Register(v.descriptor); err != nil {
			return err
		}
		if err := fac.RegisterBuilder(v.descriptor.Role, v.descriptor.Name, v.builder); err != nil {
			return err
		}
	}
	return nil
}
