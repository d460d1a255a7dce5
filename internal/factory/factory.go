package factory

import (
	"fmt"

	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// BuildContext carries everything a variant's builder may consume: its own
// resolved section, its already-constructed dependencies, and, for the
// top-level algorithm only, the external input artifact.
type BuildContext struct {
	Section      config.Properties
	Dependencies map[registry.Role]any
	Input        any
}

// Dependency returns the constructed instance for a role, or nil.
func (c BuildContext) Dependency(role registry.Role) any {
	return c.Dependencies[role]
}

// Builder constructs a component instance from its resolved configuration.
// One builder is implemented per variant and registered alongside its
// descriptor; the factory dispatches by name rather than through inheritance.
type Builder func(ctx BuildContext) (any, error)

// Factory performs uniform construction of component instances from resolved
// configuration sections.
type Factory struct {
	reg      *registry.Registry
	builders map[registry.Role]map[string]Builder
}

// New creates a factory over the given registry.
func New(reg *registry.Registry) *Factory {
	return &Factory{
		reg:      reg,
		builders: make(map[registry.Role]map[string]Builder),
	}
}

// RegisterBuilder binds a builder to a registered variant.
func (f *Factory) RegisterBuilder(role registry.Role, name string, b Builder) error {
	variants := f.builders[role]
	if variants == nil {
		variants = make(map[string]Builder)
		f.builders[role] = variants
	}
	if _, exists := variants[name]; exists {
		return &registry.DuplicateNameError{Role: role, Name: name}
	}
	variants[name] = b
	return nil
}

// Construct builds a component instance from its resolved section plus
// already-constructed dependency instances. The external input artifact is
// forwarded only when the descriptor's schema declares it required. Builder
// failures are wrapped in InstantiationError without losing the cause.
func (f *Factory) Construct(role registry.Role, section map[string]any, deps map[registry.Role]any, input any) (any, error) {
	name, _ := section["name"].(string)
	desc, err := f.reg.Lookup(role, name)
	if err != nil {
		return nil, err
	}
	builder, ok := f.builders[role][name]
	if !ok {
		return nil, &InstantiationError{Role: role, Name: name, Err: fmt.Errorf("no builder registered")}
	}

	ctx := BuildContext{
		Section:      config.Properties(section),
		Dependencies: deps,
	}
	if desc.Schema.RequiresInput {
		ctx.Input = input
	}

	instance, err := builder(ctx)
	if err != nil {
		return nil, &InstantiationError{Role: role, Name: name, Err: err}
	}
	return instance, nil
}

// ConstructTree builds the component named by the role's section in the
// resolved configuration, constructing its declared dependencies first,
// deepest dependency first. The input artifact is passed only to the
// top-level construction.
func (f *Factory) ConstructTree(role registry.Role, resolved config.ResolvedConfiguration, input any) (any, error) {
	section, ok := resolved[string(role)]
	if !ok {
		return nil, &InstantiationError{Role: role, Err: fmt.Errorf("resolved configuration has no %s section", role)}
	}
	name, _ := section["name"].(string)
	desc, err := f.reg.Lookup(role, name)
	if err != nil {
		return nil, err
	}

	deps := make(map[registry.Role]any, len(desc.Schema.Dependencies))
	for _, dep := range desc.Schema.Dependencies {
		instance, err := f.ConstructTree(dep.Role, resolved, nil)
		if err != nil {
			return nil, err
		}
		deps[dep.Role] = instance
	}

	return f.Construct(role, section, deps, input)
}
