package resolve

import "github.com/quantafold/hybrid-core/internal/registry"

// SectionProblem carries cross-cutting settings shared by all components.
const SectionProblem = "problem"

// SectionBackend selects and configures the external evaluation backend. All
// recognized setup options are declared here and validated at the same stage
// as every other section; unrecognized keys are rejected.
const SectionBackend = "backend"

var problemSchema = registry.Schema{
	Properties: map[string]registry.PropertySpec{
		"name": {
			Type: registry.TypeString,
		},
		"random_seed": {
			Type:     registry.TypeInteger,
			Nullable: true,
			Default:  nil,
		},
	},
}

var backendSchema = registry.Schema{
	Properties: map[string]registry.PropertySpec{
		"name": {
			Type:    registry.TypeString,
			Default: "local_sampler",
		},
		"shots": {
			Type:    registry.TypeInteger,
			Default: 1024,
			Minimum: registry.Min(1),
		},
		"seed": {
			Type:     registry.TypeInteger,
			Nullable: true,
			Default:  nil,
		},
		"noise": {
			Type:    registry.TypeBoolean,
			Default: false,
		},
	},
}

func isSpecialSection(name string) bool {
	return name == SectionProblem || name == SectionBackend
}
