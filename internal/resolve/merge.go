package resolve

import (
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// mergeDefaults fills every property absent from the section with its schema
// default. Object properties merge recursively: nested defaults complete a
// partially user-specified sub-object instead of replacing it.
func mergeDefaults(section map[string]any, specs map[string]registry.PropertySpec) {
	for key, spec := range specs {
		value, present := section[key]
		if !present {
			section[key] = defaultValue(spec)
			continue
		}
		if spec.Type == registry.TypeObject && len(spec.Properties) > 0 {
			if sub, ok := value.(map[string]any); ok {
				mergeDefaults(sub, spec.Properties)
			}
		}
	}
}

// defaultValue materializes a deep copy of a property's declared default.
// Object defaults are assembled from the nested property specs, layered over
// the declared object default when one exists.
func defaultValue(spec registry.PropertySpec) any {
	if spec.Type == registry.TypeObject && len(spec.Properties) > 0 {
		base := map[string]any{}
		if declared, ok := spec.Default.(map[string]any); ok {
			if copied, ok := config.Normalize(declared).(map[string]any); ok {
				base = copied
			}
		}
		mergeDefaults(base, spec.Properties)
		return base
	}
	return config.Normalize(spec.Default)
}
