package resolve

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// validateSection checks a merged section against its property specs: unknown
// properties, type mismatches, and constraint violations all fail with the
// offending section and property named. Properties are visited in sorted
// order so the first violation reported is deterministic.
func validateSection(section string, props map[string]any, specs map[string]registry.PropertySpec) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		// Selection names are checked during dependency resolution; schemas
		// that declare a name property (the special sections) validate it
		// like any other property.
		if key == "name" {
			if _, declared := specs["name"]; !declared {
				continue
			}
		}
		spec, known := specs[key]
		if !known {
			return &ConfigurationError{Section: section, Property: key, Reason: "unknown property"}
		}
		if err := validateValue(section, key, props[key], spec); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(section, property string, value any, spec registry.PropertySpec) error {
	if value == nil {
		if spec.Nullable {
			return nil
		}
		return &ConfigurationError{Section: section, Property: property, Reason: "null is not permitted"}
	}

	switch spec.Type {
	case registry.TypeString:
		if _, ok := value.(string); !ok {
			return typeMismatch(section, property, spec.Type, value)
		}
	case registry.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return typeMismatch(section, property, spec.Type, value)
		}
	case registry.TypeInteger:
		if _, ok := value.(int64); !ok {
			return typeMismatch(section, property, spec.Type, value)
		}
	case registry.TypeNumber:
		switch value.(type) {
		case int64, float64:
		default:
			return typeMismatch(section, property, spec.Type, value)
		}
	case registry.TypeArray:
		if _, ok := value.([]any); !ok {
			return typeMismatch(section, property, spec.Type, value)
		}
	case registry.TypeObject:
		sub, ok := value.(map[string]any)
		if !ok {
			return typeMismatch(section, property, spec.Type, value)
		}
		if len(spec.Properties) > 0 {
			return validateNested(section, property, sub, spec.Properties)
		}
	default:
		return &ConfigurationError{Section: section, Property: property, Reason: fmt.Sprintf("schema declares unknown type %q", spec.Type)}
	}

	if spec.Minimum != nil {
		if n, ok := numeric(value); ok && n < *spec.Minimum {
			return &ConfigurationError{
				Section:  section,
				Property: property,
				Reason:   fmt.Sprintf("value %v is below minimum %v", value, *spec.Minimum),
			}
		}
	}

	if len(spec.Enum) > 0 {
		match := false
		for _, candidate := range spec.Enum {
			if reflect.DeepEqual(config.Normalize(candidate), value) {
				match = true
				break
			}
		}
		if !match {
			return &ConfigurationError{
				Section:  section,
				Property: property,
				Reason:   fmt.Sprintf("value %v is not one of the permitted alternatives %v", value, spec.Enum),
			}
		}
	}

	return nil
}

func validateNested(section, property string, props map[string]any, specs map[string]registry.PropertySpec) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		nested := property + "." + key
		spec, known := specs[key]
		if !known {
			return &ConfigurationError{Section: section, Property: nested, Reason: "unknown property"}
		}
		if err := validateValue(section, nested, props[key], spec); err != nil {
			return err
		}
	}
	return nil
}

func typeMismatch(section, property string, want registry.PropertyType, got any) error {
	return &ConfigurationError{
		Section:  section,
		Property: property,
		Reason:   fmt.Sprintf("expected %s, got %T", want, got),
	}
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
