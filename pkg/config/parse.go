package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a RawConfiguration from YAML bytes. JSON input is accepted
// as well, JSON being a subset of YAML. This is used both for user-supplied
// configurations and for re-reading persisted resolved configurations.
func ParseYAML(data []byte) (RawConfiguration, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	raw := make(RawConfiguration, len(doc))
	for section, value := range doc {
		if value == nil {
			raw[section] = map[string]any{}
			continue
		}
		props, ok := Normalize(value).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section %q must be a mapping of properties", section)
		}
		raw[section] = props
	}
	return raw, nil
}

// ParseYAMLString parses a RawConfiguration from a YAML string.
func ParseYAMLString(text string) (RawConfiguration, error) {
	return ParseYAML([]byte(text))
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (RawConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	raw, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}
	return raw, nil
}

// Normalize rewrites a decoded value into the canonical in-memory form:
// integers become int64, floats float64, and nested containers are rewritten
// recursively. Both the YAML and JSON decoders produce values that normalize
// to the same representation, which is what makes resolution idempotent
// across a persist/parse round trip.
func Normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprintf("%v", key)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	case float64:
		// Whole-valued floats decode as integers on the next parse, so
		// canonicalize them eagerly.
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	default:
		return v
	}
}
