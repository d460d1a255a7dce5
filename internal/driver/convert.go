package driver

import (
	"github.com/quantafold/hybrid-core/internal/algorithm"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// complexTag marks a complex number rewritten into its portable nested form.
const complexTag = "complex"

// ToPortable rewrites result values that are not representable in the
// interchange format (complex numbers, typed numeric arrays) into a nested
// portable form. The original result is not modified.
func ToPortable(result algorithm.Result) algorithm.Result {
	out := make(algorithm.Result, len(result))
	for key, value := range result {
		out[key] = toPortableValue(value)
	}
	return out
}

// FromPortable reverses ToPortable, rebuilding complex values from their
// tagged nested form.
func FromPortable(result algorithm.Result) algorithm.Result {
	out := make(algorithm.Result, len(result))
	for key, value := range result {
		out[key] = fromPortableValue(value)
	}
	return out
}

func toPortableValue(value any) any {
	switch v := value.(type) {
	case complex64:
		return portableComplex(complex128(v))
	case complex128:
		return portableComplex(v)
	case []complex128:
		items := make([]any, len(v))
		for i, c := range v {
			items[i] = portableComplex(c)
		}
		return items
	case []float64:
		items := make([]any, len(v))
		for i, f := range v {
			items[i] = f
		}
		return items
	case [][]float64:
		items := make([]any, len(v))
		for i, row := range v {
			items[i] = toPortableValue(row)
		}
		return items
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = toPortableValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toPortableValue(item)
		}
		return out
	default:
		return v
	}
}

func fromPortableValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if v["__type__"] == complexTag {
			return complex(portableNumber(v["real"]), portableNumber(v["imag"]))
		}
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = fromPortableValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = fromPortableValue(item)
		}
		return out
	default:
		return v
	}
}

func portableComplex(c complex128) map[string]any {
	return map[string]any{
		"__type__": complexTag,
		"real":     real(c),
		"imag":     imag(c),
	}
}

func portableNumber(value any) float64 {
	switch v := config.Normalize(value).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}
