package config

// Properties is a view over a section's property map with typed accessors.
// Accessors assume the section has already been validated against its schema;
// they return zero values for absent or null properties.
type Properties map[string]any

// Has reports whether the property is present and non-null.
func (p Properties) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the named string property.
func (p Properties) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Bool returns the named boolean property.
func (p Properties) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Int returns the named integer property.
func (p Properties) Int(key string) int {
	switch v := p[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Int64 returns the named integer property as int64.
func (p Properties) Int64(key string) int64 {
	switch v := p[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Float returns the named numeric property. Whole-valued numbers are stored
// as integers in canonical form, so both representations are accepted.
func (p Properties) Float(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Floats returns the named array property as a float64 slice, or nil if the
// property is absent or null.
func (p Properties) Floats(key string) []float64 {
	items, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, v)
		case int64:
			out = append(out, float64(v))
		}
	}
	return out
}
