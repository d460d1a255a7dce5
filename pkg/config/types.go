package config

// RawConfiguration maps section names to their property maps, as supplied by
// the caller. Sections and properties may be omitted entirely; resolution
// fills the gaps from declared defaults.
type RawConfiguration map[string]map[string]any

// ResolvedConfiguration is a RawConfiguration after default merging,
// dependency synthesis and validation. A ResolvedConfiguration never fails
// instantiation due to missing or invalid properties.
type ResolvedConfiguration map[string]map[string]any

// Clone returns a deep, normalized copy of the configuration.
func (rc RawConfiguration) Clone() RawConfiguration {
	out := make(RawConfiguration, len(rc))
	for section, props := range rc {
		cloned := make(map[string]any, len(props))
		for key, value := range props {
			cloned[key] = Normalize(value)
		}
		out[section] = cloned
	}
	return out
}

// Section returns the named section's properties, or nil if absent.
func (rc ResolvedConfiguration) Section(name string) Properties {
	return Properties(rc[name])
}
