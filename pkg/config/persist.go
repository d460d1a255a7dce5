package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalResolved serializes a resolved configuration to its persisted text
// form: JSON with sorted keys and stable four-space indentation, suitable for
// byte-identical replay.
func MarshalResolved(resolved ResolvedConfiguration) ([]byte, error) {
	data, err := json.MarshalIndent(resolved, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize resolved configuration: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteResolved persists a resolved configuration to a file.
func WriteResolved(path string, resolved ResolvedConfiguration) error {
	data, err := MarshalResolved(resolved)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write resolved configuration %s: %w", path, err)
	}
	return nil
}

// ParseResolved re-reads a persisted resolved configuration.
func ParseResolved(data []byte) (ResolvedConfiguration, error) {
	raw, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return ResolvedConfiguration(raw), nil
}
