package resolve

import (
	"fmt"
	"strings"

	"github.com/quantafold/hybrid-core/internal/registry"
)

// ConfigurationError is the user-facing failure for all configuration and
// validation problems: a missing required name, an unknown property, or a
// schema-constraint violation. It is raised eagerly during resolution, before
// any construction occurs.
type ConfigurationError struct {
	Section  string
	Property string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("invalid configuration: section %q: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: section %q: property %q: %s", e.Section, e.Property, e.Reason)
}

// DependencyCycleError indicates a circular default-dependency chain.
type DependencyCycleError struct {
	Chain []registry.Role
}

func (e *DependencyCycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, role := range e.Chain {
		parts[i] = string(role)
	}
	return fmt.Sprintf("circular component dependency: %s", strings.Join(parts, " -> "))
}

// DependencyResolutionError indicates a declared default dependency that
// cannot be satisfied from the registry.
type DependencyResolutionError struct {
	Role registry.Role
	Name string
	Err  error
}

func (e *DependencyResolutionError) Error() string {
	return fmt.Sprintf("cannot satisfy default dependency %q for role %q: %v", e.Name, e.Role, e.Err)
}

func (e *DependencyResolutionError) Unwrap() error {
	return e.Err
}
