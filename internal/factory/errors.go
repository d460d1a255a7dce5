package factory

import (
	"fmt"

	"github.com/quantafold/hybrid-core/internal/registry"
)

// InstantiationError indicates a variant's own construction logic failed. The
// underlying cause is preserved and reachable through errors.Unwrap.
type InstantiationError struct {
	Role registry.Role
	Name string
	Err  error
}

func (e *InstantiationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to construct %s component: %v", e.Role, e.Err)
	}
	return fmt.Sprintf("failed to construct %s component %q: %v", e.Role, e.Name, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}
