package registry

import "fmt"

// DuplicateNameError indicates a second registration under an existing name.
type DuplicateNameError struct {
	Role Role
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("component %q already registered for role %q", e.Name, e.Role)
}

// ComponentNotFoundError indicates a named component does not exist for the
// requested role, or exists but is currently unavailable.
type ComponentNotFoundError struct {
	Role        Role
	Name        string
	Unavailable bool
}

func (e *ComponentNotFoundError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("component %q for role %q is not available in this deployment", e.Name, e.Role)
	}
	return fmt.Sprintf("component %q not found for role %q", e.Name, e.Role)
}

// UnknownRoleError indicates a role outside the closed role set.
type UnknownRoleError struct {
	Role Role
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Role)
}
