package registry

// Role tags a kind of interchangeable component. The set of roles is closed
// and known to the framework; variants within a role are open-ended.
type Role string

const (
	// RoleAlgorithm is the top-level computation selected by a configuration.
	RoleAlgorithm Role = "algorithm"
	// RoleOptimizer is a classical optimization routine driven by an algorithm.
	RoleOptimizer Role = "optimizer"
	// RoleVariationalForm is a parametrized ansatz consumed by an algorithm.
	RoleVariationalForm Role = "variational_form"
	// RoleInput is an adapter producing the external input artifact.
	RoleInput Role = "input"
)

// Roles returns all known roles in a stable order.
func Roles() []Role {
	return []Role{RoleAlgorithm, RoleOptimizer, RoleVariationalForm, RoleInput}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAlgorithm, RoleOptimizer, RoleVariationalForm, RoleInput:
		return true
	default:
		return false
	}
}
