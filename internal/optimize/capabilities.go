package optimize

import "fmt"

// SupportLevel declares how an optimizer variant treats a problem capability.
type SupportLevel int

const (
	// SupportIgnored: the capability is never passed to the variant's numeric
	// routine, even when the problem carries it.
	SupportIgnored SupportLevel = iota
	// SupportSupported: the capability is used when present.
	SupportSupported
	// SupportRequired: the capability must be present in the problem.
	SupportRequired
)

func (l SupportLevel) String() string {
	switch l {
	case SupportIgnored:
		return "ignored"
	case SupportSupported:
		return "supported"
	case SupportRequired:
		return "required"
	default:
		return fmt.Sprintf("SupportLevel(%d)", int(l))
	}
}

// Capabilities declares a variant's support level per problem capability.
type Capabilities struct {
	Gradient     SupportLevel
	Bounds       SupportLevel
	InitialPoint SupportLevel
}

// CapabilityError indicates a problem's shape does not satisfy an optimizer
// variant's declared required capability. It is raised before any objective
// evaluation is performed.
type CapabilityError struct {
	Optimizer  string
	Capability string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("optimizer %q requires %s, but the problem provides none", e.Optimizer, e.Capability)
}

// prepare validates the problem against the variant's declared support levels
// and returns a copy with ignored capabilities stripped, so the numeric
// routine never sees them.
func prepare(o Optimizer, p *Problem) (*Problem, error) {
	if err := validateProblem(p); err != nil {
		return nil, err
	}
	caps := o.Capabilities()

	if caps.Gradient == SupportRequired && p.Gradient == nil {
		return nil, &CapabilityError{Optimizer: o.Name(), Capability: "gradient"}
	}
	if caps.Bounds == SupportRequired && len(p.Bounds) == 0 {
		return nil, &CapabilityError{Optimizer: o.Name(), Capability: "bounds"}
	}
	if caps.InitialPoint == SupportRequired && len(p.InitialPoint) == 0 {
		return nil, &CapabilityError{Optimizer: o.Name(), Capability: "initial_point"}
	}

	stripped := *p
	if caps.Gradient == SupportIgnored {
		stripped.Gradient = nil
	}
	if caps.Bounds == SupportIgnored {
		stripped.Bounds = nil
	}
	if caps.InitialPoint == SupportIgnored {
		stripped.InitialPoint = nil
	}
	return &stripped, nil
}
