package resolve

import (
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// Resolver turns a raw configuration into a resolved one: component names are
// determined, missing dependent sections are synthesized from declared
// defaults, schema defaults are merged in, and every section is validated.
// Resolution is a fixed point; resolving an already-resolved configuration is
// a no-op.
type Resolver struct {
	reg *registry.Registry
}

// New creates a resolver over the given registry.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve produces the resolved configuration or the first validation failure.
func (r *Resolver) Resolve(raw config.RawConfiguration) (config.ResolvedConfiguration, error) {
	resolved := config.ResolvedConfiguration(raw.Clone())

	for section := range resolved {
		if !isSpecialSection(section) && !registry.Role(section).Valid() {
			return nil, &ConfigurationError{Section: section, Reason: "unknown section"}
		}
	}

	algoSection, ok := resolved[string(registry.RoleAlgorithm)]
	if !ok {
		return nil, &ConfigurationError{Section: string(registry.RoleAlgorithm), Reason: "missing algorithm section"}
	}
	algoName, err := sectionName(string(registry.RoleAlgorithm), algoSection)
	if err != nil {
		return nil, err
	}
	algoDesc, err := r.reg.Lookup(registry.RoleAlgorithm, algoName)
	if err != nil {
		return nil, err
	}

	visiting := map[registry.Role]bool{registry.RoleAlgorithm: true}
	chain := []registry.Role{registry.RoleAlgorithm}
	if err := r.resolveDependencies(resolved, algoDesc, visiting, chain); err != nil {
		return nil, err
	}

	for _, role := range registry.Roles() {
		section, ok := resolved[string(role)]
		if !ok {
			continue
		}
		name, err := sectionName(string(role), section)
		if err != nil {
			return nil, err
		}
		desc, err := r.reg.Lookup(role, name)
		if err != nil {
			return nil, err
		}
		mergeDefaults(section, desc.Schema.Properties)
		if err := validateSection(string(role), section, desc.Schema.Properties); err != nil {
			return nil, err
		}
	}

	if err := r.resolveProblem(resolved, algoDesc); err != nil {
		return nil, err
	}
	if section, ok := resolved[SectionBackend]; ok {
		mergeDefaults(section, backendSchema.Properties)
		if err := validateSection(SectionBackend, section, backendSchema.Properties); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

// resolveDependencies walks the declared dependencies of a descriptor,
// synthesizing absent sections from declared defaults. Defaults may declare
// further defaults, so the walk recurses; cycles across roles are rejected.
func (r *Resolver) resolveDependencies(resolved config.ResolvedConfiguration, desc *registry.Descriptor, visiting map[registry.Role]bool, chain []registry.Role) error {
	for _, dep := range desc.Schema.Dependencies {
		if visiting[dep.Role] {
			return &DependencyCycleError{Chain: append(append([]registry.Role{}, chain...), dep.Role)}
		}

		section, ok := resolved[string(dep.Role)]
		if !ok {
			section = map[string]any{}
			resolved[string(dep.Role)] = section
		}
		name := ""
		if value, present := section["name"]; present {
			s, isString := value.(string)
			if !isString {
				return &ConfigurationError{
					Section:  string(dep.Role),
					Property: "name",
					Reason:   "component name must be a non-empty string",
				}
			}
			name = s
		}
		synthesized := false
		if name == "" {
			name = dep.DefaultName
			section["name"] = name
			synthesized = true
		}

		depDesc, err := r.reg.Lookup(dep.Role, name)
		if err != nil {
			if synthesized {
				return &DependencyResolutionError{Role: dep.Role, Name: name, Err: err}
			}
			return err
		}

		visiting[dep.Role] = true
		if err := r.resolveDependencies(resolved, depDesc, visiting, append(chain, dep.Role)); err != nil {
			return err
		}
		delete(visiting, dep.Role)
	}
	return nil
}

// resolveProblem merges and validates the cross-cutting problem section. When
// the section or its name is absent, the algorithm's first declared problem
// class is used.
func (r *Resolver) resolveProblem(resolved config.ResolvedConfiguration, algoDesc *registry.Descriptor) error {
	section, ok := resolved[SectionProblem]
	if !ok {
		section = map[string]any{}
		resolved[SectionProblem] = section
	}
	if _, ok := section["name"]; !ok {
		if len(algoDesc.Problems) > 0 {
			section["name"] = algoDesc.Problems[0]
		} else {
			section["name"] = "energy"
		}
	}
	mergeDefaults(section, problemSchema.Properties)
	if err := validateSection(SectionProblem, section, problemSchema.Properties); err != nil {
		return err
	}

	name, _ := section["name"].(string)
	if len(algoDesc.Problems) > 0 && !algoDesc.SupportsProblem(name) {
		return &ConfigurationError{
			Section:  SectionProblem,
			Property: "name",
			Reason:   "problem class " + name + " is not supported by algorithm " + algoDesc.Name,
		}
	}
	return nil
}

func sectionName(section string, props map[string]any) (string, error) {
	value, ok := props["name"]
	if !ok {
		return "", &ConfigurationError{Section: section, Property: "name", Reason: "missing component name"}
	}
	name, ok := value.(string)
	if !ok || name == "" {
		return "", &ConfigurationError{Section: section, Property: "name", Reason: "component name must be a non-empty string"}
	}
	return name, nil
}
