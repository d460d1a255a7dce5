package registry

import (
	"sort"
	"sync"
)

// Descriptor catalogs one registered component variant: its identity, its
// configuration contract, the problem classes it can handle, and an optional
// availability predicate modeling external dependencies that may be missing
// in a given deployment.
type Descriptor struct {
	Name        string
	Role        Role
	Description string
	Schema      Schema
	// Problems lists the problem classes an algorithm supports. Empty for
	// roles where the notion does not apply.
	Problems []string
	// Available, when non-nil, gates visibility of the variant. Unavailable
	// variants are invisible to listing and lookup, not construction-time
	// failures.
	Available func() bool
}

// SupportsProblem reports whether the descriptor declares the problem class.
func (d *Descriptor) SupportsProblem(name string) bool {
	for _, p := range d.Problems {
		if p == name {
			return true
		}
	}
	return false
}

func (d *Descriptor) available() bool {
	return d.Available == nil || d.Available()
}

// Registry is the catalog of component variants per role. Registration is
// deliberate and happens during process initialization; there is no runtime
// discovery.
type Registry struct {
	mu     sync.RWMutex
	byRole map[Role]map[string]*Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byRole: make(map[Role]map[string]*Descriptor)}
}

// Register adds a descriptor to the catalog. Name uniqueness within a role is
// an invariant; a second registration under the same name fails.
func (r *Registry) Register(d *Descriptor) error {
	if !d.Role.Valid() {
		return &UnknownRoleError{Role: d.Role}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	variants := r.byRole[d.Role]
	if variants == nil {
		variants = make(map[string]*Descriptor)
		r.byRole[d.Role] = variants
	}
	if _, exists := variants[d.Name]; exists {
		return &DuplicateNameError{Role: d.Role, Name: d.Name}
	}
	variants[d.Name] = d
	return nil
}

// MustRegister registers a descriptor and panics on failure. Intended for
// built-in registrations executed during initialization, where a duplicate
// name is a programming error.
func (r *Registry) MustRegister(d *Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under the role and name. Names are
// matched exactly, case-sensitively. A variant whose availability predicate
// currently evaluates false is reported as not found.
func (r *Registry) Lookup(role Role, name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byRole[role][name]
	if !ok {
		return nil, &ComponentNotFoundError{Role: role, Name: name}
	}
	if !d.available() {
		return nil, &ComponentNotFoundError{Role: role, Name: name, Unavailable: true}
	}
	return d, nil
}

// List returns the sorted names of the currently available variants of a role.
func (r *Registry) List(role Role) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byRole[role]))
	for name, d := range r.byRole[role] {
		if d.available() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
