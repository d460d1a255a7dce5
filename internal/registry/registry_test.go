package registry

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	reg := New()
	desc := &Descriptor{Name: "Alpha", Role: RoleOptimizer}
	if err := reg.Register(desc); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	got, err := reg.Lookup(RoleOptimizer, "Alpha")
	if err != nil {
		t.Fatalf("failed to look up: %v", err)
	}
	if got != desc {
		t.Fatalf("lookup returned a different descriptor")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	reg := New()
	if err := reg.Register(&Descriptor{Name: "Alpha", Role: RoleOptimizer}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	err := reg.Register(&Descriptor{Name: "Alpha", Role: RoleOptimizer})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dup.Name != "Alpha" || dup.Role != RoleOptimizer {
		t.Fatalf("duplicate error names wrong component: %v", dup)
	}
}

func TestRegisterSameNameDifferentRoles(t *testing.T) {
	reg := New()
	if err := reg.Register(&Descriptor{Name: "Alpha", Role: RoleOptimizer}); err != nil {
		t.Fatalf("failed to register optimizer: %v", err)
	}
	if err := reg.Register(&Descriptor{Name: "Alpha", Role: RoleAlgorithm}); err != nil {
		t.Fatalf("same name under a different role must be permitted: %v", err)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	reg := New()
	err := reg.Register(&Descriptor{Name: "Alpha", Role: Role("pipeline")})
	var unknown *UnknownRoleError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRoleError, got %v", err)
	}
}

func TestLookupNotFound(t *testing.T) {
	reg := New()
	_, err := reg.Lookup(RoleOptimizer, "Missing")
	var notFound *ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ComponentNotFoundError, got %v", err)
	}
	if notFound.Unavailable {
		t.Fatalf("missing component must not be reported as unavailable")
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	reg := New()
	reg.MustRegister(&Descriptor{Name: "Alpha", Role: RoleOptimizer})
	if _, err := reg.Lookup(RoleOptimizer, "alpha"); err == nil {
		t.Fatalf("lookup must match names exactly")
	}
}

func TestUnavailableComponentIsInvisible(t *testing.T) {
	reg := New()
	reg.MustRegister(&Descriptor{Name: "Alpha", Role: RoleOptimizer})
	reg.MustRegister(&Descriptor{
		Name:      "Beta",
		Role:      RoleOptimizer,
		Available: func() bool { return false },
	})

	if got := reg.List(RoleOptimizer); !reflect.DeepEqual(got, []string{"Alpha"}) {
		t.Fatalf("expected listing [Alpha], got %v", got)
	}

	_, err := reg.Lookup(RoleOptimizer, "Beta")
	var notFound *ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ComponentNotFoundError, got %v", err)
	}
	if !notFound.Unavailable {
		t.Fatalf("expected the unavailable flag to be set")
	}
}

func TestListIsSorted(t *testing.T) {
	reg := New()
	for _, name := range []string{"Gamma", "Alpha", "Beta"} {
		reg.MustRegister(&Descriptor{Name: name, Role: RoleVariationalForm})
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	if got := reg.List(RoleVariationalForm); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSupportsProblem(t *testing.T) {
	desc := &Descriptor{Name: "Alpha", Role: RoleAlgorithm, Problems: []string{"energy", "ising"}}
	if !desc.SupportsProblem("ising") {
		t.Fatalf("expected ising to be supported")
	}
	if desc.SupportsProblem("classification") {
		t.Fatalf("expected classification to be unsupported")
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles() {
		if !role.Valid() {
			t.Fatalf("declared role %q must be valid", role)
		}
	}
	if Role("backend").Valid() {
		t.Fatalf("backend is a section, not a role")
	}
}
