package optimize

import (
	"reflect"
	"testing"

	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

func TestRegisterBuiltIn(t *testing.T) {
	reg := registry.New()
	fac := factory.New(reg)
	if err := RegisterBuiltIn(reg, fac); err != nil {
		t.Fatalf("failed to register built-ins: %v", err)
	}

	want := []string{"COBYLA", "GradientDescent", "SPSA"}
	if mayflyAvailable() {
		want = []string{"COBYLA", "GradientDescent", "Mayfly", "SPSA"}
	}
	if got := reg.List(registry.RoleOptimizer); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected optimizers %v, got %v", want, got)
	}
}

func TestBuiltInOptimizersConstructFromDefaults(t *testing.T) {
	reg := registry.New()
	fac := factory.New(reg)
	if err := RegisterBuiltIn(reg, fac); err != nil {
		t.Fatalf("failed to register built-ins: %v", err)
	}

	for _, name := range reg.List(registry.RoleOptimizer) {
		section := map[string]any{"name": name}
		desc, err := reg.Lookup(registry.RoleOptimizer, name)
		if err != nil {
			t.Fatalf("failed to look up %s: %v", name, err)
		}
		for key, spec := range desc.Schema.Properties {
			section[key] = config.Normalize(spec.Default)
		}

		instance, err := fac.Construct(registry.RoleOptimizer, section, nil, nil)
		if err != nil {
			t.Fatalf("failed to construct %s: %v", name, err)
		}
		opt, ok := instance.(Optimizer)
		if !ok {
			t.Fatalf("%s constructed %T, not an Optimizer", name, instance)
		}
		if opt.Name() != name {
			t.Fatalf("constructed optimizer reports name %q, want %q", opt.Name(), name)
		}
	}
}
