package factory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

type fakeOptimizer struct {
	lr float64
}

type fakeAlgorithm struct {
	optimizer *fakeOptimizer
	artifact  any
}

func buildCatalog(t *testing.T) (*registry.Registry, *Factory) {
	t.Helper()
	reg := registry.New()
	fac := New(reg)

	reg.MustRegister(&registry.Descriptor{
		Name: "Opt",
		Role: registry.RoleOptimizer,
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"lr": {Type: registry.TypeNumber, Default: 0.1},
			},
		},
	})
	if err := fac.RegisterBuilder(registry.RoleOptimizer, "Opt", func(ctx BuildContext) (any, error) {
		return &fakeOptimizer{lr: ctx.Section.Float("lr")}, nil
	}); err != nil {
		t.Fatalf("failed to register builder: %v", err)
	}

	reg.MustRegister(&registry.Descriptor{
		Name: "Alpha",
		Role: registry.RoleAlgorithm,
		Schema: registry.Schema{
			Dependencies: []registry.Dependency{
				{Role: registry.RoleOptimizer, DefaultName: "Opt"},
			},
			RequiresInput: true,
		},
	})
	if err := fac.RegisterBuilder(registry.RoleAlgorithm, "Alpha", func(ctx BuildContext) (any, error) {
		opt, _ := ctx.Dependency(registry.RoleOptimizer).(*fakeOptimizer)
		if opt == nil {
			return nil, fmt.Errorf("optimizer dependency is missing")
		}
		return &fakeAlgorithm{optimizer: opt, artifact: ctx.Input}, nil
	}); err != nil {
		t.Fatalf("failed to register builder: %v", err)
	}

	return reg, fac
}

func TestConstructTreeBuildsDependenciesFirst(t *testing.T) {
	_, fac := buildCatalog(t)
	resolved := config.ResolvedConfiguration{
		"algorithm": {"name": "Alpha"},
		"optimizer": {"name": "Opt", "lr": 0.5},
	}

	artifact := "input-artifact"
	instance, err := fac.ConstructTree(registry.RoleAlgorithm, resolved, artifact)
	if err != nil {
		t.Fatalf("failed to construct tree: %v", err)
	}
	alg, ok := instance.(*fakeAlgorithm)
	if !ok {
		t.Fatalf("expected fakeAlgorithm, got %T", instance)
	}
	if alg.optimizer == nil || alg.optimizer.lr != 0.5 {
		t.Fatalf("dependency not constructed from its section: %+v", alg.optimizer)
	}
	if alg.artifact != artifact {
		t.Fatalf("input artifact not forwarded to the top-level builder")
	}
}

func TestConstructWithholdsInputUnlessRequired(t *testing.T) {
	reg, fac := buildCatalog(t)

	reg.MustRegister(&registry.Descriptor{
		Name:   "NoInput",
		Role:   registry.RoleAlgorithm,
		Schema: registry.Schema{},
	})
	var seen any = "sentinel"
	if err := fac.RegisterBuilder(registry.RoleAlgorithm, "NoInput", func(ctx BuildContext) (any, error) {
		seen = ctx.Input
		return struct{}{}, nil
	}); err != nil {
		t.Fatalf("failed to register builder: %v", err)
	}

	_, err := fac.Construct(registry.RoleAlgorithm, map[string]any{"name": "NoInput"}, nil, "artifact")
	if err != nil {
		t.Fatalf("failed to construct: %v", err)
	}
	if seen != nil {
		t.Fatalf("input leaked to a builder that does not require it: %v", seen)
	}
}

func TestConstructWrapsBuilderFailure(t *testing.T) {
	reg, fac := buildCatalog(t)

	cause := fmt.Errorf("bad wiring")
	reg.MustRegister(&registry.Descriptor{Name: "Faulty", Role: registry.RoleOptimizer})
	if err := fac.RegisterBuilder(registry.RoleOptimizer, "Faulty", func(ctx BuildContext) (any, error) {
		return nil, cause
	}); err != nil {
		t.Fatalf("failed to register builder: %v", err)
	}

	_, err := fac.Construct(registry.RoleOptimizer, map[string]any{"name": "Faulty"}, nil, nil)
	var instErr *InstantiationError
	if !errors.As(err, &instErr) {
		t.Fatalf("expected InstantiationError, got %v", err)
	}
	if instErr.Name != "Faulty" || instErr.Role != registry.RoleOptimizer {
		t.Fatalf("instantiation error names wrong component: %v", instErr)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("underlying cause lost: %v", err)
	}
}

func TestConstructUnknownComponent(t *testing.T) {
	_, fac := buildCatalog(t)
	_, err := fac.Construct(registry.RoleOptimizer, map[string]any{"name": "Nope"}, nil, nil)
	var notFound *registry.ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ComponentNotFoundError, got %v", err)
	}
}

func TestConstructWithoutBuilder(t *testing.T) {
	reg, fac := buildCatalog(t)
	reg.MustRegister(&registry.Descriptor{Name: "Orphan", Role: registry.RoleOptimizer})

	_, err := fac.Construct(registry.RoleOptimizer, map[string]any{"name": "Orphan"}, nil, nil)
	var instErr *InstantiationError
	if !errors.As(err, &instErr) {
		t.Fatalf("expected InstantiationError, got %v", err)
	}
}

func TestRegisterBuilderDuplicate(t *testing.T) {
	_, fac := buildCatalog(t)
	err := fac.RegisterBuilder(registry.RoleOptimizer, "Opt", func(ctx BuildContext) (any, error) {
		return nil, nil
	})
	var dup *registry.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
}

func TestConstructTreeMissingSection(t *testing.T) {
	_, fac := buildCatalog(t)
	resolved := config.ResolvedConfiguration{
		"algorithm": {"name": "Alpha"},
	}
	_, err := fac.ConstructTree(registry.RoleAlgorithm, resolved, nil)
	if err == nil {
		t.Fatalf("expected failure for missing dependency section")
	}
}
