package resolve

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// testRegistry builds a small catalog: an algorithm with a defaulted
// optimizer dependency, two optimizer variants, and a handful of broken
// variants used by the failure cases.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()

	reg.MustRegister(&registry.Descriptor{
		Name: "Alpha",
		Role: registry.RoleAlgorithm,
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"iterations": {Type: registry.TypeInteger, Default: 100, Minimum: registry.Min(1)},
				"mode": {
					Type:    registry.TypeString,
					Default: "fast",
					Enum:    []any{"fast", "slow"},
				},
				"initial_point": {Type: registry.TypeArray, Nullable: true, Default: nil},
				"settings": {
					Type: registry.TypeObject,
					Properties: map[string]registry.PropertySpec{
						"threshold": {Type: registry.TypeNumber, Default: 0.5},
						"verbose":   {Type: registry.TypeBoolean, Default: false},
					},
				},
			},
			Dependencies: []registry.Dependency{
				{Role: registry.RoleOptimizer, DefaultName: "Opt"},
			},
		},
		Problems: []string{"energy", "ising"},
	})

	reg.MustRegister(&registry.Descriptor{
		Name: "Opt",
		Role: registry.RoleOptimizer,
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"lr": {Type: registry.TypeNumber, Default: 0.1},
			},
		},
	})
	reg.MustRegister(&registry.Descriptor{
		Name: "Other",
		Role: registry.RoleOptimizer,
		Schema: registry.Schema{
			Properties: map[string]registry.PropertySpec{
				"steps": {Type: registry.TypeInteger, Default: 10},
			},
		},
	})

	// Broken declares a default dependency nobody registered.
	reg.MustRegister(&registry.Descriptor{
		Name: "Broken",
		Role: registry.RoleAlgorithm,
		Schema: registry.Schema{
			Dependencies: []registry.Dependency{
				{Role: registry.RoleOptimizer, DefaultName: "Missing"},
			},
		},
	})

	// Loop depends back on the algorithm role.
	reg.MustRegister(&registry.Descriptor{
		Name: "Looper",
		Role: registry.RoleAlgorithm,
		Schema: registry.Schema{
			Dependencies: []registry.Dependency{
				{Role: registry.RoleOptimizer, DefaultName: "LoopOpt"},
			},
		},
	})
	reg.MustRegister(&registry.Descriptor{
		Name: "LoopOpt",
		Role: registry.RoleOptimizer,
		Schema: registry.Schema{
			Dependencies: []registry.Dependency{
				{Role: registry.RoleAlgorithm, DefaultName: "Looper"},
			},
		},
	})

	return reg
}

func TestResolveFillsDefaultsAndDependencies(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha"},
	}

	resolved, err := r.Resolve(raw)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}

	algo := resolved.Section("algorithm")
	if got := algo.Int("iterations"); got != 100 {
		t.Fatalf("expected defaulted iterations 100, got %d", got)
	}
	if got := algo.String("mode"); got != "fast" {
		t.Fatalf("expected defaulted mode fast, got %q", got)
	}
	settings, ok := algo["settings"].(map[string]any)
	if !ok {
		t.Fatalf("expected object default for settings, got %T", algo["settings"])
	}
	if settings["threshold"] != 0.5 || settings["verbose"] != false {
		t.Fatalf("unexpected settings defaults: %v", settings)
	}

	opt := resolved.Section("optimizer")
	if got := opt.String("name"); got != "Opt" {
		t.Fatalf("expected synthesized optimizer Opt, got %q", got)
	}
	if got := opt.Float("lr"); got != 0.1 {
		t.Fatalf("expected defaulted lr 0.1, got %v", got)
	}

	problem := resolved.Section(SectionProblem)
	if got := problem.String("name"); got != "energy" {
		t.Fatalf("expected problem name defaulted to energy, got %q", got)
	}
	if problem.Has("random_seed") {
		t.Fatalf("expected random_seed to default to null")
	}
}

func TestResolveEmptyDependencyNameSynthesizesDefault(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha"},
		"optimizer": {"name": ""},
	}

	resolved, err := r.Resolve(raw)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if got := resolved.Section("optimizer").String("name"); got != "Opt" {
		t.Fatalf("expected an empty name to take the declared default, got %q", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha", "iterations": 50},
		"backend":   {"shots": 2048},
	}

	first, err := r.Resolve(raw)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	second, err := r.Resolve(config.RawConfiguration(first))
	if err != nil {
		t.Fatalf("failed to re-resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolution is not a fixed point:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestResolvePreservesUserValues(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha", "mode": "slow"},
		"optimizer": {"name": "Other"},
	}

	resolved, err := r.Resolve(raw)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if got := resolved.Section("algorithm").String("mode"); got != "slow" {
		t.Fatalf("user value overwritten: mode = %q", got)
	}
	opt := resolved.Section("optimizer")
	if got := opt.String("name"); got != "Other" {
		t.Fatalf("explicit optimizer choice overwritten: %q", got)
	}
	if got := opt.Int("steps"); got != 10 {
		t.Fatalf("expected Other's own defaults, got steps %d", got)
	}
	if opt.Has("lr") {
		t.Fatalf("defaults from the unselected variant leaked in")
	}
}

func TestResolveMergesPartialNestedObject(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {
			"name":     "Alpha",
			"settings": map[string]any{"verbose": true},
		},
	}

	resolved, err := r.Resolve(raw)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	settings := resolved.Section("algorithm")["settings"].(map[string]any)
	if settings["verbose"] != true {
		t.Fatalf("user nested value overwritten: %v", settings)
	}
	if settings["threshold"] != 0.5 {
		t.Fatalf("nested default not merged: %v", settings)
	}
}

func TestResolveFailures(t *testing.T) {
	r := New(testRegistry(t))

	tests := []struct {
		name     string
		raw      config.RawConfiguration
		section  string
		property string
	}{
		{
			name:    "unknown section",
			raw:     config.RawConfiguration{"algorithm": {"name": "Alpha"}, "pipeline": {}},
			section: "pipeline",
		},
		{
			name:    "missing algorithm section",
			raw:     config.RawConfiguration{"optimizer": {"name": "Opt"}},
			section: "algorithm",
		},
		{
			name:     "missing algorithm name",
			raw:      config.RawConfiguration{"algorithm": {}},
			section:  "algorithm",
			property: "name",
		},
		{
			name:     "non-string algorithm name",
			raw:      config.RawConfiguration{"algorithm": {"name": 5}},
			section:  "algorithm",
			property: "name",
		},
		{
			name:     "non-string dependency name",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "optimizer": {"name": 5}},
			section:  "optimizer",
			property: "name",
		},
		{
			name:     "null dependency name",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "optimizer": {"name": nil}},
			section:  "optimizer",
			property: "name",
		},
		{
			name:     "non-string backend name",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "backend": {"name": 5}},
			section:  "backend",
			property: "name",
		},
		{
			name:     "non-string problem name",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "problem": {"name": 5}},
			section:  SectionProblem,
			property: "name",
		},
		{
			name:     "unknown property",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha", "warp": 9}},
			section:  "algorithm",
			property: "warp",
		},
		{
			name:     "type mismatch",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha", "iterations": "many"}},
			section:  "algorithm",
			property: "iterations",
		},
		{
			name:     "below minimum",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha", "iterations": 0}},
			section:  "algorithm",
			property: "iterations",
		},
		{
			name:     "outside enum",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha", "mode": "medium"}},
			section:  "algorithm",
			property: "mode",
		},
		{
			name:     "null where not permitted",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha", "iterations": nil}},
			section:  "algorithm",
			property: "iterations",
		},
		{
			name:     "unknown nested property",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha", "settings": map[string]any{"color": "red"}}},
			section:  "algorithm",
			property: "settings.color",
		},
		{
			name:     "unknown backend option",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "backend": {"qubits": 5}},
			section:  "backend",
			property: "qubits",
		},
		{
			name:     "backend shots below minimum",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "backend": {"shots": 0}},
			section:  "backend",
			property: "shots",
		},
		{
			name:     "unsupported problem class",
			raw:      config.RawConfiguration{"algorithm": {"name": "Alpha"}, "problem": {"name": "classification"}},
			section:  SectionProblem,
			property: "name",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(tc.raw)
			var confErr *ConfigurationError
			if !errors.As(err, &confErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if confErr.Section != tc.section {
				t.Fatalf("expected section %q, got %q (%v)", tc.section, confErr.Section, confErr)
			}
			if confErr.Property != tc.property {
				t.Fatalf("expected property %q, got %q (%v)", tc.property, confErr.Property, confErr)
			}
		})
	}
}

func TestResolveUnknownAlgorithmName(t *testing.T) {
	r := New(testRegistry(t))
	_, err := r.Resolve(config.RawConfiguration{"algorithm": {"name": "Nope"}})
	var notFound *registry.ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ComponentNotFoundError, got %v", err)
	}
}

func TestResolveDefaultDependencyUnsatisfiable(t *testing.T) {
	r := New(testRegistry(t))
	_, err := r.Resolve(config.RawConfiguration{"algorithm": {"name": "Broken"}})
	var depErr *DependencyResolutionError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DependencyResolutionError, got %v", err)
	}
	if depErr.Role != registry.RoleOptimizer || depErr.Name != "Missing" {
		t.Fatalf("dependency error names wrong component: %v", depErr)
	}
	var notFound *registry.ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected wrapped ComponentNotFoundError, got %v", err)
	}
}

func TestResolveExplicitBadDependencyName(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha"},
		"optimizer": {"name": "Nope"},
	}
	_, err := r.Resolve(raw)
	var depErr *DependencyResolutionError
	if errors.As(err, &depErr) {
		t.Fatalf("a user-chosen bad name is not a default-dependency failure: %v", err)
	}
	var notFound *registry.ComponentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ComponentNotFoundError, got %v", err)
	}
}

func TestResolveDependencyCycle(t *testing.T) {
	r := New(testRegistry(t))
	_, err := r.Resolve(config.RawConfiguration{"algorithm": {"name": "Looper"}})
	var cycle *DependencyCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected DependencyCycleError, got %v", err)
	}
	if len(cycle.Chain) == 0 || cycle.Chain[0] != registry.RoleAlgorithm {
		t.Fatalf("unexpected cycle chain: %v", cycle.Chain)
	}
}

func TestResolveBackendDefaults(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha"},
		"backend":   {},
	}

	resolved, err := r.Resolve(raw)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	backend := resolved.Section(SectionBackend)
	if got := backend.String("name"); got != "local_sampler" {
		t.Fatalf("expected default backend local_sampler, got %q", got)
	}
	if got := backend.Int("shots"); got != 1024 {
		t.Fatalf("expected default shots 1024, got %d", got)
	}
	if backend.Bool("noise") {
		t.Fatalf("expected noise to default off")
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	r := New(testRegistry(t))
	raw := config.RawConfiguration{
		"algorithm": {"name": "Alpha"},
	}

	if _, err := r.Resolve(raw); err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}
	if len(raw["algorithm"]) != 1 {
		t.Fatalf("resolution mutated the raw configuration: %v", raw)
	}
	if _, ok := raw["optimizer"]; ok {
		t.Fatalf("resolution synthesized sections into the raw configuration")
	}
}
