package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/quantafold/hybrid-core/internal/algorithm"
	"github.com/quantafold/hybrid-core/internal/backend"
	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/internal/resolve"
	"github.com/quantafold/hybrid-core/pkg/config"
)

// Execution is the outcome of one driver run.
type Execution struct {
	Algorithm string
	Resolved  config.ResolvedConfiguration
	Result    algorithm.Result
	Elapsed   time.Duration
}

// Resolve resolves a raw configuration without executing it.
func (d *Driver) Resolve(raw config.RawConfiguration) (config.ResolvedConfiguration, error) {
	return d.resolver.Resolve(raw)
}

// Run executes the algorithm named by the configuration. When artifact is
// nil and the configuration carries an input section, the input artifact is
// constructed through that adapter. With portable set, result values outside
// the interchange format are rewritten into their portable form.
func (d *Driver) Run(ctx context.Context, raw config.RawConfiguration, artifact any, portable bool) (*Execution, error) {
	resolved, err := d.resolver.Resolve(raw)
	if err != nil {
		return nil, err
	}

	algoName := resolved.Section(string(registry.RoleAlgorithm)).String("name")
	d.log.Debug("configuration resolved", "algorithm", algoName)

	if artifact == nil {
		if section, ok := resolved[string(registry.RoleInput)]; ok {
			artifact, err = d.fac.Construct(registry.RoleInput, section, nil, nil)
			if err != nil {
				return nil, err
			}
		}
	}

	instance, err := d.fac.ConstructTree(registry.RoleAlgorithm, resolved, artifact)
	if err != nil {
		return nil, err
	}
	alg, ok := instance.(algorithm.Algorithm)
	if !ok {
		return nil, fmt.Errorf("algorithm %q constructed unexpected type %T", algoName, instance)
	}

	problem := resolved.Section(resolve.SectionProblem)
	if problem.Has("random_seed") {
		if seeded, ok := alg.(algorithm.SeedSetter); ok {
			seeded.SetSeed(problem.Int64("random_seed"))
		}
	}

	if section, ok := resolved[resolve.SectionBackend]; ok {
		opts := backend.OptionsFromSection(config.Properties(section))
		ev, err := backend.New(opts)
		if err != nil {
			return nil, err
		}
		if consumer, ok := alg.(algorithm.BackendConsumer); ok {
			if err := consumer.SetupBackend(ev, opts); err != nil {
				return nil, err
			}
		} else {
			d.log.Debug("algorithm does not consume a backend", "algorithm", algoName)
		}
	}

	d.log.Info("running algorithm", "algorithm", algoName)
	start := time.Now()
	result, err := alg.Run(ctx)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	d.log.Info("algorithm finished", "algorithm", algoName, "elapsed", elapsed)

	if portable {
		result = ToPortable(result)
	}
	return &Execution{
		Algorithm: algoName,
		Resolved:  resolved,
		Result:    result,
		Elapsed:   elapsed,
	}, nil
}

// DumpToFile resolves the configuration and persists it instead of executing.
// The persisted file is self-contained: if an input artifact was supplied
// directly, its property form is merged in under the input section with its
// component name attached, enabling later replay without re-supplying the
// artifact.
func (d *Driver) DumpToFile(raw config.RawConfiguration, artifact any, path string) (config.ResolvedConfiguration, error) {
	resolved, err := d.resolver.Resolve(raw)
	if err != nil {
		return nil, err
	}

	if artifact != nil {
		in, ok := artifact.(*input.EnergyInput)
		if !ok {
			return nil, fmt.Errorf("unexpected input artifact %T", artifact)
		}
		props, err := in.ToProperties()
		if err != nil {
			return nil, err
		}
		props["name"] = in.Name()
		resolved[string(registry.RoleInput)] = props
	}

	if err := config.WriteResolved(path, resolved); err != nil {
		return nil, err
	}
	d.log.Info("resolved configuration saved", "path", path)
	return resolved, nil
}
