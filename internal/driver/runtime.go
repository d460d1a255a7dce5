package driver

import (
	"log/slog"

	"github.com/quantafold/hybrid-core/internal/algorithm"
	"github.com/quantafold/hybrid-core/internal/factory"
	"github.com/quantafold/hybrid-core/internal/input"
	"github.com/quantafold/hybrid-core/internal/optimize"
	"github.com/quantafold/hybrid-core/internal/registry"
	"github.com/quantafold/hybrid-core/internal/resolve"
	"github.com/quantafold/hybrid-core/internal/varform"
	"github.com/quantafold/hybrid-core/pkg/logger"
)

// Driver orchestrates a full execution: resolve the configuration, construct
// the component graph, inject the backend, run, and convert the result.
type Driver struct {
	reg      *registry.Registry
	fac      *factory.Factory
	resolver *resolve.Resolver
	log      *slog.Logger
}

// New creates a driver over an existing registry and factory.
func New(reg *registry.Registry, fac *factory.Factory, log *slog.Logger) *Driver {
	if log == nil {
		log = logger.Default
	}
	return &Driver{
		reg:      reg,
		fac:      fac,
		resolver: resolve.New(reg),
		log:      log,
	}
}

// NewRuntime creates a driver with every built-in component variant
// registered. Registration is deliberate and happens here, once, during
// initialization; there is no runtime discovery.
func NewRuntime(log *slog.Logger) (*Driver, error) {
	reg := registry.New()
	fac := factory.New(reg)

	registrations := []func(*registry.Registry, *factory.Factory) error{
		optimize.RegisterBuiltIn,
		varform.RegisterBuiltIn,
		input.RegisterBuiltIn,
		algorithm.RegisterBuiltIn,
	}
	for _, register := range registrations {
		if err := register(reg, fac); err != nil {
			return nil, err
		}
	}
	return New(reg, fac, log), nil
}

// Registry exposes the component catalog, e.g. for listing surfaces.
func (d *Driver) Registry() *registry.Registry {
	return d.reg
}
