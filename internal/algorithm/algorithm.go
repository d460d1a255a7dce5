package algorithm

import (
	"context"

	"github.com/quantafold/hybrid-core/internal/backend"
)

// Result is the mapping an algorithm produces. Values may include types that
// need rewriting before interchange serialization (complex numbers, numeric
// arrays); the driver performs that conversion on request.
type Result map[string]any

// Algorithm is a constructed top-level computation, owned by the execution it
// was built for and discarded afterwards.
type Algorithm interface {
	Name() string
	Run(ctx context.Context) (Result, error)
}

// BackendConsumer is implemented by algorithms that evaluate against an
// external backend. The driver injects the configured evaluator before
// invoking execution.
type BackendConsumer interface {
	SetupBackend(ev backend.Evaluator, opts backend.Options) error
}

// SeedSetter is implemented by algorithms that honor the cross-cutting
// random seed of the problem section.
type SeedSetter interface {
	SetSeed(seed int64)
}
