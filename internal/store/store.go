package store

import (
	"context"
	"encoding/json"
	"time"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one persisted execution: the resolved configuration it ran from
// and the result it produced.
type Record struct {
	ID        string          `json:"id"`
	Algorithm string          `json:"algorithm"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Config    json.RawMessage `json:"config"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Store persists run records.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, record Record) error
	GetRun(ctx context.Context, id string) (Record, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Record, error)
}

// CloseIfSupported closes stores that hold external resources.
func CloseIfSupported(s Store) error {
	closer, ok := s.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
