// Package store provides persistence for scenarios. Implementations are
// keyed by scenario id with last-write-wins semantics; there is no
// locking or optimistic concurrency.
package store

import (
	"context"
	"errors"

	"github.com/mgerber/venue-forecast/internal/engine"
	"github.com/mgerber/venue-forecast/internal/scenario"
)

// ErrNotFound is returned when no scenario exists under the given id.
var ErrNotFound = errors.New("scenario not found")

// Store is the persistence contract shared by all backends. Load migrates
// the record to the current schema before returning it; List returns
// scenarios sorted most recently updated first.
type Store interface {
	Save(ctx context.Context, s *scenario.Scenario) error
	Load(ctx context.Context, id string) (*scenario.Scenario, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]scenario.Scenario, error)
}

// migrateLoaded applies the schema migration every backend runs on load.
func migrateLoaded(s *scenario.Scenario) {
	scenario.Migrate(s, engine.ComputeOptions{})
}
