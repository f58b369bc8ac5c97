package scenario

import (
	"github.com/mgerber/venue-forecast/internal/engine"
)

// CurrentSchemaVersion is the schema version written by New. Records
// loaded with a lower version pass through the pending migration steps.
const CurrentSchemaVersion = 3

// A migration backfills the input fields added at one schema version.
// Steps are small and named so field additions stay auditable.
type migration struct {
	version int
	name    string
	apply   func(*engine.Inputs)
}

// migrations runs in order; each step applies when the record's version is
// below the step's version.
var migrations = []migration{
	{
		version: 2,
		name:    "add-heating-costs",
		apply: func(in *engine.Inputs) {
			in.HeatingCosts = defaultHeatingCosts
		},
	},
	{
		version: 3,
		name:    "add-weekly-reserves",
		apply: func(in *engine.Inputs) {
			in.WeeklyReserves = defaultWeeklyReserves
		},
	},
}

// Migrate brings a scenario loaded from storage up to the current schema:
// each pending step backfills its fields with the documented defaults,
// existing fields are preserved, and the metrics are recomputed from the
// migrated inputs. Migrating an already-current scenario leaves its
// inputs untouched, so the operation is idempotent.
func Migrate(s *Scenario, opts engine.ComputeOptions) {
	// Records written before versioning carry version zero; they are the
	// initial schema.
	version := s.SchemaVersion
	if version < 1 {
		version = 1
	}

	for _, step := range migrations {
		if version < step.version {
			step.apply(&s.Inputs)
			version = step.version
		}
	}
	s.SchemaVersion = version
	s.Recompute(opts)
}
