// Package scenario defines the persisted scenario record and the
// operations for constructing, updating, and migrating scenarios. A
// scenario's metrics are always the result of applying the engine to its
// inputs; every mutation path in this package recomputes them before the
// scenario is handed back.
package scenario

import (
	"time"

	"github.com/google/uuid"

	"github.com/mgerber/venue-forecast/internal/engine"
)

// Scenario is the persisted unit: a named set of inputs together with the
// metrics derived from them.
type Scenario struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	SchemaVersion int            `json:"schemaVersion" yaml:"schemaVersion"`
	CreatedAt     time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" yaml:"updatedAt"`
	Inputs        engine.Inputs  `json:"inputs" yaml:"inputs"`
	Metrics       engine.Metrics `json:"metrics" yaml:"metrics"`
}

// Update describes a partial scenario update. Nil fields are left
// untouched.
type Update struct {
	Name   *string
	Inputs *engine.Inputs
}

// New creates a scenario with the given inputs, a fresh id and timestamps,
// and metrics computed from the inputs.
func New(name string, inputs engine.Inputs) *Scenario {
	now := time.Now()
	s := &Scenario{
		ID:            uuid.NewString(),
		Name:          name,
		SchemaVersion: CurrentSchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
		Inputs:        inputs,
	}
	s.Recompute(engine.ComputeOptions{})
	return s
}

// NewDefault creates a scenario seeded with the documented default inputs.
func NewDefault(name string) *Scenario {
	return New(name, DefaultInputs())
}

// NewEmpty creates a blank-slate scenario with every numeric input at
// zero. The zero inputs are enumerated explicitly in EmptyInputs so the
// non-zero defaults cannot leak through.
func NewEmpty(name string) *Scenario {
	return New(name, EmptyInputs())
}

// Recompute derives the metrics from the current inputs using the given
// calculation context. This is the single point that maintains the
// metrics-follow-inputs invariant.
func (s *Scenario) Recompute(opts engine.ComputeOptions) {
	s.Metrics = engine.ComputeMetricsWithOptions(s.Inputs, opts)
}

// Apply merges a partial update into the scenario, recomputes the metrics
// from the merged inputs, and bumps the update timestamp.
func (s *Scenario) Apply(u Update, opts engine.ComputeOptions) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Inputs != nil {
		s.Inputs = *u.Inputs
	}
	s.Recompute(opts)
	s.UpdatedAt = time.Now()
}
