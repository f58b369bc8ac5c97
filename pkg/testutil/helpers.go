// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/mgerber/venue-forecast/internal/scenario"
)

// FindScenario finds a scenario by name in the given slice.
// Returns a pointer to the scenario if found, nil otherwise.
func FindScenario(scenarios []scenario.Scenario, name string) *scenario.Scenario {
	for i := range scenarios {
		if scenarios[i].Name == name {
			return &scenarios[i]
		}
	}
	return nil
}
