package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgerber/venue-forecast/internal/engine"
	"github.com/mgerber/venue-forecast/pkg/constants"
)

// ScenarioFile is the YAML document the CLI computes a forecast from: a
// named set of inputs plus the optional calculation context.
type ScenarioFile struct {
	Name               string        `yaml:"name"`
	Inputs             engine.Inputs `yaml:"inputs"`
	CurrentWeek        int           `yaml:"currentWeek,omitempty"`
	RevenueMultipliers []float64     `yaml:"revenueMultipliers,omitempty"`
	CostMultipliers    []float64     `yaml:"costMultipliers,omitempty"`
}

// LoadScenarioFile reads and parses a scenario YAML file.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return &sf, nil
}

// Validate returns warnings for context values the engine will ignore.
func (sf *ScenarioFile) Validate() []string {
	var warnings []string

	if n := len(sf.RevenueMultipliers); n != 0 && n != constants.WeeksPerYear {
		warnings = append(warnings, fmt.Sprintf("revenueMultipliers has %d entries, expected %d; ignoring", n, constants.WeeksPerYear))
	}
	if n := len(sf.CostMultipliers); n != 0 && n != constants.WeeksPerYear {
		warnings = append(warnings, fmt.Sprintf("costMultipliers has %d entries, expected %d; ignoring", n, constants.WeeksPerYear))
	}
	if sf.CurrentWeek < 0 || sf.CurrentWeek > constants.WeeksPerYear {
		warnings = append(warnings, fmt.Sprintf("currentWeek %d is outside 1..%d; ignoring", sf.CurrentWeek, constants.WeeksPerYear))
	}

	return warnings
}

// ComputeOptions assembles the engine context from the file, dropping
// anything Validate warned about.
func (sf *ScenarioFile) ComputeOptions(fallbackWeek int) engine.ComputeOptions {
	opts := engine.ComputeOptions{
		RevenueMultipliers: sf.RevenueMultipliers,
		CostMultipliers:    sf.CostMultipliers,
	}
	if sf.CurrentWeek >= 1 && sf.CurrentWeek <= constants.WeeksPerYear {
		opts.CurrentWeek = sf.CurrentWeek
	} else {
		opts.CurrentWeek = fallbackWeek
	}
	return opts
}
