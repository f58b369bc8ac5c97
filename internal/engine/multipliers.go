package engine

import (
	"fmt"

	"github.com/mgerber/venue-forecast/pkg/constants"
)

// Multipliers is a per-week scaling sequence covering the 52-week year.
// Values conventionally fall in [0, 2.0]; anything else is a manual
// override and flows through the calculation unmodified.
type Multipliers []float64

// toggleCycle is the sequence a week steps through on repeated toggling.
var toggleCycle = []float64{1.0, 1.2, 0.5, 0}

// NewUniformMultipliers returns a 52-entry sequence with every week at the
// neutral factor 1.0.
func NewUniformMultipliers() Multipliers {
	m := make(Multipliers, constants.WeeksPerYear)
	for i := range m {
		m[i] = constants.DefaultMultiplier
	}
	return m
}

// Valid reports whether the sequence has exactly 52 entries. Sequences of
// any other length are ignored by the engine.
func (m Multipliers) Valid() bool {
	return len(m) == constants.WeeksPerYear
}

// Get returns the factor for a 1-based week number.
func (m Multipliers) Get(week int) (float64, error) {
	if err := m.checkWeek(week); err != nil {
		return 0, err
	}
	return m[week-1], nil
}

// Set assigns a manual factor to a 1-based week number.
func (m Multipliers) Set(week int, value float64) error {
	if err := m.checkWeek(week); err != nil {
		return err
	}
	m[week-1] = value
	return nil
}

// Toggle advances a week to the next factor in the cycle
// 1.0 -> 1.2 -> 0.5 -> 0 -> 1.0. A manual value outside the cycle resets
// to the neutral factor.
func (m Multipliers) Toggle(week int) error {
	if err := m.checkWeek(week); err != nil {
		return err
	}
	current := m[week-1]
	for i, v := range toggleCycle {
		if current == v {
			m[week-1] = toggleCycle[(i+1)%len(toggleCycle)]
			return nil
		}
	}
	m[week-1] = constants.DefaultMultiplier
	return nil
}

// Fill assigns the same factor to every week in the inclusive 1-based
// range [from, to].
func (m Multipliers) Fill(from, to int, value float64) error {
	if err := m.checkWeek(from); err != nil {
		return err
	}
	if err := m.checkWeek(to); err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("invalid week range %d..%d", from, to)
	}
	for week := from; week <= to; week++ {
		m[week-1] = value
	}
	return nil
}

// Clone returns an independent copy of the sequence.
func (m Multipliers) Clone() Multipliers {
	if m == nil {
		return nil
	}
	out := make(Multipliers, len(m))
	copy(out, m)
	return out
}

func (m Multipliers) checkWeek(week int) error {
	if !m.Valid() {
		return fmt.Errorf("multiplier sequence has %d entries, expected %d", len(m), constants.WeeksPerYear)
	}
	if week < 1 || week > constants.WeeksPerYear {
		return fmt.Errorf("week %d out of range 1..%d", week, constants.WeeksPerYear)
	}
	return nil
}
