package scenario

import (
	"testing"
	"time"

	"github.com/mgerber/venue-forecast/internal/engine"
)

func TestNewPopulatesMetrics(t *testing.T) {
	s := NewDefault("baseline")

	if s.ID == "" {
		t.Errorf("expected a generated id")
	}
	if s.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, expected %d", s.SchemaVersion, CurrentSchemaVersion)
	}
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps to be set")
	}

	expected := engine.ComputeMetrics(s.Inputs)
	if s.Metrics != expected {
		t.Errorf("metrics do not match engine output for the inputs")
	}
	if s.Metrics.BaseWeeklyRevenueGross <= 0 {
		t.Errorf("default scenario should have positive weekly revenue, got %.2f", s.Metrics.BaseWeeklyRevenueGross)
	}
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	a := NewDefault("a")
	b := NewDefault("b")
	if a.ID == b.ID {
		t.Errorf("two scenarios share id %s", a.ID)
	}
}

func TestNewEmptyAllZero(t *testing.T) {
	s := NewEmpty("blank")

	if s.Inputs != (engine.Inputs{}) {
		t.Errorf("empty scenario has non-zero inputs: %+v", s.Inputs)
	}
	if s.Metrics != (engine.Metrics{}) {
		t.Errorf("empty scenario has non-zero metrics: %+v", s.Metrics)
	}
}

func TestDefaultInputsDocumentedValues(t *testing.T) {
	in := DefaultInputs()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"profitraining", in.Profitraining, 700},
		{"ticketPrice", in.TicketPrice, 15},
		{"ticketsPerWeek", in.TicketsPerWeek, 60},
		{"course1PricePerParticipant", in.Course1PricePerParticipant, 20},
		{"course1Participants", in.Course1Participants, 12},
		{"course1PerWeek", in.Course1PerWeek, 2},
		{"course1TrainerCosts", in.Course1TrainerCosts, 50},
		{"salaries", in.Salaries, 12257.05},
		{"heatingCosts", in.HeatingCosts, 600},
		{"weeklyReserves", in.WeeklyReserves, 200},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestApplyUpdatesAndRecomputes(t *testing.T) {
	s := NewDefault("before")
	originalUpdated := s.UpdatedAt

	// Apply only a rename.
	name := "after"
	time.Sleep(time.Millisecond)
	s.Apply(Update{Name: &name}, engine.ComputeOptions{})
	if s.Name != "after" {
		t.Errorf("Name = %s, expected after", s.Name)
	}
	if !s.UpdatedAt.After(originalUpdated) {
		t.Errorf("UpdatedAt was not bumped")
	}

	// Apply new inputs; metrics must follow the merged inputs, never the
	// stale ones.
	inputs := DefaultInputs()
	inputs.TicketPrice = 30
	s.Apply(Update{Inputs: &inputs}, engine.ComputeOptions{})

	if s.Inputs.TicketPrice != 30 {
		t.Errorf("TicketPrice = %v, expected 30", s.Inputs.TicketPrice)
	}
	expected := engine.ComputeMetrics(inputs)
	if s.Metrics != expected {
		t.Errorf("metrics were not recomputed from the updated inputs")
	}
}

func TestRecomputeWithContext(t *testing.T) {
	s := NewDefault("weighted")

	mult := make([]float64, 52)
	for i := range mult {
		mult[i] = 1.0
	}
	for i := 0; i < 4; i++ {
		mult[i] = 0
	}

	s.Recompute(engine.ComputeOptions{CurrentWeek: 10, RevenueMultipliers: mult})
	if s.Metrics.HistoricalRevenue <= 0 {
		t.Errorf("expected historical revenue with currentWeek 10, got %.2f", s.Metrics.HistoricalRevenue)
	}
	if s.Metrics.TotalRevenueGross >= s.Metrics.BaseWeeklyRevenueGross*52 {
		t.Errorf("four closed weeks should lower the annual total")
	}
}
