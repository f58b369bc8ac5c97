package calendarweek

import (
	"testing"
	"time"
)

func TestAt(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected int
	}{
		{"first of January", "2025-01-01", 1},
		{"seventh day of year", "2025-01-07", 2},
		{"early February", "2025-02-03", 5},
		{"mid year", "2025-07-01", 27},
		{"last day of year folds into week 52", "2025-12-31", 52},
		{"leap year last day", "2024-12-31", 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatalf("failed to parse date: %v", err)
			}
			if got := At(date); got != tt.expected {
				t.Errorf("At(%s) = %d, expected %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestAtStaysInRange(t *testing.T) {
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 365; day++ {
		week := At(date.AddDate(0, 0, day))
		if week < 1 || week > 52 {
			t.Fatalf("At(%s) = %d, outside 1..52", date.AddDate(0, 0, day).Format("2006-01-02"), week)
		}
	}
}

func TestCurrentMatchesAtNow(t *testing.T) {
	if got, want := Current(), At(time.Now()); got != want {
		t.Errorf("Current() = %d, At(now) = %d", got, want)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{27, 27},
		{52, 52},
		{53, 52},
		{400, 52},
	}

	for _, tt := range tests {
		if got := Clamp(tt.input); got != tt.expected {
			t.Errorf("Clamp(%d) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
