// Package calendarweek provides calendar week utility functions.
package calendarweek

import (
	"time"

	"github.com/mgerber/venue-forecast/pkg/constants"
)

// Current returns the current calendar week number in [1, 52] derived from
// the system date.
func Current() int {
	return At(time.Now())
}

// At returns the calendar week number in [1, 52] for the given time. The
// week is the day of year divided by seven, plus one; the final partial
// week of the year folds into week 52.
func At(t time.Time) int {
	week := t.YearDay()/7 + 1
	if week > constants.WeeksPerYear {
		week = constants.WeeksPerYear
	}
	return week
}

// Clamp forces a week number into the valid [1, 52] range.
func Clamp(week int) int {
	if week < 1 {
		return 1
	}
	if week > constants.WeeksPerYear {
		return constants.WeeksPerYear
	}
	return week
}
