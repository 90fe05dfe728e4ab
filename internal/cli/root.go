package cli

import (
	"fmt"
	"time"

	"github.com/amacleod/pulse/internal/checkin"
	"github.com/amacleod/pulse/internal/constants"
	"github.com/amacleod/pulse/internal/reminder"
	"github.com/amacleod/pulse/internal/storage"
)

// Context carries the wired services into every kong command.
type Context struct {
	Store     storage.Provider
	Checkins  *checkin.Store
	Reminders *reminder.Service
	Debug     bool
}

// ParseClock parses an HH:MM string into hour and minute components.
func ParseClock(timeStr string) (int, int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time format (expected HH:MM): %q", timeStr)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseDate parses a YYYY-MM-DD string into a local date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return t, nil
}

// ValidateMetric checks a metric value against the UI range contract.
func ValidateMetric(name string, value int) error {
	if value < constants.MetricMin || value > constants.MetricMax {
		return fmt.Errorf("%s must be between %d and %d", name, constants.MetricMin, constants.MetricMax)
	}
	return nil
}
