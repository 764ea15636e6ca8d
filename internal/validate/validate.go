// Package validate holds the pure field checks shared by the entry commands
// and the TUI. Each validator returns "" when the value is acceptable and a
// human-readable message otherwise.
package validate

import (
	"strconv"
	"time"
)

// Date requires a non-empty date value.
func Date(value string) string {
	if value == "" {
		return "Date is required"
	}
	return ""
}

// Start requires a non-empty start time.
func Start(value string) string {
	if value == "" {
		return "Start time is required"
	}
	return ""
}

// End accepts an absent end time. When present it must not lie before the
// start time on the same reference day; an end equal to the start passes.
func End(end, start string) string {
	if end == "" {
		return ""
	}
	endTime, endErr := time.Parse("15:04", end)
	startTime, startErr := time.Parse("15:04", start)
	if endErr != nil || startErr != nil {
		return ""
	}
	if endTime.Before(startTime) {
		return "End time must be after start time"
	}
	return ""
}

// Project requires a non-empty project name.
func Project(value string) string {
	if value == "" {
		return "Project is required"
	}
	return ""
}

// WorkingHoursPerDay requires a number strictly greater than zero and at most
// twenty-four.
func WorkingHoursPerDay(value string) string {
	hours, err := strconv.ParseFloat(value, 64)
	if err != nil || hours <= 0 {
		return "Must be a positive number"
	}
	if hours > 24 {
		return "A day has only 24 hours"
	}
	return ""
}

// CurrentBalance requires a number; the sign is unrestricted.
func CurrentBalance(value string) string {
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "Must be a number"
	}
	return ""
}
