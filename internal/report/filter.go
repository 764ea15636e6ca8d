package report

import (
	"time"

	"github.com/effortum/effortum/internal/store"
)

// Range is the selected [start, end] calendar interval used to decide which
// tasks contribute to summaries and comment exports. Either bound may be nil.
type Range struct {
	Start *string
	End   *string
}

// All matches every task.
func All() Range {
	return Range{}
}

// Day matches tasks on a single calendar day.
func Day(date string) Range {
	return Range{Start: &date, End: &date}
}

// Between matches tasks between two calendar days, inclusive of both.
func Between(start, end string) Range {
	return Range{Start: &start, End: &end}
}

// Contains reports whether a task date falls inside the range:
//   - both bounds nil: everything passes,
//   - end nil or start == end: calendar-day equality with start,
//   - otherwise: inclusive interval membership at day granularity. Bounds
//     passed in reverse order still match dates between the smaller and the
//     larger bound; callers rely on this.
//
// Dates compare at calendar-day granularity, so an ISO datetime and a plain
// date string on the same day are equal.
func (r Range) Contains(date string) bool {
	if r.Start == nil && r.End == nil {
		return true
	}

	day, ok := parseDay(date)
	if !ok {
		return false
	}

	if r.End == nil || (r.Start != nil && *r.Start == *r.End) {
		if r.Start == nil {
			return false
		}
		start, ok := parseDay(*r.Start)
		return ok && day.Equal(start)
	}

	if r.Start == nil {
		return false
	}
	start, ok := parseDay(*r.Start)
	if !ok {
		return false
	}
	end, ok := parseDay(*r.End)
	if !ok {
		return false
	}
	if end.Before(start) {
		start, end = end, start
	}
	return !day.Before(start) && !day.After(end)
}

// FilterTasks keeps the tasks whose date falls inside the range, preserving
// their relative order.
func FilterTasks(tasks []store.Task, r Range) []store.Task {
	if r.Start == nil && r.End == nil {
		return tasks
	}
	filtered := make([]store.Task, 0, len(tasks))
	for _, task := range tasks {
		if r.Contains(task.Date) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// parseDay reduces a date string to its calendar day, tolerating a trailing
// time component.
func parseDay(value string) (time.Time, bool) {
	if len(value) < 10 {
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", value[:10])
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
