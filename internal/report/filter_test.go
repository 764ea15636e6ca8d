package report

import (
	"testing"

	"github.com/effortum/effortum/internal/store"
)

func sampleTasks() []store.Task {
	return []store.Task{
		{ID: "1", Date: "2024-01-15", TimeStart: "08:00", TimeEnd: "09:00", Project: "ProjectA"},
		{ID: "2", Date: "2024-01-16", TimeStart: "09:00", TimeEnd: "10:00", Project: "ProjectB"},
		{ID: "3", Date: "2024-01-20", TimeStart: "10:00", TimeEnd: "11:00", Project: "ProjectA"},
		{ID: "4", Date: "2024-02-01", TimeStart: "11:00", TimeEnd: "12:00", Project: "ProjectC"},
	}
}

func ids(tasks []store.Task) []string {
	result := make([]string, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, string(task.ID))
	}
	return result
}

func assertIDs(t *testing.T, got []store.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("filtered tasks = %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if string(got[i].ID) != id {
			t.Fatalf("filtered tasks = %v, want %v", ids(got), want)
		}
	}
}

func TestFilterTasksSingleDay(t *testing.T) {
	got := FilterTasks(sampleTasks(), Between("2024-01-16", "2024-01-16"))
	assertIDs(t, got, "2")
}

func TestFilterTasksInclusiveRange(t *testing.T) {
	got := FilterTasks(sampleTasks(), Between("2024-01-15", "2024-01-20"))
	assertIDs(t, got, "1", "2", "3")
}

func TestFilterTasksNullRangePassesEverything(t *testing.T) {
	tasks := sampleTasks()
	got := FilterTasks(tasks, All())
	assertIDs(t, got, "1", "2", "3", "4")
	if len(got) != len(tasks) {
		t.Fatalf("length = %d, want %d", len(got), len(tasks))
	}
}

func TestFilterTasksReversedBoundsStillInclusive(t *testing.T) {
	// Bounds passed in reverse order behave like the forward range; this is
	// long-standing behavior callers depend on.
	got := FilterTasks(sampleTasks(), Between("2024-01-20", "2024-01-15"))
	assertIDs(t, got, "1", "2", "3")
}

func TestFilterTasksNilEndMatchesStartDay(t *testing.T) {
	start := "2024-01-15"
	got := FilterTasks(sampleTasks(), Range{Start: &start})
	assertIDs(t, got, "1")
}

func TestContainsIgnoresTimeComponent(t *testing.T) {
	r := Between("2024-01-16", "2024-01-16")
	if !r.Contains("2024-01-16T14:30:00") {
		t.Fatal("datetime on the same day should match a plain date bound")
	}
	if r.Contains("2024-01-17T00:00:00") {
		t.Fatal("datetime on another day must not match")
	}
}

func TestContainsRejectsMalformedDates(t *testing.T) {
	r := Between("2024-01-15", "2024-01-20")
	if r.Contains("not-a-date!") {
		t.Fatal("malformed date must not pass the filter")
	}
}
