package validate

import "testing"

func TestDate(t *testing.T) {
	if got := Date(""); got != "Date is required" {
		t.Fatalf("Date(\"\") = %q", got)
	}
	if got := Date("2024-01-15"); got != "" {
		t.Fatalf("Date(valid) = %q, want no error", got)
	}
}

func TestStart(t *testing.T) {
	if got := Start(""); got != "Start time is required" {
		t.Fatalf("Start(\"\") = %q", got)
	}
	if got := Start("08:00"); got != "" {
		t.Fatalf("Start(valid) = %q, want no error", got)
	}
}

func TestEnd(t *testing.T) {
	tests := []struct {
		name  string
		end   string
		start string
		want  string
	}{
		{name: "absent end passes", end: "", start: "08:00", want: ""},
		{name: "after start passes", end: "09:00", start: "08:00", want: ""},
		{name: "equal to start passes", end: "08:00", start: "08:00", want: ""},
		{name: "before start fails", end: "07:00", start: "08:00", want: "End time must be after start time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := End(tt.end, tt.start); got != tt.want {
				t.Fatalf("End(%q, %q) = %q, want %q", tt.end, tt.start, got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	if got := Project(""); got != "Project is required" {
		t.Fatalf("Project(\"\") = %q", got)
	}
	if got := Project("Effortum"); got != "" {
		t.Fatalf("Project(valid) = %q, want no error", got)
	}
}

func TestWorkingHoursPerDay(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "8", want: ""},
		{value: "7.5", want: ""},
		{value: "24", want: ""},
		{value: "0", want: "Must be a positive number"},
		{value: "-1", want: "Must be a positive number"},
		{value: "25", want: "A day has only 24 hours"},
		{value: "abc", want: "Must be a positive number"},
		{value: "", want: "Must be a positive number"},
	}

	for _, tt := range tests {
		if got := WorkingHoursPerDay(tt.value); got != tt.want {
			t.Fatalf("WorkingHoursPerDay(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestCurrentBalance(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "0", want: ""},
		{value: "-12.25", want: ""},
		{value: "3", want: ""},
		{value: "abc", want: "Must be a number"},
		{value: "", want: "Must be a number"},
	}

	for _, tt := range tests {
		if got := CurrentBalance(tt.value); got != tt.want {
			t.Fatalf("CurrentBalance(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
