package report

import (
	"fmt"
	"time"
)

// Minutes returns the end minus start difference in whole minutes on a fixed
// same-day reference. A task without an end time contributes zero. There is no
// overnight rollover, so an end before the start yields a negative result.
func Minutes(start, end string) int {
	if end == "" {
		return 0
	}
	startTime, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	endTime, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	return int(endTime.Sub(startTime) / time.Minute)
}

// Duration renders the interval between two HH:MM times as HH:MM, or the
// literal "..." when the task is still open. Negative intervals keep their
// sign: Duration("23:00", "01:00") is "-22:00".
func Duration(start, end string) string {
	if end == "" {
		return "..."
	}
	return FormatMinutes(Minutes(start, end))
}

// FormatMinutes renders a minute total as a signed, zero-padded HH:MM string.
func FormatMinutes(total int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}
