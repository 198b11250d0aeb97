package pipeline

import "time"

// Threshold computes the earliest release date counted as new. A positive
// days value is a plain lookback window. Zero selects the Friday rule:
// reach back to the Friday before last, so a run scheduled on release
// Fridays always covers one full week of overlap with the previous run.
func Threshold(today time.Time, days int) time.Time {
	if days <= 0 {
		days = fridayOffset(today)
	}
	return today.AddDate(0, 0, -days)
}

// fridayOffset returns the number of days back to the second-to-last
// Friday: ((weekday - 4) mod 7) + 7 with Monday = 0 and a non-negative
// modulo. A Friday yields 7, the following Monday yields 10.
func fridayOffset(today time.Time) int {
	weekday := (int(today.Weekday()) + 6) % 7
	return ((weekday-4)%7+7)%7 + 7
}
