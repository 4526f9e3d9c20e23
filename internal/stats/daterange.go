package stats

import "time"

// DateRange is an inclusive calendar interval. A range whose Start is after
// its End is treated as empty everywhere, never as an error.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range normalized to UTC day boundaries.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DayStartUTC(start), End: DayEndUTC(end)}
}

// DayStartUTC pins t to 00:00:00.000 UTC of its calendar day. Date-only
// comparisons must go through this (or DayEndUTC) so the caller's local
// timezone cannot shift a record across a day boundary.
func DayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEndUTC pins t to the last nanosecond of its UTC calendar day.
func DayEndUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}

// DayKey truncates t to its UTC calendar date string (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekdaysInRange enumerates every Monday-through-Friday day from start to
// end inclusive, ascending, normalized to UTC day starts. An inverted range
// yields an empty sequence.
func WeekdaysInRange(start, end time.Time) []time.Time {
	var days []time.Time
	cur := DayStartUTC(start)
	last := DayStartUTC(end)

	for !cur.After(last) {
		wd := cur.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days = append(days, cur)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}

// Weekdays returns the Monday-Friday days covered by the range.
func (r DateRange) Weekdays() []time.Time {
	return WeekdaysInRange(r.Start, r.End)
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
