package activity

import "time"

// Index maps users to their distinct activity days and full record lists.
// Days is keyed by UTC calendar date (YYYY-MM-DD): multiple records on the
// same user+day collapse to one entry, because "has a record for day D" is
// boolean, not a count.
type Index struct {
	Days    map[string]map[string]bool
	Records map[string][]Record
	// Skipped counts records dropped for a missing user or unparseable
	// date. They are never silently lost without trace.
	Skipped int
}

// BuildIndex folds a flat record list into per-user day sets and record
// lists. Pure: the input slice is not retained or mutated.
func BuildIndex(records []Record) Index {
	idx := Index{
		Days:    make(map[string]map[string]bool),
		Records: make(map[string][]Record),
	}

	for _, rec := range records {
		if rec.User == "" || rec.Date.IsZero() {
			idx.Skipped++
			continue
		}

		key := dayKey(rec.Date)
		if idx.Days[rec.User] == nil {
			idx.Days[rec.User] = make(map[string]bool)
		}
		idx.Days[rec.User][key] = true
		idx.Records[rec.User] = append(idx.Records[rec.User], rec)
	}
	return idx
}

// DistinctDayCount returns how many distinct activity days a user has.
func (idx Index) DistinctDayCount(user string) int {
	return len(idx.Days[user])
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
