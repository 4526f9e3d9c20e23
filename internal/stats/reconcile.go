package stats

import "math"

// MissingDays lists the weekdays inside a range for which a user has no
// activity record, ascending.
type MissingDays struct {
	Dates []string `json:"dates"`
	Count int      `json:"count"`
}

// ComplianceReport carries the two compliance metrics for one stream.
//
// PercentCompliance is the binary metric: a user counts as compliant if they
// have at least one record anywhere in the range, even with weekdays still
// missing. MissingByUser is the graded metric: the exact weekdays each user
// skipped. The two must never be conflated; the scorecard percentage is
// always the binary one.
type ComplianceReport struct {
	Range             DateRange              `json:"range"`
	WeekdayCount      int                    `json:"weekdayCount"`
	TotalMandatory    int                    `json:"totalMandatory"`
	CompliantCount    int                    `json:"compliantCount"`
	NonCompliantUsers []string               `json:"nonCompliantUsers"`
	MissingByUser     map[string]MissingDays `json:"missingByUser"`
	PercentCompliance float64                `json:"percentCompliance"`
}

// Reconcile computes the compliance report for a mandatory user set against
// an index of user -> set of UTC day keys. mandatory is iterated in the
// order given (roster order); consumers that need a sorted view sort
// separately. Never errors: empty roster, empty index or an inverted range
// all produce a well-formed zeroed report. With zero weekdays in range every
// user is vacuously compliant.
func Reconcile(mandatory []string, index map[string]map[string]bool, r DateRange) ComplianceReport {
	weekdays := r.Weekdays()
	weekdayKeys := make([]string, len(weekdays))
	for i, d := range weekdays {
		weekdayKeys[i] = DayKey(d)
	}

	rep := ComplianceReport{
		Range:             r,
		WeekdayCount:      len(weekdays),
		TotalMandatory:    len(mandatory),
		NonCompliantUsers: []string{},
		MissingByUser:     make(map[string]MissingDays, len(mandatory)),
	}

	for _, user := range mandatory {
		userDays := index[user]

		missing := []string{}
		for _, key := range weekdayKeys {
			if !userDays[key] {
				missing = append(missing, key)
			}
		}
		rep.MissingByUser[user] = MissingDays{Dates: missing, Count: len(missing)}

		// A range with no weekdays (weekend-only or inverted) has no required
		// reporting days, so every user passes vacuously.
		if len(weekdays) == 0 || hasRecordInRange(userDays, r) {
			rep.CompliantCount++
		} else {
			rep.NonCompliantUsers = append(rep.NonCompliantUsers, user)
		}
	}

	if rep.TotalMandatory > 0 {
		rep.PercentCompliance = float64(rep.CompliantCount) / float64(rep.TotalMandatory) * 100
	}
	return rep
}

// hasRecordInRange checks for any activity day (weekend included) inside the
// range. Weekends count toward binary compliance; only the missing-day lists
// are weekday-scoped.
func hasRecordInRange(userDays map[string]bool, r DateRange) bool {
	if len(userDays) == 0 {
		return false
	}
	startKey := DayKey(r.Start)
	endKey := DayKey(r.End)
	for key := range userDays {
		if key >= startKey && key <= endKey {
			return true
		}
	}
	return false
}

// Round2 rounds a percentage to two decimals for display. The reconciler
// itself keeps the unrounded value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
