package stats

import (
	"fmt"
	"sort"
)

// Status buckets for a compliance percentage.
const (
	StatusGood     = "good"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// Thresholds holds the status cutoffs, in percent.
type Thresholds struct {
	Good    float64 `json:"good"`
	Warning float64 `json:"warning"`
}

// DefaultThresholds matches the dashboard the scorecard replaces.
func DefaultThresholds() Thresholds {
	return Thresholds{Good: 97, Warning: 90}
}

// Classify maps a compliance percentage to a status bucket.
func (t Thresholds) Classify(percent float64) string {
	switch {
	case percent >= t.Good:
		return StatusGood
	case percent >= t.Warning:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// FormatPercent renders a percentage with two decimals for display.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", Round2(v))
}

// MissingRank is one row of the missing-day ranking: a user and how many
// required weekdays they skipped.
type MissingRank struct {
	User    string   `json:"user"`
	Count   int      `json:"count"`
	Dates   []string `json:"dates"`
	Percent string   `json:"percent"`
}

// StreamScorecard is the display-ready view of one stream's compliance.
// Percentages are formatted strings; the raw report stays available for
// callers that need the unrounded values.
type StreamScorecard struct {
	Stream            string        `json:"stream"`
	Range             DateRange     `json:"range"`
	WeekdayCount      int           `json:"weekdayCount"`
	TotalMandatory    int           `json:"totalMandatory"`
	CompliantCount    int           `json:"compliantCount"`
	PercentCompliance float64       `json:"percentCompliance"`
	PercentDisplay    string        `json:"percentDisplay"`
	Status            string        `json:"status"`
	NonCompliantUsers []string      `json:"nonCompliantUsers"`
	MissingRanking    []MissingRank `json:"missingRanking"`
}

// AssembleScorecard turns a raw compliance report into its display form:
// non-compliant users sorted alphabetically, missing-day ranking sorted by
// count descending with user ascending on ties, percentages rounded.
func AssembleScorecard(stream string, rep ComplianceReport, t Thresholds) StreamScorecard {
	users := make([]string, len(rep.NonCompliantUsers))
	copy(users, rep.NonCompliantUsers)
	sort.Strings(users)

	ranking := make([]MissingRank, 0, len(rep.MissingByUser))
	for user, missing := range rep.MissingByUser {
		if missing.Count == 0 {
			continue
		}
		row := MissingRank{User: user, Count: missing.Count, Dates: missing.Dates}
		if rep.WeekdayCount > 0 {
			attended := rep.WeekdayCount - missing.Count
			row.Percent = FormatPercent(float64(attended) / float64(rep.WeekdayCount) * 100)
		} else {
			row.Percent = FormatPercent(0)
		}
		ranking = append(ranking, row)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].User < ranking[j].User
	})

	return StreamScorecard{
		Stream:            stream,
		Range:             rep.Range,
		WeekdayCount:      rep.WeekdayCount,
		TotalMandatory:    rep.TotalMandatory,
		CompliantCount:    rep.CompliantCount,
		PercentCompliance: Round2(rep.PercentCompliance),
		PercentDisplay:    FormatPercent(rep.PercentCompliance),
		Status:            t.Classify(rep.PercentCompliance),
		NonCompliantUsers: users,
		MissingRanking:    ranking,
	}
}
