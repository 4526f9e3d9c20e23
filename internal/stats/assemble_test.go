package stats

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		percent float64
		want    string
	}{
		{100, StatusGood},
		{97, StatusGood},
		{96.99, StatusWarning},
		{90, StatusWarning},
		{89.99, StatusCritical},
		{0, StatusCritical},
	}
	for _, c := range cases {
		if got := th.Classify(c.percent); got != c.want {
			t.Errorf("Classify(%v): expected %s, got %s", c.percent, c.want, got)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(2.0 / 3.0 * 100); got != "66.67%" {
		t.Errorf("Expected 66.67%%, got %s", got)
	}
	if got := FormatPercent(100); got != "100.00%" {
		t.Errorf("Expected 100.00%%, got %s", got)
	}
}

func TestAssembleScorecardSortingAndRanking(t *testing.T) {
	rep := ComplianceReport{
		Range:          NewDateRange(date(2025, time.January, 20), date(2025, time.January, 24)),
		WeekdayCount:   5,
		TotalMandatory: 4,
		CompliantCount: 1,
		// Roster order, deliberately unsorted.
		NonCompliantUsers: []string{"zoe", "bob", "carol"},
		MissingByUser: map[string]MissingDays{
			"alice": {Dates: []string{}, Count: 0},
			"zoe":   {Dates: []string{"2025-01-20", "2025-01-21", "2025-01-22", "2025-01-23", "2025-01-24"}, Count: 5},
			"bob":   {Dates: []string{"2025-01-21", "2025-01-22"}, Count: 2},
			"carol": {Dates: []string{"2025-01-23", "2025-01-24"}, Count: 2},
		},
		PercentCompliance: 25,
	}

	card := AssembleScorecard("standup", rep, DefaultThresholds())

	wantUsers := []string{"bob", "carol", "zoe"}
	for i, u := range wantUsers {
		if card.NonCompliantUsers[i] != u {
			t.Errorf("User %d: expected %s, got %s", i, u, card.NonCompliantUsers[i])
		}
	}

	if len(card.MissingRanking) != 3 {
		t.Fatalf("Fully compliant users must not appear in the ranking, got %d rows", len(card.MissingRanking))
	}
	if card.MissingRanking[0].User != "zoe" {
		t.Errorf("Expected zoe ranked first, got %s", card.MissingRanking[0].User)
	}
	// Count tie between bob and carol breaks alphabetically.
	if card.MissingRanking[1].User != "bob" || card.MissingRanking[2].User != "carol" {
		t.Errorf("Expected bob then carol, got %s then %s", card.MissingRanking[1].User, card.MissingRanking[2].User)
	}
	if card.MissingRanking[1].Percent != "60.00%" {
		t.Errorf("bob attended 3/5 days: expected 60.00%%, got %s", card.MissingRanking[1].Percent)
	}

	if card.Status != StatusCritical {
		t.Errorf("25 percent should be critical, got %s", card.Status)
	}
	if card.PercentDisplay != "25.00%" {
		t.Errorf("Expected 25.00%%, got %s", card.PercentDisplay)
	}
}

func TestAssembleScorecardRoundsPercent(t *testing.T) {
	rep := ComplianceReport{
		TotalMandatory:    3,
		CompliantCount:    2,
		NonCompliantUsers: []string{"x"},
		MissingByUser:     map[string]MissingDays{},
		PercentCompliance: 2.0 / 3.0 * 100,
	}

	card := AssembleScorecard("trackify", rep, DefaultThresholds())

	if card.PercentCompliance != 66.67 {
		t.Errorf("Expected rounded 66.67, got %v", card.PercentCompliance)
	}
	if card.PercentDisplay != "66.67%" {
		t.Errorf("Expected 66.67%%, got %s", card.PercentDisplay)
	}
}
