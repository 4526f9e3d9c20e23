package stats

import (
	"math"
	"testing"
	"time"

	"scorecard/internal/activity"
)

func rec(user, project, duration string) activity.Record {
	return activity.Record{
		Stream:   activity.StreamTrackify,
		User:     user,
		Date:     time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
		Project:  project,
		Duration: duration,
	}
}

func byProject(r activity.Record) string { return r.Project }

func TestGroupSumDurations(t *testing.T) {
	records := []activity.Record{
		rec("alice", "apollo", "2:30:00"),
		rec("bob", "apollo", "1:00:00"),
		rec("carol", "gemini", "8:15:00"),
		rec("dave", "gemini", "garbage"),
	}

	g := GroupSum(records, byProject, activity.DurationHours)

	if got := g.Totals["apollo"]; got != 3.5 {
		t.Errorf("apollo total: expected 3.5, got %v", got)
	}
	if got := g.Totals["gemini"]; got != 8.25 {
		t.Errorf("gemini total: expected 8.25, got %v", got)
	}
	if g.Errors != 1 {
		t.Errorf("Expected 1 extraction error, got %d", g.Errors)
	}
	for k, v := range g.Totals {
		if math.IsNaN(v) {
			t.Errorf("NaN total for %s", k)
		}
	}
}

func TestGroupSumAllFailedStillRegistersKey(t *testing.T) {
	g := GroupSum([]activity.Record{rec("a", "solo", "bad")}, byProject, activity.DurationHours)

	if _, ok := g.Totals["solo"]; !ok {
		t.Fatal("Group with only failed extractions must still appear")
	}
	if g.Totals["solo"] != 0 {
		t.Errorf("Expected 0 total, got %v", g.Totals["solo"])
	}
}

func TestGroupAverageEmptyGroupIsZero(t *testing.T) {
	records := []activity.Record{
		rec("a", "apollo", "4:00:00"),
		rec("b", "apollo", "2:00:00"),
		rec("c", "gemini", "bad"),
	}

	g := GroupAverage(records, byProject, activity.DurationHours)

	if got := g.Totals["apollo"]; got != 3 {
		t.Errorf("apollo average: expected 3, got %v", got)
	}
	if got := g.Totals["gemini"]; got != 0 || math.IsNaN(got) {
		t.Errorf("gemini average must be 0, never NaN, got %v", got)
	}
}

func TestTopNOrderingAndTies(t *testing.T) {
	totals := map[string]float64{
		"beta":  10,
		"alpha": 10,
		"gamma": 25,
		"delta": 5,
	}

	ranked := TopN(totals, 3)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(ranked))
	}
	if ranked[0].Key != "gamma" {
		t.Errorf("Expected gamma first, got %s", ranked[0].Key)
	}
	// Tie at 10 breaks alphabetically.
	if ranked[1].Key != "alpha" || ranked[2].Key != "beta" {
		t.Errorf("Expected alpha then beta on tie, got %s then %s", ranked[1].Key, ranked[2].Key)
	}
}

func TestTopNNegativeMeansAll(t *testing.T) {
	ranked := TopN(map[string]float64{"a": 1, "b": 2}, -1)
	if len(ranked) != 2 {
		t.Errorf("Expected all entries, got %d", len(ranked))
	}
}

func TestDurationHistogramBuckets(t *testing.T) {
	records := []activity.Record{
		rec("a", "p", "1:00:00"), // 0-2
		rec("b", "p", "2:00:00"), // 0-2 (inclusive upper bound)
		rec("c", "p", "3:30:00"), // 2-4
		rec("d", "p", "6:00:00"), // 4-6
		rec("e", "p", "7:59:59"), // 6-8
		rec("f", "p", "9:00:00"), // 8+
		rec("g", "p", "broken"),  // unparsed
		rec("h", "p", ""),        // unknown, also unparsed
	}

	res := DurationHistogram(records, activity.DurationHours)

	want := map[string]int{
		"0-2 hours": 2,
		"2-4 hours": 1,
		"4-6 hours": 1,
		"6-8 hours": 1,
		"8+ hours":  1,
	}
	for label, count := range want {
		if res.Buckets[label] != count {
			t.Errorf("Bucket %s: expected %d, got %d", label, count, res.Buckets[label])
		}
	}
	if res.Unparsed != 2 {
		t.Errorf("Expected 2 unparsed, got %d", res.Unparsed)
	}

	total := 0
	for _, c := range res.Buckets {
		total += c
	}
	if total+res.Unparsed != len(records) {
		t.Errorf("Buckets plus unparsed must cover every record: %d + %d != %d", total, res.Unparsed, len(records))
	}
}

func TestDurationHistogramEmptyInputSeedsBuckets(t *testing.T) {
	res := DurationHistogram(nil, activity.DurationHours)
	if len(res.Buckets) != len(HistogramLabels) {
		t.Errorf("Expected all %d buckets present, got %d", len(HistogramLabels), len(res.Buckets))
	}
	for _, label := range HistogramLabels {
		if res.Buckets[label] != 0 {
			t.Errorf("Bucket %s should be 0, got %d", label, res.Buckets[label])
		}
	}
}
