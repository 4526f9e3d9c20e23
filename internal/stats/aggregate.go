package stats

import (
	"sort"

	"scorecard/internal/activity"
)

// KeyFunc extracts a grouping key from a record.
type KeyFunc func(activity.Record) string

// ValueFunc extracts a numeric value from a record. ok=false marks the value
// as unavailable for this record (e.g. unknown duration); the record then
// contributes nothing to totals and is tallied in the group's error counter
// instead of being silently folded in as zero.
type ValueFunc func(activity.Record) (value float64, ok bool)

// Grouped is the result of a grouping fold. Totals never contain NaN.
type Grouped struct {
	Totals map[string]float64 `json:"totals"`
	Counts map[string]int     `json:"counts"`
	Errors int                `json:"errors"`
}

// GroupSum folds records into per-key sums. A failed value extraction still
// registers the key (with +0) so the group is visible, and bumps Errors.
func GroupSum(records []activity.Record, key KeyFunc, val ValueFunc) Grouped {
	g := Grouped{Totals: make(map[string]float64), Counts: make(map[string]int)}
	for _, rec := range records {
		k := key(rec)
		v, ok := val(rec)
		if !ok {
			g.Totals[k] += 0
			g.Errors++
			continue
		}
		g.Totals[k] += v
		g.Counts[k]++
	}
	return g
}

// GroupAverage folds records into per-key averages over the records whose
// value extraction succeeded. A group with no usable values averages to 0,
// never NaN.
func GroupAverage(records []activity.Record, key KeyFunc, val ValueFunc) Grouped {
	sums := GroupSum(records, key, val)
	avg := Grouped{Totals: make(map[string]float64, len(sums.Totals)), Counts: sums.Counts, Errors: sums.Errors}
	for k, total := range sums.Totals {
		if n := sums.Counts[k]; n > 0 {
			avg.Totals[k] = total / float64(n)
		} else {
			avg.Totals[k] = 0
		}
	}
	return avg
}

// RankedEntry is one row of a descending ranking.
type RankedEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// TopN ranks a grouped total descending by value, ties broken by key
// ascending, truncated to n entries.
func TopN(totals map[string]float64, n int) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(totals))
	for k, v := range totals {
		ranked = append(ranked, RankedEntry{Key: k, Value: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Key < ranked[j].Key
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// HistogramLabels is the fixed display order of the duration buckets.
var HistogramLabels = []string{"0-2 hours", "2-4 hours", "4-6 hours", "6-8 hours", "8+ hours"}

var histogramUpperBounds = []float64{2, 4, 6, 8}

// HistogramResult counts records per duration bucket. Records whose value
// extraction failed land in Unparsed, not in bucket zero, so bucket counts
// always sum to len(records) - Unparsed.
type HistogramResult struct {
	Buckets  map[string]int `json:"buckets"`
	Unparsed int            `json:"unparsed"`
}

// DurationHistogram buckets a numeric value into the fixed hour ranges
// [0-2], (2-4], (4-6], (6-8], (8, +inf).
func DurationHistogram(records []activity.Record, val ValueFunc) HistogramResult {
	res := HistogramResult{Buckets: make(map[string]int, len(HistogramLabels))}
	for _, label := range HistogramLabels {
		res.Buckets[label] = 0
	}

	for _, rec := range records {
		v, ok := val(rec)
		if !ok {
			res.Unparsed++
			continue
		}
		res.Buckets[bucketLabel(v)]++
	}
	return res
}

func bucketLabel(hours float64) string {
	for i, max := range histogramUpperBounds {
		if hours <= max {
			return HistogramLabels[i]
		}
	}
	return HistogramLabels[len(HistogramLabels)-1]
}
