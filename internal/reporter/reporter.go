package reporter

import (
	"context"
	"fmt"
	"time"

	"scorecard/internal/activity"
	"scorecard/internal/roster"
	"scorecard/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// RosterSource provides the current employee roster.
type RosterSource interface {
	LoadRoster(ctx context.Context) ([]roster.Employee, error)
}

// Reporter fans out to the roster store and the two activity streams and
// assembles reports from the results.
type Reporter struct {
	rosterSrc  RosterSource
	standup    activity.Client
	trackify   activity.Client
	thresholds stats.Thresholds
}

func New(src RosterSource, standup, trackify activity.Client, t stats.Thresholds) *Reporter {
	return &Reporter{rosterSrc: src, standup: standup, trackify: trackify, thresholds: t}
}

// StreamReport carries one stream's compliance result. Unavailable means the
// upstream fetch failed; an available stream with zero records is a real
// (fully non-compliant) result, not an outage.
type StreamReport struct {
	Stream         string                `json:"stream"`
	Unavailable    bool                  `json:"unavailable"`
	FetchError     string                `json:"fetchError,omitempty"`
	RecordCount    int                   `json:"recordCount"`
	SkippedRecords int                   `json:"skippedRecords"`
	Scorecard      stats.StreamScorecard `json:"scorecard"`
}

// OperationalReport is the full cross-stream report behind the dashboard.
type OperationalReport struct {
	Range       stats.DateRange `json:"range"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Department  string          `json:"department,omitempty"`

	EmployeeCount          int `json:"employeeCount"`
	StandupMandatoryCount  int `json:"standupMandatoryCount"`
	TrackifyMandatoryCount int `json:"trackifyMandatoryCount"`

	Standup  StreamReport `json:"standup"`
	Trackify StreamReport `json:"trackify"`

	ProjectHours        []stats.RankedEntry   `json:"projectHours"`
	ProjectSatisfaction []stats.RankedEntry   `json:"projectSatisfaction"`
	TopCommitters       []stats.RankedEntry   `json:"topCommitters"`
	TopTaskUsers        []stats.RankedEntry   `json:"topTaskUsers"`
	DurationHistogram   stats.HistogramResult `json:"durationHistogram"`

	TotalCommits int `json:"totalCommits"`
	TotalTasks   int `json:"totalTasks"`
}

const rankingSize = 5

type fetchResult struct {
	records []activity.Record
	err     error
}

// fetchStreams runs both activity fetches concurrently. A fetch error is
// captured per stream rather than aborting the report.
func (r *Reporter) fetchStreams(ctx context.Context, rng stats.DateRange) (standup, trackify fetchResult) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		standup.records, standup.err = r.standup.FetchRange(gctx, rng.Start, rng.End)
		return nil
	})
	g.Go(func() error {
		trackify.records, trackify.err = r.trackify.FetchRange(gctx, rng.Start, rng.End)
		return nil
	})
	g.Wait()

	return standup, trackify
}

func (r *Reporter) streamReport(stream activity.Stream, res fetchResult, mandatory []string, rng stats.DateRange) StreamReport {
	rep := StreamReport{Stream: string(stream)}
	if res.err != nil {
		log.Error().Err(res.err).Str("stream", string(stream)).Msg("Activity stream unavailable")
		rep.Unavailable = true
		rep.FetchError = res.err.Error()
		return rep
	}

	idx := activity.BuildIndex(res.records)
	rep.RecordCount = len(res.records)
	rep.SkippedRecords = idx.Skipped
	rep.Scorecard = stats.AssembleScorecard(string(stream), stats.Reconcile(mandatory, idx.Days, rng), r.thresholds)
	return rep
}

// Operational builds the full report for a range, optionally narrowed to one
// department.
func (r *Reporter) Operational(ctx context.Context, rng stats.DateRange, department string) (*OperationalReport, error) {
	employees, err := r.rosterSrc.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	employees = roster.FilterByDepartment(employees, department)

	standupRes, trackifyRes := r.fetchStreams(ctx, rng)

	standupMandatory := roster.MandatoryFor(employees, activity.StreamStandup)
	trackifyMandatory := roster.MandatoryFor(employees, activity.StreamTrackify)

	rep := &OperationalReport{
		Range:                 rng,
		GeneratedAt:           time.Now().UTC(),
		Department:            department,
		EmployeeCount:          len(employees),
		StandupMandatoryCount:  len(standupMandatory),
		TrackifyMandatoryCount: len(trackifyMandatory),
		Standup:               r.streamReport(activity.StreamStandup, standupRes, standupMandatory, rng),
		Trackify:              r.streamReport(activity.StreamTrackify, trackifyRes, trackifyMandatory, rng),
	}

	byProject := func(rec activity.Record) string { return rec.Project }
	byUser := func(rec activity.Record) string { return rec.User }

	if !rep.Trackify.Unavailable {
		hours := stats.GroupSum(trackifyRes.records, byProject, activity.DurationHours)
		rep.ProjectHours = stats.TopN(hours.Totals, -1)
		rep.DurationHistogram = stats.DurationHistogram(trackifyRes.records, activity.DurationHours)
	}

	if !rep.Standup.Unavailable {
		satisfaction := stats.GroupAverage(standupRes.records, byProject, func(rec activity.Record) (float64, bool) {
			return float64(rec.Satisfaction), true
		})
		rep.ProjectSatisfaction = stats.TopN(satisfaction.Totals, -1)

		commits := stats.GroupSum(standupRes.records, byUser, func(rec activity.Record) (float64, bool) {
			return float64(rec.CommitCount), true
		})
		rep.TopCommitters = stats.TopN(commits.Totals, rankingSize)

		tasks := stats.GroupSum(standupRes.records, byUser, func(rec activity.Record) (float64, bool) {
			return float64(rec.TaskCount), true
		})
		rep.TopTaskUsers = stats.TopN(tasks.Totals, rankingSize)

		for _, rec := range standupRes.records {
			rep.TotalCommits += rec.CommitCount
			rep.TotalTasks += rec.TaskCount
		}
	}

	return rep, nil
}

// Compliance builds the compliance view for a single stream.
func (r *Reporter) Compliance(ctx context.Context, stream activity.Stream, rng stats.DateRange) (*StreamReport, error) {
	employees, err := r.rosterSrc.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	client := r.standup
	if stream == activity.StreamTrackify {
		client = r.trackify
	}

	var res fetchResult
	res.records, res.err = client.FetchRange(ctx, rng.Start, rng.End)

	rep := r.streamReport(stream, res, roster.MandatoryFor(employees, stream), rng)
	return &rep, nil
}

// WeeklySnapshot computes both stream percentages for a range and packages
// them as a persistable snapshot. Either stream being unavailable is an
// error: a snapshot must never record an outage as zero compliance.
func (r *Reporter) WeeklySnapshot(ctx context.Context, rng stats.DateRange, goal float64) (*roster.Snapshot, error) {
	employees, err := r.rosterSrc.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	standupRes, trackifyRes := r.fetchStreams(ctx, rng)
	if standupRes.err != nil {
		return nil, fmt.Errorf("standup stream unavailable: %w", standupRes.err)
	}
	if trackifyRes.err != nil {
		return nil, fmt.Errorf("trackify stream unavailable: %w", trackifyRes.err)
	}

	standupIdx := activity.BuildIndex(standupRes.records)
	trackifyIdx := activity.BuildIndex(trackifyRes.records)

	standupRep := stats.Reconcile(roster.MandatoryFor(employees, activity.StreamStandup), standupIdx.Days, rng)
	trackifyRep := stats.Reconcile(roster.MandatoryFor(employees, activity.StreamTrackify), trackifyIdx.Days, rng)

	return &roster.Snapshot{
		ID:              uuid.NewString(),
		StartDate:       stats.DayKey(rng.Start),
		EndDate:         stats.DayKey(rng.End),
		StandupPercent:  stats.Round2(standupRep.PercentCompliance),
		TrackifyPercent: stats.Round2(trackifyRep.PercentCompliance),
		Goal:            goal,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
