package scheduler

import (
	"context"
	"fmt"
	"time"

	"scorecard/internal/mailer"
	"scorecard/internal/reporter"
	"scorecard/internal/roster"
	"scorecard/internal/stats"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SnapshotStore persists weekly scorecard snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap roster.Snapshot) error
}

// Weekly runs the scorecard snapshot job on a cron schedule. Every run
// covers the previous Monday through Friday.
type Weekly struct {
	cronScheduler *cron.Cron
	spec          string
	reporter      *reporter.Reporter
	store         SnapshotStore
	mailer        *mailer.Mailer
	goal          float64
	jobID         cron.EntryID
}

// DefaultCronSpec fires Mondays at 06:00.
const DefaultCronSpec = "0 0 6 * * MON"

func NewWeekly(spec string, rep *reporter.Reporter, store SnapshotStore, m *mailer.Mailer, goal float64) *Weekly {
	if spec == "" {
		spec = DefaultCronSpec
	}
	return &Weekly{
		cronScheduler: cron.New(cron.WithSeconds()),
		spec:          spec,
		reporter:      rep,
		store:         store,
		mailer:        m,
		goal:          goal,
	}
}

// Start registers and starts the snapshot job.
func (w *Weekly) Start() error {
	var err error
	w.jobID, err = w.cronScheduler.AddFunc(w.spec, w.runSnapshot)
	if err != nil {
		return fmt.Errorf("failed to schedule weekly snapshot: %w", err)
	}

	w.cronScheduler.Start()
	log.Info().Str("spec", w.spec).Msg("Weekly snapshot scheduler started")
	return nil
}

// Stop halts the scheduler. Running jobs finish.
func (w *Weekly) Stop() {
	if w.cronScheduler != nil {
		w.cronScheduler.Stop()
		log.Info().Msg("Weekly snapshot scheduler stopped")
	}
}

// RunOnce executes the snapshot job immediately for the previous work week.
func (w *Weekly) RunOnce(ctx context.Context) error {
	rng := PreviousWorkWeek(time.Now())
	return w.snapshot(ctx, rng)
}

func (w *Weekly) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rng := PreviousWorkWeek(time.Now())
	if err := w.snapshot(ctx, rng); err != nil {
		log.Error().Err(err).Msg("Weekly snapshot failed")
	}
}

func (w *Weekly) snapshot(ctx context.Context, rng stats.DateRange) error {
	log.Info().Str("start", stats.DayKey(rng.Start)).Str("end", stats.DayKey(rng.End)).Msg("Computing weekly snapshot")

	snap, err := w.reporter.WeeklySnapshot(ctx, rng, w.goal)
	if err != nil {
		return err
	}
	if err := w.store.SaveSnapshot(ctx, *snap); err != nil {
		return err
	}
	log.Info().
		Float64("standup", snap.StandupPercent).
		Float64("trackify", snap.TrackifyPercent).
		Msg("Weekly snapshot saved")

	if w.mailer != nil {
		if err := w.mailer.SendWeeklyScorecard(snap); err != nil {
			log.Error().Err(err).Msg("Weekly scorecard email failed")
		}
	}
	return nil
}

// PreviousWorkWeek returns the Monday through Friday immediately before now,
// as a UTC day-bounded range. Called on a Monday it covers the week that
// just ended.
func PreviousWorkWeek(now time.Time) stats.DateRange {
	now = now.UTC()

	// Walk back to the most recent Friday strictly before today.
	day := now.AddDate(0, 0, -1)
	for day.Weekday() != time.Friday {
		day = day.AddDate(0, 0, -1)
	}
	friday := day
	monday := friday.AddDate(0, 0, -4)

	return stats.NewDateRange(monday, friday)
}
