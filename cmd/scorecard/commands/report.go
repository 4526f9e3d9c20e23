package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"scorecard/internal/reporter"
	"scorecard/internal/roster"
	"scorecard/internal/scheduler"
	"scorecard/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportStart      string
	reportEnd        string
	reportDepartment string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Produce a one-shot operational report as JSON on stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := reportRange()
		if err != nil {
			return err
		}

		store, err := roster.NewStore(cfg.Store)
		if err != nil {
			return fmt.Errorf("failed to open roster store: %w", err)
		}
		defer store.Close()

		rep := reporter.New(store, standupClient, trackifyClient, cfg.Thresholds)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		report, err := rep.Operational(ctx, rng, reportDepartment)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// reportRange resolves the requested range, defaulting to the previous
// Monday through Friday.
func reportRange() (stats.DateRange, error) {
	if reportStart == "" && reportEnd == "" {
		rng := scheduler.PreviousWorkWeek(time.Now())
		log.Debug().Str("start", stats.DayKey(rng.Start)).Str("end", stats.DayKey(rng.End)).Msg("Defaulting to previous work week")
		return rng, nil
	}
	if reportStart == "" || reportEnd == "" {
		return stats.DateRange{}, fmt.Errorf("both --start and --end are required when either is given")
	}

	start, err := time.Parse("2006-01-02", reportStart)
	if err != nil {
		return stats.DateRange{}, fmt.Errorf("invalid --start %q: want YYYY-MM-DD", reportStart)
	}
	end, err := time.Parse("2006-01-02", reportEnd)
	if err != nil {
		return stats.DateRange{}, fmt.Errorf("invalid --end %q: want YYYY-MM-DD", reportEnd)
	}
	return stats.NewDateRange(start, end), nil
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "range end (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportDepartment, "department", "", "restrict to one department")
	rootCmd.AddCommand(reportCmd)
}
