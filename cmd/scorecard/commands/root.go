package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scorecard/internal/activity"
	"scorecard/internal/config"
	"scorecard/internal/httpapi"
	"scorecard/internal/logging"
	"scorecard/internal/mailer"
	"scorecard/internal/reporter"
	"scorecard/internal/roster"
	"scorecard/internal/scheduler"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	standupClient  activity.Client
	trackifyClient activity.Client
)

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Scorecard is an attendance reconciliation and metrics service",
	Long: `A service that reconciles employee standup and timesheet activity against
the mandatory-reporting roster and serves compliance scorecards and
operational reports over HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		standupClient = activity.NewClient(activity.StreamStandup, cfg.Standup)
		trackifyClient = activity.NewClient(activity.StreamTrackify, cfg.Trackify)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Scorecard starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	store, err := roster.NewStore(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open roster store")
	}
	defer store.Close()

	rep := reporter.New(store, standupClient, trackifyClient, cfg.Thresholds)

	weekly := scheduler.NewWeekly(cfg.CronSpec, rep, store, mailer.New(cfg.Mail), cfg.Goal)
	if err := weekly.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start snapshot scheduler")
	}
	defer weekly.Stop()

	router := httpapi.SetupRoutes(httpapi.NewHandlers(rep, store))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
