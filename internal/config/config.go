package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"scorecard/internal/activity"
	"scorecard/internal/mailer"
	"scorecard/internal/roster"
	"scorecard/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultGoal is the compliance goal stamped on weekly snapshots, carried
// over from the historical dashboard.
const DefaultGoal = 97.22

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Standup    activity.Config
	Trackify   activity.Config
	Store      roster.StoreConfig
	Mail       mailer.Config
	Thresholds stats.Thresholds

	HTTPAddr string
	CronSpec string
	Goal     float64

	DataPath string
	LogDir   string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("ACTIVITY_REQUEST_DELAY_SECONDS", "0"))
	delay := time.Duration(delaySecs) * time.Second

	cfg := &AppConfig{
		Standup: activity.Config{
			BaseURL:      getEnv("STANDUP_API_URL", ""),
			Location:     getEnv("STANDUP_LOCATION", ""),
			RequestDelay: delay,
		},
		Trackify: activity.Config{
			BaseURL:      getEnv("TRACKIFY_API_URL", ""),
			RequestDelay: delay,
		},
		Store: roster.StoreConfig{
			URI:        getEnv("MONGO_URI", ""),
			Host:       getEnv("MONGO_HOST", "localhost"),
			Port:       getEnv("MONGO_PORT", "27017"),
			Username:   getEnv("MONGO_USERNAME", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
			Database:   getEnv("MONGO_DATABASE", "scorecard"),
			AuthSource: getEnv("MONGO_AUTH_SOURCE", "admin"),
		},
		Mail: mailer.Config{
			APIKey:     getEnv("SENDGRID_API_KEY", ""),
			FromEmail:  getEnv("MAIL_FROM", ""),
			FromName:   getEnv("MAIL_FROM_NAME", "Scorecard"),
			Recipients: splitList(getEnv("MAIL_RECIPIENTS", "")),
		},
		Thresholds: stats.Thresholds{
			Good:    getEnvFloat("THRESHOLD_GOOD", 97),
			Warning: getEnvFloat("THRESHOLD_WARNING", 90),
		},
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		CronSpec: getEnv("SNAPSHOT_CRON", ""),
		Goal:     getEnvFloat("COMPLIANCE_GOAL", DefaultGoal),
		DataPath: dataPath,
		LogDir:   logDir,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
