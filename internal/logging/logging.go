package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init wires the global logger to two sinks: a console writer on stderr and
// a rotating scorecard.log. Runs before config.Load, so it resolves its own
// directory from the environment.
func Init(verbose bool) {
	// Init precedes config.Load, so pull in a binary-relative .env for
	// LOG_DIR/DATA_PATH ourselves.
	exePath, exeErr := os.Executable()
	if exeErr == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	dir := resolveLogDir(exePath, exeErr)
	ensureWritable(dir)

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(consoleSink(), fileSink(dir))).
		With().
		Timestamp().
		Logger()
}

// resolveLogDir prefers LOG_DIR, then DATA_PATH/logs (the same root
// config.Load uses), then a logs directory next to the binary.
func resolveLogDir(exePath string, exeErr error) string {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir
	}
	if dataPath := os.Getenv("DATA_PATH"); dataPath != "" {
		return filepath.Join(dataPath, "logs")
	}
	if exeErr == nil {
		return filepath.Join(filepath.Dir(exePath), "logs")
	}
	return "logs"
}

// ensureWritable fails fast at startup rather than letting lumberjack drop
// every line later.
func ensureWritable(dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create log directory %q: %v\n", dir, err)
		os.Exit(1)
	}
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: log directory %q is not writable: %v\n", dir, err)
		os.Exit(1)
	}
	_ = os.Remove(testFile)
}

func consoleSink() zerolog.ConsoleWriter {
	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}
}

func fileSink(dir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, "scorecard.log"),
		MaxSize:    16, // megabytes
		MaxBackups: 32,
		MaxAge:     365, // days
		Compress:   true,
	}
}
