package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestResolveLogDir(t *testing.T) {
	t.Setenv("LOG_DIR", "/var/log/scorecard")
	t.Setenv("DATA_PATH", "/data")
	if got := resolveLogDir("/opt/bin/scorecard", nil); got != "/var/log/scorecard" {
		t.Errorf("LOG_DIR must win, got %s", got)
	}

	t.Setenv("LOG_DIR", "")
	if got := resolveLogDir("/opt/bin/scorecard", nil); got != filepath.Join("/data", "logs") {
		t.Errorf("Expected DATA_PATH/logs, got %s", got)
	}

	t.Setenv("DATA_PATH", "")
	if got := resolveLogDir("/opt/bin/scorecard", nil); got != filepath.Join("/opt/bin", "logs") {
		t.Errorf("Expected binary-relative logs dir, got %s", got)
	}

	if got := resolveLogDir("", errors.New("no executable")); got != "logs" {
		t.Errorf("Expected plain logs fallback, got %s", got)
	}
}

func TestInitWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)

	Init(false)
	log.Info().Str("check", "file-sink").Msg("logging initialized")

	data, err := os.ReadFile(filepath.Join(dir, "scorecard.log"))
	if err != nil {
		t.Fatalf("Expected scorecard.log in %s: %v", dir, err)
	}
	if !strings.Contains(string(data), "file-sink") {
		t.Errorf("Log line missing from file sink: %s", data)
	}
}

func TestInitDebugLevelOnlyWhenVerbose(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)

	Init(false)
	log.Debug().Msg("hidden at info level")
	Init(true)
	log.Debug().Msg("visible at debug level")

	data, err := os.ReadFile(filepath.Join(dir, "scorecard.log"))
	if err != nil {
		t.Fatalf("Expected scorecard.log in %s: %v", dir, err)
	}
	if strings.Contains(string(data), "hidden at info level") {
		t.Error("Debug line leaked without verbose")
	}
	if !strings.Contains(string(data), "visible at debug level") {
		t.Error("Debug line missing with verbose")
	}
}
