package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{5, 1, 10, 5},
		{-3, 1, 10, 1},
		{42, 1, 10, 10},
	}
	for _, tc := range cases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/config")
	if got := DataDir("pomo"); got != filepath.Join("/tmp/data", "pomo") {
		t.Fatalf("DataDir = %q", got)
	}
	if got := ConfigDir("pomo"); got != filepath.Join("/tmp/config", "pomo") {
		t.Fatalf("ConfigDir = %q", got)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	if got := DataDir("pomo"); got != filepath.Join(home, ".local", "share", "pomo") {
		t.Fatalf("DataDir fallback = %q", got)
	}
}

func TestReportsDirUsesUserDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DOCUMENTS_DIR", "")
	if err := os.MkdirAll(filepath.Join(home, ".config"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	dirs := "# generated\nXDG_DOCUMENTS_DIR=\"$HOME/Docs\"\n"
	if err := os.WriteFile(filepath.Join(home, ".config", "user-dirs.dirs"), []byte(dirs), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := ReportsDir("pomo"); got != filepath.Join(home, "Docs", "POMO") {
		t.Fatalf("ReportsDir = %q", got)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pomo.log")
	logger, closer, err := NewLogger("info", path, nil)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Debug().Msg("hidden")
	logger.Info().Str("k", "v").Msg("shown")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["k"] != "v" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, _, err := NewLogger("loud", "", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestComponentAndLogError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger, _, _ = NewLogger("debug", "", &buf)

	l := Component("store")
	l.Info().Msg("opened")
	LogError("close failed", errors.New("boom"))
	LogError("ignored", nil)

	out := buf.String()
	if !strings.Contains(out, `"cmp":"store"`) {
		t.Fatalf("missing component field: %s", out)
	}
	if !strings.Contains(out, `"error":"boom"`) || strings.Contains(out, "ignored") {
		t.Fatalf("unexpected LogError output: %s", out)
	}
}
