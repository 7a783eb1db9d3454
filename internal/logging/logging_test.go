package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	if got := StateDir(); got != filepath.Join(dir, "lyr") {
		t.Errorf("StateDir() = %q", got)
	}
	if got := DefaultFile(); got != filepath.Join(dir, "lyr", "lyr.log") {
		t.Errorf("DefaultFile() = %q", got)
	}
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lyr.log")

	logger, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("subtitles loaded")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var entry map[string]any
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "subtitles loaded" || entry["level"] != "debug" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if s, _ := entry["session"].(string); len(s) != 36 {
		t.Errorf("session id = %v", entry["session"])
	}
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyr.log")
	logger, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("level filtering failed: %s", data)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Error("expected error for bad level")
	}
}
