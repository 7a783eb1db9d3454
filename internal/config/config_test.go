package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if cfg.Player.Backend != "ffplay" || cfg.PollInterval() != 250*time.Millisecond {
		t.Errorf("unexpected defaults: %+v", cfg.Player)
	}
}

func TestLoadDefaultPathFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "lyr", "config.toml")
	if got := DefaultConfigPath(); got != path {
		t.Fatalf("DefaultConfigPath() = %q, want %q", got, path)
	}

	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("[player]\nbackend = \"silent\"\n"), 0o644)

	cfg, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || cfg.Player.Backend != "silent" {
		t.Errorf("exists=%v backend=%q", exists, cfg.Player.Backend)
	}
	// Unset fields keep their defaults.
	if cfg.Player.SeekStepSeconds != 5 || cfg.Display.HighlightColor != "#FFAA00" {
		t.Errorf("defaults lost: %+v %+v", cfg.Player, cfg.Display)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[player]
backend = " Silent "
poll_interval_ms = 100
seek_step_seconds = 2.5

[display]
highlight_color = "#00FF00"

[logging]
level = "DEBUG"
file = "/tmp/lyr.log"
`
	os.WriteFile(path, []byte(content), 0o644)

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Player.Backend != "silent" {
		t.Errorf("backend = %q", cfg.Player.Backend)
	}
	if cfg.PollInterval() != 100*time.Millisecond || cfg.Player.SeekStepSeconds != 2.5 {
		t.Errorf("player = %+v", cfg.Player)
	}
	if cfg.Display.HighlightColor != "#00FF00" || cfg.Display.DimColor != "#888888" {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/lyr.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad backend", "[player]\nbackend = \"vinyl\"\n", "player.backend"},
		{"bad poll", "[player]\npoll_interval_ms = 1\n", "poll_interval_ms"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"bad toml", "[player\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte(tt.content), 0o644)
			_, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.errPart)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Error("sample config not found after writing")
	}
	if *cfg != Default() {
		t.Errorf("sample config differs from defaults: %+v", *cfg)
	}
}
