// Package config loads lyr settings from a TOML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Player contains playback backend settings.
type Player struct {
	Backend         string  `toml:"backend"`
	FFplayPath      string  `toml:"ffplay_path"`
	PollIntervalMS  int     `toml:"poll_interval_ms"`
	SeekStepSeconds float64 `toml:"seek_step_seconds"`
}

// Display contains colors for the lyric list.
type Display struct {
	HighlightColor string `toml:"highlight_color"`
	DimColor       string `toml:"dim_color"`
}

// Logging contains log output settings.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config encapsulates all configuration values for lyr.
type Config struct {
	Player  Player  `toml:"player"`
	Display Display `toml:"display"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Player: Player{
			Backend:         "ffplay",
			FFplayPath:      "ffplay",
			PollIntervalMS:  250,
			SeekStepSeconds: 5,
		},
		Display: Display{
			HighlightColor: "#FFAA00",
			DimColor:       "#888888",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/lyr/config.toml or ~/.config/lyr/config.toml.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lyr", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lyr", "config.toml")
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file yields the defaults. The bool reports whether a file
// was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}

	exists := true
	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

func (c *Config) normalize() {
	def := Default()
	c.Player.Backend = strings.ToLower(strings.TrimSpace(c.Player.Backend))
	if c.Player.Backend == "" {
		c.Player.Backend = def.Player.Backend
	}
	if strings.TrimSpace(c.Player.FFplayPath) == "" {
		c.Player.FFplayPath = def.Player.FFplayPath
	}
	if c.Player.PollIntervalMS == 0 {
		c.Player.PollIntervalMS = def.Player.PollIntervalMS
	}
	if c.Player.SeekStepSeconds == 0 {
		c.Player.SeekStepSeconds = def.Player.SeekStepSeconds
	}
	if c.Display.HighlightColor == "" {
		c.Display.HighlightColor = def.Display.HighlightColor
	}
	if c.Display.DimColor == "" {
		c.Display.DimColor = def.Display.DimColor
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	switch c.Player.Backend {
	case "ffplay", "silent":
	default:
		return fmt.Errorf("player.backend: unsupported value %q", c.Player.Backend)
	}
	if c.Player.PollIntervalMS < 10 || c.Player.PollIntervalMS > 5000 {
		return fmt.Errorf("player.poll_interval_ms: %d out of range 10-5000", c.Player.PollIntervalMS)
	}
	if c.Player.SeekStepSeconds < 0 {
		return fmt.Errorf("player.seek_step_seconds: must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// PollInterval returns the position poll interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Player.PollIntervalMS) * time.Millisecond
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
