// Package config handles configuration loading and validation for touchtrails.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"TouchTrails/internal/state"
)

// Config is the full application configuration.
type Config struct {
	// Trail controls contact histories and ghosts.
	Trail TrailConfig `toml:"trail"`

	// Toolbar controls the color palette band.
	Toolbar ToolbarConfig `toml:"toolbar"`

	// Display controls the window and redraw loop.
	Display DisplayConfig `toml:"display"`

	// Logging controls log output.
	Logging LoggingConfig `toml:"logging"`

	// Export controls frame snapshots.
	Export ExportConfig `toml:"export"`
}

// TrailConfig holds the ghost and trail tunables.
type TrailConfig struct {
	// Expiry is how long ghosts and trail points stay visible.
	Expiry time.Duration `toml:"expiry" env:"TOUCHTRAILS_EXPIRY"`

	// DefaultRadius is drawn when a device reports no contact radii.
	DefaultRadius float64 `toml:"default_radius" env:"TOUCHTRAILS_DEFAULT_RADIUS"`

	// SnapFactor bounds how far a trail segment may be stretched, as a
	// multiple of the display radius.
	SnapFactor float64 `toml:"snap_factor" env:"TOUCHTRAILS_SNAP_FACTOR"`

	// MaxHistory caps points per contact; 0 disables the cap.
	MaxHistory int `toml:"max_history" env:"TOUCHTRAILS_MAX_HISTORY"`
}

// ToolbarConfig holds the palette geometry.
type ToolbarConfig struct {
	Width        float64  `toml:"width" env:"TOUCHTRAILS_TOOLBAR_WIDTH"`
	Top          float64  `toml:"top" env:"TOUCHTRAILS_TOOLBAR_TOP"`
	Bottom       float64  `toml:"bottom" env:"TOUCHTRAILS_TOOLBAR_BOTTOM"`
	RowHeight    float64  `toml:"row_height" env:"TOUCHTRAILS_TOOLBAR_ROW_HEIGHT"`
	Palette      []string `toml:"palette" env:"TOUCHTRAILS_PALETTE" envSeparator:","`
	InitialColor string   `toml:"initial_color" env:"TOUCHTRAILS_INITIAL_COLOR"`
}

// DisplayConfig holds window and loop settings.
type DisplayConfig struct {
	Title   string  `toml:"title" env:"TOUCHTRAILS_TITLE"`
	Width   float32 `toml:"width" env:"TOUCHTRAILS_WIDTH"`
	Height  float32 `toml:"height" env:"TOUCHTRAILS_HEIGHT"`
	FPS     int     `toml:"fps" env:"TOUCHTRAILS_FPS"`
	ShowFPS bool    `toml:"show_fps" env:"TOUCHTRAILS_SHOW_FPS"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" env:"TOUCHTRAILS_LOG_LEVEL"`

	// Format is text or json.
	Format string `toml:"format" env:"TOUCHTRAILS_LOG_FORMAT"`
}

// ExportConfig holds PDF snapshot settings.
type ExportConfig struct {
	// Dir is where snapshots are written.
	Dir string `toml:"dir" env:"TOUCHTRAILS_EXPORT_DIR"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Trail: TrailConfig{
			Expiry:        time.Second,
			DefaultRadius: 30,
			SnapFactor:    3,
			MaxHistory:    0,
		},
		Toolbar: ToolbarConfig{
			Width:        100,
			Top:          50,
			Bottom:       450,
			RowHeight:    54,
			Palette:      []string{"red", "blue", "yellow", "black", "purple", "orange", "green"},
			InitialColor: "blue",
		},
		Display: DisplayConfig{
			Title:   "Touch Trails",
			Width:   1024,
			Height:  768,
			FPS:     60,
			ShowFPS: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Export: ExportConfig{
			Dir: os.TempDir(),
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "touchtrails", "config.toml")
}

// Load builds a config from defaults, the TOML file at path (if it exists)
// and environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays TOUCHTRAILS_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Palette returns the parsed palette. Call after Validate.
func (c *Config) Palette() []state.Color {
	out := make([]state.Color, 0, len(c.Toolbar.Palette))
	for _, name := range c.Toolbar.Palette {
		if col, err := state.ParseColor(name); err == nil {
			out = append(out, col)
		}
	}
	return out
}

// Settings converts the config into the board's runtime tunables.
func (c *Config) Settings() state.Settings {
	return state.Settings{
		Expiry: c.Trail.Expiry,
		Toolbar: state.Toolbar{
			Bounds: state.ToolbarBounds{
				Width:  c.Toolbar.Width,
				Top:    c.Toolbar.Top,
				Bottom: c.Toolbar.Bottom,
			},
			Palette:   c.Palette(),
			RowHeight: c.Toolbar.RowHeight,
		},
		MaxHistory: c.Trail.MaxHistory,
	}
}

// InitialColor returns the starting brush color. Call after Validate.
func (c *Config) InitialColor() state.Color {
	col, err := state.ParseColor(c.Toolbar.InitialColor)
	if err != nil {
		return state.Blue
	}
	return col
}

// FrameInterval is the redraw period derived from Display.FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.Display.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Display.FPS)
}
