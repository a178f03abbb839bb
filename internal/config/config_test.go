package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouchTrails/internal/state"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Trail.Expiry)
	assert.Equal(t, 30.0, cfg.Trail.DefaultRadius)
	assert.Equal(t, state.Blue, cfg.InitialColor())
	assert.Equal(t, time.Second/60, cfg.FrameInterval())

	s := cfg.Settings()
	assert.Equal(t, state.ToolbarBounds{Width: 100, Top: 50, Bottom: 450}, s.Toolbar.Bounds)
	assert.Equal(t, []state.Color{state.Red, state.Blue, state.Yellow, state.Black, state.Purple, state.Orange, state.Green}, s.Toolbar.Palette)
	assert.Equal(t, 54.0, s.Toolbar.RowHeight)
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[trail]
expiry = "250ms"
max_history = 64

[toolbar]
palette = ["green", "Orange"]
initial_color = "orange"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Trail.Expiry)
	assert.Equal(t, 64, cfg.Settings().MaxHistory)
	assert.Equal(t, []state.Color{state.Green, state.Orange}, cfg.Palette())
	assert.Equal(t, state.Orange, cfg.InitialColor())
	assert.Equal(t, "json", cfg.Logging.Format)
	// Untouched sections keep their defaults.
	assert.Equal(t, 60, cfg.Display.FPS)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Trail, cfg.Trail)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[trail]\nexpirey = \"1s\"\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown keys")
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[trail\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOUCHTRAILS_EXPIRY", "2s")
	t.Setenv("TOUCHTRAILS_PALETTE", "black,white")
	t.Setenv("TOUCHTRAILS_INITIAL_COLOR", "white")
	t.Setenv("TOUCHTRAILS_FPS", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Trail.Expiry)
	assert.Equal(t, []state.Color{state.Black, state.White}, cfg.Palette())
	assert.Equal(t, state.White, cfg.InitialColor())
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("TOUCHTRAILS_FPS", "fast")
	_, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero expiry", func(c *Config) { c.Trail.Expiry = 0 }, "trail.expiry"},
		{"zero radius", func(c *Config) { c.Trail.DefaultRadius = 0 }, "trail.default_radius"},
		{"small snap", func(c *Config) { c.Trail.SnapFactor = 0.5 }, "trail.snap_factor"},
		{"negative history", func(c *Config) { c.Trail.MaxHistory = -1 }, "trail.max_history"},
		{"zero width", func(c *Config) { c.Toolbar.Width = 0 }, "toolbar.width"},
		{"inverted band", func(c *Config) { c.Toolbar.Bottom = c.Toolbar.Top }, "toolbar.bottom"},
		{"zero row", func(c *Config) { c.Toolbar.RowHeight = 0 }, "toolbar.row_height"},
		{"empty palette", func(c *Config) { c.Toolbar.Palette = nil }, "toolbar.palette"},
		{"unknown color", func(c *Config) { c.Toolbar.Palette = []string{"red", "mauve"} }, "toolbar.palette[1]"},
		{"unknown initial", func(c *Config) { c.Toolbar.InitialColor = "teal" }, "toolbar.initial_color"},
		{"fps", func(c *Config) { c.Display.FPS = 0 }, "display.fps"},
		{"window", func(c *Config) { c.Display.Height = 0 }, "display"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Trail.Expiry = 0
	cfg.Display.FPS = 0

	var verrs ValidationErrors
	require.ErrorAs(t, cfg.Validate(), &verrs)
	assert.Len(t, verrs, 2)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[trail]\nexpiry = \"1s\"\n")

	var mu sync.Mutex
	var got []*Config
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, path, func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, c)
	}, nil))

	require.NoError(t, os.WriteFile(path, []byte("[trail]\nexpiry = \"300ms\"\n"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0 && got[len(got)-1].Trail.Expiry == 300*time.Millisecond
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchReportsInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	errs := make(chan error, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, path, func(*Config) {
		t.Error("invalid config must not be delivered")
	}, func(err error) { errs <- err }))

	require.NoError(t, os.WriteFile(path, []byte("[trail]\nexpiry = \"0s\"\n"), 0o600))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "trail.expiry")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error reported")
	}
}
