package config

import (
	"fmt"
	"strings"

	"TouchTrails/internal/state"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Trail.Expiry <= 0 {
		add("trail.expiry", "must be positive, got %v", c.Trail.Expiry)
	}
	if c.Trail.DefaultRadius <= 0 {
		add("trail.default_radius", "must be positive, got %v", c.Trail.DefaultRadius)
	}
	if c.Trail.SnapFactor < 1 {
		add("trail.snap_factor", "must be at least 1, got %v", c.Trail.SnapFactor)
	}
	if c.Trail.MaxHistory < 0 {
		add("trail.max_history", "must not be negative, got %d", c.Trail.MaxHistory)
	}

	if c.Toolbar.Width <= 0 {
		add("toolbar.width", "must be positive, got %v", c.Toolbar.Width)
	}
	if c.Toolbar.Bottom <= c.Toolbar.Top {
		add("toolbar.bottom", "must be below top (%v), got %v", c.Toolbar.Top, c.Toolbar.Bottom)
	}
	if c.Toolbar.RowHeight <= 0 {
		add("toolbar.row_height", "must be positive, got %v", c.Toolbar.RowHeight)
	}
	if len(c.Toolbar.Palette) == 0 {
		add("toolbar.palette", "must hold at least one color")
	}
	for i, name := range c.Toolbar.Palette {
		if _, err := state.ParseColor(name); err != nil {
			add(fmt.Sprintf("toolbar.palette[%d]", i), "%v", err)
		}
	}
	if _, err := state.ParseColor(c.Toolbar.InitialColor); err != nil {
		add("toolbar.initial_color", "%v", err)
	}

	if c.Display.FPS <= 0 || c.Display.FPS > 240 {
		add("display.fps", "must be in 1..240, got %d", c.Display.FPS)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		add("display", "window size must be positive, got %vx%v", c.Display.Width, c.Display.Height)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		add("logging.format", "must be text or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "unknown level %q", c.Logging.Level)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
