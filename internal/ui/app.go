package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"TouchTrails/internal/config"
	"TouchTrails/internal/state"
)

// StyleFrom extracts the renderer settings from cfg.
func StyleFrom(cfg *config.Config) Style {
	return Style{
		DefaultRadius: cfg.Trail.DefaultRadius,
		SnapFactor:    cfg.Trail.SnapFactor,
		ShowFPS:       cfg.Display.ShowFPS,
	}
}

// RunApp opens the window and blocks until it is closed. When cfgPath is
// set, edits to that file are applied while running.
func RunApp(cfg *config.Config, cfgPath string, board *state.Board, clock state.Clock, logger *slog.Logger) {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Display.Title)
	myWindow.Resize(fyne.NewSize(cfg.Display.Width, cfg.Display.Height))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var surface *TouchSurface
	loop := state.NewLoop(clock, cfg.FrameInterval(), func(state.Phase) {
		fyne.Do(func() { surface.Tick(clock.Now()) })
	})
	surface = NewTouchSurface(board, clock, StyleFrom(cfg), loop.FPS, logger)

	exportDir := cfg.Export.Dir
	myWindow.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name != fyne.KeyP {
			return
		}
		if _, err := surface.ExportSnapshot(exportDir); err != nil {
			logger.Error("snapshot failed", "error", err)
		}
	})

	if cfgPath != "" {
		err := config.Watch(ctx, cfgPath, func(c *config.Config) {
			fyne.Do(func() {
				board.Reconfigure(c.Settings())
				surface.SetStyle(StyleFrom(c))
				exportDir = c.Export.Dir
			})
		}, func(err error) {
			logger.Warn("config reload rejected", "error", err)
		})
		if err != nil {
			logger.Warn("config watch disabled", "error", err)
		}
	}

	go func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("redraw loop stopped", "error", err)
		}
	}()

	myWindow.SetContent(surface)
	myWindow.SetOnClosed(cancel)
	logger.Info("window open", "fps", cfg.Display.FPS, "expiry", cfg.Trail.Expiry)
	myWindow.ShowAndRun()
}
