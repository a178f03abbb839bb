package main

import (
	"flag"
	"log"
	"os"

	"TouchTrails/internal/config"
	"TouchTrails/internal/logging"
	"TouchTrails/internal/state"
	"TouchTrails/internal/ui"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.FromStrings(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	logger.Info("starting", "config", *cfgPath)

	board := state.NewBoard(state.Options{
		Settings:     cfg.Settings(),
		InitialColor: cfg.InitialColor(),
		Logger:       logging.Component(logger, "board"),
	})

	watchPath := *cfgPath
	if _, err := os.Stat(watchPath); err != nil {
		watchPath = ""
	}
	ui.RunApp(cfg, watchPath, board, state.NewSystemClock(), logging.Component(logger, "ui"))
}
