// Package main is the entry point for the skeleton viewer.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-skel/internal/config"
	"github.com/Faultbox/midgard-skel/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Skeleton Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.OpenDialog() {
		// before SDL init, so the dialog owns the main thread
		filename, err := dialog.File().
			Filter("Rig files", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Rig").
			Load()
		switch {
		case err == nil:
			cfg.Rig.Path = filename
		case err != dialog.ErrCancelled:
			logger.Warn("file dialog failed", zap.Error(err))
		}
	}

	v, err := newViewer(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
