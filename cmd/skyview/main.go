// Package main is the entry point for the interactive sky viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/app"
	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Sky ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	mgr, err := app.NewAssets(cfg)
	if err != nil {
		logger.Error("failed to open assets", zap.Error(err))
		os.Exit(1)
	}
	defer mgr.Close()

	control, err := app.NewSky(cfg, mgr)
	if err != nil {
		logger.Error("failed to create sky", zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, control)
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
