// Package main renders the configured sky to PNG files without a GPU.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/app"
	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/engine/debug"
	"github.com/Faultbox/midgard-sky/internal/logger"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	mgr, err := app.NewAssets(cfg)
	if err != nil {
		return err
	}
	defer mgr.Close()

	control, err := app.NewSky(cfg, mgr)
	if err != nil {
		return err
	}
	renderer, err := cfg.Renderer()
	if err != nil {
		return err
	}

	frame := control.Frame()
	phase, _ := control.Phase()
	logger.Info("rendering sky",
		zap.Float32("hour", control.Hour()),
		zap.Stringer("phase", phase),
		zap.Stringer("projection", renderer.Projection),
		zap.Int("width", renderer.Width),
		zap.Int("height", renderer.Height))

	start := time.Now()
	images, err := renderer.Render(ctx, &frame)
	if err != nil {
		return err
	}
	logger.Info("sky rendered", zap.Duration("elapsed", time.Since(start)))

	color := images.Bloom(cfg.Render.Bloom)
	if err := debug.WritePNG(cfg.Render.Output, color); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Render.Output, err)
	}
	logger.Info("wrote color image", zap.String("path", cfg.Render.Output))

	if cfg.Render.GlowOutput != "" {
		if err := debug.WritePNG(cfg.Render.GlowOutput, images.Glow); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Render.GlowOutput, err)
		}
		logger.Info("wrote glow image", zap.String("path", cfg.Render.GlowOutput))
	}
	return nil
}
