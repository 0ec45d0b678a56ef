package config

import (
	"flag"
	"math"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window or image width")
	flagHeight     = flag.Int("height", 0, "Window or image height")
	flagHour       = flag.Float64("hour", -1, "Local solar time, 0-24")
	flagLatitude   = flag.Float64("latitude", math.NaN(), "Observer latitude in degrees")
	flagDate       = flag.String("date", "", "Calendar date as MM-DD")
	flagPhase      = flag.String("phase", "", "Lunar phase (full, new, first-quarter, ...)")
	flagTimeScale  = flag.Float64("time-scale", -1, "Simulated seconds per real second")
	flagProjection = flag.String("projection", "", "Render projection: dome, panorama or perspective")
	flagOutput     = flag.String("out", "", "Output PNG path")
	flagBloom      = flag.Float64("bloom", -1, "Bloom blur radius in pixels (0 disables)")
	flagAssets     = flag.String("assets", "", "Extra asset directory, searched first")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
		cfg.Render.Height = *flagHeight
	}
	if *flagHour >= 0 {
		cfg.Sky.Hour = float32(*flagHour)
	}
	if !math.IsNaN(*flagLatitude) {
		cfg.Sky.Latitude = float32(*flagLatitude)
	}
	if *flagDate != "" {
		cfg.Sky.Date = *flagDate
	}
	if *flagPhase != "" {
		cfg.Sky.Phase = *flagPhase
	}
	if *flagTimeScale >= 0 {
		cfg.Sky.TimeScale = float32(*flagTimeScale)
	}
	if *flagProjection != "" {
		cfg.Render.Projection = *flagProjection
	}
	if *flagOutput != "" {
		cfg.Render.Output = *flagOutput
	}
	if *flagBloom >= 0 {
		cfg.Render.Bloom = *flagBloom
	}
	if *flagAssets != "" {
		cfg.Assets.Roots = append(cfg.Assets.Roots, *flagAssets)
	}
}
