package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/midgard-sky/internal/sky"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Sky.Hour != 9 {
		t.Errorf("expected hour 9, got %v", cfg.Sky.Hour)
	}
	if cfg.Sky.Phase != "full" {
		t.Errorf("expected full moon, got %s", cfg.Sky.Phase)
	}
	if len(cfg.Sky.Clouds) != 1 {
		t.Errorf("expected one default cloud layer, got %d", len(cfg.Sky.Clouds))
	}
	if cfg.Dome.MeridianSamples != 16 || cfg.Dome.EquatorSamples != 64 {
		t.Errorf("unexpected dome samples %+v", cfg.Dome)
	}
	if cfg.Render.Projection != "dome" {
		t.Errorf("expected dome projection, got %s", cfg.Render.Projection)
	}
	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720 window, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sky.yaml")

	yamlContent := `
sky:
  hour: 18.5
  latitude: -33.9
  date: "06-21"
  phase: waxing-crescent
  haze:
    opacity: 0.4
  palette:
    day: "#4080ff"
  clouds:
    - name: cirrus
      texture: sky/cirrus.png
      opacity: 0.3
      scale: 1.2
      drift: [0.05, 0]

dome:
  meridian_samples: 8

render:
  width: 640
  height: 320
  projection: panorama
  bloom: 0

graphics:
  fullscreen: true
  vsync: false
  fps_limit: 144

assets:
  roots: [data, mods]

logging:
  level: "debug"
  log_file: "sky.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Sky.Hour != 18.5 {
		t.Errorf("expected hour 18.5, got %v", cfg.Sky.Hour)
	}
	if cfg.Sky.Latitude != -33.9 {
		t.Errorf("expected latitude -33.9, got %v", cfg.Sky.Latitude)
	}
	if cfg.Sky.Haze.Opacity != 0.4 || cfg.Sky.Haze.Height != 30 {
		t.Errorf("haze = %+v, want opacity from file and default height", cfg.Sky.Haze)
	}
	if cfg.Sky.Palette.Day != "#4080ff" || cfg.Sky.Palette.Night != sky.DefaultPaletteHex().Night {
		t.Errorf("palette merge failed: %+v", cfg.Sky.Palette)
	}
	if len(cfg.Sky.Clouds) != 1 || cfg.Sky.Clouds[0].Name != "cirrus" || cfg.Sky.Clouds[0].Drift[0] != 0.05 {
		t.Errorf("clouds = %+v", cfg.Sky.Clouds)
	}
	if cfg.Dome.MeridianSamples != 8 || cfg.Dome.EquatorSamples != 64 {
		t.Errorf("dome = %+v", cfg.Dome)
	}
	if cfg.Render.Projection != "panorama" || cfg.Render.Bloom != 0 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if !cfg.Graphics.Fullscreen || cfg.Graphics.VSync || cfg.Graphics.FPSLimit != 144 {
		t.Errorf("graphics = %+v", cfg.Graphics)
	}
	if len(cfg.Assets.Roots) != 2 || cfg.Assets.Roots[1] != "mods" {
		t.Errorf("asset roots = %v", cfg.Assets.Roots)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "sky.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}

	p, err := cfg.SkyParams()
	if err != nil {
		t.Fatalf("SkyParams() error = %v", err)
	}
	if p.Month != time.June || p.Day != 21 {
		t.Errorf("date = %v %d, want June 21", p.Month, p.Day)
	}
	if p.Phase != sky.PhaseWaxingCrescent {
		t.Errorf("phase = %v", p.Phase)
	}
	if p.Clouds[0].Scale != 1.2 {
		t.Errorf("cloud scale = %v", p.Clouds[0].Scale)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	tests := map[string]string{
		"syntax":      "sky:\n  hour: not a number\n  invalid syntax here\n",
		"unknown key": "sky:\n  hours: 3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, strings.ReplaceAll(name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Errorf("empty file should load, got %v", err)
	}
	if cfg.Sky.Hour != 9 {
		t.Error("empty file changed defaults")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/sky.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"dome samples", func(c *Config) { c.Dome.EquatorSamples = 2 }, "dome"},
		{"latitude", func(c *Config) { c.Sky.Latitude = 120 }, "latitude"},
		{"phase", func(c *Config) { c.Sky.Phase = "harvest" }, "harvest"},
		{"date", func(c *Config) { c.Sky.Date = "2024-06-21" }, "MM-DD"},
		{"palette", func(c *Config) { c.Sky.Palette.Twilight = "orange" }, "twilight"},
		{"cloud coverage", func(c *Config) { c.Sky.Clouds[0].Coverage = 3 }, "coverage"},
		{"cloud layers", func(c *Config) {
			for len(c.Sky.Clouds) <= sky.MaxObjects-3 {
				c.Sky.Clouds = append(c.Sky.Clouds, c.Sky.Clouds[0])
			}
		}, "cloud layers"},
		{"projection", func(c *Config) { c.Render.Projection = "fisheye" }, "fisheye"},
		{"ground", func(c *Config) { c.Render.Ground = "mud" }, "ground"},
		{"render size", func(c *Config) { c.Render.Width = 0 }, "image size"},
		{"bloom", func(c *Config) { c.Render.Bloom = -2 }, "bloom"},
		{"window", func(c *Config) { c.Graphics.Height = -1 }, "window"},
		{"fov", func(c *Config) { c.Graphics.FOV = 200 }, "field of view"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Sky.Latitude = 100
	cfg.Graphics.Width = 0
	err := cfg.Validate()
	if err == nil || !errors.Is(err, sky.ErrInvalidConfig) || !strings.Contains(err.Error(), "window") {
		t.Errorf("Validate() should report every problem, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	m, d, err := ParseDate("12-25")
	if err != nil || m != time.December || d != 25 {
		t.Errorf("ParseDate(12-25) = %v %d %v", m, d, err)
	}
	m, d, err = ParseDate("")
	if err != nil || m != 0 || d != 0 {
		t.Errorf("ParseDate(empty) = %v %d %v", m, d, err)
	}
	if _, _, err := ParseDate("13-01"); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "sky.yaml"), []byte("sky:\n  hour: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find sky.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sky.yaml")
	cfg := Default()
	cfg.Sky.Hour = 21
	cfg.Sky.Phase = "new"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if loaded.Sky.Hour != 21 || loaded.Sky.Phase != "new" {
		t.Errorf("reloaded sky = %+v", loaded.Sky)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Render.Width != 2560 {
					t.Errorf("width = %d/%d, want 2560", cfg.Graphics.Width, cfg.Render.Width)
				}
				if cfg.Graphics.Height != 1440 || cfg.Render.Height != 1440 {
					t.Errorf("height = %d/%d, want 1440", cfg.Graphics.Height, cfg.Render.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "sky flags",
			setup: func() {
				*flagHour = 0
				*flagLatitude = -10
				*flagPhase = "new"
				*flagTimeScale = 0
				*flagDate = "01-15"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sky.Hour != 0 {
					t.Errorf("hour = %v, want 0", cfg.Sky.Hour)
				}
				if cfg.Sky.Latitude != -10 {
					t.Errorf("latitude = %v, want -10", cfg.Sky.Latitude)
				}
				if cfg.Sky.Phase != "new" || cfg.Sky.TimeScale != 0 || cfg.Sky.Date != "01-15" {
					t.Errorf("sky = %+v", cfg.Sky)
				}
			},
			teardown: func() {
				*flagHour = -1
				*flagLatitude = math.NaN()
				*flagPhase = ""
				*flagTimeScale = -1
				*flagDate = ""
			},
		},
		{
			name: "render flags",
			setup: func() {
				*flagProjection = "panorama"
				*flagOutput = "out.png"
				*flagBloom = 0
				*flagAssets = "extra"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Projection != "panorama" || cfg.Render.Output != "out.png" || cfg.Render.Bloom != 0 {
					t.Errorf("render = %+v", cfg.Render)
				}
				if len(cfg.Assets.Roots) != 1 || cfg.Assets.Roots[0] != "extra" {
					t.Errorf("asset roots = %v", cfg.Assets.Roots)
				}
			},
			teardown: func() {
				*flagProjection = ""
				*flagOutput = ""
				*flagBloom = -1
				*flagAssets = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sky.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sky.yaml")
	if err := os.WriteFile(configPath, []byte("sky:\n  latitude: 200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("Load() accepted an out-of-range latitude")
	}
}
