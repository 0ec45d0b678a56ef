// Package config handles sky configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-sky/internal/sky"
)

// Config holds every setting of the sky tools.
type Config struct {
	Sky      SkyConfig      `yaml:"sky"`
	Dome     DomeConfig     `yaml:"dome"`
	Render   RenderConfig   `yaml:"render"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SkyConfig holds the simulated sky: clock, observer, moon and weather.
type SkyConfig struct {
	Hour       float32        `yaml:"hour"`        // local solar time, 0..24
	TimeScale  float32        `yaml:"time_scale"`  // simulated seconds per real second
	Latitude   float32        `yaml:"latitude"`    // degrees, north positive
	Date       string         `yaml:"date"`        // "MM-DD"; empty means the March equinox
	Phase      string         `yaml:"phase"`       // lunar phase name, or "custom"
	PhaseAngle float32        `yaml:"phase_angle"` // degrees, used with phase "custom"
	SunSize    float32        `yaml:"sun_size"`    // dome-UV span
	MoonSize   float32        `yaml:"moon_size"`   // dome-UV span
	Stars      int            `yaml:"stars"`       // procedural star count
	StarSeed   uint64         `yaml:"star_seed"`
	Haze       HazeConfig     `yaml:"haze"`
	Palette    sky.PaletteHex `yaml:"palette"`
	Clouds     []CloudConfig  `yaml:"clouds"`

	// Optional image assets replacing the procedural textures.
	SunTexture   string `yaml:"sun_texture"`
	MoonTexture  string `yaml:"moon_texture"`
	StarsTexture string `yaml:"stars_texture"`
}

// HazeConfig holds the horizon haze.
type HazeConfig struct {
	Opacity float32 `yaml:"opacity"` // 0 disables the haze
	Height  float32 `yaml:"height"`  // degrees above the horizon where it fades out
}

// CloudConfig describes one cloud layer.
type CloudConfig struct {
	Name     string     `yaml:"name"`
	Texture  string     `yaml:"texture"`  // asset path; empty generates clouds
	Coverage float32    `yaml:"coverage"` // procedural clouds only
	Opacity  float32    `yaml:"opacity"`
	Scale    float32    `yaml:"scale"` // dome-UV span of one tile
	Drift    [2]float32 `yaml:"drift"` // dome-UV per simulated hour
}

// DomeConfig holds the dome tessellation.
type DomeConfig struct {
	MeridianSamples int     `yaml:"meridian_samples"`
	EquatorSamples  int     `yaml:"equator_samples"`
	Radius          float32 `yaml:"radius"`
	UVScale         float32 `yaml:"uv_scale"`
	Stretch         float32 `yaml:"stretch"`
}

// RenderConfig holds the offline renderer settings.
type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Projection string  `yaml:"projection"` // dome, panorama or perspective
	Workers    int     `yaml:"workers"`    // 0 uses every CPU
	Bloom      float64 `yaml:"bloom"`      // glow blur radius in pixels; 0 disables
	Output     string  `yaml:"output"`
	GlowOutput string  `yaml:"glow_output"` // optional separate glow image
	Ground     string  `yaml:"ground"`      // hex color below the horizon
	Yaw        float32 `yaml:"yaw"`
	Pitch      float32 `yaml:"pitch"`
	FOV        float32 `yaml:"fov"`
}

// GraphicsConfig holds the interactive viewer's display settings.
type GraphicsConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Fullscreen       bool    `yaml:"fullscreen"`
	VSync            bool    `yaml:"vsync"`
	FPSLimit         int     `yaml:"fps_limit"`
	FOV              float32 `yaml:"fov"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	Bloom            bool    `yaml:"bloom"`
}

// AssetsConfig lists texture search roots.
type AssetsConfig struct {
	Roots          []string `yaml:"roots"` // searched last to first
	MaxTextureSize int      `yaml:"max_texture_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sky: SkyConfig{
			Hour:      9,
			TimeScale: 60,
			Latitude:  45,
			Phase:     "full",
			SunSize:   0.09,
			MoonSize:  0.06,
			Stars:     1500,
			StarSeed:  1,
			Haze: HazeConfig{
				Opacity: 0.8,
				Height:  30,
			},
			Palette: sky.DefaultPaletteHex(),
			Clouds: []CloudConfig{
				{Name: "cumulus", Coverage: 0.45, Opacity: 0.85, Scale: 0.5, Drift: [2]float32{0.02, 0.005}},
			},
		},
		Dome: DomeConfig{
			MeridianSamples: 16,
			EquatorSamples:  64,
			Radius:          1000,
			UVScale:         0.44,
			Stretch:         0.3,
		},
		Render: RenderConfig{
			Width:      1024,
			Height:     1024,
			Projection: "dome",
			Bloom:      6,
			Output:     "sky.png",
			Ground:     "#1a1712",
			FOV:        75,
		},
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			VSync:            true,
			FOV:              70,
			MouseSensitivity: 0.2,
			Bloom:            true,
		},
		Assets: AssetsConfig{
			MaxTextureSize: 2048,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
