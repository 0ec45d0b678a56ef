package config

import (
	"errors"
	"fmt"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/midgard-sky/internal/sky"
	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
	"github.com/Faultbox/midgard-sky/pkg/sky/dome"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if err := c.DomeParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("dome: %w", err))
	}
	if _, err := c.SkyParams(); err != nil {
		errs = append(errs, fmt.Errorf("sky: %w", err))
	}
	// Stars, sun and moon take three of the composited slots.
	if maxClouds := sky.MaxObjects - 3; len(c.Sky.Clouds) > maxClouds {
		errs = append(errs, fmt.Errorf("sky: %d cloud layers, at most %d are drawn", len(c.Sky.Clouds), maxClouds))
	}
	for i, cl := range c.Sky.Clouds {
		if cl.Texture == "" && (cl.Coverage < 0 || cl.Coverage > 1) {
			errs = append(errs, fmt.Errorf("sky: cloud %d coverage %v outside [0,1]", i, cl.Coverage))
		}
	}
	if _, err := c.Renderer(); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if c.Render.Bloom < 0 {
		errs = append(errs, fmt.Errorf("render: bloom radius %v must not be negative", c.Render.Bloom))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if !(c.Graphics.FOV > 0 && c.Graphics.FOV < 180) {
		errs = append(errs, fmt.Errorf("graphics: field of view %v", c.Graphics.FOV))
	}
	if c.Assets.MaxTextureSize < 0 {
		errs = append(errs, fmt.Errorf("assets: max texture size %d", c.Assets.MaxTextureSize))
	}
	return errors.Join(errs...)
}

// DomeParams converts the dome section.
func (c *Config) DomeParams() dome.Params {
	d := c.Dome
	return dome.Params{
		MeridianSamples: d.MeridianSamples,
		EquatorSamples:  d.EquatorSamples,
		Radius:          d.Radius,
		UVScale:         d.UVScale,
		Stretch:         d.Stretch,
	}
}

// SkyParams converts the sky section. Cloud layers are returned without
// textures; callers attach them once the images are loaded or generated.
func (c *Config) SkyParams() (sky.Params, error) {
	s := c.Sky
	phase, err := sky.ParseLunarPhase(s.Phase)
	if err != nil {
		return sky.Params{}, fmt.Errorf("%w: %v", sky.ErrInvalidConfig, err)
	}
	month, day, err := ParseDate(s.Date)
	if err != nil {
		return sky.Params{}, err
	}
	palette, err := s.Palette.Parse()
	if err != nil {
		return sky.Params{}, err
	}

	p := sky.Params{
		Hour:        s.Hour,
		TimeScale:   s.TimeScale,
		Latitude:    s.Latitude,
		Month:       month,
		Day:         day,
		Phase:       phase,
		PhaseAngle:  skymath.DegToRad(s.PhaseAngle),
		SunSize:     s.SunSize,
		MoonSize:    s.MoonSize,
		StarCount:   s.Stars,
		StarSeed:    s.StarSeed,
		HazeOpacity: s.Haze.Opacity,
		HazeHeight:  s.Haze.Height,
		Palette:     palette,
		Mapping:     dome.Mapping{UVScale: c.Dome.UVScale, Stretch: c.Dome.Stretch},
	}
	for i, cl := range s.Clouds {
		name := cl.Name
		if name == "" {
			name = fmt.Sprintf("clouds-%d", i)
		}
		p.Clouds = append(p.Clouds, sky.CloudLayer{
			Name:    name,
			Opacity: cl.Opacity,
			Scale:   cl.Scale,
			Drift:   cl.Drift,
		})
	}
	return p, p.Validate()
}

// Renderer converts the render section.
func (c *Config) Renderer() (sky.Renderer, error) {
	r := c.Render
	proj, err := sky.ParseProjection(r.Projection)
	if err != nil {
		return sky.Renderer{}, err
	}
	ground := composite.Black
	if r.Ground != "" {
		g, err := colorful.Hex(r.Ground)
		if err != nil {
			return sky.Renderer{}, fmt.Errorf("ground color: %w", err)
		}
		ground = composite.RGB(float32(g.R), float32(g.G), float32(g.B))
	}
	if r.Width <= 0 || r.Height <= 0 {
		return sky.Renderer{}, fmt.Errorf("image size %dx%d", r.Width, r.Height)
	}
	if proj == sky.ProjectionPerspective && !(r.FOV > 0 && r.FOV < 180) {
		return sky.Renderer{}, fmt.Errorf("field of view %v", r.FOV)
	}
	return sky.Renderer{
		Width:      r.Width,
		Height:     r.Height,
		Projection: proj,
		Workers:    r.Workers,
		Ground:     ground,
		Yaw:        r.Yaw,
		Pitch:      r.Pitch,
		FOV:        r.FOV,
	}, nil
}

// ParseDate parses "MM-DD". An empty string returns a zero month.
func ParseDate(s string) (time.Month, int, error) {
	if s == "" {
		return 0, 0, nil
	}
	t, err := time.Parse("01-02", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: date %q must be MM-DD", sky.ErrInvalidConfig, s)
	}
	return t.Month(), t.Day(), nil
}
