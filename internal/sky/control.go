package sky

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/engine/lighting"
	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	"github.com/Faultbox/midgard-sky/internal/logger"
	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
	"github.com/Faultbox/midgard-sky/pkg/sky/dome"
	"github.com/Faultbox/midgard-sky/pkg/sky/placement"
)

// Object depths, farthest first.
const (
	DepthStars      = 300
	DepthSun        = 200
	DepthMoon       = 150
	DepthCloudsBase = 100 // cloud layer i sits at DepthCloudsBase-i
)

// Params configures a Control.
type Params struct {
	Hour        float32    // local solar time, 0..24
	TimeScale   float32    // simulated seconds per real second
	Latitude    float32    // observer latitude in degrees
	Month       time.Month // date for the sun's declination; zero means the March equinox
	Day         int
	Phase       LunarPhase
	PhaseAngle  float32 // radians, used when Phase is PhaseCustom
	SunSize     float32 // dome-UV span of the sun texture
	MoonSize    float32 // dome-UV span of the moon texture
	StarCount   int
	StarSeed    uint64
	HazeOpacity float32 // 0 disables the haze
	HazeHeight  float32 // elevation in degrees where the haze fades out
	Palette     Palette
	Mapping     dome.Mapping
	Clouds      []CloudLayer
}

// DefaultParams returns a mid-morning sky over temperate latitudes.
func DefaultParams() Params {
	return Params{
		Hour:        9,
		TimeScale:   60,
		Latitude:    45,
		Phase:       PhaseFull,
		SunSize:     0.09,
		MoonSize:    0.06,
		StarCount:   1500,
		StarSeed:    1,
		HazeOpacity: 0.8,
		HazeHeight:  30,
		Palette:     DefaultPalette(),
		Mapping:     dome.DefaultMapping(),
	}
}

// Validate checks the parameters.
func (p *Params) Validate() error {
	if !skymath.IsFinite(p.Hour) {
		return fmt.Errorf("%w: hour %v", ErrInvalidConfig, p.Hour)
	}
	if p.TimeScale < 0 || !skymath.IsFinite(p.TimeScale) {
		return fmt.Errorf("%w: time scale %v must not be negative", ErrInvalidConfig, p.TimeScale)
	}
	if !(p.Latitude >= -90 && p.Latitude <= 90) {
		return fmt.Errorf("%w: latitude %v outside [-90,90]", ErrInvalidConfig, p.Latitude)
	}
	if p.Phase < 0 || p.Phase > PhaseCustom {
		return fmt.Errorf("%w: lunar phase %d", ErrInvalidConfig, int(p.Phase))
	}
	if !(p.SunSize > 0) || !(p.MoonSize > 0) || !skymath.IsFinite(p.SunSize) || !skymath.IsFinite(p.MoonSize) {
		return fmt.Errorf("%w: sun size %v and moon size %v must be positive", ErrInvalidConfig, p.SunSize, p.MoonSize)
	}
	if p.StarCount < 0 {
		return fmt.Errorf("%w: star count %d", ErrInvalidConfig, p.StarCount)
	}
	if p.HazeOpacity < 0 || p.HazeOpacity > 1 {
		return fmt.Errorf("%w: haze opacity %v outside [0,1]", ErrInvalidConfig, p.HazeOpacity)
	}
	if p.HazeOpacity > 0 && !(p.HazeHeight > 0) {
		return fmt.Errorf("%w: haze height %v must be positive", ErrInvalidConfig, p.HazeHeight)
	}
	if !(p.Mapping.UVScale > 0) || p.Mapping.UVScale > 0.5 || p.Mapping.Stretch < 0 {
		return fmt.Errorf("%w: dome mapping %+v", ErrInvalidConfig, p.Mapping)
	}
	for i := range p.Clouds {
		if err := p.Clouds[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Textures overrides the procedural sky textures. Nil fields use the
// built-in analytic sun and moon and a seeded star field.
type Textures struct {
	Sun   texture.Sampler
	Moon  texture.Sampler
	Stars texture.Sampler
}

// Control owns the simulated sky state and produces a Frame per render.
type Control struct {
	params    Params
	astro     lighting.SunAndStars
	updater   lighting.Updater
	phase     LunarPhase
	angle     float32
	timeScale float32
	paused    bool
	clouds    []CloudLayer
	textures  Textures
	sunUp     bool
	log       *zap.Logger
}

// New creates a controller from validated parameters.
func New(p Params, tex Textures) (*Control, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if tex.Sun == nil {
		tex.Sun = texture.SunDisc(composite.RGB(1, 0.96, 0.86))
	}
	if tex.Stars == nil && p.StarCount > 0 {
		field := texture.StarField(512, p.StarCount, p.StarSeed)
		tex.Stars = texture.NewImage("stars", field, texture.WrapRepeat)
	}

	c := &Control{
		params:    p,
		updater:   lighting.DefaultUpdater(),
		timeScale: p.TimeScale,
		clouds:    append([]CloudLayer(nil), p.Clouds...),
		textures:  tex,
		log:       logger.Named("sky"),
	}
	c.astro.SetHour(p.Hour)
	c.astro.SetLatitude(skymath.DegToRad(p.Latitude))
	if p.Month != 0 {
		c.astro.SetSolarLongitude(p.Month, max(p.Day, 1))
	}
	c.SetPhase(p.Phase, p.PhaseAngle)
	c.sunUp = c.astro.SunDirection().Y() > 0

	c.log.Debug("sky initialised",
		zap.Float32("hour", c.astro.Hour),
		zap.Float32("latitude", p.Latitude),
		zap.Stringer("phase", c.phase),
		zap.Int("clouds", len(c.clouds)))
	return c, nil
}

// Update advances simulated time by dt real seconds scaled by the time scale.
func (c *Control) Update(dt float32) {
	if c.paused || dt <= 0 || c.timeScale == 0 {
		return
	}
	hours := dt * c.timeScale / 3600
	c.astro.SetHour(c.astro.Hour + hours)
	for i := range c.clouds {
		c.clouds[i].Advance(hours)
	}

	up := c.astro.SunDirection().Y() > 0
	if up != c.sunUp {
		c.sunUp = up
		event := "sunset"
		if up {
			event = "sunrise"
		}
		c.log.Info(event, zap.Float32("hour", c.astro.Hour))
	}
}

// SetHour jumps to a local solar time.
func (c *Control) SetHour(hour float32) {
	c.astro.SetHour(hour)
	c.sunUp = c.astro.SunDirection().Y() > 0
}

// Hour returns the current local solar time.
func (c *Control) Hour() float32 { return c.astro.Hour }

// SetPhase selects the lunar phase. angle is only used for PhaseCustom.
func (c *Control) SetPhase(p LunarPhase, angle float32) {
	c.phase = p
	if p == PhaseCustom {
		c.angle = skymath.WrapAngle(angle)
	} else {
		c.angle = p.Angle()
	}
}

// Phase returns the lunar phase and its angle in radians.
func (c *Control) Phase() (LunarPhase, float32) { return c.phase, c.angle }

// SetLatitude sets the observer latitude in degrees, clamped to the poles.
// Non-finite values are ignored.
func (c *Control) SetLatitude(deg float32) {
	if !skymath.IsFinite(deg) {
		return
	}
	c.astro.SetLatitude(skymath.DegToRad(deg))
}

// SetTimeScale sets simulated seconds per real second. Negative values are ignored.
func (c *Control) SetTimeScale(scale float32) {
	if scale >= 0 && skymath.IsFinite(scale) {
		c.timeScale = scale
	}
}

// MinTimeScale is the slowest clock reachable by ScaleTime.
const MinTimeScale = 0.25

// ScaleTime multiplies the time scale by factor, never going below
// MinTimeScale, so a slowed clock can always be sped up again. Pause stops it.
func (c *Control) ScaleTime(factor float32) {
	if !(factor > 0) || !skymath.IsFinite(factor) {
		return
	}
	scale := max(max(c.timeScale, MinTimeScale)*factor, MinTimeScale)
	if skymath.IsFinite(scale) {
		c.timeScale = scale
	}
}

// TimeScale returns simulated seconds per real second.
func (c *Control) TimeScale() float32 { return c.timeScale }

// Pause stops or resumes the clock.
func (c *Control) Pause(paused bool) { c.paused = paused }

// Paused reports whether the clock is stopped.
func (c *Control) Paused() bool { return c.paused }

// Clouds returns the current cloud layers.
func (c *Control) Clouds() []CloudLayer { return c.clouds }

// Frame is everything needed to shade the dome for one frame.
type Frame struct {
	Hour          float32
	Phase         LunarPhase
	PhaseAngle    float32
	SunDirection  mgl32.Vec3
	MoonDirection mgl32.Vec3
	Objects       []Object // back-to-front
	Clear         composite.Color
	ClearGlow     composite.Color
	Haze          composite.Haze // Opacity is the value at the horizon
	HazeHeight    float32        // radians
	Light         lighting.State
	Mapping       dome.Mapping
	TopUV         mgl32.Vec2
}

// Frame snapshots the sky for rendering.
func (c *Control) Frame() Frame {
	p := &c.params
	sunDir := c.astro.SunDirection()
	moonDir := c.astro.MoonDirection(c.angle)
	sunEl := lighting.Elevation(sunDir)
	tones := p.Palette.At(sunEl)
	twilight := Twilight(sunEl)

	f := Frame{
		Hour:          c.astro.Hour,
		Phase:         c.phase,
		PhaseAngle:    c.angle,
		SunDirection:  sunDir,
		MoonDirection: moonDir,
		Clear:         tones.Clear,
		ClearGlow:     composite.Transparent,
		Haze: composite.Haze{
			Opacity: p.HazeOpacity,
			Color:   tones.Haze,
			Glow:    tones.Haze.WithAlpha(0.5 * twilight),
		},
		HazeHeight: skymath.DegToRad(p.HazeHeight),
		Light:      c.updater.Update(sunDir, moonDir, c.angle),
		Mapping:    p.Mapping,
		TopUV:      placement.DefaultTopUV,
	}

	if stars, ok := c.starObject(sunEl); ok {
		f.Objects = append(f.Objects, stars)
	}
	if sun, ok := c.sunObject(sunDir, twilight); ok {
		f.Objects = append(f.Objects, sun)
	}
	if moon, ok := c.moonObject(sunDir, moonDir); ok {
		f.Objects = append(f.Objects, moon)
	}
	for i := range c.clouds {
		if cl, ok := c.cloudObject(i, tones.Clouds, twilight); ok {
			f.Objects = append(f.Objects, cl)
		}
	}
	SortBackToFront(f.Objects)
	return f
}

// onDome reports whether a disc of the given span centered at uv overlaps the dome.
func (c *Control) onDome(uv mgl32.Vec2, size float32) bool {
	return uv.Sub(dome.TopUV).Len() < c.params.Mapping.UVScale+size*0.5
}

func (c *Control) sunObject(dir mgl32.Vec3, twilight float32) (Object, bool) {
	center := c.params.Mapping.ProjectUV(dir)
	if !c.onDome(center, c.params.SunSize) {
		return Object{}, false
	}
	t, err := placement.New(center, c.params.SunSize, 0)
	if err != nil {
		return Object{}, false
	}
	tint := composite.White.Lerp(composite.RGB(1, 0.62, 0.38), twilight)
	return Object{
		Name:      "sun",
		Depth:     DepthSun,
		Transform: t,
		Tint:      tint,
		Glow:      tint,
		Texture:   c.textures.Sun,
		Visible:   true,
	}, true
}

func (c *Control) moonObject(sunDir, dir mgl32.Vec3) (Object, bool) {
	mp := c.params.Mapping
	center := mp.ProjectUV(dir)
	if !c.onDome(center, c.params.MoonSize) {
		return Object{}, false
	}

	// Turn the texture so its lit (+u) side faces the sun.
	toSun := mp.ProjectUV(sunDir).Sub(center)
	var rotation float32
	if toSun.Len() > 0 {
		rotation = math32.Atan2(toSun.Y(), toSun.X())
	}
	t, err := placement.New(center, c.params.MoonSize, rotation)
	if err != nil {
		return Object{}, false
	}

	// The disc lights +u below π; mirror waning phases so +u stays lit.
	lit := c.angle
	if lit > skymath.Pi {
		lit = skymath.TwoPi - lit
	}
	disc := texture.MoonDisc{PhaseAngle: lit, Albedo: composite.RGB(0.93, 0.93, 0.88), Earthshine: 0.06}
	var tex texture.Sampler = disc
	if c.textures.Moon != nil {
		tex = texture.Phased{Base: c.textures.Moon, Disc: disc}
	}

	glow := composite.RGB(0.75, 0.8, 0.95)
	return Object{
		Name:      "moon",
		Depth:     DepthMoon,
		Transform: t,
		Tint:      composite.White,
		Glow:      glow.WithAlpha(0.35 * lighting.Illumination(c.angle)),
		Texture:   tex,
		Visible:   true,
	}, true
}

func (c *Control) starObject(sunEl float32) (Object, bool) {
	if c.textures.Stars == nil {
		return Object{}, false
	}
	night := 1 - skymath.Smoothstep(skymath.DegToRad(-12), skymath.DegToRad(-2), sunEl)
	if night <= 0 {
		return Object{}, false
	}

	// Stars turn about the visible celestial pole with sidereal time.
	mp := c.params.Mapping
	pole, _ := mp.DirectionUV(c.astro.PoleDirection())
	rotation := c.astro.SiderealAngle()
	if c.astro.ObserverLatitude < 0 {
		rotation = -rotation
	}
	t, err := placement.New(pole, 4*mp.UVScale, rotation)
	if err != nil {
		return Object{}, false
	}
	return Object{
		Name:      "stars",
		Depth:     DepthStars,
		Transform: t,
		Tint:      composite.White.WithAlpha(night),
		Glow:      composite.Transparent,
		Texture:   c.textures.Stars,
		Tiled:     true,
		Visible:   true,
	}, true
}

func (c *Control) cloudObject(i int, tone composite.Color, twilight float32) (Object, bool) {
	l := &c.clouds[i]
	if l.Opacity <= 0 || l.Texture == nil {
		return Object{}, false
	}
	t, err := l.Transform()
	if err != nil {
		return Object{}, false
	}
	return Object{
		Name:      l.Name,
		Depth:     DepthCloudsBase - i,
		Transform: t,
		Tint:      tone.WithAlpha(l.Opacity),
		Glow:      composite.RGB(1, 0.6, 0.4).WithAlpha(0.3 * twilight * l.Opacity),
		Texture:   l.Texture,
		Tiled:     true,
		Visible:   true,
	}, true
}
