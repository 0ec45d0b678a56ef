package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
)

// Source identifies which body drives the main light.
type Source int

const (
	SourceNone Source = iota
	SourceSun
	SourceMoon
)

func (s Source) String() string {
	switch s {
	case SourceSun:
		return "sun"
	case SourceMoon:
		return "moon"
	default:
		return "none"
	}
}

// State is the lighting derived from the sky for one frame.
type State struct {
	Source    Source
	Direction mgl32.Vec3 // direction the light travels, from the sky toward the ground
	Color     composite.Color
	Intensity float32
	Ambient   composite.Color
}

// Updater turns sun and moon positions into scene lights.
type Updater struct {
	SunColor      composite.Color // sun high in the sky
	SunsetColor   composite.Color // sun on the horizon
	MoonColor     composite.Color
	DayAmbient    composite.Color
	NightAmbient  composite.Color
	MoonIntensity float32 // full-moon light relative to the sun
}

// DefaultUpdater returns daylight and moonlight tuned for a temperate sky.
func DefaultUpdater() Updater {
	return Updater{
		SunColor:      composite.RGB(1, 0.97, 0.9),
		SunsetColor:   composite.RGB(1, 0.55, 0.3),
		MoonColor:     composite.RGB(0.65, 0.7, 0.85),
		DayAmbient:    composite.RGB(0.35, 0.38, 0.45),
		NightAmbient:  composite.RGB(0.03, 0.035, 0.06),
		MoonIntensity: 0.25,
	}
}

// Illumination returns the lit fraction of the lunar disc for a phase angle.
func Illumination(phaseAngle float32) float32 {
	return (1 - math32.Cos(phaseAngle)) / 2
}

// Update computes the light state for the given sun and moon directions.
func (u Updater) Update(sunDir, moonDir mgl32.Vec3, phaseAngle float32) State {
	sunY := sunDir.Normalize().Y()
	moonY := moonDir.Normalize().Y()

	sunStrength := skymath.Smoothstep(-0.05, 0.15, sunY)
	moonStrength := u.MoonIntensity * Illumination(phaseAngle) * skymath.Smoothstep(-0.02, 0.1, moonY)

	ambient := u.NightAmbient.Lerp(u.DayAmbient, sunStrength)
	ambient = Color3Add(ambient, u.MoonColor.ScaleRGB(moonStrength*0.2))

	st := State{Ambient: ambient.Clamp()}
	switch {
	case sunStrength > 0 && sunStrength >= moonStrength:
		warm := skymath.Smoothstep(0, 0.35, sunY)
		st.Source = SourceSun
		st.Direction = sunDir.Normalize().Mul(-1)
		st.Color = u.SunsetColor.Lerp(u.SunColor, warm)
		st.Intensity = sunStrength
	case moonStrength > 0:
		st.Source = SourceMoon
		st.Direction = moonDir.Normalize().Mul(-1)
		st.Color = u.MoonColor
		st.Intensity = moonStrength
	default:
		st.Direction = mgl32.Vec3{0, -1, 0}
		st.Color = composite.Black
	}
	return st
}

// Color3Add adds the color channels of b to a, keeping a's alpha.
func Color3Add(a, b composite.Color) composite.Color {
	return composite.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B, A: a.A}
}
