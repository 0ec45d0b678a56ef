// Package composite blends celestial layers into a sky color and a glow color.
package composite

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

// Color is a straight-alpha RGBA color with float components, nominally 0..1.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// FromColor converts any image color into a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// NRGBA converts to an 8-bit straight-alpha color, clamping out-of-range values.
func (c Color) NRGBA() color.NRGBA {
	q := func(x float32) uint8 {
		return uint8(skymath.Saturate(x)*255 + 0.5)
	}
	return color.NRGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: q(c.A)}
}

// Vec4 returns the color as a shader vector.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// WithAlpha returns a copy of the color with a different alpha.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// ScaleRGB multiplies the color channels, leaving alpha unchanged.
func (c Color) ScaleRGB(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Modulate multiplies component-wise (texture sample times tint).
func (c Color) Modulate(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Lerp interpolates every component, alpha included.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: skymath.Mix(c.R, o.R, t),
		G: skymath.Mix(c.G, o.G, t),
		B: skymath.Mix(c.B, o.B, t),
		A: skymath.Mix(c.A, o.A, t),
	}
}

// Clamp limits every component to [0, 1].
func (c Color) Clamp() Color {
	return Color{
		R: skymath.Saturate(c.R),
		G: skymath.Saturate(c.G),
		B: skymath.Saturate(c.B),
		A: skymath.Saturate(c.A),
	}
}
