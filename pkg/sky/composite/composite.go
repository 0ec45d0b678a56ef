package composite

import skymath "github.com/Faultbox/midgard-sky/pkg/math"

// Sample is one object's contribution at a fragment.
type Sample struct {
	Color Color
	Glow  Color
}

// Haze is the atmospheric layer blended beneath every object.
type Haze struct {
	Opacity float32 // alpha-map sample at the fragment, 0..1
	Color   Color
	Glow    Color
}

// Input holds everything one fragment needs.
// Objects must be ordered back-to-front.
type Input struct {
	Objects   []Sample
	Haze      *Haze
	Clear     Color
	ClearGlow Color
}

// Result is the composited fragment for the color pass and the glow pass.
type Result struct {
	Color Color
	Glow  Color
}

// Over blends over on top of under:
//
//	rgb = mix(under.rgb, over.rgb, over.a)
//	a   = under.a + over.a*(1-under.a)
func Over(under, over Color) Color {
	a := over.A
	return Color{
		R: skymath.Mix(under.R, over.R, a),
		G: skymath.Mix(under.G, over.G, a),
		B: skymath.Mix(under.B, over.B, a),
		A: under.A + a*(1-under.A),
	}
}

// Composite blends the objects, the haze and the clear sky for one fragment.
// The color and glow channels are composited independently with the same rules.
func Composite(in Input) Result {
	layers := Objects(in.Objects)

	var hazeColor, hazeGlow *Color
	if in.Haze != nil {
		c := in.Haze.Color.WithAlpha(in.Haze.Color.A * in.Haze.Opacity)
		g := in.Haze.Glow.WithAlpha(in.Haze.Glow.A * in.Haze.Opacity)
		hazeColor, hazeGlow = &c, &g
	}

	return Result{
		Color: finish(layers.Color, hazeColor, in.Clear),
		Glow:  finish(layers.Glow, hazeGlow, in.ClearGlow),
	}
}

// finish applies the haze, clear-sky and bleed-through stages to one channel.
func finish(objects Color, haze *Color, clear Color) Color {
	layered := objects
	if haze != nil {
		layered = Over(*haze, objects)
	}

	out := Over(clear, layered)

	// Bright objects show through a clear sky that is not fully opaque.
	k := objects.A * clear.A
	out.R += objects.R * k * (1 - clear.R)
	out.G += objects.G * k * (1 - clear.G)
	out.B += objects.B * k * (1 - clear.B)

	return out.Clamp()
}

// Objects composites only the object layers, back-to-front.
func Objects(samples []Sample) Sample {
	var out Sample
	for _, s := range samples {
		out.Color = Over(out.Color, s.Color)
		out.Glow = Over(out.Glow, s.Glow)
	}
	return out
}
