package sky

import (
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
)

// HazeAlpha returns the haze alpha-map value at a dome UV: 1 on and below the
// horizon, fading to 0 at HazeHeight.
func (f *Frame) HazeAlpha(uv mgl32.Vec2) float32 {
	d := uv.Sub(f.TopUV).Len()
	if d >= f.Mapping.UVScale || f.HazeHeight <= 0 {
		return 1
	}
	el := f.Mapping.Elevation(d)
	h := 1 - skymath.Saturate(el/f.HazeHeight)
	return h * h
}

// Shade composites the first MaxObjects objects, the haze and the clear sky
// at one dome UV. It mirrors the fragment program used on the GPU.
func (f *Frame) Shade(uv mgl32.Vec2) composite.Result {
	var buf [MaxObjects]composite.Sample
	samples := buf[:0]
	for i := range f.Drawn() {
		if s, ok := f.Objects[i].Sample(uv, f.TopUV); ok {
			samples = append(samples, s)
		}
	}

	in := composite.Input{
		Objects:   samples,
		Clear:     f.Clear,
		ClearGlow: f.ClearGlow,
	}
	if f.Haze.Opacity > 0 {
		haze := f.Haze
		haze.Opacity *= f.HazeAlpha(uv)
		in.Haze = &haze
	}
	return composite.Composite(in)
}

// Drawn returns how many leading objects are composited.
func (f *Frame) Drawn() int {
	return min(len(f.Objects), MaxObjects)
}
