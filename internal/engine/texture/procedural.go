package texture

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/noise"
	"github.com/chewxy/math32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
)

// Bake renders a sampler into a size×size image, e.g. for GPU upload.
func Bake(s Sampler, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	inv := 1 / float32(size)
	for y := range size {
		v := (float32(y) + 0.5) * inv
		for x := range size {
			u := (float32(x) + 0.5) * inv
			img.SetNRGBA(x, y, s.Sample(u, v).NRGBA())
		}
	}
	return img
}

// SunDisc returns an analytic sun: an opaque disc over the inner half of the
// texture with a fading corona out to the rim.
func SunDisc(core composite.Color) Radial {
	return func(r float32) composite.Color {
		switch {
		case r <= 0.45:
			return core.WithAlpha(1)
		case r <= 0.5:
			// Antialiased limb.
			return core.WithAlpha(1 - skymath.Smoothstep(0.45, 0.5, r)*0.5)
		case r < 1:
			fade := 1 - (r-0.5)/0.5
			return core.WithAlpha(0.5 * fade * fade)
		default:
			return composite.Transparent
		}
	}
}

// MoonDisc samples the lit portion of the moon for a phase angle in radians:
// 0 is new, π is full, and angles below π light the right-hand side.
type MoonDisc struct {
	PhaseAngle float32
	Albedo     composite.Color
	Earthshine float32 // brightness of the unlit side, 0..1
}

// Sample implements Sampler.
func (m MoonDisc) Sample(u, v float32) composite.Color {
	dx := (u - 0.5) * 2
	dy := (v - 0.5) * 2
	r2 := dx*dx + dy*dy
	if r2 >= 1 {
		return composite.Transparent
	}

	nz := math32.Sqrt(1 - r2)
	lx := math32.Sin(m.PhaseAngle)
	lz := -math32.Cos(m.PhaseAngle)
	lit := dx*lx + nz*lz
	brightness := skymath.Mix(m.Earthshine, 1, skymath.Smoothstep(-0.04, 0.06, lit))

	edge := 1 - skymath.Smoothstep(0.96, 1, math32.Sqrt(r2))
	return m.Albedo.ScaleRGB(brightness).WithAlpha(brightness * edge)
}

// Phased darkens a moon image by the lit fraction of a MoonDisc, so image
// moons follow the lunar phase like the analytic one.
type Phased struct {
	Base Sampler
	Disc MoonDisc
}

// Sample implements Sampler.
func (p Phased) Sample(u, v float32) composite.Color {
	base := p.Base.Sample(u, v)
	disc := p.Disc
	disc.Albedo = composite.White
	light := disc.Sample(u, v)
	if light.A <= 0 {
		return composite.Transparent
	}
	return base.ScaleRGB(light.R).WithAlpha(base.A * light.A)
}

// StarField draws count stars on a transparent size×size image. The same seed
// always yields the same field.
func StarField(size, count int, seed uint64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	for range count {
		x := rng.IntN(size)
		y := rng.IntN(size)
		// Most stars are faint; a few are bright.
		m := rng.Float32()
		brightness := 0.25 + 0.75*m*m*m
		tint := rng.Float32()*0.2 - 0.1
		c := composite.Color{
			R: skymath.Saturate(brightness * (1 + tint)),
			G: brightness,
			B: skymath.Saturate(brightness * (1 - tint)),
			A: brightness,
		}
		img.SetNRGBA(x, y, c.NRGBA())
		if brightness > 0.8 {
			halo := c.WithAlpha(c.A * 0.35).NRGBA()
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				px, py := (x+d[0]+size)%size, (y+d[1]+size)%size
				if img.NRGBAAt(px, py).A < halo.A {
					img.SetNRGBA(px, py, halo)
				}
			}
		}
	}
	return img
}

// CloudOptions controls procedural cloud generation.
type CloudOptions struct {
	Size     int     // texture edge in pixels
	Coverage float32 // fraction of sky covered, 0..1
	Softness float32 // width of the cloud edge ramp
}

// DefaultCloudOptions returns moderately broken cumulus.
func DefaultCloudOptions() CloudOptions {
	return CloudOptions{Size: 256, Coverage: 0.45, Softness: 0.2}
}

// Clouds generates a seamlessly tiling cloud alpha map (white, varying alpha)
// from blurred white noise. The noise source is not seeded, so every call
// produces a different sky.
func Clouds(o CloudOptions) *image.NRGBA {
	n := o.Size
	base := noise.Generate(n, n, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})

	// Blur a 3×3 tiling and keep the center tile so opposite edges match.
	tiled := image.NewRGBA(image.Rect(0, 0, 3*n, 3*n))
	for ty := range 3 {
		for tx := range 3 {
			for y := range n {
				src := base.Pix[base.PixOffset(0, y) : base.PixOffset(0, y)+4*n]
				copy(tiled.Pix[tiled.PixOffset(tx*n, ty*n+y):], src)
			}
		}
	}

	octaves := []struct {
		radius float64
		weight float32
	}{
		{float64(n) / 12, 0.55},
		{float64(n) / 28, 0.3},
		{float64(n) / 64, 0.15},
	}

	field := make([]float32, n*n)
	for _, oct := range octaves {
		blurred := blur.Gaussian(tiled, max(oct.radius, 1))
		for y := range n {
			for x := range n {
				g := blurred.Pix[blurred.PixOffset(n+x, n+y)]
				field[y*n+x] += oct.weight * float32(g) / 255
			}
		}
	}

	lo, hi := field[0], field[0]
	for _, f := range field {
		lo = min(lo, f)
		hi = max(hi, f)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	threshold := 1 - skymath.Saturate(o.Coverage)
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			f := (field[y*n+x] - lo) / span
			a := skymath.Smoothstep(threshold-o.Softness/2, threshold+o.Softness/2, f)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a*255 + 0.5)})
		}
	}
	return img
}
