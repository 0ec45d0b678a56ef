package texture

import (
	"image"

	"github.com/chewxy/math32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
)

// Sampler returns a straight-alpha color for texture coordinates.
// (0,0) is the top-left corner of the image and (1,1) the bottom-right.
type Sampler interface {
	Sample(u, v float32) composite.Color
}

// WrapMode controls lookups outside [0,1].
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

// Image samples an NRGBA image with bilinear filtering.
type Image struct {
	Name string
	Pix  *image.NRGBA
	Wrap WrapMode
}

// NewImage wraps img for sampling. Nil images are not allowed.
func NewImage(name string, img *image.NRGBA, wrap WrapMode) *Image {
	return &Image{Name: name, Pix: img, Wrap: wrap}
}

// Size returns the image dimensions.
func (s *Image) Size() (int, int) {
	b := s.Pix.Bounds()
	return b.Dx(), b.Dy()
}

// Sample implements Sampler.
func (s *Image) Sample(u, v float32) composite.Color {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return composite.Transparent
	}

	// Texel centers sit at half-integer positions.
	x := u*float32(w) - 0.5
	y := v*float32(h) - 0.5
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0

	ix, iy := int(x0), int(y0)
	c00 := s.texel(ix, iy, w, h)
	c10 := s.texel(ix+1, iy, w, h)
	c01 := s.texel(ix, iy+1, w, h)
	c11 := s.texel(ix+1, iy+1, w, h)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

func (s *Image) texel(x, y, w, h int) composite.Color {
	if s.Wrap == WrapRepeat {
		x = ((x % w) + w) % w
		y = ((y % h) + h) % h
	} else {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
	}
	i := s.Pix.PixOffset(x, y)
	p := s.Pix.Pix[i : i+4 : i+4]
	return composite.Color{
		R: float32(p[0]) / 255,
		G: float32(p[1]) / 255,
		B: float32(p[2]) / 255,
		A: float32(p[3]) / 255,
	}
}

// Solid is a constant-color sampler.
type Solid composite.Color

// Sample implements Sampler.
func (s Solid) Sample(_, _ float32) composite.Color {
	return composite.Color(s)
}

// Radial evaluates a function of the distance from the texture center,
// 0 at the center and 1 at the inscribed circle. Used for analytic discs
// that need no backing image.
type Radial func(r float32) composite.Color

// Sample implements Sampler.
func (f Radial) Sample(u, v float32) composite.Color {
	dx := (u - 0.5) * 2
	dy := (v - 0.5) * 2
	return f(skymath.Clamp(math32.Sqrt(dx*dx+dy*dy), 0, 2))
}
