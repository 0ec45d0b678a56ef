// Package placement projects small object textures (sun, moon, cloud tiles)
// onto the dome without re-tessellating it.
//
// Each object carries a center in dome UV space and two basis vectors. A
// fragment's dome UV is remapped into the object's own texture space by
//
//	offset = frag - center
//	coord  = (dot(U, offset), dot(V, offset)) + top
//
// where top is the texture coordinate of the object's center, normally (0.5, 0.5).
package placement

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky"
)

// DefaultTopUV centers the object in its texture.
var DefaultTopUV = mgl32.Vec2{0.5, 0.5}

// Transform places one object on the dome.
type Transform struct {
	Center mgl32.Vec2
	U      mgl32.Vec2
	V      mgl32.Vec2
}

// New builds a transform for an object whose texture spans size dome-UV
// units, rotated counter-clockwise by rotation radians.
func New(center mgl32.Vec2, size, rotation float32) (Transform, error) {
	if !(size > 0) || !skymath.IsFinite(size) {
		return Transform{}, fmt.Errorf("%w: object size %v must be positive", sky.ErrInvalidArgument, size)
	}
	if !skymath.IsFinite(rotation) {
		return Transform{}, fmt.Errorf("%w: object rotation %v must be finite", sky.ErrInvalidArgument, rotation)
	}
	c := math32.Cos(rotation) / size
	s := math32.Sin(rotation) / size
	if !skymath.IsFinite(c) || !skymath.IsFinite(s) {
		return Transform{}, fmt.Errorf("%w: object size %v is too small", sky.ErrInvalidArgument, size)
	}
	return Transform{
		Center: center,
		U:      mgl32.Vec2{c, s},
		V:      mgl32.Vec2{-s, c},
	}, nil
}

// Identity maps dome UVs onto themselves around the apex.
func Identity() Transform {
	return Transform{
		Center: DefaultTopUV,
		U:      mgl32.Vec2{1, 0},
		V:      mgl32.Vec2{0, 1},
	}
}

// Map returns the object texture coordinate for a fragment's dome UV.
func (t Transform) Map(frag, top mgl32.Vec2) mgl32.Vec2 {
	offset := frag.Sub(t.Center)
	return mgl32.Vec2{t.U.Dot(offset), t.V.Dot(offset)}.Add(top)
}

// Project maps the fragment and reports whether it lands inside the object's
// texture. When ok is false the object is absent at this fragment and must
// not be blended.
func (t Transform) Project(frag, top mgl32.Vec2) (coord mgl32.Vec2, ok bool) {
	coord = t.Map(frag, top)
	return coord, InUnitSquare(coord)
}

// Scale returns the texture span in dome-UV units, recovered from U.
func (t Transform) Scale() float32 {
	l := t.U.Len()
	if l == 0 {
		return 0
	}
	return 1 / l
}

// InUnitSquare reports whether c lies in [0,1]².
func InUnitSquare(c mgl32.Vec2) bool {
	return c.X() >= 0 && c.X() <= 1 && c.Y() >= 0 && c.Y() <= 1
}

// Wrap folds a coordinate into [0,1)² for tiling layers.
func Wrap(c mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{skymath.Fract(c.X()), skymath.Fract(c.Y())}
}
