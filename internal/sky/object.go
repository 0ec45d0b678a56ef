// Package sky drives the sky dome: it tracks time of day, lunar phase and
// cloud drift, places the sun, moon, stars and cloud layers on the dome, and
// shades dome fragments through the compositor.
package sky

import (
	"errors"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
	"github.com/Faultbox/midgard-sky/pkg/sky/placement"
)

// ErrInvalidConfig is returned for out-of-range control parameters.
var ErrInvalidConfig = errors.New("invalid sky configuration")

// Object is one textured layer drawn on the dome.
type Object struct {
	Name      string
	Depth     int // larger is farther away; farther objects are composited first
	Transform placement.Transform
	Tint      composite.Color // multiplies the texture sample
	Glow      composite.Color // glow color; its alpha is scaled by the texture alpha
	Texture   texture.Sampler
	Tiled     bool // repeat the texture instead of clipping to its unit square
	Visible   bool
}

// Sample returns the object's contribution at a dome UV. ok is false where
// the object is absent.
func (o *Object) Sample(frag, top mgl32.Vec2) (s composite.Sample, ok bool) {
	if !o.Visible || o.Texture == nil {
		return composite.Sample{}, false
	}
	coord := o.Transform.Map(frag, top)
	if o.Tiled {
		coord = placement.Wrap(coord)
	} else if !placement.InUnitSquare(coord) {
		return composite.Sample{}, false
	}
	tex := o.Texture.Sample(coord.X(), coord.Y())
	if tex.A <= 0 {
		return composite.Sample{}, false
	}
	return composite.Sample{
		Color: tex.Modulate(o.Tint),
		Glow:  o.Glow.WithAlpha(o.Glow.A * tex.A),
	}, true
}

// MaxObjects is the number of objects a fragment composites. Objects past it
// in back-to-front order are the nearest and are not drawn.
const MaxObjects = 6

// SortBackToFront orders objects farthest first. Objects at equal depth keep
// their relative order.
func SortBackToFront(objects []Object) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Depth > objects[j].Depth
	})
}
