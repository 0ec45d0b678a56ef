package sky

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/dome"
	"github.com/Faultbox/midgard-sky/pkg/sky/placement"
)

// CloudLayer is a tiled cloud texture drifting across the dome.
type CloudLayer struct {
	Name    string
	Texture texture.Sampler
	Opacity float32    // 0..1
	Scale   float32    // dome-UV span of one texture tile
	Drift   mgl32.Vec2 // dome-UV units per simulated hour
	Offset  mgl32.Vec2
}

// Validate checks the layer parameters.
func (l *CloudLayer) Validate() error {
	if l.Opacity < 0 || l.Opacity > 1 || !skymath.IsFinite(l.Opacity) {
		return fmt.Errorf("%w: cloud layer %q opacity %v outside [0,1]", ErrInvalidConfig, l.Name, l.Opacity)
	}
	if !(l.Scale > 0) || !skymath.IsFinite(l.Scale) {
		return fmt.Errorf("%w: cloud layer %q scale %v must be positive", ErrInvalidConfig, l.Name, l.Scale)
	}
	return nil
}

// Advance moves the layer by its drift over hours of simulated time.
// The offset stays within one tile.
func (l *CloudLayer) Advance(hours float32) {
	l.Offset = l.Offset.Add(l.Drift.Mul(hours))
	l.Offset = mgl32.Vec2{
		skymath.Fract(l.Offset.X()/l.Scale) * l.Scale,
		skymath.Fract(l.Offset.Y()/l.Scale) * l.Scale,
	}
}

// Transform places the layer's tiles around the apex, shifted by the drift offset.
func (l *CloudLayer) Transform() (placement.Transform, error) {
	return placement.New(dome.TopUV.Add(l.Offset), l.Scale, 0)
}
