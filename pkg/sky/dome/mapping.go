package dome

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

// Mapping converts between elevation angles, world directions and dome UVs.
//
// The UV distance from the apex is UVScale*f(t), where t runs from 0 at the
// apex to 1 at the horizon and f(t) = (1+s)t / (1+st). f is monotonic with
// f(0)=0 and f(1)=1, so the rim always lands exactly on UVScale.
type Mapping struct {
	UVScale float32
	Stretch float32
}

// Mapping returns the UV mapping used by the mesh.
func (m *Mesh) Mapping() Mapping {
	return Mapping{UVScale: m.Params.UVScale, Stretch: m.Params.Stretch}
}

// DefaultMapping returns the mapping of a mesh built with DefaultParams.
func DefaultMapping() Mapping {
	return Mapping{UVScale: DefaultUVScale, Stretch: DefaultStretch}
}

func (mp Mapping) stretch(t float32) float32 {
	s := mp.Stretch
	return (1 + s) * t / (1 + s*t)
}

func (mp Mapping) unstretch(f float32) float32 {
	s := mp.Stretch
	return f / (1 + s - s*f)
}

// UVDistance returns the UV distance from the apex for an elevation angle in radians.
// Elevations below the horizon extrapolate past the rim.
func (mp Mapping) UVDistance(elevation float32) float32 {
	t := 1 - elevation/skymath.HalfPi
	return mp.UVScale * mp.stretch(t)
}

// Elevation returns the elevation angle for a UV distance from the apex.
func (mp Mapping) Elevation(distance float32) float32 {
	t := mp.unstretch(distance / mp.UVScale)
	return skymath.HalfPi * (1 - t)
}

// DirectionUV maps a world direction (Y up) to dome texture coordinates.
// Directions below the horizon are clamped to the rim and reported with
// aboveHorizon false.
func (mp Mapping) DirectionUV(dir mgl32.Vec3) (uv mgl32.Vec2, aboveHorizon bool) {
	return mp.directionUV(dir, true)
}

// ProjectUV maps a world direction like DirectionUV but lets directions below
// the horizon continue past the rim, so a setting body slides off the dome
// instead of sticking to its edge.
func (mp Mapping) ProjectUV(dir mgl32.Vec3) mgl32.Vec2 {
	uv, _ := mp.directionUV(dir, false)
	return uv
}

func (mp Mapping) directionUV(dir mgl32.Vec3, clamp bool) (mgl32.Vec2, bool) {
	if dir.Len() == 0 {
		return TopUV, false
	}
	n := dir.Normalize()
	elevation := math32.Asin(skymath.Clamp(n.Y(), -1, 1))
	aboveHorizon := elevation >= 0
	if !aboveHorizon && clamp {
		elevation = 0
	}
	if n.X() == 0 && n.Z() == 0 {
		if n.Y() < 0 && !clamp {
			// Nadir has no azimuth; push it far outside the dome.
			return mgl32.Vec2{TopUV.X() + 2*mp.UVScale, TopUV.Y()}, false
		}
		return TopUV, aboveHorizon
	}
	azimuth := math32.Atan2(n.Z(), n.X())
	d := mp.UVDistance(elevation)
	return mgl32.Vec2{
		TopUV.X() + d*math32.Cos(azimuth),
		TopUV.Y() + d*math32.Sin(azimuth),
	}, aboveHorizon
}

// UVDirection maps dome texture coordinates back to a unit world direction.
// Coordinates beyond the rim return onDome false and the rim direction.
func (mp Mapping) UVDirection(uv mgl32.Vec2) (dir mgl32.Vec3, onDome bool) {
	offset := uv.Sub(TopUV)
	d := offset.Len()
	if d == 0 {
		return mgl32.Vec3{0, 1, 0}, true
	}
	onDome = d <= mp.UVScale*(1+1e-6)
	if !onDome {
		d = mp.UVScale
	}
	elevation := mp.Elevation(d)
	azimuth := math32.Atan2(offset.Y(), offset.X())
	horizontal := math32.Cos(elevation)
	return mgl32.Vec3{
		horizontal * math32.Cos(azimuth),
		math32.Sin(elevation),
		horizontal * math32.Sin(azimuth),
	}, onDome
}
