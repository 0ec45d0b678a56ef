// Package lighting provides sun, moon and star positions and the scene
// lights they produce.
package lighting

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

// Obliquity is the tilt of the ecliptic against the celestial equator.
var Obliquity = skymath.DegToRad(23.44)

// World axes: X points east, Y up, Z south.

// SunAndStars tracks the observer's time of day, latitude and season.
type SunAndStars struct {
	Hour             float32 // local solar time, 0..24, noon = 12
	ObserverLatitude float32 // radians, north positive
	SolarLongitude   float32 // radians along the ecliptic, 0 at the March equinox
}

// SetHour sets the solar time, wrapping into [0, 24).
func (s *SunAndStars) SetHour(hour float32) {
	s.Hour = skymath.WrapHours(hour)
}

// SetLatitude sets the observer latitude in radians, clamped to the poles.
func (s *SunAndStars) SetLatitude(lat float32) {
	s.ObserverLatitude = skymath.Clamp(lat, -skymath.HalfPi, skymath.HalfPi)
}

// SetSolarLongitude derives the sun's ecliptic longitude from a calendar date,
// treating March 20 as the equinox and the year as 365.25 days.
func (s *SunAndStars) SetSolarLongitude(month time.Month, day int) {
	date := time.Date(2001, month, day, 12, 0, 0, 0, time.UTC)
	equinox := time.Date(2001, time.March, 20, 12, 0, 0, 0, time.UTC)
	days := float32(date.Sub(equinox).Hours() / 24)
	s.SolarLongitude = skymath.WrapAngle(skymath.TwoPi * days / 365.25)
}

// eclipticToEquatorial converts an ecliptic longitude to an equatorial unit
// vector: x toward the equinox, z toward the north celestial pole.
func eclipticToEquatorial(longitude float32) mgl32.Vec3 {
	sinL, cosL := math32.Sincos(longitude)
	sinE, cosE := math32.Sincos(Obliquity)
	return mgl32.Vec3{cosL, sinL * cosE, sinL * sinE}
}

// SunRightAscension returns the sun's right ascension in radians.
func (s *SunAndStars) SunRightAscension() float32 {
	eq := eclipticToEquatorial(s.SolarLongitude)
	return math32.Atan2(eq.Y(), eq.X())
}

// SiderealAngle returns the local sidereal time in radians: the right
// ascension currently crossing the meridian.
func (s *SunAndStars) SiderealAngle() float32 {
	hourAngle := (s.Hour - 12) * skymath.Pi / 12
	return skymath.WrapAngle(hourAngle + s.SunRightAscension())
}

// EquatorialToWorld rotates an equatorial direction into the observer's world frame.
func (s *SunAndStars) EquatorialToWorld(eq mgl32.Vec3) mgl32.Vec3 {
	sinL, cosL := math32.Sincos(s.SiderealAngle())
	// Hour-angle frame: x toward the meridian on the equator, y west, z pole.
	hx := eq.X()*cosL + eq.Y()*sinL
	hy := eq.X()*sinL - eq.Y()*cosL
	hz := eq.Z()

	sinPhi, cosPhi := math32.Sincos(s.ObserverLatitude)
	up := hz*sinPhi + hx*cosPhi
	north := hz*cosPhi - hx*sinPhi
	west := hy
	return mgl32.Vec3{-west, up, -north}
}

// SunDirection returns the unit direction from the observer toward the sun.
func (s *SunAndStars) SunDirection() mgl32.Vec3 {
	return s.EquatorialToWorld(eclipticToEquatorial(s.SolarLongitude))
}

// MoonDirection returns the direction toward a moon that leads the sun along
// the ecliptic by phaseAngle (0 new, π full). The lunar orbit's inclination is ignored.
func (s *SunAndStars) MoonDirection(phaseAngle float32) mgl32.Vec3 {
	return s.EquatorialToWorld(eclipticToEquatorial(s.SolarLongitude + phaseAngle))
}

// PoleDirection returns the direction toward the visible celestial pole
// (north in the northern hemisphere).
func (s *SunAndStars) PoleDirection() mgl32.Vec3 {
	pole := s.EquatorialToWorld(mgl32.Vec3{0, 0, 1})
	if s.ObserverLatitude < 0 {
		return pole.Mul(-1)
	}
	return pole
}

// Elevation returns the angle of dir above the horizon in radians.
func Elevation(dir mgl32.Vec3) float32 {
	if dir.Len() == 0 {
		return 0
	}
	return math32.Asin(skymath.Clamp(dir.Normalize().Y(), -1, 1))
}
