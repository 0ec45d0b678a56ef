package lighting

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestSunOverheadAtEquinoxNoonOnEquator(t *testing.T) {
	s := SunAndStars{Hour: 12}
	dir := s.SunDirection()
	if !near(dir.Y(), 1, 1e-5) {
		t.Errorf("SunDirection() = %v, want straight up", dir)
	}
}

func TestSunRisesEastSetsWest(t *testing.T) {
	s := SunAndStars{ObserverLatitude: skymath.DegToRad(40)}

	s.SetHour(6)
	morning := s.SunDirection()
	if !near(morning.Y(), 0, 1e-4) || morning.X() < 0.99 {
		t.Errorf("equinox 06:00 sun = %v, want on the eastern horizon", morning)
	}

	s.SetHour(18)
	evening := s.SunDirection()
	if !near(evening.Y(), 0, 1e-4) || evening.X() > -0.99 {
		t.Errorf("equinox 18:00 sun = %v, want on the western horizon", evening)
	}
}

func TestNoonSunElevationMatchesLatitude(t *testing.T) {
	s := SunAndStars{Hour: 12, ObserverLatitude: skymath.DegToRad(40)}
	el := skymath.RadToDeg(Elevation(s.SunDirection()))
	if !near(el, 50, 1e-2) {
		t.Errorf("equinox noon elevation at 40N = %v, want 50", el)
	}
	// Northern observer sees the noon sun to the south (+Z).
	if s.SunDirection().Z() <= 0 {
		t.Errorf("noon sun = %v, want southern sky", s.SunDirection())
	}

	s.SolarLongitude = skymath.HalfPi // June solstice
	el = skymath.RadToDeg(Elevation(s.SunDirection()))
	if !near(el, 73.44, 1e-2) {
		t.Errorf("solstice noon elevation at 40N = %v, want 73.44", el)
	}
}

func TestSunBelowHorizonAtMidnight(t *testing.T) {
	s := SunAndStars{Hour: 0, ObserverLatitude: skymath.DegToRad(45)}
	if s.SunDirection().Y() >= 0 {
		t.Errorf("midnight sun = %v, want below horizon", s.SunDirection())
	}
}

func TestFullMoonOpposesSun(t *testing.T) {
	s := SunAndStars{Hour: 21, ObserverLatitude: skymath.DegToRad(30), SolarLongitude: 1}
	sun := s.SunDirection()
	moon := s.MoonDirection(skymath.Pi)
	if d := sun.Dot(moon); !near(d, -1, 1e-4) {
		t.Errorf("sun·moon = %v, want -1 at full moon", d)
	}
	if d := sun.Dot(s.MoonDirection(0)); !near(d, 1, 1e-4) {
		t.Errorf("sun·moon = %v, want 1 at new moon", d)
	}
}

func TestPoleElevationEqualsLatitude(t *testing.T) {
	for _, lat := range []float32{10, 45, -33} {
		s := SunAndStars{Hour: 3.7, ObserverLatitude: skymath.DegToRad(lat)}
		el := skymath.RadToDeg(Elevation(s.PoleDirection()))
		if !near(el, math32.Abs(lat), 1e-2) {
			t.Errorf("pole elevation at %v = %v", lat, el)
		}
	}
}

func TestSetHourWraps(t *testing.T) {
	var s SunAndStars
	s.SetHour(26.5)
	if !near(s.Hour, 2.5, 1e-4) {
		t.Errorf("SetHour(26.5) = %v, want 2.5", s.Hour)
	}
	s.SetHour(-1)
	if !near(s.Hour, 23, 1e-4) {
		t.Errorf("SetHour(-1) = %v, want 23", s.Hour)
	}
}

func TestSetSolarLongitude(t *testing.T) {
	var s SunAndStars
	s.SetSolarLongitude(time.March, 20)
	if !near(s.SolarLongitude, 0, 1e-6) {
		t.Errorf("equinox longitude = %v, want 0", s.SolarLongitude)
	}
	s.SetSolarLongitude(time.June, 21)
	if deg := skymath.RadToDeg(s.SolarLongitude); !near(deg, 90, 2) {
		t.Errorf("solstice longitude = %v deg, want ~90", deg)
	}
	s.SetSolarLongitude(time.January, 1)
	if deg := skymath.RadToDeg(s.SolarLongitude); deg < 270 || deg > 290 {
		t.Errorf("january longitude = %v deg, want ~280", deg)
	}
}

func TestUpdaterDaylight(t *testing.T) {
	u := DefaultUpdater()
	st := u.Update(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0}, skymath.Pi)
	if st.Source != SourceSun {
		t.Fatalf("source = %v, want sun", st.Source)
	}
	if st.Intensity != 1 {
		t.Errorf("intensity = %v, want 1", st.Intensity)
	}
	if st.Direction != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("direction = %v, want straight down", st.Direction)
	}
	if st.Color != u.SunColor {
		t.Errorf("color = %v, want %v", st.Color, u.SunColor)
	}
}

func TestUpdaterMoonlight(t *testing.T) {
	u := DefaultUpdater()
	st := u.Update(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, skymath.Pi)
	if st.Source != SourceMoon {
		t.Fatalf("source = %v, want moon", st.Source)
	}
	if !near(st.Intensity, u.MoonIntensity, 1e-6) {
		t.Errorf("intensity = %v, want %v", st.Intensity, u.MoonIntensity)
	}

	dark := u.Update(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 1, 0}, 0)
	if dark.Source != SourceNone {
		t.Errorf("new moon at night source = %v, want none", dark.Source)
	}
	if dark.Ambient != u.NightAmbient {
		t.Errorf("ambient = %v, want night ambient", dark.Ambient)
	}
}

func TestIllumination(t *testing.T) {
	if got := Illumination(0); got != 0 {
		t.Errorf("Illumination(new) = %v", got)
	}
	if got := Illumination(skymath.Pi); !near(got, 1, 1e-6) {
		t.Errorf("Illumination(full) = %v", got)
	}
	if got := Illumination(skymath.HalfPi); !near(got, 0.5, 1e-6) {
		t.Errorf("Illumination(quarter) = %v", got)
	}
}
