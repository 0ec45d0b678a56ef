package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-5)
}

func TestForward(t *testing.T) {
	c := NewLookCamera(70)
	c.Pitch = 0

	tests := []struct {
		yaw  float32
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{0, 0, -1}},
		{skymath.HalfPi, mgl32.Vec3{1, 0, 0}},
		{skymath.Pi, mgl32.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		c.Yaw = tt.yaw
		if got := c.Forward(); !vecNear(got, tt.want) {
			t.Errorf("Forward(yaw=%v) = %v, want %v", tt.yaw, got, tt.want)
		}
	}

	c.Pitch = skymath.HalfPi
	if got := c.Forward(); math32.Abs(got.Y()-1) > 1e-6 {
		t.Errorf("Forward(pitch=90) = %v, want up", got)
	}
}

func TestViewMatrixMapsForwardToMinusZ(t *testing.T) {
	c := NewLookCamera(70)
	c.Yaw, c.Pitch = 0.7, 0.3
	v := c.ViewMatrix().Mul4x1(c.Forward().Vec4(0)).Vec3()
	if !vecNear(v, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("view * forward = %v, want -Z", v)
	}
	// Rotation only: the origin stays put.
	if o := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(); !vecNear(o, mgl32.Vec3{}) {
		t.Errorf("view * origin = %v, want origin", o)
	}
}

func TestTurnClamps(t *testing.T) {
	c := NewLookCamera(70)
	c.Turn(0, 10)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.Pitch, c.MaxPitch)
	}
	c.Turn(0, -10)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.Pitch, c.MinPitch)
	}

	c.Yaw = 0
	c.Turn(-0.5, 0)
	if c.Yaw < 0 || c.Yaw >= skymath.TwoPi {
		t.Errorf("yaw = %v, want wrapped into [0, 2π)", c.Yaw)
	}
}

func TestHandleDragAndKeys(t *testing.T) {
	c := NewLookCamera(70)
	yaw, pitch := c.Yaw, c.Pitch
	c.HandleDrag(100, 0)
	if math32.Abs(c.Yaw-(yaw+0.5)) > 1e-5 {
		t.Errorf("drag right: yaw = %v, want %v", c.Yaw, yaw+0.5)
	}
	c.HandleDrag(0, 20)
	if c.Pitch >= pitch {
		t.Errorf("drag down should look down: pitch %v -> %v", pitch, c.Pitch)
	}

	yaw = c.Yaw
	c.HandleKeys(-1, 0, 0.5)
	if math32.Abs(c.Yaw-(yaw-0.6)) > 1e-5 {
		t.Errorf("left key: yaw = %v, want %v", c.Yaw, yaw-0.6)
	}
}

func TestHandleZoom(t *testing.T) {
	c := NewLookCamera(70)
	fov := c.FOV
	c.HandleZoom(1)
	if c.FOV >= fov {
		t.Errorf("zoom in should narrow the view: %v -> %v", fov, c.FOV)
	}
	for range 100 {
		c.HandleZoom(1)
	}
	if c.FOV != c.MinFOV {
		t.Errorf("FOV = %v, want clamped to %v", c.FOV, c.MinFOV)
	}
}
