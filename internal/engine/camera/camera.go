// Package camera provides the viewer camera for looking around the sky dome.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
)

// LookCamera stands at the dome center and turns in place.
// Yaw 0 looks north (-Z); positive yaw turns toward the east (+X).
type LookCamera struct {
	Yaw   float32 // radians
	Pitch float32 // radians, positive looks up
	FOV   float32 // vertical field of view, radians

	MinPitch float32
	MaxPitch float32
	MinFOV   float32
	MaxFOV   float32

	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32
	KeySpeed        float32 // radians per second for arrow keys
}

// NewLookCamera creates a camera looking at the southern horizon from slightly below it.
func NewLookCamera(fovDeg float32) *LookCamera {
	return &LookCamera{
		Yaw:             skymath.Pi,
		Pitch:           skymath.DegToRad(15),
		FOV:             skymath.DegToRad(fovDeg),
		MinPitch:        skymath.DegToRad(-30),
		MaxPitch:        skymath.DegToRad(89.5),
		MinFOV:          skymath.DegToRad(10),
		MaxFOV:          skymath.DegToRad(120),
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		KeySpeed:        1.2,
	}
}

// Forward returns the unit view direction.
func (c *LookCamera) Forward() mgl32.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return mgl32.Vec3{sy * cp, sp, -cy * cp}
}

// ViewMatrix returns a rotation-only view matrix, so the dome never moves
// relative to the eye.
func (c *LookCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{}, c.Forward(), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for an aspect ratio.
func (c *LookCamera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, near, far)
}

// ViewProjection combines projection and view.
func (c *LookCamera) ViewProjection(aspect, near, far float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect, near, far).Mul4(c.ViewMatrix())
}

// HandleDrag turns the camera by a mouse delta in pixels.
func (c *LookCamera) HandleDrag(deltaX, deltaY float32) {
	c.Turn(deltaX*c.DragSensitivity, -deltaY*c.DragSensitivity)
}

// Turn adds yaw and pitch in radians, wrapping yaw and clamping pitch.
func (c *LookCamera) Turn(yaw, pitch float32) {
	c.Yaw = skymath.WrapAngle(c.Yaw + yaw)
	c.Pitch = skymath.Clamp(c.Pitch+pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom narrows or widens the field of view for a scroll delta.
func (c *LookCamera) HandleZoom(delta float32) {
	c.FOV = skymath.Clamp(c.FOV-delta*c.FOV*c.ZoomSensitivity, c.MinFOV, c.MaxFOV)
}

// HandleKeys turns the camera from arrow-key state over dt seconds.
// Each argument is -1, 0 or 1.
func (c *LookCamera) HandleKeys(right, up, dt float32) {
	c.Turn(right*c.KeySpeed*dt, up*c.KeySpeed*dt)
}
