// Package viewer implements the interactive sky viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/engine/camera"
	"github.com/Faultbox/midgard-sky/internal/engine/debug"
	"github.com/Faultbox/midgard-sky/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sky/internal/engine/input"
	"github.com/Faultbox/midgard-sky/internal/engine/scene"
	"github.com/Faultbox/midgard-sky/internal/engine/window"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/sky"
	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/dome"
)

const (
	nearPlane = 0.1
	farPlane  = 10000

	bloomStrength = 1
)

// Viewer owns the window, the GL sky renderer and the sky controller.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	input    *input.Input
	camera   *camera.LookCamera
	renderer *scene.SkyRenderer
	sky      *sky.Control
	shots    *debug.ScreenshotCapture

	dragging bool
}

// New opens the window and uploads the dome. The sky controller is owned by
// the caller.
func New(cfg *config.Config, control *sky.Control) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen))

	v := &Viewer{
		cfg:   cfg,
		sky:   control,
		input: input.New(),
		shots: debug.NewScreenshotCapture("screenshots", "skyview"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Midgard Sky",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	mesh, err := dome.Build(cfg.DomeParams())
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("building dome: %w", err)
	}

	// Renderer needs the GL context the window created.
	v.renderer, err = scene.NewSkyRenderer(mesh)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create sky renderer: %w", err)
	}

	v.camera = camera.NewLookCamera(cfg.Graphics.FOV)
	v.camera.DragSensitivity = skymath.DegToRad(cfg.Graphics.MouseSensitivity)

	logger.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var minFrame time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.update(dt)
		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			v.window.SetTitle(v.title(frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if spent := time.Since(now); spent < minFrame {
				time.Sleep(minFrame - spent)
			}
		}
	}
	return nil
}

func (v *Viewer) title(fps int) string {
	phase, _ := v.sky.Phase()
	hour := v.sky.Hour()
	h := int(hour)
	m := int((hour - float32(h)) * 60)
	state := fmt.Sprintf("x%g", v.sky.TimeScale())
	if v.sky.Paused() {
		state = "paused"
	}
	return fmt.Sprintf("Midgard Sky  %02d:%02d  %s moon  %s  %d fps", h, m, phase, state, fps)
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			v.handleKey(event.Key)
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = true
				v.window.SetMouseCaptured(true)
			}
		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = false
				v.window.SetMouseCaptured(false)
			}
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		v.sky.ScaleTime(2)
		logger.Info("time scale", zap.Float32("scale", v.sky.TimeScale()))
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		v.sky.ScaleTime(0.5)
		logger.Info("time scale", zap.Float32("scale", v.sky.TimeScale()))
	case sdl.SCANCODE_SPACE:
		v.sky.Pause(!v.sky.Paused())
	case sdl.SCANCODE_P:
		phase, angle := v.sky.Phase()
		v.sky.SetPhase(phase.Next(), angle)
		next, _ := v.sky.Phase()
		logger.Info("lunar phase", zap.Stringer("phase", next))
	case sdl.SCANCODE_F12:
		v.screenshot()
	}
}

func (v *Viewer) update(dt float32) {
	if v.dragging {
		dx, dy := v.input.MouseDelta()
		v.camera.HandleDrag(float32(dx), float32(dy))
	}
	if wheel := v.input.WheelDelta(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}
	v.camera.HandleKeys(
		v.input.Axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT),
		v.input.Axis(sdl.SCANCODE_DOWN, sdl.SCANCODE_UP),
		dt)

	v.sky.Update(dt)
}

func (v *Viewer) render() error {
	w, h := v.window.DrawableSize()
	if w <= 0 || h <= 0 {
		return nil
	}
	viewProj := v.camera.ViewProjection(float32(w)/float32(h), nearPlane, farPlane)
	frame := v.sky.Frame()

	if v.cfg.Graphics.Bloom {
		if _, err := v.renderer.RenderGlow(viewProj, &frame, w/2, h/2); err != nil {
			return err
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, w, h)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.renderer.Render(viewProj, &frame)
	if v.cfg.Graphics.Bloom {
		v.renderer.ApplyBloom(float32(v.cfg.Render.Bloom), bloomStrength)
	}
	return nil
}

func (v *Viewer) screenshot() {
	w, h := v.window.DrawableSize()
	pixels := make([]byte, w*h*4)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	name, err := v.shots.Capture(framebuffer.FlipRows(pixels, int(w), int(h)))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

// Close releases GL resources and the window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
