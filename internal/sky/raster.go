package sky

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"strings"
	"time"

	bildblend "github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	"github.com/Faultbox/midgard-sky/internal/logger"
	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky/composite"
)

// Projection selects how output pixels map to sky directions.
type Projection int

const (
	// ProjectionDome writes the dome's UV square directly.
	ProjectionDome Projection = iota
	// ProjectionPanorama is equirectangular: azimuth across, elevation down.
	ProjectionPanorama
	// ProjectionPerspective is a pinhole camera at the dome center.
	ProjectionPerspective
)

func (p Projection) String() string {
	switch p {
	case ProjectionDome:
		return "dome"
	case ProjectionPanorama:
		return "panorama"
	case ProjectionPerspective:
		return "perspective"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// ParseProjection parses a projection name.
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dome", "":
		return ProjectionDome, nil
	case "panorama", "equirect":
		return ProjectionPanorama, nil
	case "perspective", "camera":
		return ProjectionPerspective, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

// Renderer rasterizes a Frame on the CPU.
type Renderer struct {
	Width, Height int
	Projection    Projection
	Workers       int             // parallel rows; 0 uses every CPU
	Ground        composite.Color // pixels that see no sky

	// Perspective camera, in degrees. Yaw 0 looks north, positive yaw turns east.
	Yaw, Pitch, FOV float32
}

// Images holds the color and glow passes.
type Images struct {
	Color *image.NRGBA
	Glow  *image.NRGBA
}

// Render shades every pixel of the frame. It stops early with the context's
// error when ctx is cancelled.
func (r *Renderer) Render(ctx context.Context, f *Frame) (*Images, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, r.Width, r.Height)
	}
	if r.Projection == ProjectionPerspective && !(r.FOV > 0 && r.FOV < 180) {
		return nil, fmt.Errorf("%w: field of view %v", ErrInvalidConfig, r.FOV)
	}

	start := time.Now()
	out := &Images{
		Color: image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height)),
		Glow:  image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height)),
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cam := r.cameraBasis()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := range r.Height {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := range r.Width {
				res, sky := r.shadePixel(f, cam, x, y)
				if !sky {
					res = composite.Result{Color: r.Ground, Glow: composite.Transparent}
				}
				out.Color.SetNRGBA(x, y, res.Color.NRGBA())
				out.Glow.SetNRGBA(x, y, res.Glow.NRGBA())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Named("raster").Debug("frame rendered",
		zap.Stringer("projection", r.Projection),
		zap.Int("width", r.Width),
		zap.Int("height", r.Height),
		zap.Int("workers", workers),
		zap.Duration("took", time.Since(start)))
	return out, nil
}

func (r *Renderer) shadePixel(f *Frame, cam mgl32.Mat3, x, y int) (composite.Result, bool) {
	u := (float32(x) + 0.5) / float32(r.Width)
	v := (float32(y) + 0.5) / float32(r.Height)

	switch r.Projection {
	case ProjectionPanorama:
		azimuth := u * skymath.TwoPi
		elevation := (0.5 - v) * skymath.Pi
		return r.shadeDirection(f, direction(azimuth, elevation))
	case ProjectionPerspective:
		aspect := float32(r.Width) / float32(r.Height)
		tanHalf := math32.Tan(skymath.DegToRad(r.FOV) / 2)
		ray := mgl32.Vec3{(2*u - 1) * tanHalf * aspect, (1 - 2*v) * tanHalf, -1}
		return r.shadeDirection(f, cam.Mul3x1(ray))
	default:
		uv := mgl32.Vec2{u, v}
		if uv.Sub(f.TopUV).Len() > f.Mapping.UVScale {
			return composite.Result{}, false
		}
		return f.Shade(uv), true
	}
}

func (r *Renderer) shadeDirection(f *Frame, dir mgl32.Vec3) (composite.Result, bool) {
	uv, above := f.Mapping.DirectionUV(dir)
	if !above {
		return composite.Result{}, false
	}
	return f.Shade(uv), true
}

// cameraBasis rotates camera space (-Z forward) into the world.
func (r *Renderer) cameraBasis() mgl32.Mat3 {
	yaw := mgl32.Rotate3DY(-skymath.DegToRad(r.Yaw))
	pitch := mgl32.Rotate3DX(skymath.DegToRad(r.Pitch))
	return yaw.Mul3(pitch)
}

// direction builds a world direction from azimuth (0 east, turning south)
// and elevation, both in radians.
func direction(azimuth, elevation float32) mgl32.Vec3 {
	h := math32.Cos(elevation)
	return mgl32.Vec3{h * math32.Cos(azimuth), math32.Sin(elevation), h * math32.Sin(azimuth)}
}

// Bloom blurs the glow pass and screens it over the color pass.
func (i *Images) Bloom(radius float64) *image.NRGBA {
	if radius <= 0 {
		return i.Color
	}
	glow := blur.Gaussian(i.Glow, radius)
	return texture.ToNRGBA(bildblend.Screen(i.Color, glow))
}
