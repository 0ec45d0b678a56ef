package dome

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	skymath "github.com/Faultbox/midgard-sky/pkg/math"
	"github.com/Faultbox/midgard-sky/pkg/sky"
)

// Validate checks that the parameters describe a closed, non-degenerate dome.
func (p Params) Validate() error {
	if p.MeridianSamples < MinMeridianSamples {
		return fmt.Errorf("%w: meridian samples %d, need at least %d",
			sky.ErrInvalidArgument, p.MeridianSamples, MinMeridianSamples)
	}
	if p.EquatorSamples < MinEquatorSamples {
		return fmt.Errorf("%w: equator samples %d, need at least %d",
			sky.ErrInvalidArgument, p.EquatorSamples, MinEquatorSamples)
	}
	if !(p.Radius > 0) || !skymath.IsFinite(p.Radius) {
		return fmt.Errorf("%w: radius %v must be positive", sky.ErrInvalidArgument, p.Radius)
	}
	if !(p.UVScale > 0) || p.UVScale > 0.5 {
		return fmt.Errorf("%w: uv scale %v outside (0, 0.5]", sky.ErrInvalidArgument, p.UVScale)
	}
	if !(p.Stretch >= 0) || !skymath.IsFinite(p.Stretch) {
		return fmt.Errorf("%w: stretch %v must be non-negative", sky.ErrInvalidArgument, p.Stretch)
	}
	return nil
}

// Build generates the dome mesh for the given parameters.
func Build(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rings := p.MeridianSamples - 1
	ringSize := p.EquatorSamples
	mapping := Mapping{UVScale: p.UVScale, Stretch: p.Stretch}

	vertices := make([]Vertex, 0, 1+rings*ringSize)
	vertices = append(vertices, Vertex{
		Position: mgl32.Vec3{0, p.Radius, 0},
		TexCoord: TopUV,
	})

	// Precompute azimuth directions once; every ring reuses them.
	cosAz := make([]float32, ringSize)
	sinAz := make([]float32, ringSize)
	for j := range ringSize {
		az := skymath.TwoPi * float32(j) / float32(ringSize)
		cosAz[j] = math32.Cos(az)
		sinAz[j] = math32.Sin(az)
	}

	for i := 1; i <= rings; i++ {
		t := float32(i) / float32(rings)
		elevation := skymath.HalfPi * (1 - t)
		y := p.Radius * math32.Sin(elevation)
		horizontal := p.Radius * math32.Cos(elevation)
		if i == rings {
			// Rim sits exactly on the horizon.
			y = 0
			horizontal = p.Radius
		}
		d := p.UVScale * mapping.stretch(t)

		for j := range ringSize {
			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{horizontal * cosAz[j], y, horizontal * sinAz[j]},
				TexCoord: mgl32.Vec2{TopUV.X() + d*cosAz[j], TopUV.Y() + d*sinAz[j]},
			})
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  buildIndices(rings, ringSize, p.Outward),
		Params:   p,
	}, nil
}

// buildIndices emits the apex fan and the ring quads.
// Default winding is counter-clockwise as seen from inside the dome.
func buildIndices(rings, ringSize int, outward bool) []uint32 {
	ringStart := func(i int) uint32 { return uint32(1 + (i-1)*ringSize) }

	indices := make([]uint32, 0, 3*ringSize*(2*rings-1))
	tri := func(a, b, c uint32) {
		if outward {
			indices = append(indices, a, c, b)
		} else {
			indices = append(indices, a, b, c)
		}
	}

	first := ringStart(1)
	for j := range ringSize {
		next := (j + 1) % ringSize
		tri(0, first+uint32(j), first+uint32(next))
	}

	for i := 1; i < rings; i++ {
		upper := ringStart(i)
		lower := ringStart(i + 1)
		for j := range ringSize {
			next := (j + 1) % ringSize
			u0, u1 := upper+uint32(j), upper+uint32(next)
			l0, l1 := lower+uint32(j), lower+uint32(next)
			tri(u0, l0, l1)
			tri(u0, l1, u1)
		}
	}
	return indices
}

// Apex returns the single pole vertex.
func (m *Mesh) Apex() Vertex {
	return m.Vertices[0]
}

// Rim returns the horizon ring.
func (m *Mesh) Rim() []Vertex {
	return m.Vertices[len(m.Vertices)-m.Params.EquatorSamples:]
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Interleaved returns x,y,z,u,v per vertex, ready for GPU upload.
func (m *Mesh) Interleaved() []float32 {
	data := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.TexCoord.X(), v.TexCoord.Y(),
		)
	}
	return data
}
