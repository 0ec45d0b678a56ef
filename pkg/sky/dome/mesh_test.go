package dome

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sky/pkg/sky"
)

func testParams(meridian, equator int) Params {
	p := DefaultParams()
	p.MeridianSamples = meridian
	p.EquatorSamples = equator
	return p
}

func TestBuildApexUV(t *testing.T) {
	for meridian := MinMeridianSamples; meridian <= 12; meridian++ {
		for equator := MinEquatorSamples; equator <= 24; equator += 3 {
			m, err := Build(testParams(meridian, equator))
			require.NoError(t, err)
			assert.Equal(t, mgl32.Vec2{0.5, 0.5}, m.Apex().TexCoord,
				"apex UV for meridian=%d equator=%d", meridian, equator)
		}
	}
}

func TestBuildRimUVDistance(t *testing.T) {
	for _, stretch := range []float32{0, DefaultStretch, 1.5} {
		p := testParams(9, 37)
		p.Stretch = stretch
		m, err := Build(p)
		require.NoError(t, err)

		rim := m.Rim()
		require.Len(t, rim, 37)
		for i, v := range rim {
			d := v.TexCoord.Sub(TopUV).Len()
			assert.InDelta(t, DefaultUVScale, d, 1e-5, "rim vertex %d stretch %v", i, stretch)
			assert.Equal(t, float32(0), v.Position.Y(), "rim vertex %d must be on the horizon", i)
		}
	}
}

func TestBuildCounts(t *testing.T) {
	m, err := Build(testParams(5, 8))
	require.NoError(t, err)

	assert.Len(t, m.Vertices, 1+4*8)
	assert.Equal(t, 8*(2*5-3), m.TriangleCount())
	assert.Len(t, m.Interleaved(), len(m.Vertices)*VertexStride)

	// Only one vertex sits on the pole.
	poles := 0
	for _, v := range m.Vertices {
		if v.Position.X() == 0 && v.Position.Z() == 0 {
			poles++
		}
	}
	assert.Equal(t, 1, poles)

	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
}

func TestBuildMinimalDome(t *testing.T) {
	m, err := Build(testParams(MinMeridianSamples, MinEquatorSamples))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, 3, m.TriangleCount())
}

func TestBuildRadius(t *testing.T) {
	p := testParams(6, 12)
	p.Radius = 250
	m, err := Build(p)
	require.NoError(t, err)
	for i, v := range m.Vertices {
		assert.InDelta(t, 250, v.Position.Len(), 1e-2, "vertex %d", i)
	}
}

func TestBuildWindingFacesInside(t *testing.T) {
	for _, outward := range []bool{false, true} {
		p := testParams(4, 10)
		p.Outward = outward
		m, err := Build(p)
		require.NoError(t, err)

		for i := 0; i < len(m.Indices); i += 3 {
			a := m.Vertices[m.Indices[i]].Position
			b := m.Vertices[m.Indices[i+1]].Position
			c := m.Vertices[m.Indices[i+2]].Position
			normal := b.Sub(a).Cross(c.Sub(a))
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			facing := normal.Dot(centroid)
			if outward {
				assert.Greater(t, facing, float32(0), "triangle %d should face out", i/3)
			} else {
				assert.Less(t, facing, float32(0), "triangle %d should face in", i/3)
			}
		}
	}
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"meridian below minimum", func(p *Params) { p.MeridianSamples = 1 }},
		{"equator below minimum", func(p *Params) { p.EquatorSamples = 2 }},
		{"zero radius", func(p *Params) { p.Radius = 0 }},
		{"negative radius", func(p *Params) { p.Radius = -5 }},
		{"infinite radius", func(p *Params) { p.Radius = math32.Inf(1) }},
		{"uv scale too large", func(p *Params) { p.UVScale = 0.6 }},
		{"zero uv scale", func(p *Params) { p.UVScale = 0 }},
		{"negative stretch", func(p *Params) { p.Stretch = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			m, err := Build(p)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, sky.ErrInvalidArgument)
		})
	}
}
