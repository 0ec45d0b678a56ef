// Package dome builds hemispherical sky meshes and maps between world
// directions and dome texture coordinates.
package dome

import "github.com/go-gl/mathgl/mgl32"

// Geometric minimums for a closed dome.
const (
	MinMeridianSamples = 2 // apex + rim
	MinEquatorSamples  = 3 // smallest closed rim
)

// DefaultUVScale is the UV distance from the apex to the rim.
const DefaultUVScale float32 = 0.44

// DefaultStretch partially compensates the squeeze of the texture near the apex.
const DefaultStretch float32 = 0.3

// TopUV is the texture coordinate of the apex.
var TopUV = mgl32.Vec2{0.5, 0.5}

// Params describes the dome resolution and texture mapping.
type Params struct {
	MeridianSamples int     // vertices from apex to rim along one meridian, apex included
	EquatorSamples  int     // vertices around each ring
	Radius          float32 // world-space radius
	UVScale         float32 // UV distance from apex to rim
	Stretch         float32 // nonlinear stretch; 0 maps elevation linearly
	Outward         bool    // wind triangles for a viewer outside the dome
}

// DefaultParams returns parameters suitable for a full-screen sky.
func DefaultParams() Params {
	return Params{
		MeridianSamples: 16,
		EquatorSamples:  64,
		Radius:          1000,
		UVScale:         DefaultUVScale,
		Stretch:         DefaultStretch,
	}
}

// Vertex is a dome vertex.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh is an indexed triangle list covering the upper hemisphere.
// Vertex 0 is the apex; the last EquatorSamples vertices form the rim.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Params   Params
}

// VertexStride is the number of floats per vertex in Interleaved output.
const VertexStride = 5
