// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SkyVertexShader places the dome at the far plane around the eye.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader composites the sky objects, haze and clear sky.
//
//go:embed sky.frag
var SkyFragmentShader string

// BloomVertexShader draws a fullscreen triangle.
//
//go:embed bloom.vert
var BloomVertexShader string

// BloomFragmentShader blurs the glow target for screen blending.
//
//go:embed bloom.frag
var BloomFragmentShader string
