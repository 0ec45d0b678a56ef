// Package scene renders the sky dome with OpenGL.
package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sky/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sky/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-sky/internal/engine/shader"
	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/sky"
	"github.com/Faultbox/midgard-sky/pkg/sky/dome"
)

// MaxObjects is the number of objects the fragment program composites.
const MaxObjects = sky.MaxObjects

// BakeSize is the edge of textures baked from procedural samplers.
const BakeSize = 256

type glTexture struct {
	id  uint32
	key any
}

// SkyRenderer draws a dome mesh shaded by a sky.Frame.
type SkyRenderer struct {
	program *shader.Program
	bloom   *shader.Program
	glow    *framebuffer.Framebuffer

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	mapping    dome.Mapping

	textures map[string]*glTexture
	dropped  int
}

// NewSkyRenderer compiles the sky programs and uploads the mesh.
func NewSkyRenderer(mesh *dome.Mesh) (*SkyRenderer, error) {
	program, err := shader.New(shaders.SkyVertexShader, shaders.SkyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	bloom, err := shader.New(shaders.BloomVertexShader, shaders.BloomFragmentShader)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("bloom shader: %w", err)
	}

	r := &SkyRenderer{
		program:  program,
		bloom:    bloom,
		mapping:  mesh.Mapping(),
		textures: make(map[string]*glTexture),
	}
	r.upload(mesh)

	// Samplers are bound to fixed units once.
	program.Use()
	for i := range MaxObjects {
		program.SetInt(fmt.Sprintf("uTex[%d]", i), int32(i))
	}

	logger.Info("sky renderer ready",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()))
	return r, nil
}

func (r *SkyRenderer) upload(mesh *dome.Mesh) {
	vertices := mesh.Interleaved()
	r.indexCount = int32(len(mesh.Indices))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	stride := int32(dome.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// Render draws the color pass into the bound framebuffer.
func (r *SkyRenderer) Render(viewProj mgl32.Mat4, f *sky.Frame) {
	r.draw(viewProj, f, false)
}

// RenderGlow draws the glow pass into the renderer's glow target, sized
// width×height, and returns the target's texture.
func (r *SkyRenderer) RenderGlow(viewProj mgl32.Mat4, f *sky.Frame, width, height int32) (uint32, error) {
	if r.glow == nil {
		fb, err := framebuffer.New(width, height, false)
		if err != nil {
			return 0, err
		}
		r.glow = fb
	}
	r.glow.Resize(width, height)

	restore := r.glow.BindWithViewport()
	r.glow.Clear(0, 0, 0, 0)
	r.draw(viewProj, f, true)
	restore()
	return r.glow.ColorTexture(), nil
}

// ApplyBloom blurs the last glow pass and screens it over the bound framebuffer.
func (r *SkyRenderer) ApplyBloom(radius, strength float32) {
	if r.glow == nil {
		return
	}
	w, h := r.glow.Size()

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_COLOR)

	r.bloom.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.glow.ColorTexture())
	r.bloom.SetInt("uGlow", 0)
	r.bloom.SetVec2("uTexel", mgl32.Vec2{1 / float32(w), 1 / float32(h)})
	r.bloom.SetFloat("uRadius", radius)
	r.bloom.SetFloat("uStrength", strength)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
}

// ReadGlow returns the last glow pass as an image.
func (r *SkyRenderer) ReadGlow() *image.NRGBA {
	if r.glow == nil {
		return nil
	}
	return r.glow.ReadImage()
}

func (r *SkyRenderer) draw(viewProj mgl32.Mat4, f *sky.Frame, glow bool) {
	p := r.program
	p.Use()

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	p.SetMat4("uViewProj", viewProj)
	p.SetInt("uGlowPass", boolInt(glow))
	p.SetVec2("uTopUV", f.TopUV)
	p.SetFloat("uUVScale", r.mapping.UVScale)
	p.SetFloat("uStretch", r.mapping.Stretch)

	p.SetVec4("uClear", f.Clear.Vec4())
	p.SetVec4("uClearGlow", f.ClearGlow.Vec4())
	p.SetInt("uHazeEnabled", boolInt(f.Haze.Opacity > 0))
	p.SetVec4("uHazeColor", f.Haze.Color.Vec4())
	p.SetVec4("uHazeGlow", f.Haze.Glow.Vec4())
	p.SetFloat("uHazeOpacity", f.Haze.Opacity)
	p.SetFloat("uHazeHeight", f.HazeHeight)

	objects := f.Objects
	if len(objects) > MaxObjects {
		if r.dropped != len(objects)-MaxObjects {
			r.dropped = len(objects) - MaxObjects
			logger.Warn("too many sky objects, dropping the nearest",
				zap.Int("objects", len(objects)),
				zap.Int("max", MaxObjects))
		}
	}
	objects = objects[:f.Drawn()]

	n := 0
	for i := range objects {
		o := &objects[i]
		if !o.Visible || o.Texture == nil {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(n))
		gl.BindTexture(gl.TEXTURE_2D, r.texture(o))

		p.SetVec2(fmt.Sprintf("uCenter[%d]", n), o.Transform.Center)
		p.SetVec2(fmt.Sprintf("uAxisU[%d]", n), o.Transform.U)
		p.SetVec2(fmt.Sprintf("uAxisV[%d]", n), o.Transform.V)
		p.SetVec4(fmt.Sprintf("uTint[%d]", n), o.Tint.Vec4())
		p.SetVec4(fmt.Sprintf("uGlow[%d]", n), o.Glow.Vec4())
		p.SetInt(fmt.Sprintf("uTiled[%d]", n), boolInt(o.Tiled))
		n++
	}
	p.SetInt("uObjectCount", int32(n))

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// texture returns the GL texture for an object's sampler, uploading or
// re-baking it when the sampler changed.
func (r *SkyRenderer) texture(o *sky.Object) uint32 {
	key := samplerKey(o.Texture)
	t, ok := r.textures[o.Name]
	if ok && t.key == key {
		return t.id
	}
	if !ok {
		t = &glTexture{}
		gl.GenTextures(1, &t.id)
		r.textures[o.Name] = t
	}
	t.key = key

	var img *image.NRGBA
	if s, ok := o.Texture.(*texture.Image); ok {
		img = s.Pix
	} else {
		img = texture.Bake(o.Texture, BakeSize)
	}

	wrap := int32(gl.CLAMP_TO_EDGE)
	if o.Tiled {
		wrap = gl.REPEAT
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	logger.Debug("sky texture uploaded",
		zap.String("object", o.Name),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return t.id
}

// samplerKey identifies a sampler's content. Procedural samplers compare by
// value, so a new moon phase re-bakes the moon.
func samplerKey(s texture.Sampler) any {
	switch v := s.(type) {
	case *texture.Image:
		return v
	case texture.MoonDisc, texture.Solid:
		return v
	case texture.Phased:
		return [2]any{samplerKey(v.Base), v.Disc}
	default:
		return fmt.Sprintf("%T:%p", s, s)
	}
}

// Destroy releases every GL resource.
func (r *SkyRenderer) Destroy() {
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t.id)
	}
	clear(r.textures)
	if r.glow != nil {
		r.glow.Destroy()
		r.glow = nil
	}
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteVertexArrays(1, &r.vao)
	r.program.Delete()
	r.bloom.Delete()
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
