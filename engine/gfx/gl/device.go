// Package glbackend implements the core.Device boundary on OpenGL 3.3
// core profile. Single-thread affine: every call must come from the
// thread that owns the GL context.
package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/emberengine/ember/engine/core"
)

const vertexFloats = 9 // pos3 + color4 + uv2
const vertsPerQuad = 4
const indsPerQuad = 6

// Device implements core.Device.
type Device struct {
	win core.Window

	vao     uint32
	vbo     uint32
	ibo     uint32
	sampler uint32

	vboCap   int // bytes
	iboQuads int // quads the index buffer currently covers

	effect *Effect // currently bound
	w, h   int
}

// NewDevice creates the GL device. The window's context must already be
// current on this thread. cfg.MaxSprites pre-sizes the index buffer.
func NewDevice(win core.Window, cfg core.Config) (*Device, error) {
	d := &Device{win: win}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)

	// layout(location = 0) in vec3 aPos;
	// layout(location = 1) in vec4 aColor;
	// layout(location = 2) in vec2 aUV;
	const stride = vertexFloats * 4 // bytes
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 7*4)

	gl.GenBuffers(1, &d.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ibo)
	quads := cfg.MaxSprites
	if quads < 1024 {
		quads = 1024
	}
	d.ensureIndices(quads)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	gl.GenSamplers(1, &d.sampler)

	d.w, d.h = win.FramebufferSize()
	return d, nil
}

func (d *Device) Shutdown() {
	if d.sampler != 0 {
		gl.DeleteSamplers(1, &d.sampler)
	}
	if d.ibo != 0 {
		gl.DeleteBuffers(1, &d.ibo)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
}

func (d *Device) Resize(w, h int) {
	d.w, d.h = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *Device) Viewport() (int, int) { return d.w, d.h }

// HalfTexelOffset reports false: GL samples at pixel centers already.
func (d *Device) HalfTexelOffset() bool { return false }

func (d *Device) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) BindEffect(e core.Effect) error {
	eff, ok := e.(*Effect)
	if !ok {
		return errNotGLEffect
	}
	d.effect = eff
	gl.UseProgram(eff.program)
	return nil
}

// Submit uploads quadCount*4 vertices and issues one indexed draw for the
// texture. The index buffer holds the shared 0,2,1 1,2,3 quad pattern and
// grows on demand.
func (d *Device) Submit(tex core.Texture, verts []float32, quadCount int) error {
	if quadCount == 0 {
		return nil
	}
	t, ok := tex.(*Texture2D)
	if !ok {
		return errNotGLTexture
	}

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ibo)
	d.ensureIndices(quadCount)

	// Orphan the previous buffer so the driver never stalls on it.
	size := len(verts) * 4
	if size > d.vboCap {
		d.vboCap = size
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(verts), gl.STREAM_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, d.vboCap, nil, gl.STREAM_DRAW)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.BindSampler(0, d.sampler)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(quadCount*indsPerQuad), gl.UNSIGNED_INT, 0)

	gl.BindVertexArray(0)
	return nil
}

// ensureIndices rebuilds the static quad index pattern when a submission
// exceeds the current coverage.
func (d *Device) ensureIndices(quads int) {
	if quads <= d.iboQuads {
		return
	}
	if d.iboQuads == 0 {
		d.iboQuads = 1024
	}
	for d.iboQuads < quads {
		d.iboQuads *= 2
	}
	inds := make([]uint32, 0, d.iboQuads*indsPerQuad)
	for q := 0; q < d.iboQuads; q++ {
		v := uint32(q * vertsPerQuad)
		inds = append(inds, v+0, v+2, v+1, v+1, v+2, v+3)
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), gl.STATIC_DRAW)
}
