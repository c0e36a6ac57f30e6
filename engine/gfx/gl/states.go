package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/emberengine/ember/engine/core"
)

// ApplyState binds the fixed-function state for subsequent submissions.
func (d *Device) ApplyState(s core.PipelineState) {
	d.applyBlend(s.Blend)
	d.applyDepth(s.Depth)
	d.applyRaster(s.Raster)
	d.applySampler(s.Sampler)
}

func (d *Device) applyBlend(b core.BlendState) {
	if !b.Enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(
		blendFactor(b.SrcColor), blendFactor(b.DstColor),
		blendFactor(b.SrcAlpha), blendFactor(b.DstAlpha),
	)
}

func (d *Device) applyDepth(s core.DepthState) {
	if !s.TestEnabled {
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(s.WriteEnabled)
}

func (d *Device) applyRaster(s core.RasterState) {
	switch s.Cull {
	case core.CullNone:
		gl.Disable(gl.CULL_FACE)
	case core.CullClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case core.CullCounterClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CW)
		gl.CullFace(gl.BACK)
	}
}

func (d *Device) applySampler(s core.SamplerState) {
	filter := int32(gl.LINEAR)
	if s.Filter == core.FilterPoint {
		filter = gl.NEAREST
	}
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_MIN_FILTER, filter)
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_MAG_FILTER, filter)
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_WRAP_S, wrapMode(s.WrapU))
	gl.SamplerParameteri(d.sampler, gl.TEXTURE_WRAP_T, wrapMode(s.WrapV))
}

func blendFactor(f core.BlendFactor) uint32 {
	switch f {
	case core.BlendOne:
		return gl.ONE
	case core.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case core.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case core.BlendDstColor:
		return gl.DST_COLOR
	default:
		return gl.ZERO
	}
}

func wrapMode(m core.WrapMode) int32 {
	if m == core.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}
