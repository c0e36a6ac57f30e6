package core

// Fixed-function pipeline state descriptors. The named presets cover the
// combinations 2D rendering actually uses; custom values are plain struct
// literals.

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
)

// BlendState controls framebuffer blending.
type BlendState struct {
	Enabled  bool
	SrcColor BlendFactor
	DstColor BlendFactor
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
}

var (
	// BlendAlpha is premultiplied-alpha blending (the default).
	BlendAlpha = BlendState{true, BlendOne, BlendOneMinusSrcAlpha, BlendOne, BlendOneMinusSrcAlpha}
	// BlendNonPremultiplied blends straight-alpha sources.
	BlendNonPremultiplied = BlendState{true, BlendSrcAlpha, BlendOneMinusSrcAlpha, BlendSrcAlpha, BlendOneMinusSrcAlpha}
	// BlendAdditive accumulates color (glow, particles).
	BlendAdditive = BlendState{true, BlendSrcAlpha, BlendOne, BlendSrcAlpha, BlendOne}
	// BlendOpaque disables blending.
	BlendOpaque = BlendState{}
)

type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterPoint
)

type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

// SamplerState controls texture filtering and addressing.
type SamplerState struct {
	Filter FilterMode
	WrapU  WrapMode
	WrapV  WrapMode
}

var (
	SamplerLinearClamp = SamplerState{FilterLinear, WrapClamp, WrapClamp}
	SamplerPointClamp  = SamplerState{FilterPoint, WrapClamp, WrapClamp}
	SamplerLinearWrap  = SamplerState{FilterLinear, WrapRepeat, WrapRepeat}
	SamplerPointWrap   = SamplerState{FilterPoint, WrapRepeat, WrapRepeat}
)

// DepthState controls depth testing and writes.
type DepthState struct {
	TestEnabled  bool
	WriteEnabled bool
}

var (
	// DepthNone disables the depth buffer entirely (the 2D default).
	DepthNone = DepthState{}
	// DepthDefault tests and writes.
	DepthDefault = DepthState{TestEnabled: true, WriteEnabled: true}
	// DepthRead tests without writing.
	DepthRead = DepthState{TestEnabled: true}
)

type CullMode int

const (
	CullNone CullMode = iota
	CullClockwise
	CullCounterClockwise
)

// RasterState controls primitive culling.
type RasterState struct {
	Cull CullMode
}

var (
	RasterCullNone             = RasterState{CullNone}
	RasterCullClockwise        = RasterState{CullClockwise}
	RasterCullCounterClockwise = RasterState{CullCounterClockwise}
)

// PipelineState bundles the four state groups a batch session binds at once.
type PipelineState struct {
	Blend   BlendState
	Sampler SamplerState
	Depth   DepthState
	Raster  RasterState
}
