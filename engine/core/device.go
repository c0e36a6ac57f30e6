package core

// Texture is an opaque GPU texture handle. Implementations live in the
// graphics backend; the engine only needs identity, dimensions and the
// per-texel step used to normalize pixel-space source rectangles.
type Texture interface {
	Width() int
	Height() int
	// SortKey is a stable per-instance ordering value. Two textures never
	// share a key, and a texture's key never changes.
	SortKey() uint32
	// TexelSize returns (1/width, 1/height).
	TexelSize() (float32, float32)
}

// TextureFormat of uploaded pixel data.
type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

// TextureDesc describes a texture upload.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // tightly packed, row-major, top-left origin
}

// Effect is a bound shader program with a settable transform parameter.
type Effect interface {
	SetTransform(m [16]float32)
	Release()
}

// Device is the render-state sink the batching engine draws through.
// It is single-thread affine: all calls must come from the thread that
// owns the GL context.
type Device interface {
	CreateTexture(TextureDesc) (Texture, error)
	CreateEffect(vertSrc, fragSrc string) (Effect, error)

	// ApplyState binds the fixed-function pipeline state for subsequent
	// submissions.
	ApplyState(PipelineState)
	// BindEffect makes the effect current for subsequent submissions.
	BindEffect(Effect) error
	// Submit uploads quadCount*4 vertices (9 floats each: pos3, color4,
	// uv2, corners TL,TR,BL,BR) and issues one draw for the texture.
	Submit(tex Texture, verts []float32, quadCount int) error

	Viewport() (w, h int)
	// HalfTexelOffset reports whether the rasterizer's sample convention
	// needs a -0.5 pixel correction baked into the projection.
	HalfTexelOffset() bool

	Clear(r, g, b, a float32)
	Resize(w, h int)
	Shutdown()
}
