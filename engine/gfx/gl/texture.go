package glbackend

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/emberengine/ember/engine/core"
)

var errNotGLTexture = errors.New("glbackend: texture was not created by this device")

// sortKeySeq hands out stable per-texture ordering values.
var sortKeySeq atomic.Uint32

// Texture2D implements core.Texture for an uploaded GL texture.
type Texture2D struct {
	id   uint32
	w, h int
	key  uint32
}

func (t *Texture2D) Width() int      { return t.w }
func (t *Texture2D) Height() int     { return t.h }
func (t *Texture2D) SortKey() uint32 { return t.key }

func (t *Texture2D) TexelSize() (float32, float32) {
	return 1 / float32(t.w), 1 / float32(t.h)
}

// Release deletes the GL texture object.
func (t *Texture2D) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// CreateTexture uploads tightly packed RGBA8 pixels.
func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("glbackend: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("glbackend: unsupported texture format %d", desc.Format)
	}
	if want := desc.Width * desc.Height * 4; len(desc.Pixels) != want {
		return nil, fmt.Errorf("glbackend: pixel data is %d bytes, want %d", len(desc.Pixels), want)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(desc.Width), int32(desc.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(desc.Pixels))
	// Object-level parameters are a fallback; the device's sampler object
	// overrides these per session.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture2D{id: id, w: desc.Width, h: desc.Height, key: sortKeySeq.Add(1)}, nil
}
