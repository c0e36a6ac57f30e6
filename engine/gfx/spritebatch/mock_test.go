package spritebatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/core"
)

// fakeTexture implements core.Texture without a GPU.
type fakeTexture struct {
	w, h int
	key  uint32
}

func (t *fakeTexture) Width() int      { return t.w }
func (t *fakeTexture) Height() int     { return t.h }
func (t *fakeTexture) SortKey() uint32 { return t.key }
func (t *fakeTexture) TexelSize() (float32, float32) {
	return 1 / float32(t.w), 1 / float32(t.h)
}

type fakeEffect struct {
	transform [16]float32
	released  bool
}

func (e *fakeEffect) SetTransform(m [16]float32) { e.transform = m }
func (e *fakeEffect) Release()                   { e.released = true }

// submission records one Device.Submit call.
type submission struct {
	tex   core.Texture
	verts []float32
	quads int
}

// recordDevice implements core.Device by recording everything.
type recordDevice struct {
	w, h      int
	halfTexel bool
	bindErr   error

	subs    []submission
	states  []core.PipelineState
	bound   core.Effect
	effects []*fakeEffect
}

func newRecordDevice() *recordDevice { return &recordDevice{w: 800, h: 600} }

func (d *recordDevice) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	return &fakeTexture{w: desc.Width, h: desc.Height}, nil
}

func (d *recordDevice) CreateEffect(_, _ string) (core.Effect, error) {
	e := &fakeEffect{}
	d.effects = append(d.effects, e)
	return e, nil
}

func (d *recordDevice) ApplyState(s core.PipelineState) { d.states = append(d.states, s) }

func (d *recordDevice) BindEffect(e core.Effect) error {
	if d.bindErr != nil {
		return d.bindErr
	}
	d.bound = e
	return nil
}

func (d *recordDevice) Submit(tex core.Texture, verts []float32, quads int) error {
	cp := make([]float32, len(verts))
	copy(cp, verts)
	d.subs = append(d.subs, submission{tex: tex, verts: cp, quads: quads})
	return nil
}

func (d *recordDevice) Viewport() (int, int) { return d.w, d.h }

func (d *recordDevice) HalfTexelOffset() bool { return d.halfTexel }

func (d *recordDevice) Clear(_, _, _, _ float32) {}

func (d *recordDevice) Resize(w, h int) { d.w, d.h = w, h }

func (d *recordDevice) Shutdown() {}

var errBindFailed = errors.New("bind failed")

func newTestBatch(t *testing.T) (*Batch, *recordDevice) {
	t.Helper()
	dev := newRecordDevice()
	b, err := New(dev, "vs", "fs")
	require.NoError(t, err)
	return b, dev
}

// quadCorners extracts the (x, y) pairs of quad q from a flattened
// submission, in TL, TR, BL, BR order.
func quadCorners(s submission, q int) [4][2]float32 {
	var out [4][2]float32
	base := q * vertsPerQuad * vertexFloats
	for i := 0; i < 4; i++ {
		out[i][0] = s.verts[base+i*vertexFloats+0]
		out[i][1] = s.verts[base+i*vertexFloats+1]
	}
	return out
}

// quadDepth returns the z of the first vertex of quad q.
func quadDepth(s submission, q int) float32 {
	return s.verts[q*vertsPerQuad*vertexFloats+2]
}

// quadUV extracts the (u, v) pairs of quad q in corner order.
func quadUV(s submission, q int) [4][2]float32 {
	var out [4][2]float32
	base := q * vertsPerQuad * vertexFloats
	for i := 0; i < 4; i++ {
		out[i][0] = s.verts[base+i*vertexFloats+7]
		out[i][1] = s.verts[base+i*vertexFloats+8]
	}
	return out
}

// quadColor returns the RGBA of the first vertex of quad q.
func quadColor(s submission, q int) [4]float32 {
	base := q * vertsPerQuad * vertexFloats
	return [4]float32{
		s.verts[base+3], s.verts[base+4], s.verts[base+5], s.verts[base+6],
	}
}
