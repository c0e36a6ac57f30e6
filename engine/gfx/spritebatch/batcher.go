package spritebatch

import "github.com/emberengine/ember/engine/core"

// Statistics captures the counts generated during a batch session.
type Statistics struct {
	DrawCalls int // submissions issued to the device
	QuadCount int // sprites/glyphs recorded
}

// TotalVertexCount reports vertices submitted this session.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this session.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// batcher converts an ordered item list into the fewest possible device
// submissions: one per maximal contiguous run of items sharing a texture.
type batcher struct {
	dev   core.Device
	verts []float32
}

func (b *batcher) emit(items []item, stats *Statistics) error {
	var cur core.Texture
	quads := 0
	b.verts = b.verts[:0]

	for i := range items {
		it := &items[i]
		if it.tex != cur {
			if quads > 0 {
				if err := b.submit(cur, quads, stats); err != nil {
					return err
				}
				quads = 0
			}
			cur = it.tex
		}
		b.verts = it.quad.appendTo(b.verts)
		quads++
	}
	if quads > 0 {
		return b.submit(cur, quads, stats)
	}
	return nil
}

func (b *batcher) submit(tex core.Texture, quads int, stats *Statistics) error {
	if err := b.dev.Submit(tex, b.verts, quads); err != nil {
		return err
	}
	stats.DrawCalls++
	b.verts = b.verts[:0]
	return nil
}
