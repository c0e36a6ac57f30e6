package spritebatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/core"
)

// stubFont yields one canned glyph per rune of the text.
type stubFont struct {
	tex    core.Texture
	glyphs []Glyph
}

func (f stubFont) Texture() core.Texture { return f.tex }
func (f stubFont) LineHeight() float32   { return 16 }

func (f stubFont) Layout(text string, fn func(Glyph)) {
	i := 0
	for range text {
		if i >= len(f.glyphs) {
			return
		}
		fn(f.glyphs[i])
		i++
	}
}

func testFont(tex core.Texture) stubFont {
	return stubFont{
		tex: tex,
		glyphs: []Glyph{
			{Source: Rect{X: 0, Y: 0, W: 8, H: 12}, Offset: Vec2{X: 0, Y: 4}, Advance: 10},
			{Source: Rect{X: 8, Y: 0, W: 8, H: 12}, Offset: Vec2{X: 10, Y: 4}, Advance: 10},
		},
	}
}

func TestDrawTextGlyphQuads(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 64, key: 1}
	font := testFont(tex)

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.DrawText(font, "ab", Text{Position: Vec2{X: 100, Y: 50}}))
	require.NoError(t, b.End())

	// One submission: every glyph samples the same atlas texture.
	require.Len(t, dev.subs, 1)
	require.Equal(t, 2, dev.subs[0].quads)

	first := quadCorners(dev.subs[0], 0)
	assert.Equal(t, [2]float32{100, 54}, first[0]) // position + offset
	assert.Equal(t, [2]float32{108, 66}, first[3]) // + glyph size

	second := quadCorners(dev.subs[0], 1)
	assert.Equal(t, [2]float32{110, 54}, second[0]) // advanced by 10

	// Atlas UVs from the glyph's pixel rect: 8/64 = 0.125.
	uv := quadUV(dev.subs[0], 1)
	assert.Equal(t, [2]float32{0.125, 0}, uv[0])
	assert.Equal(t, [2]float32{0.25, 0.1875}, uv[3])
}

func TestDrawTextScaleAndOrigin(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 64, key: 1}
	font := testFont(tex)

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.DrawText(font, "a", Text{
		Position: Vec2{X: 100, Y: 100},
		Origin:   Vec2{X: 5, Y: 8},
		Scale:    Vec2{X: 2, Y: 2},
	}))
	require.NoError(t, b.End())

	got := quadCorners(dev.subs[0], 0)
	// offset (0,4) - origin (5,8) = (-5,-4), scaled by 2 -> (-10,-8).
	assert.Equal(t, [2]float32{90, 92}, got[0])
	assert.Equal(t, [2]float32{90 + 16, 92 + 24}, got[3])
}

func TestDrawTextEmptyString(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 64, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.DrawText(testFont(tex), "", Text{}))
	require.NoError(t, b.End())
	assert.Empty(t, dev.subs)
}

func TestDrawTextImmediate(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 64, key: 1}

	require.NoError(t, b.Begin(Options{Sort: SortImmediate}))
	require.NoError(t, b.DrawText(testFont(tex), "ab", Text{}))
	require.NoError(t, b.End())

	// One submission per glyph under the immediate policy.
	assert.Len(t, dev.subs, 2)
}

func TestDrawRunes(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 64, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.DrawRunes(testFont(tex), []rune("ab"), Text{}))
	require.NoError(t, b.End())
	require.Len(t, dev.subs, 1)
	assert.Equal(t, 2, dev.subs[0].quads)
}
