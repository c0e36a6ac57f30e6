package spritebatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/colors"
	"github.com/emberengine/ember/engine/core"
)

func TestProtocolViolations(t *testing.T) {
	b, _ := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	// Before any Begin.
	require.ErrorIs(t, b.Draw(tex, Sprite{Position: &Vec2{}}), ErrSessionNotOpen)
	require.ErrorIs(t, b.End(), ErrSessionNotOpen)

	require.NoError(t, b.Begin(Options{}))
	require.ErrorIs(t, b.Begin(Options{}), ErrSessionOpen)

	// The failed Begin left the session open.
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}}))
	require.NoError(t, b.End())

	// Closed again.
	require.ErrorIs(t, b.End(), ErrSessionNotOpen)
}

func TestDrawArgumentValidation(t *testing.T) {
	b, _ := newTestBatch(t)
	require.NoError(t, b.Begin(Options{}))
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	require.ErrorIs(t, b.Draw(nil, Sprite{Position: &Vec2{}}), ErrNilTexture)
	require.ErrorIs(t, b.Draw(tex, Sprite{}), ErrConflictingSprite)
	require.ErrorIs(t, b.Draw(tex, Sprite{
		Position: &Vec2{}, Dest: &Rect{W: 1, H: 1},
	}), ErrConflictingSprite)

	require.ErrorIs(t, b.DrawText(nil, "hi", Text{}), ErrNilFont)
	require.ErrorIs(t, b.DrawRunes(nil, []rune("hi"), Text{}), ErrNilFont)
	require.ErrorIs(t, b.DrawRunes(stubFont{tex: tex}, nil, Text{}), ErrNilText)

	// A failed draw leaves the session usable.
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}}))
	require.NoError(t, b.End())
}

func TestZeroRotationGeometry(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 32, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{X: 10, Y: 10}}))
	require.NoError(t, b.End())

	require.Len(t, dev.subs, 1)
	got := quadCorners(dev.subs[0], 0)
	want := [4][2]float32{{10, 10}, {74, 10}, {10, 42}, {74, 42}}
	assert.Equal(t, want, got)
}

func TestRotatedGeometry(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 32, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{
		Position: &Vec2{X: 10, Y: 10},
		Rotation: math.Pi / 2,
	}))
	require.NoError(t, b.End())

	require.Len(t, dev.subs, 1)
	got := quadCorners(dev.subs[0], 0)

	// sin=1, cos=0: the width extent lands on +Y, the height extent on -X.
	want := [4][2]float32{
		{10, 10},      // TL (anchor, origin 0)
		{10, 74},      // TR = TL + (0, w)
		{10 - 32, 10}, // BL = TL + (-h, 0)
		{10 - 32, 74}, // BR
	}
	for i := range want {
		assert.InDelta(t, want[i][0], got[i][0], 1e-4, "corner %d x", i)
		assert.InDelta(t, want[i][1], got[i][1], 1e-4, "corner %d y", i)
	}
}

func TestOriginAndScale(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 32, key: 1}

	// Origin is scaled by the same factor as the size.
	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{
		Position: &Vec2{X: 100, Y: 100},
		Origin:   Vec2{X: 32, Y: 16}, // texture center
		Scale:    Vec2{X: 2, Y: 2},
	}))
	require.NoError(t, b.End())

	got := quadCorners(dev.subs[0], 0)
	// 128x64 destination centered on (100,100).
	want := [4][2]float32{{36, 68}, {164, 68}, {36, 132}, {164, 132}}
	assert.Equal(t, want, got)
}

func TestDestRectangleForm(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 64, h: 32, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{
		Dest:   &Rect{X: 10, Y: 20, W: 128, H: 64},
		Origin: Vec2{X: 32, Y: 16}, // scaled by 128/64=2, 64/32=2
	}))
	require.NoError(t, b.End())

	got := quadCorners(dev.subs[0], 0)
	want := [4][2]float32{{-54, -12}, {74, -12}, {-54, 52}, {74, 52}}
	assert.Equal(t, want, got)
}

func TestSourceRectAndFlip(t *testing.T) {
	tex := &fakeTexture{w: 64, h: 32, key: 1}
	src := &Rect{X: 16, Y: 8, W: 16, H: 8}

	tests := []struct {
		name string
		flip Flip
		want [4][2]float32 // TL TR BL BR (u,v)
	}{
		{"no flip", FlipNone, [4][2]float32{{0.25, 0.25}, {0.5, 0.25}, {0.25, 0.5}, {0.5, 0.5}}},
		{"horizontal", FlipHorizontal, [4][2]float32{{0.5, 0.25}, {0.25, 0.25}, {0.5, 0.5}, {0.25, 0.5}}},
		{"vertical", FlipVertical, [4][2]float32{{0.25, 0.5}, {0.5, 0.5}, {0.25, 0.25}, {0.5, 0.25}}},
		{"both", FlipHorizontal | FlipVertical, [4][2]float32{{0.5, 0.5}, {0.25, 0.5}, {0.5, 0.25}, {0.25, 0.25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, dev := newTestBatch(t)
			require.NoError(t, b.Begin(Options{}))
			require.NoError(t, b.Draw(tex, Sprite{
				Position: &Vec2{},
				Source:   src,
				Flip:     tt.flip,
			}))
			require.NoError(t, b.End())
			assert.Equal(t, tt.want, quadUV(dev.subs[0], 0))

			// Source size drives the quad size in position form.
			corners := quadCorners(dev.subs[0], 0)
			assert.Equal(t, [2]float32{16, 8}, [2]float32{corners[3][0], corners[3][1]})
		})
	}
}

func TestDepthWrittenToZ(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}, Depth: 0.75}))
	require.NoError(t, b.End())

	s := dev.subs[0]
	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(0.75), s.verts[i*vertexFloats+2])
	}
}

func TestBatchMinimalityUnderTextureSort(t *testing.T) {
	b, dev := newTestBatch(t)
	texA := &fakeTexture{w: 4, h: 4, key: 1}
	texB := &fakeTexture{w: 4, h: 4, key: 2}

	require.NoError(t, b.Begin(Options{Sort: SortTexture}))
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Draw(texA, Sprite{Position: &Vec2{X: float32(i)}}))
		require.NoError(t, b.Draw(texB, Sprite{Position: &Vec2{X: float32(i)}}))
	}
	require.NoError(t, b.End())

	// Alternating A,B,A,B collapses to exactly two submissions.
	require.Len(t, dev.subs, 2)
	assert.Same(t, texA, dev.subs[0].tex)
	assert.Equal(t, 4, dev.subs[0].quads)
	assert.Same(t, texB, dev.subs[1].tex)
	assert.Equal(t, 4, dev.subs[1].quads)
	assert.Equal(t, 2, b.Stats().DrawCalls)
	assert.Equal(t, 8, b.Stats().QuadCount)
}

func TestDeferredKeepsSubmissionOrder(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	require.NoError(t, b.Begin(Options{Sort: SortDeferred}))
	for i := 0; i < 5; i++ {
		c := colors.Color{float32(i) / 10, 0, 0, 1}
		require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}, Color: &c}))
	}
	require.NoError(t, b.End())

	require.Len(t, dev.subs, 1)
	for i := 0; i < 5; i++ {
		assert.Equal(t, float32(i)/10, quadColor(dev.subs[0], i)[0], "quad %d", i)
	}
}

func TestTieStabilityUnderTextureSort(t *testing.T) {
	// Same texture, same key: sorted emission must match call order.
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 7}

	require.NoError(t, b.Begin(Options{Sort: SortTexture}))
	for i := 0; i < 6; i++ {
		c := colors.Color{float32(i) / 10, 0, 0, 1}
		require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}, Color: &c}))
	}
	require.NoError(t, b.End())

	require.Len(t, dev.subs, 1)
	for i := 0; i < 6; i++ {
		assert.Equal(t, float32(i)/10, quadColor(dev.subs[0], i)[0], "quad %d", i)
	}
}

func TestDepthOrdering(t *testing.T) {
	depths := []float32{0.5, 0.1, 0.9}

	tests := []struct {
		name string
		mode SortMode
		want []float32
	}{
		{"front to back", SortFrontToBack, []float32{0.1, 0.5, 0.9}},
		{"back to front", SortBackToFront, []float32{0.9, 0.5, 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, dev := newTestBatch(t)
			tex := &fakeTexture{w: 4, h: 4, key: 1}
			require.NoError(t, b.Begin(Options{Sort: tt.mode}))
			for _, d := range depths {
				require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}, Depth: d}))
			}
			require.NoError(t, b.End())

			require.Len(t, dev.subs, 1)
			for i, want := range tt.want {
				assert.Equal(t, want, quadDepth(dev.subs[0], i), "quad %d", i)
			}
		})
	}
}

func TestImmediateModeSubmitsPerDraw(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	require.NoError(t, b.Begin(Options{Sort: SortImmediate}))

	// State was applied during Begin, before any draw.
	require.Len(t, dev.states, 1)
	require.NotNil(t, dev.bound)

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{X: float32(i)}}))
		require.Len(t, dev.subs, i+1)
		assert.Equal(t, 1, dev.subs[i].quads)
	}
	require.NoError(t, b.End())

	// Shared texture does not batch under the immediate policy.
	assert.Len(t, dev.subs, n)
	assert.Equal(t, n, b.Stats().DrawCalls)
}

func TestDeferredAppliesStateAtEnd(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}}))
	assert.Empty(t, dev.states)
	assert.Empty(t, dev.subs)

	require.NoError(t, b.End())
	require.Len(t, dev.states, 1)
	require.Len(t, dev.subs, 1)

	// Defaults.
	assert.Equal(t, core.BlendAlpha, dev.states[0].Blend)
	assert.Equal(t, core.SamplerLinearClamp, dev.states[0].Sampler)
	assert.Equal(t, core.DepthNone, dev.states[0].Depth)
	assert.Equal(t, core.RasterCullCounterClockwise, dev.states[0].Raster)
}

func TestStateOverridesAndCustomEffect(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}
	custom := &fakeEffect{}

	require.NoError(t, b.Begin(Options{
		Blend:  &core.BlendAdditive,
		Depth:  &core.DepthRead,
		Effect: custom,
	}))
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}}))
	require.NoError(t, b.End())

	require.Len(t, dev.states, 1)
	assert.Equal(t, core.BlendAdditive, dev.states[0].Blend)
	assert.Equal(t, core.DepthRead, dev.states[0].Depth)
	assert.Same(t, custom, dev.bound)
	assert.NotEqual(t, [16]float32{}, custom.transform)
}

func TestBeginBindFailureLeavesSessionClosed(t *testing.T) {
	b, dev := newTestBatch(t)
	dev.bindErr = errBindFailed

	err := b.Begin(Options{Sort: SortImmediate})
	require.ErrorIs(t, err, errBindFailed)

	// Session never opened; a fresh Begin (deferred defers binding) works.
	require.ErrorIs(t, b.End(), ErrSessionNotOpen)
	require.NoError(t, b.Begin(Options{}))
}

func TestEndBindFailureDropsItems(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{}}))
	dev.bindErr = errBindFailed
	require.ErrorIs(t, b.End(), errBindFailed)

	// The failed session's quad must not leak into the next one.
	dev.bindErr = nil
	require.NoError(t, b.Begin(Options{}))
	require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{X: 5}}))
	require.NoError(t, b.End())

	require.Len(t, dev.subs, 1)
	assert.Equal(t, 1, dev.subs[0].quads)
	assert.Equal(t, [2]float32{5, 0}, quadCorners(dev.subs[0], 0)[0])
}

func TestReservePreallocatesArena(t *testing.T) {
	b, _ := newTestBatch(t)
	b.Reserve(4096)
	assert.GreaterOrEqual(t, cap(b.arena.items), 4096)
}

func TestEmptySessionEmitsNothing(t *testing.T) {
	b, dev := newTestBatch(t)
	require.NoError(t, b.Begin(Options{Sort: SortTexture}))
	require.NoError(t, b.End())
	assert.Empty(t, dev.subs)
}

func TestReleaseFreesOwnedEffect(t *testing.T) {
	b, dev := newTestBatch(t)
	require.Len(t, dev.effects, 1)
	b.Release()
	assert.True(t, dev.effects[0].released)
}

func TestArenaReuseAcrossSessions(t *testing.T) {
	b, dev := newTestBatch(t)
	tex := &fakeTexture{w: 4, h: 4, key: 1}

	for s := 0; s < 3; s++ {
		require.NoError(t, b.Begin(Options{}))
		for i := 0; i < 10; i++ {
			require.NoError(t, b.Draw(tex, Sprite{Position: &Vec2{X: float32(i)}}))
		}
		require.NoError(t, b.End())
		assert.Equal(t, 10, b.Stats().QuadCount, "session %d", s)
	}
	assert.Len(t, dev.subs, 3)
}
