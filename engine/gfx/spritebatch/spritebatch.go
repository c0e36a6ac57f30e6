// Package spritebatch accumulates textured quads and glyph runs, orders
// them according to a per-session policy, and emits them to the device as
// the minimal number of draw submissions.
//
// The batch is single-thread affine, matching the device it draws
// through. A session is the interval between Begin and End; draws are
// only valid inside one.
package spritebatch

import (
	"math"

	"github.com/emberengine/ember/engine/colors"
	"github.com/emberengine/ember/engine/core"
)

// Flip mirrors a sprite's texture coordinates.
type Flip uint8

const (
	FlipNone       Flip = 0
	FlipHorizontal Flip = 1 << 0
	FlipVertical   Flip = 1 << 1
)

// Options configures a session. Nil state fields select the defaults:
// alpha blending, linear-clamp sampling, no depth test, counter-clockwise
// culling, identity transform, the batch's own effect.
type Options struct {
	Sort      SortMode
	Blend     *core.BlendState
	Sampler   *core.SamplerState
	Depth     *core.DepthState
	Raster    *core.RasterState
	Effect    core.Effect
	Transform *[16]float32
}

// Sprite describes one Draw call. Exactly one of Position or Dest must be
// set: Position draws at texture-or-source size scaled by Scale, Dest
// stretches into the given rectangle. Source selects a pixel-space
// sub-rectangle of the texture (nil = full texture). A nil Color means
// white. A zero Scale means (1,1).
type Sprite struct {
	Position *Vec2
	Dest     *Rect
	Source   *Rect
	Color    *colors.Color
	Rotation float32 // radians, clockwise (y-down)
	Origin   Vec2    // in source-space units, scaled with the sprite
	Scale    Vec2
	Flip     Flip
	Depth    float32
}

// Text describes one DrawText call. Origin is in unscaled layout units.
type Text struct {
	Position Vec2
	Color    *colors.Color
	Rotation float32
	Origin   Vec2
	Scale    Vec2
	Flip     Flip
	Depth    float32
}

// Batch is the front-end batching session. One instance owns its arena
// and its compiled sprite effect; exactly one session may be open at a
// time.
type Batch struct {
	dev    core.Device
	arena  itemArena
	bat    batcher
	effect core.Effect // owned; released on Release

	open      bool
	mode      SortMode
	policy    sortPolicy
	state     core.PipelineState
	sessEff   core.Effect
	transform [16]float32
	stats     Statistics
}

// New creates a batch drawing through dev, compiling the sprite effect
// from the given shader sources. The effect is owned by the batch and
// freed by Release.
func New(dev core.Device, vertSrc, fragSrc string) (*Batch, error) {
	eff, err := dev.CreateEffect(vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	return &Batch{dev: dev, bat: batcher{dev: dev}, effect: eff}, nil
}

// Release frees the owned effect. The batch must not be used afterwards.
func (b *Batch) Release() {
	if b.effect != nil {
		b.effect.Release()
		b.effect = nil
	}
}

// Stats returns the counters for the current or last session.
func (b *Batch) Stats() Statistics { return b.stats }

// Reserve grows the arena to hold at least n sprites without further
// allocation. A capacity hint only; the arena still grows on demand.
func (b *Batch) Reserve(n int) { b.arena.ensure(n) }

// Begin opens a session. Under SortImmediate the render state and
// projection are bound here, before the first draw, since every draw
// issues a submission on the spot.
func (b *Batch) Begin(opts Options) error {
	if b.open {
		return ErrSessionOpen
	}

	b.mode = opts.Sort
	b.policy = policyFor(opts.Sort)
	b.state = core.PipelineState{
		Blend:   stateOr(opts.Blend, core.BlendAlpha),
		Sampler: stateOr(opts.Sampler, core.SamplerLinearClamp),
		Depth:   stateOr(opts.Depth, core.DepthNone),
		Raster:  stateOr(opts.Raster, core.RasterCullCounterClockwise),
	}
	b.sessEff = opts.Effect
	if b.sessEff == nil {
		b.sessEff = b.effect
	}
	b.transform = Identity
	if opts.Transform != nil {
		b.transform = *opts.Transform
	}
	b.stats = Statistics{}

	if opts.Sort == SortImmediate {
		if err := b.applyRenderState(); err != nil {
			return err
		}
	}
	b.open = true
	return nil
}

// End closes the session. Deferred and sorted policies bind the render
// state, order the accumulated items, and emit them now; the arena is
// reset either way (capacity retained).
func (b *Batch) End() error {
	if !b.open {
		return ErrSessionNotOpen
	}
	b.open = false

	if b.mode == SortImmediate {
		// Everything was emitted per draw.
		return nil
	}
	if err := b.applyRenderState(); err != nil {
		// Drop the recorded items so they cannot leak into the next
		// session's emission.
		b.arena.reset()
		return err
	}
	if b.policy != nil {
		sortItems(b.arena.items)
	}
	return b.flush()
}

// Draw records one textured quad (or emits it, under SortImmediate).
func (b *Batch) Draw(tex core.Texture, s Sprite) error {
	if !b.open {
		return ErrSessionNotOpen
	}
	if tex == nil {
		return ErrNilTexture
	}
	if (s.Position == nil) == (s.Dest == nil) {
		return ErrConflictingSprite
	}

	// Source size in pixels, full texture when no source rect is given.
	srcW, srcH := float32(tex.Width()), float32(tex.Height())
	if s.Source != nil {
		srcW, srcH = s.Source.W, s.Source.H
	}

	var x, y, w, h, sx, sy float32
	if s.Dest != nil {
		x, y, w, h = s.Dest.X, s.Dest.Y, s.Dest.W, s.Dest.H
		// Origin is given in source units; scale it by the same factor
		// the destination rectangle applies to the source size.
		sx, sy = safeDiv(w, srcW), safeDiv(h, srcH)
	} else {
		sx, sy = scaleOrOne(s.Scale)
		x, y = s.Position.X, s.Position.Y
		w, h = srcW*sx, srcH*sy
	}

	u0, v0, u1, v1 := sourceUV(tex, s.Source, s.Flip)

	b.push(tex, x, y, -s.Origin.X*sx, -s.Origin.Y*sy, w, h,
		s.Rotation, colorOrWhite(s.Color), u0, v0, u1, v1, s.Depth)

	if b.mode == SortImmediate {
		return b.flush()
	}
	return nil
}

// DrawText records one quad per visible glyph of text, laid out by font.
func (b *Batch) DrawText(font Font, text string, t Text) error {
	if !b.open {
		return ErrSessionNotOpen
	}
	if font == nil {
		return ErrNilFont
	}
	return b.drawGlyphs(font, text, t)
}

// DrawRunes is DrawText for pre-decoded runes. A nil slice is an error;
// an empty one draws nothing.
func (b *Batch) DrawRunes(font Font, runes []rune, t Text) error {
	if !b.open {
		return ErrSessionNotOpen
	}
	if font == nil {
		return ErrNilFont
	}
	if runes == nil {
		return ErrNilText
	}
	return b.drawGlyphs(font, string(runes), t)
}

func (b *Batch) drawGlyphs(font Font, text string, t Text) error {
	tex := font.Texture()
	if tex == nil {
		return ErrNilTexture
	}
	sx, sy := scaleOrOne(t.Scale)
	col := colorOrWhite(t.Color)
	texelW, texelH := tex.TexelSize()

	var emitErr error
	font.Layout(text, func(g Glyph) {
		u0 := g.Source.X * texelW
		v0 := g.Source.Y * texelH
		u1 := (g.Source.X + g.Source.W) * texelW
		v1 := (g.Source.Y + g.Source.H) * texelH
		if t.Flip&FlipHorizontal != 0 {
			u0, u1 = u1, u0
		}
		if t.Flip&FlipVertical != 0 {
			v0, v1 = v1, v0
		}

		b.push(tex, t.Position.X, t.Position.Y,
			(g.Offset.X-t.Origin.X)*sx, (g.Offset.Y-t.Origin.Y)*sy,
			g.Source.W*sx, g.Source.H*sy,
			t.Rotation, col, u0, v0, u1, v1, t.Depth)

		if b.mode == SortImmediate {
			if err := b.flush(); err != nil && emitErr == nil {
				emitErr = err
			}
		}
	})
	return emitErr
}

// push places the four corners of one quad into a fresh arena item.
// (x,y) is the rotation anchor; (dx,dy) is the offset from the anchor to
// the quad's top-left, already in destination units.
func (b *Batch) push(tex core.Texture, x, y, dx, dy, w, h, rotation float32, c colors.Color, u0, v0, u1, v1, depth float32) {
	it := b.arena.acquire()
	it.tex = tex
	it.key = 0
	if b.policy != nil {
		it.key = b.policy.key(tex, depth)
	}

	q := &it.quad
	if rotation == 0 {
		// Fast path: no trigonometry for the overwhelmingly common case.
		left, top := x+dx, y+dy
		q.TL.X, q.TL.Y = left, top
		q.TR.X, q.TR.Y = left+w, top
		q.BL.X, q.BL.Y = left, top+h
		q.BR.X, q.BR.Y = left+w, top+h
	} else {
		sin64, cos64 := math.Sincos(float64(rotation))
		sin, cos := float32(sin64), float32(cos64)
		// Place the top-left corner, then swing the width and height
		// extent vectors around it.
		tlx := x + dx*cos - dy*sin
		tly := y + dx*sin + dy*cos
		wx, wy := w*cos, w*sin
		hx, hy := -h*sin, h*cos
		q.TL.X, q.TL.Y = tlx, tly
		q.TR.X, q.TR.Y = tlx+wx, tly+wy
		q.BL.X, q.BL.Y = tlx+hx, tly+hy
		q.BR.X, q.BR.Y = tlx+wx+hx, tly+wy+hy
	}

	q.TL.Z, q.TR.Z, q.BL.Z, q.BR.Z = depth, depth, depth, depth
	q.TL.Color, q.TR.Color, q.BL.Color, q.BR.Color = c, c, c, c
	q.TL.U, q.TL.V = u0, v0
	q.TR.U, q.TR.V = u1, v0
	q.BL.U, q.BL.V = u0, v1
	q.BR.U, q.BR.V = u1, v1

	b.stats.QuadCount++
}

func (b *Batch) applyRenderState() error {
	b.dev.ApplyState(b.state)
	if err := b.dev.BindEffect(b.sessEff); err != nil {
		return err
	}
	w, h := b.dev.Viewport()
	b.sessEff.SetTransform(sessionProjection(w, h, b.transform, b.dev.HalfTexelOffset()))
	return nil
}

func (b *Batch) flush() error {
	err := b.bat.emit(b.arena.items, &b.stats)
	b.arena.reset()
	return err
}

// sourceUV resolves the normalized UV rectangle for a draw: the full
// texture when src is nil, else the pixel rect times the texel size, with
// flip flags applied by swapping coordinate pairs.
func sourceUV(tex core.Texture, src *Rect, flip Flip) (u0, v0, u1, v1 float32) {
	if src == nil {
		u0, v0, u1, v1 = 0, 0, 1, 1
	} else {
		texelW, texelH := tex.TexelSize()
		u0 = src.X * texelW
		v0 = src.Y * texelH
		u1 = (src.X + src.W) * texelW
		v1 = (src.Y + src.H) * texelH
	}
	if flip&FlipHorizontal != 0 {
		u0, u1 = u1, u0
	}
	if flip&FlipVertical != 0 {
		v0, v1 = v1, v0
	}
	return
}

func stateOr[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

func scaleOrOne(s Vec2) (float32, float32) {
	if s == (Vec2{}) {
		return 1, 1
	}
	return s.X, s.Y
}

func colorOrWhite(c *colors.Color) colors.Color {
	if c != nil {
		return *c
	}
	return colors.White
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
