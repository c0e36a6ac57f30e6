package text

import (
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/gfx/spritebatch"
)

// Font implements the sprite batch's layout collaborator.
var _ spritebatch.Font = (*Font)(nil)

// Texture returns the atlas texture.
func (f *Font) Texture() core.Texture { return f.tex }

// LineHeight is the baseline-to-baseline distance in pixels.
func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

// Layout walks s with a kerning-aware pen, top-left origin, y down.
// Visible glyphs are yielded with their atlas rectangle and their offset
// from the text origin; whitespace and missing runes only advance the
// pen. Newlines reset the pen and move the baseline down one line.
func (f *Font) Layout(s string, fn func(spritebatch.Glyph)) {
	var penX float32
	baseY := f.Ascent // move origin to top left
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = 0
			baseY += f.LineHeight()
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				penX += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 && f.face != nil {
			penX += float32(f.face.Kern(prev, r)) / 64.0
		}

		if g.W > 0 && g.H > 0 {
			fn(spritebatch.Glyph{
				Source: spritebatch.Rect{
					X: float32(g.X), Y: float32(g.Y),
					W: float32(g.W), H: float32(g.H),
				},
				Offset: spritebatch.Vec2{
					X: penX + g.BearingX,
					Y: baseY - g.BearingY,
				},
				Advance: g.Advance,
			})
		}

		penX += g.Advance
		prev = r
	}
}

// Measure returns the pixel size of s at the atlas's native size.
func (f *Font) Measure(s string) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := f.LineHeight()
	height = lineH

	for _, r := range s {
		if r == '\n' {
			if lineW > width {
				width = lineW
			}
			lineW = 0
			height += lineH
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 && f.face != nil {
			lineW += float32(f.face.Kern(prev, r)) / 64.0
		}

		lineW += g.Advance
		prev = r
	}

	if lineW > width {
		width = lineW
	}
	return width, height
}
