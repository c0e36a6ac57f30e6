package spritebatch

import "github.com/emberengine/ember/engine/core"

// Glyph is one positioned glyph produced by a Font's layout: the pixel
// rectangle of the glyph in the font texture, its offset from the text
// origin (multi-line aware), and the pen advance it contributed.
type Glyph struct {
	Source  Rect
	Offset  Vec2
	Advance float32
}

// Font is the text-layout collaborator consumed by DrawText. Layout
// yields one Glyph per visible glyph, in order; whitespace and missing
// glyphs advance the pen without being yielded.
type Font interface {
	Texture() core.Texture
	Layout(text string, fn func(Glyph))
	LineHeight() float32
}
