package spritebatch

import "github.com/emberengine/ember/engine/colors"

// Vertex layout shared with the device: pos3 + color4 + uv2 => 9 floats.
const vertexFloats = 9
const vertsPerQuad = 4
const indsPerQuad = 6

// Vec2 is a 2D point or vector in pixel space.
type Vec2 struct{ X, Y float32 }

// Rect is an axis-aligned pixel-space rectangle.
type Rect struct{ X, Y, W, H float32 }

// Vertex is one corner of a sprite quad. Z carries the layer depth
// verbatim so the rasterizer's interpolation applies uniformly to
// ordering and any z-based effects.
type Vertex struct {
	X, Y, Z float32
	Color   colors.Color
	U, V    float32
}

// Quad holds the four corners of one sprite in fixed TL, TR, BL, BR
// order. Rotation and flipping transform positions/UVs; corners are
// never reordered.
type Quad struct {
	TL, TR, BL, BR Vertex
}

func appendVertex(dst []float32, v *Vertex) []float32 {
	return append(dst,
		v.X, v.Y, v.Z,
		v.Color[0], v.Color[1], v.Color[2], v.Color[3],
		v.U, v.V,
	)
}

// appendTo flattens the quad in corner order for device submission.
func (q *Quad) appendTo(dst []float32) []float32 {
	dst = appendVertex(dst, &q.TL)
	dst = appendVertex(dst, &q.TR)
	dst = appendVertex(dst, &q.BL)
	dst = appendVertex(dst, &q.BR)
	return dst
}
