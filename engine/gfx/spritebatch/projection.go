package spritebatch

// Identity transform, for callers that want to spell it out.
var Identity = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// sessionProjection builds the matrix bound once per session: an
// orthographic projection with origin at the top-left of the viewport
// (x right, y down, depth 0..1), combined with the caller transform and,
// for rasterizers that sample at texel centers, a half-pixel correction.
func sessionProjection(w, h int, transform [16]float32, halfTexel bool) [16]float32 {
	proj := orthoOffCenter(0, float32(w), float32(h), 0, 0, 1)
	if halfTexel {
		proj = mul(proj, translate(-0.5, -0.5, 0))
	}
	return mul(proj, transform)
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func orthoOffCenter(left, right, bottom, top, near, far float32) [16]float32 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, 2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// mul returns a*b for column-vector math: the combined matrix applies b
// first, then a.
func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}
