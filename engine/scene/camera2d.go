package scene

import "math"

// Camera2D provides a pixel-space 2D camera: position (the world point at
// the viewport center), rotation and zoom. View() yields the transform
// handed to the sprite batch's Begin, applied before the batch's own
// screen projection.
type Camera2D struct {
	W, H        float32 // viewport size in pixels
	X, Y        float32 // world position at the viewport center
	RotationRad float32
	Zoom        float32 // 1 = no zoom
	view        [16]float32
	dirty       bool
}

func NewCamera2D(width, height int) *Camera2D {
	c := &Camera2D{
		W: float32(width), H: float32(height),
		Zoom: 1,
	}
	c.Recalculate()
	return c
}

func (c *Camera2D) SetViewportPixels(w, h int) {
	c.W, c.H = float32(w), float32(h)
	c.dirty = true
}

func (c *Camera2D) Move(dx, dy float32)      { c.X += dx; c.Y += dy; c.dirty = true }
func (c *Camera2D) SetPosition(x, y float32) { c.X, c.Y = x, y; c.dirty = true }
func (c *Camera2D) Rotate(dRad float32)      { c.RotationRad += dRad; c.dirty = true }
func (c *Camera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *Camera2D) View() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.view
}

func (c *Camera2D) Recalculate() {
	// view = T(center) . S(zoom) . R(-rot) . T(-pos)
	// World coords in, screen pixel coords out.
	c.view = mulM(
		translate(c.W*0.5, c.H*0.5, 0),
		mulM(
			scale(c.Zoom, c.Zoom, 1),
			mulM(
				rotateZ(-c.RotationRad),
				translate(-c.X, -c.Y, 0),
			),
		),
	)
	c.dirty = false
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func scale(x, y, z float32) [16]float32 {
	return [16]float32{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func rotateZ(a float32) [16]float32 {
	c := float32(math.Cos(float64(a)))
	s := float32(math.Sin(float64(a)))
	return [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// mulM returns a*b for column-vector math: b applies first.
func mulM(a, b [16]float32) [16]float32 {
	var out [16]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}
