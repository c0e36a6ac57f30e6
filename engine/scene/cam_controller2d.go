package scene

import "github.com/emberengine/ember/engine/core"

// CamController2D: WASD pans the camera in world pixels.
type CamController2D struct {
	MoveSpeed float32 // pixels per second
	ZoomSpeed float32
	Camera    *Camera2D
}

func NewCamController2D(cam *Camera2D) *CamController2D {
	return &CamController2D{
		MoveSpeed: 300,
		ZoomSpeed: 1.1,
		Camera:    cam,
	}
}

func (cc *CamController2D) Update(e *core.Engine, dt float32) {
	in := e.Input
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}
}

// HandleEvent zooms on scroll. Returns true when the event was consumed.
func (cc *CamController2D) HandleEvent(_ *core.Engine, ev core.Event) bool {
	if s, ok := ev.(core.EventScroll); ok {
		z := cc.Camera.Zoom
		if s.Yoff > 0 {
			z *= cc.ZoomSpeed
		} else if s.Yoff < 0 {
			z /= cc.ZoomSpeed
		}
		cc.Camera.SetZoom(z)
		return true
	}
	return false
}
