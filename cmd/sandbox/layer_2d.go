package main

import (
	"math"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/colors"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/gfx/spritebatch"
	"github.com/emberengine/ember/engine/profiler"
	"github.com/emberengine/ember/engine/scene"
)

// ------- A simple 2D sprite demo -------
type Layer2D struct {
	cam   *scene.Camera2D
	ctrl  *scene.CamController2D
	batch *spritebatch.Batch
	tiles core.Texture
	crate core.Texture
	t     float32
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewCamera2D(w, h)
	l.ctrl = scene.NewCamController2D(l.cam)

	// Prefer the shipped sprite sheet; fall back to generated pixels so
	// the sandbox runs from a bare checkout.
	var err error
	l.tiles, err = assets.LoadTexture(e.Device, "tiles.png")
	if err != nil {
		l.tiles = checkerTexture(e.Device, 64, colors.Green, colors.DarkGray)
	}
	l.crate, err = assets.LoadTexture(e.Device, "crate.png")
	if err != nil {
		l.crate = checkerTexture(e.Device, 64, colors.Yellow, colors.Red)
	}
}

func (l *Layer2D) OnDetach(e *core.Engine) {}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e, float32(dt))
	l.t += float32(dt)

	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	renderEnd := profiler.Start("Layer2D.OnRender")
	defer renderEnd()

	view := l.cam.View()

	// World pass: tiles and crates interleave per cell, so the texture
	// sort collapses the field to two submissions.
	err := l.batch.Begin(spritebatch.Options{
		Sort:      spritebatch.SortTexture,
		Transform: &view,
	})
	if err != nil {
		panic(err)
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			tex := l.tiles
			if (x+y)%2 == 1 {
				tex = l.crate
			}
			_ = l.batch.Draw(tex, spritebatch.Sprite{
				Position: &spritebatch.Vec2{X: float32(x) * 68, Y: float32(y) * 68},
			})
		}
	}

	// A rotating crate on top, anchored at its center, with a pulsing tint.
	half := float32(l.crate.Width()) / 2
	tint := colors.Cyan.Scale(0.75 + 0.25*float32(math.Cos(float64(l.t*2))))
	_ = l.batch.Draw(l.crate, spritebatch.Sprite{
		Position: &spritebatch.Vec2{X: 16 * 34, Y: 12 * 34},
		Origin:   spritebatch.Vec2{X: half, Y: half},
		Rotation: l.t,
		Scale:    spritebatch.Vec2{X: 1.5 + 0.5*float32(math.Sin(float64(l.t))), Y: 1.5},
		Color:    &tint,
	})
	if err := l.batch.End(); err != nil {
		panic(err)
	}
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	case core.EventScroll:
		return l.ctrl.HandleEvent(e, ev)
	}
	return false
}

// checkerTexture builds an 8x8-cell checkerboard for asset-less runs.
func checkerTexture(dev core.Device, size int, a, b colors.Color) core.Texture {
	pix := make([]byte, size*size*4)
	cell := size / 8
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			i := (y*size + x) * 4
			pix[i+0] = byte(c[0] * 255)
			pix[i+1] = byte(c[1] * 255)
			pix[i+2] = byte(c[2] * 255)
			pix[i+3] = 255
		}
	}
	tex, err := dev.CreateTexture(core.TextureDesc{
		Width: size, Height: size,
		Format: core.TextureRGBA8,
		Pixels: pix,
	})
	if err != nil {
		panic(err)
	}
	return tex
}
