package main

import (
	"log"
	"time"

	"github.com/emberengine/ember/engine/assets"
	"github.com/emberengine/ember/engine/core"
	glbackend "github.com/emberengine/ember/engine/gfx/gl"
	"github.com/emberengine/ember/engine/gfx/spritebatch"
	"github.com/emberengine/ember/engine/platform"
	"github.com/emberengine/ember/engine/profiler"
	"github.com/emberengine/ember/engine/text"
)

type App struct {
	cfg        core.Config
	lastFrame  time.Time
	tick       int
	batch      *spritebatch.Batch
	font       *text.Font
	layer      *Layer2D
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	// A shader pair in assets/shaders overrides the built-in sprite effect.
	vert, vertErr := assets.LoadShader("sprite.vert")
	frag, fragErr := assets.LoadShader("sprite.frag")
	if vertErr != nil || fragErr != nil {
		vert, frag = glbackend.SpriteVertexShader, glbackend.SpriteFragmentShader
	}

	var err error
	a.batch, err = spritebatch.New(e.Device, vert, frag)
	if err != nil {
		panic(err)
	}
	a.batch.Reserve(a.cfg.MaxSprites)

	// Default font is optional; the overlay goes text-less without it.
	a.font, err = text.LoadTTF(e.Device, "RobotoMono.ttf", 18)
	if err != nil {
		log.Printf("no default font: %v", err)
		a.font = nil
	}

	a.layer = &Layer2D{batch: a.batch}
	e.PushLayer(a.layer)

	a.debugLayer = &LayerDebug{batch: a.batch, font: a.font}
	e.PushLayer(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	now := time.Now()
	if a.debugLayer != nil && !a.lastFrame.IsZero() {
		a.debugLayer.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.debugLayer.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	if a.debugLayer != nil {
		a.debugLayer.stats = a.batch.Stats()
	}
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.font != nil {
		a.font.Close()
	}
	a.batch.Release()
}

func main() {
	cfg, err := core.LoadConfig("ember.toml")
	if err != nil {
		log.Fatal(err)
	}

	app := &App{cfg: cfg}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newDevice := func(win core.Window, cfg core.Config) (core.Device, error) {
		return glbackend.NewDevice(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newDevice); err != nil {
		log.Fatal(err)
	}
}
