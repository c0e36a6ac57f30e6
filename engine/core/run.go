package core

import (
	"log"
	"runtime"
	"time"
)

// Run wires the platform window + device and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newDevice func(Window, Config) (Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	dev, err := newDevice(win, cfg)
	if err != nil {
		return err
	}
	defer dev.Shutdown()

	w, h := win.FramebufferSize()
	dev.Resize(w, h)

	eng := &Engine{Window: win, Device: dev, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		eng.Layers.ForEachReverse(func(l Layer) bool {
			return l.OnEvent(eng, ev)
		})
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			dev.Resize(fw, fh)
		}
	})

	app.OnStart(eng)

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		// Run fixed updates
		steps := 0
		for accum >= tick && steps < maxStep {
			app.OnUpdate(eng, float64(tick)/float64(time.Second))
			eng.Layers.ForEach(func(l Layer) {
				l.OnUpdate(eng, float64(tick)/float64(time.Second))
			})
			accum -= tick
			steps++
		}
		// Interpolation factor for rendering
		alpha := float64(accum) / float64(tick)

		// Render
		dev.Clear(clear[0], clear[1], clear[2], clear[3])
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		app.OnRender(eng, alpha)

		// Present
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}
