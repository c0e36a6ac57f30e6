package main

import (
	"fmt"

	"github.com/emberengine/ember/engine/colors"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/gfx/spritebatch"
	"github.com/emberengine/ember/engine/profiler"
	"github.com/emberengine/ember/engine/text"
)

// ------- Stats overlay -------
type LayerDebug struct {
	batch         *spritebatch.Batch
	font          *text.Font
	stats         spritebatch.Statistics
	frameDuration float32
	tick          int
}

func (l *LayerDebug) OnAttach(e *core.Engine) {}
func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	if l.font == nil {
		return
	}
	scopeRender := profiler.Start("LayerDebug.OnRender")
	defer scopeRender()

	overlay := fmt.Sprintf(
		"frame %d\n%2.3f ms (%.1f fps)\ndraw calls: %d\nquads: %d\nvertices: %d",
		l.tick,
		l.frameDuration, 1000.0/l.frameDuration,
		l.stats.DrawCalls,
		l.stats.QuadCount,
		l.stats.TotalVertexCount(),
	)

	// Screen space: default identity transform.
	if err := l.batch.Begin(spritebatch.Options{Sort: spritebatch.SortDeferred}); err != nil {
		panic(err)
	}
	_ = l.batch.DrawText(l.font, overlay, spritebatch.Text{
		Position: spritebatch.Vec2{X: 16, Y: 16},
		Color:    &colors.Yellow,
	})
	if err := l.batch.End(); err != nil {
		panic(err)
	}
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventKey); ok {
		if v.Down && v.Key == core.KeyP && (v.Mods&core.ModCtrl) != 0 {
			if path, err := profiler.Dump(); err == nil {
				fmt.Println("speedscope dump:", path)
			} else {
				fmt.Println("profiler dump error:", err)
			}
			return true
		}
	}
	return false
}
