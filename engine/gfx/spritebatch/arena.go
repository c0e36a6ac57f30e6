package spritebatch

import "github.com/emberengine/ember/engine/core"

const arenaStartCap = 256

// item is one recorded draw: a quad, the texture it samples (borrowed for
// the duration of the session), and the emission sort key.
type item struct {
	quad Quad
	tex  core.Texture
	key  float64
}

// itemArena is a growable, reusable store of items. Acquire hands out the
// next slot, doubling capacity on overflow; reset drops the length to zero
// while keeping the allocation for the next session.
type itemArena struct {
	items []item
}

func (a *itemArena) acquire() *item {
	if len(a.items) == cap(a.items) {
		a.grow()
	}
	a.items = a.items[:len(a.items)+1]
	return &a.items[len(a.items)-1]
}

func (a *itemArena) grow() {
	newCap := cap(a.items) * 2
	if newCap == 0 {
		newCap = arenaStartCap
	}
	next := make([]item, len(a.items), newCap)
	copy(next, a.items)
	a.items = next
}

// ensure raises capacity to at least n, preserving recorded items.
func (a *itemArena) ensure(n int) {
	if n <= cap(a.items) {
		return
	}
	next := make([]item, len(a.items), n)
	copy(next, a.items)
	a.items = next
}

func (a *itemArena) len() int { return len(a.items) }

func (a *itemArena) reset() { a.items = a.items[:0] }
