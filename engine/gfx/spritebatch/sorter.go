package spritebatch

import (
	"sort"

	"github.com/emberengine/ember/engine/core"
)

// SortMode selects the emission policy for a session.
type SortMode int

const (
	// SortDeferred emits in submission order when the session ends.
	SortDeferred SortMode = iota
	// SortImmediate issues one submission per draw call, on the spot.
	SortImmediate
	// SortTexture groups sprites sharing a texture to minimize binds.
	SortTexture
	// SortBackToFront emits higher depths first (painter's algorithm).
	SortBackToFront
	// SortFrontToBack emits lower depths first.
	SortFrontToBack
)

// sortPolicy derives the per-item emission key for a mode. Comparison is
// a plain < on the key; the sort is stable, so equal keys keep their
// submission order and identical input yields identical output across
// frames.
type sortPolicy interface {
	key(tex core.Texture, depth float32) float64
}

type textureOrder struct{}

func (textureOrder) key(tex core.Texture, _ float32) float64 { return float64(tex.SortKey()) }

type frontToBack struct{}

func (frontToBack) key(_ core.Texture, depth float32) float64 { return float64(depth) }

type backToFront struct{}

func (backToFront) key(_ core.Texture, depth float32) float64 { return -float64(depth) }

// policyFor returns nil for the modes that keep submission order.
func policyFor(mode SortMode) sortPolicy {
	switch mode {
	case SortTexture:
		return textureOrder{}
	case SortFrontToBack:
		return frontToBack{}
	case SortBackToFront:
		return backToFront{}
	default:
		return nil
	}
}

func sortItems(items []item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })
}
