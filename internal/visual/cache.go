// Package visual binds terrain kinds to presentation resources. Nothing here
// depends on a graphics backend; the renderer supplies the factory.
package visual

import (
	"github.com/talgya/battle-isles/internal/world"
)

// Factory builds the resource for one terrain kind.
type Factory[H any] func(world.Terrain) H

// TerrainCache maps each terrain kind to a single shared handle. Entries
// are created on first use and never evicted.
type TerrainCache[H any] struct {
	factory Factory[H]
	handles [len(world.Terrains)]H
	made    [len(world.Terrains)]bool
	created int
}

// NewTerrainCache returns an empty cache backed by f.
func NewTerrainCache[H any](f Factory[H]) *TerrainCache[H] {
	return &TerrainCache[H]{factory: f}
}

// GetOrCreate returns the handle for t, building it the first time t is
// asked for. It reports false for terrain values outside the enumeration.
func (c *TerrainCache[H]) GetOrCreate(t world.Terrain) (H, bool) {
	if !t.Valid() {
		var zero H
		return zero, false
	}
	if !c.made[t] {
		c.handles[t] = c.factory(t)
		c.made[t] = true
		c.created++
	}
	return c.handles[t], true
}

// Len is the number of terrain kinds with a handle.
func (c *TerrainCache[H]) Len() int {
	return c.created
}

// Has reports whether t already has a handle.
func (c *TerrainCache[H]) Has(t world.Terrain) bool {
	return t.Valid() && c.made[t]
}
