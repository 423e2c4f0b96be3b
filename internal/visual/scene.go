package visual

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talgya/battle-isles/internal/editor"
	"github.com/talgya/battle-isles/internal/logger"
	"github.com/talgya/battle-isles/internal/world"
)

// Scene mirrors the current map as one resource handle per tile. It is
// driven only by editor events and never mutates the map.
type Scene[H any] struct {
	cache *TerrainCache[H]

	mapID   uuid.UUID
	m       *world.Map
	handles []H
	dirty   []int
	pending []bool

	rebuilds int
	dropped  int

	log *logrus.Entry
}

// NewScene returns an empty scene resolving handles through cache.
func NewScene[H any](cache *TerrainCache[H]) *Scene[H] {
	return &Scene[H]{cache: cache, log: logger.For("visual")}
}

// Handle is an editor.Listener.
func (s *Scene[H]) Handle(e editor.Event) {
	switch e := e.(type) {
	case editor.MapReplaced:
		s.rebuild(e.MapID, e.Map)
	case editor.TileChanged:
		s.update(e.MapID, e.Record)
	}
}

func (s *Scene[H]) rebuild(id uuid.UUID, m *world.Map) {
	s.mapID = id
	s.m = m
	s.handles = s.handles[:0]
	s.dirty = s.dirty[:0]
	s.pending = s.pending[:0]
	for i, tile := range m.All() {
		h, _ := s.cache.GetOrCreate(tile.Terrain)
		s.handles = append(s.handles, h)
		s.dirty = append(s.dirty, i)
		s.pending = append(s.pending, true)
	}
	s.rebuilds++
	s.log.WithFields(logrus.Fields{"map_id": id, "tiles": len(s.handles)}).Debug("scene rebuilt")
}

func (s *Scene[H]) update(id uuid.UUID, rec world.ChangeRecord) {
	if id != s.mapID || rec.TileIndex < 0 || rec.TileIndex >= len(s.handles) {
		s.dropped++
		s.log.WithFields(logrus.Fields{"map_id": id, "tile": rec.TileIndex}).Debug("dropping stale change")
		return
	}
	if !rec.Changed() {
		return
	}
	h, ok := s.cache.GetOrCreate(rec.NewTerrain)
	if !ok {
		return
	}
	s.handles[rec.TileIndex] = h
	s.markDirty(rec.TileIndex)
}

// markDirty queues tile i once until the next TakeDirty, so the list never
// grows past Len however long it goes undrained.
func (s *Scene[H]) markDirty(i int) {
	if s.pending[i] {
		return
	}
	s.pending[i] = true
	s.dirty = append(s.dirty, i)
}

// MapID is the id of the map the scene currently mirrors.
func (s *Scene[H]) MapID() uuid.UUID { return s.mapID }

// Map returns the mirrored map, or nil before the first MapReplaced.
func (s *Scene[H]) Map() *world.Map { return s.m }

// Len is the number of tile handles.
func (s *Scene[H]) Len() int { return len(s.handles) }

// HandleAt returns the handle of tile i.
func (s *Scene[H]) HandleAt(i int) (H, bool) {
	if i < 0 || i >= len(s.handles) {
		var zero H
		return zero, false
	}
	return s.handles[i], true
}

// TakeDirty returns the tiles whose handle changed since the last call, in
// order of first change, and clears the list. Each tile appears at most once.
func (s *Scene[H]) TakeDirty() []int {
	out := append([]int(nil), s.dirty...)
	for _, i := range s.dirty {
		s.pending[i] = false
	}
	s.dirty = s.dirty[:0]
	return out
}

// Rebuilds counts MapReplaced events handled.
func (s *Scene[H]) Rebuilds() int { return s.rebuilds }

// Dropped counts change records ignored because their map was superseded.
func (s *Scene[H]) Dropped() int { return s.dropped }
