package world

// ChangeRecord describes one tile's terrain transition. It is emitted for
// every successful edit, including edits that keep the same terrain.
type ChangeRecord struct {
	TileIndex       int     `json:"tile_index"`
	PreviousTerrain Terrain `json:"previous_terrain"`
	NewTerrain      Terrain `json:"new_terrain"`
}

// Changed reports whether the edit actually altered the terrain.
func (c ChangeRecord) Changed() bool {
	return c.PreviousTerrain != c.NewTerrain
}

// SetTerrain replaces the terrain of tile i. This is the only path that
// mutates a map after construction.
func (m *Map) SetTerrain(i int, t Terrain) (ChangeRecord, error) {
	if i < 0 || i >= len(m.tiles) {
		return ChangeRecord{}, &EditError{Index: i, Terrain: t, Err: ErrOutOfRange}
	}
	if !t.Valid() {
		return ChangeRecord{}, &EditError{Index: i, Terrain: t, Err: ErrUnknownTerrain}
	}

	prev := m.tiles[i].Terrain
	m.tiles[i].Terrain = t
	return ChangeRecord{TileIndex: i, PreviousTerrain: prev, NewTerrain: t}, nil
}

// Paint is a planned terrain assignment for one tile.
type Paint struct {
	Index   int     `json:"index"`
	Terrain Terrain `json:"terrain"`
}

// ApplyPaints runs SetTerrain for each paint in order and returns the
// records of the edits that succeeded. The first error stops the batch.
func (m *Map) ApplyPaints(paints []Paint) ([]ChangeRecord, error) {
	records := make([]ChangeRecord, 0, len(paints))
	for _, p := range paints {
		rec, err := m.SetTerrain(p.Index, p.Terrain)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}
