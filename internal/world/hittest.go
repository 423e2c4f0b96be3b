package world

// NearestTile returns the index of the tile whose presentation centre is
// closest to p by squared distance. Ties go to the smallest index. Any
// point resolves to a tile; false is returned only for an empty map.
//
// p must use the map's presentation convention (Placement), not raw
// TileToWorld output. The two differ only on FlipY maps.
func (m *Map) NearestTile(p Point) (int, bool) {
	best := NoTile
	bestDist := 0.0
	for i := range m.tiles {
		c, _ := m.Placement(i)
		ddx := c.X - p.X
		ddy := c.Y - p.Y
		d := ddx*ddx + ddy*ddy
		if best == NoTile || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best != NoTile
}
