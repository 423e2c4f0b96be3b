// Package world provides the hex battle map: terrain, coordinates, tiles,
// adjacency, world placement, hit testing and terrain editing.
//
// Tiles are pointy-top hexes laid out in odd-r offset rows. Axial
// coordinates (q, r) are used for neighbour arithmetic; offset
// coordinates (row, col) drive storage order and world placement.
package world

import (
	"fmt"
	"strings"
)

// Terrain is the closed set of terrain kinds a tile can carry.
type Terrain uint8

const (
	TerrainPlains       Terrain = iota // Open ground
	TerrainHills                       // Rough ground
	TerrainMountains                   // Impassable peaks
	TerrainDeepWater                   // Open sea, default for new tiles
	TerrainShallowWater                // Reefs and shoals
	terrainCount                       // sentinel
)

// DefaultTerrain is the terrain every tile starts with.
const DefaultTerrain = TerrainDeepWater

// Terrains lists every terrain kind in palette order.
var Terrains = [terrainCount]Terrain{
	TerrainPlains,
	TerrainHills,
	TerrainMountains,
	TerrainDeepWater,
	TerrainShallowWater,
}

var terrainNames = [terrainCount]string{
	TerrainPlains:       "Plains",
	TerrainHills:        "Hills",
	TerrainMountains:    "Mountains",
	TerrainDeepWater:    "DeepWater",
	TerrainShallowWater: "ShallowWater",
}

// Valid reports whether t is one of the known terrain kinds.
func (t Terrain) Valid() bool {
	return t < terrainCount
}

// String returns the terrain name, e.g. "DeepWater".
func (t Terrain) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
	return terrainNames[t]
}

// IsWater reports whether the terrain is deep or shallow water.
func (t Terrain) IsWater() bool {
	return t == TerrainDeepWater || t == TerrainShallowWater
}

// ParseTerrain resolves a terrain by name. Matching ignores case, spaces,
// dashes and underscores, so "deep water" and "deep_water" both work.
func ParseTerrain(name string) (Terrain, error) {
	key := normalizeName(name)
	for i, n := range terrainNames {
		if normalizeName(n) == key {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, name)
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// HexCoord is a position on the hex grid in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// OffsetCoord is a position in odd-r offset coordinates: odd rows are
// shifted right by half a hex width.
type OffsetCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Offset converts axial coordinates to odd-r offset coordinates.
func (h HexCoord) Offset() OffsetCoord {
	return OffsetCoord{
		Row: h.R,
		Col: h.Q + (h.R-(h.R&1))/2,
	}
}

// Axial converts odd-r offset coordinates to axial coordinates.
func (o OffsetCoord) Axial() HexCoord {
	return HexCoord{
		Q: o.Col - (o.Row-(o.Row&1))/2,
		R: o.Row,
	}
}

// String formats the offset coordinate as "(row,col)".
func (o OffsetCoord) String() string {
	return fmt.Sprintf("(%d,%d)", o.Row, o.Col)
}

// Direction is a neighbour slot of a pointy-top hex.
type Direction uint8

const (
	DirNE Direction = iota
	DirE
	DirSE
	DirSW
	DirW
	DirNW
)

// Directions lists the six neighbour slots in slot order.
var Directions = [6]Direction{DirNE, DirE, DirSE, DirSW, DirW, DirNW}

var directionNames = [6]string{"NE", "E", "SE", "SW", "W", "NW"}

// String returns the compass abbreviation of the slot.
func (d Direction) String() string {
	if d > DirNW {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Opposite returns the slot pointing back the other way.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// HexNeighborDirections holds the axial offset for each slot. Row numbers
// grow towards the south, so NE and NW step to r-1.
var HexNeighborDirections = [6]HexCoord{
	DirNE: {Q: 1, R: -1},
	DirE:  {Q: 1, R: 0},
	DirSE: {Q: 0, R: 1},
	DirSW: {Q: -1, R: 1},
	DirW:  {Q: -1, R: 0},
	DirNW: {Q: 0, R: -1},
}

// Neighbor returns the coordinate one step away in direction d.
func (h HexCoord) Neighbor(d Direction) HexCoord {
	dir := HexNeighborDirections[d%6]
	return HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
}

// Neighbors returns the six adjacent hex coordinates in slot order.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Tile is a single hex of the map.
type Tile struct {
	Coord   HexCoord `json:"coord"`
	Terrain Terrain  `json:"terrain"`
}

// Offset returns the tile position in offset coordinates.
func (t Tile) Offset() OffsetCoord {
	return t.Coord.Offset()
}
