package world

import (
	"fmt"
	"iter"
	"math"
)

// DefaultHexSize is the circumradius used when no size is given.
const DefaultHexSize = 1.0

// NoTile marks an absent neighbour slot.
const NoTile = -1

// Point is a position in world units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is an axis-aligned world rectangle. Top is the larger y value.
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Width returns Right - Left.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() Point {
	return Point{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// FlipY mirrors the rectangle across the x axis.
func (b Bounds) FlipY() Bounds {
	return Bounds{Left: b.Left, Right: b.Right, Top: -b.Bottom, Bottom: -b.Top}
}

// Map is a staggered rectangular grid of pointy-top hexes. Even rows hold
// Width tiles and odd rows Width-1. The map owns its tiles; tile indices
// are stable for the lifetime of the map.
type Map struct {
	width   int
	height  int
	hexSize float64
	flipY   bool

	tiles     []Tile
	rowStart  []int // index of the first tile of each row
	neighbors [][6]int
	bounds    Bounds
}

// Option configures map construction.
type Option func(*Map)

// WithHexSize sets the hex circumradius in world units.
func WithHexSize(size float64) Option {
	return func(m *Map) { m.hexSize = size }
}

// WithFlipY makes presentation positions use y = -y_raw so row 0 sits at
// the top. Hit testing follows the same convention.
func WithFlipY(flip bool) Option {
	return func(m *Map) { m.flipY = flip }
}

// TryNew builds a width x height map with every tile set to DeepWater.
// A non-positive dimension returns ErrZeroDimension; width 1 with more
// than one row returns ErrDegenerateSingleColumn.
func TryNew(width, height int, opts ...Option) (*Map, error) {
	m := &Map{
		width:   width,
		height:  height,
		hexSize: DefaultHexSize,
	}
	for _, opt := range opts {
		opt(m)
	}

	if width <= 0 || height <= 0 {
		return nil, &MapError{Width: width, Height: height, Err: ErrZeroDimension}
	}
	if width == 1 && height > 1 {
		return nil, &MapError{Width: width, Height: height, Err: ErrDegenerateSingleColumn}
	}
	if !(m.hexSize > 0) || math.IsInf(m.hexSize, 0) {
		return nil, &MapError{Width: width, Height: height, Err: ErrInvalidHexSize}
	}

	m.tiles = make([]Tile, 0, TileCount(width, height))
	m.rowStart = make([]int, height)
	for row := 0; row < height; row++ {
		m.rowStart[row] = len(m.tiles)
		for col := 0; col < m.ColsInRow(row); col++ {
			off := OffsetCoord{Row: row, Col: col}
			m.tiles = append(m.tiles, Tile{Coord: off.Axial(), Terrain: DefaultTerrain})
		}
	}

	m.linkNeighbors()
	m.bounds = m.computeBounds()
	return m, nil
}

// TileCount returns the number of tiles a width x height map holds.
func TileCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width*height - height/2
}

// Width returns the number of columns on an even row.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// HexSize returns the hex circumradius in world units.
func (m *Map) HexSize() float64 { return m.hexSize }

// FlipsY reports whether presentation positions are y-flipped.
func (m *Map) FlipsY() bool { return m.flipY }

// Len returns the number of tiles.
func (m *Map) Len() int { return len(m.tiles) }

// ColsInRow returns the number of tiles on the given row, 0 when the row
// is outside the map.
func (m *Map) ColsInRow(row int) int {
	if row < 0 || row >= m.height {
		return 0
	}
	if row%2 == 0 {
		return m.width
	}
	return m.width - 1
}

// InBounds reports whether the offset coordinate names a tile.
func (m *Map) InBounds(o OffsetCoord) bool {
	return o.Col >= 0 && o.Col < m.ColsInRow(o.Row)
}

// IndexOf returns the tile index at the offset coordinate.
func (m *Map) IndexOf(o OffsetCoord) (int, bool) {
	if !m.InBounds(o) {
		return NoTile, false
	}
	return m.rowStart[o.Row] + o.Col, true
}

// Tile returns a copy of the tile at index i.
func (m *Map) Tile(i int) (Tile, bool) {
	if i < 0 || i >= len(m.tiles) {
		return Tile{}, false
	}
	return m.tiles[i], true
}

// Tiles returns a snapshot of all tiles in index order.
func (m *Map) Tiles() []Tile {
	out := make([]Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// All iterates tiles with their indices in index order.
func (m *Map) All() iter.Seq2[int, Tile] {
	return func(yield func(int, Tile) bool) {
		for i, t := range m.tiles {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Neighbors returns the neighbour tile indices of tile i in slot order
// [NE, E, SE, SW, W, NW]. Absent slots hold NoTile.
func (m *Map) Neighbors(i int) ([6]int, bool) {
	if i < 0 || i >= len(m.neighbors) {
		return [6]int{NoTile, NoTile, NoTile, NoTile, NoTile, NoTile}, false
	}
	return m.neighbors[i], true
}

// Neighbor returns the tile index one step from tile i in direction d.
func (m *Map) Neighbor(i int, d Direction) (int, bool) {
	if i < 0 || i >= len(m.neighbors) || d > DirNW {
		return NoTile, false
	}
	n := m.neighbors[i][d]
	return n, n != NoTile
}

func (m *Map) linkNeighbors() {
	m.neighbors = make([][6]int, len(m.tiles))
	for i, t := range m.tiles {
		for _, d := range Directions {
			idx, ok := m.IndexOf(t.Coord.Neighbor(d).Offset())
			if !ok {
				idx = NoTile
			}
			m.neighbors[i][d] = idx
		}
	}
}

// spacing returns the horizontal and vertical distance between centres.
func (m *Map) spacing() (dx, dy float64) {
	return m.hexSize * math.Sqrt(3), m.hexSize * 1.5
}

// OffsetToWorld projects an offset coordinate to its raw world centre.
func (m *Map) OffsetToWorld(o OffsetCoord) Point {
	dx, dy := m.spacing()
	xOffset := 0.0
	if o.Row%2 != 0 {
		xOffset = dx / 2
	}
	return Point{
		X: float64(o.Col)*dx + xOffset,
		Y: float64(o.Row) * dy,
	}
}

// TileToWorld returns the raw world centre of tile i (row 0 at y = 0,
// rows growing towards +y).
func (m *Map) TileToWorld(i int) (Point, bool) {
	if i < 0 || i >= len(m.tiles) {
		return Point{}, false
	}
	return m.OffsetToWorld(m.tiles[i].Offset()), true
}

// Placement returns the centre of tile i in the presentation convention of
// this map: raw, or y-flipped when the map was built WithFlipY.
func (m *Map) Placement(i int) (Point, bool) {
	p, ok := m.TileToWorld(i)
	if !ok {
		return Point{}, false
	}
	return m.present(p), true
}

func (m *Map) present(p Point) Point {
	if m.flipY {
		p.Y = -p.Y
	}
	return p
}

// Bounds returns the raw world rectangle covering every tile, padded by
// half a column spacing on x and one hex size on y.
func (m *Map) Bounds() Bounds {
	return m.bounds
}

// ViewBounds returns Bounds in the presentation convention of this map.
func (m *Map) ViewBounds() Bounds {
	if m.flipY {
		return m.bounds.FlipY()
	}
	return m.bounds
}

func (m *Map) computeBounds() Bounds {
	dx, _ := m.spacing()
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range m.tiles {
		p, _ := m.TileToWorld(i)
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Bounds{
		Left:   minX - dx/2,
		Right:  maxX + dx/2,
		Top:    maxY + m.hexSize,
		Bottom: minY - m.hexSize,
	}
}

// Centroid returns the mean presentation position of all tile centres.
func (m *Map) Centroid() Point {
	var sum Point
	for i := range m.tiles {
		p, _ := m.Placement(i)
		sum.X += p.X
		sum.Y += p.Y
	}
	n := float64(len(m.tiles))
	return Point{X: sum.X / n, Y: sum.Y / n}
}

// TerrainCounts returns how many tiles carry each terrain.
func (m *Map) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range m.tiles {
		counts[t.Terrain]++
	}
	return counts
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, tiles=%d, hex=%.2f)", m.width, m.height, len(m.tiles), m.hexSize)
}
