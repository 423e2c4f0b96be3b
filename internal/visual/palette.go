package visual

import (
	"image/color"
	"strings"

	"github.com/talgya/battle-isles/internal/world"
)

var palette = [len(world.Terrains)]color.RGBA{
	world.TerrainPlains:       {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	world.TerrainHills:        {R: 0x80, G: 0x80, B: 0x00, A: 0xff},
	world.TerrainMountains:    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	world.TerrainDeepWater:    {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	world.TerrainShallowWater: {R: 0x00, G: 0xff, B: 0xff, A: 0xff},
}

// Unknown is drawn for terrain values outside the enumeration.
var Unknown = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// Color returns the fill colour for t.
func Color(t world.Terrain) color.RGBA {
	if !t.Valid() {
		return Unknown
	}
	return palette[t]
}

var glyphs = [len(world.Terrains)]byte{
	world.TerrainPlains:       '.',
	world.TerrainHills:        'n',
	world.TerrainMountains:    '^',
	world.TerrainDeepWater:    '~',
	world.TerrainShallowWater: '-',
}

// Glyph returns the single character used for t in text previews.
func Glyph(t world.Terrain) byte {
	if !t.Valid() {
		return '?'
	}
	return glyphs[t]
}

// ASCII renders m as text, row 0 first. Odd rows are indented by one
// column so the stagger reads the same way as on screen.
func ASCII(m *world.Map) string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(m.Len()*2 + m.Height()*2)
	for row := range m.Height() {
		if row&1 == 1 {
			b.WriteByte(' ')
		}
		for col := range m.ColsInRow(row) {
			if col > 0 {
				b.WriteByte(' ')
			}
			i, _ := m.IndexOf(world.OffsetCoord{Row: row, Col: col})
			tile, _ := m.Tile(i)
			b.WriteByte(Glyph(tile.Terrain))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
