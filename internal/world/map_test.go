package world

import (
	"errors"
	"math"
	"testing"
)

func mustMap(t *testing.T, w, h int, opts ...Option) *Map {
	t.Helper()
	m, err := TryNew(w, h, opts...)
	if err != nil {
		t.Fatalf("TryNew(%d, %d): %v", w, h, err)
	}
	return m
}

func TestTryNew_ThreeByThree(t *testing.T) {
	m := mustMap(t, 3, 3)
	want := []OffsetCoord{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1},
		{2, 0}, {2, 1}, {2, 2},
	}
	if m.Len() != len(want) {
		t.Fatalf("tile count=%d, want %d", m.Len(), len(want))
	}
	for i, tile := range m.Tiles() {
		if tile.Offset() != want[i] {
			t.Fatalf("tile %d at %v, want %v", i, tile.Offset(), want[i])
		}
		if tile.Terrain != TerrainDeepWater {
			t.Fatalf("tile %d terrain=%s, want DeepWater", i, tile.Terrain)
		}
	}
	if m.HexSize() != DefaultHexSize {
		t.Fatalf("hex size=%f, want default %f", m.HexSize(), DefaultHexSize)
	}
}

func TestTryNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		w, h int
		want error
	}{
		{0, 10, ErrZeroDimension},
		{10, 0, ErrZeroDimension},
		{0, 0, ErrZeroDimension},
		{-3, 4, ErrZeroDimension},
		{1, 2, ErrDegenerateSingleColumn},
		{1, 7, ErrDegenerateSingleColumn},
	}
	for _, tc := range tests {
		m, err := TryNew(tc.w, tc.h)
		if !errors.Is(err, tc.want) {
			t.Errorf("TryNew(%d, %d) err=%v, want %v", tc.w, tc.h, err, tc.want)
		}
		if m != nil {
			t.Errorf("TryNew(%d, %d) returned a map alongside an error", tc.w, tc.h)
		}
	}
}

func TestTryNew_SingleTile(t *testing.T) {
	m := mustMap(t, 1, 1)
	if m.Len() != 1 {
		t.Fatalf("1x1 map has %d tiles, want 1", m.Len())
	}
	n, _ := m.Neighbors(0)
	for s, idx := range n {
		if idx != NoTile {
			t.Fatalf("slot %d of lone tile = %d, want NoTile", s, idx)
		}
	}
}

func TestTryNew_InvalidHexSize(t *testing.T) {
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := TryNew(3, 3, WithHexSize(size)); !errors.Is(err, ErrInvalidHexSize) {
			t.Errorf("hex size %v: err=%v, want ErrInvalidHexSize", size, err)
		}
	}
}

func TestTryNew_InvariantsGrid(t *testing.T) {
	for w := 1; w <= 9; w++ {
		for h := 1; h <= 9; h++ {
			if w == 1 && h > 1 {
				continue
			}
			m := mustMap(t, w, h, WithHexSize(1.5))
			if m.Len() != w*h-h/2 {
				t.Fatalf("%dx%d: %d tiles, want %d", w, h, m.Len(), w*h-h/2)
			}
			if m.Len() != TileCount(w, h) {
				t.Fatalf("%dx%d: TileCount disagrees", w, h)
			}

			seen := make(map[OffsetCoord]bool, m.Len())
			prev := OffsetCoord{Row: -1}
			for i, tile := range m.All() {
				o := tile.Offset()
				if o.Row < 0 || o.Row >= h || o.Col < 0 || o.Col >= m.ColsInRow(o.Row) {
					t.Fatalf("%dx%d: tile %d at %v outside its row", w, h, i, o)
				}
				if seen[o] {
					t.Fatalf("%dx%d: duplicate coord %v", w, h, o)
				}
				seen[o] = true
				if o.Row < prev.Row || (o.Row == prev.Row && o.Col != prev.Col+1) {
					t.Fatalf("%dx%d: tile %d at %v breaks row-major order after %v", w, h, i, o, prev)
				}
				if o.Row != prev.Row && o.Col != 0 {
					t.Fatalf("%dx%d: row %d starts at col %d", w, h, o.Row, o.Col)
				}
				prev = o
				if idx, ok := m.IndexOf(o); !ok || idx != i {
					t.Fatalf("%dx%d: IndexOf(%v)=%d,%v want %d", w, h, o, idx, ok, i)
				}
			}
		}
	}
}

func TestNeighbors_OddRowInThreeByThree(t *testing.T) {
	m := mustMap(t, 3, 3)
	idx, _ := m.IndexOf(OffsetCoord{Row: 1, Col: 0})
	if idx != 3 {
		t.Fatalf("(1,0) index=%d, want 3", idx)
	}
	got, ok := m.Neighbors(idx)
	if !ok {
		t.Fatal("Neighbors(3) not ok")
	}
	// NE (0,1), E (1,1), SE (2,1), SW (2,0), W none, NW (0,0).
	want := [6]int{1, 4, 6, 5, NoTile, 0}
	if got != want {
		t.Fatalf("neighbours of (1,0) = %v, want %v", got, want)
	}
}

func TestNeighbors_EvenRowTable(t *testing.T) {
	m := mustMap(t, 4, 5)
	center, _ := m.IndexOf(OffsetCoord{Row: 2, Col: 1})
	want := [6]OffsetCoord{
		{1, 1}, {2, 2}, {3, 1}, {3, 0}, {2, 0}, {1, 0},
	}
	got, _ := m.Neighbors(center)
	for s, idx := range got {
		tile, ok := m.Tile(idx)
		if !ok {
			t.Fatalf("slot %s absent, want %v", Direction(s), want[s])
		}
		if tile.Offset() != want[s] {
			t.Fatalf("slot %s = %v, want %v", Direction(s), tile.Offset(), want[s])
		}
	}
}

func TestNeighbors_Symmetric(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 2}, {3, 3}, {5, 4}, {8, 7}} {
		m := mustMap(t, dims[0], dims[1])
		for a := 0; a < m.Len(); a++ {
			n, _ := m.Neighbors(a)
			for s, b := range n {
				if b == NoTile {
					continue
				}
				back, ok := m.Neighbor(b, Direction(s).Opposite())
				if !ok || back != a {
					t.Fatalf("%v: %d lists %d in %s but reverse slot holds %d", dims, a, b, Direction(s), back)
				}
			}
		}
	}
}

func TestNeighbors_OutOfRange(t *testing.T) {
	m := mustMap(t, 3, 3)
	if _, ok := m.Neighbors(-1); ok {
		t.Fatal("Neighbors(-1) should not be ok")
	}
	if _, ok := m.Neighbors(m.Len()); ok {
		t.Fatal("Neighbors(len) should not be ok")
	}
	if _, ok := m.Neighbor(0, Direction(9)); ok {
		t.Fatal("Neighbor with bad direction should not be ok")
	}
}

func TestTileToWorld(t *testing.T) {
	m := mustMap(t, 3, 3, WithHexSize(2))
	dx := 2 * math.Sqrt(3)
	dy := 3.0
	tests := []struct {
		off  OffsetCoord
		want Point
	}{
		{OffsetCoord{0, 0}, Point{0, 0}},
		{OffsetCoord{0, 2}, Point{2 * dx, 0}},
		{OffsetCoord{1, 0}, Point{dx / 2, dy}},
		{OffsetCoord{1, 1}, Point{dx + dx/2, dy}},
		{OffsetCoord{2, 1}, Point{dx, 2 * dy}},
	}
	for _, tc := range tests {
		i, _ := m.IndexOf(tc.off)
		got, ok := m.TileToWorld(i)
		if !ok {
			t.Fatalf("TileToWorld(%d) not ok", i)
		}
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
			t.Errorf("TileToWorld(%v) = %+v, want %+v", tc.off, got, tc.want)
		}
		again, _ := m.TileToWorld(i)
		if again != got {
			t.Errorf("TileToWorld(%v) not stable: %+v then %+v", tc.off, got, again)
		}
	}
	if _, ok := m.TileToWorld(99); ok {
		t.Fatal("TileToWorld(99) should not be ok")
	}
}

func TestPlacement_FlipY(t *testing.T) {
	raw := mustMap(t, 3, 3)
	flipped := mustMap(t, 3, 3, WithFlipY(true))
	for i := 0; i < raw.Len(); i++ {
		a, _ := raw.Placement(i)
		b, _ := flipped.Placement(i)
		w, _ := flipped.TileToWorld(i)
		if a.X != b.X || a.Y != -b.Y {
			t.Fatalf("tile %d: raw %+v, flipped %+v", i, a, b)
		}
		if w != a {
			t.Fatalf("tile %d: TileToWorld should stay raw when flipped, got %+v", i, w)
		}
	}
}

func TestBounds_Formula(t *testing.T) {
	m := mustMap(t, 3, 3, WithHexSize(2))
	dx := 2 * math.Sqrt(3)
	b := m.Bounds()
	want := Bounds{
		Left:   -dx / 2,
		Right:  2*dx + dx/2,
		Top:    6 + 2,
		Bottom: -2,
	}
	if math.Abs(b.Left-want.Left) > 1e-9 || math.Abs(b.Right-want.Right) > 1e-9 ||
		math.Abs(b.Top-want.Top) > 1e-9 || math.Abs(b.Bottom-want.Bottom) > 1e-9 {
		t.Fatalf("bounds=%+v, want %+v", b, want)
	}
}

func TestBounds_StrictlyContainTiles(t *testing.T) {
	for _, flip := range []bool{false, true} {
		m := mustMap(t, 6, 5, WithHexSize(0.75), WithFlipY(flip))
		raw := m.Bounds()
		view := m.ViewBounds()
		for i := 0; i < m.Len(); i++ {
			p, _ := m.TileToWorld(i)
			if !(raw.Left < p.X && p.X < raw.Right && raw.Bottom < p.Y && p.Y < raw.Top) {
				t.Fatalf("raw bounds %+v do not contain tile %d at %+v", raw, i, p)
			}
			q, _ := m.Placement(i)
			if !(view.Left < q.X && q.X < view.Right && view.Bottom < q.Y && q.Y < view.Top) {
				t.Fatalf("view bounds %+v do not contain tile %d at %+v", view, i, q)
			}
		}
	}
}

func TestCentroid(t *testing.T) {
	m := mustMap(t, 1, 1, WithHexSize(3))
	if c := m.Centroid(); c != (Point{}) {
		t.Fatalf("1x1 centroid=%+v, want origin", c)
	}
	m = mustMap(t, 2, 1)
	c := m.Centroid()
	if math.Abs(c.X-math.Sqrt(3)/2) > 1e-9 || c.Y != 0 {
		t.Fatalf("2x1 centroid=%+v", c)
	}
}

func TestTerrainCounts(t *testing.T) {
	m := mustMap(t, 3, 3)
	if _, err := m.SetTerrain(0, TerrainHills); err != nil {
		t.Fatal(err)
	}
	counts := m.TerrainCounts()
	if counts[TerrainHills] != 1 || counts[TerrainDeepWater] != 7 {
		t.Fatalf("counts=%v", counts)
	}
}
