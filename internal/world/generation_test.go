package world

import "testing"

func TestPlanIslands_DeterministicForSeed(t *testing.T) {
	m := mustMap(t, 12, 10, WithHexSize(2))
	cfg := DefaultIslandConfig()
	cfg.Seed = 42

	a := PlanIslands(m, cfg)
	b := PlanIslands(m, cfg)
	if len(a) != m.Len() {
		t.Fatalf("plan has %d paints, want %d", len(a), m.Len())
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("paint %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Index != i {
			t.Fatalf("paint %d targets tile %d", i, a[i].Index)
		}
		if !a[i].Terrain.Valid() {
			t.Fatalf("paint %d has invalid terrain %d", i, a[i].Terrain)
		}
	}
}

func TestPlanIslands_DoesNotMutate(t *testing.T) {
	m := mustMap(t, 6, 6)
	cfg := DefaultIslandConfig()
	cfg.Seed = 7
	PlanIslands(m, cfg)
	for _, tile := range m.Tiles() {
		if tile.Terrain != TerrainDeepWater {
			t.Fatal("PlanIslands must not modify the map")
		}
	}
}

func TestPlanIslands_HexSizeIndependent(t *testing.T) {
	cfg := DefaultIslandConfig()
	cfg.Seed = 99
	small := PlanIslands(mustMap(t, 8, 8, WithHexSize(1)), cfg)
	large := PlanIslands(mustMap(t, 8, 8, WithHexSize(5)), cfg)
	for i := range small {
		if small[i] != large[i] {
			t.Fatalf("tile %d: %s at size 1, %s at size 5", i, small[i].Terrain, large[i].Terrain)
		}
	}
}

func TestDeriveTerrain_Bands(t *testing.T) {
	cfg := DefaultIslandConfig()
	tests := []struct {
		elev float64
		want Terrain
	}{
		{0.0, TerrainDeepWater},
		{cfg.ShallowLevel, TerrainShallowWater},
		{cfg.SeaLevel, TerrainPlains},
		{cfg.HillLevel, TerrainHills},
		{cfg.MountainLevel, TerrainMountains},
		{1.0, TerrainMountains},
	}
	for _, tc := range tests {
		if got := deriveTerrain(tc.elev, cfg); got != tc.want {
			t.Errorf("deriveTerrain(%.2f) = %s, want %s", tc.elev, got, tc.want)
		}
	}
}

func TestRandomSeedNonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		if RandomSeed() == 0 {
			t.Fatal("RandomSeed returned 0")
		}
	}
}
