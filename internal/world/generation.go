// Island seeding using layered simplex noise.
// Samples an elevation field at each tile centre, fades it towards the map
// edge and derives terrain from elevation bands.
package world

import (
	"crypto/rand"
	"encoding/binary"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// IslandConfig holds island seeding parameters. Elevation is normalised
// to 0.0–1.0 before the level thresholds are applied.
type IslandConfig struct {
	Seed          int64   // Noise seed (0 = random)
	ShallowLevel  float64 // Below this: deep water
	SeaLevel      float64 // Below this: shallow water
	HillLevel     float64 // At or above this: hills
	MountainLevel float64 // At or above this: mountains
	Frequency     float64 // Base noise frequency per hex
	Octaves       int
	Persistence   float64
}

// DefaultIslandConfig returns settings that give a few mid-sized islands
// on a 10x8 map.
func DefaultIslandConfig() IslandConfig {
	return IslandConfig{
		Seed:          0,
		ShallowLevel:  0.30,
		SeaLevel:      0.38,
		HillLevel:     0.58,
		MountainLevel: 0.72,
		Frequency:     0.35,
		Octaves:       4,
		Persistence:   0.5,
	}
}

// PlanIslands computes a terrain for every tile of m. The map is not
// modified; apply the plan with ApplyPaints or through the editor so that
// change records are emitted.
func PlanIslands(m *Map, cfg IslandConfig) []Paint {
	seed := cfg.Seed
	if seed == 0 {
		seed = RandomSeed()
	}
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	elevNoise := opensimplex.NewNormalized(seed)

	// Sample in hex units so the pattern does not depend on hex size.
	unit := make([]Point, len(m.tiles))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, t := range m.tiles {
		p := unitPosition(t.Offset())
		unit[i] = p
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	centerX, centerY := (minX+maxX)/2, (minY+maxY)/2
	halfW := (maxX-minX)/2 + math.Sqrt(3)/2
	halfH := (maxY-minY)/2 + 1

	paints := make([]Paint, 0, m.Len())
	for i, p := range unit {
		elev := octaveNoise(elevNoise, p.X, p.Y, cfg.Octaves, cfg.Frequency, cfg.Persistence)

		// Edge falloff: the border of the map drifts towards open sea.
		nx := (p.X - centerX) / halfW
		ny := (p.Y - centerY) / halfH
		dist := math.Sqrt(nx*nx+ny*ny) / math.Sqrt2
		edgeFalloff := 1.0 - math.Pow(dist, 3.5)
		if edgeFalloff < 0 {
			edgeFalloff = 0
		}
		elev *= 0.4 + 0.6*edgeFalloff

		paints = append(paints, Paint{Index: i, Terrain: deriveTerrain(elev, cfg)})
	}
	return paints
}

// unitPosition is the world centre of an offset coordinate for a hex of
// circumradius 1.
func unitPosition(o OffsetCoord) Point {
	x := float64(o.Col) * math.Sqrt(3)
	if o.Row%2 != 0 {
		x += math.Sqrt(3) / 2
	}
	return Point{X: x, Y: float64(o.Row) * 1.5}
}

// deriveTerrain maps an elevation to a terrain band.
func deriveTerrain(elev float64, cfg IslandConfig) Terrain {
	switch {
	case elev < cfg.ShallowLevel:
		return TerrainDeepWater
	case elev < cfg.SeaLevel:
		return TerrainShallowWater
	case elev >= cfg.MountainLevel:
		return TerrainMountains
	case elev >= cfg.HillLevel:
		return TerrainHills
	default:
		return TerrainPlains
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// RandomSeed returns a non-zero seed from crypto/rand.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
