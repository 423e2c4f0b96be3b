package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/talgya/battle-isles/internal/visual"
	"github.com/talgya/battle-isles/internal/world"
)

// spriteRadius is the corner radius, in pixels, hex sprites are rasterised
// at. Drawing scales them to the camera.
const spriteRadius = 48

var outline = color.RGBA{R: 20, G: 24, B: 32, A: 200}

// hexCorners returns the six corners of a pointy-top hexagon of radius r
// centred on (cx, cy), starting at the top and going clockwise.
func hexCorners(cx, cy, r float64) [6][2]float32 {
	var out [6][2]float32
	for i := range 6 {
		a := math.Pi/180*(60*float64(i)) - math.Pi/2
		out[i] = [2]float32{float32(cx + r*math.Cos(a)), float32(cy + r*math.Sin(a))}
	}
	return out
}

// spriteSize is the pixel size of a sprite of radius r.
func spriteSize(r float64) (int, int) {
	return int(math.Ceil(math.Sqrt(3)*r)) + 2, int(math.Ceil(2*r)) + 2
}

// newHexSprite rasterises one filled, outlined hexagon in the terrain's
// palette colour.
func newHexSprite(t world.Terrain) *ebiten.Image {
	w, h := spriteSize(spriteRadius)
	img := ebiten.NewImage(w, h)
	corners := hexCorners(float64(w)/2, float64(h)/2, spriteRadius)

	var path vector.Path
	path.MoveTo(corners[0][0], corners[0][1])
	for _, c := range corners[1:] {
		path.LineTo(c[0], c[1])
	}
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(visual.Color(t))
	vector.FillPath(img, &path, &vector.FillOptions{}, opts)

	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(img, a[0], a[1], b[0], b[1], 2, outline, true)
	}
	return img
}

// newSpriteCache returns the terrain cache used by the scene.
func newSpriteCache() *visual.TerrainCache[*ebiten.Image] {
	return visual.NewTerrainCache[*ebiten.Image](newHexSprite)
}
