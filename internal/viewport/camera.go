package viewport

import (
	"image"

	"github.com/talgya/battle-isles/internal/world"
)

// Camera is an orthographic view centred on a world point and mapped onto
// the usable pixel rectangle of the window. World y grows upwards and
// screen y downwards.
type Camera struct {
	Center world.Point
	ViewW  float64 // world units across Screen
	ViewH  float64 // world units down Screen
	Screen image.Rectangle
}

// NewCamera centres on the bounds midpoint and sizes the view with
// FitRectangle. Pass the map's ViewBounds so the camera agrees with the
// presentation convention used for placement and hit testing.
func NewCamera(b world.Bounds, windowW, windowH int, in Insets) Camera {
	w, h := FitRectangle(b, windowW, windowH, in)
	return Camera{
		Center: b.Center(),
		ViewW:  w,
		ViewH:  h,
		Screen: image.Rect(in.Left, in.Top, windowW-in.Right, windowH-in.Bottom),
	}
}

// Visible reports whether anything should be drawn.
func (c Camera) Visible() bool {
	return c.ViewW > 0 && c.ViewH > 0 && c.Screen.Dx() > 0 && c.Screen.Dy() > 0
}

// Scale returns pixels per world unit.
func (c Camera) Scale() float64 {
	if !c.Visible() {
		return 0
	}
	return float64(c.Screen.Dx()) / c.ViewW
}

// Contains reports whether the pixel lies in the usable area. Pixels
// outside it belong to the UI panels.
func (c Camera) Contains(x, y int) bool {
	return image.Pt(x, y).In(c.Screen)
}

// WorldToScreen projects a world point to pixel coordinates.
func (c Camera) WorldToScreen(p world.Point) (float64, float64) {
	if !c.Visible() {
		return 0, 0
	}
	left := c.Center.X - c.ViewW/2
	top := c.Center.Y + c.ViewH/2
	sx := float64(c.Screen.Min.X) + (p.X-left)*float64(c.Screen.Dx())/c.ViewW
	sy := float64(c.Screen.Min.Y) + (top-p.Y)*float64(c.Screen.Dy())/c.ViewH
	return sx, sy
}

// ScreenToWorld maps pixel coordinates back to a world point.
func (c Camera) ScreenToWorld(x, y float64) world.Point {
	if !c.Visible() {
		return c.Center
	}
	left := c.Center.X - c.ViewW/2
	top := c.Center.Y + c.ViewH/2
	return world.Point{
		X: left + (x-float64(c.Screen.Min.X))*c.ViewW/float64(c.Screen.Dx()),
		Y: top - (y-float64(c.Screen.Min.Y))*c.ViewH/float64(c.Screen.Dy()),
	}
}
