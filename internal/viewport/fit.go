// Package viewport fits the battle map into the window area left free by
// the editor panels and converts between screen pixels and world units.
package viewport

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/talgya/battle-isles/internal/world"
)

// MinExtent replaces a zero map width or height when fitting, so the
// result never collapses for a degenerate rectangle.
const MinExtent = 1.0

// Insets are the pixels reserved by UI panels on each side of the window.
type Insets struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// DefaultInsets matches the editor layout: side panels 100px wide, top and
// bottom bars 50px tall.
var DefaultInsets = Insets{Left: 100, Right: 100, Top: 50, Bottom: 50}

// Validate rejects negative insets.
func (in Insets) Validate() error {
	if in.Left < 0 || in.Right < 0 || in.Top < 0 || in.Bottom < 0 {
		return fmt.Errorf("insets must be non-negative, got %+v", in)
	}
	return nil
}

// String formats the insets as "left,right,top,bottom".
func (in Insets) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", in.Left, in.Right, in.Top, in.Bottom)
}

// ParseInsets reads "left,right,top,bottom".
func ParseInsets(s string) (Insets, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Insets{}, fmt.Errorf("insets %q: want 4 comma-separated values", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Insets{}, fmt.Errorf("insets %q: %w", s, err)
		}
		vals[i] = v
	}
	in := Insets{Left: vals[0], Right: vals[1], Top: vals[2], Bottom: vals[3]}
	return in, in.Validate()
}

// Usable returns the pixel width and height left after the insets.
func Usable(windowW, windowH int, in Insets) (int, int) {
	return windowW - in.Left - in.Right, windowH - in.Top - in.Bottom
}

// FitRectangle returns the orthographic view size in world units that
// contains the map bounds and matches the aspect ratio of the usable
// window area. When the usable area is empty it returns (0, 0) and the
// caller should skip rendering.
func FitRectangle(b world.Bounds, windowW, windowH int, in Insets) (float64, float64) {
	usableW, usableH := Usable(windowW, windowH, in)
	if usableW <= 0 || usableH <= 0 {
		return 0, 0
	}
	aspectW := float64(usableW) / float64(usableH)

	mapW := b.Width()
	mapH := b.Height()
	if !(mapW > 0) || math.IsInf(mapW, 0) {
		mapW = MinExtent
	}
	if !(mapH > 0) || math.IsInf(mapH, 0) {
		mapH = MinExtent
	}
	aspectMap := mapW / mapH

	if aspectW > aspectMap {
		// Window is wider than map: fit height.
		targetH := mapH
		return targetH * aspectW, targetH
	}
	// Window is taller than map: fit width.
	targetW := mapW
	return targetW, targetW / aspectW
}
