package render

import (
	"math"
	"testing"
)

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		w, h   string
		wantW  int
		wantH  int
		wantOK bool
	}{
		{"10", "8", 10, 8, true},
		{" 3 ", "4", 3, 4, true},
		{"0", "5", 0, 5, true},
		{"-2", "5", -2, 5, true},
		{"ten", "8", 0, 0, false},
		{"10", "", 0, 0, false},
	}
	for _, tc := range tests {
		w, h, err := parseDimensions(tc.w, tc.h)
		if (err == nil) != tc.wantOK {
			t.Fatalf("parseDimensions(%q, %q) err=%v", tc.w, tc.h, err)
		}
		if tc.wantOK && (w != tc.wantW || h != tc.wantH) {
			t.Fatalf("parseDimensions(%q, %q) = %d, %d", tc.w, tc.h, w, h)
		}
	}
}

func TestHexCornersPointyTop(t *testing.T) {
	c := hexCorners(0, 0, 10)
	if math.Abs(float64(c[0][0])) > 1e-4 || math.Abs(float64(c[0][1])+10) > 1e-4 {
		t.Fatalf("first corner %v, want top (0,-10)", c[0])
	}
	if math.Abs(float64(c[3][1])-10) > 1e-4 {
		t.Fatalf("fourth corner %v, want bottom", c[3])
	}
	for i, p := range c {
		r := math.Hypot(float64(p[0]), float64(p[1]))
		if math.Abs(r-10) > 1e-3 {
			t.Fatalf("corner %d at radius %v", i, r)
		}
	}
	halfW := 10 * math.Sqrt(3) / 2
	if math.Abs(float64(c[1][0])-halfW) > 1e-3 {
		t.Fatalf("corner 1 x=%v, want %v", c[1][0], halfW)
	}
}

func TestSpriteSizeFitsHex(t *testing.T) {
	w, h := spriteSize(spriteRadius)
	if float64(w) < math.Sqrt(3)*spriteRadius || float64(h) < 2*spriteRadius {
		t.Fatalf("sprite %dx%d too small for radius %d", w, h, spriteRadius)
	}
}
