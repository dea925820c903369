package sprite

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestWholeDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{359.6, 0},
		{360, 0},
		{-90, 270},
		{725.2, 5},
		{44.5, 45},
	}
	for _, tt := range tests {
		if got := WholeDegrees(tt.in); got != tt.want {
			t.Errorf("WholeDegrees(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRotateBounds(t *testing.T) {
	src := solid(40, 10, color.White)
	tests := []struct {
		deg  int
		w, h int
	}{
		{0, 40, 10},
		{90, 10, 40},
		{180, 40, 10},
		{270, 10, 40},
		{45, 36, 36},
	}
	for _, tt := range tests {
		got := Rotate(src, tt.deg).Bounds().Size()
		if got.X != tt.w || got.Y != tt.h {
			t.Errorf("Rotate(%d) size = %v, want %dx%d", tt.deg, got, tt.w, tt.h)
		}
	}
}

func TestRotateDirection(t *testing.T) {
	// a bar with a marked tip at +x
	src := image.NewRGBA(image.Rect(0, 0, 21, 3))
	for x := 0; x < 21; x++ {
		src.Set(x, 1, color.White)
	}
	src.Set(20, 1, color.RGBA{R: 255, A: 255})

	up := Rotate(src, 90)
	m := MaskFromImage(up, color.White)
	if m.Count() != 1 {
		t.Fatalf("tip pixels after rotation = %d, want 1", m.Count())
	}
	// a CCW quarter turn on screen puts the tip at the top
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.At(x, y) && y > m.H/4 {
				t.Errorf("tip at y=%d, want near the top of %d rows", y, m.H)
			}
		}
	}
}

func TestOrientCachesAndPreservesArea(t *testing.T) {
	skin := NewSkin("bar", []image.Image{solid(30, 8, color.White)}, nil)

	a := skin.Orient(0, 90.2)
	b := skin.Orient(0, 89.9)
	if a != b {
		t.Error("headings rounding to the same degree should share a cache entry")
	}
	if he := a.HalfExtent(); he.X != 4 || he.Y != 15 {
		t.Errorf("HalfExtent() = %v, want {4 15}", he)
	}

	base := skin.Orient(0, 0).Mask.Count()
	for _, deg := range []float64{30, 90, 135, 200} {
		got := skin.Orient(0, deg).Mask.Count()
		if math.Abs(float64(got-base)) > 0.2*float64(base) {
			t.Errorf("mask area at %v° = %d, want about %d", deg, got, base)
		}
	}
}

func TestTopLeft(t *testing.T) {
	skin := NewSkin("sq", []image.Image{solid(10, 6, color.White)}, nil)
	o := skin.Orient(0, 0)
	got := o.TopLeft(r2vec(100, 50))
	if got != image.Pt(95, 47) {
		t.Errorf("TopLeft = %v, want (95,47)", got)
	}
}
