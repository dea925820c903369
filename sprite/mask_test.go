package sprite

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestMaskFromImageColorKey(t *testing.T) {
	img := solid(4, 3, color.White)
	img.Set(1, 1, color.Black)
	img.Set(2, 1, color.RGBA{R: 255, A: 255})

	keyed := MaskFromImage(img, color.White)
	if got := keyed.Count(); got != 2 {
		t.Errorf("keyed Count() = %d, want 2", got)
	}
	if !keyed.At(1, 1) || keyed.At(0, 0) {
		t.Error("keyed mask has wrong pixels")
	}

	unkeyed := MaskFromImage(img, nil)
	if got := unkeyed.Count(); got != 12 {
		t.Errorf("unkeyed Count() = %d, want 12", got)
	}
}

func TestMaskFromImageAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 70, 2))
	img.Set(65, 1, color.RGBA{G: 10, A: 10})
	m := MaskFromImage(img, nil)
	if m.Count() != 1 || !m.At(65, 1) {
		t.Errorf("expected a single opaque pixel across the word boundary, got %d", m.Count())
	}
}

func TestOverlap(t *testing.T) {
	// 3x3 ring with a transparent center
	ring := NewMask(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x != 1 || y != 1 {
				ring.Set(x, y)
			}
		}
	}
	dot := NewMask(1, 1)
	dot.Set(0, 0)

	tests := []struct {
		name string
		at   image.Point
		want bool
	}{
		{"on ring", image.Pt(10, 10), true},
		{"in hole", image.Pt(11, 11), false},
		{"touching edge", image.Pt(12, 11), true},
		{"outside", image.Pt(13, 11), false},
		{"negative coordinates", image.Pt(-5, -5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(ring, image.Pt(10, 10), dot, tt.at)
			if got != tt.want {
				t.Errorf("Overlap at %v = %v, want %v", tt.at, got, tt.want)
			}
			// symmetric
			if back := Overlap(dot, tt.at, ring, image.Pt(10, 10)); back != got {
				t.Errorf("Overlap not symmetric at %v", tt.at)
			}
		})
	}
}

func TestOverlapNil(t *testing.T) {
	if Overlap(nil, image.Point{}, NewMask(1, 1), image.Point{}) {
		t.Error("nil mask should never overlap")
	}
}
