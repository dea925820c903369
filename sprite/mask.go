// Package sprite builds oriented frames and pixel masks for skins.
package sprite

import (
	"image"
	"image/color"
	"math/bits"
)

// Mask is a packed per-pixel opacity bitmap.
type Mask struct {
	W, H   int
	stride int // uint64 words per row
	bits   []uint64
}

// NewMask returns an empty w×h mask.
func NewMask(w, h int) *Mask {
	stride := (w + 63) / 64
	return &Mask{W: w, H: h, stride: stride, bits: make([]uint64, stride*h)}
}

// Set marks (x, y) opaque. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
}

// At reports whether (x, y) is opaque.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// MaskFromImage builds a mask where a pixel is opaque when its alpha is
// non-zero and, if key is non-nil, its color differs from the key.
func MaskFromImage(img image.Image, key color.Color) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())

	var kr, kg, kb, ka uint32
	if key != nil {
		kr, kg, kb, ka = key.RGBA()
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if key != nil && r == kr && g == kg && bl == kb && a == ka {
				continue
			}
			m.Set(x-b.Min.X, y-b.Min.Y)
		}
	}
	return m
}

// Overlap reports whether two masks placed with their top-left corners at
// ao and bo share at least one opaque pixel.
func Overlap(a *Mask, ao image.Point, b *Mask, bo image.Point) bool {
	if a == nil || b == nil {
		return false
	}
	ra := image.Rect(ao.X, ao.Y, ao.X+a.W, ao.Y+a.H)
	rb := image.Rect(bo.X, bo.Y, bo.X+b.W, bo.Y+b.H)
	in := ra.Intersect(rb)
	if in.Empty() {
		return false
	}
	for y := in.Min.Y; y < in.Max.Y; y++ {
		for x := in.Min.X; x < in.Max.X; x++ {
			if a.At(x-ao.X, y-ao.Y) && b.At(x-bo.X, y-bo.Y) {
				return true
			}
		}
	}
	return false
}
