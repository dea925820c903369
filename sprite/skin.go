package sprite

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r2"
)

// Oriented is one skin frame rotated to a whole-degree heading.
type Oriented struct {
	Image *image.RGBA
	Mask  *Mask
}

// Size returns the oriented frame size in pixels.
func (o *Oriented) Size() image.Point {
	return o.Image.Bounds().Size()
}

// HalfExtent returns half the oriented frame size.
func (o *Oriented) HalfExtent() r2.Vec {
	s := o.Size()
	return r2.Vec{X: float64(s.X) / 2, Y: float64(s.Y) / 2}
}

// TopLeft returns the pixel corner of the frame when drawn centered on c.
func (o *Oriented) TopLeft(c r2.Vec) image.Point {
	h := o.HalfExtent()
	return image.Pt(int(math.Round(c.X-h.X)), int(math.Round(c.Y-h.Y)))
}

type orientKey struct {
	frame, deg int
}

// Skin is an ordered list of frames sharing one transparency rule. Rotated
// frames and their masks are built on first use and cached.
type Skin struct {
	Name   string
	frames []image.Image
	key    color.Color

	mu    sync.Mutex
	cache map[orientKey]*Oriented
}

// NewSkin creates a skin. A nil key means only alpha decides transparency.
func NewSkin(name string, frames []image.Image, key color.Color) *Skin {
	return &Skin{
		Name:   name,
		frames: frames,
		key:    key,
		cache:  make(map[orientKey]*Oriented),
	}
}

// Len returns the number of frames.
func (s *Skin) Len() int {
	return len(s.frames)
}

// Frame returns the unrotated frame i.
func (s *Skin) Frame(i int) image.Image {
	return s.frames[i%len(s.frames)]
}

// Orient returns frame i rotated counter-clockwise by heading degrees,
// rounded to the nearest whole degree.
func (s *Skin) Orient(frame int, heading float64) *Oriented {
	k := orientKey{frame: frame % len(s.frames), deg: WholeDegrees(heading)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.cache[k]; ok {
		return o
	}
	img := Rotate(s.frames[k.frame], k.deg)
	o := &Oriented{Image: img, Mask: MaskFromImage(img, s.key)}
	s.cache[k] = o
	return o
}

// WholeDegrees rounds a heading to an integer in [0, 360).
func WholeDegrees(heading float64) int {
	d := int(math.Round(heading)) % 360
	if d < 0 {
		d += 360
	}
	return d
}

// Rotate returns src turned counter-clockwise (as seen on screen) by deg
// degrees. The result grows to the rotated bounding box; uncovered pixels
// are transparent.
func Rotate(src image.Image, deg int) *image.RGBA {
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	sin, cos := math.Sincos(float64(deg) * math.Pi / 180)

	const eps = 1e-9
	dw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin) - eps))
	dh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos) - eps))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	if deg%360 == 0 {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}

	scx, scy := float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
	dcx, dcy := float64(dw)/2, float64(dh)/2

	// Screen y grows downwards, so a visual CCW turn maps +x onto -y.
	s2d := f64.Aff3{
		cos, sin, dcx - cos*scx - sin*scy,
		-sin, cos, dcy + sin*scx - cos*scy,
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}
