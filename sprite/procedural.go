package sprite

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Ship renders an unrotated hull facing +x.
func Ship(shape string, w, h int, c color.NRGBA) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	fw, fh := float32(w), float32(h)
	switch shape {
	case "arrow":
		fillPolygon(dst, c, pt(fw, fh/2), pt(0, 0), pt(0, fh))
	case "wedge":
		fillPolygon(dst, c, pt(fw, fh/2), pt(0, 0), pt(fw*0.3, fh/2), pt(0, fh))
	case "dart":
		fillPolygon(dst, c,
			pt(fw, fh/2), pt(fw*0.4, fh*0.12), pt(0, 0), pt(fw*0.18, fh/2),
			pt(0, fh), pt(fw*0.4, fh*0.88))
	default:
		return nil, fmt.Errorf("unknown ship shape %q", shape)
	}
	return dst, nil
}

// Bolt renders a laser bolt facing +x.
func Bolt(w, h int, c color.NRGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	fw, fh := float32(w), float32(h)
	fillPolygon(dst, c, pt(0, 0), pt(fw, 0), pt(fw, fh), pt(0, fh))
	return dst
}

// Animation renders n frames of a size×size effect.
func Animation(shape string, size, n int, c color.NRGBA) ([]image.Image, error) {
	frames := make([]image.Image, n)
	for i := range frames {
		// t runs over (0, 1] so the last frame is the fully developed one
		t := float32(i+1) / float32(n)
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		s := float32(size)
		switch shape {
		case "burst":
			fade := c
			fade.A = uint8(float32(c.A) * (1 - 0.6*t))
			fillDisc(dst, fade, s/2, s/2, s/2*(0.3+0.7*t))
			core := color.NRGBA{R: 255, G: 240, B: 200, A: fade.A}
			fillDisc(dst, core, s/2, s/2, s/4*(1-0.5*t))
		case "flame":
			// flickers between long and short plumes, pointing -x
			length := s * (0.6 + 0.4*float32(i%2))
			fillPolygon(dst, c, pt(s, s*0.25), pt(s, s*0.75), pt(s-length, s/2))
		case "flash":
			r := s / 2 * (1 - 0.5*t)
			fillPolygon(dst, c,
				pt(s/2+r, s/2), pt(s/2, s/2-r*0.45), pt(s/2-r*0.4, s/2), pt(s/2, s/2+r*0.45))
		default:
			return nil, fmt.Errorf("unknown animation shape %q", shape)
		}
		frames[i] = dst
	}
	return frames, nil
}

// Frame renders a square outline used as a ship marker.
func Frame(size, thickness int, c color.NRGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	s, t := float32(size), float32(thickness)
	fillPolygon(dst, c, pt(0, 0), pt(s, 0), pt(s, t), pt(0, t))
	fillPolygon(dst, c, pt(0, s-t), pt(s, s-t), pt(s, s), pt(0, s))
	fillPolygon(dst, c, pt(0, t), pt(t, t), pt(t, s-t), pt(0, s-t))
	fillPolygon(dst, c, pt(s-t, t), pt(s, t), pt(s, s-t), pt(s-t, s-t))
	return dst
}

type point [2]float32

func pt(x, y float32) point { return point{x, y} }

func fillPolygon(dst *image.RGBA, c color.Color, pts ...point) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		r.LineTo(p[0], p[1])
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func fillDisc(dst *image.RGBA, c color.Color, cx, cy, radius float32) {
	const segments = 32
	pts := make([]point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = pt(cx+radius*float32(math.Cos(a)), cy+radius*float32(math.Sin(a)))
	}
	fillPolygon(dst, c, pts...)
}
