package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

const eps = 1e-9

func vecNear(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestHeadingVector(t *testing.T) {
	tests := []struct {
		deg  float64
		want r2.Vec
	}{
		{0, r2.Vec{X: 1, Y: 0}},
		{90, r2.Vec{X: 0, Y: -1}}, // up on screen
		{180, r2.Vec{X: -1, Y: 0}},
		{270, r2.Vec{X: 0, Y: 1}},
	}
	for _, tt := range tests {
		if got := HeadingVector(tt.deg); !vecNear(got, tt.want, eps) {
			t.Errorf("HeadingVector(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestRotateOffset(t *testing.T) {
	off := r2.Vec{X: 10, Y: 5} // ahead and to the right (screen down)
	tests := []struct {
		heading float64
		want    r2.Vec
	}{
		{0, r2.Vec{X: 10, Y: 5}},
		{90, r2.Vec{X: 5, Y: -10}},
		{180, r2.Vec{X: -10, Y: -5}},
	}
	for _, tt := range tests {
		if got := RotateOffset(off, tt.heading); !vecNear(got, tt.want, 1e-9) {
			t.Errorf("RotateOffset(%v, %v) = %v, want %v", off, tt.heading, got, tt.want)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {-10, 350}, {725, 5}, {359.5, 359.5},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func newBody(x, y, heading, speed float64) *components.Body {
	return &components.Body{
		Center:     r2.Vec{X: x, Y: y},
		Heading:    heading,
		Speed:      speed,
		HalfExtent: r2.Vec{X: 10, Y: 10},
		Motion:     components.Motion{TurnRate: 2.5, Accel: 1, MaxSpeed: 5},
	}
}

func TestIntegrateClampsTurnAndSpeed(t *testing.T) {
	field := r2.Vec{X: 1000, Y: 1000}
	b := newBody(500, 500, 0, 4)

	oriented := 0
	Integrate(b, 30, 3, field, func(h float64) r2.Vec {
		oriented++
		return r2.Vec{X: 12, Y: 8}
	})

	if math.Abs(b.Heading-2.5) > eps {
		t.Errorf("Heading = %v, want turn clamped to 2.5", b.Heading)
	}
	if b.Speed != 5 {
		t.Errorf("Speed = %v, want clamped to MaxSpeed 5", b.Speed)
	}
	if oriented != 1 || b.HalfExtent != (r2.Vec{X: 12, Y: 8}) {
		t.Errorf("expected one re-orientation, got %d (extent %v)", oriented, b.HalfExtent)
	}
	want := r2.Add(r2.Vec{X: 500, Y: 500}, r2.Scale(5, HeadingVector(2.5)))
	if !vecNear(b.Center, want, 1e-9) {
		t.Errorf("Center = %v, want %v", b.Center, want)
	}
}

func TestIntegrateNoTurnSkipsOrient(t *testing.T) {
	b := newBody(100, 100, 45, 2)
	Integrate(b, 0, -10, r2.Vec{X: 1000, Y: 1000}, func(float64) r2.Vec {
		t.Fatal("orient called without a heading change")
		return r2.Vec{}
	})
	if b.Speed != 0 {
		t.Errorf("Speed = %v, want clamped to MinSpeed 0", b.Speed)
	}
	if b.Center != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("stopped body moved to %v", b.Center)
	}
}

func TestIntegrateUncappedProjectile(t *testing.T) {
	b := &components.Body{Center: r2.Vec{X: 0, Y: 0}, Heading: 0, Speed: 40, HalfExtent: r2.Vec{X: 2, Y: 1}}
	Integrate(b, 0, 0, r2.Vec{X: 1000, Y: 1000}, nil)
	if b.Center.X != 40 || b.Speed != 40 {
		t.Errorf("projectile at %v speed %v, want x=40 speed 40", b.Center, b.Speed)
	}
}

func TestWrap(t *testing.T) {
	field := r2.Vec{X: 1500, Y: 700}
	tests := []struct {
		name string
		in   r2.Vec
		want r2.Vec
	}{
		{"inside", r2.Vec{X: 700, Y: 300}, r2.Vec{X: 700, Y: 300}},
		{"hanging over right edge", r2.Vec{X: 1505, Y: 300}, r2.Vec{X: 1505, Y: 300}},
		{"past right edge", r2.Vec{X: 1511, Y: 300}, r2.Vec{X: -10, Y: 300}},
		{"past left edge", r2.Vec{X: -10.5, Y: 300}, r2.Vec{X: 1510, Y: 300}},
		{"past bottom edge", r2.Vec{X: 50, Y: 716}, r2.Vec{X: 50, Y: -15}},
		{"past top edge", r2.Vec{X: 50, Y: -16}, r2.Vec{X: 50, Y: 715}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &components.Body{Center: tt.in, HalfExtent: r2.Vec{X: 10, Y: 15}}
			Wrap(b, field)
			if b.Center != tt.want {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, b.Center, tt.want)
			}
		})
	}
}

func TestWrapInvariantOverManyTicks(t *testing.T) {
	field := r2.Vec{X: 300, Y: 200}
	b := newBody(150, 100, 37, 5)
	b.Motion.TurnRate = 0
	for i := 0; i < 2000; i++ {
		Integrate(b, 0, 0, field, nil)
		h := b.HalfExtent
		if b.Center.X < -h.X || b.Center.X > field.X+h.X || b.Center.Y < -h.Y || b.Center.Y > field.Y+h.Y {
			t.Fatalf("tick %d: center %v escaped the wrapped field", i, b.Center)
		}
	}
}

func TestToroidalDelta(t *testing.T) {
	field := r2.Vec{X: 1000, Y: 500}
	tests := []struct {
		a, b, want r2.Vec
	}{
		{r2.Vec{X: 10, Y: 10}, r2.Vec{X: 20, Y: 30}, r2.Vec{X: 10, Y: 20}},
		{r2.Vec{X: 10, Y: 10}, r2.Vec{X: 990, Y: 10}, r2.Vec{X: -20, Y: 0}},
		{r2.Vec{X: 990, Y: 490}, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 20, Y: 20}},
	}
	for _, tt := range tests {
		if got := ToroidalDelta(tt.a, tt.b, field); !vecNear(got, tt.want, eps) {
			t.Errorf("ToroidalDelta(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
