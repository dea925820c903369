// Package camera maps field coordinates to the screen. A field that fits
// the window is shown whole; a larger field scrolls to follow a ship.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/systems"
)

// Camera controls the viewport into the field.
type Camera struct {
	// Center is the field point drawn at the middle of the viewport.
	Center r2.Vec

	Viewport r2.Vec
	Field    r2.Vec
}

// New creates a camera centered on the field.
func New(viewport, field r2.Vec) *Camera {
	return &Camera{
		Center:   r2.Scale(0.5, field),
		Viewport: viewport,
		Field:    field,
	}
}

// Scrolls reports whether the field is larger than the viewport on
// either axis. A fixed camera never wraps.
func (c *Camera) Scrolls() bool {
	return c.Field.X > c.Viewport.X || c.Field.Y > c.Viewport.Y
}

// Follow centers the camera on p. It does nothing for a fixed camera.
func (c *Camera) Follow(p r2.Vec) {
	if !c.Scrolls() {
		return
	}
	c.Center = r2.Vec{X: mod(p.X, c.Field.X), Y: mod(p.Y, c.Field.Y)}
}

// delta returns the offset of p from the camera center. A scrolling camera
// takes the shortest way around the wrapping field. A fixed one keeps ships
// that are sliding off one edge on that edge.
func (c *Camera) delta(p r2.Vec) r2.Vec {
	if c.Scrolls() {
		return systems.ToroidalDelta(c.Center, p, c.Field)
	}
	return r2.Sub(p, c.Center)
}

// WorldToScreen converts field coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(0.5, c.Viewport), c.delta(p))
}

// ScreenToWorld converts screen coordinates to field coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	p := r2.Add(c.Center, r2.Sub(s, r2.Scale(0.5, c.Viewport)))
	if c.Scrolls() {
		p = r2.Vec{X: mod(p.X, c.Field.X), Y: mod(p.Y, c.Field.Y)}
	}
	return p
}

// IsVisible returns true if a box of the given half extent centered at p
// could be visible on screen.
func (c *Camera) IsVisible(p, half r2.Vec) bool {
	d := c.delta(p)
	return math.Abs(d.X) <= c.Viewport.X/2+half.X && math.Abs(d.Y) <= c.Viewport.Y/2+half.Y
}

// mod computes the positive modulo.
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
