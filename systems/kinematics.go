// Package systems holds the per-tick rules of the dogfight: motion, weapons,
// AI piloting and collision resolution.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

// HeadingVector returns the unit vector for a heading in screen coordinates
// (y grows downwards, headings turn counter-clockwise).
func HeadingVector(deg float64) r2.Vec {
	sin, cos := math.Sincos(radians(deg))
	return r2.Vec{X: cos, Y: -sin}
}

// RotateOffset turns an offset given in a body's unrotated frame into screen
// space for the given heading.
func RotateOffset(off r2.Vec, heading float64) r2.Vec {
	if heading == 0 {
		return off
	}
	return r2.Rotate(off, -radians(heading), r2.Vec{})
}

// OrientFunc returns the half extent of a body's frame at a heading.
type OrientFunc func(heading float64) r2.Vec

// Integrate advances a body by one tick: the turn and throttle requests are
// clamped to the body's motion limits, the heading and then the center are
// updated, the frame is re-oriented if the heading changed, and the result
// is wrapped onto the field.
func Integrate(b *components.Body, dAngle, dSpeed float64, field r2.Vec, orient OrientFunc) {
	m := b.Motion
	if m.TurnRate > 0 {
		dAngle = clamp(dAngle, -m.TurnRate, m.TurnRate)
	}
	speed := b.Speed + dSpeed
	if m.MaxSpeed > 0 {
		speed = clamp(speed, m.MinSpeed, m.MaxSpeed)
	}
	b.Speed = speed

	if dAngle != 0 {
		b.Heading = NormalizeDegrees(b.Heading + dAngle)
		if orient != nil {
			b.HalfExtent = orient(b.Heading)
		}
	}

	b.Center = r2.Add(b.Center, r2.Scale(b.Speed, HeadingVector(b.Heading)))
	Wrap(b, field)
}

// Wrap teleports a body that has fully left the field to the opposite edge,
// keeping Center within [-half, size+half] on each axis.
func Wrap(b *components.Body, field r2.Vec) {
	b.Center.X = wrapAxis(b.Center.X, b.HalfExtent.X, field.X)
	b.Center.Y = wrapAxis(b.Center.Y, b.HalfExtent.Y, field.Y)
}

func wrapAxis(x, half, size float64) float64 {
	if x > size+half {
		return -half
	}
	if x < -half {
		return size + half
	}
	return x
}

// ToroidalDelta returns the shortest delta from a to b on a wrapping field.
func ToroidalDelta(a, b, field r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	if d.X > field.X/2 {
		d.X -= field.X
	} else if d.X < -field.X/2 {
		d.X += field.X
	}
	if d.Y > field.Y/2 {
		d.Y -= field.Y
	} else if d.Y < -field.Y/2 {
		d.Y += field.Y
	}
	return d
}
