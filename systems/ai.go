package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/input"
)

// minBearing is the shortest bearing the radar can resolve, in px.
const minBearing = 1e-9

// AcquireTarget picks a target uniformly from candidates. An empty pool is
// not an error; the pilot simply stays targetless.
func AcquireTarget(rng *rand.Rand, candidates []ecs.Entity) (ecs.Entity, bool) {
	if len(candidates) == 0 {
		return ecs.Entity{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// Bearing returns the vector from self to target, optionally taking the
// shortest way around the wrapping field.
func Bearing(self, target, field r2.Vec, wrapAware bool) r2.Vec {
	if wrapAware {
		return ToroidalDelta(self, target, field)
	}
	return r2.Sub(target, self)
}

// RadarProjection projects the unit bearing onto the heading's left-hand
// normal: positive means the target is to the left, negative to the right,
// and the magnitude is the sine of the off-axis angle. It reports false when
// the bearing is too short to define a direction.
func RadarProjection(heading float64, bearing r2.Vec) (float64, bool) {
	n := r2.Norm(bearing)
	if n < minBearing || math.IsNaN(n) {
		return 0, false
	}
	u := HeadingVector(heading)
	normal := r2.Vec{X: u.Y, Y: -u.X}
	return r2.Dot(normal, r2.Scale(1/n, bearing)), true
}

// PilotTurn steers toward the target once it leaves the piloting cone.
func PilotTurn(proj, coneSine, turnRate float64) float64 {
	switch {
	case proj > coneSine:
		return turnRate
	case proj < -coneSine:
		return -turnRate
	default:
		return 0
	}
}

// GunnerFire opens fire while the target sits strictly inside the gunnery
// cone. The radar cannot tell ahead from behind, so a target dead astern
// also satisfies the rule.
func GunnerFire(proj, coneSine float64) bool {
	return -coneSine < proj && proj < coneSine
}

// MatchSpeed returns the throttle change that closes on a target speed as
// fast as the body's acceleration allows.
func MatchSpeed(b *components.Body, target float64) float64 {
	d := target - b.Speed
	if b.Motion.Accel > 0 {
		d = clamp(d, -b.Motion.Accel, b.Motion.Accel)
	}
	return d
}

// PlayerPilot maps held keys to turn and throttle requests. Opposing keys
// cancel out; throttle never pushes past the speed caps.
func PlayerPilot(in input.Intent, b *components.Body) (dAngle, dSpeed float64) {
	m := b.Motion
	switch {
	case in.TurnLeft && !in.TurnRight:
		dAngle = m.TurnRate
	case in.TurnRight && !in.TurnLeft:
		dAngle = -m.TurnRate
	}
	switch {
	case in.Accelerate && !in.Decelerate:
		dSpeed = math.Max(0, math.Min(m.Accel, m.MaxSpeed-b.Speed))
	case in.Decelerate && !in.Accelerate:
		dSpeed = -math.Max(0, math.Min(m.Accel, b.Speed-m.MinSpeed))
	}
	return dAngle, dSpeed
}
