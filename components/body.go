// Package components defines ECS components for the dogfight.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Motion holds the per-tick limits a pilot may apply to a body.
// A zero MaxSpeed means the speed is not capped (projectiles, explosions).
type Motion struct {
	TurnRate float64 `inspect:"label,fmt:%.2f°/t"` // degrees per tick
	Accel    float64 `inspect:"label,fmt:%.3f"`    // px per tick, per tick
	MinSpeed float64 `inspect:"skip"`
	MaxSpeed float64 `inspect:"label,fmt:%.2f"`
}

// Body is the kinematic state of anything that flies across the field.
type Body struct {
	Center     r2.Vec  `inspect:"vec"`
	Heading    float64 `inspect:"angle"`     // degrees CCW, 0 = unrotated skin, [0,360)
	Speed      float64 `inspect:"bar,max:8"` // px per tick
	HalfExtent r2.Vec  `inspect:"skip"`      // half size of the current oriented frame
	Motion     Motion  `inspect:"skip"`
}
