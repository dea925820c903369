package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Projectile is a laser bolt in flight.
type Projectile struct {
	Side      Side
	TicksLeft int
}

// EffectKind tags what an effect represents for renderers and cleanup.
type EffectKind uint8

const (
	EffectMuzzle EffectKind = iota
	EffectEngine
	EffectExplosion
	EffectMarker
	EffectLabel
)

// Effect is a cosmetic frame sequence, either drifting freely or pinned to a parent.
type Effect struct {
	Kind            EffectKind
	Frames          int
	SecondsPerFrame float64
	Ticks           int // ticks since spawn
	Looping         bool

	// Tracking: when Parent is non-zero the effect re-reads the parent's pose
	// each tick and dies with it.
	Parent        ecs.Entity
	Offset        r2.Vec // in the parent's unrotated frame
	FollowHeading bool
}

// Tracking reports whether the effect is pinned to a parent.
func (e *Effect) Tracking() bool {
	return !e.Parent.IsZero()
}

// Sprite tells renderers which frame sheet to draw.
type Sprite struct {
	Sheet uint16 // index into the game's sheet table
	Frame int
	Label string // text overlays (call signs); empty for bitmaps
}

// NoSheet marks sprites that draw no bitmap, such as call-sign labels.
const NoSheet = ^uint16(0)
