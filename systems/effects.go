package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

// AdvanceEffect moves an effect one tick forward and returns the frame to
// show. It reports false once a non-looping effect has shown its last frame.
func AdvanceEffect(e *components.Effect, dt float64) (int, bool) {
	e.Ticks++
	// bias absorbs float error at frame boundaries
	idx := int(float64(e.Ticks)*dt/e.SecondsPerFrame + 1e-9)
	if idx >= e.Frames {
		if !e.Looping {
			return e.Frames - 1, false
		}
		idx %= e.Frames
	}
	return idx, true
}

// TrackPose returns where a tracking effect sits for its parent's body.
// Effects that follow the heading have their offset turned with the parent;
// the others keep a fixed screen offset and their own heading.
func TrackPose(parent *components.Body, e *components.Effect, own float64) (r2.Vec, float64) {
	if e.FollowHeading {
		return r2.Add(parent.Center, RotateOffset(e.Offset, parent.Heading)), parent.Heading
	}
	return r2.Add(parent.Center, e.Offset), own
}
