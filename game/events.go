package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

// EventKind identifies game events.
type EventKind uint8

const (
	SoundLaser EventKind = iota
	SoundExplosion
	ShipDestroyed
	ShipSpawned
	FireModeChanged
)

func (k EventKind) String() string {
	switch k {
	case SoundLaser:
		return "sound_laser"
	case SoundExplosion:
		return "sound_explosion"
	case ShipDestroyed:
		return "ship_destroyed"
	case ShipSpawned:
		return "ship_spawned"
	case FireModeChanged:
		return "fire_mode_changed"
	}
	return "unknown"
}

// Event is something outside the simulation may want to react to.
type Event struct {
	Kind     EventKind
	Side     components.Side
	CallSign string
	Pos      r2.Vec
	Tick     int

	// Audible is set on sound events emitted while sound was switched on.
	Audible bool
}

// EventSink consumes events drained from the game.
type EventSink interface {
	HandleEvent(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// HandleEvent implements EventSink.
func (f EventSinkFunc) HandleEvent(e Event) { f(e) }

func (g *Game) emit(kind EventKind, side components.Side, callSign string, pos r2.Vec) {
	e := Event{Kind: kind, Side: side, CallSign: callSign, Pos: pos, Tick: g.tick}
	if kind == SoundLaser || kind == SoundExplosion {
		e.Audible = g.soundOn
	}
	g.events = append(g.events, e)
}

// Drain hands every event queued since the last drain to sink, in emission
// order, and clears the queue. A nil sink just discards them.
func (g *Game) Drain(sink EventSink) {
	if sink != nil {
		for _, e := range g.events {
			sink.HandleEvent(e)
		}
	}
	g.events = g.events[:0]
}
