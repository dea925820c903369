package components

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Side is the team a ship or projectile fights for.
type Side uint8

const (
	SideAllied Side = iota
	SideHostile
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideAllied {
		return SideHostile
	}
	return SideAllied
}

func (s Side) String() string {
	if s == SideAllied {
		return "allied"
	}
	return "hostile"
}

// Hull is the destructible part of a combat ship.
type Hull struct {
	CallSign     string       `inspect:"label"`
	Side         Side         `inspect:"label"`
	HitPoints    int          `inspect:"bar,maxfield:MaxHitPoints"`
	MaxHitPoints int          `inspect:"skip"`
	Destroyed    bool         `inspect:"bool"`
	Flames       []ecs.Entity `inspect:"skip"` // engine flame effects, present while moving
	Spawn        int          `inspect:"skip"` // spawn template index, -1 for ad-hoc ships
}

// Mount is a laser cannon fixed to a ship.
type Mount struct {
	Offset     r2.Vec        // px from ship center in the unrotated skin, size factor applied
	RateOfFire float64       // shots per second
	RangeTicks int           // projectile lifetime
	SpeedBonus float64       // px per tick added to the ship's speed
	LastShot   time.Duration // clock reading of the last shot
}

// FireModes maps a mode to its ordered salvos; each salvo lists mount indices.
type FireModes [][][]int

// Armament is a ship's weapon state.
type Armament struct {
	Mounts     []Mount   `inspect:"skip"`
	Modes      FireModes `inspect:"skip"`
	ModeIndex  int       `inspect:"label"`
	SalvoIndex int       `inspect:"label"`
	FireLatch  bool      `inspect:"bool"` // last gunner intent
	Bolt       uint16    `inspect:"skip"` // projectile sheet
	Muzzle     uint16    `inspect:"skip"` // muzzle flash sheet
}

// Behavior selects who flies a ship.
type Behavior uint8

const (
	BehaviorPlayer Behavior = iota
	BehaviorAI
)

func (b Behavior) String() string {
	if b == BehaviorPlayer {
		return "player"
	}
	return "ai"
}

// SpeedControl selects how an AI pilot manages throttle.
type SpeedControl uint8

const (
	SpeedHold SpeedControl = iota
	SpeedMatch
)

// AIState holds an AI pilot's target and tuning.
type AIState struct {
	Target           ecs.Entity
	PilotingConeSine float64
	GunningConeSine  float64
	SpeedControl     SpeedControl
	WrapAware        bool
}

// Pilot decides how a ship turns, throttles and shoots.
type Pilot struct {
	Behavior Behavior `inspect:"label"`
	AI       AIState  `inspect:"skip"`
}
