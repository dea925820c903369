package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/input"
	"github.com/pthm-cable/dogfight/systems"
)

// shipIntent is what a pilot asks of its ship for one tick.
type shipIntent struct {
	dAngle float64
	dSpeed float64
	fire   bool
}

// computeIntent dispatches on who flies the ship.
func (g *Game) computeIntent(e ecs.Entity, body *components.Body, hull *components.Hull, pilot *components.Pilot, in input.Intent) shipIntent {
	switch pilot.Behavior {
	case components.BehaviorPlayer:
		dAngle, dSpeed := systems.PlayerPilot(in, body)
		return shipIntent{dAngle: dAngle, dSpeed: dSpeed, fire: in.FireHeld || in.FirePressed}
	case components.BehaviorAI:
		return g.aiIntent(e, body, hull, &pilot.AI)
	}
	return shipIntent{}
}

// aiIntent steers toward the held target and fires when it sits in the
// gunnery cone. A lost target is replaced in the same tick.
func (g *Game) aiIntent(e ecs.Entity, body *components.Body, hull *components.Hull, ai *components.AIState) shipIntent {
	enemy := hull.Side.Opponent()
	if !g.validTarget(ai.Target, enemy) {
		ai.Target = ecs.Entity{}
		target, ok := systems.AcquireTarget(g.rng, g.candidates[enemy])
		if !ok {
			return shipIntent{}
		}
		ai.Target = target
		slog.Debug("target_acquired",
			"call_sign", hull.CallSign,
			"target", g.hullMap.Get(target).CallSign,
			"tick", g.tick,
		)
	}

	tb := g.bodyMap.Get(ai.Target)
	var it shipIntent
	bearing := systems.Bearing(body.Center, tb.Center, g.field, ai.WrapAware)
	if proj, ok := systems.RadarProjection(body.Heading, bearing); ok {
		it.dAngle = systems.PilotTurn(proj, ai.PilotingConeSine, body.Motion.TurnRate)
		it.fire = systems.GunnerFire(proj, ai.GunningConeSine)
	}
	if ai.SpeedControl == components.SpeedMatch {
		it.dSpeed = systems.MatchSpeed(body, tb.Speed)
	}
	return it
}

// validTarget reports whether a held target is still a live ship of side.
func (g *Game) validTarget(t ecs.Entity, side components.Side) bool {
	if !g.liveShip(t) {
		return false
	}
	return g.hullMap.Get(t).Side == side
}

// collectCandidates snapshots the live ships of each side as target pools.
func (g *Game) collectCandidates() {
	g.candidates[components.SideAllied] = g.candidates[components.SideAllied][:0]
	g.candidates[components.SideHostile] = g.candidates[components.SideHostile][:0]

	query := g.shipFilter.Query()
	for query.Next() {
		_, hull, _, _, _ := query.Get()
		if hull.Destroyed {
			continue
		}
		g.candidates[hull.Side] = append(g.candidates[hull.Side], query.Entity())
	}
}
