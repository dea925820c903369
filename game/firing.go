package game

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/input"
	"github.com/pthm-cable/dogfight/systems"
)

// updateShips runs every live ship for one tick: intent, motion, gunnery
// and engine flames. Spawns and kills are staged for the next join point.
func (g *Game) updateShips(now time.Duration, in input.Intent) {
	g.collectCandidates()

	// Ships are walked from the snapshot; the pools hold every live ship.
	g.shipScratch = append(g.shipScratch[:0], g.candidates[components.SideAllied]...)
	g.shipScratch = append(g.shipScratch, g.candidates[components.SideHostile]...)

	for _, e := range g.shipScratch {
		body, hull, arm, pilot, spr := g.shipMapper.Get(e)
		if hull.Destroyed {
			continue
		}

		it := g.computeIntent(e, body, hull, pilot, in)

		sheet := g.assets.Sheet(spr.Sheet)
		frame := spr.Frame
		systems.Integrate(body, it.dAngle, it.dSpeed, g.field, func(h float64) r2.Vec {
			return sheet.Orient(frame, h).HalfExtent()
		})

		arm.FireLatch = it.fire
		if it.fire {
			if fired, ok := systems.TryFire(arm, now); ok {
				g.fireSalvo(e, body, hull, arm, fired)
			}
		}

		g.reconcileFlames(e, body, hull)
	}
}

// fireSalvo launches one bolt and one muzzle flash per fired mount.
func (g *Game) fireSalvo(e ecs.Entity, body *components.Body, hull *components.Hull, arm *components.Armament, fired []int) {
	for _, i := range fired {
		g.fireMount(e, body, hull, arm, &arm.Mounts[i])
	}
	g.collector.RecordShots(hull.Side, len(fired))
	g.emit(SoundLaser, hull.Side, hull.CallSign, body.Center)
}

// fireMount stages a projectile leaving mount m at the ship's speed plus
// the mount's bonus, and the muzzle flash pinned to the mount.
func (g *Game) fireMount(e ecs.Entity, body *components.Body, hull *components.Hull, arm *components.Armament, m *components.Mount) {
	pos, heading := systems.MuzzlePose(body, m)

	bolt := g.assets.Sheet(arm.Bolt).Orient(0, heading)
	g.pending.bolts = append(g.pending.bolts, boltSpawn{
		body: components.Body{
			Center:     pos,
			Heading:    heading,
			Speed:      body.Speed + m.SpeedBonus,
			HalfExtent: bolt.HalfExtent(),
		},
		proj:   components.Projectile{Side: hull.Side, TicksLeft: m.RangeTicks},
		sprite: components.Sprite{Sheet: arm.Bolt},
	})

	flash := g.kits[hull.Side].muzzleCfg
	half := float64(flash.Size) / 2
	g.pending.effects = append(g.pending.effects, effectSpawn{
		body: components.Body{Center: pos, Heading: heading, HalfExtent: r2.Vec{X: half, Y: half}},
		effect: components.Effect{
			Kind:            components.EffectMuzzle,
			Frames:          flash.Frames,
			SecondsPerFrame: flash.SecondsPerFrame,
			Parent:          e,
			Offset:          m.Offset,
			FollowHeading:   true,
		},
		sprite: components.Sprite{Sheet: arm.Muzzle},
	})
}

// reconcileFlames lights the engines of a moving ship and puts them out
// when it stops.
func (g *Game) reconcileFlames(e ecs.Entity, body *components.Body, hull *components.Hull) {
	moving := body.Speed > 0
	switch {
	case moving && len(hull.Flames) == 0:
		anim := g.cfg.Animations.Engine
		half := float64(anim.Size) / 2
		for _, off := range g.kits[hull.Side].engines {
			g.pending.effects = append(g.pending.effects, effectSpawn{
				body: components.Body{
					Center:     r2.Add(body.Center, systems.RotateOffset(off, body.Heading)),
					Heading:    body.Heading,
					HalfExtent: r2.Vec{X: half, Y: half},
				},
				effect: components.Effect{
					Kind:            components.EffectEngine,
					Frames:          anim.Frames,
					SecondsPerFrame: anim.SecondsPerFrame,
					Looping:         true,
					Parent:          e,
					Offset:          off,
					FollowHeading:   true,
				},
				sprite:  components.Sprite{Sheet: g.assets.Engine},
				flameOf: e,
			})
		}
	case !moving && len(hull.Flames) > 0:
		g.pending.kills = append(g.pending.kills, hull.Flames...)
		hull.Flames = nil
	}
}
