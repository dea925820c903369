package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dogfight/components"
)

type boltSpawn struct {
	body   components.Body
	proj   components.Projectile
	sprite components.Sprite
}

type effectSpawn struct {
	body   components.Body
	effect components.Effect
	sprite components.Sprite

	// flameOf is the ship an engine flame is recorded on once it exists.
	flameOf ecs.Entity
}

// pending stages structural changes made while walking the world. They are
// applied at fixed join points of the tick, never inside a query.
type pending struct {
	bolts   []boltSpawn
	effects []effectSpawn
	kills   []ecs.Entity // projectiles and effects
	wrecks  []ecs.Entity // ships whose hull reached zero
}

// applySpawns creates staged projectiles and effects and removes staged
// kills. Engine flames are written back to their ship; a flame whose ship is
// already gone is dropped.
func (g *Game) applySpawns() {
	for i := range g.pending.bolts {
		b := &g.pending.bolts[i]
		g.boltMapper.NewEntity(&b.body, &b.proj, &b.sprite)
	}
	g.pending.bolts = g.pending.bolts[:0]

	for i := range g.pending.effects {
		s := &g.pending.effects[i]
		owner := s.flameOf
		if !owner.IsZero() && !g.liveShip(owner) {
			continue
		}
		e := g.effectMapper.NewEntity(&s.body, &s.effect, &s.sprite)
		if !owner.IsZero() {
			hull := g.hullMap.Get(owner)
			hull.Flames = append(hull.Flames, e)
		}
	}
	g.pending.effects = g.pending.effects[:0]

	g.removeKills()
}

// applyKills destroys wrecked ships and removes staged kills.
func (g *Game) applyKills() {
	for _, e := range g.pending.wrecks {
		g.destroyShip(e)
	}
	g.pending.wrecks = g.pending.wrecks[:0]

	g.removeKills()
}

func (g *Game) removeKills() {
	for _, e := range g.pending.kills {
		if g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
	}
	g.pending.kills = g.pending.kills[:0]
}

// liveShip reports whether e is a ship that has not been destroyed.
func (g *Game) liveShip(e ecs.Entity) bool {
	if e.IsZero() || !g.world.Alive(e) || !g.hullMap.HasAll(e) {
		return false
	}
	return !g.hullMap.Get(e).Destroyed
}
