package game

import (
	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/systems"
)

// resolveCollisions matches each side's hulls against the other side's
// projectiles. Every hit consumes its projectile and costs the hull one hit
// point; several hits on one hull in a tick all count.
func (g *Game) resolveCollisions() {
	for s := range g.hullScratch {
		g.hullScratch[s] = g.hullScratch[s][:0]
		g.boltScratch[s] = g.boltScratch[s][:0]
	}

	ships := g.shipFilter.Query()
	for ships.Next() {
		body, hull, _, _, spr := ships.Get()
		if hull.Destroyed {
			continue
		}
		o := g.assets.Sheet(spr.Sheet).Orient(spr.Frame, body.Heading)
		g.hullScratch[hull.Side] = append(g.hullScratch[hull.Side], systems.Collider{
			E:    ships.Entity(),
			At:   o.TopLeft(body.Center),
			Mask: o.Mask,
		})
	}

	bolts := g.boltFilter.Query()
	for bolts.Next() {
		body, proj, spr := bolts.Get()
		if proj.TicksLeft <= 0 {
			continue // expired this tick, already staged
		}
		o := g.assets.Sheet(spr.Sheet).Orient(spr.Frame, body.Heading)
		g.boltScratch[proj.Side] = append(g.boltScratch[proj.Side], systems.Collider{
			E:    bolts.Entity(),
			At:   o.TopLeft(body.Center),
			Mask: o.Mask,
		})
	}

	for _, side := range []components.Side{components.SideAllied, components.SideHostile} {
		shooter := side.Opponent()
		hits := systems.ResolveHits(g.grid, g.hullScratch[side], g.boltScratch[shooter])
		for _, h := range hits {
			g.pending.kills = append(g.pending.kills, h.Projectile)
			g.collector.RecordHit(shooter)
			g.Damage(h.Hull)
		}
	}
}
