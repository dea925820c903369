package game

import (
	"github.com/pthm-cable/dogfight/systems"
)

// updateProjectiles flies every bolt one tick and stages the spent ones.
func (g *Game) updateProjectiles() {
	query := g.boltFilter.Query()
	for query.Next() {
		body, proj, _ := query.Get()
		systems.Integrate(body, 0, 0, g.field, nil)
		proj.TicksLeft--
		if proj.TicksLeft <= 0 {
			g.pending.kills = append(g.pending.kills, query.Entity())
		}
	}
}

// updateEffects re-pins tracking effects to their parents, drifts the free
// ones and advances every animation. Effects whose parent is gone and
// one-shot effects past their last frame remove themselves.
func (g *Game) updateEffects() {
	dt := g.cfg.Derived.DT

	query := g.effectFilter.Query()
	for query.Next() {
		body, eff, spr := query.Get()

		if eff.Tracking() {
			if !g.world.Alive(eff.Parent) || !g.bodyMap.HasAll(eff.Parent) {
				g.pending.kills = append(g.pending.kills, query.Entity())
				continue
			}
			body.Center, body.Heading = systems.TrackPose(g.bodyMap.Get(eff.Parent), eff, body.Heading)
		} else {
			systems.Integrate(body, 0, 0, g.field, nil)
		}

		frame, alive := systems.AdvanceEffect(eff, dt)
		if !alive {
			g.pending.kills = append(g.pending.kills, query.Entity())
			continue
		}
		spr.Frame = frame
	}

	g.removeKills()
}
