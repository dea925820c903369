package game

import (
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

// Group names a membership set of entities.
type Group uint8

const (
	AlliedHulls Group = iota
	HostileHulls
	AlliedProjectiles
	HostileProjectiles
	Effects // muzzle flashes, engine flames, explosions
	Markers // frames and call-sign labels
)

// Members returns a snapshot of the entities in group.
func (g *Game) Members(group Group) []ecs.Entity {
	var out []ecs.Entity
	switch group {
	case AlliedHulls, HostileHulls:
		side := components.SideAllied
		if group == HostileHulls {
			side = components.SideHostile
		}
		query := g.shipFilter.Query()
		for query.Next() {
			_, hull, _, _, _ := query.Get()
			if hull.Side == side && !hull.Destroyed {
				out = append(out, query.Entity())
			}
		}
	case AlliedProjectiles, HostileProjectiles:
		side := components.SideAllied
		if group == HostileProjectiles {
			side = components.SideHostile
		}
		query := g.boltFilter.Query()
		for query.Next() {
			_, proj, _ := query.Get()
			if proj.Side == side {
				out = append(out, query.Entity())
			}
		}
	case Effects, Markers:
		query := g.effectFilter.Query()
		for query.Next() {
			_, eff, _ := query.Get()
			marker := eff.Kind == components.EffectMarker || eff.Kind == components.EffectLabel
			if marker == (group == Markers) {
				out = append(out, query.Entity())
			}
		}
	}
	return out
}

// Count returns the number of entities in group.
func (g *Game) Count(group Group) int {
	return len(g.Members(group))
}

// Layer orders drawables back to front.
type Layer uint8

const (
	LayerProjectile Layer = iota
	LayerShip
	LayerEffect
	LayerMarker
	LayerLabel
)

// Drawable is one entity as a renderer sees it.
type Drawable struct {
	Entity  ecs.Entity
	Layer   Layer
	Sheet   uint16 // NoSheet for text-only drawables
	Frame   int
	Center  r2.Vec
	Heading float64 // 0 for overlays that do not rotate
	Label   string
	Side    components.Side
}

// Drawables appends every visible entity to dst in draw order.
func (g *Game) Drawables(dst []Drawable) []Drawable {
	dst = dst[:0]

	bolts := g.boltFilter.Query()
	for bolts.Next() {
		body, proj, spr := bolts.Get()
		dst = append(dst, Drawable{
			Entity: bolts.Entity(), Layer: LayerProjectile, Sheet: spr.Sheet, Frame: spr.Frame,
			Center: body.Center, Heading: body.Heading, Side: proj.Side,
		})
	}

	ships := g.shipFilter.Query()
	for ships.Next() {
		body, hull, _, _, spr := ships.Get()
		dst = append(dst, Drawable{
			Entity: ships.Entity(), Layer: LayerShip, Sheet: spr.Sheet, Frame: spr.Frame,
			Center: body.Center, Heading: body.Heading, Label: hull.CallSign, Side: hull.Side,
		})
	}

	effects := g.effectFilter.Query()
	for effects.Next() {
		body, eff, spr := effects.Get()
		d := Drawable{
			Entity: effects.Entity(), Layer: LayerEffect, Sheet: spr.Sheet, Frame: spr.Frame,
			Center: body.Center, Heading: body.Heading, Label: spr.Label,
		}
		switch eff.Kind {
		case components.EffectMarker:
			d.Layer, d.Heading = LayerMarker, 0
		case components.EffectLabel:
			d.Layer, d.Heading = LayerLabel, 0
		}
		dst = append(dst, d)
	}

	sort.SliceStable(dst, func(i, j int) bool { return dst[i].Layer < dst[j].Layer })
	return dst
}
