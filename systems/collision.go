package systems

import (
	"image"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dogfight/sprite"
)

// Collider is an entity's oriented mask placed on the field.
type Collider struct {
	E    ecs.Entity
	At   image.Point // top-left corner of the mask
	Mask *sprite.Mask
}

// Rect returns the collider's bounding rectangle.
func (c Collider) Rect() image.Rectangle {
	return image.Rect(c.At.X, c.At.Y, c.At.X+c.Mask.W, c.At.Y+c.Mask.H)
}

// Hit is one projectile striking one hull.
type Hit struct {
	Hull       ecs.Entity
	Projectile ecs.Entity
}

// ResolveHits finds every hull/projectile pair whose masks overlap. Each
// projectile is consumed by at most one hull; a hull can take any number of
// hits. Candidates are checked in projectile order, so the result does not
// depend on how the grid buckets them.
func ResolveHits(grid *SpatialGrid, hulls, projectiles []Collider) []Hit {
	if len(hulls) == 0 || len(projectiles) == 0 {
		return nil
	}

	grid.Clear()
	for i, p := range projectiles {
		grid.Insert(i, p.Rect())
	}

	consumed := make([]bool, len(projectiles))
	var hits []Hit
	var candidates []int
	for _, h := range hulls {
		hr := h.Rect()
		candidates = grid.QueryRectInto(candidates[:0], hr)
		slices.Sort(candidates)
		for _, i := range candidates {
			if consumed[i] {
				continue
			}
			p := projectiles[i]
			if !hr.Overlaps(p.Rect()) {
				continue
			}
			if sprite.Overlap(h.Mask, h.At, p.Mask, p.At) {
				consumed[i] = true
				hits = append(hits, Hit{Hull: h.E, Projectile: p.E})
			}
		}
	}
	return hits
}
