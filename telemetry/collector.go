// Package telemetry provides windowed combat stats, bookmarks of notable
// moments, tick timing and CSV output.
package telemetry

import (
	"github.com/pthm-cable/dogfight/components"
)

// Collector accumulates combat events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int

	// Event counters for current window, indexed by side
	shots    [2]int
	hits     [2]int // credited to the shooting side
	losses   [2]int
	spawns   [2]int
	respawns [2]int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int(windowDurationSec/dt + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordShots records n bolts fired by side.
func (c *Collector) RecordShots(side components.Side, n int) {
	c.shots[side] += n
}

// RecordHit records a bolt fired by side striking an enemy hull.
func (c *Collector) RecordHit(side components.Side) {
	c.hits[side]++
}

// RecordLoss records a ship of side being destroyed.
func (c *Collector) RecordLoss(side components.Side) {
	c.losses[side]++
}

// RecordSpawn records a ship of side entering the field.
func (c *Collector) RecordSpawn(side components.Side) {
	c.spawns[side]++
}

// RecordRespawn records a destroyed ship of side coming back.
func (c *Collector) RecordRespawn(side components.Side) {
	c.respawns[side]++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// live holds the ships alive per side at the window end; integrity holds
// the hull fraction left on each of them.
func (c *Collector) Flush(currentTick int, live [2]int, integrity []float64) WindowStats {
	a, h := components.SideAllied, components.SideHostile
	mean, lowest := ComputeIntegrityStats(integrity)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		AlliedShips:  live[a],
		HostileShips: live[h],

		AlliedShots:  c.shots[a],
		HostileShots: c.shots[h],
		AlliedHits:   c.hits[a],
		HostileHits:  c.hits[h],

		AlliedAccuracy:  ratio(c.hits[a], c.shots[a]),
		HostileAccuracy: ratio(c.hits[h], c.shots[h]),

		AlliedLosses:  c.losses[a],
		HostileLosses: c.losses[h],
		Spawns:        c.spawns[a] + c.spawns[h],
		Respawns:      c.respawns[a] + c.respawns[h],

		IntegrityMean: mean,
		IntegrityMin:  lowest,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.shots = [2]int{}
	c.hits = [2]int{}
	c.losses = [2]int{}
	c.spawns = [2]int{}
	c.respawns = [2]int{}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
