package game

import (
	"log/slog"
	"sort"
	"time"

	"github.com/pthm-cable/dogfight/components"
)

// LogPerf logs the average time of each tick phase, slowest first.
func (g *Game) LogPerf() {
	stats := g.perf.Stats()
	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})

	attrs := []any{
		"tick", g.tick,
		"avg_tick", stats.AvgTickDuration.Round(time.Microsecond).String(),
	}
	for _, name := range names {
		attrs = append(attrs, g.registry.GetName(name), stats.PhaseAvg[name].Round(time.Microsecond).String())
	}
	slog.Info("perf", attrs...)
}

// LogWorldState logs ship counts and the player's condition.
func (g *Game) LogWorldState() {
	live, _ := g.sampleFleet()
	attrs := []any{
		"tick", g.tick,
		"allied", live[components.SideAllied],
		"hostile", live[components.SideHostile],
		"projectiles", g.Count(AlliedProjectiles) + g.Count(HostileProjectiles),
		"effects", g.Count(Effects),
	}
	if e, ok := g.Player(); ok {
		hull := g.hullMap.Get(e)
		arm := g.armMap.Get(e)
		attrs = append(attrs, "player_hp", hull.HitPoints, "fire_mode", arm.ModeIndex)
	}
	slog.Info("world", attrs...)
}
