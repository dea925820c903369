package game

import (
	"log/slog"

	"github.com/pthm-cable/dogfight/components"
)

// flushTelemetry closes the stats window when it is due and hands the
// result to the log, the CSV output and the bookmark detector.
func (g *Game) flushTelemetry() {
	if g.cfg.Telemetry.StatsWindow <= 0 || !g.collector.ShouldFlush(g.tick) {
		return
	}

	live, integrity := g.sampleFleet()
	stats := g.collector.Flush(g.tick, live, integrity)
	perfStats := g.perf.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.output != nil {
			if err := g.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sampleFleet counts live ships per side and collects each one's remaining
// hull fraction.
func (g *Game) sampleFleet() (live [2]int, integrity []float64) {
	query := g.shipFilter.Query()
	for query.Next() {
		_, hull, _, _, _ := query.Get()
		if hull.Destroyed {
			continue
		}
		live[hull.Side]++
		if hull.MaxHitPoints > 0 {
			integrity = append(integrity, float64(hull.HitPoints)/float64(hull.MaxHitPoints))
		}
	}
	return live, integrity
}

// Live returns the number of live ships of a side.
func (g *Game) Live(side components.Side) int {
	live, _ := g.sampleFleet()
	return live[side]
}
