package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dogfight/systems"
	"github.com/pthm-cable/dogfight/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Tick    int
	FPS     int32
	Allied  int
	Hostile int
	Sound   bool
	Paused  bool

	// Player ship, when one is flying
	PlayerAlive bool
	CallSign    string
	HitPoints   int
	MaxHP       int
	FireMode    int
	FireModes   int
	SpeedPxSec  float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(fmt.Sprintf("Allied: %d", data.Allied), 10, 35, 16, r.Theme.Allied)
	rl.DrawText(fmt.Sprintf("Hostile: %d", data.Hostile), 110, 35, 16, r.Theme.Hostile)

	sound := "off"
	if data.Sound {
		sound = "on"
	}
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Sound: %s", data.Tick, data.FPS, sound),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}

	if !data.PlayerAlive {
		rl.DrawText("Player down", 10, 95, 16, r.Theme.Hostile)
		return
	}
	y := r.DrawHullBar(10, 95, data.HitPoints, data.MaxHP, 220)
	y = r.DrawLabelValue(10, y, "Mode", fmt.Sprintf("%d/%d", data.FireMode+1, data.FireModes))
	r.DrawLabelValue(10, y, "Speed", fmt.Sprintf("%.0f px/s", data.SpeedPxSec))
}

// DrawControlsHint renders the one-line key legend at the bottom.
func (h *HUD) DrawControlsHint(screenHeight int32) {
	rl.DrawText("[H] controls  [Esc] pause", 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// Draw renders the panel for the collector's current window. Phases are
// listed in execution order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	r := p.renderer
	ids := registry.IDs()
	height := int32(len(ids)+3)*14 + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, 300, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 18

	for _, id := range ids {
		avg := stats.PhaseAvg[id]
		pct := stats.PhasePct[id]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// StatsPanel renders the last telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new combat stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel and returns the Y below it.
func (s *StatsPanel) Draw(w telemetry.WindowStats) int32 {
	r := s.renderer
	lh := r.Theme.LineHeight
	r.DrawPanel(s.x, s.y, s.width, lh*9+r.Theme.Padding*2)

	x := s.x + r.Theme.Padding
	y := s.y + r.Theme.Padding
	rl.DrawText("Combat Window", x, y, 14, rl.White)
	y += lh + 2

	if w.WindowEndTick == 0 {
		r.DrawLabelValue(x, y, "Window", "collecting")
		return y + lh
	}
	inner := s.width - r.Theme.Padding*2
	y = r.DrawLabelValue(x, y, "Ends", fmt.Sprintf("tick %d (%.0fs)", w.WindowEndTick, w.SimTimeSec))
	y = r.DrawLabelValue(x, y, "Shots", fmt.Sprintf("%d / %d", w.AlliedShots, w.HostileShots))
	y = r.DrawLabelValue(x, y, "Hits", fmt.Sprintf("%d / %d", w.AlliedHits, w.HostileHits))
	y = r.DrawBar(x, y, "Acc A", float32(w.AlliedAccuracy), fmt.Sprintf("%.0f%%", w.AlliedAccuracy*100), inner, r.Theme.Allied)
	y = r.DrawBar(x, y, "Acc H", float32(w.HostileAccuracy), fmt.Sprintf("%.0f%%", w.HostileAccuracy*100), inner, r.Theme.Hostile)
	y = r.DrawLabelValue(x, y, "Losses", fmt.Sprintf("%d / %d", w.AlliedLosses, w.HostileLosses))
	y = r.DrawBar(x, y, "Hulls", float32(w.IntegrityMean), fmt.Sprintf("min %.2f", w.IntegrityMin), inner, r.Theme.BarFill)
	return y
}
