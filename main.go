package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/audio"
	"github.com/pthm-cable/dogfight/camera"
	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/game"
	"github.com/pthm-cable/dogfight/input"
	"github.com/pthm-cable/dogfight/inspector"
	"github.com/pthm-cable/dogfight/telemetry"
	"github.com/pthm-cable/dogfight/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFormat := flag.String("log-format", "json", "Log format: json or text")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	sound := flag.Bool("sound", false, "Start with sound on")

	flag.Parse()

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g, err := game.New(cfg, game.Options{
		Seed:     rngSeed,
		Output:   output,
		LogStats: *logStats,
		Sound:    *sound,
	})
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}

	player := audio.NewPlayer(cfg.Audio)
	defer player.Close()

	if *headless {
		runHeadless(g, player, *maxTicks, *sound)
		return
	}
	runWindowed(g, player, *maxTicks)
}

// runHeadless steps the game as fast as possible on simulated time. The
// player, if any, flies a looping patrol.
func runHeadless(g *game.Game, player *audio.Player, maxTicks int, sound bool) {
	cfg := g.Config()
	if sound {
		if err := player.Init(); err != nil {
			slog.Warn("audio unavailable", "error", err)
		}
	}

	slog.Info("starting headless run", "max_ticks", maxTicks)

	clock := &game.SimClock{FPS: cfg.Screen.FPS}
	src := patrolScript(cfg.Screen.FPS)
	logEvery := 10 * cfg.Screen.FPS

	start := time.Now()
	for maxTicks <= 0 || g.Tick() < maxTicks {
		g.Step(clock.Now(), src.Poll())
		g.Drain(player)
		clock.Advance()

		if g.Tick()%logEvery == 0 {
			g.LogWorldState()
			if g.Live(components.SideAllied) == 0 || g.Live(components.SideHostile) == 0 {
				if !cfg.Respawn.Allied.Enabled && !cfg.Respawn.Hostile.Enabled {
					slog.Info("side eliminated", "tick", g.Tick())
					break
				}
			}
		}
	}
	g.LogPerf()
	slog.Info("headless run finished", "tick", g.Tick(), "elapsed", time.Since(start).Round(time.Millisecond).String())
}

// patrolScript holds fire while weaving left and right.
func patrolScript(fps int) *input.Script {
	s := input.NewScript()
	s.Hold(input.Intent{TurnLeft: true, FireHeld: true, FirePressed: true}, fps)
	s.Hold(input.Intent{FireHeld: true}, fps/2)
	s.Hold(input.Intent{TurnRight: true, FireHeld: true}, fps)
	s.Hold(input.Intent{Accelerate: true}, fps/2)
	s.Loop = true
	return s
}

func runWindowed(g *game.Game, player *audio.Player, maxTicks int) {
	cfg := g.Config()
	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.InitWindow(screenW, screenH, cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.FPS))
	// Esc pauses instead of closing the window.
	rl.SetExitKey(0)

	if err := player.Init(); err != nil {
		slog.Warn("audio unavailable", "error", err)
	}

	scene := ui.NewScene()
	defer scene.Unload()
	hud := ui.NewHUD()
	overlays := ui.NewOverlayRegistry()
	controls := ui.NewControlsPanel(10, 140, 260)
	perfPanel := ui.NewPerfPanel(screenW-310, screenH-200)
	statsPanel := ui.NewStatsPanel(10, screenH-200, 260)
	pause := ui.NewPausePanel()
	ins := inspector.NewInspector(screenW, screenH)
	keyboard := ui.NewKeyboard()
	clock := game.NewWallClock()
	cam := camera.New(r2.Vec{X: float64(screenW), Y: float64(screenH)}, g.Field())

	for !rl.WindowShouldClose() {
		overlays.HandleKeys()
		if rl.IsKeyPressed(rl.KeyH) {
			controls.Toggle()
		}
		if overlays.IsEnabled(ui.OverlayInspector) {
			mouse := rl.GetMousePosition()
			ins.HandleInput(mouse.X, mouse.Y, cam, g)
		}

		g.Step(clock.Now(), keyboard.Poll())
		g.Drain(player)
		if e, ok := g.Player(); ok {
			body, _ := g.Body(e)
			cam.Follow(body.Center)
		}

		rl.BeginDrawing()
		scene.Draw(g, cam, overlays)
		if overlays.IsEnabled(ui.OverlayInspector) {
			ins.DrawSelectionHighlight(g, cam)
			ins.Draw(g)
		}

		data := hudData(g)
		hud.Draw(data)
		hud.DrawControlsHint(screenH)
		if controls.IsVisible() {
			controls.Draw(overlays)
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perfPanel.Draw(g.Perf().Stats(), g.Registry())
		}
		if overlays.IsEnabled(ui.OverlayStats) {
			statsPanel.Draw(g.LastStats())
		}
		if g.Paused() {
			keyboard.Extra = pause.Draw(screenW, screenH, ui.PauseState{
				Sound:     data.Sound,
				FireMode:  data.FireMode,
				FireModes: data.FireModes,
				HasPlayer: data.PlayerAlive,
			})
		}
		rl.EndDrawing()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

func hudData(g *game.Game) ui.HUDData {
	cfg := g.Config()
	data := ui.HUDData{
		Title:   cfg.Screen.Title,
		Tick:    g.Tick(),
		FPS:     rl.GetFPS(),
		Allied:  g.Live(components.SideAllied),
		Hostile: g.Live(components.SideHostile),
		Sound:   g.SoundOn(),
		Paused:  g.Paused(),
	}
	e, ok := g.Player()
	if !ok {
		return data
	}
	hull, _ := g.Hull(e)
	arm, _ := g.Armament(e)
	body, _ := g.Body(e)
	data.PlayerAlive = true
	data.CallSign = hull.CallSign
	data.HitPoints, data.MaxHP = hull.HitPoints, hull.MaxHitPoints
	data.FireMode, data.FireModes = arm.ModeIndex, len(arm.Modes)
	data.SpeedPxSec = body.Speed * float64(cfg.Screen.FPS)
	return data
}
