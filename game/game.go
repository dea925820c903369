// Package game runs the dogfight: it owns the entity world, spawns ships,
// advances one tick at a time and exposes snapshots for renderers.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/input"
	"github.com/pthm-cable/dogfight/systems"
	"github.com/pthm-cable/dogfight/telemetry"
)

// ErrSpawnRejected wraps every reason a spawn request is refused.
var ErrSpawnRejected = errors.New("spawn rejected")

// Options configures a game beyond what the config file holds.
type Options struct {
	Seed int64

	// Output receives telemetry rows; nil disables CSV output.
	Output *telemetry.OutputManager

	// LogStats logs every telemetry window.
	LogStats bool

	// Sound is the initial state of the sound toggle.
	Sound bool

	// StatsCallback is called with each flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// sideKit is everything needed to arm and draw a ship of one side.
type sideKit struct {
	skin      config.SkinConfig
	ship      uint16
	laser     uint16
	muzzle    uint16
	muzzleCfg config.AnimationConfig
	marker    uint16
	suffix    string

	// Attachment points scaled by the skin's size factor.
	guns    []r2.Vec
	engines []r2.Vec
}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	world  *ecs.World
	rng    *rand.Rand
	assets *Assets

	// Entity mappers by archetype
	shipMapper   *ecs.Map5[components.Body, components.Hull, components.Armament, components.Pilot, components.Sprite]
	boltMapper   *ecs.Map3[components.Body, components.Projectile, components.Sprite]
	effectMapper *ecs.Map3[components.Body, components.Effect, components.Sprite]

	shipFilter   *ecs.Filter5[components.Body, components.Hull, components.Armament, components.Pilot, components.Sprite]
	boltFilter   *ecs.Filter3[components.Body, components.Projectile, components.Sprite]
	effectFilter *ecs.Filter3[components.Body, components.Effect, components.Sprite]

	// Individual component mappers for lookups
	bodyMap   *ecs.Map1[components.Body]
	hullMap   *ecs.Map1[components.Hull]
	armMap    *ecs.Map1[components.Armament]
	pilotMap  *ecs.Map1[components.Pilot]
	spriteMap *ecs.Map1[components.Sprite]

	kits  [2]sideKit
	field r2.Vec
	grid  *systems.SpatialGrid

	pending  pending
	events   []Event
	respawns []respawnTimer

	// Per-tick scratch
	candidates  [2][]ecs.Entity // live ships by side, the AI target pools
	shipScratch []ecs.Entity
	hullScratch [2][]systems.Collider
	boltScratch [2][]systems.Collider

	player ecs.Entity
	adHoc  [2]int // ad-hoc ships added per side

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats

	registry *systems.SystemRegistry

	// State
	tick    int
	paused  bool
	soundOn bool
}

// New creates a game from cfg and spawns the configured opening layout.
func New(cfg *config.Config, opts Options) (*Game, error) {
	assets, err := NewAssets(cfg)
	if err != nil {
		return nil, fmt.Errorf("building assets: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:    cfg,
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		assets: assets,

		shipMapper:   ecs.NewMap5[components.Body, components.Hull, components.Armament, components.Pilot, components.Sprite](world),
		boltMapper:   ecs.NewMap3[components.Body, components.Projectile, components.Sprite](world),
		effectMapper: ecs.NewMap3[components.Body, components.Effect, components.Sprite](world),
		shipFilter:   ecs.NewFilter5[components.Body, components.Hull, components.Armament, components.Pilot, components.Sprite](world),
		boltFilter:   ecs.NewFilter3[components.Body, components.Projectile, components.Sprite](world),
		effectFilter: ecs.NewFilter3[components.Body, components.Effect, components.Sprite](world),

		bodyMap:   ecs.NewMap1[components.Body](world),
		hullMap:   ecs.NewMap1[components.Hull](world),
		armMap:    ecs.NewMap1[components.Armament](world),
		pilotMap:  ecs.NewMap1[components.Pilot](world),
		spriteMap: ecs.NewMap1[components.Sprite](world),

		field: r2.Vec{X: cfg.Derived.FieldW, Y: cfg.Derived.FieldH},
		grid:  systems.NewSpatialGrid(cfg.Derived.FieldW, cfg.Derived.FieldH, cfg.Collision.CellSize),

		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT),
		perf:          telemetry.NewPerfCollector(cfg.Screen.FPS),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		output:        opts.Output,
		logStats:      opts.LogStats || cfg.Telemetry.LogStats,
		statsCallback: opts.StatsCallback,

		registry: systems.NewSystemRegistry(),
		soundOn:  opts.Sound,
	}

	for side, sc := range map[components.Side]config.SideConfig{
		components.SideAllied:  cfg.Sides.Allied,
		components.SideHostile: cfg.Sides.Hostile,
	} {
		kit, err := g.buildKit(side, sc)
		if err != nil {
			return nil, err
		}
		g.kits[side] = kit
	}

	if err := g.spawnOpening(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) buildKit(side components.Side, sc config.SideConfig) (sideKit, error) {
	ship, ok := g.assets.Ship(sc.Ship)
	if !ok {
		return sideKit{}, fmt.Errorf("%s side: unknown ship skin %q", side, sc.Ship)
	}
	bolt, muzzle, ok := g.assets.Laser(sc.Laser)
	if !ok {
		return sideKit{}, fmt.Errorf("%s side: unknown laser %q", side, sc.Laser)
	}
	marker := g.assets.AlliedMarker
	if side == components.SideHostile {
		marker = g.assets.HostileMarker
	}
	skin := g.cfg.Skins[sc.Ship]
	return sideKit{
		skin:      skin,
		ship:      ship,
		laser:     bolt,
		muzzle:    muzzle,
		muzzleCfg: g.cfg.Lasers[sc.Laser].Muzzle,
		marker:    marker,
		suffix:    sc.Suffix,
		guns:      scaleOffsets(skin.GunOffsets, skin.SizeFactor),
		engines:   scaleOffsets(skin.EngineOffsets, skin.SizeFactor),
	}, nil
}

func scaleOffsets(offsets [][2]float64, factor float64) []r2.Vec {
	out := make([]r2.Vec, len(offsets))
	for i, o := range offsets {
		out[i] = r2.Scale(factor, r2.Vec{X: o[0], Y: o[1]})
	}
	return out
}

// Step advances the game by one tick. now is the clock reading weapons
// measure cooldowns against; in is the player's controls for this tick.
func (g *Game) Step(now time.Duration, in input.Intent) {
	g.applyToggles(in)
	if g.paused {
		return
	}

	g.perf.StartTick()

	g.perf.StartPhase(systems.PhaseShips)
	g.updateShips(now, in)

	g.perf.StartPhase(systems.PhaseSpawns)
	g.applySpawns()

	g.perf.StartPhase(systems.PhaseProjectiles)
	g.updateProjectiles()

	g.perf.StartPhase(systems.PhaseCollision)
	g.resolveCollisions()

	g.perf.StartPhase(systems.PhaseKills)
	g.applyKills()

	g.perf.StartPhase(systems.PhaseEffects)
	g.updateEffects()

	g.perf.StartPhase(systems.PhaseRespawn)
	g.updateRespawns()

	g.tick++

	g.perf.StartPhase(systems.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
}

func (g *Game) applyToggles(in input.Intent) {
	if in.TogglePause {
		g.paused = !g.paused
		slog.Info("pause_toggled", "paused", g.paused, "tick", g.tick)
	}
	if in.ToggleSound {
		g.soundOn = !g.soundOn
		slog.Info("sound_toggled", "sound", g.soundOn)
	}
	if in.ToggleFireMode {
		g.togglePlayerFireMode()
	}
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Assets returns the frame sheets renderers draw from.
func (g *Game) Assets() *Assets { return g.assets }

// Tick returns the number of simulated ticks.
func (g *Game) Tick() int { return g.tick }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// SoundOn reports whether sound is switched on.
func (g *Game) SoundOn() bool { return g.soundOn }

// Field returns the playfield size.
func (g *Game) Field() r2.Vec { return g.field }

// Registry returns the tick phase registry.
func (g *Game) Registry() *systems.SystemRegistry { return g.registry }

// Perf returns the per-phase timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// Player returns the player's ship, if it is alive.
func (g *Game) Player() (ecs.Entity, bool) {
	if g.player.IsZero() || !g.world.Alive(g.player) || !g.hullMap.HasAll(g.player) {
		return ecs.Entity{}, false
	}
	return g.player, true
}

// Body returns the body of a live entity.
func (g *Game) Body(e ecs.Entity) (*components.Body, bool) {
	if e.IsZero() || !g.world.Alive(e) || !g.bodyMap.HasAll(e) {
		return nil, false
	}
	return g.bodyMap.Get(e), true
}

// Hull returns the hull of a live ship.
func (g *Game) Hull(e ecs.Entity) (*components.Hull, bool) {
	if e.IsZero() || !g.world.Alive(e) || !g.hullMap.HasAll(e) {
		return nil, false
	}
	return g.hullMap.Get(e), true
}

// Armament returns the weapons of a live ship.
func (g *Game) Armament(e ecs.Entity) (*components.Armament, bool) {
	if e.IsZero() || !g.world.Alive(e) || !g.armMap.HasAll(e) {
		return nil, false
	}
	return g.armMap.Get(e), true
}

// Pilot returns the pilot of a live ship.
func (g *Game) Pilot(e ecs.Entity) (*components.Pilot, bool) {
	if e.IsZero() || !g.world.Alive(e) || !g.pilotMap.HasAll(e) {
		return nil, false
	}
	return g.pilotMap.Get(e), true
}
