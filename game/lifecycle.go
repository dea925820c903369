package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/systems"
)

// ShipSpec is a request to put a ship on the field.
type ShipSpec struct {
	Side     components.Side
	Behavior components.Behavior
	Spawn    config.ShipSpawn

	// Template is the index of the spawn entry the ship came from, used to
	// respawn it. -1 marks ad-hoc ships, which never respawn.
	Template int
}

// respawnTimer brings a destroyed ship back after a delay.
type respawnTimer struct {
	side      components.Side
	behavior  components.Behavior
	template  int
	ticksLeft int
}

// spawnOpening creates the player and both squadrons.
func (g *Game) spawnOpening() error {
	if p := g.cfg.Spawns.Player; p.Enabled {
		if _, err := g.SpawnShip(ShipSpec{
			Side:     components.SideAllied,
			Behavior: components.BehaviorPlayer,
			Spawn:    p.ShipSpawn,
			Template: 0,
		}); err != nil {
			return fmt.Errorf("spawning player: %w", err)
		}
	}
	for side, spawns := range [2][]config.ShipSpawn{g.cfg.Spawns.Allied, g.cfg.Spawns.Hostile} {
		for i, s := range spawns {
			if _, err := g.SpawnShip(ShipSpec{
				Side:     components.Side(side),
				Behavior: components.BehaviorAI,
				Spawn:    s,
				Template: i,
			}); err != nil {
				return fmt.Errorf("spawning %s ship %d: %w", components.Side(side), i, err)
			}
		}
	}
	return nil
}

// SpawnShip validates spec and adds the ship, its markers and its weapons to
// the world. It must not be called while the game is stepping.
func (g *Game) SpawnShip(spec ShipSpec) (ecs.Entity, error) {
	if spec.Side != components.SideAllied && spec.Side != components.SideHostile {
		return ecs.Entity{}, fmt.Errorf("%w: unknown side %d", ErrSpawnRejected, spec.Side)
	}
	if err := spec.Spawn.Validate(); err != nil {
		return ecs.Entity{}, fmt.Errorf("%w: %w", ErrSpawnRejected, err)
	}
	if spec.Behavior == components.BehaviorPlayer {
		if spec.Side != components.SideAllied {
			return ecs.Entity{}, fmt.Errorf("%w: the player flies for the allied side", ErrSpawnRejected)
		}
		if _, ok := g.Player(); ok {
			return ecs.Entity{}, fmt.Errorf("%w: a player ship is already flying", ErrSpawnRejected)
		}
	}

	kit := &g.kits[spec.Side]
	if err := config.ValidateFireModes(kit.skin.FireModes, len(kit.guns)); err != nil {
		return ecs.Entity{}, fmt.Errorf("%w: %w", ErrSpawnRejected, err)
	}
	if m := kit.skin.InitialFireMode; m < 0 || m >= len(kit.skin.FireModes) {
		return ecs.Entity{}, fmt.Errorf("%w: %w: initial fire mode %d out of range [0, %d)",
			ErrSpawnRejected, config.ErrInvalid, m, len(kit.skin.FireModes))
	}
	s := spec.Spawn
	cfg := g.cfg

	callSign := s.CallSign
	if callSign == "" {
		callSign = g.nextCallSign(spec, kit.suffix)
	}

	body := components.Body{
		Center:  r2.Vec{X: s.Center[0], Y: s.Center[1]},
		Heading: systems.NormalizeDegrees(s.Heading),
		Speed:   cfg.PerTick(s.Speed),
		Motion: components.Motion{
			TurnRate: cfg.PerTick(s.TurnRate),
			Accel:    cfg.PerTick(s.Accel),
			MinSpeed: cfg.PerTick(s.MinSpeed),
			MaxSpeed: cfg.PerTick(s.MaxSpeed),
		},
	}
	body.HalfExtent = g.assets.Sheet(kit.ship).Orient(0, body.Heading).HalfExtent()

	hull := components.Hull{
		CallSign:     callSign,
		Side:         spec.Side,
		HitPoints:    kit.skin.HitPoints,
		MaxHitPoints: kit.skin.HitPoints,
		Spawn:        spec.Template,
	}
	arm := g.newArmament(kit)
	pilot := components.Pilot{
		Behavior: spec.Behavior,
		AI: components.AIState{
			PilotingConeSine: cfg.AI.PilotingConeSine,
			GunningConeSine:  cfg.AI.GunningConeSine,
			WrapAware:        cfg.AI.WrapAwareRadar,
		},
	}
	if cfg.AI.SpeedControl == config.SpeedControlMatch {
		pilot.AI.SpeedControl = components.SpeedMatch
	}
	spr := components.Sprite{Sheet: kit.ship}

	e := g.shipMapper.NewEntity(&body, &hull, &arm, &pilot, &spr)
	if spec.Behavior == components.BehaviorPlayer {
		g.player = e
	}
	g.attachMarkers(e, &body, &hull, spec.Behavior)

	g.collector.RecordSpawn(spec.Side)
	g.emit(ShipSpawned, spec.Side, callSign, body.Center)
	slog.Info("ship_spawned",
		"call_sign", callSign,
		"side", spec.Side.String(),
		"x", body.Center.X,
		"y", body.Center.Y,
		"tick", g.tick,
	)
	return e, nil
}

// nextCallSign numbers squadron ships by their spawn entry. Ad-hoc ships are
// numbered after the squadron, in the order they were added.
func (g *Game) nextCallSign(spec ShipSpec, suffix string) string {
	if spec.Template >= 0 {
		return fmt.Sprintf("%d%s", spec.Template+1, suffix)
	}
	squadron := g.cfg.Spawns.Allied
	if spec.Side == components.SideHostile {
		squadron = g.cfg.Spawns.Hostile
	}
	g.adHoc[spec.Side]++
	return fmt.Sprintf("%d%s", len(squadron)+g.adHoc[spec.Side], suffix)
}

// newArmament builds primed mounts for a side's skin.
func (g *Game) newArmament(kit *sideKit) components.Armament {
	w := g.cfg.Weapons
	mounts := make([]components.Mount, len(kit.guns))
	for i, off := range kit.guns {
		mounts[i] = components.Mount{
			Offset:     off,
			RateOfFire: w.RateOfFire,
			RangeTicks: g.cfg.Derived.RangeTicks,
			SpeedBonus: g.cfg.Derived.SpeedBonusPerTick,
		}
		systems.Prime(&mounts[i])
	}
	return components.Armament{
		Mounts:    mounts,
		Modes:     components.FireModes(kit.skin.FireModes),
		ModeIndex: kit.skin.InitialFireMode,
		Bolt:      kit.laser,
		Muzzle:    kit.muzzle,
	}
}

// attachMarkers pins the frame marker and call-sign label to a new ship.
func (g *Game) attachMarkers(e ecs.Entity, body *components.Body, hull *components.Hull, behavior components.Behavior) {
	m := g.cfg.Animations.Marker
	if !m.Enabled {
		return
	}
	sheet := g.kits[hull.Side].marker
	if behavior == components.BehaviorPlayer {
		sheet = g.assets.PlayerMarker
	}
	half := float64(m.Size) / 2

	frame := components.Body{Center: body.Center, HalfExtent: r2.Vec{X: half, Y: half}}
	marker := components.Effect{Kind: components.EffectMarker, Frames: 1, SecondsPerFrame: 1, Looping: true, Parent: e}
	g.effectMapper.NewEntity(&frame, &marker, &components.Sprite{Sheet: sheet})

	offset := r2.Vec{X: m.LabelOffset[0], Y: m.LabelOffset[1]}
	label := components.Body{Center: r2.Add(body.Center, offset)}
	text := components.Effect{Kind: components.EffectLabel, Frames: 1, SecondsPerFrame: 1, Looping: true, Parent: e, Offset: offset}
	g.effectMapper.NewEntity(&label, &text, &components.Sprite{Sheet: components.NoSheet, Label: hull.CallSign})
}

// Damage takes one hit point off a live ship. The hull never drops below
// zero and the ship is marked destroyed exactly once, on the hit that
// empties it; it reports whether this call did that.
func (g *Game) Damage(e ecs.Entity) bool {
	if !g.liveShip(e) {
		return false
	}
	hull := g.hullMap.Get(e)
	if hull.HitPoints > 0 {
		hull.HitPoints--
	}
	if hull.HitPoints > 0 {
		return false
	}
	hull.Destroyed = true
	g.pending.wrecks = append(g.pending.wrecks, e)
	return true
}

// destroyShip replaces a wrecked ship with a drifting explosion.
func (g *Game) destroyShip(e ecs.Entity) {
	if !g.world.Alive(e) || !g.hullMap.HasAll(e) {
		return
	}
	b, h, _, p, _ := g.shipMapper.Get(e)
	body, hull, behavior := *b, *h, p.Behavior

	for _, f := range hull.Flames {
		if g.world.Alive(f) {
			g.world.RemoveEntity(f)
		}
	}

	anim := g.cfg.Animations.Explosion
	half := float64(anim.Size) / 2
	wreck := components.Body{
		Center:     body.Center,
		Heading:    body.Heading,
		Speed:      body.Speed,
		HalfExtent: r2.Vec{X: half, Y: half},
	}
	blast := components.Effect{Kind: components.EffectExplosion, Frames: anim.Frames, SecondsPerFrame: anim.SecondsPerFrame}
	g.effectMapper.NewEntity(&wreck, &blast, &components.Sprite{Sheet: g.assets.Explosion})

	g.emit(SoundExplosion, hull.Side, hull.CallSign, body.Center)
	g.emit(ShipDestroyed, hull.Side, hull.CallSign, body.Center)
	g.collector.RecordLoss(hull.Side)
	slog.Info("ship_destroyed",
		"call_sign", hull.CallSign,
		"side", hull.Side.String(),
		"x", body.Center.X,
		"y", body.Center.Y,
		"tick", g.tick,
	)

	g.scheduleRespawn(&hull, behavior)
	if e == g.player {
		g.player = ecs.Entity{}
	}
	g.world.RemoveEntity(e)
}

func (g *Game) scheduleRespawn(hull *components.Hull, behavior components.Behavior) {
	rule := g.cfg.Respawn.Allied
	switch {
	case behavior == components.BehaviorPlayer:
		rule = g.cfg.Respawn.Player
	case hull.Side == components.SideHostile:
		rule = g.cfg.Respawn.Hostile
	}
	if !rule.Enabled || hull.Spawn < 0 {
		return
	}
	g.respawns = append(g.respawns, respawnTimer{
		side:      hull.Side,
		behavior:  behavior,
		template:  hull.Spawn,
		ticksLeft: int(math.Round(rule.DelaySeconds * float64(g.cfg.Screen.FPS))),
	})
}

// updateRespawns counts down respawn timers and spawns the ships that are due.
func (g *Game) updateRespawns() {
	kept := g.respawns[:0]
	var due []respawnTimer
	for _, r := range g.respawns {
		r.ticksLeft--
		if r.ticksLeft > 0 {
			kept = append(kept, r)
			continue
		}
		due = append(due, r)
	}
	g.respawns = kept

	for _, r := range due {
		spawn, ok := g.template(r)
		if !ok {
			continue
		}
		if _, err := g.SpawnShip(ShipSpec{Side: r.side, Behavior: r.behavior, Spawn: spawn, Template: r.template}); err != nil {
			slog.Warn("respawn failed", "side", r.side.String(), "template", r.template, "error", err)
			continue
		}
		g.collector.RecordRespawn(r.side)
	}
}

func (g *Game) template(r respawnTimer) (config.ShipSpawn, bool) {
	if r.behavior == components.BehaviorPlayer {
		return g.cfg.Spawns.Player.ShipSpawn, true
	}
	list := g.cfg.Spawns.Allied
	if r.side == components.SideHostile {
		list = g.cfg.Spawns.Hostile
	}
	if r.template < 0 || r.template >= len(list) {
		return config.ShipSpawn{}, false
	}
	return list[r.template], true
}

// togglePlayerFireMode cycles the player's fire mode.
func (g *Game) togglePlayerFireMode() {
	e, ok := g.Player()
	if !ok {
		return
	}
	body, hull, arm, _, _ := g.shipMapper.Get(e)
	systems.ToggleFireMode(arm)
	g.emit(FireModeChanged, hull.Side, hull.CallSign, body.Center)
	slog.Info("fire_mode_toggled", "call_sign", hull.CallSign, "mode", arm.ModeIndex)
}
