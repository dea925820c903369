package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/input"
)

func TestDamageDestroysOnce(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	e := spawnAI(t, g, components.SideAllied, parked(400, 300, 0))
	hull, _ := g.Hull(e)

	want := []bool{false, false, true, false, false}
	for i, w := range want {
		if got := g.Damage(e); got != w {
			t.Errorf("Damage() call %d = %v, want %v", i, got, w)
		}
	}
	if hull.HitPoints != 0 || !hull.Destroyed {
		t.Errorf("hull = %d hp destroyed=%v, want 0 hp destroyed", hull.HitPoints, hull.Destroyed)
	}
	if len(g.pending.wrecks) != 1 {
		t.Fatalf("wrecks staged = %d, want 1", len(g.pending.wrecks))
	}

	g.Drain(nil)
	g.applyKills()
	if _, ok := g.Hull(e); ok {
		t.Error("wrecked ship still in the world")
	}
	kinds := eventKinds(g)
	if countKind(kinds, ShipDestroyed) != 1 || countKind(kinds, SoundExplosion) != 1 {
		t.Errorf("events = %v, want one destruction and one explosion", kinds)
	}
	if g.Count(Effects) != 1 {
		t.Errorf("effects = %d, want the explosion", g.Count(Effects))
	}
}

func TestEveryHitInATickCounts(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	center := r2.Vec{X: 700, Y: 350}
	e := spawnAI(t, g, components.SideHostile, parked(center.X, center.Y, 0))
	spr := g.spriteMap.Get(e)

	// Bolts drawn with the hull's own sheet overlap it wherever it is solid.
	placeBolt(g, components.SideAllied, center, spr.Sheet)
	placeBolt(g, components.SideAllied, center, spr.Sheet)
	// Friendly bolts pass through.
	friendly := placeBolt(g, components.SideHostile, center, spr.Sheet)

	g.resolveCollisions()

	hull, _ := g.Hull(e)
	if hull.HitPoints != 1 {
		t.Errorf("hit points = %d, want 1 after two hits", hull.HitPoints)
	}
	if len(g.pending.kills) != 2 {
		t.Errorf("bolts consumed = %d, want 2", len(g.pending.kills))
	}
	for _, k := range g.pending.kills {
		if k == friendly {
			t.Error("friendly bolt consumed")
		}
	}
	if got := windowSoFar(g).AlliedHits; got != 2 {
		t.Errorf("allied hits recorded = %d, want 2", got)
	}

	// One more through a full tick finishes it off.
	g.removeKills()
	placeBolt(g, components.SideAllied, center, spr.Sheet)
	g.Drain(nil)
	g.Step(0, input.Intent{})

	if g.Live(components.SideHostile) != 0 {
		t.Error("hostile ship survived its third hit")
	}
	if g.Count(AlliedProjectiles) != 0 {
		t.Errorf("allied bolts left = %d, want 0", g.Count(AlliedProjectiles))
	}
	if countKind(eventKinds(g), ShipDestroyed) != 1 {
		t.Error("expected one ShipDestroyed event")
	}
}

func TestOverkillInOneTick(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	center := r2.Vec{X: 700, Y: 350}
	e := spawnAI(t, g, components.SideHostile, parked(center.X, center.Y, 0))
	spr := g.spriteMap.Get(e)
	hull, _ := g.Hull(e)
	if hull.HitPoints != 3 {
		t.Fatalf("hit points = %d, want 3", hull.HitPoints)
	}

	for i := 0; i < 5; i++ {
		placeBolt(g, components.SideAllied, center, spr.Sheet)
	}
	g.resolveCollisions()

	hull, _ = g.Hull(e)
	if hull.HitPoints != 0 || !hull.Destroyed {
		t.Errorf("hull = %d hp destroyed=%v, want 0 hp destroyed", hull.HitPoints, hull.Destroyed)
	}
	if len(g.pending.kills) != 5 {
		t.Errorf("bolts consumed = %d, want all 5", len(g.pending.kills))
	}
	if len(g.pending.wrecks) != 1 {
		t.Errorf("wrecks staged = %d, want 1", len(g.pending.wrecks))
	}

	g.applyKills()
	if g.Live(components.SideHostile) != 0 {
		t.Error("hostile ship survived")
	}
	if g.Count(AlliedProjectiles) != 0 {
		t.Errorf("allied bolts left = %d, want 0", g.Count(AlliedProjectiles))
	}
	if got := countKind(eventKinds(g), ShipDestroyed); got != 1 {
		t.Errorf("ShipDestroyed events = %d, want 1", got)
	}
	w := windowSoFar(g)
	if w.AlliedHits != 5 || w.HostileLosses != 1 {
		t.Errorf("window hits/losses = %d/%d, want 5/1", w.AlliedHits, w.HostileLosses)
	}
}

func TestAIReacquiresWhenTargetDies(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	hunter := spawnAI(t, g, components.SideAllied, parked(300, 350, 0))
	a := spawnAI(t, g, components.SideHostile, parked(900, 200, 180))
	b := spawnAI(t, g, components.SideHostile, parked(900, 500, 180))

	g.Step(0, input.Intent{})
	pilot, _ := g.Pilot(hunter)
	first := pilot.AI.Target
	if first != a && first != b {
		t.Fatalf("target = %v, want one of the hostiles", first)
	}

	for i := 0; i < 3; i++ {
		g.Damage(first)
	}
	g.applyKills()

	g.Step(0, input.Intent{})
	pilot, _ = g.Pilot(hunter)
	second := pilot.AI.Target
	if second == first || (second != a && second != b) {
		t.Errorf("target after kill = %v, want the surviving hostile", second)
	}
	hull, ok := g.Hull(second)
	if !ok || hull.Side != components.SideHostile {
		t.Error("new target is not a live hostile ship")
	}
}

func TestAIHoldsFireWithoutEnemies(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	e := spawnAI(t, g, components.SideAllied, parked(300, 350, 0))

	for i := 0; i < 30; i++ {
		g.Step(0, input.Intent{})
	}
	pilot, _ := g.Pilot(e)
	if !pilot.AI.Target.IsZero() {
		t.Error("target acquired with no enemies on the field")
	}
	if g.Count(AlliedProjectiles) != 0 {
		t.Error("fired with no enemies on the field")
	}
	body, _ := g.Body(e)
	if body.Heading != 0 || body.Speed != 0 {
		t.Errorf("ship moved: heading %v speed %v", body.Heading, body.Speed)
	}
}

func TestPlayerCoupledCadence(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Spawns.Player.Enabled = true
	cfg.Weapons.RateOfFire = 2
	g := newTestGame(t, cfg)
	g.Drain(nil)

	clock := &SimClock{FPS: cfg.Screen.FPS}
	for i := 0; i < 60; i++ {
		g.Step(clock.Now(), input.Intent{FireHeld: true})
		clock.Advance()
	}

	// Coupled fires both guns together every half second: ticks 0 and 30.
	if got := g.Count(AlliedProjectiles); got != 4 {
		t.Errorf("bolts in flight = %d, want 4", got)
	}
	if got := countKind(eventKinds(g), SoundLaser); got != 2 {
		t.Errorf("laser sounds = %d, want one per salvo (2)", got)
	}
	if got := windowSoFar(g).AlliedShots; got != 4 {
		t.Errorf("shots recorded = %d, want 4", got)
	}
}

func TestPlayerFireModeToggle(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Spawns.Player.Enabled = true
	g := newTestGame(t, cfg)
	g.Drain(nil)

	e, _ := g.Player()
	arm, _ := g.Armament(e)
	if arm.ModeIndex != 1 {
		t.Fatalf("initial mode = %d, want 1", arm.ModeIndex)
	}

	g.Step(0, input.Intent{ToggleFireMode: true})
	if arm.ModeIndex != 0 || arm.SalvoIndex != 0 {
		t.Errorf("mode/salvo = %d/%d, want 0/0", arm.ModeIndex, arm.SalvoIndex)
	}
	if countKind(eventKinds(g), FireModeChanged) != 1 {
		t.Error("expected one FireModeChanged event")
	}

	// Toggling still works while paused.
	g.SetPaused(true)
	g.Step(0, input.Intent{ToggleFireMode: true})
	arm, _ = g.Armament(e)
	if arm.ModeIndex != 1 {
		t.Errorf("mode = %d after paused toggle, want 1", arm.ModeIndex)
	}
}

func TestBoltsExpireAfterRange(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	bolt := placeBolt(g, components.SideAllied, r2.Vec{X: 100, Y: 100}, g.kits[components.SideAllied].laser)

	for i := 0; i < 9; i++ {
		g.Step(0, input.Intent{})
	}
	if _, ok := g.Body(bolt); !ok {
		t.Fatal("bolt expired early")
	}
	g.Step(0, input.Intent{})
	if _, ok := g.Body(bolt); ok {
		t.Error("bolt outlived its range")
	}
}
