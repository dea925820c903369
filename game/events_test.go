package game

import (
	"testing"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/input"
)

func TestDrainDeliversInOrderAndClears(t *testing.T) {
	g := newTestGame(t, emptyConfig(t))
	a := spawnAI(t, g, components.SideAllied, parked(100, 100, 0))
	spawnAI(t, g, components.SideHostile, parked(900, 600, 0))
	for i := 0; i < 3; i++ {
		g.Damage(a)
	}
	g.applyKills()

	var got []Event
	g.Drain(EventSinkFunc(func(e Event) { got = append(got, e) }))
	want := []EventKind{ShipSpawned, ShipSpawned, SoundExplosion, ShipDestroyed}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Kind != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.Kind, want[i])
		}
	}
	if got[3].CallSign != "1A" || got[3].Side != components.SideAllied {
		t.Errorf("destruction event = %+v", got[3])
	}

	var again int
	g.Drain(EventSinkFunc(func(Event) { again++ }))
	if again != 0 {
		t.Errorf("second drain delivered %d events, want 0", again)
	}
}

func TestSoundEventsCarryToggleState(t *testing.T) {
	tests := []struct {
		name    string
		soundOn bool
		toggle  bool
		audible bool
	}{
		{"on", true, false, true},
		{"off", false, false, false},
		{"switched on", false, true, true},
		{"switched off", true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := emptyConfig(t)
			cfg.Spawns.Player.Enabled = true
			g, err := New(cfg, Options{Seed: 1, Sound: tt.soundOn})
			if err != nil {
				t.Fatal(err)
			}
			g.Drain(nil)

			g.Step(0, input.Intent{FireHeld: true, ToggleSound: tt.toggle})

			var lasers int
			g.Drain(EventSinkFunc(func(e Event) {
				if e.Kind != SoundLaser {
					return
				}
				lasers++
				if e.Audible != tt.audible {
					t.Errorf("Audible = %v, want %v", e.Audible, tt.audible)
				}
			}))
			if lasers != 1 {
				t.Errorf("laser events = %d, want 1", lasers)
			}
			if g.SoundOn() != tt.audible {
				t.Errorf("SoundOn() = %v, want %v", g.SoundOn(), tt.audible)
			}
		})
	}
}

func TestRespawnAfterDelay(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Spawns.Hostile = []config.ShipSpawn{parked(700, 350, 0)}
	cfg.Respawn.Hostile = config.SideRespawn{Enabled: true, DelaySeconds: 0.5}
	g := newTestGame(t, cfg)

	ships := g.Members(HostileHulls)
	if len(ships) != 1 {
		t.Fatalf("hostile ships = %d, want 1", len(ships))
	}
	for i := 0; i < 3; i++ {
		g.Damage(ships[0])
	}
	g.applyKills()
	g.Drain(nil)

	for i := 0; i < 29; i++ {
		g.Step(0, input.Intent{})
	}
	if g.Live(components.SideHostile) != 0 {
		t.Fatal("ship came back before its delay")
	}
	g.Step(0, input.Intent{})
	if g.Live(components.SideHostile) != 1 {
		t.Fatal("ship did not come back after its delay")
	}

	back := g.Members(HostileHulls)[0]
	hull, _ := g.Hull(back)
	if hull.CallSign != "1H" || hull.HitPoints != hull.MaxHitPoints || hull.Spawn != 0 {
		t.Errorf("respawned hull = %+v", hull)
	}
	if countKind(eventKinds(g), ShipSpawned) != 1 {
		t.Error("expected one ShipSpawned event")
	}
	if windowSoFar(g).Respawns != 1 {
		t.Error("respawn not recorded")
	}
}

func TestNoRespawnForAdHocShips(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.Respawn.Allied = config.SideRespawn{Enabled: true, DelaySeconds: 0}
	g := newTestGame(t, cfg)
	e := spawnAI(t, g, components.SideAllied, parked(100, 100, 0))
	for i := 0; i < 3; i++ {
		g.Damage(e)
	}
	g.applyKills()

	for i := 0; i < 5; i++ {
		g.Step(0, input.Intent{})
	}
	if g.Live(components.SideAllied) != 0 {
		t.Error("ad-hoc ship respawned")
	}
}

func TestSimClockTicks(t *testing.T) {
	c := &SimClock{FPS: 60}
	for i := 0; i < 30; i++ {
		c.Advance()
	}
	if c.Now().Milliseconds() != 500 {
		t.Errorf("Now() after 30 ticks = %v, want 500ms", c.Now())
	}
}
