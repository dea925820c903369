package systems

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

// tickTime is the simulation clock reading at a tick for a 60 fps run.
func tickTime(tick int) time.Duration {
	return time.Duration(tick) * time.Second / 60
}

func newArmament(rate float64, mounts int, modes components.FireModes, mode int) *components.Armament {
	a := &components.Armament{Modes: modes, ModeIndex: mode}
	for i := 0; i < mounts; i++ {
		m := components.Mount{Offset: r2.Vec{X: 10, Y: float64(i*10 - 5)}, RateOfFire: rate, RangeTicks: 72}
		Prime(&m)
		a.Mounts = append(a.Mounts, m)
	}
	return a
}

// fireOver runs TryFire on every tick in [0, ticks) and returns the tick and
// mount count of each salvo.
func fireOver(a *components.Armament, ticks int) (shots int, salvoTicks []int) {
	for tick := 0; tick < ticks; tick++ {
		if fired, ok := TryFire(a, tickTime(tick)); ok {
			shots += len(fired)
			salvoTicks = append(salvoTicks, tick)
		}
	}
	return shots, salvoTicks
}

func TestPrime_ReadyAtZero(t *testing.T) {
	m := components.Mount{RateOfFire: 1.5}
	Prime(&m)
	if !Ready(&m, 0) {
		t.Error("primed mount not ready at time zero")
	}
}

func TestTryFire_CoupledCadence(t *testing.T) {
	// Two mounts firing together at 2 shots/s: salvos at 0 and 0.5s.
	a := newArmament(2, 2, components.FireModes{{{0, 1}}}, 0)
	shots, salvos := fireOver(a, 60)
	if shots != 4 {
		t.Errorf("shots = %d, want 4", shots)
	}
	if len(salvos) != 2 || salvos[0] != 0 || salvos[1] != 30 {
		t.Errorf("salvo ticks = %v, want [0 30]", salvos)
	}
}

func TestTryFire_AlternatingSpacing(t *testing.T) {
	// Alternating mounts at 2 shots/s each: one shot every 250ms.
	a := newArmament(2, 2, components.FireModes{{{0}, {1}}}, 0)
	shots, salvos := fireOver(a, 60)
	if shots != 4 {
		t.Errorf("shots = %d, want 4", shots)
	}
	want := []int{0, 15, 30, 45}
	if len(salvos) != len(want) {
		t.Fatalf("salvo ticks = %v, want %v", salvos, want)
	}
	for i := range want {
		if salvos[i] != want[i] {
			t.Fatalf("salvo ticks = %v, want %v", salvos, want)
		}
	}
}

func TestTryFire_PerMountCadence(t *testing.T) {
	a := newArmament(1.5, 4, components.FireModes{{{0, 1}, {2, 3}}}, 0)
	last := make([]time.Duration, 4)
	for i := range last {
		last[i] = -time.Hour
	}
	period := Period(&a.Mounts[0])
	for tick := 0; tick < 600; tick++ {
		now := tickTime(tick)
		fired, ok := TryFire(a, now)
		if !ok {
			continue
		}
		for _, i := range fired {
			if now-last[i] < period {
				t.Fatalf("mount %d fired %v after its last shot, period %v", i, now-last[i], period)
			}
			last[i] = now
		}
	}
}

func TestTryFire_PartialSalvoNeverFires(t *testing.T) {
	a := newArmament(1, 2, components.FireModes{{{0, 1}}}, 0)
	now := 5 * time.Second
	a.Mounts[1].LastShot = now - 100*time.Millisecond

	if _, ok := TryFire(a, now); ok {
		t.Fatal("salvo fired with one mount still cooling down")
	}
	if a.Mounts[0].LastShot != -time.Second {
		t.Errorf("ready mount was stamped by a salvo that did not fire: %v", a.Mounts[0].LastShot)
	}
	if a.SalvoIndex != 0 {
		t.Errorf("SalvoIndex = %d, want 0", a.SalvoIndex)
	}
}

func TestToggleFireMode_KeepsCooldowns(t *testing.T) {
	a := newArmament(1.5, 2, components.FireModes{{{0}, {1}}, {{0, 1}}}, 0)
	TryFire(a, 0)
	before := []time.Duration{a.Mounts[0].LastShot, a.Mounts[1].LastShot}

	ToggleFireMode(a)
	if a.ModeIndex != 1 || a.SalvoIndex != 0 {
		t.Errorf("mode/salvo = %d/%d, want 1/0", a.ModeIndex, a.SalvoIndex)
	}
	for i := range before {
		if a.Mounts[i].LastShot != before[i] {
			t.Errorf("mount %d cooldown changed on toggle", i)
		}
	}

	ToggleFireMode(a)
	if a.ModeIndex != 0 {
		t.Errorf("ModeIndex = %d, want wrap to 0", a.ModeIndex)
	}
}

func TestNextSalvo(t *testing.T) {
	a := newArmament(1, 4, components.FireModes{{{0, 1}, {2, 3}}}, 0)
	if got := NextSalvo(a); len(got) != 2 || got[0] != 0 {
		t.Errorf("NextSalvo = %v, want [0 1]", got)
	}
	FireSalvo(a, 0)
	if got := NextSalvo(a); len(got) != 2 || got[0] != 2 {
		t.Errorf("NextSalvo = %v, want [2 3]", got)
	}
}

func TestMuzzlePose(t *testing.T) {
	b := &components.Body{Center: r2.Vec{X: 100, Y: 100}, Heading: 90}
	m := &components.Mount{Offset: r2.Vec{X: 10, Y: 0}}
	pos, heading := MuzzlePose(b, m)
	if !vecNear(pos, r2.Vec{X: 100, Y: 90}, 1e-9) || heading != 90 {
		t.Errorf("MuzzlePose = %v, %v; want (100,90), 90", pos, heading)
	}
}
