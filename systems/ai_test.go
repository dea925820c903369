package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/input"
)

func TestRadarProjection(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		bearing r2.Vec
		want    float64
		ok      bool
	}{
		{"left of east heading", 0, r2.Vec{X: 0, Y: -10}, 1, true},
		{"right of east heading", 0, r2.Vec{X: 0, Y: 10}, -1, true},
		{"dead ahead", 0, r2.Vec{X: 50, Y: 0}, 0, true},
		{"dead astern", 0, r2.Vec{X: -50, Y: 0}, 0, true},
		{"left of west heading", 180, r2.Vec{X: 0, Y: 10}, 1, true},
		{"thirty degrees left", 0, r2.Vec{X: math.Sqrt(3), Y: -1}, 0.5, true},
		{"zero bearing", 0, r2.Vec{}, 0, false},
		{"NaN bearing", 0, r2.Vec{X: math.NaN(), Y: 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RadarProjection(tt.heading, tt.bearing)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("projection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPilotTurn(t *testing.T) {
	tests := []struct {
		proj, want float64
	}{
		{0.5, 2.5},
		{-0.5, -2.5},
		{0.05, 0},
		{0.1, 0}, // cone edge holds course
		{-0.1, 0},
	}
	for _, tt := range tests {
		if got := PilotTurn(tt.proj, 0.1, 2.5); got != tt.want {
			t.Errorf("PilotTurn(%v) = %v, want %v", tt.proj, got, tt.want)
		}
	}
}

func TestGunnerFire(t *testing.T) {
	tests := []struct {
		proj float64
		want bool
	}{
		{0, true},
		{0.05, true},
		{-0.099, true},
		{0.1, false},
		{-0.1, false},
		{0.7, false},
	}
	for _, tt := range tests {
		if got := GunnerFire(tt.proj, 0.1); got != tt.want {
			t.Errorf("GunnerFire(%v) = %v, want %v", tt.proj, got, tt.want)
		}
	}
}

func TestBearing_WrapAware(t *testing.T) {
	field := r2.Vec{X: 1000, Y: 600}
	self := r2.Vec{X: 980, Y: 300}
	target := r2.Vec{X: 20, Y: 300}

	if got := Bearing(self, target, field, false); got.X != -960 {
		t.Errorf("direct bearing X = %v, want -960", got.X)
	}
	if got := Bearing(self, target, field, true); got.X != 40 {
		t.Errorf("wrap-aware bearing X = %v, want 40", got.X)
	}
}

func TestMatchSpeed(t *testing.T) {
	b := &components.Body{Speed: 4, Motion: components.Motion{Accel: 0.5}}
	if got := MatchSpeed(b, 6); got != 0.5 {
		t.Errorf("MatchSpeed up = %v, want 0.5", got)
	}
	if got := MatchSpeed(b, 3.8); math.Abs(got+0.2) > 1e-9 {
		t.Errorf("MatchSpeed down = %v, want -0.2", got)
	}
}

func TestPlayerPilot(t *testing.T) {
	motion := components.Motion{TurnRate: 2.5, Accel: 1, MinSpeed: 0, MaxSpeed: 5.5}
	tests := []struct {
		name       string
		in         input.Intent
		speed      float64
		wantAngle  float64
		wantThrust float64
	}{
		{"idle", input.Intent{}, 3, 0, 0},
		{"left", input.Intent{TurnLeft: true}, 3, 2.5, 0},
		{"right", input.Intent{TurnRight: true}, 3, -2.5, 0},
		{"both turns cancel", input.Intent{TurnLeft: true, TurnRight: true}, 3, 0, 0},
		{"accelerate", input.Intent{Accelerate: true}, 3, 0, 1},
		{"accelerate near cap", input.Intent{Accelerate: true}, 5, 0, 0.5},
		{"accelerate at cap", input.Intent{Accelerate: true}, 5.5, 0, 0},
		{"decelerate near floor", input.Intent{Decelerate: true}, 0.25, 0, -0.25},
		{"both throttles cancel", input.Intent{Accelerate: true, Decelerate: true}, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &components.Body{Speed: tt.speed, Motion: motion}
			da, ds := PlayerPilot(tt.in, b)
			if da != tt.wantAngle || math.Abs(ds-tt.wantThrust) > 1e-9 {
				t.Errorf("PlayerPilot = (%v, %v), want (%v, %v)", da, ds, tt.wantAngle, tt.wantThrust)
			}
		})
	}
}

func TestAcquireTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := AcquireTarget(rng, nil); ok {
		t.Error("empty pool produced a target")
	}

	world := ecs.NewWorld()
	bodies := ecs.NewMap1[components.Body](world)
	var pool []ecs.Entity
	for i := 0; i < 3; i++ {
		pool = append(pool, bodies.NewEntity(&components.Body{}))
	}

	seen := make(map[ecs.Entity]int)
	for i := 0; i < 300; i++ {
		e, ok := AcquireTarget(rng, pool)
		if !ok {
			t.Fatal("non-empty pool produced no target")
		}
		seen[e]++
	}
	for _, e := range pool {
		if seen[e] == 0 {
			t.Errorf("candidate %v never picked in 300 draws", e)
		}
	}
}
