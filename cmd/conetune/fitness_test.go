package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/telemetry"
)

func TestDuelSummaryRates(t *testing.T) {
	var d duelSummary
	d.add(telemetry.WindowStats{AlliedShots: 10, HostileShots: 6, AlliedHits: 3, HostileHits: 1, AlliedLosses: 1}, 10)
	d.add(telemetry.WindowStats{AlliedShots: 4, AlliedHits: 4, HostileLosses: 2}, 10)

	if got := d.Accuracy(); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Accuracy = %v, want 0.4", got)
	}
	if got := d.KillsPerMinute(); math.Abs(got-9) > 1e-9 {
		t.Errorf("KillsPerMinute = %v, want 9", got)
	}

	var empty duelSummary
	if empty.Accuracy() != 0 || empty.KillsPerMinute() != 0 {
		t.Error("empty summary should score zero rates")
	}
}

func TestComputeFitnessPrefersAccurateDecisiveDuels(t *testing.T) {
	tests := []struct {
		name          string
		better, worse duelSummary
	}{
		{
			"accuracy",
			duelSummary{Shots: 100, Hits: 40, Losses: 4, SimTime: 60},
			duelSummary{Shots: 100, Hits: 10, Losses: 4, SimTime: 60},
		},
		{
			"tempo",
			duelSummary{Shots: 100, Hits: 20, Losses: 8, SimTime: 60},
			duelSummary{Shots: 100, Hits: 20, Losses: 1, SimTime: 60},
		},
		{
			"something beats nothing",
			duelSummary{Shots: 10, Hits: 1, SimTime: 60},
			duelSummary{SimTime: 60},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b, w := computeFitness(tt.better), computeFitness(tt.worse); b >= w {
				t.Errorf("fitness %v should be lower than %v", b, w)
			}
		})
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg)

	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}

	pv.ApplyToConfig(cfg, []float64{5, -1})
	if cfg.AI.PilotingConeSine != pv.Specs[0].Max || cfg.AI.GunningConeSine != pv.Specs[1].Min {
		t.Errorf("ApplyToConfig did not clamp: %+v", cfg.AI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config invalid: %v", err)
	}
}

func TestDuelConfigIsAIOnly(t *testing.T) {
	base, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	fe := NewFitnessEvaluator(NewParamVector(base), 60, []int64{1}, base)
	cfg, err := fe.duelConfig([]float64{0.2, 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spawns.Player.Enabled || !cfg.Respawn.Allied.Enabled || !cfg.Respawn.Hostile.Enabled {
		t.Error("duel config should drop the player and enable respawns")
	}
	if cfg.AI.GunningConeSine != 0.3 {
		t.Errorf("gunning cone = %v, want 0.3", cfg.AI.GunningConeSine)
	}
	if !base.Spawns.Player.Enabled || base.AI.GunningConeSine == 0.3 {
		t.Error("duel config changed the base config")
	}
}

func TestRunDuelProducesWindows(t *testing.T) {
	base, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	base.Telemetry.StatsWindow = 1
	fe := NewFitnessEvaluator(NewParamVector(base), 3*base.Screen.FPS, []int64{7}, base)

	d, err := fe.runDuel(NewParamVector(base).DefaultVector(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d.SimTime-3) > 1e-9 {
		t.Errorf("SimTime = %v, want 3 windows of 1s", d.SimTime)
	}
}
