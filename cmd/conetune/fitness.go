package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/game"
	"github.com/pthm-cable/dogfight/input"
	"github.com/pthm-cable/dogfight/telemetry"
)

// FitnessEvaluator runs headless squadron duels and scores the AI.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastSummary duelSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// duelSummary totals the telemetry windows of one or more duels.
type duelSummary struct {
	Shots   int
	Hits    int
	Losses  int
	SimTime float64 // seconds
}

func (d *duelSummary) add(w telemetry.WindowStats, windowSec float64) {
	d.Shots += w.AlliedShots + w.HostileShots
	d.Hits += w.AlliedHits + w.HostileHits
	d.Losses += w.AlliedLosses + w.HostileLosses
	d.SimTime += windowSec
}

func (d *duelSummary) merge(o duelSummary) {
	d.Shots += o.Shots
	d.Hits += o.Hits
	d.Losses += o.Losses
	d.SimTime += o.SimTime
}

// Accuracy is hits per shot, zero when nobody fired.
func (d duelSummary) Accuracy() float64 {
	if d.Shots == 0 {
		return 0
	}
	return float64(d.Hits) / float64(d.Shots)
}

// KillsPerMinute is the combined loss rate of both sides.
func (d duelSummary) KillsPerMinute() float64 {
	if d.SimTime <= 0 {
		return 0
	}
	return float64(d.Losses) / d.SimTime * 60
}

// Fitness weights. Kill tempo saturates so endless trading does not beat
// clean gunnery.
const (
	weightAccuracy = 0.6
	weightTempo    = 0.4
	tempoScale     = 4.0 // kills per minute at which tempo reaches ~63%
)

// computeFitness turns a duel summary into a score (lower = better).
func computeFitness(d duelSummary) float64 {
	tempo := 1 - math.Exp(-d.KillsPerMinute()/tempoScale)
	return -(weightAccuracy*d.Accuracy() + weightTempo*tempo)
}

// LastSummary returns the combined summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() duelSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Seeds run in parallel; each game owns its config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]duelSummary, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], errs[idx] = fe.runDuel(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total duelSummary
	for i, r := range results {
		if errs[i] != nil {
			return math.Inf(1)
		}
		total.merge(r)
	}

	fe.mu.Lock()
	fe.lastSummary = total
	fe.mu.Unlock()

	return computeFitness(total)
}

// duelConfig copies the base config for an AI-only duel in which both
// sides respawn, so the fight lasts the whole run.
func (fe *FitnessEvaluator) duelConfig(x []float64) (*config.Config, error) {
	cfg, err := fe.baseConfig.Clone()
	if err != nil {
		return nil, err
	}
	fe.params.ApplyToConfig(cfg, x)
	cfg.Spawns.Player.Enabled = false
	cfg.Respawn.Allied.Enabled = true
	cfg.Respawn.Hostile.Enabled = true
	if cfg.Telemetry.StatsWindow <= 0 {
		cfg.Telemetry.StatsWindow = 10
	}
	cfg.Telemetry.LogStats = false
	return cfg, nil
}

// runDuel executes a single headless duel.
func (fe *FitnessEvaluator) runDuel(x []float64, seed int64) (duelSummary, error) {
	cfg, err := fe.duelConfig(x)
	if err != nil {
		return duelSummary{}, err
	}

	var summary duelSummary
	window := cfg.Telemetry.StatsWindow
	g, err := game.New(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(w telemetry.WindowStats) {
			summary.add(w, window)
		},
	})
	if err != nil {
		return duelSummary{}, err
	}

	clock := &game.SimClock{FPS: cfg.Screen.FPS}
	for g.Tick() < fe.maxTicks {
		g.Step(clock.Now(), input.Intent{})
		g.Drain(game.EventSinkFunc(func(game.Event) {}))
		clock.Advance()
	}
	return summary, nil
}
