package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated combat statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Ships alive at window end
	AlliedShips  int `csv:"allied_ships"`
	HostileShips int `csv:"hostile_ships"`

	// Gunnery during window, by shooting side
	AlliedShots     int     `csv:"allied_shots"`
	HostileShots    int     `csv:"hostile_shots"`
	AlliedHits      int     `csv:"allied_hits"`
	HostileHits     int     `csv:"hostile_hits"`
	AlliedAccuracy  float64 `csv:"allied_accuracy"`
	HostileAccuracy float64 `csv:"hostile_accuracy"`

	// Attrition during window
	AlliedLosses  int `csv:"allied_losses"`
	HostileLosses int `csv:"hostile_losses"`
	Spawns        int `csv:"spawns"`
	Respawns      int `csv:"respawns"`

	// Hull integrity of live ships (hit points / max), sampled at window end
	IntegrityMean float64 `csv:"integrity_mean"`
	IntegrityMin  float64 `csv:"integrity_min"`
}

// ComputeIntegrityStats returns the mean and minimum hull fraction.
// Both are zero for an empty field.
func ComputeIntegrityStats(values []float64) (mean, lowest float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.Mean(values, nil), floats.Min(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("allied_ships", s.AlliedShips),
		slog.Int("hostile_ships", s.HostileShips),
		slog.Int("allied_shots", s.AlliedShots),
		slog.Int("hostile_shots", s.HostileShots),
		slog.Int("allied_hits", s.AlliedHits),
		slog.Int("hostile_hits", s.HostileHits),
		slog.Float64("allied_accuracy", s.AlliedAccuracy),
		slog.Float64("hostile_accuracy", s.HostileAccuracy),
		slog.Int("allied_losses", s.AlliedLosses),
		slog.Int("hostile_losses", s.HostileLosses),
		slog.Int("spawns", s.Spawns),
		slog.Int("respawns", s.Respawns),
		slog.Float64("integrity_mean", s.IntegrityMean),
		slog.Float64("integrity_min", s.IntegrityMin),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
