package main

import (
	"github.com/pthm-cable/dogfight/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the AI cone parameters, seeded from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "piloting_cone_sine", Path: "ai.piloting_cone_sine", Min: 0.01, Max: 0.6, Default: cfg.AI.PilotingConeSine},
			{Name: "gunning_cone_sine", Path: "ai.gunning_cone_sine", Min: 0.01, Max: 0.6, Default: cfg.AI.GunningConeSine},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.AI.PilotingConeSine = clamped[0]
	cfg.AI.GunningConeSine = clamped[1]
}
