package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHitboxes    OverlayID = "hitboxes"
	OverlayTargetLines OverlayID = "target_lines"
	OverlayGunCones    OverlayID = "gun_cones"
	OverlayGrid        OverlayID = "grid"
	OverlayPerf        OverlayID = "perf"
	OverlayStats       OverlayID = "stats"
	OverlayInspector   OverlayID = "inspector"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "B"
	Category    string // "debug", "ai" or "panels"
	Exclusive   []OverlayID
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// The game itself owns the arrows, space, F, S and Escape.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayHitboxes,
		Name:        "Hitboxes",
		Description: "Oriented frame bounds of ships and bolts",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Collision Grid",
		Description: "Broad-phase cells",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayTargetLines,
		Name:        "Target Lines",
		Description: "Line from each AI ship to its target",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "ai",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGunCones,
		Name:        "Gun Cones",
		Description: "Gunnery cone edges of AI ships",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "ai",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-phase tick timing",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayInspector},
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayStats,
		Name:        "Combat Stats",
		Description: "Last telemetry window",
		Key:         rl.KeyW,
		KeyLabel:    "W",
		Category:    "panels",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayInspector,
		Name:        "Inspector",
		Description: "Components of the selected ship",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayPerf},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
