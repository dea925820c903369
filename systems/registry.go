package systems

// Phase IDs of one simulation tick, in execution order.
const (
	PhaseShips       = "ships"
	PhaseSpawns      = "spawns"
	PhaseProjectiles = "projectiles"
	PhaseCollision   = "collision"
	PhaseKills       = "kills"
	PhaseEffects     = "effects"
	PhaseRespawn     = "respawn"
	PhaseTelemetry   = "telemetry"
)

// SystemInfo describes a tick phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string
	Category    string
}

// SystemRegistry holds metadata about the tick phases so the HUD and the
// perf tracker agree on names.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all tick phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: PhaseShips, Name: "Ships", Description: "Targeting, piloting, gunnery, engine flames", Category: "combat"})
	reg.Register(SystemInfo{ID: PhaseSpawns, Name: "Spawns", Description: "Applies staged projectiles and effects", Category: "core"})
	reg.Register(SystemInfo{ID: PhaseProjectiles, Name: "Projectiles", Description: "Moves lasers and expires spent ones", Category: "combat"})
	reg.Register(SystemInfo{ID: PhaseCollision, Name: "Collision", Description: "Mask hits between hulls and lasers", Category: "combat"})
	reg.Register(SystemInfo{ID: PhaseKills, Name: "Kills", Description: "Destroys ships and removes spent entities", Category: "core"})
	reg.Register(SystemInfo{ID: PhaseEffects, Name: "Effects", Description: "Animates and tracks effects", Category: "visual"})
	reg.Register(SystemInfo{ID: PhaseRespawn, Name: "Respawn", Description: "Brings back destroyed ships", Category: "core"})
	reg.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Windowed combat stats", Category: "internal"})
	return reg
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a phase ID, or the ID itself.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases in order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
