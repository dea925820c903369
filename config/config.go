// Package config provides configuration loading and access for the dogfight.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig           `yaml:"screen"`
	Field      FieldConfig            `yaml:"field"`
	Skins      map[string]SkinConfig  `yaml:"skins"`
	Lasers     map[string]LaserConfig `yaml:"lasers"`
	Animations AnimationsConfig       `yaml:"animations"`
	Weapons    WeaponsConfig          `yaml:"weapons"`
	AI         AIConfig               `yaml:"ai"`
	Sides      SidesConfig            `yaml:"sides"`
	Spawns     SpawnsConfig           `yaml:"spawns"`
	Respawn    RespawnConfig          `yaml:"respawn"`
	Collision  CollisionConfig        `yaml:"collision"`
	Telemetry  TelemetryConfig        `yaml:"telemetry"`
	Audio      AudioConfig            `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

// FieldConfig holds the playfield size. Zero means "same as the screen".
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SkinConfig describes a ship skin: its procedural shape, weapon and engine
// attachment points and the fire modes available to ships wearing it.
type SkinConfig struct {
	Shape           string       `yaml:"shape"` // arrow, dart, wedge
	Width           int          `yaml:"width"`
	Height          int          `yaml:"height"`
	Color           string       `yaml:"color"`
	SizeFactor      float64      `yaml:"size_factor"`
	HitPoints       int          `yaml:"hit_points"`
	GunOffsets      [][2]float64 `yaml:"gun_offsets"`    // px from skin center, unrotated
	EngineOffsets   [][2]float64 `yaml:"engine_offsets"` // px from skin center, unrotated
	FireModes       [][][]int    `yaml:"fire_modes"`     // mode -> salvo -> mount indices
	InitialFireMode int          `yaml:"initial_fire_mode"`
}

// LaserConfig describes a laser bolt skin and its muzzle flash.
type LaserConfig struct {
	Width  int             `yaml:"width"`
	Height int             `yaml:"height"`
	Color  string          `yaml:"color"`
	Muzzle AnimationConfig `yaml:"muzzle"`
}

// AnimationConfig describes a procedurally rendered frame sequence.
type AnimationConfig struct {
	Shape           string  `yaml:"shape"` // burst, flame, flash
	Size            int     `yaml:"size"`
	Frames          int     `yaml:"frames"`
	SecondsPerFrame float64 `yaml:"spf"`
	Color           string  `yaml:"color"`
}

// AnimationsConfig holds the shared animations.
type AnimationsConfig struct {
	Explosion AnimationConfig `yaml:"explosion"`
	Engine    AnimationConfig `yaml:"engine"`
	Marker    MarkerConfig    `yaml:"marker"`
}

// MarkerConfig controls the frame and call-sign overlays drawn around ships.
type MarkerConfig struct {
	Enabled      bool       `yaml:"enabled"`
	Size         int        `yaml:"size"`
	Thickness    int        `yaml:"thickness"`
	LabelOffset  [2]float64 `yaml:"label_offset"`
	PlayerColor  string     `yaml:"player_color"`
	AlliedColor  string     `yaml:"allied_color"`
	HostileColor string     `yaml:"hostile_color"`
}

// WeaponsConfig holds laser cannon parameters shared by every mount.
type WeaponsConfig struct {
	RangeSeconds float64 `yaml:"range_seconds"` // projectile lifetime
	SpeedBonus   float64 `yaml:"speed_bonus"`   // px/s added to the firing ship's speed
	RateOfFire   float64 `yaml:"rate_of_fire"`  // shots per second per mount
}

// Speed control modes for AI pilots.
const (
	SpeedControlHold  = "hold"
	SpeedControlMatch = "match"
)

// AIConfig holds AI pilot and gunner parameters.
type AIConfig struct {
	PilotingConeSine float64 `yaml:"piloting_cone_sine"`
	GunningConeSine  float64 `yaml:"gunning_cone_sine"`
	SpeedControl     string  `yaml:"speed_control"`
	WrapAwareRadar   bool    `yaml:"wrap_aware_radar"`
}

// SideConfig picks the ship and laser skins for one side.
type SideConfig struct {
	Ship   string `yaml:"ship"`
	Laser  string `yaml:"laser"`
	Suffix string `yaml:"suffix"` // call-sign suffix for squadron members
}

// SidesConfig holds both sides.
type SidesConfig struct {
	Allied  SideConfig `yaml:"allied"`
	Hostile SideConfig `yaml:"hostile"`
}

// ShipSpawn is the starting pose and motion envelope of one ship.
type ShipSpawn struct {
	CallSign string     `yaml:"call_sign"`
	Center   [2]float64 `yaml:"center"`
	Heading  float64    `yaml:"heading"`   // degrees CCW
	Speed    float64    `yaml:"speed"`     // px/s
	TurnRate float64    `yaml:"turn_rate"` // deg/s
	Accel    float64    `yaml:"accel"`     // px/s gained per tick of throttle
	MinSpeed float64    `yaml:"min_speed"` // px/s
	MaxSpeed float64    `yaml:"max_speed"` // px/s
}

// PlayerSpawn is the player's ship. It always flies for the allied side.
type PlayerSpawn struct {
	Enabled   bool `yaml:"enabled"`
	ShipSpawn `yaml:",inline"`
}

// SpawnsConfig lists the ships created at the start of a round.
type SpawnsConfig struct {
	Player  PlayerSpawn `yaml:"player"`
	Allied  []ShipSpawn `yaml:"allied"`
	Hostile []ShipSpawn `yaml:"hostile"`
}

// SideRespawn controls whether destroyed ships come back.
type SideRespawn struct {
	Enabled      bool    `yaml:"enabled"`
	DelaySeconds float64 `yaml:"delay_seconds"`
}

// RespawnConfig holds respawn rules per side and for the player.
type RespawnConfig struct {
	Player  SideRespawn `yaml:"player"`
	Allied  SideRespawn `yaml:"allied"`
	Hostile SideRespawn `yaml:"hostile"`
}

// CollisionConfig holds broad-phase parameters.
type CollisionConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
	LogStats    bool    `yaml:"log_stats"`
}

// AudioConfig holds the synthesiser settings.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // linear gain, 0 mutes
}

// DerivedConfig holds per-frame conversions and resolved sizes.
type DerivedConfig struct {
	FieldW, FieldH    float64
	DT                float64 // seconds per tick
	SpeedBonusPerTick float64
	RangeTicks        int
}

var global *Config

// Init loads configuration from the given path (or defaults if empty) and
// installs it as the global configuration.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(err)
	}
}

// Cfg returns the global configuration. Panics if Init has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg called before Init")
	}
	return global
}

// Load reads configuration from a YAML file, using embedded defaults as the base.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration with derived values filled in.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fw := c.Field.Width
	if fw == 0 {
		fw = c.Screen.Width
	}
	fh := c.Field.Height
	if fh == 0 {
		fh = c.Screen.Height
	}
	c.Derived.FieldW = float64(fw)
	c.Derived.FieldH = float64(fh)

	if c.Screen.FPS > 0 {
		fps := float64(c.Screen.FPS)
		c.Derived.DT = 1 / fps
		c.Derived.SpeedBonusPerTick = c.Weapons.SpeedBonus / fps
		c.Derived.RangeTicks = int(c.Weapons.RangeSeconds*fps + 0.5)
		if c.Derived.RangeTicks < 1 {
			c.Derived.RangeTicks = 1
		}
	}
}

// PerTick converts a per-second quantity to a per-tick quantity.
func (c *Config) PerTick(perSecond float64) float64 {
	return perSecond * c.Derived.DT
}

// Clone returns a deep copy made by round-tripping through YAML, so tools can
// tweak a copy without touching the global config.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	out.computeDerived()
	return out, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
