package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the configuration for values the game cannot run with.
func (c *Config) Validate() error {
	if c.Screen.FPS <= 0 {
		return invalid("screen.fps must be positive, got %d", c.Screen.FPS)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return invalid("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Field.Width < 0 || c.Field.Height < 0 {
		return invalid("field size must not be negative")
	}
	if c.Weapons.RateOfFire <= 0 {
		return invalid("weapons.rate_of_fire must be positive, got %v", c.Weapons.RateOfFire)
	}
	if c.Weapons.RangeSeconds <= 0 {
		return invalid("weapons.range_seconds must be positive, got %v", c.Weapons.RangeSeconds)
	}
	if c.Collision.CellSize <= 0 {
		return invalid("collision.cell_size must be positive")
	}
	switch c.AI.SpeedControl {
	case SpeedControlHold, SpeedControlMatch:
	default:
		return invalid("ai.speed_control must be %q or %q, got %q", SpeedControlHold, SpeedControlMatch, c.AI.SpeedControl)
	}
	for _, cone := range []float64{c.AI.PilotingConeSine, c.AI.GunningConeSine} {
		if cone < 0 || cone > 1 {
			return invalid("ai cone sines must be within [0, 1], got %v", cone)
		}
	}

	for name, skin := range c.Skins {
		if err := skin.validate(); err != nil {
			return fmt.Errorf("skin %q: %w", name, err)
		}
	}
	for name, laser := range c.Lasers {
		if laser.Width <= 0 || laser.Height <= 0 {
			return fmt.Errorf("laser %q: %w", name, invalid("size must be positive"))
		}
		if _, err := ParseColor(laser.Color); err != nil {
			return fmt.Errorf("laser %q: %w", name, err)
		}
		if err := laser.Muzzle.validate(); err != nil {
			return fmt.Errorf("laser %q muzzle: %w", name, err)
		}
	}
	if err := c.Animations.Explosion.validate(); err != nil {
		return fmt.Errorf("explosion: %w", err)
	}
	if err := c.Animations.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if m := c.Animations.Marker; m.Enabled {
		if m.Size <= 0 || m.Thickness <= 0 {
			return invalid("marker size and thickness must be positive")
		}
		for _, col := range []string{m.PlayerColor, m.AlliedColor, m.HostileColor} {
			if _, err := ParseColor(col); err != nil {
				return fmt.Errorf("marker: %w", err)
			}
		}
	}

	for _, side := range []struct {
		name string
		cfg  SideConfig
	}{{"allied", c.Sides.Allied}, {"hostile", c.Sides.Hostile}} {
		if _, ok := c.Skins[side.cfg.Ship]; !ok {
			return invalid("sides.%s.ship: unknown skin %q", side.name, side.cfg.Ship)
		}
		if _, ok := c.Lasers[side.cfg.Laser]; !ok {
			return invalid("sides.%s.laser: unknown laser %q", side.name, side.cfg.Laser)
		}
	}

	spawns := append([]ShipSpawn(nil), c.Spawns.Allied...)
	spawns = append(spawns, c.Spawns.Hostile...)
	if c.Spawns.Player.Enabled {
		spawns = append(spawns, c.Spawns.Player.ShipSpawn)
	}
	for i, s := range spawns {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
	}

	for _, r := range []SideRespawn{c.Respawn.Player, c.Respawn.Allied, c.Respawn.Hostile} {
		if r.DelaySeconds < 0 {
			return invalid("respawn delay must not be negative")
		}
	}
	if c.Audio.SampleRate <= 0 {
		return invalid("audio.sample_rate must be positive")
	}
	if c.Audio.Volume < 0 {
		return invalid("audio.volume must not be negative")
	}
	if c.Telemetry.StatsWindow < 0 {
		return invalid("telemetry.stats_window must not be negative")
	}
	return nil
}

func (s SkinConfig) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return invalid("size must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.SizeFactor <= 0 {
		return invalid("size_factor must be positive")
	}
	if s.HitPoints <= 0 {
		return invalid("hit_points must be positive")
	}
	if _, err := ParseColor(s.Color); err != nil {
		return err
	}
	if err := ValidateFireModes(s.FireModes, len(s.GunOffsets)); err != nil {
		return err
	}
	if s.InitialFireMode < 0 || s.InitialFireMode >= len(s.FireModes) {
		return invalid("initial_fire_mode %d out of range [0, %d)", s.InitialFireMode, len(s.FireModes))
	}
	return nil
}

// ValidateFireModes checks that a fire-mode table is non-empty and only
// references existing mounts.
func ValidateFireModes(modes [][][]int, mounts int) error {
	if mounts == 0 {
		return invalid("no gun mounts")
	}
	if len(modes) == 0 {
		return invalid("no fire modes")
	}
	for m, mode := range modes {
		if len(mode) == 0 {
			return invalid("fire mode %d has no salvos", m)
		}
		for s, salvo := range mode {
			if len(salvo) == 0 {
				return invalid("fire mode %d salvo %d is empty", m, s)
			}
			for _, idx := range salvo {
				if idx < 0 || idx >= mounts {
					return invalid("fire mode %d salvo %d references mount %d, have %d", m, s, idx, mounts)
				}
			}
		}
	}
	return nil
}

func (a AnimationConfig) validate() error {
	if a.Frames <= 0 {
		return invalid("frames must be positive")
	}
	if a.SecondsPerFrame <= 0 {
		return invalid("spf must be positive")
	}
	if a.Size <= 0 {
		return invalid("size must be positive")
	}
	_, err := ParseColor(a.Color)
	return err
}

// Validate checks a single spawn entry.
func (s ShipSpawn) Validate() error {
	if s.MaxSpeed < 0 || s.MinSpeed < 0 || s.MinSpeed > s.MaxSpeed {
		return invalid("speed caps must satisfy 0 <= min_speed <= max_speed")
	}
	if s.Speed < s.MinSpeed || s.Speed > s.MaxSpeed {
		return invalid("initial speed %v outside [%v, %v]", s.Speed, s.MinSpeed, s.MaxSpeed)
	}
	if s.TurnRate < 0 || s.Accel < 0 {
		return invalid("turn_rate and accel must not be negative")
	}
	return nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" (straight alpha).
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, invalid("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, invalid("color %q: %v", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
