package game

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/sprite"
)

// Assets holds every frame sheet the game draws, built procedurally from the
// config. Sprites refer to sheets by index.
type Assets struct {
	sheets []*sprite.Skin

	ships   map[string]uint16
	lasers  map[string]uint16
	muzzles map[string]uint16

	Explosion uint16
	Engine    uint16

	// Marker frames by owner: player, allied, hostile.
	PlayerMarker  uint16
	AlliedMarker  uint16
	HostileMarker uint16
}

// NewAssets renders all skins, lasers and animations named in cfg.
func NewAssets(cfg *config.Config) (*Assets, error) {
	a := &Assets{
		ships:   make(map[string]uint16),
		lasers:  make(map[string]uint16),
		muzzles: make(map[string]uint16),
	}

	// Sorted so sheet indices do not depend on map order.
	for _, name := range sortedKeys(cfg.Skins) {
		sc := cfg.Skins[name]
		c, err := config.ParseColor(sc.Color)
		if err != nil {
			return nil, fmt.Errorf("skin %q: %w", name, err)
		}
		img, err := sprite.Ship(sc.Shape, scaled(sc.Width, sc.SizeFactor), scaled(sc.Height, sc.SizeFactor), c)
		if err != nil {
			return nil, fmt.Errorf("skin %q: %w", name, err)
		}
		a.ships[name] = a.add(sprite.NewSkin(name, []image.Image{img}, nil))
	}

	for _, name := range sortedKeys(cfg.Lasers) {
		lc := cfg.Lasers[name]
		c, err := config.ParseColor(lc.Color)
		if err != nil {
			return nil, fmt.Errorf("laser %q: %w", name, err)
		}
		a.lasers[name] = a.add(sprite.NewSkin(name, []image.Image{sprite.Bolt(lc.Width, lc.Height, c)}, nil))

		idx, err := a.addAnimation(name+"-muzzle", lc.Muzzle)
		if err != nil {
			return nil, fmt.Errorf("laser %q muzzle: %w", name, err)
		}
		a.muzzles[name] = idx
	}

	var err error
	if a.Explosion, err = a.addAnimation("explosion", cfg.Animations.Explosion); err != nil {
		return nil, fmt.Errorf("explosion: %w", err)
	}
	if a.Engine, err = a.addAnimation("engine", cfg.Animations.Engine); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	m := cfg.Animations.Marker
	if m.Enabled {
		for _, mk := range []struct {
			color string
			dst   *uint16
		}{
			{m.PlayerColor, &a.PlayerMarker},
			{m.AlliedColor, &a.AlliedMarker},
			{m.HostileColor, &a.HostileMarker},
		} {
			c, err := config.ParseColor(mk.color)
			if err != nil {
				return nil, fmt.Errorf("marker: %w", err)
			}
			*mk.dst = a.add(sprite.NewSkin("marker", []image.Image{sprite.Frame(m.Size, m.Thickness, c)}, nil))
		}
	}
	return a, nil
}

func (a *Assets) add(s *sprite.Skin) uint16 {
	a.sheets = append(a.sheets, s)
	return uint16(len(a.sheets) - 1)
}

func (a *Assets) addAnimation(name string, ac config.AnimationConfig) (uint16, error) {
	c, err := config.ParseColor(ac.Color)
	if err != nil {
		return 0, err
	}
	frames, err := sprite.Animation(ac.Shape, ac.Size, ac.Frames, c)
	if err != nil {
		return 0, err
	}
	return a.add(sprite.NewSkin(name, frames, nil)), nil
}

// Sheet returns the frame sheet at index i, or nil for NoSheet.
func (a *Assets) Sheet(i uint16) *sprite.Skin {
	if int(i) >= len(a.sheets) {
		return nil
	}
	return a.sheets[i]
}

// Len returns the number of sheets.
func (a *Assets) Len() int {
	return len(a.sheets)
}

// Ship returns the sheet index of a ship skin.
func (a *Assets) Ship(name string) (uint16, bool) {
	i, ok := a.ships[name]
	return i, ok
}

// Laser returns the bolt and muzzle-flash sheet indices of a laser skin.
func (a *Assets) Laser(name string) (bolt, muzzle uint16, ok bool) {
	bolt, ok = a.lasers[name]
	return bolt, a.muzzles[name], ok
}

func scaled(px int, factor float64) int {
	return int(math.Round(float64(px) * factor))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
