// Package ui draws the dogfight with raylib: the field, the HUD, debug
// overlays and the pause panel. It also reads the keyboard.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	// Side colors for text and debug overlays
	Allied  rl.Color
	Hostile rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 8, G: 10, B: 18, A: 255},
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Allied:         rl.Color{R: 92, G: 255, B: 106, A: 255},
		Hostile:        rl.Color{R: 255, G: 75, B: 62, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
