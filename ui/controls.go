package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the key bindings and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

var flightKeys = [][2]string{
	{"Arrows", "turn / throttle"},
	{"Space", "fire"},
	{"F", "fire mode"},
	{"S", "sound"},
	{"Esc", "pause"},
	{"H", "this panel"},
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	rows := len(flightKeys) + 1
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(rows)*lineHeight + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	y = r.DrawSectionHeader(c.x+padding, y, "Flight")
	for _, k := range flightKeys {
		y = r.DrawLabelValue(c.x+padding, y, k[0], k[1])
	}

	for _, category := range categories {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}
	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.BarFillHigh
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "debug":
		return "Debug"
	case "ai":
		return "AI"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}
