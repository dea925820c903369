package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dogfight/components"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for a [0, 1] ratio with a caption after it.
func (r *Renderer) DrawBar(x, y int32, label string, ratio float32, caption string, width int32, fill rl.Color) int32 {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, fill)
	rl.DrawText(caption, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawHullBar draws hit points with color thresholds.
func (r *Renderer) DrawHullBar(x, y int32, hp, maxHP int, width int32) int32 {
	var ratio float32
	if maxHP > 0 {
		ratio = float32(hp) / float32(maxHP)
	}
	fill := r.Theme.BarFillHigh
	switch {
	case ratio < 0.34:
		fill = r.Theme.BarFillLow
	case ratio < 0.67:
		fill = r.Theme.BarFillMedium
	}
	return r.DrawBar(x, y, "Hull", ratio, fmt.Sprintf("%d/%d", hp, maxHP), width, fill)
}

// SideColor returns the theme color of a side.
func (r *Renderer) SideColor(s components.Side) rl.Color {
	if s == components.SideHostile {
		return r.Theme.Hostile
	}
	return r.Theme.Allied
}
