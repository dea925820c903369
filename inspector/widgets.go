package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value interface{}, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+100, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar filled to value/max.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	maxVal := GetMax(options)
	ratio := value / maxVal
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	barHeight := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 100
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), barHeight, lerpColor(ColorBarLow, ColorBarFill, ratio))

	valueStr := fmt.Sprintf("%.2f", value)
	if _, ok := options["maxfield"]; ok {
		valueStr = fmt.Sprintf("%.0f/%.0f", value, maxVal)
	}
	rl.DrawText(valueStr, barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawAngle renders a compass for a heading in degrees counterclockwise,
// 0 pointing right.
func DrawAngle(x, y int32, name string, degrees float32) int32 {
	size := int32(40)
	centerX := x + 100 + size/2
	centerY := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	// Screen Y points down, so a counterclockwise heading flips the sine.
	rad := float64(degrees) * math.Pi / 180
	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Cos(rad))
	endY := float32(centerY) - needleLen*float32(math.Sin(rad))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+100+size+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 100
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawVec renders a 2D vector as a coordinate pair.
func DrawVec(x, y int32, name string, v [2]float64) int32 {
	return DrawLabel(x, y, name, fmt.Sprintf("(%.0f, %.0f)", v[0], v[1]), nil)
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	case WidgetVec:
		if v, ok := GetVec(field.Value); ok {
			return DrawVec(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}

// FieldHeight returns the height DrawField uses for field.
func FieldHeight(field Field) int32 {
	if field.Widget == WidgetAngle {
		return 44
	}
	return 18
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
