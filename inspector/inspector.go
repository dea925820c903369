package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/camera"
	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/game"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30

	// pickRadius is how far from a ship's center a click still selects it.
	pickRadius = 40
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// section is one component block of the panel.
type section struct {
	title  string
	fields []Field
}

// Inspector manages ship selection and panel rendering. With nothing
// selected it follows the player's ship.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// HandleInput selects the ship nearest a left click, or deselects on a
// right click or a click on the close button. mouseX and mouseY are in
// screen space; cam maps them onto the field.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera, g *game.Game) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if ins.hasSelected &&
		int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
		ins.Deselect()
		return
	}
	if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY {
		return
	}

	at := cam.ScreenToWorld(r2.Vec{X: float64(mouseX), Y: float64(mouseY)})
	if e, ok := Pick(g, at, pickRadius); ok {
		ins.selected = e
		ins.hasSelected = true
	}
}

// Pick returns the live ship closest to at within radius.
func Pick(g *game.Game, at r2.Vec, radius float64) (ecs.Entity, bool) {
	var closest ecs.Entity
	best := radius * radius
	found := false
	for _, group := range []game.Group{game.AlliedHulls, game.HostileHulls} {
		for _, e := range g.Members(group) {
			body, ok := g.Body(e)
			if !ok {
				continue
			}
			d := r2.Sub(body.Center, at)
			if dist := r2.Dot(d, d); dist <= best {
				closest, best, found = e, dist, true
			}
		}
	}
	return closest, found
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = ecs.Entity{}
}

// Target returns the ship being inspected: the selection if it still
// flies, otherwise the player's ship.
func (ins *Inspector) Target(g *game.Game) (ecs.Entity, bool) {
	if ins.hasSelected {
		if hull, ok := g.Hull(ins.selected); ok && !hull.Destroyed {
			return ins.selected, true
		}
		ins.Deselect()
	}
	return g.Player()
}

func (ins *Inspector) sections(g *game.Game, e ecs.Entity) []section {
	var out []section
	if body, ok := g.Body(e); ok {
		out = append(out, section{"BODY", ExtractFields(body)})
	}
	if hull, ok := g.Hull(e); ok {
		out = append(out, section{"HULL", ExtractFields(hull)})
	}
	if arm, ok := g.Armament(e); ok {
		fields := ExtractFields(arm)
		fields = append(fields,
			Field{Name: "Mounts", Value: len(arm.Mounts), Widget: WidgetLabel},
			Field{Name: "Modes", Value: len(arm.Modes), Widget: WidgetLabel},
		)
		out = append(out, section{"ARMAMENT", fields})
	}
	if pilot, ok := g.Pilot(e); ok {
		fields := ExtractFields(pilot)
		if pilot.Behavior == components.BehaviorAI {
			target := "none"
			if hull, ok := g.Hull(pilot.AI.Target); ok {
				target = hull.CallSign
			}
			fields = append(fields,
				Field{Name: "Target", Value: target, Widget: WidgetLabel},
				Field{Name: "Gun cone", Value: pilot.AI.GunningConeSine, Widget: WidgetLabel, Options: map[string]string{"fmt": "%.3f"}},
			)
		}
		out = append(out, section{"PILOT", fields})
	}
	return out
}

// Draw renders the inspector panel for the current target.
func (ins *Inspector) Draw(g *game.Game) {
	e, ok := ins.Target(g)
	if !ok {
		return
	}
	sections := ins.sections(g, e)

	panelHeight := int32(HeaderHeight + PanelPadding*2)
	for _, s := range sections {
		panelHeight += 20 + 8
		for _, f := range s.fields {
			panelHeight += FieldHeight(f)
		}
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	title := "INSPECTOR"
	if hull, ok := g.Hull(e); ok {
		title = fmt.Sprintf("INSPECTOR  %s (%s)", hull.CallSign, hull.Side)
	}
	rl.DrawText(title, ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
		rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)
	}

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.title)
		y += 20
		for _, f := range s.fields {
			y += DrawField(x, y, f)
		}
		y += 8
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight circles the inspected ship and, for AI pilots,
// marks its target.
func (ins *Inspector) DrawSelectionHighlight(g *game.Game, cam *camera.Camera) {
	e, ok := ins.Target(g)
	if !ok {
		return
	}
	body, ok := g.Body(e)
	if !ok {
		return
	}
	at := cam.WorldToScreen(body.Center)
	radius := float32(body.HalfExtent.X+body.HalfExtent.Y) * 0.8
	rl.DrawCircleLines(int32(at.X), int32(at.Y), radius, rl.Yellow)

	pilot, ok := g.Pilot(e)
	if !ok || pilot.Behavior != components.BehaviorAI {
		return
	}
	if target, ok := g.Body(pilot.AI.Target); ok {
		tat := cam.WorldToScreen(target.Center)
		rl.DrawCircleLines(int32(tat.X), int32(tat.Y), 6, rl.Orange)
	}
}
