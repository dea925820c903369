package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/camera"
	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/game"
	"github.com/pthm-cable/dogfight/sprite"
	"github.com/pthm-cable/dogfight/systems"
)

type texKey struct {
	sheet uint16
	frame int
}

// Scene draws the field from game snapshots. Frame textures are uploaded
// lazily and rotated on the GPU; hitbox overlays show the CPU-side
// oriented frames the collision test uses.
type Scene struct {
	theme    Theme
	textures map[texKey]rl.Texture2D
	drawList []game.Drawable
}

// NewScene creates a scene. Must be used after the raylib window exists.
func NewScene() *Scene {
	return &Scene{
		theme:    DefaultTheme(),
		textures: make(map[texKey]rl.Texture2D),
	}
}

func (s *Scene) texture(assets *game.Assets, sheet uint16, frame int) (rl.Texture2D, bool) {
	key := texKey{sheet, frame}
	if tex, ok := s.textures[key]; ok {
		return tex, true
	}
	skin := assets.Sheet(sheet)
	if skin == nil || skin.Len() == 0 {
		return rl.Texture2D{}, false
	}
	img := rl.NewImageFromImage(skin.Frame(frame))
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	s.textures[key] = tex
	return tex, true
}

// Draw renders every drawable visible through cam plus the enabled overlays.
func (s *Scene) Draw(g *game.Game, cam *camera.Camera, overlays *OverlayRegistry) {
	rl.ClearBackground(s.theme.Background)

	if overlays.IsEnabled(OverlayGrid) {
		s.drawGrid(cam, g.Config().Collision.CellSize)
	}

	assets := g.Assets()
	s.drawList = g.Drawables(s.drawList)
	for _, d := range s.drawList {
		at := cam.WorldToScreen(d.Center)
		if d.Sheet == components.NoSheet {
			if d.Label != "" {
				rl.DrawText(d.Label, int32(at.X), int32(at.Y), 12, s.labelColor(d))
			}
			continue
		}
		tex, ok := s.texture(assets, d.Sheet, d.Frame)
		if !ok {
			continue
		}
		w, h := float32(tex.Width), float32(tex.Height)
		if !cam.IsVisible(d.Center, r2.Vec{X: float64(w), Y: float64(h)}) {
			continue
		}
		src := rl.Rectangle{X: 0, Y: 0, Width: w, Height: h}
		dst := rl.Rectangle{X: float32(at.X), Y: float32(at.Y), Width: w, Height: h}
		// Raylib rotates clockwise on screen; headings are counterclockwise.
		rot := -float32(sprite.WholeDegrees(d.Heading))
		rl.DrawTexturePro(tex, src, dst, rl.Vector2{X: w / 2, Y: h / 2}, rot, rl.White)
	}

	if overlays.IsEnabled(OverlayHitboxes) {
		s.drawHitboxes(g, cam)
	}
	if overlays.IsEnabled(OverlayTargetLines) {
		s.drawTargetLines(g, cam)
	}
	if overlays.IsEnabled(OverlayGunCones) {
		s.drawGunCones(g, cam)
	}
}

func (s *Scene) labelColor(d game.Drawable) rl.Color {
	if d.Side == components.SideHostile {
		return s.theme.Hostile
	}
	return s.theme.Allied
}

// drawGrid draws the collision broad-phase cells.
func (s *Scene) drawGrid(cam *camera.Camera, cell float64) {
	if cell <= 0 {
		return
	}
	c := rl.Color{R: 40, G: 45, B: 60, A: 255}
	vw, vh := int32(cam.Viewport.X), int32(cam.Viewport.Y)
	for x := 0.0; x < cam.Field.X; x += cell {
		sx := int32(cam.WorldToScreen(r2.Vec{X: x, Y: cam.Center.Y}).X)
		rl.DrawLine(sx, 0, sx, vh, c)
	}
	for y := 0.0; y < cam.Field.Y; y += cell {
		sy := int32(cam.WorldToScreen(r2.Vec{X: cam.Center.X, Y: y}).Y)
		rl.DrawLine(0, sy, vw, sy, c)
	}
}

func (s *Scene) drawHitboxes(g *game.Game, cam *camera.Camera) {
	assets := g.Assets()
	for _, d := range s.drawList {
		if d.Layer != game.LayerShip && d.Layer != game.LayerProjectile {
			continue
		}
		skin := assets.Sheet(d.Sheet)
		if skin == nil {
			continue
		}
		o := skin.Orient(d.Frame, d.Heading)
		tl, size := o.TopLeft(cam.WorldToScreen(d.Center)), o.Size()
		rl.DrawRectangleLines(int32(tl.X), int32(tl.Y), int32(size.X), int32(size.Y), rl.Magenta)
	}
}

func (s *Scene) drawTargetLines(g *game.Game, cam *camera.Camera) {
	for _, group := range []game.Group{game.AlliedHulls, game.HostileHulls} {
		for _, e := range g.Members(group) {
			pilot, ok := g.Pilot(e)
			if !ok || pilot.Behavior != components.BehaviorAI || pilot.AI.Target.IsZero() {
				continue
			}
			from, _ := g.Body(e)
			to, ok := g.Body(pilot.AI.Target)
			if !ok {
				continue
			}
			c := s.theme.Allied
			if group == game.HostileHulls {
				c = s.theme.Hostile
			}
			c.A = 90
			rl.DrawLineV(vec2(cam.WorldToScreen(from.Center)), vec2(cam.WorldToScreen(to.Center)), c)
		}
	}
}

// drawGunCones draws each AI ship's firing cone: the bearings whose radar
// projection falls within the gunning cone sine.
func (s *Scene) drawGunCones(g *game.Game, cam *camera.Camera) {
	const reach = 250.0
	for _, group := range []game.Group{game.AlliedHulls, game.HostileHulls} {
		for _, e := range g.Members(group) {
			pilot, ok := g.Pilot(e)
			if !ok || pilot.Behavior != components.BehaviorAI {
				continue
			}
			body, _ := g.Body(e)
			at := cam.WorldToScreen(body.Center)
			half := math.Asin(math.Min(pilot.AI.GunningConeSine, 1)) * 180 / math.Pi
			c := rl.Color{R: 255, G: 220, B: 90, A: 70}
			for _, edge := range []float64{half, -half} {
				tip := r2.Add(at, r2.Scale(reach, systems.HeadingVector(body.Heading+edge)))
				rl.DrawLineV(vec2(at), vec2(tip), c)
			}
		}
	}
}

// Unload releases all cached textures.
func (s *Scene) Unload() {
	for k, tex := range s.textures {
		rl.UnloadTexture(tex)
		delete(s.textures, k)
	}
}

func vec2(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
