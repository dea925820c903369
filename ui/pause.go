package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dogfight/input"
)

// PauseState is what the pause panel shows.
type PauseState struct {
	Sound     bool
	FireMode  int
	FireModes int
	HasPlayer bool
}

// PausePanel is the raygui menu drawn while the game is paused.
type PausePanel struct {
	width, height float32
}

// NewPausePanel creates a pause panel.
func NewPausePanel() *PausePanel {
	return &PausePanel{width: 240, height: 170}
}

// Draw renders the panel centered on the screen and returns the toggles
// the player clicked.
func (p *PausePanel) Draw(screenW, screenH int32, st PauseState) input.Intent {
	var out input.Intent

	x := float32(screenW)/2 - p.width/2
	y := float32(screenH)/2 - p.height/2
	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{R: 0, G: 0, B: 0, A: 120})
	gui.Panel(rl.Rectangle{X: x, Y: y, Width: p.width, Height: p.height}, "Paused")

	bx, bw, bh := x+20, p.width-40, float32(30)
	by := y + 35
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}, "Resume") {
		out.TogglePause = true
	}
	by += bh + 10

	sound := "Sound: off"
	if st.Sound {
		sound = "Sound: on"
	}
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}, sound) {
		out.ToggleSound = true
	}
	by += bh + 10

	if st.HasPlayer {
		mode := fmtMode(st.FireMode, st.FireModes)
		if gui.Button(rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}, mode) {
			out.ToggleFireMode = true
		}
	} else {
		gui.Label(rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}, "Player down")
	}
	return out
}

func fmtMode(mode, modes int) string {
	return fmt.Sprintf("Fire mode: %d/%d", mode+1, modes)
}
