package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dogfight/input"
)

// Keyboard reads player controls from raylib. Raylib reports which keys are
// down, so toggles are derived as edges between polls.
type Keyboard struct {
	edges input.Edges

	// Extra holds toggles requested elsewhere this frame (the pause panel).
	// It is merged into the next Poll and then cleared.
	Extra input.Intent
}

// NewKeyboard creates a keyboard source.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Poll implements input.Source.
func (k *Keyboard) Poll() input.Intent {
	in := input.Intent{
		TurnLeft:   rl.IsKeyDown(rl.KeyLeft),
		TurnRight:  rl.IsKeyDown(rl.KeyRight),
		Accelerate: rl.IsKeyDown(rl.KeyUp),
		Decelerate: rl.IsKeyDown(rl.KeyDown),
		FireHeld:   rl.IsKeyDown(rl.KeySpace),
	}
	in = k.edges.Apply(in, rl.IsKeyDown(rl.KeyF), rl.IsKeyDown(rl.KeyEscape), rl.IsKeyDown(rl.KeyS))

	in.ToggleFireMode = in.ToggleFireMode != k.Extra.ToggleFireMode
	in.TogglePause = in.TogglePause != k.Extra.TogglePause
	in.ToggleSound = in.ToggleSound != k.Extra.ToggleSound
	k.Extra = input.Intent{}
	return in
}

var _ input.Source = (*Keyboard)(nil)
