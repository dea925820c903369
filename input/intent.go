// Package input defines the player's per-tick controls and sources for them.
package input

// Intent is one tick of player controls. Held flags are level-triggered;
// toggles and FirePressed are edges seen on this tick only.
type Intent struct {
	TurnLeft   bool
	TurnRight  bool
	Accelerate bool
	Decelerate bool

	FirePressed bool
	FireHeld    bool

	ToggleFireMode bool
	TogglePause    bool
	ToggleSound    bool
}

// Source produces the intent for the next tick.
type Source interface {
	Poll() Intent
}

// Idle is a source that never presses anything.
type Idle struct{}

// Poll implements Source.
func (Idle) Poll() Intent { return Intent{} }

// Script replays a fixed sequence of intents, one per tick. After the last
// step it either loops or keeps returning the zero intent.
type Script struct {
	steps []Intent
	next  int
	Loop  bool
}

// NewScript creates a script from steps.
func NewScript(steps ...Intent) *Script {
	return &Script{steps: steps}
}

// Hold appends n ticks of the same intent. Edge flags are only kept on the
// first of those ticks.
func (s *Script) Hold(in Intent, n int) *Script {
	for i := 0; i < n; i++ {
		step := in
		if i > 0 {
			step.FirePressed = false
			step.ToggleFireMode = false
			step.TogglePause = false
			step.ToggleSound = false
		}
		s.steps = append(s.steps, step)
	}
	return s
}

// Len returns the number of scripted ticks.
func (s *Script) Len() int { return len(s.steps) }

// Poll implements Source.
func (s *Script) Poll() Intent {
	if len(s.steps) == 0 {
		return Intent{}
	}
	if s.next >= len(s.steps) {
		if !s.Loop {
			return Intent{}
		}
		s.next = 0
	}
	in := s.steps[s.next]
	s.next++
	return in
}

// Edges derives pressed edges from level-only key snapshots, for sources
// that can only report which keys are down.
type Edges struct {
	fire, mode, pause, sound bool
}

// Apply fills the edge fields of in from the held state of the edge keys
// and remembers the held state for the next call.
func (e *Edges) Apply(in Intent, modeDown, pauseDown, soundDown bool) Intent {
	in.FirePressed = in.FireHeld && !e.fire
	in.ToggleFireMode = modeDown && !e.mode
	in.TogglePause = pauseDown && !e.pause
	in.ToggleSound = soundDown && !e.sound
	e.fire, e.mode, e.pause, e.sound = in.FireHeld, modeDown, pauseDown, soundDown
	return in
}
