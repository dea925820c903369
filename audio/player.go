package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/game"
)

// Player turns game events into sound. It implements game.EventSink and
// ignores events that were emitted with sound switched off.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer

	// play hands a finished streamer to the output. Nil until Init.
	play func(beep.Streamer)

	played int
}

// NewPlayer creates a player for the given settings. Nothing is audible
// until Init succeeds.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.play != nil {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.play = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	slog.Info("audio_ready", "sample_rate", int(p.rate))
	return nil
}

// HandleEvent implements game.EventSink.
func (p *Player) HandleEvent(e game.Event) {
	if !e.Audible {
		return
	}

	var s beep.Streamer
	switch e.Kind {
	case game.SoundLaser:
		s = LaserZap(p.rate, p.volume)
	case game.SoundExplosion:
		s = ExplosionRumble(p.rate, p.volume)
	default:
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.play == nil {
		return
	}
	p.play(s)
	p.played++
}

// Played returns how many sounds have been started.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.play == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.play = nil
}
