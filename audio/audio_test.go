package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/dogfight/components"
	"github.com/pthm-cable/dogfight/config"
	"github.com/pthm-cable/dogfight/game"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns every left-channel sample.
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestSweepLengthAndRange(t *testing.T) {
	for _, w := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		got := drain(NewSweep(440, 220, 10*time.Millisecond, w, testRate))
		if len(got) != testRate.N(10*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, len(got), testRate.N(10*time.Millisecond))
		}
		for i, v := range got {
			if v < -1 || v > 1 {
				t.Fatalf("wave %d sample %d = %v out of range", w, i, v)
			}
		}
	}
}

func TestSquareSweepIsBipolar(t *testing.T) {
	for i, v := range drain(NewSweep(1000, 1000, 5*time.Millisecond, WaveSquare, testRate)) {
		if v != 1 && v != -1 {
			t.Fatalf("sample %d = %v, want ±1", i, v)
		}
	}
}

func TestDecayEnvelope(t *testing.T) {
	tone := NewSweep(0, 0, 100*time.Millisecond, WaveSquare, testRate) // phase stays 0: constant +1
	got := drain(NewDecay(tone, 10*time.Millisecond, 20*time.Millisecond, testRate))

	attack := testRate.N(10 * time.Millisecond)
	half := testRate.N(20 * time.Millisecond)
	if got[0] != 0 {
		t.Errorf("first sample = %v, want silent start", got[0])
	}
	if got[attack] != 1 {
		t.Errorf("level after attack = %v, want 1", got[attack])
	}
	if math.Abs(got[attack+half]-0.5) > 1e-6 {
		t.Errorf("level one half-life later = %v, want 0.5", got[attack+half])
	}
}

func TestSoundsEndAndStayQuiet(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		d    time.Duration
	}{
		{"laser", LaserZap(testRate, 1), laserDuration},
		{"explosion", ExplosionRumble(testRate, 1), explosionDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := drain(tt.s)
			if len(got) != testRate.N(tt.d) {
				t.Errorf("%d samples, want %d", len(got), testRate.N(tt.d))
			}
			var peak float64
			for _, v := range got {
				peak = math.Max(peak, math.Abs(v))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want (0, 1]", peak)
			}
		})
	}
}

func TestPlayerFiltersEvents(t *testing.T) {
	p := NewPlayer(config.AudioConfig{SampleRate: 44100, Volume: 0.5})
	var started []beep.Streamer
	p.play = func(s beep.Streamer) { started = append(started, s) }

	events := []game.Event{
		{Kind: game.SoundLaser, Side: components.SideAllied, Audible: true},
		{Kind: game.SoundLaser, Side: components.SideHostile, Audible: false},
		{Kind: game.SoundExplosion, Audible: true},
		{Kind: game.ShipDestroyed, Audible: true},
		{Kind: game.ShipSpawned},
	}
	for _, e := range events {
		p.HandleEvent(e)
	}
	if len(started) != 2 || p.Played() != 2 {
		t.Errorf("started %d sounds (Played %d), want 2", len(started), p.Played())
	}
}

func TestPlayerSilentBeforeInit(t *testing.T) {
	p := NewPlayer(config.AudioConfig{SampleRate: 44100, Volume: 1})
	p.HandleEvent(game.Event{Kind: game.SoundLaser, Audible: true})
	if p.Played() != 0 {
		t.Error("played a sound without a speaker")
	}
	p.Close()
}
