// Package audio plays the game's sound events through the speaker. Every
// sound is synthesised on the fly; there are no sample files.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	laserDuration     = 120 * time.Millisecond
	explosionDuration = 650 * time.Millisecond
)

// sweep is an oscillator whose frequency slides linearly from f0 to f1 over
// its duration.
type sweep struct {
	f0, f1   float64
	wave     Wave
	rate     beep.SampleRate
	phase    float64
	pos, len int
	rng      *rand.Rand
}

// NewSweep returns an oscillator gliding from f0 to f1 Hz. A constant tone
// has f0 == f1.
func NewSweep(f0, f1 float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		f0: f0, f1: f1,
		wave: wave,
		rate: rate,
		len:  rate.N(d),
		rng:  rand.New(rand.NewSource(1)),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.len {
			return i, i > 0
		}

		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		case WaveNoise:
			v = s.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(s.pos) / float64(s.len)
		s.phase += (s.f0 + (s.f1-s.f0)*t) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay shapes a stream with a short linear attack followed by an
// exponential fall-off.
type decay struct {
	s      beep.Streamer
	attack int
	k      float64 // per-sample decay factor
	pos    int
}

// NewDecay wraps s in an attack/decay envelope. halfLife is how long the
// level takes to halve after the attack.
func NewDecay(s beep.Streamer, attack, halfLife time.Duration, rate beep.SampleRate) beep.Streamer {
	hl := rate.N(halfLife)
	if hl < 1 {
		hl = 1
	}
	return &decay{s: s, attack: rate.N(attack), k: math.Pow(0.5, 1/float64(hl))}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.s.Stream(samples)
	for i := 0; i < n; i++ {
		var gain float64
		if d.pos < d.attack {
			gain = float64(d.pos) / float64(d.attack)
		} else {
			gain = math.Pow(d.k, float64(d.pos-d.attack))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.s.Err() }

// gain scales a stream linearly. math.Log2(0) is -Inf, so zero is silence.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// LaserZap is a short falling square-wave chirp.
func LaserZap(rate beep.SampleRate, volume float64) beep.Streamer {
	tone := NewSweep(1800, 350, laserDuration, WaveSquare, rate)
	return gain(NewDecay(tone, 3*time.Millisecond, 30*time.Millisecond, rate), 0.35*volume)
}

// ExplosionRumble is filtered noise over a low falling tone.
func ExplosionRumble(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewSweep(0, 0, explosionDuration, WaveNoise, rate)
	rumble := NewSweep(90, 40, explosionDuration, WaveSine, rate)
	mixed := beep.Take(rate.N(explosionDuration), beep.Mix(gain(noise, 0.45), gain(rumble, 0.55)))
	return gain(NewDecay(mixed, 5*time.Millisecond, 120*time.Millisecond, rate), volume)
}
