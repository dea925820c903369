package systems

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dogfight/components"
)

// Period returns the minimum time between two shots of a mount.
func Period(m *components.Mount) time.Duration {
	return time.Duration(float64(time.Second) / m.RateOfFire)
}

// Ready reports whether a mount has cooled down at time now.
func Ready(m *components.Mount, now time.Duration) bool {
	return now-m.LastShot >= Period(m)
}

// Prime makes a freshly built mount ready to fire at time zero.
func Prime(m *components.Mount) {
	m.LastShot = -Period(m)
}

// NextSalvo returns the mount indices that fire next in the current mode.
func NextSalvo(a *components.Armament) []int {
	mode := a.Modes[a.ModeIndex]
	return mode[a.SalvoIndex%len(mode)]
}

// SalvoReady reports whether every mount of the next salvo is ready.
// Partial salvos never fire.
func SalvoReady(a *components.Armament, now time.Duration) bool {
	for _, i := range NextSalvo(a) {
		if !Ready(&a.Mounts[i], now) {
			return false
		}
	}
	return true
}

// FireSalvo stamps the next salvo's mounts with now, advances the salvo
// index and holds back the following salvo so that salvos within a mode are
// spread evenly over one period. It returns the indices of the mounts that
// fired. Callers check SalvoReady first.
func FireSalvo(a *components.Armament, now time.Duration) []int {
	fired := NextSalvo(a)
	for _, i := range fired {
		a.Mounts[i].LastShot = now
	}

	n := len(a.Modes[a.ModeIndex])
	a.SalvoIndex = (a.SalvoIndex + 1) % n

	// The upcoming salvo becomes ready 1/n of a period from now.
	for _, i := range NextSalvo(a) {
		m := &a.Mounts[i]
		p := Period(m)
		m.LastShot = now - time.Duration(float64(p)*float64(n-1)/float64(n))
	}
	return fired
}

// TryFire fires the next salvo if it is ready.
func TryFire(a *components.Armament, now time.Duration) ([]int, bool) {
	if !SalvoReady(a, now) {
		return nil, false
	}
	return FireSalvo(a, now), true
}

// ToggleFireMode cycles to the next fire mode and restarts its salvo order.
// Mount cooldowns carry over.
func ToggleFireMode(a *components.Armament) {
	a.ModeIndex = (a.ModeIndex + 1) % len(a.Modes)
	a.SalvoIndex = 0
}

// MuzzlePose returns where a mount's projectile appears and its heading.
func MuzzlePose(b *components.Body, m *components.Mount) (r2.Vec, float64) {
	return r2.Add(b.Center, RotateOffset(m.Offset, b.Heading)), b.Heading
}
