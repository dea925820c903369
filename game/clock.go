package game

import "time"

// Clock supplies the time weapons measure their cooldowns against.
type Clock interface {
	Now() time.Duration
}

// SimClock derives time from the tick count, so runs are independent of
// how fast the host steps them.
type SimClock struct {
	FPS  int
	tick int64
}

// Advance moves the clock one tick forward.
func (c *SimClock) Advance() {
	c.tick++
}

// Now implements Clock. Integer arithmetic keeps tick boundaries exact.
func (c *SimClock) Now() time.Duration {
	return time.Duration(c.tick) * time.Second / time.Duration(c.FPS)
}

// WallClock reports monotonic time since it was started.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now implements Clock.
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}
