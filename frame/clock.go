// Package frame keeps time for the render loop: seconds since the last
// resume and pacing toward a target frame rate.
package frame

import "time"

// Clock measures time since the last resume. While paused Since stays frozen.
type Clock struct {
	now       func() time.Time
	resumedAt time.Time
	pausedAt  time.Time
	paused    bool
}

func NewClock() *Clock {
	return newClockWith(time.Now)
}

func newClockWith(now func() time.Time) *Clock {
	return &Clock{now: now, resumedAt: now()}
}

// Pause stops the clock, e.g. when the window is minimized.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.now()
}

// Resume restarts the clock from zero.
func (c *Clock) Resume() {
	c.paused = false
	c.resumedAt = c.now()
}

func (c *Clock) Paused() bool {
	return c.paused
}

// Since returns the time since the last resume.
func (c *Clock) Since() time.Duration {
	if c.paused {
		return c.pausedAt.Sub(c.resumedAt)
	}
	return c.now().Sub(c.resumedAt)
}

// Seconds is Since as the float the update hook expects.
func (c *Clock) Seconds() float32 {
	return float32(c.Since().Seconds())
}
