package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockSinceResume(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := newClockWith(ft.now)

	ft.advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, c.Since())
	assert.InDelta(t, 1.5, c.Seconds(), 1e-6)

	c.Pause()
	ft.advance(10 * time.Second)
	assert.True(t, c.Paused())
	assert.Equal(t, 1500*time.Millisecond, c.Since(), "paused clock is frozen")

	c.Resume()
	assert.Zero(t, c.Since(), "resume restarts from zero")
	ft.advance(time.Second)
	assert.Equal(t, time.Second, c.Since())
}

func TestClockPauseTwice(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newClockWith(ft.now)
	ft.advance(time.Second)
	c.Pause()
	ft.advance(time.Second)
	c.Pause()
	assert.Equal(t, time.Second, c.Since())
}

func TestPacer(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	p := newPacerWith(30, ft.now)
	assert.Equal(t, time.Second/30, p.Interval())

	p.Begin()
	ft.advance(10 * time.Millisecond)
	assert.Equal(t, time.Second/30-10*time.Millisecond, p.Remaining())

	ft.advance(100 * time.Millisecond)
	assert.Zero(t, p.Remaining(), "slow frames do not wait")
}

func TestPacerUnlimited(t *testing.T) {
	p := NewPacer(0)
	p.Begin()
	assert.Zero(t, p.Remaining())
}
