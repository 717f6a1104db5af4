package frame

import "time"

// Pacer spaces frames toward a preferred rate. The rate is a hint: a slow frame
// is not made up for by shortening the next one.
type Pacer struct {
	interval time.Duration
	start    time.Time
	now      func() time.Time
}

// NewPacer returns a pacer for fps frames per second; fps <= 0 disables waiting.
func NewPacer(fps int) *Pacer {
	return newPacerWith(fps, time.Now)
}

func newPacerWith(fps int, now func() time.Time) *Pacer {
	p := &Pacer{now: now}
	if fps > 0 {
		p.interval = time.Second / time.Duration(fps)
	}
	return p
}

func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Begin marks the start of a frame.
func (p *Pacer) Begin() {
	p.start = p.now()
}

// Elapsed reports the time since Begin.
func (p *Pacer) Elapsed() time.Duration {
	return p.now().Sub(p.start)
}

// Remaining is how long to wait before the next frame may start.
func (p *Pacer) Remaining() time.Duration {
	if p.interval == 0 {
		return 0
	}
	if left := p.interval - p.Elapsed(); left > 0 {
		return left
	}
	return 0
}
