package badge

import (
	"time"
)

// Player walks the timeline of a badge at a fixed tick, the way a frame
// loop does. It plays once and stays on the last frame.
type Player struct {
	badge   *Badge
	step    time.Duration
	elapsed time.Duration
	total   time.Duration
}

// NewPlayer returns a player advancing step per tick.
func (b *Badge) NewPlayer(step time.Duration) *Player {
	if step <= 0 {
		step = time.Second / 60
	}
	return &Player{badge: b, step: step, total: b.timeline.Duration()}
}

// Tick advances the clock by one step and reports whether the animation
// is still running.
func (p *Player) Tick() bool {
	if p.Done() {
		return false
	}
	p.elapsed += p.step
	if p.elapsed > p.total {
		p.elapsed = p.total
	}
	return true
}

func (p *Player) Elapsed() time.Duration { return p.elapsed }

func (p *Player) Total() time.Duration { return p.total }

func (p *Player) Done() bool { return p.elapsed >= p.total }

// Frame is the scene at the current position.
func (p *Player) Frame() (*Svg, error) {
	return p.badge.Frame(p.elapsed)
}
