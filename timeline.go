package badge

import (
	"fmt"
	"sort"
	"time"
)

// RenderFunc produces the path of an element at eased stage progress t.
type RenderFunc func(t float64) (*PathData, error)

// Stage is one phase of an animation: during [Delay, Delay+Duration] the
// Target element is drawn by Render. Delay is measured from the start of
// the timeline.
type Stage struct {
	Name     string
	Target   int
	Delay    time.Duration
	Duration time.Duration
	Ease     Easing
	Render   RenderFunc
}

// End returns the time at which the stage completes.
func (s Stage) End() time.Duration {
	return s.Delay + s.Duration
}

// Progress returns the eased progress of the stage at elapsed. It is 0
// before the stage starts and 1 once it has ended.
func (s Stage) Progress(elapsed time.Duration) float64 {
	ease := s.Ease
	if ease == nil {
		ease = Linear
	}
	if s.Duration <= 0 {
		if elapsed < s.Delay {
			return ease(0)
		}
		return ease(1)
	}
	return ease(float64(elapsed-s.Delay) / float64(s.Duration))
}

// Timeline is an ordered list of stages evaluated by a single driver.
// Stages of the same target must not overlap; a later stage takes over
// from an earlier one as soon as it starts.
type Timeline struct {
	stages []Stage
}

// NewTimeline orders stages by start time.
func NewTimeline(stages ...Stage) *Timeline {
	s := make([]Stage, len(stages))
	copy(s, stages)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Delay < s[j].Delay })
	return &Timeline{stages: s}
}

// Stages returns the stages in start order.
func (tl *Timeline) Stages() []Stage {
	return tl.stages
}

// Duration returns the time at which the last stage completes.
func (tl *Timeline) Duration() time.Duration {
	var d time.Duration
	for _, s := range tl.stages {
		if e := s.End(); e > d {
			d = e
		}
	}
	return d
}

// Active returns, for every target, the index of the latest stage that has
// started at elapsed. Targets with no started stage are absent.
func (tl *Timeline) Active(elapsed time.Duration) map[int]int {
	active := make(map[int]int)
	for i, s := range tl.stages {
		if elapsed >= s.Delay {
			active[s.Target] = i
		}
	}
	return active
}

// Evaluate renders every target at elapsed. Targets whose first stage has
// not begun yet have no entry in the result.
func (tl *Timeline) Evaluate(elapsed time.Duration) (map[int]*PathData, error) {
	out := make(map[int]*PathData)
	for target, i := range tl.Active(elapsed) {
		s := tl.stages[i]
		p, err := s.Render(s.Progress(elapsed))
		if err != nil {
			return nil, fmt.Errorf("stage %s at %s: %w", s.Name, elapsed, err)
		}
		out[target] = p
	}
	return out, nil
}
