// Package badge draws a circular badge made of two arcs, a small one and a
// big one, and animates its entrance: the small arc grows from the right,
// the big arc sweeps in from the left and finally settles next to the small
// arc while its inner corners are pulled in to keep the gap between the two
// arcs even.
package badge

import (
	"errors"
	"fmt"
	"time"
)

// Angles every stage starts from, in degrees.
const (
	smallBaseline = 90.0
	bigBaseline   = 270.0
)

var (
	bigOutlineTarget = Angles{Start: 360, End: 180}
	bigSettleFrom    = Angles{Start: 180, End: 360}
)

// Targets of the timeline.
const (
	SmallArc = iota
	BigArc
)

// Config holds the tunables of a badge. Angles are in degrees, delays are
// measured from the start of the animation.
type Config struct {
	// Width is the side of the square canvas.
	Width float64 `mapstructure:"width"`
	// Thickness is the distance between the outer and the inner radius.
	Thickness float64 `mapstructure:"thickness"`
	// SpaceAngle is the gap between the two arcs.
	SpaceAngle float64 `mapstructure:"space_angle"`
	// OffsetAngle is where the small arc starts, clockwise from the top.
	OffsetAngle float64 `mapstructure:"offset_angle"`
	Small       float64 `mapstructure:"small"`
	Big         float64 `mapstructure:"big"`
	// MagicAngleOffset is subtracted from SpaceAngle to get the final inner
	// corner correction of the big arc. Tuned by eye.
	MagicAngleOffset float64 `mapstructure:"magic_angle_offset"`

	SmallColor string `mapstructure:"small_color"`
	BigColor   string `mapstructure:"big_color"`

	// Ease names the easing of every stage, see EasingByName.
	Ease           string        `mapstructure:"ease"`
	SmallDelay     time.Duration `mapstructure:"small_delay"`
	SmallDuration  time.Duration `mapstructure:"small_duration"`
	BigDelay       time.Duration `mapstructure:"big_delay"`
	BigDuration    time.Duration `mapstructure:"big_duration"`
	BigFixDuration time.Duration `mapstructure:"big_fix_duration"`
}

// DefaultConfig returns the stock badge: 512px wide, a 90 degree red arc and
// a 254 degree brown arc 8 degrees apart.
func DefaultConfig() Config {
	return Config{
		Width:            512,
		Thickness:        110,
		SpaceAngle:       8,
		OffsetAngle:      45,
		Small:            90,
		Big:              254,
		MagicAngleOffset: 2,
		SmallColor:       "#C00",
		BigColor:         "#402724",
		Ease:             "linear",
		SmallDelay:       200 * time.Millisecond,
		SmallDuration:    450 * time.Millisecond,
		BigDelay:         650 * time.Millisecond,
		BigDuration:      700 * time.Millisecond,
		BigFixDuration:   250 * time.Millisecond,
	}
}

// Radius returns the outer radius.
func (c Config) Radius() float64 {
	return c.Width / 2
}

// InnerRadius returns the inner radius.
func (c Config) InnerRadius() float64 {
	return c.Radius() - c.Thickness
}

// Validate reports the first setting that cannot produce a badge.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return errors.New("width must be positive")
	case c.Thickness <= 0:
		return errors.New("thickness must be positive")
	case c.InnerRadius() <= 0:
		return fmt.Errorf("thickness %v leaves no inner radius for width %v", c.Thickness, c.Width)
	case c.SmallDelay < 0, c.SmallDuration < 0, c.BigDelay < 0, c.BigDuration < 0, c.BigFixDuration < 0:
		return errors.New("delays and durations must not be negative")
	}
	if _, err := EasingByName(c.Ease); err != nil {
		return err
	}
	return nil
}

// Descriptor is one of the two arcs of a badge. Fixed marks the big arc,
// the one whose inner corners get patched.
type Descriptor struct {
	Name   string
	Color  string
	Fixed  bool
	Angles Angles
}

// Badge is a configured two-arc badge with its entrance animation.
type Badge struct {
	cfg      Config
	arc      ArcGenerator
	small    Descriptor
	big      Descriptor
	timeline *Timeline
}

// New builds a badge from cfg.
func New(cfg Config) (*Badge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid badge config: %w", err)
	}
	ease, _ := EasingByName(cfg.Ease)

	b := &Badge{
		cfg: cfg,
		arc: ArcGenerator{InnerRadius: cfg.InnerRadius(), OuterRadius: cfg.Radius()},
		small: Descriptor{
			Name:  "small",
			Color: cfg.SmallColor,
			Angles: Angles{
				Start: cfg.OffsetAngle,
				End:   cfg.OffsetAngle + cfg.Small,
			},
		},
		big: Descriptor{
			Name:  "big",
			Color: cfg.BigColor,
			Fixed: true,
			Angles: Angles{
				Start: cfg.OffsetAngle + cfg.Small + cfg.SpaceAngle,
				End:   cfg.OffsetAngle + cfg.Small + cfg.SpaceAngle + cfg.Big,
			},
		},
	}

	settleDelay := cfg.BigDelay + cfg.BigDuration
	b.timeline = NewTimeline(
		Stage{
			Name:     "small",
			Target:   SmallArc,
			Delay:    cfg.SmallDelay,
			Duration: cfg.SmallDuration,
			Ease:     ease,
			Render: func(t float64) (*PathData, error) {
				return b.arc.Generate(b.SmallArc(t)), nil
			},
		},
		Stage{
			Name:     "big-outline",
			Target:   BigArc,
			Delay:    cfg.BigDelay,
			Duration: cfg.BigDuration,
			Ease:     ease,
			Render: func(t float64) (*PathData, error) {
				return b.arc.Generate(b.BigArcOutline(t)), nil
			},
		},
		Stage{
			Name:     "big-settle",
			Target:   BigArc,
			Delay:    settleDelay,
			Duration: cfg.BigFixDuration,
			Ease:     ease,
			Render: func(t float64) (*PathData, error) {
				a, fix := b.BigArcSettle(t)
				return PatchCorners(b.arc.Generate(a), cfg.InnerRadius(), a, fix)
			},
		},
	)
	return b, nil
}

// Config returns the configuration the badge was built with.
func (b *Badge) Config() Config {
	return b.cfg
}

// Descriptors returns the small and the big arc, in timeline target order.
func (b *Badge) Descriptors() []Descriptor {
	return []Descriptor{b.small, b.big}
}

// Timeline returns the entrance animation.
func (b *Badge) Timeline() *Timeline {
	return b.timeline
}

// SmallArc returns the small arc's angles at progress t: both ends grow
// out of the 90 degree mark.
func (b *Badge) SmallArc(t float64) Angles {
	return Interpolate(Angles{Start: smallBaseline, End: smallBaseline}, b.small.Angles, t)
}

// BigArcOutline returns the big arc's angles during its first stage: both
// ends open from the 270 degree mark into the left half circle.
func (b *Badge) BigArcOutline(t float64) Angles {
	return Interpolate(Angles{Start: bigBaseline, End: bigBaseline}, bigOutlineTarget, t)
}

// BigArcSettle returns the big arc's angles during its second stage along
// with the inner corner correction in degrees, which grows from 0 to
// SpaceAngle - MagicAngleOffset.
func (b *Badge) BigArcSettle(t float64) (Angles, float64) {
	fix := Lerp(0, b.cfg.SpaceAngle-b.cfg.MagicAngleOffset, t)
	return Interpolate(bigSettleFrom, b.big.Angles, t), fix
}

// Frame returns the scene at elapsed time since the animation started.
func (b *Badge) Frame(elapsed time.Duration) (*Svg, error) {
	paths, err := b.timeline.Evaluate(elapsed)
	if err != nil {
		return nil, err
	}
	return b.scene(paths)
}

// Final returns the scene once the animation is over.
func (b *Badge) Final() (*Svg, error) {
	return b.Frame(b.timeline.Duration())
}

// FrameTimes returns the instants at which a host running at fps frames
// per second samples the animation, the completion time included.
func (b *Badge) FrameTimes(fps int) ([]time.Duration, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	step := time.Second / time.Duration(fps)
	total := b.timeline.Duration()

	var times []time.Duration
	for at := time.Duration(0); at < total; at += step {
		times = append(times, at)
	}
	return append(times, total), nil
}

func (b *Badge) scene(paths map[int]*PathData) (*Svg, error) {
	r := formatNumber(b.cfg.Radius())
	g := Group{TransformString: fmt.Sprintf("translate(%s, %s)", r, r)}
	t, err := parseTransform(g.TransformString)
	if err != nil {
		return nil, err
	}
	g.Transform = &t

	for i, d := range b.Descriptors() {
		p := &Path{ID: d.Name, Class: "piece", Fill: d.Color}
		if data, ok := paths[i]; ok {
			p.D = data.String()
		}
		g.Paths = append(g.Paths, p)
	}

	w := formatNumber(b.cfg.Width)
	s := &Svg{
		Xmlns:   svgNamespace,
		Width:   b.cfg.Width,
		Height:  b.cfg.Width,
		ViewBox: fmt.Sprintf("0 0 %s %s", w, w),
		Groups:  []Group{g},
	}
	s.setOwners()
	return s, nil
}
