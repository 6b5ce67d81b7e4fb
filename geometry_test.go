package badge

import (
	"math"
	"testing"

	"github.com/cheekybits/is"
	"github.com/stretchr/testify/require"
)

func TestAngleToPoint(t *testing.T) {
	cases := []struct {
		angle, fix float64
		want       Tuple
	}{
		{0, 0, Tuple{0, -100}},
		{math.Pi / 2, 0, Tuple{100, 0}},
		{math.Pi, 0, Tuple{0, 100}},
		{0, 90, Tuple{100, 0}},
		{math.Pi / 2, -90, Tuple{0, -100}},
	}
	for _, c := range cases {
		got := AngleToPoint(100, c.angle, c.fix)
		require.InDelta(t, c.want[0], got[0], 1e-9, "angle %v fix %v", c.angle, c.fix)
		require.InDelta(t, c.want[1], got[1], 1e-9, "angle %v fix %v", c.angle, c.fix)
	}
}

func TestAngleToPointStaysOnCircle(t *testing.T) {
	for deg := -720.0; deg <= 720; deg += 17.5 {
		p := AngleToPoint(146, Radians(deg), 3)
		require.InDelta(t, 146, math.Hypot(p[0], p[1]), 1e-9)
	}
}

func TestRadians(t *testing.T) {
	is := is.New(t)
	is.Equal(Radians(0), 0.0)
	is.True(math.Abs(Radians(180)-math.Pi) < 1e-12)
	is.True(math.Abs(Degrees(Radians(143))-143) < 1e-9)
}
