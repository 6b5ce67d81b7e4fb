package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestBadge(t *testing.T) *Badge {
	t.Helper()
	b, err := New(DefaultConfig())
	require.NoError(t, err)
	return b
}

func framePaths(t *testing.T, b *Badge, at time.Duration) (small, big *Path) {
	t.Helper()
	s, err := b.Frame(at)
	require.NoError(t, err)
	paths := s.AllPaths()
	require.Len(t, paths, 2)
	return paths[0], paths[1]
}

func TestDescriptors(t *testing.T) {
	b := newTestBadge(t)
	d := b.Descriptors()
	require.Len(t, d, 2)

	require.Equal(t, "small", d[SmallArc].Name)
	require.Equal(t, Angles{45, 135}, d[SmallArc].Angles)
	require.False(t, d[SmallArc].Fixed)

	require.Equal(t, "big", d[BigArc].Name)
	require.Equal(t, Angles{143, 397}, d[BigArc].Angles)
	require.True(t, d[BigArc].Fixed)
}

func TestStageAngles(t *testing.T) {
	b := newTestBadge(t)

	require.Equal(t, Angles{90, 90}, b.SmallArc(0))
	require.Equal(t, Angles{45, 135}, b.SmallArc(1))

	require.Equal(t, Angles{270, 270}, b.BigArcOutline(0))
	require.Equal(t, Angles{360, 180}, b.BigArcOutline(1))

	a, fix := b.BigArcSettle(0)
	require.Equal(t, Angles{180, 360}, a)
	require.Equal(t, 0.0, fix)

	a, fix = b.BigArcSettle(1)
	require.Equal(t, Angles{143, 397}, a)
	require.Equal(t, 6.0, fix)
}

func TestTimelineStages(t *testing.T) {
	b := newTestBadge(t)
	stages := b.Timeline().Stages()
	require.Len(t, stages, 3)

	want := []struct {
		name            string
		target          int
		delay, duration time.Duration
	}{
		{"small", SmallArc, 200 * time.Millisecond, 450 * time.Millisecond},
		{"big-outline", BigArc, 650 * time.Millisecond, 700 * time.Millisecond},
		{"big-settle", BigArc, 1350 * time.Millisecond, 250 * time.Millisecond},
	}
	for i, w := range want {
		require.Equal(t, w.name, stages[i].Name)
		require.Equal(t, w.target, stages[i].Target)
		require.Equal(t, w.delay, stages[i].Delay)
		require.Equal(t, w.duration, stages[i].Duration)
	}
	require.Equal(t, 1600*time.Millisecond, b.Timeline().Duration())
}

func TestFrameBeforeStart(t *testing.T) {
	b := newTestBadge(t)
	small, big := framePaths(t, b, 199*time.Millisecond)
	require.Empty(t, small.D)
	require.Empty(t, big.D)
	require.Equal(t, "#C00", small.Fill)
	require.Equal(t, "#402724", big.Fill)
	require.Equal(t, "piece", small.Class)
}

func TestFrameHalfway(t *testing.T) {
	b := newTestBadge(t)
	small, big := framePaths(t, b, 425*time.Millisecond)
	require.Equal(t, "M236.51316,-97.966959A256,256 0 0,1 236.51316,97.966959L134.886412,55.871781A146,146 0 0,0 134.886412,-55.871781Z", small.D)
	require.Empty(t, big.D)
}

func TestFrameOutline(t *testing.T) {
	b := newTestBadge(t)
	small, big := framePaths(t, b, 1349*time.Millisecond)
	require.Equal(t, smallFinal, small.D)

	data, err := big.Data()
	require.NoError(t, err)
	require.Equal(t, "MALAZ", data.Shape())
}

func TestFinal(t *testing.T) {
	b := newTestBadge(t)
	s, err := b.Final()
	require.NoError(t, err)

	require.Equal(t, 512.0, s.Width)
	require.Equal(t, 512.0, s.Height)
	require.Equal(t, "0 0 512 512", s.ViewBox)
	require.Len(t, s.Groups, 1)
	require.Equal(t, "translate(256, 256)", s.Groups[0].TransformString)

	paths := s.AllPaths()
	require.Equal(t, smallFinal, paths[0].D)
	require.Equal(t, bigPatched, paths[1].D)

	after, err := b.Frame(time.Hour)
	require.NoError(t, err)
	require.Equal(t, bigPatched, after.AllPaths()[1].D)
}

func TestFramesArePure(t *testing.T) {
	b := newTestBadge(t)
	first, err := b.Frame(900 * time.Millisecond)
	require.NoError(t, err)
	_, err = b.Frame(1500 * time.Millisecond)
	require.NoError(t, err)
	again, err := b.Frame(900 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, first.AllPaths()[1].D, again.AllPaths()[1].D)
}

func TestFrameTimes(t *testing.T) {
	b := newTestBadge(t)

	times, err := b.FrameTimes(10)
	require.NoError(t, err)
	require.Len(t, times, 17)
	require.Equal(t, time.Duration(0), times[0])
	require.Equal(t, 1600*time.Millisecond, times[len(times)-1])

	_, err = b.FrameTimes(0)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"width":          func(c *Config) { c.Width = 0 },
		"thickness":      func(c *Config) { c.Thickness = -1 },
		"no inner ring":  func(c *Config) { c.Thickness = 256 },
		"negative delay": func(c *Config) { c.BigDelay = -time.Second },
		"easing":         func(c *Config) { c.Ease = "elastic" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
			_, err := New(cfg)
			require.Error(t, err)
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}

func TestCustomGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Thickness = 40
	cfg.Ease = "cubic-in-out"
	b, err := New(cfg)
	require.NoError(t, err)

	s, err := b.Final()
	require.NoError(t, err)
	require.Equal(t, "translate(100, 100)", s.Groups[0].TransformString)

	data, err := s.AllPaths()[0].Data()
	require.NoError(t, err)
	require.Equal(t, Tuple{100, 100}, data.Segments[1].Radius)
	require.Equal(t, Tuple{60, 60}, data.Segments[3].Radius)
}
