package badge

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnimated(t *testing.T) {
	b := newTestBadge(t)
	s, err := b.Animated(60)
	require.NoError(t, err)

	paths := s.AllPaths()
	require.Len(t, paths, 2)
	require.Equal(t, smallFinal, paths[0].D)
	require.Equal(t, bigPatched, paths[1].D)

	for _, p := range paths {
		require.Len(t, p.Animations, 1, p.ID)
		a := p.Animations[0]
		require.Equal(t, "d", a.AttributeName)
		require.Equal(t, "discrete", a.CalcMode)
		require.Equal(t, "freeze", a.Fill)
		require.Equal(t, "1.6s", a.Dur)

		values := strings.Split(a.Values, ";")
		keyTimes := strings.Split(a.KeyTimes, ";")
		require.Equal(t, len(values), len(keyTimes), p.ID)
		require.Equal(t, emptyPath, values[0], p.ID)
		require.Equal(t, "0", keyTimes[0], p.ID)
		require.Equal(t, p.D, values[len(values)-1], p.ID)

		last := -1.0
		for _, k := range keyTimes {
			v, err := strconv.ParseFloat(k, 64)
			require.NoError(t, err)
			require.Greater(t, v, last)
			require.LessOrEqual(t, v, 1.0)
			last = v
		}
		for i := 1; i < len(values); i++ {
			require.NotEqual(t, values[i-1], values[i], "consecutive values are merged")
		}
	}
}

func TestWriteAnimated(t *testing.T) {
	b := newTestBadge(t)

	var buf bytes.Buffer
	require.NoError(t, b.WriteAnimated(&buf, 30))
	out := buf.String()
	require.Contains(t, out, `<animate attributeName="d"`)
	require.Contains(t, out, `calcMode="discrete"`)

	back, err := ParseSvg(out, "animated")
	require.NoError(t, err)
	for _, p := range back.AllPaths() {
		require.Len(t, p.Animations, 1)
	}

	require.Error(t, b.WriteAnimated(&buf, 0))
}

func TestAnimatedKeyTimesIncrease(t *testing.T) {
	b := newTestBadge(t)
	for _, fps := range []int{24, 30, 60, 90, 1000} {
		t.Run(fmt.Sprint(fps), func(t *testing.T) {
			s, err := b.Animated(fps)
			require.NoError(t, err)
			for _, p := range s.AllPaths() {
				a := p.Animations[0]
				values := strings.Split(a.Values, ";")
				keyTimes := strings.Split(a.KeyTimes, ";")
				require.Equal(t, len(values), len(keyTimes), p.ID)
				require.Equal(t, p.D, values[len(values)-1], p.ID)
				for i := 1; i < len(keyTimes); i++ {
					require.NotEqual(t, keyTimes[i-1], keyTimes[i], "%s keyTimes %s", p.ID, a.KeyTimes)
					prev, err := strconv.ParseFloat(keyTimes[i-1], 64)
					require.NoError(t, err)
					cur, err := strconv.ParseFloat(keyTimes[i], 64)
					require.NoError(t, err)
					require.Greater(t, cur, prev, p.ID)
				}
			}
		})
	}
}

func TestAddKeyFrame(t *testing.T) {
	var values, keyTimes []string
	values, keyTimes = addKeyFrame(values, keyTimes, "a", "0")
	values, keyTimes = addKeyFrame(values, keyTimes, "a", "0.5")
	require.Equal(t, []string{"a"}, values)

	values, keyTimes = addKeyFrame(values, keyTimes, "b", "0.9")
	values, keyTimes = addKeyFrame(values, keyTimes, "c", "1")
	// same printed keyTime, the later sample wins
	values, keyTimes = addKeyFrame(values, keyTimes, "d", "1")
	require.Equal(t, []string{"a", "b", "d"}, values)
	require.Equal(t, []string{"0", "0.9", "1"}, keyTimes)

	// replacing with the value before it merges both
	values, keyTimes = addKeyFrame(values, keyTimes, "b", "1")
	require.Equal(t, []string{"a", "b"}, values)
	require.Equal(t, []string{"0", "0.9"}, keyTimes)
}
