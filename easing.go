package badge

import (
	"fmt"
	"sort"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return clamp01(t)
}

// CubicInOut is d3's default transition easing.
func CubicInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	t = 2*t - 2
	return t*t*t/2 + 1
}

var easings = map[string]Easing{
	"linear":       Linear,
	"cubic-in-out": CubicInOut,
}

// EasingByName looks up an easing function by the name d3 gives it.
func EasingByName(name string) (Easing, error) {
	if e, ok := easings[name]; ok {
		return e, nil
	}
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown easing %q, expected one of %v", name, names)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
