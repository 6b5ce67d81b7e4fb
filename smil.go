package badge

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// emptyPath stands in for an element that is not drawn yet. SMIL cannot
// remove an attribute, so the element collapses to a single point instead.
const emptyPath = "M0,0Z"

// Animate is an SVG (SMIL) animate element
type Animate struct {
	AttributeName string `xml:"attributeName,attr"`
	Values        string `xml:"values,attr"`
	KeyTimes      string `xml:"keyTimes,attr,omitempty"`
	Begin         string `xml:"begin,attr,omitempty"`
	Dur           string `xml:"dur,attr"`
	Fill          string `xml:"fill,attr,omitempty"`
	CalcMode      string `xml:"calcMode,attr,omitempty"`
}

// addKeyFrame appends d at keyTime kt. Discrete animations only need the
// instants where d changes, and a sample whose keyTime prints the same as
// the previous one replaces it, since keyTimes must strictly increase.
func addKeyFrame(values, keyTimes []string, d, kt string) ([]string, []string) {
	n := len(values)
	switch {
	case n > 0 && keyTimes[n-1] == kt:
		values[n-1] = d
		if n > 1 && values[n-2] == d {
			values, keyTimes = values[:n-1], keyTimes[:n-1]
		}
	case n > 0 && values[n-1] == d:
	default:
		values = append(values, d)
		keyTimes = append(keyTimes, kt)
	}
	return values, keyTimes
}

// Animated returns the final scene with every path carrying a discrete
// animation of its `d` attribute, sampled fps times per second. Browsers
// play it once on load and keep the last frame.
func (b *Badge) Animated(fps int) (*Svg, error) {
	times, err := b.FrameTimes(fps)
	if err != nil {
		return nil, err
	}
	total := b.timeline.Duration()
	if total <= 0 {
		total = time.Second / time.Duration(fps)
	}

	targets := len(b.Descriptors())
	values := make([][]string, targets)
	keyTimes := make([][]string, targets)
	for _, at := range times {
		paths, err := b.timeline.Evaluate(at)
		if err != nil {
			return nil, err
		}
		for i := 0; i < targets; i++ {
			d := emptyPath
			if p, ok := paths[i]; ok {
				d = p.String()
			}
			values[i], keyTimes[i] = addKeyFrame(values[i], keyTimes[i], d, formatKeyTime(at, total))
		}
	}

	s, err := b.Final()
	if err != nil {
		return nil, err
	}
	dur := strconv.FormatFloat(total.Seconds(), 'f', -1, 64) + "s"
	for i, p := range s.AllPaths() {
		if i >= targets {
			break
		}
		p.Animations = append(p.Animations, Animate{
			AttributeName: "d",
			Values:        strings.Join(values[i], ";"),
			KeyTimes:      strings.Join(keyTimes[i], ";"),
			Begin:         "0s",
			Dur:           dur,
			Fill:          "freeze",
			CalcMode:      "discrete",
		})
	}
	return s, nil
}

// WriteAnimated writes the animated badge as an SVG document.
func (b *Badge) WriteAnimated(w io.Writer, fps int) error {
	s, err := b.Animated(fps)
	if err != nil {
		return fmt.Errorf("animate badge: %w", err)
	}
	return s.Encode(w)
}

func formatKeyTime(at, total time.Duration) string {
	k := float64(at) / float64(total)
	if k > 1 {
		k = 1
	}
	return formatNumber(k)
}
