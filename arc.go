package badge

import "math"

// arcEpsilon is the tolerance below a full turn at which an arc is drawn as
// a complete ring.
const arcEpsilon = 1e-6

// ArcGenerator builds annulus sector path data from a pair of angles, the
// way d3's arc generator does: angles are in degrees, 0 points up and
// positive angles turn clockwise. The generated path is centered on the
// origin.
type ArcGenerator struct {
	InnerRadius float64
	OuterRadius float64
}

// Generate returns the path of the ring segment between a.Start and a.End.
//
// An annulus sector has the shape M A L A Z: the outer edge from the start
// angle to the end angle, a line to the inner end corner, the inner edge
// back to the inner start corner, close. A full turn or more is drawn as two
// concentric circles instead, and a zero inner radius closes through the
// origin.
func (g ArcGenerator) Generate(a Angles) *PathData {
	r0 := math.Max(0, g.InnerRadius)
	r1 := math.Max(0, g.OuterRadius)
	if r1 < r0 {
		r0, r1 = r1, r0
	}

	a0 := Radians(a.Start) - math.Pi/2
	a1 := Radians(a.End) - math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a0 <= a1

	p := &PathData{}
	if da >= 2*math.Pi-arcEpsilon {
		circleSegment(p, r1, cw)
		if r0 > 0 {
			circleSegment(p, r0, !cw)
		}
		p.Close()
		return p
	}

	large := da > math.Pi
	if r1 > 0 {
		p.MoveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.ArcTo(r1, large, cw, r1*math.Cos(a1), r1*math.Sin(a1))
	} else {
		p.MoveTo(0, 0)
	}
	if r0 > 0 {
		p.LineTo(r0*math.Cos(a1), r0*math.Sin(a1))
		p.ArcTo(r0, large, !cw, r0*math.Cos(a0), r0*math.Sin(a0))
	} else {
		p.LineTo(0, 0)
	}
	p.Close()
	return p
}

func circleSegment(p *PathData, r float64, cw bool) {
	p.MoveTo(0, r)
	p.ArcTo(r, true, cw, 0, -r)
	p.ArcTo(r, true, cw, 0, r)
}
