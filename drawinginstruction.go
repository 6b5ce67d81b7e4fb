package badge

import (
	"math"

	mt "github.com/rustyoz/Mtransform"
)

// InstructionType tells our path drawing library which function it has
// to call
type InstructionType int

// These are instruction types that we use with our path drawing library
const (
	MoveInstruction InstructionType = iota
	LineInstruction
	CurveInstruction
	CloseInstruction
	PaintInstruction
)

// DrawingInstruction contains enough information that a simple drawing
// library can fill the shapes of a badge. Arcs are already flattened into
// cubic curves.
type DrawingInstruction struct {
	Kind InstructionType
	M    *Tuple
	C1   *Tuple
	C2   *Tuple
	T    *Tuple
	Fill *string
}

// Instructions converts d into drawing instructions with every point
// passed through t.
func (d *PathData) Instructions(t mt.Transform) []*DrawingInstruction {
	var (
		instrs []*DrawingInstruction
		cur    Tuple
		start  Tuple
	)
	apply := func(p Tuple) *Tuple {
		x, y := t.Apply(p[0], p[1])
		return &Tuple{x, y}
	}

	for _, s := range d.Segments {
		switch s.Cmd {
		case MoveTo:
			cur, start = s.Point, s.Point
			instrs = append(instrs, &DrawingInstruction{Kind: MoveInstruction, M: apply(s.Point)})
		case LineTo:
			cur = s.Point
			instrs = append(instrs, &DrawingInstruction{Kind: LineInstruction, M: apply(s.Point)})
		case ArcTo:
			curves := arcToCubics(cur, s)
			if curves == nil {
				instrs = append(instrs, &DrawingInstruction{Kind: LineInstruction, M: apply(s.Point)})
			}
			for _, c := range curves {
				instrs = append(instrs, &DrawingInstruction{
					Kind: CurveInstruction,
					C1:   apply(c[0]),
					C2:   apply(c[1]),
					T:    apply(c[2]),
				})
			}
			cur = s.Point
		case ClosePath:
			cur = start
			instrs = append(instrs, &DrawingInstruction{Kind: CloseInstruction})
		}
	}
	return instrs
}

// arcToCubics approximates the SVG elliptical arc from p0 described by s
// with cubic Béziers of at most 90 degrees each. It returns nil when the
// arc degenerates into a straight line.
func arcToCubics(p0 Tuple, s Segment) [][3]Tuple {
	p1 := s.Point
	rx, ry := math.Abs(s.Radius[0]), math.Abs(s.Radius[1])
	if rx == 0 || ry == 0 || p0 == p1 {
		return nil
	}

	phi := Radians(s.Rotation)
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// endpoint to center parameterization, SVG 1.1 appendix F.6.5
	dx2 := (p0[0] - p1[0]) / 2
	dy2 := (p0[1] - p1[1]) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		k := math.Sqrt(lambda)
		rx *= k
		ry *= k
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if num > 0 && den > 0 {
		coef = math.Sqrt(num / den)
	}
	if s.LargeArc == s.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (p0[0]+p1[0])/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0[1]+p1[1])/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := vectorAngle(1, 0, ux, uy)
	delta := vectorAngle(ux, uy, vx, vy)
	if !s.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if s.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	point := func(ex, ey float64) Tuple {
		return Tuple{
			cx + rx*ex*cosPhi - ry*ey*sinPhi,
			cy + rx*ex*sinPhi + ry*ey*cosPhi,
		}
	}

	curves := make([][3]Tuple, 0, n)
	for i := 0; i < n; i++ {
		a1 := theta + float64(i)*step
		a2 := a1 + step
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		cos2, sin2 := math.Cos(a2), math.Sin(a2)

		c1 := point(cos1-alpha*sin1, sin1+alpha*cos1)
		c2 := point(cos2+alpha*sin2, sin2-alpha*cos2)
		end := point(cos2, sin2)
		if i == n-1 {
			end = p1
		}
		curves = append(curves, [3]Tuple{c1, c2, end})
	}
	return curves
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
