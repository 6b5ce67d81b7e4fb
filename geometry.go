package badge

import "math"

// Tuple is an X,Y coordinate
type Tuple [2]float64

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts an angle in radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngleToPoint returns the point at the given radius and angle. The angle is
// in radians with 0 pointing up and positive values turning clockwise, the
// convention of ArcGenerator. fix is an extra offset in degrees added to the
// angle.
func AngleToPoint(radius, angle, fix float64) Tuple {
	a := angle + Radians(fix) - math.Pi/2
	return Tuple{radius * math.Cos(a), radius * math.Sin(a)}
}
