package badge

// Angles is a start/end angle pair in degrees.
type Angles struct {
	Start float64 `mapstructure:"start"`
	End   float64 `mapstructure:"end"`
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate returns the angles at progress t between from and to. It
// never modifies its arguments; every frame gets a fresh value.
func Interpolate(from, to Angles, t float64) Angles {
	return Angles{
		Start: Lerp(from.Start, to.Start, t),
		End:   Lerp(from.End, to.End, t),
	}
}
