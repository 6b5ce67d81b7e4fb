package badge

import "fmt"

// MalformedPathError reports path data that cannot be parsed or does not
// have the shape an operation expects.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Path, e.Reason)
}

const sectorShape = "MALAZ"

// Indexes of the inner corners in an annulus sector.
const (
	endCorner   = 2
	startCorner = 3
)

func checkSector(p *PathData) error {
	if shape := p.Shape(); shape != sectorShape {
		return &MalformedPathError{
			Path:   p.String(),
			Reason: fmt.Sprintf("corner patch needs an annulus sector (%s), got %s", sectorShape, shape),
		}
	}
	return nil
}

// PatchEndCorner moves the inner end corner of an annulus sector, the target
// of its line-to, onto the inner circle at endAngle (degrees) shifted by fix
// degrees. p is left untouched.
func PatchEndCorner(p *PathData, radius, endAngle, fix float64) (*PathData, error) {
	if err := checkSector(p); err != nil {
		return nil, err
	}
	out := p.Clone()
	out.Segments[endCorner].Point = AngleToPoint(radius, Radians(endAngle), fix)
	return out, nil
}

// PatchStartCorner moves the inner start corner of an annulus sector, the
// last point before close-path, onto the inner circle at startAngle
// (degrees) shifted by fix degrees. p is left untouched.
func PatchStartCorner(p *PathData, radius, startAngle, fix float64) (*PathData, error) {
	if err := checkSector(p); err != nil {
		return nil, err
	}
	out := p.Clone()
	out.Segments[startCorner].Point = AngleToPoint(radius, Radians(startAngle), fix)
	return out, nil
}

// PatchCorners pulls both inner corners of a sector towards each other by
// fix degrees: the end corner with -fix, then the start corner with +fix.
// Every other segment is kept as is.
func PatchCorners(p *PathData, radius float64, a Angles, fix float64) (*PathData, error) {
	out, err := PatchEndCorner(p, radius, a.End, -fix)
	if err != nil {
		return nil, err
	}
	return PatchStartCorner(out, radius, a.Start, fix)
}

// PatchPathString applies PatchCorners to rendered path data.
func PatchPathString(d string, radius float64, a Angles, fix float64) (string, error) {
	p, err := ParsePathData(d)
	if err != nil {
		return "", err
	}
	out, err := PatchCorners(p, radius, a, fix)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
