package badge

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"
)

// Path is an SVG XML path element
type Path struct {
	ID              string    `xml:"id,attr,omitempty"`
	Class           string    `xml:"class,attr,omitempty"`
	Fill            string    `xml:"fill,attr,omitempty"`
	D               string    `xml:"d,attr,omitempty"`
	Style           string    `xml:"style,attr,omitempty"`
	TransformString string    `xml:"transform,attr,omitempty"`
	Animations      []Animate `xml:"animate"`
	group           *Group
}

// Command is a path data command letter. Only absolute commands are kept
// in PathData, relative ones are resolved while parsing.
type Command byte

// These are the path data commands an arc badge is drawn with
const (
	MoveTo    Command = 'M'
	LineTo    Command = 'L'
	ArcTo     Command = 'A'
	ClosePath Command = 'Z'
)

// A Segment is one command of a path together with its arguments. Point is
// the end point of the segment and is unused for ClosePath. Radius,
// Rotation, LargeArc and Sweep are only meaningful for ArcTo.
type Segment struct {
	Cmd      Command
	Point    Tuple
	Radius   Tuple
	Rotation float64
	LargeArc bool
	Sweep    bool
}

// PathData is the structured form of a path `d` attribute.
type PathData struct {
	Segments []Segment
}

// MoveTo starts a new subpath at (x, y).
func (d *PathData) MoveTo(x, y float64) {
	d.Segments = append(d.Segments, Segment{Cmd: MoveTo, Point: Tuple{x, y}})
}

// LineTo draws a straight line to (x, y).
func (d *PathData) LineTo(x, y float64) {
	d.Segments = append(d.Segments, Segment{Cmd: LineTo, Point: Tuple{x, y}})
}

// ArcTo draws a circular arc of radius r to (x, y).
func (d *PathData) ArcTo(r float64, large, sweep bool, x, y float64) {
	d.Segments = append(d.Segments, Segment{
		Cmd:      ArcTo,
		Point:    Tuple{x, y},
		Radius:   Tuple{r, r},
		LargeArc: large,
		Sweep:    sweep,
	})
}

// Close closes the current subpath.
func (d *PathData) Close() {
	d.Segments = append(d.Segments, Segment{Cmd: ClosePath})
}

// Clone returns a deep copy of d.
func (d *PathData) Clone() *PathData {
	c := &PathData{Segments: make([]Segment, len(d.Segments))}
	copy(c.Segments, d.Segments)
	return c
}

// Shape returns the command letters of d in order, e.g. "MALAZ".
func (d *PathData) Shape() string {
	var sb strings.Builder
	for _, s := range d.Segments {
		sb.WriteByte(byte(s.Cmd))
	}
	return sb.String()
}

// String renders d in the compact form produced by d3: no whitespace before
// commands, comma separated coordinate pairs.
func (d *PathData) String() string {
	var sb strings.Builder
	for _, s := range d.Segments {
		sb.WriteByte(byte(s.Cmd))
		switch s.Cmd {
		case MoveTo, LineTo:
			writeTuple(&sb, s.Point)
		case ArcTo:
			writeTuple(&sb, s.Radius)
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(s.Rotation))
			sb.WriteByte(' ')
			sb.WriteString(formatFlag(s.LargeArc))
			sb.WriteByte(',')
			sb.WriteString(formatFlag(s.Sweep))
			sb.WriteByte(' ')
			writeTuple(&sb, s.Point)
		}
	}
	return sb.String()
}

func writeTuple(sb *strings.Builder, t Tuple) {
	sb.WriteString(formatNumber(t[0]))
	sb.WriteByte(',')
	sb.WriteString(formatNumber(t[1]))
}

// formatNumber rounds to six decimals and drops trailing zeros. Formatting
// a number parsed back from its own output yields the same text.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Data parses the path's `d` attribute.
func (p *Path) Data() (*PathData, error) {
	return ParsePathData(p.D)
}

// DrawingInstructions returns the instructions needed to fill the path
// with a simple drawing library. The path transform, if any, is applied
// after t. The last instruction is always a PaintInstruction carrying the
// fill colour, inherited from the enclosing group when the path has none.
func (p *Path) DrawingInstructions(t mt.Transform) ([]*DrawingInstruction, error) {
	data, err := p.Data()
	if err != nil {
		return nil, err
	}
	if p.TransformString != "" {
		pt, err := parseTransform(p.TransformString)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", p.ID, err)
		}
		t = mt.MultiplyTransforms(t, pt)
	}
	instrs := data.Instructions(t)

	fill := p.Fill
	if fill == "" && p.group != nil {
		fill = p.group.Fill
	}
	if fill == "" {
		fill = "#000"
	}
	instrs = append(instrs, &DrawingInstruction{Kind: PaintInstruction, Fill: &fill})
	return instrs, nil
}

type pathDescriptionParser struct {
	lex    *gl.Lexer
	src    string
	data   *PathData
	x, y   float64
	sx, sy float64

	// commands and numbers count what the lexer handed over, to catch
	// input it stopped reading early
	commands int
	numbers  int
}

const (
	pathCommands = "MmZzLlHhVvCcSsQqTtAa"
	pathNumber   = "0123456789.+-eE"
)

func isPathRune(r rune) bool {
	return strings.ContainsRune(pathCommands, r) ||
		strings.ContainsRune(pathNumber, r) ||
		r == ',' || unicode.IsSpace(r)
}

// drain lets the lexer goroutine run to completion. It keeps sending items
// until its input is exhausted, whether or not anybody reads them.
func drain(items chan gl.Item) {
	go func() {
		for range items {
		}
	}()
}

// ParsePathData parses SVG path data. Absolute and relative M, L, H, V, A
// and Z commands are supported; relative coordinates are resolved so the
// result only holds absolute segments. Any other input yields a
// *MalformedPathError.
func ParsePathData(d string) (*PathData, error) {
	if i := strings.IndexFunc(d, func(r rune) bool { return !isPathRune(r) }); i >= 0 {
		r, _ := utf8.DecodeRuneInString(d[i:])
		return nil, &MalformedPathError{Path: d, Reason: fmt.Sprintf("unexpected character %q at offset %d", r, i)}
	}

	l, items := gl.Lex("d", d)
	defer drain(items)
	pdp := &pathDescriptionParser{lex: l, src: d, data: &PathData{}}

	for {
		i := pdp.lex.NextItem()
		switch i.Type {
		case gl.ItemError:
			return nil, pdp.errorf("lexer error: %s", i.Value)
		case gl.ItemEOS:
			if err := pdp.checkConsumed(); err != nil {
				return nil, err
			}
			return pdp.data, nil
		case gl.ItemNumber:
			return nil, pdp.errorf("number %s without a command", i.Value)
		default:
			v := strings.TrimSpace(i.Value)
			if v == "" || v == "," {
				continue
			}
			// a run of letters may come as a single item, e.g. "ZM"
			for _, c := range v {
				if err := pdp.parseCommand(c); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (pdp *pathDescriptionParser) errorf(format string, args ...interface{}) error {
	return &MalformedPathError{Path: pdp.src, Reason: fmt.Sprintf(format, args...)}
}

// checkConsumed compares what the parser got with what the input holds.
func (pdp *pathDescriptionParser) checkConsumed() error {
	commands := 0
	for _, r := range pdp.src {
		if strings.ContainsRune(pathCommands, r) {
			commands++
		}
	}
	if commands != pdp.commands {
		return pdp.errorf("read %d of %d commands", pdp.commands, commands)
	}
	if n := countNumbers(pdp.src); n != pdp.numbers {
		return pdp.errorf("read %d of %d numbers", pdp.numbers, n)
	}
	return nil
}

// countNumbers counts numbers the way the path grammar splits them, so
// "1.5.5-2" holds three.
func countNumbers(d string) int {
	n := 0
	inNum, dot, exp := false, false, false
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case c >= '0' && c <= '9':
			if !inNum {
				n++
				inNum, dot, exp = true, false, false
			}
		case c == '.':
			if !inNum || dot || exp {
				n++
				inNum, exp = true, false
			}
			dot = true
		case (c == 'e' || c == 'E') && inNum && !exp:
			exp = true
			if i+1 < len(d) && (d[i+1] == '+' || d[i+1] == '-') {
				i++
			}
		case c == '+' || c == '-':
			n++
			inNum, dot, exp = true, false, false
		default:
			inNum = false
		}
	}
	return n
}

func (pdp *pathDescriptionParser) parseCommand(c rune) error {
	pdp.commands++
	switch c {
	case 'M', 'm':
		return pdp.parseMoveTo(c == 'm')
	case 'L', 'l':
		return pdp.parseLineTo(c == 'l')
	case 'H', 'h':
		return pdp.parseHLineTo(c == 'h')
	case 'V', 'v':
		return pdp.parseVLineTo(c == 'v')
	case 'A', 'a':
		return pdp.parseArcTo(c == 'a')
	case 'Z', 'z':
		pdp.data.Close()
		pdp.x, pdp.y = pdp.sx, pdp.sy
		return nil
	}
	return pdp.errorf("unsupported command %q", c)
}

func (pdp *pathDescriptionParser) parseMoveTo(rel bool) error {
	t, err := pdp.parseTuple()
	if err != nil {
		return err
	}
	pdp.x, pdp.y = pdp.resolve(t, rel)
	pdp.sx, pdp.sy = pdp.x, pdp.y
	pdp.data.MoveTo(pdp.x, pdp.y)

	// extra pairs after a moveto are implicit linetos
	for pdp.hasNumber() {
		t, err := pdp.parseTuple()
		if err != nil {
			return err
		}
		pdp.x, pdp.y = pdp.resolve(t, rel)
		pdp.data.LineTo(pdp.x, pdp.y)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		t, err := pdp.parseTuple()
		if err != nil {
			return err
		}
		pdp.x, pdp.y = pdp.resolve(t, rel)
		pdp.data.LineTo(pdp.x, pdp.y)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseHLineTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		n, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		if rel {
			pdp.x += n
		} else {
			pdp.x = n
		}
		pdp.data.LineTo(pdp.x, pdp.y)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseVLineTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		n, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		if rel {
			pdp.y += n
		} else {
			pdp.y = n
		}
		pdp.data.LineTo(pdp.x, pdp.y)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseArcTo(rel bool) error {
	for first := true; first || pdp.hasNumber(); first = false {
		r, err := pdp.parseTuple()
		if err != nil {
			return err
		}
		rot, err := pdp.parseNumber()
		if err != nil {
			return err
		}
		large, err := pdp.parseFlag()
		if err != nil {
			return err
		}
		sweep, err := pdp.parseFlag()
		if err != nil {
			return err
		}
		t, err := pdp.parseTuple()
		if err != nil {
			return err
		}
		pdp.x, pdp.y = pdp.resolve(t, rel)
		pdp.data.Segments = append(pdp.data.Segments, Segment{
			Cmd:      ArcTo,
			Point:    Tuple{pdp.x, pdp.y},
			Radius:   r,
			Rotation: rot,
			LargeArc: large,
			Sweep:    sweep,
		})
	}
	return nil
}

func (pdp *pathDescriptionParser) resolve(t Tuple, rel bool) (float64, float64) {
	if rel {
		return pdp.x + t[0], pdp.y + t[1]
	}
	return t[0], t[1]
}

func (pdp *pathDescriptionParser) skipSeparators() {
	pdp.lex.ConsumeWhiteSpace()
	pdp.lex.ConsumeComma()
	pdp.lex.ConsumeWhiteSpace()
}

func (pdp *pathDescriptionParser) hasNumber() bool {
	pdp.skipSeparators()
	return pdp.lex.PeekItem().Type == gl.ItemNumber
}

func (pdp *pathDescriptionParser) parseNumber() (float64, error) {
	pdp.skipSeparators()
	i := pdp.lex.NextItem()
	if i.Type != gl.ItemNumber {
		return 0, pdp.errorf("expected number, got %q", i.Value)
	}
	pdp.numbers++
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, pdp.errorf("bad number %q: %s", i.Value, err)
	}
	return n, nil
}

func (pdp *pathDescriptionParser) parseTuple() (Tuple, error) {
	x, err := pdp.parseNumber()
	if err != nil {
		return Tuple{}, err
	}
	y, err := pdp.parseNumber()
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{x, y}, nil
}

func (pdp *pathDescriptionParser) parseFlag() (bool, error) {
	n, err := pdp.parseNumber()
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, pdp.errorf("arc flag must be 0 or 1, got %v", n)
}
