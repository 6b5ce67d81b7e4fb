package badge

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Svg represents an SVG document holding a number of groups and paths
type Svg struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr,omitempty"`
	Width   float64  `xml:"width,attr"`
	Height  float64  `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr,omitempty"`
	Title   string   `xml:"title,omitempty"`
	Groups  []Group  `xml:"g"`
	Paths   []*Path  `xml:"path"`
	Name    string   `xml:"-"`
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID              string        `xml:"id,attr,omitempty"`
	Fill            string        `xml:"fill,attr,omitempty"`
	TransformString string        `xml:"transform,attr,omitempty"`
	Paths           []*Path       `xml:"path"`
	Groups          []*Group      `xml:"g"`
	Transform       *mt.Transform `xml:"-"`
	Parent          *Group        `xml:"-"`
	Owner           *Svg          `xml:"-"`
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			g.ID = attr.Value
		case "fill":
			g.Fill = attr.Value
		case "transform":
			g.TransformString = attr.Value
			t, err := parseTransform(g.TransformString)
			if err != nil {
				return fmt.Errorf("group %s: %w", g.ID, err)
			}
			g.Transform = &t
		}
	}
	if g.Transform == nil {
		g.Transform = mt.NewTransform()
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "g":
				child := &Group{Parent: g, Owner: g.Owner}
				if err = decoder.DecodeElement(child, &tok); err != nil {
					return fmt.Errorf("error decoding group element of Group: %w", err)
				}
				g.Groups = append(g.Groups, child)
			case "path":
				p := &Path{group: g}
				if err = decoder.DecodeElement(p, &tok); err != nil {
					return fmt.Errorf("error decoding path element of Group: %w", err)
				}
				g.Paths = append(g.Paths, p)
			default:
				if err = decoder.Skip(); err != nil {
					return err
				}
			}

		case xml.EndElement:
			return nil
		}
	}
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		var err error
		switch attr.Name.Local {
		case "xmlns":
			s.Xmlns = attr.Value
		case "width":
			s.Width, err = parseLength(attr.Value)
		case "height":
			s.Height, err = parseLength(attr.Value)
		case "viewBox", "viewbox":
			s.ViewBox = attr.Value
		}
		if err != nil {
			return fmt.Errorf("svg attribute %s: %w", attr.Name.Local, err)
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "g":
				g := &Group{Owner: s}
				if err = decoder.DecodeElement(g, &tok); err != nil {
					return fmt.Errorf("error decoding group element within SVG struct: %w", err)
				}
				s.Groups = append(s.Groups, *g)
			case "path":
				p := &Path{}
				if err = decoder.DecodeElement(p, &tok); err != nil {
					return fmt.Errorf("error decoding element of SVG struct: %w", err)
				}
				s.Paths = append(s.Paths, p)
			case "title":
				if err = decoder.DecodeElement(&s.Title, &tok); err != nil {
					return err
				}
			default:
				if err = decoder.Skip(); err != nil {
					return err
				}
			}

		case xml.EndElement:
			if tok.Name.Local == "svg" {
				return nil
			}
		}
	}
}

// ParseSvg parses an SVG string into an SVG struct
func ParseSvg(str string, name string) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string) (*Svg, error) {
	var svg Svg
	if err := xml.NewDecoder(r).Decode(&svg); err != nil {
		return nil, fmt.Errorf("ParseSvg Error: %w", err)
	}
	svg.Name = name
	svg.setOwners()
	return &svg, nil
}

// Encode writes s as an XML document.
func (s *Svg) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// AllPaths returns every path of s, top level paths first, then the paths
// of each group in document order.
func (s *Svg) AllPaths() []*Path {
	paths := append([]*Path(nil), s.Paths...)
	for i := range s.Groups {
		paths = s.Groups[i].appendPaths(paths)
	}
	return paths
}

func (g *Group) appendPaths(paths []*Path) []*Path {
	paths = append(paths, g.Paths...)
	for _, c := range g.Groups {
		paths = c.appendPaths(paths)
	}
	return paths
}

func (s *Svg) setOwners() {
	for i := range s.Groups {
		s.Groups[i].SetOwner(s)
	}
}

// SetOwner sets the owner of a SVG Group
func (g *Group) SetOwner(svg *Svg) {
	g.Owner = svg
	if g.Transform == nil {
		g.Transform = mt.NewTransform()
	}
	for _, p := range g.Paths {
		p.group = g
	}
	for _, c := range g.Groups {
		c.Parent = g
		c.SetOwner(svg)
	}
}

func parseLength(v string) (float64, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	return strconv.ParseFloat(v, 64)
}

// parseTransform turns a transform attribute such as
// "translate(256, 256) scale(2)" into a matrix. translate, scale, rotate
// and matrix are understood.
func parseTransform(tstring string) (mt.Transform, error) {
	if i := strings.IndexFunc(tstring, func(r rune) bool { return !isTransformRune(r) }); i >= 0 {
		return mt.Identity(), fmt.Errorf("transform %q: unexpected character %q at offset %d", tstring, tstring[i], i)
	}
	l, items := gl.Lex("transform", tstring)
	defer drain(items)

	tm := mt.Identity()
	var (
		name   string
		args   []float64
		inName bool
	)
	flush := func() error {
		if name == "" {
			return nil
		}
		f, err := transformFunc(name, args)
		if err != nil {
			return fmt.Errorf("transform %q: %w", tstring, err)
		}
		tm = mt.MultiplyTransforms(tm, f)
		name, args = "", nil
		return nil
	}

	for {
		i := l.NextItem()
		switch i.Type {
		case gl.ItemError:
			return mt.Identity(), fmt.Errorf("transform %q: %s", tstring, i.Value)
		case gl.ItemEOS:
			if err := flush(); err != nil {
				return mt.Identity(), err
			}
			return tm, nil
		case gl.ItemNumber:
			inName = false
			n, err := strconv.ParseFloat(i.Value, 64)
			if err != nil {
				return mt.Identity(), fmt.Errorf("transform %q: %w", tstring, err)
			}
			args = append(args, n)
		default:
			v := i.Value
			if v == "" || strings.IndexFunc(v, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
				inName = false
				continue
			}
			// names may come one letter at a time
			if inName {
				name += v
				continue
			}
			if err := flush(); err != nil {
				return mt.Identity(), err
			}
			name, inName = v, true
		}
	}
}

func isTransformRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsSpace(r) ||
		strings.ContainsRune(pathNumber, r) || strings.ContainsRune(",()", r)
}

func transformFunc(name string, args []float64) (mt.Transform, error) {
	tm := mt.Identity()
	switch name {
	case "translate":
		if len(args) != 1 && len(args) != 2 {
			return tm, fmt.Errorf("translate takes 1 or 2 arguments, got %d", len(args))
		}
		tm[0][2] = args[0]
		if len(args) == 2 {
			tm[1][2] = args[1]
		}
	case "scale":
		if len(args) != 1 && len(args) != 2 {
			return tm, fmt.Errorf("scale takes 1 or 2 arguments, got %d", len(args))
		}
		sx, sy := args[0], args[0]
		if len(args) == 2 {
			sy = args[1]
		}
		tm[0][0], tm[1][1] = sx, sy
	case "rotate":
		if len(args) != 1 {
			return tm, fmt.Errorf("rotate takes 1 argument, got %d", len(args))
		}
		a := Radians(args[0])
		c, s := math.Cos(a), math.Sin(a)
		tm[0][0], tm[0][1] = c, -s
		tm[1][0], tm[1][1] = s, c
	case "matrix":
		if len(args) != 6 {
			return tm, fmt.Errorf("matrix takes 6 arguments, got %d", len(args))
		}
		tm[0][0], tm[1][0], tm[0][1], tm[1][1], tm[0][2], tm[1][2] = args[0], args[1], args[2], args[3], args[4], args[5]
	default:
		return tm, fmt.Errorf("unsupported transform %q", name)
	}
	return tm, nil
}
