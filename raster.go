package badge

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"golang.org/x/image/vector"
)

// Rasterize fills every path of s into a transparent RGBA image, scaled by
// scale (1 renders at the document's width and height).
func (s *Svg) Rasterize(scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", scale)
	}
	w := int(math.Ceil(s.Width * scale))
	h := int(math.Ceil(s.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg %s has no area (%vx%v)", s.Name, s.Width, s.Height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	base := mt.Identity()
	base[0][0], base[1][1] = scale, scale

	for _, p := range s.Paths {
		if err := p.rasterize(dst, base); err != nil {
			return nil, err
		}
	}
	for i := range s.Groups {
		if err := s.Groups[i].rasterize(dst, base); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (g *Group) rasterize(dst *image.RGBA, parent mt.Transform) error {
	t := parent
	if g.Transform != nil {
		t = mt.MultiplyTransforms(parent, *g.Transform)
	}
	for _, p := range g.Paths {
		if err := p.rasterize(dst, t); err != nil {
			return err
		}
	}
	for _, c := range g.Groups {
		if err := c.rasterize(dst, t); err != nil {
			return err
		}
	}
	return nil
}

func (p *Path) rasterize(dst *image.RGBA, t mt.Transform) error {
	if p.D == "" {
		return nil
	}
	instrs, err := p.DrawingInstructions(t)
	if err != nil {
		return err
	}

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	open := false
	for _, in := range instrs {
		switch in.Kind {
		case MoveInstruction:
			if open {
				z.ClosePath()
			}
			z.MoveTo(float32(in.M[0]), float32(in.M[1]))
			open = true
		case LineInstruction:
			z.LineTo(float32(in.M[0]), float32(in.M[1]))
		case CurveInstruction:
			z.CubeTo(
				float32(in.C1[0]), float32(in.C1[1]),
				float32(in.C2[0]), float32(in.C2[1]),
				float32(in.T[0]), float32(in.T[1]),
			)
		case CloseInstruction:
			z.ClosePath()
			open = false
		case PaintInstruction:
			if *in.Fill == "none" {
				continue
			}
			c, err := parseColor(*in.Fill)
			if err != nil {
				return fmt.Errorf("path %s: %w", p.ID, err)
			}
			if open {
				z.ClosePath()
				open = false
			}
			z.Draw(dst, b, image.NewUniform(c), image.Point{})
		}
	}
	return nil
}

// parseColor understands the hex notations #rgb and #rrggbb.
func parseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 || !strings.HasPrefix(strings.TrimSpace(s), "#") {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
