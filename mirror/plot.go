package mirror

import "go-patchbridge/engine"

// Point is a position in plot pixels, origin top-left
type Point struct {
	X, Y float64
}

// OpKind is a path drawing operation
type OpKind int

const (
	MoveTo OpKind = iota
	LineTo
	CubicTo
)

// Op is one path step. LineTo and MoveTo use Pts[0]; CubicTo uses all three.
type Op struct {
	Kind OpKind
	Pts  [3]Point
}

// Path is the geometry of a plot, ready for a renderer
type Path []Op

// Plot lays out the local samples in a w by h box using the array's style.
// Values are clipped to the scale; larger values are drawn higher.
func (m *Mirror) Plot(w, h float64) Path {
	n := len(m.vec)
	if n == 0 || m.failed || w <= 0 || h <= 0 {
		return nil
	}
	var dh float64
	if m.hi != m.lo {
		dh = h / (m.hi - m.lo)
	}
	y := func(v float64) float64 {
		return h - (clamp(v, m.lo, m.hi)-m.lo)*dh
	}

	var p Path
	switch {
	case m.style == engine.StyleBezier && n > 1:
		dw := w / float64(n-1)
		p = append(p, Op{Kind: MoveTo, Pts: [3]Point{{0, y(m.vec[0])}}})
		for i := 1; i < n-1; i += 2 {
			p = append(p, Op{Kind: CubicTo, Pts: [3]Point{
				{float64(i-1) * dw, y(m.vec[i-1])},
				{float64(i) * dw, y(m.vec[i])},
				{float64(i+1) * dw, y(m.vec[i+1])},
			}})
		}
	case m.style == engine.StylePolygon && n > 1:
		dw := w / float64(n-1)
		p = append(p, Op{Kind: MoveTo, Pts: [3]Point{{0, y(m.vec[0])}}})
		for i := 1; i < n; i++ {
			p = append(p, Op{Kind: LineTo, Pts: [3]Point{{float64(i) * dw, y(m.vec[i])}}})
		}
	default:
		// one horizontal tick per sample
		dw := w / float64(n)
		for i, v := range m.vec {
			yy := y(v)
			p = append(p,
				Op{Kind: MoveTo, Pts: [3]Point{{float64(i) * dw, yy}}},
				Op{Kind: LineTo, Pts: [3]Point{{float64(i+1) * dw, yy}}})
		}
	}
	return p
}

// Flatten turns the path into line segments, subdividing curves into steps
func (p Path) Flatten(steps int) [][2]Point {
	if steps < 1 {
		steps = 8
	}
	var (
		out [][2]Point
		cur Point
	)
	for _, op := range p {
		switch op.Kind {
		case MoveTo:
			cur = op.Pts[0]
		case LineTo:
			out = append(out, [2]Point{cur, op.Pts[0]})
			cur = op.Pts[0]
		case CubicTo:
			p0, c1, c2, p3 := cur, op.Pts[0], op.Pts[1], op.Pts[2]
			prev := p0
			for s := 1; s <= steps; s++ {
				t := float64(s) / float64(steps)
				u := 1 - t
				next := Point{
					X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p3.X,
					Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p3.Y,
				}
				out = append(out, [2]Point{prev, next})
				prev = next
			}
			cur = p3
		}
	}
	return out
}
