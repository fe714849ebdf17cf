package bridge

import (
	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// Label side for atom boxes
const (
	LabelLeft  = 0
	LabelRight = 1
	LabelAbove = 2
	LabelBelow = 3
)

// Label is presentation data derived from live fields on every query
type Label struct {
	Text       string
	Color      uint32 // ARGB
	X, Y       int
	FontName   string
	FontHeight float64
}

// Label returns the control's label, false when it has none
func (o *Object) Label() (Label, bool) {
	var (
		l  Label
		ok bool
	)
	o.read(func(obj engine.Object) {
		bounds := o.boundsLocked(obj)
		switch x := obj.(type) {
		case *engine.Gatom:
			if x.Label == "" || x.Label == unset {
				return
			}
			fh := o.fontHeightLocked(obj)
			l = Label{Text: x.Label, Color: 0xff000000, FontName: o.fonts.Name(), FontHeight: fh}
			l.X, l.Y = o.atomLabelPos(x, bounds, fh)
			ok = true
		default:
			g := iem(obj)
			if g == nil || g.Lab == "" || g.Lab == unset {
				return
			}
			l = Label{
				Text:       g.Lab,
				Color:      FromIEM(g.LCol),
				X:          bounds.X + g.Ldx,
				Y:          bounds.Y + g.Ldy,
				FontName:   g.Font,
				FontHeight: float64(g.FontSize),
			}
			if l.FontName == "" {
				l.FontName = o.fonts.Name()
			}
			ok = true
		}
	})
	return l, ok
}

// labelLineHeight is the line height LabelPosition assumes for atom labels,
// whatever the canvas font
const labelLineHeight = 17

// LabelPosition places the label relative to bounds. IEM labels sit at a
// stored offset from the origin; atom labels at one of four sides. Label
// places atom labels by the canvas font height instead.
func (o *Object) LabelPosition(bounds Rect) (x, y int) {
	x, y = bounds.X, bounds.Y
	o.read(func(obj engine.Object) {
		if g, ok := obj.(*engine.Gatom); ok {
			if g.Label != "" && g.Label != unset {
				x, y = o.atomLabelPos(g, bounds, labelLineHeight)
			}
			return
		}
		if g := iem(obj); g != nil {
			x, y = bounds.X+g.Ldx, bounds.Y+g.Ldy
		}
	})
	return x, y
}

func (o *Object) atomLabelPos(g *engine.Gatom, b Rect, fh float64) (int, int) {
	half := int(fh / 2)
	switch g.WhereLabel & 3 {
	case LabelLeft:
		size, zoom := o.eng.CanvasFont(o.handle)
		fw := o.fonts.Width(size, zoom)
		return b.X - 4 - len(g.Label)*fw, b.Y + 2 + half
	case LabelRight:
		return b.X + b.W + 2, b.Y + 2 + half
	case LabelAbove:
		return b.X - 1, b.Y - 1 - half
	}
	return b.X - 1, b.Y + b.H + 2 + half
}

// SetLabel changes the label text. "" removes it.
func (o *Object) SetLabel(text string) {
	if k := o.Kind(); k.IsIEM() || k.IsAtom() {
		o.post(queue.Typed(o.handle, engine.SelLabel, engine.Symbol(orUnset(text))))
	}
}

// SetLabelOffset moves an IEM label relative to the control origin
func (o *Object) SetLabelOffset(dx, dy int) {
	if o.Kind().IsIEM() {
		o.post(queue.Typed(o.handle, engine.SelLabelPos, engine.Float(float64(dx)), engine.Float(float64(dy))))
	}
}

// SetLabelSide picks the side an atom label is drawn on
func (o *Object) SetLabelSide(side int) {
	if o.Kind().IsAtom() {
		o.post(queue.Typed(o.handle, engine.SelLabelSide, engine.Float(float64(side&3))))
	}
}
