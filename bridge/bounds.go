package bridge

import (
	"strings"

	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// Rect is a box in canvas pixels
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bounds returns the drawn box of the control. Removed objects return a zero Rect.
func (o *Object) Bounds() Rect {
	var r Rect
	o.read(func(obj engine.Object) { r = o.boundsLocked(obj) })
	return r
}

func (o *Object) boundsLocked(obj engine.Object) Rect {
	base := o.textRect(obj)
	switch x := obj.(type) {
	case *engine.Panel:
		return Rect{base.X, base.Y, x.VisW + 1, x.VisH + 1}
	case *engine.Gatom:
		return Rect{base.X, base.Y, base.W, base.H - 2}
	case *engine.Comment:
		return Rect{base.X + 2, base.Y + 2, base.W, base.H - 2}
	case *engine.Pad:
		return Rect{base.X, base.Y, x.W, x.H}
	case *engine.Keyboard:
		return Rect{base.X, base.Y, x.W, x.H}
	case *engine.Canvas:
		if x.IsGraph {
			return Rect{base.X, base.Y, x.PixW, x.PixH}
		}
	}
	if g := iem(obj); g != nil {
		return Rect{base.X, base.Y, g.W, g.H}
	}
	return base
}

// textRect is the box the engine reserves for a text object
func (o *Object) textRect(obj engine.Object) Rect {
	t := obj.Base()
	size, zoom := o.eng.CanvasFont(o.handle)
	fw, lh := o.fonts.Width(size, zoom), o.fonts.LineHeight(size, zoom)

	lines := strings.Split(engine.FormatText(t.Binbuf), "\n")
	chars := t.Width
	if chars == 0 {
		for _, l := range lines {
			chars = max(chars, len(l))
		}
		chars = max(chars, 3)
	}
	return Rect{X: t.X, Y: t.Y, W: chars*fw + 4, H: len(lines)*lh + 4}
}

// SetSize resizes the control; the engine applies its storage conventions.
// Text boxes take the width in characters that fits w.
func (o *Object) SetSize(w, h int) {
	switch k := o.Kind(); {
	case k.IsIEM(), k == Mousepad, k == Keyboard, k == GraphOnParent, k == Array:
		o.post(queue.Typed(o.handle, engine.SelSize, engine.Float(float64(w)), engine.Float(float64(h))))
		return
	case k == Undefined, k == Invalid, k == Mouse:
		return
	}
	var chars int
	o.read(func(engine.Object) {
		size, zoom := o.eng.CanvasFont(o.handle)
		if fw := o.fonts.Width(size, zoom); fw > 0 {
			chars = max(1, w/fw)
		}
	})
	if chars > 0 {
		o.post(queue.Typed(o.handle, engine.SelWidth, engine.Float(float64(chars))))
	}
}

// Position returns the top-left corner of the object
func (o *Object) Position() (x, y int) {
	o.read(func(obj engine.Object) {
		x, y = obj.Base().X, obj.Base().Y
	})
	return x, y
}
