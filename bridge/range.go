package bridge

import (
	"math"

	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

const epsilon32 = 1.1920929e-07

// bounded reports whether a gatom drag range is in effect; both ends must
// be non-zero
func bounded(g *engine.Gatom) bool {
	return math.Abs(g.DragLo) > epsilon32 && math.Abs(g.DragHi) > epsilon32
}

// Minimum returns the low end of the range. Radio groups start at 0;
// keyboards report their lowest note.
func (o *Object) Minimum() float64 {
	var v float64
	o.read(func(obj engine.Object) {
		switch x := obj.(type) {
		case *engine.Slider:
			v = x.Min
		case *engine.Numbox:
			v = x.Min
		case *engine.Keyboard:
			v = float64(x.Low)
		case *engine.Gatom:
			if o.Kind() != AtomNumber {
				return
			}
			v = -math.MaxFloat32
			if bounded(x) {
				v = x.DragLo
			}
		}
	})
	return v
}

// Maximum returns the high end of the range. For radio groups it is the
// highest button index, one less than the button count.
func (o *Object) Maximum() float64 {
	v := 1.0
	o.read(func(obj engine.Object) {
		switch x := obj.(type) {
		case *engine.Slider:
			v = x.Max
		case *engine.Numbox:
			v = x.Max
		case *engine.Radio:
			v = float64(x.Number - 1)
		case *engine.Keyboard:
			v = float64(x.High)
		case *engine.Gatom:
			if o.Kind() != AtomNumber {
				return
			}
			v = math.MaxFloat32
			if bounded(x) {
				v = x.DragHi
			}
		}
	})
	return v
}

// SetMinimum changes the low end of the range. Zero is ignored for number
// atoms since it would switch their range off. The change is applied on the
// engine thread.
func (o *Object) SetMinimum(v float64) {
	o.setRange(engine.SelMinimum, v)
}

// SetMaximum changes the high end of the range. On radio groups it sets
// the button count to v+1.
func (o *Object) SetMaximum(v float64) {
	if o.Kind().IsRadio() {
		n := max(1, int(math.Round(v))+1)
		o.post(queue.Typed(o.handle, "number", engine.Float(float64(n))))
		return
	}
	o.setRange(engine.SelMaximum, v)
}

func (o *Object) setRange(selector string, v float64) {
	switch k := o.Kind(); {
	case k.IsSlider(), k == Number:
	case k == AtomNumber:
		if math.Abs(v) <= epsilon32 {
			return
		}
	default:
		return
	}
	o.post(queue.Typed(o.handle, selector, engine.Float(v)))
}

// Buttons returns the number of buttons a radio group draws
func (o *Object) Buttons() int {
	if !o.Kind().IsRadio() {
		return 0
	}
	return int(math.Round(o.Maximum()-o.Minimum())) + 1
}
