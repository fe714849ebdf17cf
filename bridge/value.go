package bridge

import (
	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// Value returns the scalar the control displays. Reading a bang clears its
// flash so each flash is seen once. Removed objects read 0.
func (o *Object) Value() float64 {
	var v float64
	o.read(func(obj engine.Object) { v = o.valueOf(obj) })
	return v
}

// ValueLocked is Value for callers holding the callback lock
func (o *Object) ValueLocked() float64 {
	var v float64
	o.readLocked(func(obj engine.Object) { v = o.valueOf(obj) })
	return v
}

func (o *Object) valueOf(obj engine.Object) float64 {
	switch x := obj.(type) {
	case *engine.Slider:
		return x.Val
	case *engine.Toggle:
		return x.On
	case *engine.Numbox:
		return x.Val
	case *engine.Radio:
		return float64(x.On)
	case *engine.Bang:
		if x.Flashed > 0 {
			x.Flashed = 0
			return 1
		}
		return 0
	case *engine.VU:
		return x.RMS
	case *engine.Gatom:
		if o.Kind() == AtomNumber && len(x.Binbuf) == 1 {
			return x.Binbuf[0].GetFloat()
		}
	case *engine.Pad:
		return x.X
	}
	return 0
}

// Peak returns a meter's peak level, 0 for everything else
func (o *Object) Peak() float64 {
	var v float64
	o.read(func(obj engine.Object) {
		if m, ok := obj.(*engine.VU); ok {
			v = m.Peak
		}
	})
	return v
}

// SetValue asks the engine to take v as if it arrived at the inlet. The
// write happens on the engine thread.
func (o *Object) SetValue(v float64) {
	switch o.Kind() {
	case Undefined, Invalid, Comment, AtomSymbol, AtomList, Array, GraphOnParent, Subpatch:
		return
	case Bang:
		o.post(queue.Bang(o.handle))
	default:
		o.post(queue.Float(o.handle, v))
	}
}

// Click triggers a bang or message box
func (o *Object) Click() {
	switch o.Kind() {
	case Bang, Message, Toggle:
		o.post(queue.Bang(o.handle))
	}
}

// Symbol returns the text of a message box or the symbol of a symbol box
func (o *Object) Symbol() string {
	var s string
	o.read(func(obj engine.Object) { s = o.symbolOf(obj) })
	return s
}

// SymbolLocked is Symbol for callers holding the callback lock
func (o *Object) SymbolLocked() string {
	var s string
	o.readLocked(func(obj engine.Object) { s = o.symbolOf(obj) })
	return s
}

func (o *Object) symbolOf(obj engine.Object) string {
	switch x := obj.(type) {
	case *engine.Message:
		return engine.FormatText(x.Binbuf)
	case *engine.Gatom:
		if o.Kind() == AtomSymbol && len(x.Binbuf) == 1 && x.Binbuf[0].Type == engine.AtomSymbol {
			return x.Binbuf[0].S
		}
	case *engine.Comment:
		return engine.FormatText(x.Binbuf)
	}
	return ""
}

// SetSymbol replaces a message box's text or sets a symbol box
func (o *Object) SetSymbol(s string) {
	switch o.Kind() {
	case Message:
		o.post(queue.Typed(o.handle, "set", engine.ParseText(s)...))
	case AtomSymbol:
		o.post(queue.Symbol(o.handle, s))
	}
}

// List returns the content of a list box, nil for other kinds
func (o *Object) List() []Atom {
	var l []Atom
	o.read(func(obj engine.Object) { l = o.listOf(obj) })
	return l
}

// ListLocked is List for callers holding the callback lock
func (o *Object) ListLocked() []Atom {
	var l []Atom
	o.readLocked(func(obj engine.Object) { l = o.listOf(obj) })
	return l
}

func (o *Object) listOf(obj engine.Object) []Atom {
	if g, ok := obj.(*engine.Gatom); ok && o.Kind() == AtomList {
		return DecodeAtoms(g.Binbuf)
	}
	return nil
}

// SetList replaces the content of a list box
func (o *Object) SetList(l []Atom) {
	if o.Kind() != AtomList {
		return
	}
	o.post(queue.List(o.handle, EncodeAtoms(l)))
}

// Steps returns the number of discrete positions, 0 for continuous controls
func (o *Object) Steps() int {
	var n int
	o.read(func(obj engine.Object) {
		switch x := obj.(type) {
		case *engine.Toggle:
			n = 2
		case *engine.Radio:
			if x.Vertical {
				n = x.Number
			} else {
				n = x.Number - 1
			}
		case *engine.Gatom:
			if o.Kind() == AtomNumber && x.Width == 1 {
				n = 1
			}
		}
	})
	return n
}

// JumpOnClick reports whether a slider moves to the pointer on click
func (o *Object) JumpOnClick() bool {
	var jump bool
	o.read(func(obj engine.Object) {
		if s, ok := obj.(*engine.Slider); ok {
			jump = s.Steady == 0
		}
	})
	return jump
}

// IsLogScale reports whether a slider uses logarithmic mapping
func (o *Object) IsLogScale() bool {
	var log bool
	o.read(func(obj engine.Object) {
		if s, ok := obj.(*engine.Slider); ok {
			log = s.Lin0Log1 != 0
		}
	})
	return log
}

// SetLogScale switches a slider between linear and logarithmic mapping
func (o *Object) SetLogScale(log bool) {
	if !o.Kind().IsSlider() {
		return
	}
	sel := "lin"
	if log {
		sel = "log"
	}
	o.post(queue.Typed(o.handle, sel))
}

// ArrayName returns the name of the array shown by an array graph
func (o *Object) ArrayName() string {
	var name string
	o.read(func(obj engine.Object) {
		c, ok := obj.(*engine.Canvas)
		if !ok || len(c.List) == 0 {
			return
		}
		if first, ok := o.eng.Lookup(c.List[0]); ok {
			if a, ok := first.(*engine.Garray); ok {
				name = a.Name
			}
		}
	})
	return name
}

// Children returns the objects drawn on a subpatch or graph
func (o *Object) Children() []engine.Handle {
	var list []engine.Handle
	o.read(func(obj engine.Object) {
		if c, ok := obj.(*engine.Canvas); ok && o.Kind().IsPatch() {
			list = append(list, c.List...)
		}
	})
	return list
}
