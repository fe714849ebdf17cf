package engine

import "math"

// Editor configuration selectors. Like the pointer selectors of the mouse
// tracker they start with an underscore and never come from a patch.
const (
	SelMinimum   = "_min"        // low end of a range
	SelMaximum   = "_max"        // high end of a range
	SelSize      = "_size"       // w h in pixels
	SelWidth     = "_width"      // box width in characters
	SelLabel     = "_label"      // label text
	SelLabelPos  = "_label_pos"  // IEM label offset dx dy
	SelLabelSide = "_label_side" // atom label side 0..3
	SelColor     = "_color"      // which (0 bg, 1 fg, 2 label) and 0xRRGGBB
	SelSend      = "_send"       // send name
	SelReceive   = "_receive"    // receive name
	SelRedraw    = "_redraw"     // an editor wrote into an array
)

const epsilon32 = 1.1920929e-07

// configure applies an editor configuration message. It reports false for
// selectors that are not configuration.
func (in *Instance) configure(h Handle, obj Object, selector string, atoms []Atom) bool {
	switch selector {
	case SelMinimum, SelMaximum:
		if f, ok := firstFloat(atoms); ok {
			setRange(obj, selector == SelMaximum, f)
		}
	case SelSize:
		if len(atoms) >= 2 {
			setSize(obj, int(atoms[0].GetFloat()), int(atoms[1].GetFloat()))
		}
	case SelWidth:
		if f, ok := firstFloat(atoms); ok && f >= 1 {
			obj.Base().Width = int(f)
		}
	case SelLabel:
		text := "empty"
		if len(atoms) > 0 && atoms[0].String() != "" {
			text = atoms[0].String()
		}
		switch x := obj.(type) {
		case *Gatom:
			x.Label = text
		case interface{ IEM() *IEMGui }:
			x.IEM().Lab = text
		}
	case SelLabelPos:
		if g, ok := obj.(interface{ IEM() *IEMGui }); ok && len(atoms) >= 2 {
			g.IEM().Ldx, g.IEM().Ldy = int(atoms[0].GetFloat()), int(atoms[1].GetFloat())
		}
	case SelLabelSide:
		if g, ok := obj.(*Gatom); ok {
			if f, ok := firstFloat(atoms); ok {
				g.WhereLabel = uint8(int(f) & 3)
			}
		}
	case SelColor:
		g, ok := obj.(interface{ IEM() *IEMGui })
		if !ok || len(atoms) < 2 {
			return true
		}
		c := int32(atoms[1].GetFloat())
		switch int(atoms[0].GetFloat()) {
		case 0:
			g.IEM().BCol = c
		case 1:
			g.IEM().FCol = c
		case 2:
			g.IEM().LCol = c
		}
	case SelSend:
		in.setSend(obj, symbolArg(atoms))
	case SelReceive:
		in.setReceive(h, obj, symbolArg(atoms))
	default:
		return false
	}
	return true
}

func symbolArg(atoms []Atom) string {
	if len(atoms) == 0 || atoms[0].Type != AtomSymbol || atoms[0].S == "" {
		return "empty"
	}
	return atoms[0].S
}

// setRange moves one end of a range. A zero end is ignored for number
// boxes since it would switch their range off.
func setRange(obj Object, high bool, v float64) {
	switch x := obj.(type) {
	case *Slider:
		if high {
			x.Max = v
		} else {
			x.Min = v
		}
	case *Numbox:
		if high {
			x.Max = v
		} else {
			x.Min = v
		}
	case *Gatom:
		if x.Flavor != AtomFloat || math.Abs(v) <= epsilon32 {
			return
		}
		if high {
			x.DragHi = v
		} else {
			x.DragLo = v
		}
	}
}

func setSize(obj Object, w, h int) {
	switch x := obj.(type) {
	case *Panel:
		x.VisW, x.VisH = w-1, h-1
	case *Pad:
		x.W, x.H = w, h
	case *Keyboard:
		x.W, x.H = w, h
	case *Canvas:
		if x.IsGraph {
			x.PixW, x.PixH = w, h
		}
	case interface{ IEM() *IEMGui }:
		x.IEM().W, x.IEM().H = w, h
	}
}

func (in *Instance) setSend(obj Object, name string) {
	switch x := obj.(type) {
	case *Gatom:
		x.SymTo = name
	case *Keyboard:
		x.Send = name
	case interface{ IEM() *IEMGui }:
		g := x.IEM()
		g.Snd = name
		g.SndAble = name != "empty"
		verifySendReceive(g)
	}
}

// setReceive rebinds obj: the old name is unbound before the new one is bound
func (in *Instance) setReceive(h Handle, obj Object, name string) {
	switch x := obj.(type) {
	case *Gatom:
		in.rebind(h, x.SymFrom, name)
		x.SymFrom = name
	case interface{ IEM() *IEMGui }:
		g := x.IEM()
		old := "empty"
		if g.RcvAble {
			old = g.Rcv
		}
		in.rebind(h, old, name)
		g.Rcv = name
		g.RcvAble = name != "empty"
		verifySendReceive(g)
	}
}

func (in *Instance) rebind(h Handle, old, name string) {
	if old == name {
		return
	}
	if old != "" && old != "empty" {
		in.Unbind(old, h)
	}
	if name != "" && name != "empty" {
		in.Bind(name, h)
	}
}

// a control sending to its own receive name would feed back into itself
func verifySendReceive(g *IEMGui) {
	if g.SndAble && g.RcvAble && g.Snd == g.Rcv {
		g.SndAble = false
	}
}
