package engine

import (
	"math"
	"strings"

	"go-patchbridge/debug"
)

// Reserved receive name and selector used by editors to bracket gestures
const (
	EditChannel  = "gui"
	EditSelector = "mouse"
)

const maxDepth = 64

// Deliver sends a message to one object. Caller holds the callback lock.
func (in *Instance) Deliver(h Handle, selector string, atoms []Atom) error {
	obj, ok := in.Lookup(h)
	if !ok {
		return ErrNoSuchObject
	}
	if in.depth >= maxDepth {
		debug.Log("engine", "stack overflow delivering %s to %d", selector, h)
		return nil
	}
	in.depth++
	defer func() { in.depth-- }()

	if in.configure(h, obj, selector, atoms) {
		return nil
	}

	switch o := obj.(type) {
	case *Slider:
		in.slider(h, o, selector, atoms)
	case *Toggle:
		in.toggle(h, o, selector, atoms)
	case *Radio:
		in.radio(h, o, selector, atoms)
	case *Numbox:
		in.numbox(h, o, selector, atoms)
	case *Bang:
		if selector != "set" {
			o.Flashed = 1
			in.output(h, o.sendName(), "bang", nil)
		}
	case *VU:
		if len(atoms) > 0 {
			o.RMS = atoms[0].GetFloat()
		}
		if len(atoms) > 1 {
			o.Peak = atoms[1].GetFloat()
		}
	case *Gatom:
		in.gatom(h, o, selector, atoms)
	case *Message:
		in.message(h, o, selector, atoms)
	case *Pad:
		in.pad(h, o, selector, atoms)
	case *Mouse:
		in.mouse(h, o, selector, atoms)
	case *Keyboard:
		in.keyboard(h, o, selector, atoms)
	case *Tabosc:
		if len(atoms) > 0 && atoms[0].Type == AtomFloat {
			o.Freq = atoms[0].F
		}
		if selector == "set" && len(atoms) > 0 && atoms[0].Type == AtomSymbol {
			o.Array = atoms[0].S
		}
	case *Garray:
		in.garray(h, o, selector, atoms)
	}
	return nil
}

// SendTo delivers a message to every receiver bound to name. Caller holds
// the callback lock.
func (in *Instance) SendTo(name, selector string, atoms []Atom) {
	if name == EditChannel && selector == EditSelector && len(atoms) > 0 {
		if atoms[0].GetFloat() != 0 {
			in.editing++
		} else if in.editing > 0 {
			in.editing--
		}
	}
	for _, h := range in.Bound(name) {
		in.Deliver(h, selector, atoms)
	}
}

func (in *Instance) output(h Handle, send, selector string, atoms []Atom) {
	in.emit(h, selector, atoms)
	if send != "" {
		in.SendTo(send, selector, atoms)
	}
}

func (g *IEMGui) sendName() string {
	if !g.SndAble || g.Snd == "empty" {
		return ""
	}
	return g.Snd
}

func firstFloat(atoms []Atom) (float64, bool) {
	if len(atoms) == 0 || atoms[0].Type != AtomFloat {
		return 0, false
	}
	return atoms[0].F, true
}

func clampRange(v, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return math.Max(lo, math.Min(hi, v))
}

func (in *Instance) slider(h Handle, s *Slider, selector string, atoms []Atom) {
	switch selector {
	case "float", "set":
		if f, ok := firstFloat(atoms); ok {
			s.Val = clampRange(f, s.Min, s.Max)
		}
		if selector == "set" {
			return
		}
	case "log":
		s.Lin0Log1 = 1
		return
	case "lin":
		s.Lin0Log1 = 0
		return
	case "range":
		if len(atoms) >= 2 {
			s.Min, s.Max = atoms[0].GetFloat(), atoms[1].GetFloat()
		}
		return
	case "bang":
	default:
		return
	}
	in.output(h, s.sendName(), "float", []Atom{Float(s.Val)})
}

func (in *Instance) toggle(h Handle, t *Toggle, selector string, atoms []Atom) {
	switch selector {
	case "float", "set":
		f, ok := firstFloat(atoms)
		if !ok {
			return
		}
		t.On = f
		if f != 0 {
			t.Nonzero = f
		}
		if selector == "set" {
			return
		}
	case "bang":
		if t.On != 0 {
			t.On = 0
		} else {
			t.On = t.Nonzero
		}
	case "nonzero":
		if f, ok := firstFloat(atoms); ok && f != 0 {
			t.Nonzero = f
		}
		return
	default:
		return
	}
	in.output(h, t.sendName(), "float", []Atom{Float(t.On)})
}

func (in *Instance) radio(h Handle, r *Radio, selector string, atoms []Atom) {
	switch selector {
	case "float", "set":
		f, ok := firstFloat(atoms)
		if !ok {
			return
		}
		on := int(f)
		if on < 0 {
			on = 0
		}
		if on > r.Number-1 {
			on = r.Number - 1
		}
		r.On = on
		if selector == "set" {
			return
		}
	case "number":
		if f, ok := firstFloat(atoms); ok && f >= 1 {
			r.Number = int(f)
			if r.On >= r.Number {
				r.On = r.Number - 1
			}
		}
		return
	case "bang":
	default:
		return
	}
	in.output(h, r.sendName(), "float", []Atom{Float(float64(r.On))})
}

func (in *Instance) numbox(h Handle, n *Numbox, selector string, atoms []Atom) {
	switch selector {
	case "float", "set":
		if f, ok := firstFloat(atoms); ok {
			n.Val = clampRange(f, n.Min, n.Max)
		}
		if selector == "set" {
			return
		}
	case "bang":
	default:
		return
	}
	in.output(h, n.sendName(), "float", []Atom{Float(n.Val)})
}

func (in *Instance) gatom(h Handle, g *Gatom, selector string, atoms []Atom) {
	switch selector {
	case "bang":
	case "set":
		g.Binbuf = append([]Atom(nil), atoms...)
		return
	case "float":
		if f, ok := firstFloat(atoms); ok {
			if g.DragLo != 0 || g.DragHi != 0 {
				f = clampRange(f, g.DragLo, g.DragHi)
			}
			g.Binbuf = []Atom{Float(f)}
		}
	case "symbol":
		if len(atoms) > 0 {
			g.Binbuf = []Atom{Symbol(atoms[0].String())}
		}
	case "list":
		g.Binbuf = append([]Atom(nil), atoms...)
	default:
		if strings.HasPrefix(selector, "_") {
			return
		}
		g.Binbuf = append([]Atom{Symbol(selector)}, atoms...)
	}

	send := g.SymTo
	if send == "empty" {
		send = ""
	}
	switch g.Flavor {
	case AtomFloat:
		var f float64
		if len(g.Binbuf) > 0 {
			f = g.Binbuf[0].GetFloat()
		}
		in.output(h, send, "float", []Atom{Float(f)})
	case AtomSymbol:
		var s string
		if len(g.Binbuf) > 0 {
			s = g.Binbuf[0].String()
		}
		in.output(h, send, "symbol", []Atom{Symbol(s)})
	default:
		in.output(h, send, "list", append([]Atom(nil), g.Binbuf...))
	}
}

// message boxes output their content; a ";" starts a send to the next
// atom's receive name
func (in *Instance) message(h Handle, m *Message, selector string, atoms []Atom) {
	switch selector {
	case "set":
		m.Binbuf = append([]Atom(nil), atoms...)
		return
	case "add":
		m.Binbuf = append(m.Binbuf, atoms...)
		return
	case "bang", "click", "float", "symbol", "list":
	default:
		return
	}

	target := ""
	var seg []Atom
	flush := func() {
		if len(seg) == 0 {
			return
		}
		sel, args := "list", seg
		if seg[0].Type == AtomSymbol {
			sel, args = seg[0].S, seg[1:]
		} else if len(seg) == 1 {
			sel = "float"
		}
		if target == "" {
			in.output(h, "", sel, args)
		} else {
			in.SendTo(target, sel, args)
		}
		seg = nil
	}
	for i := 0; i < len(m.Binbuf); i++ {
		a := m.Binbuf[i]
		switch a.Type {
		case AtomSemi:
			flush()
			target = ""
			if i+1 < len(m.Binbuf) && m.Binbuf[i+1].Type == AtomSymbol {
				target = m.Binbuf[i+1].S
				i++
			}
		case AtomComma:
			flush()
		default:
			seg = append(seg, a)
		}
	}
	flush()
	if len(m.Binbuf) == 0 {
		in.output(h, "", "bang", nil)
	}
}

func (in *Instance) pad(h Handle, p *Pad, selector string, atoms []Atom) {
	switch selector {
	case "click":
		in.output(h, "", "click", atoms)
	case "list":
		if len(atoms) >= 2 {
			p.X, p.Y = atoms[0].GetFloat(), atoms[1].GetFloat()
		}
		in.output(h, "", "list", []Atom{Float(p.X), Float(p.Y)})
	}
}

func (in *Instance) mouse(h Handle, m *Mouse, selector string, atoms []Atom) {
	switch selector {
	case "_up":
		up := len(atoms) > 0 && atoms[0].GetFloat() != 0
		if up != m.Up {
			m.Up = up
			in.output(h, "", "float", []Atom{Float(boolFloat(!up))})
		}
	case "_getscreen":
		if len(atoms) >= 2 {
			x, y := atoms[0].GetFloat(), atoms[1].GetFloat()
			if x != m.X || y != m.Y {
				m.X, m.Y = x, y
				in.output(h, "", "list", []Atom{Float(x), Float(y)})
			}
		}
	}
}

func (in *Instance) keyboard(h Handle, k *Keyboard, selector string, atoms []Atom) {
	if selector != "list" || len(atoms) < 2 {
		return
	}
	note := int(atoms[0].GetFloat())
	vel := atoms[1].GetFloat()
	if k.Held == nil {
		k.Held = make(map[int]bool)
	}
	if vel > 0 {
		k.Held[note] = true
	} else {
		delete(k.Held, note)
	}
	send := k.Send
	if send == "empty" {
		send = ""
	}
	in.output(h, send, "list", []Atom{Float(float64(note)), Float(vel)})
}

func (in *Instance) garray(h Handle, a *Garray, selector string, atoms []Atom) {
	switch selector {
	case SelRedraw:
		in.emit(h, "redraw", nil)
	case "resize":
		if f, ok := firstFloat(atoms); ok && f >= 1 {
			a.resize(int(f))
		}
	case "const":
		v, _ := firstFloat(atoms)
		for i := range a.Data {
			a.Data[i] = v
		}
	case "list":
		// index followed by values
		if len(atoms) < 2 {
			return
		}
		start := int(atoms[0].GetFloat())
		for i, v := range atoms[1:] {
			if j := start + i; j >= 0 && j < len(a.Data) {
				a.Data[j] = v.GetFloat()
			}
		}
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
