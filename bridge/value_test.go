package bridge

import (
	"math"
	"testing"

	"go-patchbridge/engine"
)

func TestSetValuePosts(t *testing.T) {
	in, root, out := newTestEngine()

	tests := []struct {
		name     string
		h        engine.Handle
		selector string // "" means nothing posted
	}{
		{"toggle", in.Add(root, engine.NewToggle()), "float"},
		{"slider", in.Add(root, engine.NewSlider(false)), "float"},
		{"bang", in.Add(root, engine.NewBang()), "bang"},
		{"atom number", in.Add(root, engine.NewGatom(engine.AtomFloat, 5)), "float"},
		{"atom symbol", in.Add(root, engine.NewGatom(engine.AtomSymbol, 5)), ""},
		{"comment", in.Add(root, engine.NewComment("x")), ""},
		{"subpatch", in.NewCanvas(root, "sub", 0, 0), ""},
	}

	for _, tt := range tests {
		out.msgs = nil
		New(in, out, nil, tt.h).SetValue(1)
		switch {
		case tt.selector == "" && len(out.msgs) != 0:
			t.Errorf("%s: expected nothing posted, got %+v", tt.name, out.msgs)
		case tt.selector != "" && (len(out.msgs) != 1 || out.msgs[0].Selector != tt.selector || out.msgs[0].Target != tt.h):
			t.Errorf("%s: expected %s to %d, got %+v", tt.name, tt.selector, tt.h, out.msgs)
		}
	}
}

func TestSetValueIsAsync(t *testing.T) {
	in, root, out := newTestEngine()
	tg := engine.NewToggle()
	obj := New(in, out, nil, in.Add(root, tg))

	obj.SetValue(1)
	if tg.On != 0 {
		t.Error("expected the engine untouched until the message is delivered")
	}

	in.Lock()
	in.Deliver(out.msgs[0].Target, out.msgs[0].Selector, out.msgs[0].Atoms)
	in.Unlock()
	if obj.Value() != 1 {
		t.Errorf("expected 1, got %v", obj.Value())
	}
}

func TestClickPosts(t *testing.T) {
	in, root, out := newTestEngine()
	New(in, out, nil, in.Add(root, engine.NewMessage("hi"))).Click()
	New(in, out, nil, in.Add(root, engine.NewComment("hi"))).Click()

	if len(out.msgs) != 1 || out.msgs[0].Selector != "bang" {
		t.Errorf("expected one bang, got %+v", out.msgs)
	}
}

func TestBangFlashReadOnce(t *testing.T) {
	in, root, out := newTestEngine()
	h := in.Add(root, engine.NewBang())
	obj := New(in, out, nil, h)

	in.Lock()
	in.Deliver(h, "bang", nil)
	st, _ := obj.StateLocked()
	again, _ := obj.StateLocked()
	in.Unlock()

	if st.Value != 1 || again.Value != 0 {
		t.Errorf("expected flash read as 1 then 0, got %v then %v", st.Value, again.Value)
	}
}

func TestRadioRange(t *testing.T) {
	in, root, out := newTestEngine()
	h := New(in, out, nil, in.Add(root, engine.NewRadio(false, 8)))
	v := New(in, out, nil, in.Add(root, engine.NewRadio(true, 8)))

	if h.Minimum() != 0 || h.Maximum() != 7 {
		t.Errorf("expected 0..7, got %v..%v", h.Minimum(), h.Maximum())
	}
	if h.Buttons() != 8 {
		t.Errorf("expected 8 buttons, got %d", h.Buttons())
	}

	h.SetMaximum(3)
	out.deliver(in)
	if h.Buttons() != 4 || h.Maximum() != 3 {
		t.Errorf("expected 4 buttons max 3, got %d max %v", h.Buttons(), h.Maximum())
	}
	if h.Steps() != 3 {
		t.Errorf("expected hradio steps 3, got %d", h.Steps())
	}
	if v.Steps() != 8 {
		t.Errorf("expected vradio steps 8, got %d", v.Steps())
	}
}

func TestAtomRange(t *testing.T) {
	in, root, out := newTestEngine()
	g := engine.NewGatom(engine.AtomFloat, 5)
	obj := New(in, out, nil, in.Add(root, g))

	if obj.Minimum() != -math.MaxFloat32 || obj.Maximum() != math.MaxFloat32 {
		t.Errorf("expected unbounded range, got %v..%v", obj.Minimum(), obj.Maximum())
	}

	g.DragLo, g.DragHi = -5, 5
	if obj.Minimum() != -5 || obj.Maximum() != 5 {
		t.Errorf("expected -5..5, got %v..%v", obj.Minimum(), obj.Maximum())
	}

	obj.SetMinimum(0)
	if len(out.msgs) != 0 {
		t.Errorf("expected zero minimum ignored, got %+v", out.msgs)
	}
	obj.SetMinimum(-2)
	out.deliver(in)
	if g.DragLo != -2 {
		t.Errorf("expected -2, got %v", g.DragLo)
	}

	// only one end set: range is off
	g.DragLo = 0
	if obj.Maximum() != math.MaxFloat32 {
		t.Errorf("expected half-set range to be ignored, got %v", obj.Maximum())
	}
}

func TestAtomValues(t *testing.T) {
	in, root, out := newTestEngine()
	num := engine.NewGatom(engine.AtomFloat, 5)
	num.Binbuf = []engine.Atom{engine.Float(3.5)}
	sym := engine.NewGatom(engine.AtomSymbol, 5)
	sym.Binbuf = []engine.Atom{engine.Symbol("abc")}
	list := engine.NewGatom(engine.AtomNull, 5)
	list.Binbuf = []engine.Atom{engine.Float(1), engine.Symbol("x"), {Type: engine.AtomSemi}}

	if v := New(in, out, nil, in.Add(root, num)).Value(); v != 3.5 {
		t.Errorf("expected 3.5, got %v", v)
	}
	if s := New(in, out, nil, in.Add(root, sym)).Symbol(); s != "abc" {
		t.Errorf("expected abc, got %q", s)
	}

	l := New(in, out, nil, in.Add(root, list)).List()
	if len(l) != 3 || !l[0].IsFloat() || !l[1].IsSymbol() || !l[2].IsEmpty() {
		t.Errorf("expected float, symbol, empty; got %+v", l)
	}
}

func TestSetSymbolMessage(t *testing.T) {
	in, root, out := newTestEngine()
	h := in.Add(root, engine.NewMessage("old"))
	New(in, out, nil, h).SetSymbol("freq 440")

	if len(out.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(out.msgs))
	}
	m := out.msgs[0]
	if m.Selector != "set" || len(m.Atoms) != 2 || m.Atoms[1].F != 440 {
		t.Errorf("expected set freq 440, got %+v", m)
	}
}

func TestSliderLogScale(t *testing.T) {
	in, root, out := newTestEngine()
	obj := New(in, out, nil, in.Add(root, engine.NewSlider(false)))

	if obj.IsLogScale() {
		t.Error("expected linear by default")
	}
	obj.SetLogScale(true)
	out.deliver(in)
	if !obj.IsLogScale() {
		t.Error("expected log after SetLogScale")
	}
	if !obj.JumpOnClick() {
		t.Error("expected jump on click with steady off")
	}
}

func TestConfigWaitsForEngine(t *testing.T) {
	in, root, out := newTestEngine()
	r := engine.NewRadio(false, 8)
	r.On = 7
	radio := New(in, out, nil, in.Add(root, r))
	s := engine.NewSlider(false)
	slider := New(in, out, nil, in.Add(root, s))

	radio.SetMaximum(3)
	slider.SetMinimum(10)
	slider.SetMaximum(20)

	if len(out.msgs) != 3 {
		t.Fatalf("expected 3 queued changes, got %d", len(out.msgs))
	}
	if r.Number != 8 || r.On != 7 || s.Min != 0 || s.Max != 127 {
		t.Errorf("expected engine untouched before the cycle, got radio %d/%d slider %v..%v", r.Number, r.On, s.Min, s.Max)
	}

	out.deliver(in)
	if r.Number != 4 || r.On != 3 {
		t.Errorf("expected 4 buttons with 3 selected, got %d/%d", r.Number, r.On)
	}
	if s.Min != 10 || s.Max != 20 {
		t.Errorf("expected 10..20, got %v..%v", s.Min, s.Max)
	}
}
