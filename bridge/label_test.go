package bridge

import (
	"math"
	"testing"

	"go-patchbridge/engine"
)

func TestBounds(t *testing.T) {
	in, root, out := newTestEngine()

	tg := engine.NewToggle()
	tg.X, tg.Y = 10, 20
	num := engine.NewGatom(engine.AtomFloat, 5)
	com := engine.NewComment("hello world")

	tests := []struct {
		name string
		h    engine.Handle
		want Rect
	}{
		{"toggle", in.Add(root, tg), Rect{10, 20, 15, 15}},
		{"panel", in.Add(root, engine.NewPanel(100, 40)), Rect{0, 0, 100, 40}},
		// 5 chars of 7px + 4, one 16px line + 4, minus 2
		{"atom", in.Add(root, num), Rect{0, 0, 39, 18}},
		{"comment", in.Add(root, com), Rect{2, 2, 81, 18}},
		{"pad", in.Add(root, engine.NewPad(127, 100)), Rect{0, 0, 127, 100}},
		{"graph", in.NewGraph(root, "g", 0, 0, 200, 140), Rect{0, 0, 200, 140}},
	}

	for _, tt := range tests {
		got := New(in, out, nil, tt.h).Bounds()
		if got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestSetSize(t *testing.T) {
	in, root, out := newTestEngine()
	p := engine.NewPanel(10, 10)
	obj := New(in, out, nil, in.Add(root, p))

	obj.SetSize(50, 30)
	if p.VisW != 9 {
		t.Errorf("expected the resize to wait for the engine thread, got %d", p.VisW)
	}
	out.deliver(in)
	if p.VisW != 49 || p.VisH != 29 {
		t.Errorf("expected stored size 49x29, got %dx%d", p.VisW, p.VisH)
	}
	if b := obj.Bounds(); b.W != 50 || b.H != 30 {
		t.Errorf("expected 50x30, got %dx%d", b.W, b.H)
	}

	g := engine.NewGatom(engine.AtomFloat, 5)
	atom := New(in, out, nil, in.Add(root, g))
	atom.SetSize(70, 0)
	out.deliver(in)
	if g.Width != 10 {
		t.Errorf("expected width 10 chars, got %d", g.Width)
	}
}

func TestIEMLabel(t *testing.T) {
	in, root, out := newTestEngine()
	tg := engine.NewToggle()
	tg.X, tg.Y = 10, 20
	tg.Lab = "gate"
	tg.LCol = 0xff0000
	obj := New(in, out, nil, in.Add(root, tg))

	l, ok := obj.Label()
	if !ok {
		t.Fatal("expected a label")
	}
	if l.Text != "gate" || l.X != 27 || l.Y != 27 {
		t.Errorf("expected gate at 27,27, got %q at %d,%d", l.Text, l.X, l.Y)
	}
	if l.Color != 0xffff0000 {
		t.Errorf("expected red, got %#x", l.Color)
	}
	if l.FontHeight != 10 || l.FontName != engine.DefaultFont {
		t.Errorf("expected %s 10, got %s %v", engine.DefaultFont, l.FontName, l.FontHeight)
	}

	obj.SetLabel("")
	out.deliver(in)
	if _, ok := obj.Label(); ok {
		t.Error("expected label removed")
	}
}

func TestAtomLabel(t *testing.T) {
	in, root, out := newTestEngine()
	g := engine.NewGatom(engine.AtomFloat, 5)
	g.Label = "hz"
	obj := New(in, out, nil, in.Add(root, g))
	obj.SetLabelSide(LabelRight)
	out.deliver(in)

	l, ok := obj.Label()
	if !ok {
		t.Fatal("expected a label")
	}
	half := int(DefaultFonts.Height(12, 1) / 2)
	if l.X != 41 || l.Y != 2+half {
		t.Errorf("expected 41,%d, got %d,%d", 2+half, l.X, l.Y)
	}
	if math.Abs(l.FontHeight-DefaultFonts.Height(12, 1)) > 1e-9 {
		t.Errorf("expected canvas font height, got %v", l.FontHeight)
	}

	obj.SetLabelSide(LabelBelow)
	out.deliver(in)
	l, _ = obj.Label()
	if l.X != -1 || l.Y != 18+2+half {
		t.Errorf("expected -1,%d, got %d,%d", 18+2+half, l.X, l.Y)
	}

	// positioning against given bounds assumes a 17 pixel line
	tests := []struct {
		side int
		x, y int
	}{
		{LabelRight, 41, 2 + 8},
		{LabelAbove, -1, -1 - 8},
		{LabelBelow, -1, 18 + 2 + 8},
	}
	for _, tt := range tests {
		obj.SetLabelSide(tt.side)
		out.deliver(in)
		if x, y := obj.LabelPosition(obj.Bounds()); x != tt.x || y != tt.y {
			t.Errorf("side %d: expected %d,%d, got %d,%d", tt.side, tt.x, tt.y, x, y)
		}
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		in   string
		want int32
		err  bool
	}{
		{"#ff8000", 0xff8000, false},
		{"ff8000", 0xff8000, false},
		{"#80ff8000", 0xff8000, false},
		{"xyz", 0, true},
		{"#gggggg", 0, true},
	}
	for _, tt := range tests {
		got, err := ToIEM(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("%s: expected %#x (err %v), got %#x (%v)", tt.in, tt.want, tt.err, got, err)
		}
	}

	if got := FromIEM(0x123456); got != 0xff123456 {
		t.Errorf("expected 0xff123456, got %#x", got)
	}

	in, root, out := newTestEngine()
	obj := New(in, out, nil, in.Add(root, engine.NewBang()))
	if err := obj.SetBackgroundColor("#00ff00"); err != nil {
		t.Fatal(err)
	}
	if err := obj.SetLabelColor("nope"); err == nil {
		t.Error("expected a bad colour rejected")
	}
	if len(out.msgs) != 1 {
		t.Errorf("expected one colour change queued, got %d", len(out.msgs))
	}
	out.deliver(in)
	if got := obj.BackgroundColor(); got != 0xff00ff00 {
		t.Errorf("expected green, got %#x", got)
	}

	msg := New(in, out, nil, in.Add(root, engine.NewMessage("x")))
	if got := msg.BackgroundColor(); got != DefaultBackground {
		t.Errorf("expected default background, got %#x", got)
	}
}

func TestFontTable(t *testing.T) {
	if got := DefaultFonts.Height(12, 2); math.Abs(got-2*11.6403) > 1e-9 {
		t.Errorf("expected measured height, got %v", got)
	}
	if got := DefaultFonts.Height(14, 1); got != 16 {
		t.Errorf("expected nearest line height 16, got %v", got)
	}
	if got := DefaultFonts.Width(7, 1); got != 5 {
		t.Errorf("expected smallest width 5, got %d", got)
	}
	if got := DefaultFonts.Nearest(100).Size; got != 36 {
		t.Errorf("expected 36, got %d", got)
	}
}
