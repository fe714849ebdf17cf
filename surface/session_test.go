package surface

import (
	"errors"
	"testing"

	"go-patchbridge/bridge"
	"go-patchbridge/engine"
	"go-patchbridge/midi"
	"go-patchbridge/queue"
)

type fixture struct {
	in      *engine.Instance
	root    engine.Handle
	session *Session
	block   []float32
}

func newFixture(build func(in *engine.Instance, root engine.Handle)) (*fixture, CanvasID) {
	in := engine.NewInstance(48000)
	root := in.NewCanvas(engine.NoHandle, "test", 0, 0)
	if build != nil {
		build(in, root)
	}
	s := NewSession(in, Options{CCMap: map[int]string{1: "cutoff"}})
	s.Attach()
	f := &fixture{in: in, root: root, session: s, block: make([]float32, 64)}
	return f, s.Load(root)
}

// cycle runs one engine block and applies what it produced
func (f *fixture) cycle() []ID {
	f.in.Process(f.block)
	return f.session.Sync()
}

func TestValueRoundTrip(t *testing.T) {
	var (
		tg *engine.Toggle
		h  engine.Handle
	)
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		tg = engine.NewToggle()
		tg.Rcv, tg.RcvAble = "t1", true
		h = in.Add(root, tg)
	})
	c, ok := f.session.ControlFor(h)
	if !ok {
		t.Fatal("expected a control for the toggle")
	}

	c.SetValue(1)
	if tg.On != 0 {
		t.Error("expected the engine untouched before the cycle")
	}
	f.cycle()
	if tg.On != 1 {
		t.Errorf("expected toggle on after the cycle, got %v", tg.On)
	}

	// a change made inside the engine comes back as a snapshot
	f.session.Inbox().Post(queue.Send("t1", "float", engine.Float(0)))
	dirty := f.cycle()
	if len(dirty) != 1 || dirty[0] != c.ID() {
		t.Errorf("expected control %d dirty, got %v", c.ID(), dirty)
	}
	if c.Value() != 0 {
		t.Errorf("expected 0, got %v", c.Value())
	}
}

func TestEditDropsSnapshots(t *testing.T) {
	var (
		h engine.Handle
		s *engine.Slider
	)
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		s = engine.NewSlider(false)
		s.Rcv, s.RcvAble = "s1", true
		h = in.Add(root, s)
	})
	c, _ := f.session.ControlFor(h)
	f.cycle()

	c.StartEdit()
	c.SetValue(30)
	if dirty := f.cycle(); len(dirty) != 0 {
		t.Errorf("expected the echo of 30 dropped, got %v", dirty)
	}
	if !f.in.Editing() {
		t.Error("expected the engine to see the gesture")
	}

	f.session.Inbox().Post(queue.Send("s1", "float", engine.Float(64)))
	f.cycle()
	if c.Value() != 30 {
		t.Errorf("expected the display held during the gesture, got %v", c.Value())
	}

	c.SetValue(50)
	c.StopEdit()
	if c.Value() != 50 {
		t.Errorf("expected the user's last value after the gesture, got %v", c.Value())
	}

	dirty := f.cycle()
	if s.Val != 50 {
		t.Errorf("expected the engine at 50, got %v", s.Val)
	}
	if len(dirty) != 0 || c.Value() != 50 {
		t.Errorf("expected no rewind, got %v dirty=%v", c.Value(), dirty)
	}
	if f.in.Editing() {
		t.Error("expected the gesture closed in the engine")
	}

	// after the gesture engine changes show again
	f.session.Inbox().Post(queue.Send("s1", "float", engine.Float(10)))
	f.cycle()
	if c.Value() != 10 {
		t.Errorf("expected 10, got %v", c.Value())
	}
}

func TestSubpatchBecomesGraph(t *testing.T) {
	var sub engine.Handle
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		sub = in.NewCanvas(root, "sub", 0, 0)
		in.Add(sub, engine.NewToggle())
	})
	c, _ := f.session.ControlFor(sub)
	if c.Kind() != bridge.Subpatch {
		t.Fatalf("expected subpatch, got %s", c.Kind())
	}
	if _, ok := f.session.Inline(c.ID()); ok {
		t.Error("expected no inline canvas for a plain subpatch")
	}

	f.in.Lock()
	f.in.SetGraphFlag(sub, true)
	f.in.Unlock()

	dirty := f.cycle()
	if c.Kind() != bridge.GraphOnParent {
		t.Fatalf("expected graph, got %s", c.Kind())
	}
	found := false
	for _, id := range dirty {
		found = found || id == c.ID()
	}
	if !found {
		t.Error("expected the graph control reported dirty")
	}
	cv, ok := f.session.Inline(c.ID())
	if !ok || len(f.session.Controls(cv.ID)) != 1 {
		t.Error("expected the graph's toggle loaded inline")
	}
}

func TestRemovedObject(t *testing.T) {
	var h engine.Handle
	f, root := newFixture(func(in *engine.Instance, root engine.Handle) {
		h = in.Add(root, engine.NewToggle())
		in.Add(root, engine.NewTabosc("tab", "", 440))
	})
	if f.session.Len() != 1 {
		t.Fatalf("expected tabosc skipped, got %d controls", f.session.Len())
	}
	c, _ := f.session.ControlFor(h)

	f.in.Lock()
	f.in.Remove(h)
	f.in.Unlock()

	c.SetValue(1)
	f.cycle()

	if f.session.Len() != 0 {
		t.Errorf("expected control removed, got %d", f.session.Len())
	}
	if len(f.session.Controls(root)) != 0 {
		t.Error("expected the canvas emptied")
	}
	if f.session.Inbox().Discarded() != 1 {
		t.Errorf("expected the late edit discarded, got %d", f.session.Inbox().Discarded())
	}
}

func TestCommit(t *testing.T) {
	var num, list, com engine.Handle
	var g *engine.Gatom
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		g = engine.NewGatom(engine.AtomFloat, 5)
		num = in.Add(root, g)
		list = in.Add(root, engine.NewGatom(engine.AtomNull, 10))
		com = in.Add(root, engine.NewComment("note"))
	})

	c, _ := f.session.ControlFor(num)
	c.StartEdit()
	if err := c.Commit(" 12.5 "); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if c.Edited() {
		t.Error("expected commit to close the gesture")
	}
	f.cycle()
	if g.Binbuf[0].F != 12.5 {
		t.Errorf("expected 12.5, got %v", g.Binbuf)
	}
	if err := c.Commit("abc"); err == nil {
		t.Error("expected a parse error")
	}

	l, _ := f.session.ControlFor(list)
	if err := l.Commit("1 two 3"); err != nil {
		t.Fatalf("commit list: %v", err)
	}
	if got := l.EditText(); got != "1 two 3" {
		t.Errorf("expected list text kept, got %q", got)
	}

	cm, _ := f.session.ControlFor(com)
	if err := cm.Commit("x"); !errors.Is(err, ErrNotEditable) {
		t.Errorf("expected ErrNotEditable, got %v", err)
	}
}

func TestRadioSelectAndStep(t *testing.T) {
	var rh, nh engine.Handle
	var r *engine.Radio
	var n *engine.Numbox
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		r = engine.NewRadio(false, 4)
		rh = in.Add(root, r)
		n = engine.NewNumbox(5)
		n.Min, n.Max = 0, 10
		nh = in.Add(root, n)
	})

	rc, _ := f.session.ControlFor(rh)
	rc.Select(9)
	nc, _ := f.session.ControlFor(nh)
	nc.Step(-1)
	nc.Step(4)
	f.cycle()

	if r.On != 3 {
		t.Errorf("expected radio clamped to 3, got %d", r.On)
	}
	if n.Val != 4 {
		t.Errorf("expected number 4, got %v", n.Val)
	}
}

func TestScaledSlider(t *testing.T) {
	var h engine.Handle
	var s *engine.Slider
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		s = engine.NewSlider(false)
		s.Min, s.Max = 0, 200
		h = in.Add(root, s)
	})
	c, _ := f.session.ControlFor(h)

	c.SetValueScaled(0.25)
	f.cycle()
	if s.Val != 50 {
		t.Errorf("expected 50, got %v", s.Val)
	}
	if c.ValueScaled() != 0.25 {
		t.Errorf("expected 0.25, got %v", c.ValueScaled())
	}
}

func TestMIDIRouting(t *testing.T) {
	var s *engine.Slider
	var k *engine.Keyboard
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		s = engine.NewSlider(true)
		s.Rcv, s.RcvAble = "cutoff", true
		in.Add(root, s)
		k = engine.NewKeyboard(48, 72)
		in.Add(root, k)
	})

	f.session.HandleMIDI(midi.Event{Type: midi.CC, Controller: 1, Value: 64})
	f.session.HandleMIDI(midi.Event{Type: midi.CC, Controller: 2, Value: 99})
	f.session.HandleMIDI(midi.Event{Type: midi.NoteOn, Note: 60, Velocity: 100})
	f.cycle()

	if s.Val != 64 {
		t.Errorf("expected mapped cc to set 64, got %v", s.Val)
	}
	if !k.Held[60] {
		t.Error("expected note 60 held")
	}

	f.session.HandleMIDI(midi.Event{Type: midi.NoteOff, Note: 60})
	f.cycle()
	if k.Held[60] {
		t.Error("expected note 60 released")
	}
}

func TestArrayMirror(t *testing.T) {
	var g engine.Handle
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		g = in.NewArray(root, "tab1", 8, 0, 0)
	})
	c, _ := f.session.ControlFor(g)
	if c.Kind() != bridge.Array || c.Mirror() == nil {
		t.Fatalf("expected an array control with a mirror, got %s", c.Kind())
	}

	if dirty := f.session.TickMirrors(); len(dirty) != 0 {
		t.Errorf("expected nothing changed, got %v", dirty)
	}

	f.in.Lock()
	f.in.WriteArray("tab1", 2, []float64{0.5})
	f.in.Unlock()

	dirty := f.session.TickMirrors()
	if len(dirty) != 1 || dirty[0] != c.ID() {
		t.Errorf("expected control %d changed, got %v", c.ID(), dirty)
	}
	if c.Mirror().At(2) != 0.5 {
		t.Errorf("expected 0.5, got %v", c.Mirror().At(2))
	}
}

func TestPadAndPointer(t *testing.T) {
	var p *engine.Pad
	var m *engine.Mouse
	var ph, mh engine.Handle
	f, _ := newFixture(func(in *engine.Instance, root engine.Handle) {
		p = engine.NewPad(127, 127)
		ph = in.Add(root, p)
		m = engine.NewMouse()
		mh = in.Add(root, m)
	})

	pc, _ := f.session.ControlFor(ph)
	pc.Pad(0.5, 1, true)
	pc.PadRelease()
	mc, _ := f.session.ControlFor(mh)
	mc.Pointer(10, 20, true)
	f.cycle()

	if p.X != 63.5 || p.Y != 127 {
		t.Errorf("expected pad at 63.5,127, got %v,%v", p.X, p.Y)
	}
	if m.Up || m.X != 10 || m.Y != 20 {
		t.Errorf("expected dragging pointer at 10,20, got up=%v %v,%v", m.Up, m.X, m.Y)
	}
}
