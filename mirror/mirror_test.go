package mirror

import (
	"math"
	"testing"

	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

func newTestArray(t *testing.T, name string, size int) (*engine.Instance, *engine.Garray) {
	t.Helper()
	in := engine.NewInstance(48000)
	root := in.NewCanvas(engine.NoHandle, "test", 0, 0)
	g := in.NewArray(root, name, size, 0, 0)
	obj, ok := in.Lookup(in.Children(g)[0])
	if !ok {
		t.Fatal("array storage missing")
	}
	return in, obj.(*engine.Garray)
}

func TestDragAtCenter(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 100)
	m := New(in, "tab1", 0)

	if !m.BeginEdit() {
		t.Fatal("expected edit to start")
	}
	i, v, ok := m.DragAt(0.5, 0.5)
	m.EndEdit()

	if !ok || i != 50 || v != 0 {
		t.Errorf("expected index 50 value 0, got %d %v (%v)", i, v, ok)
	}
	if m.At(50) != 0 || arr.Data[50] != 0 {
		t.Errorf("expected both copies at 0, got %v / %v", m.At(50), arr.Data[50])
	}
}

func TestDragAtCorners(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 10)
	m := New(in, "tab1", 0)

	tests := []struct {
		nx, ny float64
		index  int
		value  float64
	}{
		{0, 0, 0, 1},
		{1, 1, 9, -1},
		{0.5, 0.25, 5, 0.5},
		{-1, 2, 0, -1},
	}
	for _, tt := range tests {
		i, v, ok := m.DragAt(tt.nx, tt.ny)
		if !ok || i != tt.index || math.Abs(v-tt.value) > 1e-12 {
			t.Errorf("drag %v,%v: expected %d %v, got %d %v", tt.nx, tt.ny, tt.index, tt.value, i, v)
		}
		if arr.Data[i] != v {
			t.Errorf("drag %v,%v: engine has %v, expected %v", tt.nx, tt.ny, arr.Data[i], v)
		}
	}
}

func TestDragWhileEngineBusy(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 10)
	m := New(in, "tab1", 0)
	m.BeginEdit()

	in.Lock()
	_, v, ok := m.DragAt(0, 0)
	in.Unlock()

	if !ok || m.At(0) != v {
		t.Fatalf("expected local copy written, got %v (%v)", m.At(0), ok)
	}
	if arr.Data[0] != 0 {
		t.Errorf("expected engine write skipped while locked, got %v", arr.Data[0])
	}
	if m.Refresh() {
		t.Error("expected refresh to wait while editing")
	}

	m.EndEdit()
	if !m.Refresh() {
		t.Error("expected refresh to reconcile after the edit")
	}
	if m.At(0) != 0 {
		t.Errorf("expected engine value restored, got %v", m.At(0))
	}
}

func TestRefreshIdempotent(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 10)
	m := New(in, "tab1", 0)

	if m.Refresh() {
		t.Error("expected no change on an untouched array")
	}

	arr.Data[3] = 0.5
	if !m.Refresh() {
		t.Error("expected a change after the engine wrote")
	}
	if m.At(3) != 0.5 {
		t.Errorf("expected 0.5, got %v", m.At(3))
	}
	if m.Refresh() {
		t.Error("expected second refresh to report nothing")
	}

	in.SetArrayScale("tab1", 0, 10)
	if !m.Refresh() {
		t.Error("expected a scale change to count")
	}
	if lo, hi := m.Scale(); lo != 0 || hi != 10 {
		t.Errorf("expected 0..10, got %v..%v", lo, hi)
	}
}

func TestMissingArray(t *testing.T) {
	in := engine.NewInstance(48000)
	root := in.NewCanvas(engine.NoHandle, "test", 0, 0)
	m := New(in, "ghost", 0)

	if m.State() != Error {
		t.Fatalf("expected error state, got %s", m.State())
	}
	if got := m.Placeholder(); got != "array ghost is invalid" {
		t.Errorf("unexpected placeholder %q", got)
	}
	if m.BeginEdit() {
		t.Error("expected edits refused while in error")
	}
	if _, _, ok := m.DragAt(0.5, 0.5); ok {
		t.Error("expected drag refused while in error")
	}
	if m.Refresh() {
		t.Error("expected repeated failure not to report a change")
	}

	in.NewArray(root, "ghost", 4, 0, 0)
	if !m.Refresh() {
		t.Error("expected recovery to report a change")
	}
	if m.State() != Clean || m.Len() != 4 {
		t.Errorf("expected clean with 4 samples, got %s with %d", m.State(), m.Len())
	}
}

func TestEmptyName(t *testing.T) {
	in := engine.NewInstance(48000)
	if m := New(in, "", 0); m.State() != Error {
		t.Errorf("expected error state, got %s", m.State())
	}
}

func TestCapacity(t *testing.T) {
	in, _ := newTestArray(t, "tab1", 10)
	if m := New(in, "tab1", 4); m.Len() != 4 {
		t.Errorf("expected 4 samples, got %d", m.Len())
	}
}

func TestDragBox(t *testing.T) {
	in, _ := newTestArray(t, "tab1", 11)
	m := New(in, "tab1", 0)

	i, v, ok := m.Drag(50, 0, 100, 40)
	if !ok || i != 5 || v != 1 {
		t.Errorf("expected index 5 value 1, got %d %v", i, v)
	}
	if _, _, ok := m.Drag(1, 1, 0, 0); ok {
		t.Error("expected empty box to be refused")
	}
}

func TestDragNotifiesEngine(t *testing.T) {
	in, _ := newTestArray(t, "tab1", 10)
	inbox := queue.NewInbox()
	m := New(in, "tab1", 0)
	m.SetPoster(inbox)

	redraws := 0
	in.SetOutletHook(func(h engine.Handle, selector string, atoms []engine.Atom) {
		if selector == "redraw" {
			redraws++
		}
	})

	m.BeginEdit()
	m.DragAt(0.5, 0.5)
	in.Lock()
	m.DragAt(0.2, 0.2) // engine busy: no write, no notice
	in.Unlock()
	m.EndEdit()

	if inbox.Posted() != 1 {
		t.Errorf("expected one notice queued, got %d", inbox.Posted())
	}
	in.Lock()
	inbox.DrainTo(in)
	in.Unlock()
	if redraws != 1 {
		t.Errorf("expected one redraw from the array, got %d", redraws)
	}
}
