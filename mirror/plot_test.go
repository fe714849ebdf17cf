package mirror

import (
	"testing"

	"go-patchbridge/engine"
)

func TestPlotPolygon(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 3)
	copy(arr.Data, []float64{-1, 0, 1})
	m := New(in, "tab1", 0)

	p := m.Plot(2, 2)
	want := Path{
		{Kind: MoveTo, Pts: [3]Point{{0, 2}}},
		{Kind: LineTo, Pts: [3]Point{{1, 1}}},
		{Kind: LineTo, Pts: [3]Point{{2, 0}}},
	}
	if len(p) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(p))
	}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("op %d: expected %+v, got %+v", i, want[i], p[i])
		}
	}

	segs := p.Flatten(8)
	if len(segs) != 2 {
		t.Errorf("expected 2 segments, got %d", len(segs))
	}
}

func TestPlotPoints(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 4)
	arr.Style = engine.StylePoints
	m := New(in, "tab1", 0)

	p := m.Plot(4, 2)
	if len(p) != 8 {
		t.Fatalf("expected a move and a line per sample, got %d ops", len(p))
	}
	if p[7].Pts[0].X != 4 {
		t.Errorf("expected last tick to end at 4, got %v", p[7].Pts[0].X)
	}
}

func TestPlotBezier(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 3)
	arr.Style = engine.StyleBezier
	copy(arr.Data, []float64{-1, 0, 1})
	m := New(in, "tab1", 0)

	p := m.Plot(2, 2)
	if len(p) != 2 || p[1].Kind != CubicTo {
		t.Fatalf("expected move then cubic, got %+v", p)
	}
	segs := p.Flatten(4)
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	if end := segs[3][1]; end != (Point{2, 0}) {
		t.Errorf("expected curve to end at 2,0, got %+v", end)
	}
}

func TestPlotClipsToScale(t *testing.T) {
	in, arr := newTestArray(t, "tab1", 2)
	copy(arr.Data, []float64{5, -5})
	m := New(in, "tab1", 0)

	p := m.Plot(1, 10)
	if p[0].Pts[0].Y != 0 || p[1].Pts[0].Y != 10 {
		t.Errorf("expected values clipped to the box, got %v and %v", p[0].Pts[0].Y, p[1].Pts[0].Y)
	}
}

func TestPlotError(t *testing.T) {
	in := engine.NewInstance(48000)
	if p := New(in, "ghost", 0).Plot(10, 10); p != nil {
		t.Errorf("expected no path, got %d ops", len(p))
	}
}
