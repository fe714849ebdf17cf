package widgets

import (
	"testing"

	"go-patchbridge/mirror"
)

func TestBrailleSet(t *testing.T) {
	b := NewBraille(2, 1)
	b.Set(0, 0)
	b.Set(3, 3)
	b.Set(4, 0) // outside
	b.Set(-1, 2)
	if got := b.String(); got != "⠁⢀" {
		t.Errorf("expected %q, got %q", "⠁⢀", got)
	}
	if w, h := b.Dots(); w != 4 || h != 4 {
		t.Errorf("expected 4x4 dots, got %dx%d", w, h)
	}
}

func TestBrailleLine(t *testing.T) {
	b := NewBraille(2, 2)
	b.Line(0, 0, 3, 0)
	b.Line(0, 7, 0, 7)
	if got := b.String(); got != "⠉⠉\n⡀⠀" {
		t.Errorf("expected top row and one dot, got %q", got)
	}
}

func TestRenderPlotEmpty(t *testing.T) {
	got := RenderPlot(mirror.Path{}, 3, 1)
	if got != "⠀⠀⠀" {
		t.Errorf("expected a blank row, got %q", got)
	}
}

func TestNoteName(t *testing.T) {
	tests := map[int]string{60: "C4", 61: "C#4", 69: "A4", 0: "C-1", 127: "G9"}
	for n, want := range tests {
		if got := NoteName(n); got != want {
			t.Errorf("NoteName(%d): expected %s, got %s", n, want, got)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		v     float64
		width int
		want  string
	}{
		{3.5, 8, "3.5"},
		{440, 0, "440"},
		{123456789, 4, "++++"},
		{-0.25, 5, "-0.25"},
	}
	for _, tt := range tests {
		if got := Number(tt.v, tt.width); got != tt.want {
			t.Errorf("Number(%v, %d): expected %q, got %q", tt.v, tt.width, tt.want, got)
		}
	}
}

func TestHelpLine(t *testing.T) {
	got := HelpLine([]KeyBinding{{Key: "q", Desc: "quit"}, {Key: "tab", Desc: "next"}})
	if got != "q:quit  tab:next" {
		t.Errorf("expected %q, got %q", "q:quit  tab:next", got)
	}
}
