package theme

import (
	"strings"
	"testing"
)

const gpl = `GIMP Palette
Name: two tone
Columns: 2
# comment
  0   0   0	black
200 100  50	rust
not a colour line
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(gpl))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "two tone" {
		t.Errorf("expected name %q, got %q", "two tone", p.Name)
	}
	if len(p.Colors) != 2 || p.Colors[1] != (RGB{200, 100, 50}) {
		t.Errorf("expected black and rust, got %v", p.Colors)
	}

	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n")); err == nil {
		t.Error("expected an error for a palette without colours")
	}
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	tests := []struct {
		norm float64
		want RGB
	}{
		{-1, RGB{0, 0, 0}},
		{0.5, RGB{100, 50, 25}},
		{2, RGB{200, 100, 50}},
	}
	for _, tt := range tests {
		if got := p.Lookup(tt.norm); got != tt.want {
			t.Errorf("Lookup(%v): expected %v, got %v", tt.norm, tt.want, got)
		}
	}
}

func TestThemeColors(t *testing.T) {
	th := New(nil)
	if th.FG() != "#fcfcfc" {
		t.Errorf("expected default foreground, got %s", th.FG())
	}
	if th.Accent() != "#4a9ed6" {
		t.Errorf("expected default accent, got %s", th.Accent())
	}
	if ARGB(0xff4a9ed6) != "#4a9ed6" {
		t.Errorf("expected alpha ignored, got %s", ARGB(0xff4a9ed6))
	}
	if th.Level(3) != th.Active() || th.Level(-6) != th.Warning() || th.Level(-80) != th.Muted() {
		t.Error("expected meter colours by level")
	}
}
