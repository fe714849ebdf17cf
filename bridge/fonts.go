package bridge

import "go-patchbridge/engine"

// FontMetric describes one engine font size
type FontMetric struct {
	Size   int
	Width  int     // character cell width in pixels
	Height int     // line height in pixels
	Host   float64 // rendered glyph height at zoom 1
}

// FontTable maps engine font sizes to pixel metrics. It is immutable once
// built and safe to share.
type FontTable struct {
	name    string
	metrics []FontMetric
}

// NewFontTable builds a table. Metrics must be sorted by size.
func NewFontTable(name string, metrics []FontMetric) *FontTable {
	return &FontTable{name: name, metrics: append([]FontMetric(nil), metrics...)}
}

// DefaultFonts matches the engine's built-in monospace font
var DefaultFonts = NewFontTable(engine.DefaultFont, []FontMetric{
	{Size: 8, Width: 5, Height: 11, Host: 8.31571},
	{Size: 10, Width: 6, Height: 13, Host: 9.9651},
	{Size: 12, Width: 7, Height: 16, Host: 11.6403},
	{Size: 16, Width: 10, Height: 19, Host: 16.6228},
	{Size: 24, Width: 14, Height: 29, Host: 23.0142},
	{Size: 36, Width: 22, Height: 44, Host: 36.0032},
})

// Name returns the font family
func (t *FontTable) Name() string { return t.name }

// Nearest returns the largest metric not bigger than size, or the smallest
func (t *FontTable) Nearest(size int) FontMetric {
	if len(t.metrics) == 0 {
		return FontMetric{Size: size, Width: 7, Height: 16, Host: float64(size)}
	}
	m := t.metrics[0]
	for _, c := range t.metrics {
		if c.Size <= size {
			m = c
		}
	}
	return m
}

// Height returns the text height for a canvas font size at zoom. Known sizes
// use the measured glyph height; others fall back to the nearest line height.
func (t *FontTable) Height(size, zoom int) float64 {
	if zoom < 1 {
		zoom = 1
	}
	for _, m := range t.metrics {
		if m.Size == size {
			return m.Host * float64(zoom)
		}
	}
	return float64(t.Nearest(size).Height * zoom)
}

// Width returns the character cell width at zoom
func (t *FontTable) Width(size, zoom int) int {
	if zoom < 1 {
		zoom = 1
	}
	return t.Nearest(size).Width * zoom
}

// LineHeight returns the integer line height at zoom
func (t *FontTable) LineHeight(size, zoom int) int {
	if zoom < 1 {
		zoom = 1
	}
	return t.Nearest(size).Height * zoom
}

// FontHeight returns the label font height: the IEM font size for IEM
// controls, the canvas font height for everything else.
func (o *Object) FontHeight() float64 {
	var h float64
	o.read(func(obj engine.Object) { h = o.fontHeightLocked(obj) })
	return h
}

func (o *Object) fontHeightLocked(obj engine.Object) float64 {
	if g := iem(obj); g != nil {
		return float64(g.FontSize)
	}
	size, zoom := o.eng.CanvasFont(o.handle)
	return o.fonts.Height(size, zoom)
}

// FontName returns the label font family
func (o *Object) FontName() string {
	name := o.fonts.Name()
	o.read(func(obj engine.Object) {
		if g := iem(obj); g != nil && g.Font != "" {
			name = g.Font
		}
	})
	return name
}
