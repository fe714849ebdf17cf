package widgets

import (
	"math"
	"strings"

	"go-patchbridge/mirror"
)

// braille dot bits indexed by [row][col] within a 2x4 cell
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Braille is a dot canvas drawn with braille characters, two dots wide and
// four dots tall per cell
type Braille struct {
	cols, rows int
	cells      []rune
}

// NewBraille creates a canvas of cols by rows terminal cells
func NewBraille(cols, rows int) *Braille {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Braille{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
}

// Dots returns the canvas size in dots
func (b *Braille) Dots() (w, h int) { return b.cols * 2, b.rows * 4 }

// Set lights the dot at x, y; points outside the canvas are ignored
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.cols*2 || y >= b.rows*4 {
		return
	}
	b.cells[(y/4)*b.cols+x/2] |= brailleBits[y%4][x%2]
}

// Line draws a straight line between two dot positions
func (b *Braille) Line(x0, y0, x1, y1 float64) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		b.Set(int(math.Round(x0)), int(math.Round(y0)))
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.Set(int(math.Round(x0+(x1-x0)*t)), int(math.Round(y0+(y1-y0)*t)))
	}
}

// String renders the canvas, one line per row
func (b *Braille) String() string {
	var out strings.Builder
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c := 0; c < b.cols; c++ {
			out.WriteRune(0x2800 + b.cells[r*b.cols+c])
		}
	}
	return out.String()
}

// RenderPlot rasterizes an array plot into cols by rows cells. The path
// must have been laid out in a box of the canvas's dot size.
func RenderPlot(p mirror.Path, cols, rows int) string {
	b := NewBraille(cols, rows)
	for _, seg := range p.Flatten(8) {
		b.Line(seg[0].X, seg[0].Y, seg[1].X, seg[1].Y)
	}
	return b.String()
}
