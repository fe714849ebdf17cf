package widgets

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-patchbridge/theme"
)

// Slider renders a bar of length cells filled to norm (0-1). Vertical
// sliders fill from the bottom, one cell per line.
func Slider(th *theme.Theme, norm float64, length int, vertical bool, fg lipgloss.Color) string {
	if length < 1 {
		length = 1
	}
	filled := int(math.Round(clamp01(norm) * float64(length)))
	fill := lipgloss.NewStyle().Foreground(fg)
	track := lipgloss.NewStyle().Foreground(th.Muted())

	if !vertical {
		return fill.Render(strings.Repeat(string(th.Symbols.Fill), filled)) +
			track.Render(strings.Repeat(string(th.Symbols.Track), length-filled))
	}
	lines := make([]string, length)
	for i := range lines {
		if length-i <= filled {
			lines[i] = fill.Render(string(th.Symbols.Fill))
		} else {
			lines[i] = track.Render(string(th.Symbols.VTrack))
		}
	}
	return strings.Join(lines, "\n")
}

// Toggle renders a checkbox
func Toggle(th *theme.Theme, on bool, fg lipgloss.Color) string {
	r := th.Symbols.ToggleOff
	if on {
		r = th.Symbols.ToggleOn
	}
	return lipgloss.NewStyle().Foreground(fg).Render(string(r))
}

// Radio renders n buttons with sel lit
func Radio(th *theme.Theme, n, sel int, vertical bool, fg lipgloss.Color) string {
	on := lipgloss.NewStyle().Foreground(fg)
	off := lipgloss.NewStyle().Foreground(th.Muted())
	parts := make([]string, n)
	for i := range parts {
		if i == sel {
			parts[i] = on.Render(string(th.Symbols.RadioOn))
		} else {
			parts[i] = off.Render(string(th.Symbols.RadioOff))
		}
	}
	if vertical {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, " ")
}

// Bang renders a bang button, lit while flashing
func Bang(th *theme.Theme, lit bool, fg lipgloss.Color) string {
	if lit {
		return lipgloss.NewStyle().Foreground(fg).Render(string(th.Symbols.BangOn))
	}
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.BangOff))
}

// Number formats a value for a box width characters wide. Values that
// don't fit are shown as "+" like the engine does.
func Number(v float64, width int) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if width > 0 && len(s) > width {
		s = strconv.FormatFloat(v, 'g', max(1, width-5), 64)
		if len(s) > width {
			s = strings.Repeat("+", width)
		}
	}
	return s
}

// Box renders a number or atom box: "[text" padded to width with a notch
func Box(text string, width int, focused bool, fg lipgloss.Color) string {
	if width < 1 {
		width = len(text)
	}
	if len(text) < width {
		text += strings.Repeat(" ", width-len(text))
	}
	style := lipgloss.NewStyle().Foreground(fg)
	if focused {
		style = style.Underline(true)
	}
	return style.Render("[" + text + ">")
}

// Message renders a message box with its flag-shaped right edge
func Message(text string, flash bool, fg lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(fg)
	if flash {
		style = style.Bold(true)
	}
	return style.Render("[" + text + "(")
}

// Comment renders comment text
func Comment(th *theme.Theme, text string) string {
	return lipgloss.NewStyle().Foreground(th.Muted()).Italic(true).Render(text)
}

// Panel renders a filled rectangle of cols by rows cells
func Panel(cols, rows int, bg lipgloss.Color) string {
	cols, rows = max(1, cols), max(1, rows)
	line := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", cols))
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// meter range in dB, matching the engine's floor
const (
	meterFloor = -100.0
	meterTop   = 12.0
)

// Meter renders an rms bar with a peak tick. Levels are in dB.
func Meter(th *theme.Theme, rms, peak float64, length int) string {
	if length < 2 {
		length = 2
	}
	pos := func(db float64) int {
		return int(math.Round(clamp01((db-meterFloor)/(meterTop-meterFloor)) * float64(length-1)))
	}
	r, p := pos(rms), pos(peak)
	if rms <= meterFloor {
		r = -1
	}

	var out strings.Builder
	for i := 0; i < length; i++ {
		db := meterFloor + float64(i)/float64(length-1)*(meterTop-meterFloor)
		switch {
		case i <= r:
			out.WriteString(lipgloss.NewStyle().Foreground(th.Level(db)).Render(string(th.Symbols.Fill)))
		case i == p && peak > meterFloor:
			out.WriteString(lipgloss.NewStyle().Foreground(th.Level(db)).Render(string(th.Symbols.Knob)))
		default:
			out.WriteString(lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.Track)))
		}
	}
	return out.String()
}

// Pad renders an XY pad with the pointer at nx, ny (0-1, y down)
func Pad(th *theme.Theme, nx, ny float64, cols, rows int, bg lipgloss.Color) string {
	cols, rows = max(1, cols), max(1, rows)
	px := int(math.Round(clamp01(nx) * float64(cols-1)))
	py := int(math.Round(clamp01(ny) * float64(rows-1)))
	style := lipgloss.NewStyle().Background(bg).Foreground(th.Accent())
	lines := make([]string, rows)
	for y := range lines {
		row := []rune(strings.Repeat(" ", cols))
		if y == py {
			row[px] = th.Symbols.PadDot
		}
		lines[y] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

var blackKeys = [12]bool{1: true, 3: true, 6: true, 8: true, 10: true}

// Keyboard renders one cell per note from low to high; held notes are lit
func Keyboard(th *theme.Theme, low, high int, held map[int]bool) string {
	white := lipgloss.NewStyle().Foreground(th.FG())
	black := lipgloss.NewStyle().Foreground(th.Muted())
	lit := lipgloss.NewStyle().Foreground(th.Active())

	var out strings.Builder
	for n := low; n <= high; n++ {
		switch {
		case held[n]:
			out.WriteString(lit.Render("█"))
		case blackKeys[((n%12)+12)%12]:
			out.WriteString(black.Render("▄"))
		default:
			out.WriteString(white.Render("▀"))
		}
	}
	return out.String()
}

// NoteName returns a note name such as "C4" for MIDI note 60
func NoteName(n int) string {
	names := [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	return fmt.Sprintf("%s%d", names[((n%12)+12)%12], n/12-1)
}

// Label renders a control label in its colour
func Label(text string, fg lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(fg).Render(text)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
