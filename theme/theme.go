package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	ToggleOn  rune // ☒
	ToggleOff rune // ☐
	RadioOn   rune // ◉
	RadioOff  rune // ○
	BangOn    rune // ●
	BangOff   rune // ◯
	Fill      rune // █ slider/meter filled
	Track     rune // ─ slider track
	VTrack    rune // │ vertical slider track
	Knob      rune // ┃ slider position
	PadDot    rune // ✛ pad pointer
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			ToggleOn:  '☒',
			ToggleOff: '☐',
			RadioOn:   '◉',
			RadioOff:  '○',
			BangOn:    '●',
			BangOff:   '◯',
			Fill:      '█',
			Track:     '─',
			VTrack:    '│',
			Knob:      '┃',
			PadDot:    '✛',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.125
	RoleMuted   = 0.25
	RoleFG      = 0.5
	RoleAccent  = 0.625
	RoleActive  = 0.75
	RoleWarning = 0.875
	RoleSuccess = 1.0
)

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Level returns a meter colour for a dB value: muted below -60, success up
// to -12, warning up to 0 and active above
func (t *Theme) Level(db float64) lipgloss.Color {
	switch {
	case db > 0:
		return t.Active()
	case db > -12:
		return t.Warning()
	case db > -60:
		return t.Success()
	}
	return t.Muted()
}

// ARGB converts an engine colour to a terminal colour
func ARGB(c uint32) lipgloss.Color {
	return rgbToLipgloss(FromARGB(c))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
