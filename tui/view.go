package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-patchbridge/bridge"
	"go-patchbridge/mirror"
	"go-patchbridge/surface"
	"go-patchbridge/theme"
	"go-patchbridge/widgets"
)

// widget sizes in cells
const (
	sliderLen  = 32
	vsliderLen = 6
	meterLen   = 32
	boxWidth   = 8
	plotCols   = 48
	plotRows   = 4
	padCols    = 16
	padRows    = 4
	nameWidth  = 11
	headerRows = 3
)

var keyHelp = []widgets.KeyBinding{
	{Key: "j/k", Desc: "focus"},
	{Key: "h/l", Desc: "adjust"},
	{Key: "+/-", Desc: "nudge"},
	{Key: "space", Desc: "click"},
	{Key: "enter", Desc: "type"},
	{Key: "q", Desc: "quit"},
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	focusStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	statusStyle := lipgloss.NewStyle().
		Foreground(m.Theme.FG()).
		Background(m.Theme.Surface()).
		Padding(0, 1)

	header := headerStyle.Render(fmt.Sprintf("go-patchbridge  %d controls", m.Session.Len()))
	if m.DeviceMgr != nil {
		if ids := m.DeviceMgr.Controllers(); len(ids) > 0 {
			header += dimStyle.Render(fmt.Sprintf("  midi:%d", len(ids)))
		}
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	clear(m.bounds.rows)
	y := headerRows
	for i, r := range m.rows {
		c, ok := m.Session.Control(r.id)
		if !ok {
			continue
		}
		prefix := "  "
		if i == m.focus {
			prefix = focusStyle.Render("› ")
		}
		indent := strings.Repeat("  ", r.depth)
		name := dimStyle.Render(fmt.Sprintf("%-*s", nameWidth, c.Kind().String()))
		w := m.renderControl(c)
		line := lipgloss.JoinHorizontal(lipgloss.Top, prefix, indent, name, w, m.renderLabel(c))

		height := lipgloss.Height(line)
		m.bounds.rows[r.id] = hit{
			top:    y,
			height: height,
			left:   2 + len(indent) + nameWidth,
			width:  lipgloss.Width(w),
		}
		y += height

		out.WriteString(line)
		out.WriteString("\n")
	}

	out.WriteString("\n")
	if m.typing {
		out.WriteString(m.input.View())
		out.WriteString("\n")
	}
	if m.status != "" {
		out.WriteString(statusStyle.Render(m.status))
		out.WriteString("\n")
	}
	out.WriteString(dimStyle.Render(widgets.HelpLine(keyHelp)))

	return out.String()
}

func (m Model) fg(c *surface.Control) lipgloss.Color {
	col := c.Object().ForegroundColor()
	if col == bridge.DefaultForeground {
		return m.Theme.FG()
	}
	return theme.ARGB(col)
}

func (m Model) renderLabel(c *surface.Control) string {
	l, ok := c.Object().Label()
	if !ok {
		return ""
	}
	col := m.Theme.FG()
	if l.Color != bridge.DefaultForeground {
		col = theme.ARGB(l.Color)
	}
	return "  " + widgets.Label(l.Text, col)
}

func (m Model) renderControl(c *surface.Control) string {
	th := m.Theme
	id := c.ID()
	obj := c.Object()
	focused := m.rows[m.focus].id == id

	switch k := c.Kind(); {
	case k == bridge.HorizontalSlider:
		return widgets.Slider(th, c.ValueScaled(), sliderLen, false, m.fg(c)) + " " + widgets.Number(c.Value(), boxWidth)
	case k == bridge.VerticalSlider:
		return widgets.Slider(th, c.ValueScaled(), vsliderLen, true, m.fg(c))
	case k == bridge.Toggle:
		return widgets.Toggle(th, c.Value() != 0, m.fg(c))
	case k.IsRadio():
		return widgets.Radio(th, obj.Buttons(), int(c.Value()), k == bridge.VerticalRadio, m.fg(c))
	case k == bridge.Bang:
		return widgets.Bang(th, m.flash[id] > 0, m.fg(c))
	case k == bridge.Number, k == bridge.AtomNumber:
		return widgets.Box(widgets.Number(c.Value(), boxWidth), boxWidth, focused, m.fg(c))
	case k == bridge.AtomSymbol:
		return widgets.Box(c.Text(), boxWidth, focused, th.FG())
	case k == bridge.AtomList:
		parts := make([]string, 0, len(c.List()))
		for _, a := range c.List() {
			parts = append(parts, a.String())
		}
		return widgets.Box(strings.Join(parts, " "), boxWidth*2, focused, th.FG())
	case k == bridge.Message:
		return widgets.Message(c.Text(), m.flash[id] > 0, th.FG())
	case k == bridge.Comment:
		return widgets.Comment(th, c.Text())
	case k == bridge.Panel:
		return widgets.Panel(padCols, 2, theme.ARGB(obj.BackgroundColor()))
	case k == bridge.VuMeter:
		return widgets.Meter(th, c.Value(), obj.Peak(), meterLen)
	case k == bridge.Mousepad:
		p := m.pads[id]
		return widgets.Pad(th, p[0], p[1], padCols, padRows, th.Surface())
	case k == bridge.Keyboard:
		lo, hi := int(obj.Minimum()), int(obj.Maximum())
		note, ok := m.cursor[id]
		if !ok {
			note = lo
		}
		return widgets.Keyboard(th, lo, hi, m.held[id]) + " " + widgets.NoteName(note)
	case k == bridge.Mouse:
		return lipgloss.NewStyle().Foreground(th.Muted()).Render("(pointer)")
	case k == bridge.Array:
		return m.renderArray(c.Mirror(), m.cursor[id])
	case k == bridge.GraphOnParent:
		if cv, ok := m.Session.Inline(id); ok {
			return lipgloss.NewStyle().Foreground(th.Accent()).Render(cv.Name)
		}
	case k == bridge.Subpatch:
		return lipgloss.NewStyle().Foreground(th.Muted()).Render(fmt.Sprintf("[pd] %d objects", len(obj.Children())))
	}
	return ""
}

func (m Model) renderArray(mr *mirror.Mirror, cursor int) string {
	if mr == nil {
		return ""
	}
	if mr.State() == mirror.Error {
		return lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render(mr.Placeholder())
	}
	plot := widgets.RenderPlot(mr.Plot(plotCols*2-1, plotRows*4-1), plotCols, plotRows)
	plot = lipgloss.NewStyle().Foreground(m.Theme.Accent()).Render(plot)

	info := fmt.Sprintf("[%d] %s", cursor, widgets.Number(mr.At(cursor), boxWidth))
	if !mr.Hidden() {
		info = mr.Name() + " " + info
	}
	return lipgloss.JoinVertical(lipgloss.Left, plot, lipgloss.NewStyle().Foreground(m.Theme.Muted()).Render(info))
}
