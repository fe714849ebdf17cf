package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go-patchbridge/bridge"
	"go-patchbridge/surface"
)

// sliderSteps is how many key presses cross a slider
const sliderSteps = 32

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}
		return m, nil

	case "down", "j":
		if m.focus < len(m.rows)-1 {
			m.focus++
		}
		return m, nil

	case "tab":
		if len(m.rows) > 0 {
			m.focus = (m.focus + 1) % len(m.rows)
		}
		return m, nil
	}

	c, ok := m.focused()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.adjust(c, -1)
	case "right", "l":
		m.adjust(c, 1)
	case "+", "=":
		m.nudge(c, 1)
	case "-", "_":
		m.nudge(c, -1)
	case " ":
		m.activate(c)
	case "enter":
		return m.openInput(c)
	}
	return m, nil
}

// adjust moves a control one step: sliders by a fraction of their range,
// numbers by one, radios by one button. Arrays and keyboards move their
// cursor.
func (m *Model) adjust(c *surface.Control, dir int) {
	switch k := c.Kind(); {
	case k.IsSlider():
		c.StartEdit()
		c.SetValueScaled(bridge.Clamp01(c.ValueScaled() + float64(dir)/sliderSteps))
		c.StopEdit()
	case k == bridge.Number || k == bridge.AtomNumber:
		c.StartEdit()
		c.Step(float64(dir))
		c.StopEdit()
	case k.IsRadio():
		c.Select(int(c.Value()) + dir)
	case k == bridge.Array:
		if mr := c.Mirror(); mr != nil && mr.Len() > 0 {
			m.cursor[c.ID()] = max(0, min(mr.Len()-1, m.cursor[c.ID()]+dir))
		}
	case k == bridge.Keyboard:
		obj := c.Object()
		lo, hi := int(obj.Minimum()), int(obj.Maximum())
		note, ok := m.cursor[c.ID()]
		if !ok {
			note = lo
		}
		m.cursor[c.ID()] = max(lo, min(hi, note+dir))
	case k == bridge.Mousepad:
		p := m.pads[c.ID()]
		p[0] = bridge.Clamp01(p[0] + float64(dir)/16)
		m.pads[c.ID()] = p
		c.Pad(p[0], p[1], false)
	}
}

// nudge raises or lowers the sample under an array cursor by a sixteenth
// of the plot range, or moves a pad pointer vertically
func (m *Model) nudge(c *surface.Control, dir int) {
	switch c.Kind() {
	case bridge.Array:
		mr := c.Mirror()
		if mr == nil || mr.Len() == 0 || !mr.BeginEdit() {
			return
		}
		defer mr.EndEdit()
		i := m.cursor[c.ID()]
		lo, hi := mr.Scale()
		ny := 0.5
		if hi != lo {
			ny = 1 - (mr.At(i)-lo)/(hi-lo) - float64(dir)/16
		}
		nx := 0.0
		if mr.Len() > 1 {
			nx = float64(i) / float64(mr.Len()-1)
		}
		mr.DragAt(nx, ny)
	case bridge.Mousepad:
		p := m.pads[c.ID()]
		p[1] = bridge.Clamp01(p[1] - float64(dir)/16)
		m.pads[c.ID()] = p
		c.Pad(p[0], p[1], false)
	default:
		m.adjust(c, dir)
	}
}

// activate is the space bar: click, flip or play
func (m *Model) activate(c *surface.Control) {
	switch k := c.Kind(); {
	case k == bridge.Toggle:
		c.Toggle()
	case k == bridge.Bang || k == bridge.Message:
		c.Bang()
		m.flash[c.ID()] = 3
	case k.IsRadio():
		n := c.Object().Buttons()
		if n > 0 {
			c.Select((int(c.Value()) + 1) % n)
		}
	case k == bridge.Keyboard:
		note, ok := m.cursor[c.ID()]
		if !ok {
			note = int(c.Object().Minimum())
		}
		if m.held[c.ID()][note] {
			c.NoteOff(note)
			m.hold(c.ID(), note, false)
		} else {
			c.NoteOn(note, 100)
			m.hold(c.ID(), note, true)
		}
	case k == bridge.Mousepad:
		p := m.pads[c.ID()]
		c.Pad(p[0], p[1], true)
		c.PadRelease()
	}
}

func (m Model) openInput(c *surface.Control) (tea.Model, tea.Cmd) {
	switch k := c.Kind(); {
	case k.IsSlider(), k == bridge.Number, k.IsAtom(), k == bridge.Message:
	default:
		return m, nil
	}
	c.StartEdit()
	m.typing = true
	m.input.SetValue(c.EditText())
	m.input.CursorEnd()
	m.status = ""
	focus := m.input.Focus()
	return m, tea.Batch(focus, textinput.Blink)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, ok := m.focused()
	switch msg.Type {
	case tea.KeyEnter:
		m.typing = false
		m.input.Blur()
		if ok {
			if err := c.Commit(m.input.Value()); err != nil {
				m.status = err.Error()
			}
		}
		return m, nil
	case tea.KeyEsc:
		m.typing = false
		m.input.Blur()
		if ok {
			c.StopEdit()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouse runs pointer gestures: press focuses and starts a gesture on
// the widget under the pointer, motion continues it, release ends it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	for _, r := range m.rows {
		if c, ok := m.Session.Control(r.id); ok && c.Kind() == bridge.Mouse {
			c.Pointer(msg.X, msg.Y, m.dragged != 0)
		}
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		for i, r := range m.rows {
			h, ok := m.bounds.rows[r.id]
			if !ok || msg.Y < h.top || msg.Y >= h.top+h.height {
				continue
			}
			m.focus = i
			c, ok := m.Session.Control(r.id)
			if !ok {
				return
			}
			m.press(c, h, msg.X, msg.Y)
			return
		}

	case msg.Action == tea.MouseActionMotion && m.dragged != 0:
		c, ok := m.Session.Control(m.dragged)
		h, hok := m.bounds.rows[m.dragged]
		if ok && hok {
			m.drag(c, h, msg.X, msg.Y)
		}

	case msg.Action == tea.MouseActionRelease && m.dragged != 0:
		if c, ok := m.Session.Control(m.dragged); ok {
			switch c.Kind() {
			case bridge.Array:
				if mr := c.Mirror(); mr != nil {
					mr.EndEdit()
				}
			case bridge.Mousepad:
				c.PadRelease()
			default:
				c.StopEdit()
			}
		}
		m.dragged = 0
	}
}

func (m *Model) press(c *surface.Control, h hit, x, y int) {
	switch k := c.Kind(); {
	case k == bridge.Toggle, k == bridge.Bang, k == bridge.Message:
		m.activate(c)
	case k == bridge.HorizontalRadio:
		c.Select((x - h.left) / 2)
	case k == bridge.VerticalRadio:
		c.Select(y - h.top)
	case k.IsSlider():
		c.StartEdit()
		m.dragged = c.ID()
		m.drag(c, h, x, y)
	case k == bridge.Array:
		if mr := c.Mirror(); mr != nil && mr.BeginEdit() {
			m.dragged = c.ID()
			m.drag(c, h, x, y)
		}
	case k == bridge.Mousepad:
		nx, ny := norm(x-h.left, h.width), norm(y-h.top, h.height)
		m.pads[c.ID()] = [2]float64{nx, ny}
		c.Pad(nx, ny, true)
		m.dragged = c.ID()
	}
}

func (m *Model) drag(c *surface.Control, h hit, x, y int) {
	switch k := c.Kind(); {
	case k == bridge.HorizontalSlider:
		c.SetValueScaled(norm(x-h.left, h.width))
	case k == bridge.VerticalSlider:
		c.SetValueScaled(1 - norm(y-h.top, h.height))
	case k == bridge.Array:
		if mr := c.Mirror(); mr != nil {
			i, _, ok := mr.DragAt(norm(x-h.left, h.width), norm(y-h.top, h.height))
			if ok {
				m.cursor[c.ID()] = i
			}
		}
	case k == bridge.Mousepad:
		nx, ny := norm(x-h.left, h.width), norm(y-h.top, h.height)
		m.pads[c.ID()] = [2]float64{nx, ny}
		c.Pad(nx, ny, false)
	}
}

// norm maps a cell offset inside a span of n cells to [0, 1]
func norm(off, n int) float64 {
	if n <= 1 {
		return 0
	}
	return bridge.Clamp01(float64(off) / float64(n-1))
}
