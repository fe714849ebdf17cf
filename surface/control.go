package surface

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"go-patchbridge/bridge"
	"go-patchbridge/engine"
	"go-patchbridge/mirror"
	"go-patchbridge/queue"
)

// ErrNotEditable is returned when typed text is committed to a control that
// takes no text
var ErrNotEditable = errors.New("surface: control is not editable")

// ID names a control within a session
type ID uint64

// Control is the UI side of one classified object. It remembers what it
// last displayed and ignores engine snapshots while the user is editing.
// All methods run on the UI goroutine.
type Control struct {
	id     ID
	canvas CanvasID
	obj    *bridge.Object
	out    bridge.Poster

	value  float64
	text   string
	list   []engine.Atom
	edited bool

	mirror *mirror.Mirror
}

func newControl(id ID, canvas CanvasID, obj *bridge.Object, out bridge.Poster) *Control {
	c := &Control{id: id, canvas: canvas, obj: obj, out: out}
	if obj.Kind() != bridge.Bang {
		c.value = obj.Value()
	}
	c.text = obj.Symbol()
	if l := obj.List(); l != nil {
		c.list = bridge.EncodeAtoms(l)
	}
	return c
}

// ID returns the control id
func (c *Control) ID() ID { return c.id }

// Canvas returns the canvas the control is drawn on
func (c *Control) Canvas() CanvasID { return c.canvas }

// Kind returns the control kind
func (c *Control) Kind() bridge.Kind { return c.obj.Kind() }

// Object returns the bridge object behind the control
func (c *Control) Object() *bridge.Object { return c.obj }

// Mirror returns the array mirror of an array control
func (c *Control) Mirror() *mirror.Mirror { return c.mirror }

// Value returns the last displayed value
func (c *Control) Value() float64 { return c.value }

// Text returns the last displayed text of a message or symbol box
func (c *Control) Text() string { return c.text }

// List returns the last displayed list of a list box
func (c *Control) List() []bridge.Atom { return bridge.DecodeAtoms(c.list) }

// Edited reports whether a gesture is in progress
func (c *Control) Edited() bool { return c.edited }

// StartEdit opens a gesture. Engine snapshots are ignored until StopEdit.
func (c *Control) StartEdit() {
	if c.edited {
		return
	}
	c.edited = true
	c.out.Post(queue.StartEdit())
	if c.Kind() != bridge.Bang {
		c.value = c.obj.Value()
	}
}

// StopEdit closes the gesture. The display keeps what the user set; the
// engine's next snapshot reconciles it.
func (c *Control) StopEdit() {
	if !c.edited {
		return
	}
	c.edited = false
	c.out.Post(queue.StopEdit())
}

// SetValue displays v and sends it to the engine
func (c *Control) SetValue(v float64) {
	c.value = v
	c.obj.SetValue(v)
}

// ValueScaled returns the displayed value normalized to [0, 1]
func (c *Control) ValueScaled() float64 {
	lo, hi := c.obj.Minimum(), c.obj.Maximum()
	if c.Kind().IsSlider() && c.obj.IsLogScale() {
		return bridge.LogScale(c.value, lo, hi)
	}
	return bridge.Scale(c.value, lo, hi)
}

// SetValueScaled sets the value from a normalized position in [0, 1]
func (c *Control) SetValueScaled(x float64) {
	lo, hi := c.obj.Minimum(), c.obj.Maximum()
	if c.Kind().IsSlider() && c.obj.IsLogScale() {
		c.SetValue(bridge.LogUnscale(x, lo, hi))
		return
	}
	c.SetValue(bridge.Unscale(x, lo, hi))
}

// Apply takes an engine snapshot. It returns true when the display must be
// redrawn. Snapshots that change nothing, and any arriving mid-gesture, are
// dropped.
func (c *Control) Apply(s queue.Snapshot) bool {
	if c.edited {
		return false
	}
	if s.Value == c.value && s.Text == c.text && slices.Equal(s.Atoms, c.list) {
		return false
	}
	c.value, c.text, c.list = s.Value, s.Text, s.Atoms
	return true
}

// Toggle flips a toggle between 0 and its on value
func (c *Control) Toggle() {
	c.StartEdit()
	if c.value != 0 {
		c.SetValue(0)
	} else {
		c.SetValue(1)
	}
	c.StopEdit()
}

// Bang fires a bang or message box
func (c *Control) Bang() {
	c.StartEdit()
	c.obj.Click()
	if c.Kind() == bridge.Bang {
		c.value = 1
	}
	c.StopEdit()
}

// Select chooses a radio button
func (c *Control) Select(i int) {
	n := c.obj.Buttons()
	if n == 0 {
		return
	}
	i = max(0, min(n-1, i))
	c.StartEdit()
	c.SetValue(float64(i))
	c.StopEdit()
}

// Step nudges a number by delta, clamped to its range
func (c *Control) Step(delta float64) {
	lo, hi := c.obj.Minimum(), c.obj.Maximum()
	c.SetValue(math.Max(math.Min(lo, hi), math.Min(math.Max(lo, hi), c.value+delta)))
}

// EditText returns what a text editor should start with
func (c *Control) EditText() string {
	switch c.Kind() {
	case bridge.AtomNumber, bridge.Number:
		return strconv.FormatFloat(c.value, 'g', -1, 64)
	case bridge.AtomList:
		parts := make([]string, len(c.list))
		for i, a := range c.list {
			parts[i] = a.String()
		}
		return strings.Join(parts, " ")
	}
	return c.text
}

// Commit applies typed text and closes the gesture
func (c *Control) Commit(text string) error {
	defer c.StopEdit()
	switch c.Kind() {
	case bridge.AtomNumber, bridge.Number, bridge.HorizontalSlider, bridge.VerticalSlider:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("number %q: %w", text, err)
		}
		c.SetValue(v)
	case bridge.AtomSymbol, bridge.Message:
		c.text = text
		c.obj.SetSymbol(text)
	case bridge.AtomList:
		l := bridge.ParseAtoms(text)
		c.list = bridge.EncodeAtoms(l)
		c.obj.SetList(l)
	default:
		return ErrNotEditable
	}
	return nil
}

// Pad sends a pointer position inside an XY pad, normalized to [0, 1]
func (c *Control) Pad(nx, ny float64, down bool) {
	h := c.obj.Handle()
	if down {
		c.out.Post(queue.Typed(h, "click", engine.Float(1)))
	}
	x, y := bridge.Clamp01(nx)*127, bridge.Clamp01(ny)*127
	c.value = x
	c.out.Post(queue.Typed(h, "list", engine.Float(x), engine.Float(y)))
}

// PadRelease ends a pad gesture
func (c *Control) PadRelease() {
	c.out.Post(queue.Typed(c.obj.Handle(), "click", engine.Float(0)))
}

// Pointer reports the screen pointer to a mouse tracker
func (c *Control) Pointer(x, y int, dragging bool) {
	h := c.obj.Handle()
	up := 1.0
	if dragging {
		up = 0
	}
	c.out.Post(queue.Typed(h, "_up", engine.Float(up)))
	c.out.Post(queue.Typed(h, "_getscreen", engine.Float(float64(x)), engine.Float(float64(y))))
}

// NoteOn plays a key on a keyboard control
func (c *Control) NoteOn(note, velocity int) {
	c.out.Post(queue.Typed(c.obj.Handle(), "list", engine.Float(float64(note)), engine.Float(float64(velocity))))
}

// NoteOff releases a key on a keyboard control
func (c *Control) NoteOff(note int) {
	c.NoteOn(note, 0)
}
