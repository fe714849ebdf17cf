package mirror

import (
	"fmt"
	"math"
	"slices"
	"time"

	"go-patchbridge/debug"
	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// Defaults for the local copy
const (
	DefaultCapacity = 8192
	DefaultInterval = 100 * time.Millisecond
)

// State of a mirror
type State int

const (
	Clean State = iota
	Editing
	Error
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Error:
		return "error"
	}
	return "clean"
}

// Engine is the array access the mirror needs
type Engine interface {
	Lock()
	Unlock()
	TryLock() bool
	ArraySize(name string) (int, error)
	ReadArray(name string, dst []float64) (int, error)
	WriteArray(name string, offset int, src []float64) error
	ArrayScale(name string) (lo, hi float64, err error)
	ArrayStyle(name string) (int, error)
	ArrayHidden(name string) bool
}

// Poster queues a message for the engine thread
type Poster interface {
	Post(m queue.Message)
}

// Mirror is a UI-side copy of a named engine array. The engine copy is
// authoritative; the mirror only leads it while a drag is in progress.
// A Mirror belongs to the UI goroutine.
type Mirror struct {
	eng  Engine
	out  Poster // told about every write that reached the engine
	name string

	vec  []float64
	temp []float64

	lo, hi  float64
	style   int
	hidden  bool
	editing bool
	failed  bool
}

// New creates a mirror and performs the first read. Capacity bounds the
// number of samples kept; 0 means DefaultCapacity.
func New(eng Engine, name string, capacity int) *Mirror {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Mirror{
		eng:  eng,
		name: name,
		vec:  make([]float64, 0, capacity),
		temp: make([]float64, 0, capacity),
		lo:   -1,
		hi:   1,
	}
	if name == "" {
		m.failed = true
		return m
	}
	m.Refresh()
	return m
}

// SetPoster makes every drag write that reaches the engine follow up with a
// redraw notice sent to the array's name
func (m *Mirror) SetPoster(out Poster) { m.out = out }

// Name returns the array name
func (m *Mirror) Name() string { return m.name }

// State returns the current state
func (m *Mirror) State() State {
	switch {
	case m.editing:
		return Editing
	case m.failed:
		return Error
	}
	return Clean
}

// Refresh pulls the engine copy unless a drag owns the buffer. It reports
// whether anything visible changed. Ticks with no engine change report
// false and leave the mirror untouched.
func (m *Mirror) Refresh() bool {
	if m.editing {
		return false
	}

	lo, hi, style, hidden := m.lo, m.hi, m.style, m.hidden
	err := func() error {
		m.eng.Lock()
		defer m.eng.Unlock()

		size, err := m.eng.ArraySize(m.name)
		if err != nil {
			return err
		}
		m.temp = m.temp[:min(size, cap(m.temp))]
		if _, err := m.eng.ReadArray(m.name, m.temp); err != nil {
			return err
		}
		if lo, hi, err = m.eng.ArrayScale(m.name); err != nil {
			return err
		}
		if style, err = m.eng.ArrayStyle(m.name); err != nil {
			return err
		}
		hidden = m.eng.ArrayHidden(m.name)
		return nil
	}()

	if err != nil {
		if !m.failed {
			debug.Log("mirror", "array %s: %v", m.name, err)
			m.failed = true
			return true
		}
		return false
	}

	changed := m.failed
	m.failed = false
	if !slices.Equal(m.temp, m.vec) {
		m.vec, m.temp = m.temp, m.vec
		changed = true
	}
	if lo != m.lo || hi != m.hi || style != m.style || hidden != m.hidden {
		m.lo, m.hi, m.style, m.hidden = lo, hi, style, hidden
		changed = true
	}
	return changed
}

// BeginEdit starts a drag gesture. A mirror in error accepts no edits.
func (m *Mirror) BeginEdit() bool {
	if m.failed {
		return false
	}
	m.editing = true
	return true
}

// EndEdit finishes the gesture; the next Refresh reconciles with the engine
func (m *Mirror) EndEdit() {
	m.editing = false
}

// DragAt writes the sample under a pointer at normalized (nx, ny), with
// (0, 0) the top-left corner. The local copy is always updated; the engine
// copy only if its lock is free right now.
func (m *Mirror) DragAt(nx, ny float64) (index int, value float64, ok bool) {
	if m.failed || len(m.vec) == 0 {
		return 0, 0, false
	}
	index = int(math.Round(clamp(nx, 0, 1) * float64(len(m.vec)-1)))
	value = (1-clamp(ny, 0, 1))*(m.hi-m.lo) + m.lo
	m.vec[index] = value

	if m.eng.TryLock() {
		err := m.eng.WriteArray(m.name, index, m.vec[index:index+1])
		m.eng.Unlock()
		if err != nil {
			debug.Log("mirror", "write %s[%d]: %v", m.name, index, err)
			m.failed = true
		} else if m.out != nil {
			m.out.Post(queue.Send(m.name, engine.SelRedraw))
		}
	} else {
		debug.LogEvery(32, "mirror", "engine busy, deferred write to %s", m.name)
	}
	return index, value, true
}

// Drag is DragAt for a pointer at (x, y) inside a w by h box
func (m *Mirror) Drag(x, y, w, h int) (int, float64, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return m.DragAt(float64(x)/float64(w), float64(y)/float64(h))
}

// Values returns a copy of the local samples
func (m *Mirror) Values() []float64 {
	return slices.Clone(m.vec)
}

// At returns the local sample at i
func (m *Mirror) At(i int) float64 {
	if i < 0 || i >= len(m.vec) {
		return 0
	}
	return m.vec[i]
}

// Len returns the number of local samples
func (m *Mirror) Len() int { return len(m.vec) }

// Scale returns the vertical range as (bottom, top)
func (m *Mirror) Scale() (lo, hi float64) { return m.lo, m.hi }

// Style returns the engine's plot style for the array
func (m *Mirror) Style() int { return m.style }

// Hidden reports whether the array name should not be drawn
func (m *Mirror) Hidden() bool { return m.hidden }

// Placeholder is drawn instead of a plot while in error
func (m *Mirror) Placeholder() string {
	return fmt.Sprintf("array %s is invalid", m.name)
}

func clamp(v, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return math.Max(lo, math.Min(hi, v))
}

var _ Engine = (*engine.Instance)(nil)
