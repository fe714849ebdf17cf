package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go-patchbridge/bridge"
	"go-patchbridge/debug"
	"go-patchbridge/midi"
	"go-patchbridge/surface"
	"go-patchbridge/theme"
)

// row is one line of the control list: a control and its nesting depth
type row struct {
	id    surface.ID
	depth int
}

// hit is where a row's widget was drawn in the last frame
type hit struct {
	top, height int
	left, width int
}

// layoutBounds holds cached layout info
type layoutBounds struct {
	rows map[surface.ID]hit
}

type Model struct {
	Session   *surface.Session
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme
	Refresh   time.Duration

	root  surface.CanvasID
	rows  []row
	focus int

	input   textinput.Model
	typing  bool
	status  string
	dragged surface.ID // control under an active mouse gesture, 0 if none

	held   map[surface.ID]map[int]bool // keyboard notes held
	cursor map[surface.ID]int          // array index or keyboard note under the cursor
	pads   map[surface.ID][2]float64   // last pad pointer, normalized
	flash  map[surface.ID]int          // ticks left on a bang flash

	bounds   *layoutBounds
	quitting bool
}

type UpdateMsg struct{}

type TickMsg time.Time

type MIDIMsg midi.Event

type DeviceEventMsg midi.DeviceEvent

func NewModel(session *surface.Session, root surface.CanvasID, deviceMgr *midi.DeviceManager, th *theme.Theme, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = 100 * time.Millisecond
	}
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 256

	m := Model{
		Session:   session,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Refresh:   refresh,
		root:      root,
		input:     in,
		held:      make(map[surface.ID]map[int]bool),
		cursor:    make(map[surface.ID]int),
		pads:      make(map[surface.ID][2]float64),
		flash:     make(map[surface.ID]int),
		bounds:    &layoutBounds{rows: make(map[surface.ID]hit)},
	}
	m.relayout()
	return m
}

func ListenForUpdates(session *surface.Session) tea.Cmd {
	return func() tea.Msg {
		<-session.Updates()
		return UpdateMsg{}
	}
}

func ListenForMIDI(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		return MIDIMsg(<-deviceMgr.Input())
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Session), tick(m.Refresh)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForMIDI(m.DeviceMgr), ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case UpdateMsg:
		m.sync()
		return m, ListenForUpdates(m.Session)

	case TickMsg:
		for _, id := range m.Session.TickMirrors() {
			debug.LogEvery(50, "tui", "array control %d changed", id)
		}
		for id, n := range m.flash {
			if n <= 1 {
				delete(m.flash, id)
			} else {
				m.flash[id] = n - 1
			}
		}
		// structural changes show up even when no value moved
		m.sync()
		return m, tick(m.Refresh)

	case MIDIMsg:
		ev := midi.Event(msg)
		m.Session.HandleMIDI(ev)
		if ev.Type == midi.NoteOn || ev.Type == midi.NoteOff {
			for _, r := range m.rows {
				if c, ok := m.Session.Control(r.id); ok && c.Kind() == bridge.Keyboard {
					m.hold(r.id, int(ev.Note), ev.Type == midi.NoteOn)
				}
			}
		}
		return m, ListenForMIDI(m.DeviceMgr)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.status = "connected " + event.ID
		} else {
			m.status = "disconnected " + event.ID
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// sync pulls engine snapshots and rebuilds the row list if controls came
// or went
func (m *Model) sync() {
	for _, id := range m.Session.Sync() {
		c, ok := m.Session.Control(id)
		if ok && c.Kind() == bridge.Bang && c.Value() != 0 {
			m.flash[id] = 3
		}
	}
	m.relayout()
}

// relayout flattens the root canvas and any inline graphs into rows
func (m *Model) relayout() {
	var focused surface.ID
	if m.focus < len(m.rows) {
		focused = m.rows[m.focus].id
	}

	m.rows = m.rows[:0]
	var walk func(cid surface.CanvasID, depth int)
	walk = func(cid surface.CanvasID, depth int) {
		for _, c := range m.Session.Controls(cid) {
			m.rows = append(m.rows, row{id: c.ID(), depth: depth})
			if inline, ok := m.Session.Inline(c.ID()); ok {
				walk(inline.ID, depth+1)
			}
		}
	}
	walk(m.root, 0)

	m.focus = 0
	for i, r := range m.rows {
		if r.id == focused {
			m.focus = i
			break
		}
	}
}

func (m *Model) focused() (*surface.Control, bool) {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return nil, false
	}
	return m.Session.Control(m.rows[m.focus].id)
}

func (m *Model) hold(id surface.ID, note int, on bool) {
	if m.held[id] == nil {
		m.held[id] = make(map[int]bool)
	}
	if on {
		m.held[id][note] = true
	} else {
		delete(m.held[id], note)
	}
}
