package surface

import (
	"sort"

	"go-patchbridge/bridge"
	"go-patchbridge/debug"
	"go-patchbridge/engine"
	"go-patchbridge/midi"
	"go-patchbridge/mirror"
	"go-patchbridge/queue"
)

// Host is the engine as the session sees it
type Host interface {
	bridge.Engine
	mirror.Engine
	queue.Target
	OnCycle(pre, post func())
}

// CanvasID names a canvas within a session
type CanvasID uint64

// Canvas is a loaded patch or graph. Parent and Controls refer into the
// session arena.
type Canvas struct {
	ID       CanvasID
	Handle   engine.Handle
	Name     string
	Parent   CanvasID // 0 for the root
	Owner    ID       // control showing this canvas inline, 0 if none
	Controls []ID
}

// Options configure a session
type Options struct {
	Fonts          *bridge.FontTable
	MirrorCapacity int
	CCMap          map[int]string // controller number -> receive name
}

// Session owns every control and canvas built from a running engine. It
// lives on the UI goroutine; the engine reaches it only through the inbox
// and outbox.
type Session struct {
	host   Host
	inbox  *queue.Inbox
	outbox *queue.Outbox
	opts   Options

	controls map[ID]*Control
	canvases map[CanvasID]*Canvas
	byHandle map[engine.Handle]ID
	nextID   ID
	nextCnv  CanvasID
}

// NewSession creates an empty session for host
func NewSession(host Host, opts Options) *Session {
	if opts.Fonts == nil {
		opts.Fonts = bridge.DefaultFonts
	}
	return &Session{
		host:     host,
		inbox:    queue.NewInbox(),
		outbox:   queue.NewOutbox(),
		opts:     opts,
		controls: make(map[ID]*Control),
		canvases: make(map[CanvasID]*Canvas),
		byHandle: make(map[engine.Handle]ID),
	}
}

// Attach hooks the session into the engine cycle: pending edits are applied
// before the DSP pass and snapshots taken after it.
func (s *Session) Attach() {
	s.host.OnCycle(
		func() { s.inbox.DrainTo(s.host) },
		func() { s.outbox.Collect() },
	)
}

// Inbox returns the UI -> engine queue
func (s *Session) Inbox() *queue.Inbox { return s.inbox }

// Updates fires when engine snapshots are waiting for Sync
func (s *Session) Updates() <-chan struct{} { return s.outbox.Notify() }

// Load builds controls for everything on the canvas h and returns its id
func (s *Session) Load(h engine.Handle) CanvasID {
	return s.load(h, 0, 0)
}

func (s *Session) load(h engine.Handle, parent CanvasID, owner ID) CanvasID {
	s.nextCnv++
	cv := &Canvas{ID: s.nextCnv, Handle: h, Parent: parent, Owner: owner}
	if obj, ok := s.host.Lookup(h); ok {
		if c, ok := obj.(*engine.Canvas); ok {
			cv.Name = c.Name
		}
	}
	s.canvases[cv.ID] = cv

	for _, child := range s.children(h) {
		s.add(cv, child)
	}
	return cv.ID
}

func (s *Session) children(h engine.Handle) []engine.Handle {
	s.host.Lock()
	defer s.host.Unlock()
	obj, ok := s.host.Lookup(h)
	if !ok {
		return nil
	}
	c, ok := obj.(*engine.Canvas)
	if !ok {
		return nil
	}
	return append([]engine.Handle(nil), c.List...)
}

func (s *Session) add(cv *Canvas, h engine.Handle) *Control {
	obj := bridge.New(s.host, s.inbox, s.opts.Fonts, h)
	if !obj.Kind().Interactive() {
		debug.Log("surface", "skipping object %d: %s", h, obj.Kind())
		return nil
	}
	s.nextID++
	c := newControl(s.nextID, cv.ID, obj, s.inbox)
	s.controls[c.id] = c
	s.byHandle[h] = c.id
	cv.Controls = append(cv.Controls, c.id)

	switch obj.Kind() {
	case bridge.Array:
		c.mirror = mirror.New(s.host, obj.ArrayName(), s.opts.MirrorCapacity)
		c.mirror.SetPoster(s.inbox)
	case bridge.GraphOnParent:
		s.load(h, cv.ID, c.id)
	}
	s.watch(c)
	return c
}

func (s *Session) watch(c *Control) {
	if c.mirror != nil || c.Kind().IsPatch() || c.Kind() == bridge.Comment {
		return
	}
	obj := c.obj
	key := uint64(c.id)
	s.outbox.Watch(key, func() (queue.Snapshot, bool) {
		st, ok := obj.StateLocked()
		if !ok {
			return queue.Snapshot{}, false
		}
		return queue.Snapshot{Value: st.Value, Text: st.Text, Atoms: st.List}, true
	})
}

// Sync applies waiting engine snapshots, then catches up with structural
// changes: subpatches that became graphs and objects that disappeared.
// It returns the controls that need redrawing.
func (s *Session) Sync() []ID {
	var dirty []ID
	s.outbox.Deliver(func(snap queue.Snapshot) {
		if c, ok := s.controls[ID(snap.Key)]; ok && c.Apply(snap) {
			dirty = append(dirty, c.id)
		}
	})
	return append(dirty, s.reconcile()...)
}

func (s *Session) reconcile() []ID {
	var dirty, gone []ID
	for _, id := range s.ids() {
		c := s.controls[id]
		if c == nil {
			continue
		}
		if !c.obj.Alive() {
			gone = append(gone, id)
			continue
		}
		if c.obj.Reclassify() {
			debug.Log("surface", "control %d became a graph", id)
			s.load(c.obj.Handle(), c.canvas, c.id)
			dirty = append(dirty, id)
		}
	}
	for _, id := range gone {
		s.Remove(id)
	}
	return dirty
}

// TickMirrors refreshes every array mirror and returns those that changed
func (s *Session) TickMirrors() []ID {
	var dirty []ID
	for _, id := range s.ids() {
		c := s.controls[id]
		if c.mirror != nil && c.mirror.Refresh() {
			dirty = append(dirty, id)
		}
	}
	return dirty
}

// Remove drops a control, and any canvas it shows inline. Messages already
// posted for it are discarded by the engine once its object is gone.
func (s *Session) Remove(id ID) {
	c, ok := s.controls[id]
	if !ok {
		return
	}
	s.outbox.Retire(uint64(id))
	delete(s.controls, id)
	if s.byHandle[c.obj.Handle()] == id {
		delete(s.byHandle, c.obj.Handle())
	}
	if cv, ok := s.canvases[c.canvas]; ok {
		for i, cid := range cv.Controls {
			if cid == id {
				cv.Controls = append(cv.Controls[:i:i], cv.Controls[i+1:]...)
				break
			}
		}
	}
	for cid, cv := range s.canvases {
		if cv.Owner == id {
			for _, child := range cv.Controls {
				s.Remove(child)
			}
			delete(s.canvases, cid)
		}
	}
}

// Control returns a control by id
func (s *Session) Control(id ID) (*Control, bool) {
	c, ok := s.controls[id]
	return c, ok
}

// ControlFor returns the control built for an engine handle
func (s *Session) ControlFor(h engine.Handle) (*Control, bool) {
	id, ok := s.byHandle[h]
	if !ok {
		return nil, false
	}
	return s.Control(id)
}

// Canvas returns a canvas by id
func (s *Session) Canvas(id CanvasID) (*Canvas, bool) {
	cv, ok := s.canvases[id]
	return cv, ok
}

// Inline returns the canvas a graph control shows, if any
func (s *Session) Inline(id ID) (*Canvas, bool) {
	for _, cv := range s.canvases {
		if cv.Owner == id {
			return cv, true
		}
	}
	return nil, false
}

// Controls returns the controls on a canvas in patch order
func (s *Session) Controls(id CanvasID) []*Control {
	cv, ok := s.canvases[id]
	if !ok {
		return nil
	}
	out := make([]*Control, 0, len(cv.Controls))
	for _, cid := range cv.Controls {
		if c, ok := s.controls[cid]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of live controls
func (s *Session) Len() int { return len(s.controls) }

// HandleMIDI routes controller input: mapped CCs go to their receive name,
// notes to every keyboard control.
func (s *Session) HandleMIDI(ev midi.Event) {
	switch ev.Type {
	case midi.CC:
		name, ok := s.opts.CCMap[int(ev.Controller)]
		if !ok {
			return
		}
		s.inbox.Post(queue.Send(name, "float", engine.Float(float64(ev.Value))))
	case midi.NoteOn, midi.NoteOff:
		vel := int(ev.Velocity)
		if ev.Type == midi.NoteOff {
			vel = 0
		}
		for _, id := range s.ids() {
			if c := s.controls[id]; c.Kind() == bridge.Keyboard {
				c.NoteOn(int(ev.Note), vel)
			}
		}
	}
}

func (s *Session) ids() []ID {
	ids := make([]ID, 0, len(s.controls))
	for id := range s.controls {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
