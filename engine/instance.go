package engine

import (
	"errors"
	"sync"
	"sync/atomic"

	"go-patchbridge/debug"
)

// Handle identifies a live object. Handles are never reused within an Instance.
type Handle uint64

// NoHandle is the zero handle
const NoHandle Handle = 0

var ErrNoSuchObject = errors.New("engine: no such object")

// Instance is a running patch engine.
//
// Two locks guard it. The callback lock (Lock/Unlock/TryLock) protects object
// memory and is held by the engine thread for a whole processing cycle. The
// registry lock protects the handle table and binding table and is only ever
// held for a map access, always after the callback lock when both are taken.
type Instance struct {
	cb sync.Mutex

	mu      sync.RWMutex
	objects map[Handle]Object
	binds   map[string][]Handle
	next    Handle

	hooksMu sync.Mutex
	pre     []func()
	post    []func()

	outlet func(h Handle, selector string, atoms []Atom)

	sampleRate float64
	cycles     atomic.Uint64
	editing    int
	depth      int
	buf        dspBuffers
}

// NewInstance creates an empty engine
func NewInstance(sampleRate int) *Instance {
	return &Instance{
		objects:    make(map[Handle]Object),
		binds:      make(map[string][]Handle),
		sampleRate: float64(sampleRate),
	}
}

// Lock acquires the callback lock
func (in *Instance) Lock() { in.cb.Lock() }

// Unlock releases the callback lock
func (in *Instance) Unlock() { in.cb.Unlock() }

// TryLock acquires the callback lock only if it is free
func (in *Instance) TryLock() bool { return in.cb.TryLock() }

// Lookup resolves a handle to its native layout
func (in *Instance) Lookup(h Handle) (Object, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	obj, ok := in.objects[h]
	return obj, ok
}

// Alive reports whether h still refers to a live object
func (in *Instance) Alive(h Handle) bool {
	_, ok := in.Lookup(h)
	return ok
}

// Bind adds h as a receiver of name
func (in *Instance) Bind(name string, h Handle) {
	if name == "" {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, b := range in.binds[name] {
		if b == h {
			return
		}
	}
	in.binds[name] = append(in.binds[name], h)
}

// Unbind removes h as a receiver of name
func (in *Instance) Unbind(name string, h Handle) {
	in.mu.Lock()
	defer in.mu.Unlock()
	list := in.binds[name]
	for i, b := range list {
		if b == h {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(in.binds, name)
	} else {
		in.binds[name] = list
	}
}

// Bound returns the receivers of name
func (in *Instance) Bound(name string) []Handle {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]Handle(nil), in.binds[name]...)
}

// IsBound reports whether h receives name
func (in *Instance) IsBound(name string, h Handle) bool {
	for _, b := range in.Bound(name) {
		if b == h {
			return true
		}
	}
	return false
}

// OnCycle registers hooks run inside every processing cycle, before and after
// the DSP pass, with the callback lock held. Either may be nil.
func (in *Instance) OnCycle(pre, post func()) {
	in.hooksMu.Lock()
	defer in.hooksMu.Unlock()
	if pre != nil {
		in.pre = append(in.pre, pre)
	}
	if post != nil {
		in.post = append(in.post, post)
	}
}

// SetOutletHook observes everything objects output. Runs on the engine thread.
func (in *Instance) SetOutletHook(fn func(h Handle, selector string, atoms []Atom)) {
	in.hooksMu.Lock()
	defer in.hooksMu.Unlock()
	in.outlet = fn
}

// Process runs one engine cycle: queued messages, DSP into block, snapshots.
func (in *Instance) Process(block []float32) {
	in.hooksMu.Lock()
	pre, post := in.pre, in.post
	in.hooksMu.Unlock()

	in.cb.Lock()
	defer in.cb.Unlock()

	for _, fn := range pre {
		fn()
	}
	in.dsp(block)
	in.cycles.Add(1)
	for _, fn := range post {
		fn()
	}
}

// Cycles returns the number of completed processing cycles
func (in *Instance) Cycles() uint64 {
	return in.cycles.Load()
}

// Editing reports whether a UI gesture is in progress (gui mouse 1 seen)
func (in *Instance) Editing() bool {
	return in.editing > 0
}

// SampleRate returns the rate the engine was created with
func (in *Instance) SampleRate() float64 {
	return in.sampleRate
}

// Children returns the object list of a canvas. Caller holds the callback lock.
func (in *Instance) Children(canvas Handle) []Handle {
	obj, ok := in.Lookup(canvas)
	if !ok {
		return nil
	}
	c, ok := obj.(*Canvas)
	if !ok {
		return nil
	}
	return append([]Handle(nil), c.List...)
}

// CanvasFont returns the font size and zoom of the canvas owning h, or of h
// itself when it is a canvas. Caller holds the callback lock.
func (in *Instance) CanvasFont(h Handle) (size, zoom int) {
	obj, ok := in.Lookup(h)
	if !ok {
		return 12, 1
	}
	c, isCanvas := obj.(*Canvas)
	if !isCanvas {
		owner, ok := in.Lookup(obj.Base().Owner)
		if !ok {
			return 12, 1
		}
		if c, isCanvas = owner.(*Canvas); !isCanvas {
			return 12, 1
		}
	}
	size, zoom = c.Font, c.Zoom
	if size == 0 {
		size = 12
	}
	if zoom == 0 {
		zoom = 1
	}
	return size, zoom
}

func (in *Instance) register(obj Object) Handle {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.next++
	h := in.next
	in.objects[h] = obj
	return h
}

func (in *Instance) unregister(h Handle) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.objects, h)
	for name, list := range in.binds {
		for i, b := range list {
			if b == h {
				list = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(in.binds, name)
		} else {
			in.binds[name] = list
		}
	}
}

func (in *Instance) emit(h Handle, selector string, atoms []Atom) {
	if in.outlet != nil {
		in.outlet(h, selector, atoms)
	}
	debug.LogEvery(64, "engine", "outlet %d %s %v", h, selector, atoms)
}
