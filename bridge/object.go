package bridge

import (
	"sync/atomic"

	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// Poster accepts edits for the engine thread
type Poster interface {
	Post(m queue.Message)
}

// Object is the bridge view of one engine object. Its kind is fixed at
// construction except for the subpatch to graph transition. Every accessor
// re-resolves the handle, so an Object outliving its engine object only
// ever returns defaults.
type Object struct {
	eng    Engine
	out    Poster
	fonts  *FontTable
	handle engine.Handle
	kind   atomic.Int32 // read by the engine thread while collecting
}

// New classifies h and wraps it. Fonts may be nil for the default table.
func New(eng Engine, out Poster, fonts *FontTable, h engine.Handle) *Object {
	if fonts == nil {
		fonts = DefaultFonts
	}
	o := &Object{eng: eng, out: out, fonts: fonts, handle: h}
	o.kind.Store(int32(Classify(eng, h)))
	return o
}

// Handle returns the engine handle
func (o *Object) Handle() engine.Handle { return o.handle }

// Kind returns the current kind
func (o *Object) Kind() Kind { return Kind(o.kind.Load()) }

// Reclassify picks up a subpatch that has become a graph and reports whether
// the kind changed.
func (o *Object) Reclassify() bool {
	if o.Kind() != Subpatch {
		return false
	}
	if BecameGraph(o.eng, o.handle) {
		o.kind.Store(int32(GraphOnParent))
		return true
	}
	return false
}

// Alive reports whether the engine object still exists with the same kind family
func (o *Object) Alive() bool {
	return o.read(func(engine.Object) {})
}

// read runs fn on the live layout under the callback lock
func (o *Object) read(fn func(obj engine.Object)) bool {
	o.eng.Lock()
	defer o.eng.Unlock()
	return o.readLocked(fn)
}

// readLocked is read for callers already holding the callback lock
func (o *Object) readLocked(fn func(obj engine.Object)) bool {
	obj, ok := o.eng.Lookup(o.handle)
	if !ok || !matches(o.Kind(), obj) {
		return false
	}
	fn(obj)
	return true
}

// matches guards against a handle whose layout no longer fits the kind
func matches(k Kind, obj engine.Object) bool {
	switch k {
	case Bang:
		_, ok := obj.(*engine.Bang)
		return ok
	case Toggle:
		_, ok := obj.(*engine.Toggle)
		return ok
	case HorizontalSlider, VerticalSlider:
		_, ok := obj.(*engine.Slider)
		return ok
	case HorizontalRadio, VerticalRadio:
		_, ok := obj.(*engine.Radio)
		return ok
	case Number:
		_, ok := obj.(*engine.Numbox)
		return ok
	case AtomNumber, AtomSymbol, AtomList:
		_, ok := obj.(*engine.Gatom)
		return ok
	case Message:
		_, ok := obj.(*engine.Message)
		return ok
	case GraphOnParent, Subpatch, Array:
		_, ok := obj.(*engine.Canvas)
		return ok
	case Comment:
		_, ok := obj.(*engine.Comment)
		return ok
	case Mousepad:
		_, ok := obj.(*engine.Pad)
		return ok
	case Mouse:
		_, ok := obj.(*engine.Mouse)
		return ok
	case Keyboard:
		_, ok := obj.(*engine.Keyboard)
		return ok
	case Panel:
		_, ok := obj.(*engine.Panel)
		return ok
	case VuMeter:
		_, ok := obj.(*engine.VU)
		return ok
	}
	return false
}

// iem extracts the shared header of IEM layouts
func iem(obj engine.Object) *engine.IEMGui {
	if g, ok := obj.(interface{ IEM() *engine.IEMGui }); ok {
		return g.IEM()
	}
	return nil
}

func (o *Object) post(m queue.Message) {
	if o.out != nil {
		o.out.Post(m)
	}
}
