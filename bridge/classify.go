package bridge

import "go-patchbridge/engine"

// Engine is what the bridge needs from a running patch engine
type Engine interface {
	Lock()
	Unlock()
	Lookup(h engine.Handle) (engine.Object, bool)
	Bind(name string, h engine.Handle)
	Unbind(name string, h engine.Handle)
	CanvasFont(h engine.Handle) (size, zoom int)
}

// Classify returns the kind of the object behind h, or Undefined when h is
// gone. It only reads engine memory.
func Classify(eng Engine, h engine.Handle) Kind {
	eng.Lock()
	defer eng.Unlock()
	return classifyLocked(eng, h)
}

func classifyLocked(eng Engine, h engine.Handle) Kind {
	obj, ok := eng.Lookup(h)
	if !ok {
		return Undefined
	}
	return classifyObject(eng, obj)
}

func classifyObject(eng Engine, obj engine.Object) Kind {
	switch obj.Class() {
	case "bng":
		return Bang
	case "hsl":
		return HorizontalSlider
	case "vsl":
		return VerticalSlider
	case "tgl":
		return Toggle
	case "nbx":
		return Number
	case "vradio":
		return VerticalRadio
	case "hradio":
		return HorizontalRadio
	case "cnv":
		return Panel
	case "vu":
		return VuMeter
	case "text":
		// an object box that failed to create shares the comment class
		if obj.Base().Kind == engine.TextObject {
			return Invalid
		}
		return Comment
	case "message":
		return Message
	case "pad":
		return Mousepad
	case "mouse":
		return Mouse
	case "keyboard":
		return Keyboard
	case "gatom":
		g, ok := obj.(*engine.Gatom)
		if !ok {
			return Invalid
		}
		switch g.Flavor {
		case engine.AtomFloat:
			return AtomNumber
		case engine.AtomSymbol:
			return AtomSymbol
		}
		return AtomList
	case "canvas", "graph":
		c, ok := obj.(*engine.Canvas)
		if !ok {
			return Invalid
		}
		if len(c.List) > 0 {
			if first, ok := eng.Lookup(c.List[0]); ok && first.Class() == "array" {
				return Array
			}
		}
		if c.IsGraph {
			return GraphOnParent
		}
		return Subpatch
	case "pd":
		return Subpatch
	}
	return Undefined
}

// BecameGraph reports whether a subpatch has since had its graph flag set.
// The engine sets the flag after load without telling anyone, so callers
// check after each message delivery.
func BecameGraph(eng Engine, h engine.Handle) bool {
	eng.Lock()
	defer eng.Unlock()
	return becameGraphLocked(eng, h)
}

func becameGraphLocked(eng Engine, h engine.Handle) bool {
	obj, ok := eng.Lookup(h)
	if !ok {
		return false
	}
	c, ok := obj.(*engine.Canvas)
	return ok && c.IsGraph
}
