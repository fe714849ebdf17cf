package bridge

import "go-patchbridge/engine"

// State is everything a control displays that the engine can change
type State struct {
	Value float64
	Text  string
	List  []engine.Atom
}

// StateLocked reads the displayed state on the engine thread. It returns
// false when the object is gone.
func (o *Object) StateLocked() (State, bool) {
	var s State
	ok := o.readLocked(func(obj engine.Object) {
		s.Value = o.valueOf(obj)
		s.Text = o.symbolOf(obj)
		if g, isAtom := obj.(*engine.Gatom); isAtom && o.Kind() == AtomList {
			s.List = append([]engine.Atom(nil), g.Binbuf...)
		}
	})
	return s, ok
}
