package queue

import "go-patchbridge/engine"

// Message is a UI edit bound for the engine thread. It names its target by
// handle, or by receive name when Target is NoHandle, and is resolved only
// when the engine drains it.
type Message struct {
	Target   engine.Handle
	Name     string
	Selector string
	Atoms    []engine.Atom
}

// Float sets a control's value and makes it output
func Float(h engine.Handle, v float64) Message {
	return Message{Target: h, Selector: "float", Atoms: []engine.Atom{engine.Float(v)}}
}

// Bang triggers a control
func Bang(h engine.Handle) Message {
	return Message{Target: h, Selector: "bang"}
}

// Symbol sets a symbol box
func Symbol(h engine.Handle, s string) Message {
	return Message{Target: h, Selector: "symbol", Atoms: []engine.Atom{engine.Symbol(s)}}
}

// List sets a list box
func List(h engine.Handle, atoms []engine.Atom) Message {
	return Message{Target: h, Selector: "list", Atoms: append([]engine.Atom(nil), atoms...)}
}

// Typed sends an arbitrary selector to a control
func Typed(h engine.Handle, selector string, atoms ...engine.Atom) Message {
	return Message{Target: h, Selector: selector, Atoms: atoms}
}

// Send addresses every receiver bound to name
func Send(name, selector string, atoms ...engine.Atom) Message {
	return Message{Name: name, Selector: selector, Atoms: atoms}
}

// StartEdit tells the engine a gesture has begun
func StartEdit() Message {
	return Send(engine.EditChannel, engine.EditSelector, engine.Float(1))
}

// StopEdit tells the engine the gesture is over
func StopEdit() Message {
	return Send(engine.EditChannel, engine.EditSelector, engine.Float(0))
}
