package bridge

import (
	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// unset is the name the engine stores for "no binding"
const unset = "empty"

func visible(name string) string {
	if name == unset {
		return ""
	}
	return name
}

// SendSymbol returns the name the control sends to, "" when it doesn't send
func (o *Object) SendSymbol() string {
	var name string
	o.read(func(obj engine.Object) {
		switch x := obj.(type) {
		case *engine.Gatom:
			name = visible(x.SymTo)
		case *engine.Keyboard:
			name = visible(x.Send)
		default:
			if g := iem(obj); g != nil && g.SndAble {
				name = visible(g.Snd)
			}
		}
	})
	return name
}

// ReceiveSymbol returns the name the control listens on, "" when unbound
func (o *Object) ReceiveSymbol() string {
	var name string
	o.read(func(obj engine.Object) {
		if x, ok := obj.(*engine.Gatom); ok {
			name = visible(x.SymFrom)
			return
		}
		if g := iem(obj); g != nil && g.RcvAble {
			name = visible(g.Rcv)
		}
	})
	return name
}

// SetSendSymbol changes the send name. "empty" or "" stops sending. An IEM
// control never sends to its own receive name.
func (o *Object) SetSendSymbol(name string) {
	if k := o.Kind(); k.IsIEM() || k.IsAtom() || k == Keyboard {
		o.post(queue.Typed(o.handle, engine.SelSend, engine.Symbol(orUnset(name))))
	}
}

// SetReceiveSymbol rebinds the control. The engine unbinds the old name
// before binding the new one; "empty" or "" leaves it unbound.
func (o *Object) SetReceiveSymbol(name string) {
	if k := o.Kind(); k.IsIEM() || k.IsAtom() {
		o.post(queue.Typed(o.handle, engine.SelReceive, engine.Symbol(orUnset(name))))
	}
}

func orUnset(name string) string {
	if name == "" {
		return unset
	}
	return name
}
