package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-patchbridge/debug"
)

// Controller is an open MIDI input
type Controller interface {
	ID() string
	Close() error
}

// InputController forwards notes and CCs from one port into a shared sink
type InputController struct {
	id       string
	inPort   drivers.In
	stopFunc func()
}

// NewInputController starts listening on inPort. Events that don't fit in
// sink are dropped rather than blocking the driver thread.
func NewInputController(id string, inPort drivers.In, sink chan<- Event) (*InputController, error) {
	ic := &InputController{id: id, inPort: inPort}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		ev, ok := Decode(msg, id)
		if !ok {
			return
		}
		select {
		case sink <- ev:
		default:
			debug.LogEvery(16, "midi", "dropped event from %s", id)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	ic.stopFunc = stop
	return ic, nil
}

func (ic *InputController) ID() string {
	return ic.id
}

func (ic *InputController) Close() error {
	if ic.stopFunc != nil {
		ic.stopFunc()
	}
	return nil
}
