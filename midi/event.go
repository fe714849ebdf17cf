package midi

import gomidi "gitlab.com/gomidi/midi/v2"

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// Event is a decoded note or controller message from an input port
type Event struct {
	Type       uint8 // NoteOn, NoteOff, CC
	Channel    uint8
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
	Port       string
}

// Decode turns a raw message into an Event. Note on with velocity 0 is a
// note off. Anything else is reported as not ok.
func Decode(msg gomidi.Message, port string) (Event, bool) {
	var channel, note, velocity, cc, value uint8
	switch {
	case msg.GetNoteOn(&channel, &note, &velocity):
		typ := NoteOn
		if velocity == 0 {
			typ = NoteOff
		}
		return Event{Type: typ, Channel: channel, Note: note, Velocity: velocity, Port: port}, true
	case msg.GetNoteOff(&channel, &note, &velocity):
		return Event{Type: NoteOff, Channel: channel, Note: note, Velocity: velocity, Port: port}, true
	case msg.GetControlChange(&channel, &cc, &value):
		return Event{Type: CC, Channel: channel, Controller: cc, Value: value, Port: port}, true
	}
	return Event{}, false
}

// Message encodes the event back into a raw message
func (e Event) Message() gomidi.Message {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOff(e.Channel, e.Note)
	case CC:
		return gomidi.ControlChange(e.Channel, e.Controller, e.Value)
	}
	return nil
}
