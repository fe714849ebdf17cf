package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		msg  gomidi.Message
		ok   bool
		want Event
	}{
		{"note on", gomidi.NoteOn(2, 60, 100), true, Event{Type: NoteOn, Channel: 2, Note: 60, Velocity: 100, Port: "kbd"}},
		{"cc", gomidi.ControlChange(0, 1, 64), true, Event{Type: CC, Controller: 1, Value: 64, Port: "kbd"}},
		{"pitch bend", gomidi.Pitchbend(0, 100), false, Event{}},
		{"program change", gomidi.ProgramChange(0, 5), false, Event{}},
	}

	for _, tt := range tests {
		got, ok := Decode(tt.msg, "kbd")
		if ok != tt.ok {
			t.Errorf("%s: expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestDecodeNoteOff(t *testing.T) {
	for _, msg := range []gomidi.Message{gomidi.NoteOn(0, 64, 0), gomidi.NoteOff(0, 64)} {
		ev, ok := Decode(msg, "")
		if !ok {
			t.Fatalf("expected %v decoded", msg)
		}
		if ev.Type != NoteOff || ev.Note != 64 {
			t.Errorf("expected note off 64, got %+v", ev)
		}
	}
}

func TestEventMessage(t *testing.T) {
	events := []Event{
		{Type: NoteOn, Channel: 3, Note: 48, Velocity: 90},
		{Type: CC, Channel: 1, Controller: 7, Value: 127},
	}
	for _, ev := range events {
		back, ok := Decode(ev.Message(), "")
		if !ok || back != ev {
			t.Errorf("expected %+v, got %+v", ev, back)
		}
	}

	if msg := (Event{Type: 0xE0}).Message(); msg != nil {
		t.Errorf("expected nil message for unsupported type, got %v", msg)
	}
}
