package bridge

// Kind is the interactive archetype of an engine object
type Kind int

const (
	Undefined Kind = iota
	Invalid
	Bang
	Toggle
	HorizontalSlider
	VerticalSlider
	HorizontalRadio
	VerticalRadio
	Number
	AtomNumber
	AtomSymbol
	AtomList
	Message
	GraphOnParent
	Subpatch
	Array
	Comment
	Mousepad
	Mouse
	Keyboard
	Panel
	VuMeter
)

var kindNames = [...]string{
	Undefined:        "undefined",
	Invalid:          "invalid",
	Bang:             "bang",
	Toggle:           "toggle",
	HorizontalSlider: "hslider",
	VerticalSlider:   "vslider",
	HorizontalRadio:  "hradio",
	VerticalRadio:    "vradio",
	Number:           "number",
	AtomNumber:       "atom-number",
	AtomSymbol:       "atom-symbol",
	AtomList:         "atom-list",
	Message:          "message",
	GraphOnParent:    "graph",
	Subpatch:         "subpatch",
	Array:            "array",
	Comment:          "comment",
	Mousepad:         "pad",
	Mouse:            "mouse",
	Keyboard:         "keyboard",
	Panel:            "panel",
	VuMeter:          "vu",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "undefined"
	}
	return kindNames[k]
}

// IsIEM reports whether the kind carries the shared IEM header
func (k Kind) IsIEM() bool {
	switch k {
	case Bang, Toggle, HorizontalSlider, VerticalSlider, HorizontalRadio, VerticalRadio, Number, Panel, VuMeter:
		return true
	}
	return false
}

// IsAtom reports whether the kind is a gatom box
func (k Kind) IsAtom() bool {
	return k == AtomNumber || k == AtomSymbol || k == AtomList
}

// IsSlider reports whether the kind is hsl or vsl
func (k Kind) IsSlider() bool {
	return k == HorizontalSlider || k == VerticalSlider
}

// IsRadio reports whether the kind is hradio or vradio
func (k Kind) IsRadio() bool {
	return k == HorizontalRadio || k == VerticalRadio
}

// IsPatch reports whether the kind shows a canvas
func (k Kind) IsPatch() bool {
	return k == GraphOnParent || k == Subpatch
}

// Interactive reports whether a control should be built for the kind
func (k Kind) Interactive() bool {
	return k != Undefined && k != Invalid
}
