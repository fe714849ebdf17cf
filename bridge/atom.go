package bridge

import (
	"strconv"

	"go-patchbridge/engine"
)

type atomTag uint8

const (
	tagEmpty atomTag = iota
	tagFloat
	tagSymbol
)

// Atom is one element of a list box: a float, a symbol, or an empty
// placeholder standing in for anything else so list length is preserved.
type Atom struct {
	tag atomTag
	f   float64
	s   string
}

// FloatAtom returns a float element
func FloatAtom(f float64) Atom { return Atom{tag: tagFloat, f: f} }

// SymbolAtom returns a symbol element
func SymbolAtom(s string) Atom { return Atom{tag: tagSymbol, s: s} }

func (a Atom) IsFloat() bool  { return a.tag == tagFloat }
func (a Atom) IsSymbol() bool { return a.tag == tagSymbol }
func (a Atom) IsEmpty() bool  { return a.tag == tagEmpty }

// Float returns the float value, 0 for other elements
func (a Atom) Float() float64 { return a.f }

// Symbol returns the symbol value, "" for other elements
func (a Atom) Symbol() string { return a.s }

func (a Atom) String() string {
	switch a.tag {
	case tagFloat:
		return strconv.FormatFloat(a.f, 'g', 6, 64)
	case tagSymbol:
		return a.s
	}
	return ""
}

// DecodeAtoms converts engine atoms, keeping one element per input
func DecodeAtoms(in []engine.Atom) []Atom {
	out := make([]Atom, len(in))
	for i, a := range in {
		switch a.Type {
		case engine.AtomFloat:
			out[i] = FloatAtom(a.F)
		case engine.AtomSymbol:
			out[i] = SymbolAtom(a.S)
		}
	}
	return out
}

// EncodeAtoms converts back to engine atoms. Empty elements become null atoms.
func EncodeAtoms(in []Atom) []engine.Atom {
	out := make([]engine.Atom, len(in))
	for i, a := range in {
		switch a.tag {
		case tagFloat:
			out[i] = engine.Float(a.f)
		case tagSymbol:
			out[i] = engine.Symbol(a.s)
		}
	}
	return out
}

// ParseAtoms splits typed text into list elements
func ParseAtoms(text string) []Atom {
	return DecodeAtoms(engine.ParseText(text))
}
