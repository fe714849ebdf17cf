package engine

import (
	"strconv"
	"strings"
)

// AtomType tags the content of an Atom
type AtomType int

const (
	AtomNull AtomType = iota
	AtomFloat
	AtomSymbol
	AtomSemi
	AtomComma
	AtomDollar
)

// Atom is one tagged element of a message or box content
type Atom struct {
	Type AtomType
	F    float64
	S    string
}

// Float returns a float atom
func Float(f float64) Atom {
	return Atom{Type: AtomFloat, F: f}
}

// Symbol returns a symbol atom
func Symbol(s string) Atom {
	return Atom{Type: AtomSymbol, S: s}
}

// GetFloat returns the float value of a float atom, 0 otherwise
func (a Atom) GetFloat() float64 {
	if a.Type == AtomFloat {
		return a.F
	}
	return 0
}

// String formats the atom the way a box displays it
func (a Atom) String() string {
	switch a.Type {
	case AtomFloat:
		return strconv.FormatFloat(a.F, 'g', 6, 64)
	case AtomSymbol:
		return a.S
	case AtomSemi:
		return ";"
	case AtomComma:
		return ","
	case AtomDollar:
		return "$" + a.S
	}
	return ""
}

// ParseText splits box text into atoms. Numbers become floats, ";" and ","
// become separators, "$n" becomes a dollar argument, everything else a symbol.
func ParseText(text string) []Atom {
	text = strings.NewReplacer(";", " ; ", ",", " , ").Replace(text)
	fields := strings.Fields(text)
	atoms := make([]Atom, 0, len(fields))
	for _, f := range fields {
		switch {
		case f == ";":
			atoms = append(atoms, Atom{Type: AtomSemi})
		case f == ",":
			atoms = append(atoms, Atom{Type: AtomComma})
		case len(f) > 1 && f[0] == '$':
			atoms = append(atoms, Atom{Type: AtomDollar, S: f[1:]})
		default:
			if v, err := strconv.ParseFloat(f, 64); err == nil {
				atoms = append(atoms, Float(v))
			} else {
				atoms = append(atoms, Symbol(f))
			}
		}
	}
	return atoms
}

// FormatText joins atoms back into box text. A ";" separator ends a line.
func FormatText(atoms []Atom) string {
	var out strings.Builder
	for i, a := range atoms {
		if i > 0 && a.Type != AtomSemi && a.Type != AtomComma && atoms[i-1].Type != AtomSemi {
			out.WriteByte(' ')
		}
		out.WriteString(a.String())
		if a.Type == AtomSemi && i < len(atoms)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
