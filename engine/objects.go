package engine

// Object is the native layout of one live instance. Each class has its own
// struct; callers inspect them by class name or type assertion.
type Object interface {
	Class() string
	Base() *Text
}

// TextKind distinguishes the flavours of text-based boxes
type TextKind int

const (
	TextObject TextKind = iota
	TextMessage
	TextAtom
	TextComment
)

// Text is the header every object carries: position, owning canvas and box content
type Text struct {
	Kind   TextKind
	Owner  Handle
	X, Y   int
	Width  int // in characters, 0 = fit content
	Binbuf []Atom
}

// Base returns the text header
func (t *Text) Base() *Text { return t }

// IEMGui holds the fields shared by all IEM-style controls
type IEMGui struct {
	Text
	W, H     int
	Snd      string
	Rcv      string
	Lab      string
	SndAble  bool
	RcvAble  bool
	Ldx, Ldy int
	FontSize int
	Font     string
	BCol     int32 // 0xRRGGBB
	FCol     int32
	LCol     int32
}

// IEM returns the shared IEM header
func (g *IEMGui) IEM() *IEMGui { return g }

// Slider is hsl / vsl
type Slider struct {
	IEMGui
	Vertical bool
	Min, Max float64
	Val      float64
	Lin0Log1 int
	Steady   int
}

func (s *Slider) Class() string {
	if s.Vertical {
		return "vsl"
	}
	return "hsl"
}

// Toggle is tgl
type Toggle struct {
	IEMGui
	On      float64
	Nonzero float64
}

func (t *Toggle) Class() string { return "tgl" }

// Radio is hradio / vradio. Number is the button count.
type Radio struct {
	IEMGui
	Vertical bool
	Number   int
	On       int
}

func (r *Radio) Class() string {
	if r.Vertical {
		return "vradio"
	}
	return "hradio"
}

// Numbox is nbx
type Numbox struct {
	IEMGui
	Min, Max float64
	Val      float64
	Lin0Log1 int
	Digits   int
}

func (n *Numbox) Class() string { return "nbx" }

// Bang is bng. Flashed is set when it fires and cleared by whoever displays it.
type Bang struct {
	IEMGui
	Flashed   int
	Hold      int // ms
	Interrupt int // ms
}

func (b *Bang) Class() string { return "bng" }

// Panel is cnv. VisW/VisH are stored one less than the drawn size.
type Panel struct {
	IEMGui
	VisW, VisH int
}

func (p *Panel) Class() string { return "cnv" }

// VU is a level meter, values in dB relative to full scale
type VU struct {
	IEMGui
	RMS  float64
	Peak float64
	Auto bool // follow the engine output block
}

func (v *VU) Class() string { return "vu" }

// Gatom is a number, symbol or list box. The value lives in Binbuf.
type Gatom struct {
	Text
	Flavor     AtomType // AtomFloat, AtomSymbol, or AtomNull for lists
	DragLo     float64
	DragHi     float64
	Label      string
	SymFrom    string // receive
	SymTo      string // send
	WhereLabel uint8  // 0 left, 1 right, 2 above, 3 below
	FontSize   int
}

func (g *Gatom) Class() string { return "gatom" }

// Message is a message box
type Message struct {
	Text
}

func (m *Message) Class() string { return "message" }

// Comment is a free text comment. A broken object box shares the class name.
type Comment struct {
	Text
}

func (c *Comment) Class() string { return "text" }

// Canvas is a patch, subpatch, abstraction or graph
type Canvas struct {
	Text
	class   string
	Name    string
	IsGraph bool
	List    []Handle
	Font    int
	Zoom    int
	// graph coordinates; Y1 is the top value, Y2 the bottom value
	X1, Y1, X2, Y2 float64
	PixW, PixH     int
}

func (c *Canvas) Class() string {
	if c.class == "" {
		return "canvas"
	}
	return c.class
}

// Garray is the storage of a named array, owned by a graph canvas
type Garray struct {
	Text
	Name     string
	Data     []float64
	Style    int // 0 points, 1 polygon, 2 bezier
	HideName bool
	SaveIt   bool
}

func (a *Garray) Class() string { return "array" }

// Pad is an XY pad. X and Y are in 0..127.
type Pad struct {
	Text
	W, H int
	X, Y float64
}

func (p *Pad) Class() string { return "pad" }

// Mouse tracks the pointer on screen
type Mouse struct {
	Text
	Up   bool
	X, Y float64
}

func (m *Mouse) Class() string { return "mouse" }

// Keyboard is an on-screen piano keyboard
type Keyboard struct {
	Text
	W, H      int
	Low, High int
	Send      string
	Held      map[int]bool
}

func (k *Keyboard) Class() string { return "keyboard" }

// Tabosc plays a named array as a wavetable. It has no interactive form.
type Tabosc struct {
	Text
	Array string
	Rcv   string
	Freq  float64
	Gain  float64
	phase float64
}

func (t *Tabosc) Class() string { return "tabosc~" }
