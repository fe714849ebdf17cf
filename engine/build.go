package engine

// Default IEM colours
const (
	DefaultBackground int32 = 0xfcfcfc
	DefaultForeground int32 = 0x000000
	DefaultLabel      int32 = 0x000000
	DefaultFont             = "DejaVu Sans Mono"
)

// NewCanvas creates a patch. A root canvas has owner NoHandle.
func (in *Instance) NewCanvas(owner Handle, name string, x, y int) Handle {
	c := &Canvas{Name: name, Font: 12, Zoom: 1, PixW: 200, PixH: 140}
	c.X, c.Y = x, y
	c.Binbuf = []Atom{Symbol("pd"), Symbol(name)}
	return in.Add(owner, c)
}

// NewGraph creates a graph-on-parent canvas showing values -1..1
func (in *Instance) NewGraph(owner Handle, name string, x, y, w, h int) Handle {
	c := &Canvas{Name: name, IsGraph: true, Font: 12, Zoom: 1, PixW: w, PixH: h, X2: 1, Y1: 1, Y2: -1}
	c.X, c.Y = x, y
	c.Binbuf = []Atom{Symbol("graph"), Symbol(name)}
	return in.Add(owner, c)
}

// NewArray creates a named array inside a new graph and returns the graph
func (in *Instance) NewArray(owner Handle, name string, size, x, y int) Handle {
	g := in.NewGraph(owner, "graph-"+name, x, y, 200, 140)
	if size < 1 {
		size = 1
	}
	a := &Garray{Name: name, Data: make([]float64, size), Style: StylePolygon, SaveIt: true}
	in.Add(g, a)
	if obj, ok := in.Lookup(g); ok {
		obj.(*Canvas).X2 = float64(size)
	}
	return g
}

// Add places obj on the canvas owner and binds its receive names. Once the
// engine is running the caller holds the callback lock.
func (in *Instance) Add(owner Handle, obj Object) Handle {
	obj.Base().Owner = owner
	h := in.register(obj)
	if parent, ok := in.Lookup(owner); ok {
		if c, ok := parent.(*Canvas); ok {
			c.List = append(c.List, h)
		}
	}
	for _, name := range receiveNames(obj) {
		in.Bind(name, h)
	}
	return h
}

// Remove deletes an object and, for canvases, everything on them
func (in *Instance) Remove(h Handle) {
	obj, ok := in.Lookup(h)
	if !ok {
		return
	}
	if c, ok := obj.(*Canvas); ok {
		for _, child := range c.List {
			in.Remove(child)
		}
	}
	if parent, ok := in.Lookup(obj.Base().Owner); ok {
		if c, ok := parent.(*Canvas); ok {
			for i, child := range c.List {
				if child == h {
					c.List = append(c.List[:i:i], c.List[i+1:]...)
					break
				}
			}
		}
	}
	in.unregister(h)
}

// SetGraphFlag turns a subpatch into a graph-on-parent or back
func (in *Instance) SetGraphFlag(canvas Handle, on bool) {
	if obj, ok := in.Lookup(canvas); ok {
		if c, ok := obj.(*Canvas); ok {
			c.IsGraph = on
		}
	}
}

func receiveNames(obj Object) []string {
	var names []string
	add := func(s string) {
		if s != "" && s != "empty" {
			names = append(names, s)
		}
	}
	switch o := obj.(type) {
	case interface{ IEM() *IEMGui }:
		if g := o.IEM(); g.RcvAble {
			add(g.Rcv)
		}
	case *Gatom:
		add(o.SymFrom)
	case *Garray:
		add(o.Name)
	case *Tabosc:
		add(o.Rcv)
	}
	return names
}

func iemDefaults(w, h int) IEMGui {
	return IEMGui{
		W: w, H: h,
		Snd: "empty", Rcv: "empty", Lab: "empty",
		Ldx: 0, Ldy: -8,
		FontSize: 10,
		Font:     DefaultFont,
		BCol:     DefaultBackground,
		FCol:     DefaultForeground,
		LCol:     DefaultLabel,
	}
}

// NewSlider returns an hsl or vsl with range 0..127
func NewSlider(vertical bool) *Slider {
	s := &Slider{IEMGui: iemDefaults(128, 15), Vertical: vertical, Max: 127}
	if vertical {
		s.W, s.H = 15, 128
	}
	return s
}

// NewToggle returns a tgl with nonzero value 1
func NewToggle() *Toggle {
	t := &Toggle{IEMGui: iemDefaults(15, 15), Nonzero: 1}
	t.Ldx, t.Ldy = 17, 7
	return t
}

// NewRadio returns an hradio or vradio with n buttons
func NewRadio(vertical bool, n int) *Radio {
	if n < 1 {
		n = 1
	}
	return &Radio{IEMGui: iemDefaults(15, 15), Vertical: vertical, Number: n}
}

// NewNumbox returns an nbx with a practically unbounded range
func NewNumbox(digits int) *Numbox {
	if digits < 1 {
		digits = 5
	}
	n := &Numbox{IEMGui: iemDefaults(digits*7+9, 14), Min: -1e37, Max: 1e37, Digits: digits}
	n.Ldx, n.Ldy = 0, -8
	return n
}

// NewBang returns a bng with default flash times
func NewBang() *Bang {
	b := &Bang{IEMGui: iemDefaults(15, 15), Hold: 250, Interrupt: 50}
	b.Ldx, b.Ldy = 17, 7
	return b
}

// NewPanel returns a cnv with the given visible size
func NewPanel(w, h int) *Panel {
	p := &Panel{IEMGui: iemDefaults(15, 15), VisW: w - 1, VisH: h - 1}
	p.BCol = 0xe0e0e0
	p.Ldx, p.Ldy = 20, 12
	return p
}

// NewVU returns a level meter that follows the engine output
func NewVU() *VU {
	v := &VU{IEMGui: iemDefaults(15, 120), RMS: -101, Peak: -101, Auto: true}
	v.BCol = 0x404040
	v.Ldx, v.Ldy = -1, -8
	return v
}

// NewGatom returns a number box (AtomFloat), symbol box (AtomSymbol) or
// list box (AtomNull) of the given width in characters
func NewGatom(flavor AtomType, width int) *Gatom {
	g := &Gatom{Flavor: flavor}
	g.Kind = TextAtom
	g.Width = width
	switch flavor {
	case AtomFloat:
		g.Binbuf = []Atom{Float(0)}
	case AtomSymbol:
		g.Binbuf = []Atom{Symbol("symbol")}
	}
	return g
}

// NewMessage returns a message box holding text
func NewMessage(text string) *Message {
	m := &Message{}
	m.Kind = TextMessage
	m.Binbuf = ParseText(text)
	return m
}

// NewComment returns a comment holding text
func NewComment(text string) *Comment {
	c := &Comment{}
	c.Kind = TextComment
	c.Binbuf = ParseText(text)
	return c
}

// NewPad returns an XY pad
func NewPad(w, h int) *Pad {
	return &Pad{W: w, H: h}
}

// NewMouse returns a pointer tracker
func NewMouse() *Mouse {
	return &Mouse{Up: true}
}

// NewKeyboard returns a keyboard covering notes low..high
func NewKeyboard(low, high int) *Keyboard {
	return &Keyboard{W: 17 * 7, H: 80, Low: low, High: high, Send: "empty", Held: make(map[int]bool)}
}

// NewTabosc returns a wavetable oscillator reading array and listening on rcv
func NewTabosc(array, rcv string, freq float64) *Tabosc {
	return &Tabosc{Array: array, Rcv: rcv, Freq: freq, Gain: 0.2}
}
