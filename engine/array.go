package engine

import "errors"

var (
	ErrNoSuchArray     = errors.New("engine: no such array")
	ErrIndexOutOfRange = errors.New("engine: array index out of range")
)

// Array styles as stored on the array template
const (
	StylePoints  = 0
	StylePolygon = 1
	StyleBezier  = 2
)

// findArray resolves a name to its storage. Caller holds the callback lock.
func (in *Instance) findArray(name string) (*Garray, error) {
	for _, h := range in.Bound(name) {
		if obj, ok := in.Lookup(h); ok {
			if a, ok := obj.(*Garray); ok {
				return a, nil
			}
		}
	}
	return nil, ErrNoSuchArray
}

// ArraySize returns the number of samples in the named array
func (in *Instance) ArraySize(name string) (int, error) {
	a, err := in.findArray(name)
	if err != nil {
		return 0, err
	}
	return len(a.Data), nil
}

// ReadArray copies up to len(dst) samples into dst and returns how many
// were copied. Caller holds the callback lock.
func (in *Instance) ReadArray(name string, dst []float64) (int, error) {
	a, err := in.findArray(name)
	if err != nil {
		return 0, err
	}
	return copy(dst, a.Data), nil
}

// WriteArray stores src starting at offset. Caller holds the callback lock.
func (in *Instance) WriteArray(name string, offset int, src []float64) error {
	a, err := in.findArray(name)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(src) > len(a.Data) {
		return ErrIndexOutOfRange
	}
	copy(a.Data[offset:], src)
	return nil
}

// ResizeArray changes the length of the named array, zero filling
func (in *Instance) ResizeArray(name string, n int) error {
	a, err := in.findArray(name)
	if err != nil {
		return err
	}
	if n < 1 {
		n = 1
	}
	a.resize(n)
	return nil
}

// ArrayScale returns the value range of the graph showing the array as
// (min, max), defaulting to (-1, 1).
func (in *Instance) ArrayScale(name string) (lo, hi float64, err error) {
	a, err := in.findArray(name)
	if err != nil {
		return -1, 1, err
	}
	obj, ok := in.Lookup(a.Owner)
	if !ok {
		return -1, 1, nil
	}
	c, ok := obj.(*Canvas)
	if !ok || (c.Y1 == 0 && c.Y2 == 0) {
		return -1, 1, nil
	}
	return c.Y2, c.Y1, nil
}

// SetArrayScale sets the value range of the graph showing the array
func (in *Instance) SetArrayScale(name string, lo, hi float64) error {
	a, err := in.findArray(name)
	if err != nil {
		return err
	}
	obj, ok := in.Lookup(a.Owner)
	if !ok {
		return ErrNoSuchObject
	}
	if c, ok := obj.(*Canvas); ok {
		c.Y2, c.Y1 = lo, hi
	}
	return nil
}

// ArrayStyle returns the plot style of the named array
func (in *Instance) ArrayStyle(name string) (int, error) {
	a, err := in.findArray(name)
	if err != nil {
		return StylePoints, err
	}
	return a.Style, nil
}

// ArrayHidden reports whether the array name is hidden on its graph
func (in *Instance) ArrayHidden(name string) bool {
	a, err := in.findArray(name)
	return err == nil && a.HideName
}

func (a *Garray) resize(n int) {
	if n <= cap(a.Data) {
		old := len(a.Data)
		a.Data = a.Data[:n]
		for i := old; i < n; i++ {
			a.Data[i] = 0
		}
		return
	}
	data := make([]float64, n)
	copy(data, a.Data)
	a.Data = data
}
