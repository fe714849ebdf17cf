package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"go-patchbridge/engine"
	"go-patchbridge/queue"
)

// Colours for controls without their own
const (
	DefaultBackground uint32 = 0xffffffff
	DefaultForeground uint32 = 0xff000000
)

// FromIEM converts a packed 0xRRGGBB engine colour to opaque ARGB
func FromIEM(c int32) uint32 {
	return 0xff000000 | uint32(c)&0xffffff
}

// ToIEM parses "RRGGBB" or "AARRGGBB", with an optional leading '#', into
// a packed engine colour. Alpha is dropped.
func ToIEM(hex string) (int32, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		hex = hex[2:]
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("colour %q: want 6 or 8 hex digits", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q: %w", hex, err)
	}
	return int32(v), nil
}

// BackgroundColor returns the fill colour as ARGB
func (o *Object) BackgroundColor() uint32 {
	c := DefaultBackground
	o.read(func(obj engine.Object) {
		if g := iem(obj); g != nil {
			c = FromIEM(g.BCol)
		}
	})
	return c
}

// ForegroundColor returns the indicator colour as ARGB
func (o *Object) ForegroundColor() uint32 {
	c := DefaultForeground
	o.read(func(obj engine.Object) {
		if g := iem(obj); g != nil {
			c = FromIEM(g.FCol)
		}
	})
	return c
}

// LabelColor returns the label colour as ARGB
func (o *Object) LabelColor() uint32 {
	c := DefaultForeground
	o.read(func(obj engine.Object) {
		if g := iem(obj); g != nil {
			c = FromIEM(g.LCol)
		}
	})
	return c
}

// SetBackgroundColor sets the fill colour of an IEM control from hex
func (o *Object) SetBackgroundColor(hex string) error {
	return o.setColor(hex, 0)
}

// SetForegroundColor sets the indicator colour of an IEM control from hex
func (o *Object) SetForegroundColor(hex string) error {
	return o.setColor(hex, 1)
}

// SetLabelColor sets the label colour of an IEM control from hex
func (o *Object) SetLabelColor(hex string) error {
	return o.setColor(hex, 2)
}

func (o *Object) setColor(hex string, which int) error {
	c, err := ToIEM(hex)
	if err != nil {
		return err
	}
	if o.Kind().IsIEM() {
		o.post(queue.Typed(o.handle, engine.SelColor, engine.Float(float64(which)), engine.Float(float64(c))))
	}
	return nil
}
