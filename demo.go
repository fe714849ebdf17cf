package main

import (
	"context"
	"math"
	"time"

	"go-patchbridge/debug"
	"go-patchbridge/engine"
)

const demoTable = "tab1"

// buildDemo fills inst with one of every control. It returns the root
// canvas and a subpatch that is turned into a graph once running.
func buildDemo(inst *engine.Instance, zoom int) (root, sub engine.Handle) {
	root = inst.NewCanvas(engine.NoHandle, "demo", 0, 0)
	if obj, ok := inst.Lookup(root); ok {
		obj.(*engine.Canvas).Zoom = zoom
	}

	inst.Add(root, engine.NewComment("wavetable synth: drag the table, move the sliders"))

	on := engine.NewToggle()
	on.Snd, on.SndAble = "gate", true
	on.Lab = "gate"
	inst.Add(root, on)

	freq := engine.NewSlider(false)
	freq.Min, freq.Max, freq.Val = 55, 880, 220
	freq.Lin0Log1 = 1
	freq.Snd, freq.SndAble = "freq", true
	freq.Lab = "freq"
	inst.Add(root, freq)

	cutoff := engine.NewSlider(true)
	cutoff.Rcv, cutoff.RcvAble = "cutoff", true
	cutoff.Lab = "cc1"
	inst.Add(root, cutoff)

	wave := engine.NewRadio(false, 4)
	wave.Snd, wave.SndAble = "shape", true
	inst.Add(root, wave)

	nbx := engine.NewNumbox(5)
	nbx.Min, nbx.Max, nbx.Val = 55, 880, 220
	nbx.Snd, nbx.SndAble = "freq", true
	inst.Add(root, nbx)

	inst.Add(root, engine.NewBang())

	num := engine.NewGatom(engine.AtomFloat, 5)
	num.SymTo, num.Label = "freq", "hz"
	inst.Add(root, num)

	sym := engine.NewGatom(engine.AtomSymbol, 10)
	sym.SymFrom = "name"
	inst.Add(root, sym)

	inst.Add(root, engine.NewGatom(engine.AtomNull, 10))
	inst.Add(root, engine.NewMessage("; freq 440; name symbol a4"))

	vu := engine.NewVU()
	vu.Lab = "out"
	inst.Add(root, vu)

	inst.NewArray(root, demoTable, 100, 0, 200)
	table := make([]float64, 100)
	for i := range table {
		table[i] = math.Sin(2 * math.Pi * float64(i) / float64(len(table)))
	}
	if err := inst.WriteArray(demoTable, 0, table); err != nil {
		debug.Log("main", "demo table: %v", err)
	}
	inst.Add(root, engine.NewTabosc(demoTable, "freq", 220))

	sub = inst.NewCanvas(root, "controls", 300, 0)
	inner := engine.NewToggle()
	inner.Lab = "inner"
	inst.Add(sub, inner)
	inst.Add(sub, engine.NewSlider(false))

	inst.Add(root, engine.NewPad(127, 127))
	inst.Add(root, engine.NewMouse())
	inst.Add(root, engine.NewKeyboard(48, 72))

	panel := engine.NewPanel(100, 40)
	panel.BCol = 0x4a9ed6
	inst.Add(root, panel)

	return root, sub
}

// promoteLater turns sub into a graph-on-parent after d, the way an
// editor toggling the graph flag would
func promoteLater(ctx context.Context, inst *engine.Instance, sub engine.Handle, d time.Duration) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(d):
	}
	inst.Lock()
	inst.SetGraphFlag(sub, true)
	inst.Unlock()
	debug.Log("main", "subpatch %d is now a graph", sub)
}
