package engine

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// dB floor reported by meters for silence
const meterFloor = -101

type dspBuffers struct {
	mix    []float64
	osc    []float64
	scaled []float64
	sq     []float64
}

func (b *dspBuffers) ensure(n int) {
	if len(b.mix) == n {
		return
	}
	b.mix = make([]float64, n)
	b.osc = make([]float64, n)
	b.scaled = make([]float64, n)
	b.sq = make([]float64, n)
}

// dsp renders one block: wavetable oscillators mixed into block, then
// meters fed from the mix. Caller holds the callback lock.
func (in *Instance) dsp(block []float32) {
	n := len(block)
	if n == 0 {
		return
	}
	in.buf.ensure(n)
	mix := in.buf.mix
	for i := range mix {
		mix[i] = 0
	}

	var meters []*VU
	in.mu.RLock()
	oscs := make([]*Tabosc, 0, 4)
	for _, obj := range in.objects {
		switch o := obj.(type) {
		case *Tabosc:
			oscs = append(oscs, o)
		case *VU:
			if o.Auto {
				meters = append(meters, o)
			}
		}
	}
	in.mu.RUnlock()

	for _, o := range oscs {
		if in.renderTabosc(o, in.buf.osc) {
			vecmath.ScaleBlock(in.buf.scaled, in.buf.osc, o.Gain)
			vecmath.AddBlockInPlace(mix, in.buf.scaled)
		}
	}

	for i, v := range mix {
		block[i] = float32(clampRange(v, -1, 1))
	}

	if len(meters) == 0 {
		return
	}
	rms, peak := levels(mix, in.buf.sq)
	for _, m := range meters {
		m.RMS = toDB(rms)
		m.Peak = toDB(peak)
	}
}

// renderTabosc reads the oscillator's array as one wavetable cycle with
// linear interpolation. Returns false when the array is missing.
func (in *Instance) renderTabosc(o *Tabosc, out []float64) bool {
	a, err := in.findArray(o.Array)
	if err != nil || len(a.Data) == 0 || in.sampleRate <= 0 {
		return false
	}
	size := float64(len(a.Data))
	inc := o.Freq / in.sampleRate
	for i := range out {
		pos := o.phase * size
		j := int(pos)
		frac := pos - float64(j)
		x0 := a.Data[j%len(a.Data)]
		x1 := a.Data[(j+1)%len(a.Data)]
		out[i] = x0 + (x1-x0)*frac
		o.phase += inc
		o.phase -= math.Floor(o.phase)
	}
	return true
}

// levels returns the RMS and absolute peak of x, using sq as scratch
func levels(x, sq []float64) (rms, peak float64) {
	vecmath.MulBlock(sq, x, x)
	var sum float64
	for i, v := range sq {
		sum += v
		if a := math.Abs(x[i]); a > peak {
			peak = a
		}
	}
	return math.Sqrt(sum / float64(len(x))), peak
}

func toDB(v float64) float64 {
	if v <= 0 {
		return meterFloor
	}
	return math.Max(meterFloor, 20*math.Log10(v))
}
