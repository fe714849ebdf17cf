package audio

import (
	"encoding/binary"
	"math"
)

// Processor renders one block of mono samples. It runs on the audio
// thread, so it must not wait on anything but its own short lock.
type Processor interface {
	Process(block []float32)
}

// Reader pulls fixed-size blocks from a Processor and serves them as
// float32 little-endian bytes. It is the engine thread's entry point.
type Reader struct {
	proc  Processor
	block []float32
	pos   int // next unread sample in block
}

// NewReader returns a Reader producing blocks of blockSize samples
func NewReader(proc Processor, blockSize int) *Reader {
	if blockSize <= 0 {
		blockSize = 64
	}
	r := &Reader{proc: proc, block: make([]float32, blockSize)}
	r.pos = len(r.block)
	return r
}

// Read fills p with whole samples, running as many cycles as needed
func (r *Reader) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4
	for off := 0; off < n; off += 4 {
		if r.pos == len(r.block) {
			r.proc.Process(r.block)
			r.pos = 0
		}
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(r.block[r.pos]))
		r.pos++
	}
	return n, nil
}
