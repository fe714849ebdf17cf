package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"go-patchbridge/debug"
)

// Driver plays the engine through the system audio device. The device's
// pull callback is the engine thread.
type Driver struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex // Only for setup/control operations
}

// Open creates the audio context and a player pulling from proc
func Open(proc Processor, sampleRate, blockSize int) (*Driver, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	<-ready

	d := &Driver{ctx: ctx}
	d.player = ctx.NewPlayer(NewReader(proc, blockSize))
	debug.Log("audio", "opened %d Hz, block %d", sampleRate, blockSize)
	return d, nil
}

// Start begins playback
func (d *Driver) Start() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.started && d.player != nil {
		d.player.Play()
		d.started = true
	}
}

// Close stops playback and releases the player
func (d *Driver) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.started = false
	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	return err
}

// RunClock drives proc in real time without an audio device, discarding
// the output. It blocks until ctx is done.
func RunClock(ctx context.Context, proc Processor, sampleRate, blockSize int) {
	if blockSize <= 0 {
		blockSize = 64
	}
	block := make([]float32, blockSize)
	start := time.Now()
	var done int64 // samples rendered

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			due := int64(now.Sub(start).Seconds() * float64(sampleRate))
			for done+int64(blockSize) <= due {
				proc.Process(block)
				done += int64(blockSize)
			}
		}
	}
}
