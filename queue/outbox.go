package queue

import (
	"slices"
	"sync"
	"sync/atomic"

	"go-patchbridge/engine"
)

// Snapshot is an object's displayed state as read on the engine thread
type Snapshot struct {
	Key   uint64
	Value float64
	Text  string
	Atoms []engine.Atom
	Seq   uint64
}

func (s Snapshot) same(o Snapshot) bool {
	return s.Value == o.Value && s.Text == o.Text && slices.Equal(s.Atoms, o.Atoms)
}

// Reader reads one object under the callback lock. It returns false when
// the object no longer exists.
type Reader func() (Snapshot, bool)

type slot struct {
	key  uint64
	read Reader

	// engine thread only
	last Snapshot
	seq  uint64

	latest atomic.Pointer[Snapshot]

	// UI thread only
	applied uint64
}

// Outbox carries engine state back to the UI. The engine thread collects
// snapshots once per cycle; for each key only the newest is kept, and the
// UI applies it at most once. Neither side ever waits for the other.
type Outbox struct {
	mu     sync.Mutex // serialises Watch and Retire
	slots  atomic.Pointer[[]*slot]
	notify chan struct{}
}

// NewOutbox creates an empty outbox
func NewOutbox() *Outbox {
	o := &Outbox{notify: make(chan struct{}, 1)}
	o.slots.Store(&[]*slot{})
	return o
}

// Watch starts collecting snapshots for key. Replaces any existing reader.
func (o *Outbox) Watch(key uint64, read Reader) {
	o.mu.Lock()
	defer o.mu.Unlock()
	old := *o.slots.Load()
	next := make([]*slot, 0, len(old)+1)
	for _, s := range old {
		if s.key != key {
			next = append(next, s)
		}
	}
	next = append(next, &slot{key: key, read: read})
	o.slots.Store(&next)
}

// Retire stops collecting for key. A cycle already holding the old slot
// list finishes with it; nothing it produces is delivered afterwards.
func (o *Outbox) Retire(key uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	old := *o.slots.Load()
	next := make([]*slot, 0, len(old))
	for _, s := range old {
		if s.key != key {
			next = append(next, s)
		}
	}
	o.slots.Store(&next)
}

// Collect reads every watched object and publishes those that changed since
// the last cycle. Runs on the engine thread with the callback lock held.
func (o *Outbox) Collect() int {
	changed := 0
	for _, s := range *o.slots.Load() {
		snap, ok := s.read()
		if !ok {
			continue
		}
		if s.seq > 0 && snap.same(s.last) {
			continue
		}
		s.seq++
		snap.Key = s.key
		snap.Seq = s.seq
		s.last = snap
		s.latest.Store(&snap)
		changed++
	}
	if changed > 0 {
		select {
		case o.notify <- struct{}{}:
		default:
		}
	}
	return changed
}

// Deliver applies pending snapshots on the UI thread. Per key, snapshots
// arrive in order and a superseded one is never applied.
func (o *Outbox) Deliver(apply func(Snapshot)) int {
	n := 0
	for _, s := range *o.slots.Load() {
		p := s.latest.Swap(nil)
		if p == nil || p.Seq <= s.applied {
			continue
		}
		s.applied = p.Seq
		apply(*p)
		n++
	}
	return n
}

// Notify signals that Deliver has work. Capacity one; bursts coalesce.
func (o *Outbox) Notify() <-chan struct{} {
	return o.notify
}

// Len returns the number of watched keys
func (o *Outbox) Len() int {
	return len(*o.slots.Load())
}
