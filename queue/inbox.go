package queue

import (
	"errors"
	"sync/atomic"

	"go-patchbridge/debug"
	"go-patchbridge/engine"
)

// Target is the engine side of the inbox
type Target interface {
	Deliver(h engine.Handle, selector string, atoms []engine.Atom) error
	SendTo(name, selector string, atoms []engine.Atom)
}

type node struct {
	next atomic.Pointer[node]
	msg  Message
}

// Inbox carries UI edits to the engine thread. Any goroutine may Post; only
// the engine thread drains. Post never blocks and never waits for a drain.
type Inbox struct {
	head atomic.Pointer[node] // last posted node, swapped by producers
	tail *node                // consumed stub, owned by the draining goroutine

	posted    atomic.Uint64
	discarded atomic.Uint64
}

// NewInbox creates an empty inbox
func NewInbox() *Inbox {
	q := &Inbox{}
	stub := &node{}
	q.head.Store(stub)
	q.tail = stub
	return q
}

// Post enqueues m
func (q *Inbox) Post(m Message) {
	n := &node{msg: m}
	prev := q.head.Swap(n)
	prev.next.Store(n)
	q.posted.Add(1)
}

// Drain hands every message visible now to fn, oldest first. A message whose
// producer is still linking it in is left for the next drain.
func (q *Inbox) Drain(fn func(Message)) int {
	n := 0
	for {
		next := q.tail.next.Load()
		if next == nil {
			return n
		}
		q.tail = next
		m := next.msg
		next.msg = Message{}
		fn(m)
		n++
	}
}

// DrainTo applies pending messages to the engine in post order. Messages
// whose target has been removed are dropped. Caller holds the callback lock.
func (q *Inbox) DrainTo(t Target) int {
	return q.Drain(func(m Message) {
		if m.Target == engine.NoHandle {
			t.SendTo(m.Name, m.Selector, m.Atoms)
			return
		}
		if err := t.Deliver(m.Target, m.Selector, m.Atoms); errors.Is(err, engine.ErrNoSuchObject) {
			q.discarded.Add(1)
			debug.Log("queue", "discarded %s for removed object %d", m.Selector, m.Target)
		}
	})
}

// Posted returns the number of messages ever posted
func (q *Inbox) Posted() uint64 { return q.posted.Load() }

// Discarded returns the number of messages dropped for missing targets
func (q *Inbox) Discarded() uint64 { return q.discarded.Load() }
