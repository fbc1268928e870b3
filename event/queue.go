package event

import (
	"sync/atomic"

	"github.com/lixenwraith/spellcast/parameter"
)

// Queue carries lifecycle events from the tick that produced them to the
// router dispatch at the start of the next tick
// Producers may push from any goroutine without locking; Consume belongs to
// the tick loop. A full ring overwrites the oldest unread events and counts
// them: a lost EventCastEnded only delays the press guard, which the arbiter
// also clears once the caster reports idle
type Queue struct {
	slots   [parameter.EventQueueSize]Event
	ready   [parameter.EventQueueSize]atomic.Bool // Slot fully written
	head    atomic.Uint64                         // Next read
	tail    atomic.Uint64                         // Next write
	dropped atomic.Uint64                         // Overwritten before consumption
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event
func (q *Queue) Push(ev Event) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		q.slots[idx] = ev
		q.ready[idx].Store(true) // After the slot write

		// Drop the oldest unread slot when lapping the reader
		head := q.head.Load()
		if next-head > parameter.EventQueueSize {
			if q.head.CompareAndSwap(head, next-parameter.EventQueueSize) {
				q.dropped.Add(next - parameter.EventQueueSize - head)
			}
		}
		return
	}
}

// Publish pushes a typed event stamped with the frame of the tick that raised it
func (q *Queue) Publish(t EventType, payload any, frame int64) {
	q.Push(Event{Type: t, Payload: payload, Frame: frame})
}

// Consume returns pending events oldest first and marks them read
// Stops early at a slot whose producer has not finished writing
func (q *Queue) Consume() []Event {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		n := tail - head
		if n > parameter.EventQueueSize {
			n = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]Event, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.ready[idx].Load() {
				break
			}
			out = append(out, q.slots[idx])
			q.ready[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate number of unread events
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if d := tail - head; d < parameter.EventQueueSize {
		return int(d)
	}
	return parameter.EventQueueSize
}

// Dropped returns how many events were overwritten unread
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
