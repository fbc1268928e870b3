package event

import (
	"sync/atomic"

	"github.com/lixenwraith/spellcast/status"
)

// Handler receives routed events
type Handler interface {
	// HandleEvent is called on the loop goroutine during dispatch, before systems update
	HandleEvent(ev Event)

	// EventTypes lists the types this handler subscribes to
	EventTypes() []EventType
}

// Router fans queued events out to subscribed handlers
// Handlers for one type run in registration order; all handlers see an
// event before the next event is dispatched
type Router struct {
	handlers map[EventType][]Handler
	queue    *Queue

	dispatched *atomic.Int64
	dropped    *atomic.Int64
}

// NewRouter creates a router draining queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register subscribes handler to every type it declares
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// Track publishes dispatch and overflow counts to reg
func (r *Router) Track(reg *status.Registry) {
	if reg == nil {
		return
	}
	r.dispatched = reg.Ints.Get(status.EventsDispatched)
	r.dropped = reg.Ints.Get(status.EventsDropped)
}

// DispatchAll drains the queue; returns the number of events consumed
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	if r.dispatched != nil {
		r.dispatched.Add(int64(len(events)))
		r.dropped.Store(int64(r.queue.Dropped()))
	}
	return len(events)
}

// HandlerCount returns the number of handlers subscribed to t
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(Event)
}

func (f HandlerFunc) HandleEvent(ev Event) { f.Fn(ev) }
func (f HandlerFunc) EventTypes() []EventType { return f.Types }
