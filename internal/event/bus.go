package event

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Handler receives a published event.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus is a synchronous publish/subscribe bus. Handlers run on the
// publisher's goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscription // event type ("*" for all) -> subscriptions
	nextID int

	// OnPanic is called when a handler panics. Publishing continues with
	// the remaining handlers either way.
	OnPanic func(e Event, recovered any, stack []byte)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers handler for one event type and returns an ID for Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[eventType] = append(b.subs[eventType], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// SubscribeAll registers handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) int {
	return b.Subscribe("*", handler)
}

// Unsubscribe removes a subscription. Returns false if id is unknown.
func (b *Bus) Unsubscribe(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subs {
		for i, sub := range subs {
			if sub.id == id {
				b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish delivers e to handlers of its type, then to wildcard handlers.
// A nil bus drops the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	specific := append([]subscription(nil), b.subs[e.EventType()]...)
	wildcard := append([]subscription(nil), b.subs["*"]...)
	b.mu.RUnlock()

	for _, sub := range specific {
		b.call(sub.handler, e)
	}
	for _, sub := range wildcard {
		b.call(sub.handler, e)
	}
}

func (b *Bus) call(handler Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.OnPanic != nil {
				b.OnPanic(e, r, debug.Stack())
				return
			}
			panic(fmt.Sprintf("event handler for %s: %v", e.EventType(), r))
		}
	}()
	handler(e)
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}
