// Package bus is the in-process change notifier that keeps every mounted
// surface (console endpoints, SSE streams, CLI output) consistent with the
// persistent store.
//
// A Bus is scoped to one application instance — build it once at startup and
// hand it to whoever mutates or displays shared state. Publishing is
// synchronous: by the time Publish returns, every subscriber registered at
// that moment has run. There is no queueing and no retroactive delivery;
// a surface that subscribes late must read current state from the store.
//
//	unsub := b.Subscribe(bus.TopicCart, func(payload interface{}) { ... })
//	defer unsub()
package bus

import (
	"sync"

	"github.com/sommystore/storefront/pkg/metrics"
)

// Topics double as store keys for the state they announce.
const (
	TopicCart  = "cart"
	TopicUser  = "user"
	TopicAdmin = "admin"
)

// Handler receives the exact value that was just persisted for the topic.
// A nil payload instructs the subscriber to re-read the store instead.
type Handler func(payload interface{})

type subscription struct {
	id      int
	handler Handler
}

// Bus is a synchronous topic-keyed publish/subscribe fan-out.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers handler for topic and returns an unsubscribe func.
// Handlers are invoked in registration order. Unsubscribing twice is safe.
func (b *Bus) Subscribe(topic string, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[topic]
		for i, sub := range subs {
			if sub.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish synchronously delivers payload to every handler currently
// registered for topic. Callers must persist the corresponding state change
// before publishing so no subscriber observes a notification for state that
// is not yet durable.
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	metrics.BusPublishes.WithLabelValues(topic).Inc()

	for _, sub := range subs {
		sub.handler(payload)
	}
}
