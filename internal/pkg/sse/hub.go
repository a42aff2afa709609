package sse

import (
	"sync"

	"github.com/google/uuid"
)

// Event is one server-sent event addressed to a single owner.
type Event struct {
	ID    string
	Owner string
	Name  string
	Data  interface{}
}

const subscriberBuffer = 10

// Hub fans events out to every open stream of an owner.
type Hub struct {
	mu     sync.RWMutex
	owners map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		owners: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe opens a stream for owner. The returned func unregisters and
// closes the channel; it must be called exactly once.
func (h *Hub) Subscribe(owner string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.owners[owner] == nil {
		h.owners[owner] = make(map[chan Event]struct{})
	}
	h.owners[owner][ch] = struct{}{}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.owners[owner], ch)
			close(ch)
			if len(h.owners[owner]) == 0 {
				delete(h.owners, owner)
			}
		})
	}

	return ch, unsubscribe
}

// Publish delivers an event to the owner's streams and returns how many
// received it. Full streams drop the event instead of blocking.
func (h *Hub) Publish(owner, name string, data interface{}) int {
	event := Event{
		ID:    uuid.NewString(),
		Owner: owner,
		Name:  name,
		Data:  data,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.owners[owner] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// SubscriberCount returns the number of open streams for owner
func (h *Hub) SubscriberCount(owner string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.owners[owner])
}

// TotalSubscribers returns the number of open streams across all owners
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.owners {
		total += len(subs)
	}
	return total
}
