package store

import (
	"log"
	"sync"
)

const subscriberBuffer = 16

// Change says the value under Key was replaced or removed. External is set
// when another process made the write.
type Change struct {
	Key      string
	External bool
}

// Hub fans changes out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the change, which is fine for readers that
// re-read everything on any notification.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Change
	next   int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Change)}
}

func (h *Hub) Subscribe() (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Change, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.next
	h.next++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

func (h *Hub) Publish(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- c:
		default:
			log.Printf("store: subscriber %d is behind, dropped change for %q", id, c.Key)
		}
	}
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
