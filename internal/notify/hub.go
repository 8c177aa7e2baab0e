// Package notify is a tiny synchronous publish/subscribe hub used by the
// stores to announce state changes to whatever front end is attached.
package notify

import "sync"

// Hub fans a value out to subscribers in subscription order. The zero value
// is ready to use.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (h *Hub[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every current subscriber with v on the caller's goroutine.
// Subscribers may subscribe or unsubscribe from inside the callback.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	subs := append([]subscriber[T](nil), h.subs...)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len reports the number of subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
