// Package stream delivers the audit log to live observers over SSE and
// WebSocket connections.
package stream

import (
	"context"
	"sync"

	"github.com/blogem/lanauthgate/models"
)

// Hub fans out freshly recorded audit entries to all active subscribers.
// It is only a wake-up signal for tailers; the audit table stays the source
// of truth, so dropped notifications lose nothing.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan models.AuditEntry
	next int
}

// NewHub creates a hub without subscribers
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan models.AuditEntry)}
}

// Subscribe registers a subscriber. The channel is closed when ctx ends.
func (h *Hub) Subscribe(ctx context.Context) <-chan models.AuditEntry {
	ch := make(chan models.AuditEntry, 16)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

// Publish hands entry to every subscriber without blocking
func (h *Hub) Publish(entry models.AuditEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- entry:
		default:
			// Slow subscriber; its tailer reads the entry from storage anyway.
		}
	}
}

// Subscribers returns the number of registered subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
