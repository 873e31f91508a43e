package handlers

import (
	"io"
	"sync"

	"bobbystable/models"

	"github.com/gin-gonic/gin"
)

// EventHub fans reservation events out to every connected dashboard over
// server-sent events. Slow subscribers are skipped rather than blocking
// the turn that produced the event.
type EventHub struct {
	mu   sync.Mutex
	subs map[chan models.Event]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan models.Event]struct{})}
}

// Publish delivers events to all current subscribers.
func (h *EventHub) Publish(events ...models.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default: // subscriber not keeping up
			}
		}
	}
}

func (h *EventHub) subscribe() chan models.Event {
	ch := make(chan models.Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *EventHub) unsubscribe(ch chan models.Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// StreamEventsHandler holds the connection open and relays reservation
// events as they happen.
func (h *EventHub) StreamEventsHandler(c *gin.Context) {
	ch := h.subscribe()
	defer h.unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-ch:
			c.SSEvent("message", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
