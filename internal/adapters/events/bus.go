// Package events provides the in-process location event bus.
package events

import (
	"context"
	"sync"

	"weathernow.app/internal/ports"
)

const defaultBufferSize = 16

// Bus fans location events out to every live subscriber in publish order.
// Publish never waits: a subscriber whose buffer is full is dropped and its
// channel closed, so it can resubscribe and resync.
type Bus struct {
	logger     ports.Logger
	bufferSize int

	mu          sync.RWMutex
	subscribers map[uint64]chan ports.LocationEvent
	nextID      uint64
	closed      bool
}

var _ ports.LocationEvents = (*Bus)(nil)

func NewBus(logger ports.Logger, bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Bus{
		logger:      logger,
		bufferSize:  bufferSize,
		subscribers: make(map[uint64]chan ports.LocationEvent),
	}
}

// Publish delivers event to all subscribers without blocking
func (b *Bus) Publish(ctx context.Context, event ports.LocationEvent) {
	var lagging []uint64

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			lagging = append(lagging, id)
		}
	}
	delivered := len(b.subscribers) - len(lagging)
	b.mu.RUnlock()

	for _, id := range lagging {
		b.logger.Warn("Dropping lagging location event subscriber",
			ports.F("subscriber", id),
			ports.F("event", event.Type.String()))
		b.unsubscribe(id)
	}

	b.logger.Debug("Location event published",
		ports.F("event", event.Type.String()),
		ports.F("city", event.Location.CityName),
		ports.F("subscribers", delivered))
}

// Subscribe returns a channel receiving every event published after the call.
// The channel is closed when ctx is done, when the subscriber falls a full
// buffer behind, or when the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) <-chan ports.LocationEvent {
	ch := make(chan ports.LocationEvent, b.bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(id)
	}()

	return ch
}

// Close ends every subscription
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}
