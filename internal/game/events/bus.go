package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler processes a single event.
type Handler func(Event)

// Bus is a synchronous publish/subscribe hub. Handlers run inline on the
// publishing goroutine, in subscription order per event type; a panicking
// handler is contained so it cannot take the engine down with it.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   zerolog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger.With().Str("component", "EventBus").Logger(),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// SubscribeAll registers a handler for every event type listed.
func (b *Bus) SubscribeAll(eventTypes []string, h Handler) {
	for _, t := range eventTypes {
		b.Subscribe(t, h)
	}
}

// Publish delivers the event to every handler registered for its type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Type()]
	b.mu.RUnlock()

	for i, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error().
						Str("event_type", event.Type()).
						Int("handler_index", i).
						Interface("panic", r).
						Msg("event handler panicked")
				}
			}()
			h(event)
		}()
	}
}

// HandlerCount reports how many handlers are registered for a type.
func (b *Bus) HandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
