// Package events fans sheet changes out to listeners in priority order.
package events

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event *Event) error
	Priority() int
	ID() string
}

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewBus creates a new event bus. A nil logger discards.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    logger.Named("events"),
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(listener EventListener, types ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range types {
		list := append(b.listeners[eventType], listener)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() < list[j].Priority()
		})
		b.listeners[eventType] = list

		b.logger.Debug("subscribed listener",
			zap.String("listener", listener.ID()),
			zap.String("event", string(eventType)),
			zap.Int("priority", listener.Priority()))
	}
}

// Unsubscribe removes a listener from every event type
func (b *Bus) Unsubscribe(listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, listeners := range b.listeners {
		kept := listeners[:0]
		for _, l := range listeners {
			if l.ID() != listenerID {
				kept = append(kept, l)
			}
		}
		b.listeners[eventType] = kept
	}
}

// Emit sends an event to all registered listeners, stopping at the first
// error or cancellation
func (b *Bus) Emit(event *Event) error {
	if b == nil || event == nil {
		return nil
	}

	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.Type]))
	copy(listeners, b.listeners[event.Type])
	b.mu.RUnlock()

	for _, listener := range listeners {
		if event.IsCancelled() {
			b.logger.Debug("event cancelled", zap.String("event", string(event.Type)))
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
}

// LogListener writes every event it sees at debug level
func LogListener(logger *zap.Logger) EventListener {
	return &ListenerFunc{
		Name:  "log",
		Order: PriorityLast,
		Fn: func(e *Event) error {
			fields := []zap.Field{
				zap.String("event", string(e.Type)),
				zap.String("character_id", e.CharacterID),
			}
			if e.Op != "" {
				fields = append(fields, zap.String("op", e.Op))
			}
			if e.Err != nil {
				fields = append(fields, zap.Error(e.Err))
			}
			logger.Debug("sheet event", fields...)
			return nil
		},
	}
}

// AllTypes lists every event type, for listeners that want everything
func AllTypes() []EventType {
	return []EventType{
		CharacterCreated, CharacterLoaded, CharacterImported, CharacterSaved,
		CharacterDeleted, TransitionApplied, TransitionRejected,
	}
}
