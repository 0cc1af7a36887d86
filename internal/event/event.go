package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types
const (
	RedemptionCompleted Type = domain.EventTypeRedemptionCompleted
	ProfileCreated      Type = domain.EventTypeProfileCreated
	ScanDropped         Type = domain.EventTypeScanDropped
)

// NewRedemptionCompletedEvent reports the outcome of one redemption attempt
func NewRedemptionCompletedEvent(userID string, outcome domain.Outcome, duration time.Duration, requestID string) Event {
	e := Event{
		Version: EventSchemaVersion,
		Type:    RedemptionCompleted,
		Payload: domain.RedemptionCompletedPayload{
			UserID:     userID,
			Kind:       outcome.Kind,
			ItemID:     outcome.ItemID,
			Reason:     outcome.Reason,
			DurationMs: duration.Milliseconds(),
		},
	}
	if requestID != "" {
		e.Metadata = Metadata{MetadataKeyRequestID: requestID}
	}
	return e
}

// NewProfileCreatedEvent reports a newly created member profile
func NewProfileCreatedEvent(userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProfileCreated,
		Payload: domain.ProfileCreatedPayload{UserID: userID},
	}
}

// NewScanDroppedEvent reports a payload a scan session refused to process
func NewScanDroppedEvent(reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ScanDropped,
		Payload: domain.ScanDroppedPayload{Reason: reason},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler subscribed to event.Type synchronously.
// A panicking handler is reported as an error and does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := safeHandle(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func safeHandle(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(ctx, event)
}
