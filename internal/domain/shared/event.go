package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a fact recorded after a shopper's store changed.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	ShopperSession() uuid.UUID
	EventSource() string
}

// EventHeader is embedded by every concrete event.
type EventHeader struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID uuid.UUID `json:"session_id"`
	Source    string    `json:"source"`
}

// NewEventHeader stamps an event of eventType raised by source.
func NewEventHeader(eventType, source string, sessionID uuid.UUID) EventHeader {
	return EventHeader{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Source:    source,
	}
}

func (h *EventHeader) EventID() uuid.UUID        { return h.ID }
func (h *EventHeader) EventType() string         { return h.Type }
func (h *EventHeader) OccurredAt() time.Time     { return h.Timestamp }
func (h *EventHeader) ShopperSession() uuid.UUID { return h.SessionID }
func (h *EventHeader) EventSource() string       { return h.Source }

// EventHandler consumes events. EventTypes names the types it wants; nil
// means all of them.
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
	EventTypes() []string
}

// EventPublisher never reports handler failures to the publisher.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
