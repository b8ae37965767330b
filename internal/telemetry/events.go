package telemetry

import (
	"context"
	"log"
	"time"
)

// Publisher is the broker-facing half of the event emitter.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// EventEmitter publishes domain events (messages sent, AI calls made) to the
// broker with a stable envelope.
type EventEmitter struct {
	publisher   Publisher
	service     string
	environment string
}

// EventEnvelope is the wire shape of every emitted event.
type EventEnvelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventType     string `json:"event_type"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	RequestID     string `json:"request_id"`
	UserID        *int   `json:"user_id,omitempty"`
	Payload       any    `json:"payload"`
}

// NewEventEmitter constructs an EventEmitter.
func NewEventEmitter(publisher Publisher, service, environment string) *EventEmitter {
	return &EventEmitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
	}
}

// Emit publishes one event. A nil emitter or publisher is a no-op.
func (e *EventEmitter) Emit(ctx context.Context, routingKey, eventType, requestID string, userID *int, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := EventEnvelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		UserID:        userID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, routingKey, envelope); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}
