package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire form of a DomainEvent.
type Envelope struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps an event. The payload is produced by JSON-marshalling the
// event itself, so only its exported fields are carried.
func NewEnvelope(event DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event.EventType(), err)
	}
	return Envelope{
		ID:         event.EventID(),
		Type:       event.EventType(),
		Key:        event.AggregateID(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload,
	}, nil
}

// Marshal encodes the envelope of an event.
func Marshal(event DomainEvent) ([]byte, error) {
	env, err := NewEnvelope(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}
