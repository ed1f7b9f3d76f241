package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aetherdrive/prediction-service/internal/domain/port"
	"github.com/aetherdrive/prediction-service/pkg/events"
	"github.com/aetherdrive/prediction-service/pkg/kafka"
)

// Producer is the subset of kafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka.
type KafkaPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

var _ port.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish wraps each event in an envelope and sends the batch to the topic,
// keyed by aggregate so one digest always lands on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		value, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: value,
			Headers: map[string]string{
				"content-type": "application/json",
				"event-type":   evt.EventType(),
				"event-id":     evt.EventID().String(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}

	p.logger.Debug("published events",
		slog.String("topic", p.topic),
		slog.Int("count", len(messages)),
	)
	return nil
}
