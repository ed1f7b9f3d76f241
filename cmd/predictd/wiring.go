package main

import (
	"context"
	"log/slog"

	"github.com/aetherdrive/prediction-service/internal/application/usecase"
	"github.com/aetherdrive/prediction-service/internal/domain/port"
	"github.com/aetherdrive/prediction-service/internal/domain/service"
	"github.com/aetherdrive/prediction-service/internal/infrastructure/cache"
	"github.com/aetherdrive/prediction-service/internal/infrastructure/config"
	"github.com/aetherdrive/prediction-service/internal/infrastructure/messaging"
	"github.com/aetherdrive/prediction-service/pkg/kafka"
)

// newPredict wires the domain services behind the Predict use case.
func newPredict(publisher port.EventPublisher, tel usecase.Telemetry) (*usecase.Predict, error) {
	scorer := service.NewMemoizedScorer(service.NewScoreMapper(), cache.NewLRU(cache.DefaultCapacity))
	return usecase.NewPredict(service.NewDigester(), scorer, publisher, tel)
}

// eventSink is the publisher plus what serve needs to manage it.
type eventSink struct {
	publisher port.EventPublisher
	ping      func(ctx context.Context) error
	close     func() error
}

// newEventSink returns a Kafka publisher when brokers are configured and a
// log publisher otherwise.
func newEventSink(cfg config.Config, logger *slog.Logger) (eventSink, error) {
	if !cfg.KafkaEnabled() {
		return eventSink{
			publisher: messaging.NewLogPublisher(logger),
			close:     func() error { return nil },
		}, nil
	}

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers:       cfg.KafkaBrokers,
		ClientID:      config.ServiceName,
		TLS:           cfg.KafkaTLS,
		CAFile:        cfg.KafkaCAFile,
		SASLMechanism: cfg.KafkaSASL,
		SASLUsername:  cfg.KafkaUsername,
		SASLPassword:  cfg.KafkaPassword,
		Async:         true,
	}, logger)
	if err != nil {
		return eventSink{}, err
	}

	return eventSink{
		publisher: messaging.NewKafkaPublisher(producer, cfg.KafkaTopic, logger),
		ping:      producer.Ping,
		close:     producer.Close,
	}, nil
}
