package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/aetherdrive/prediction-service/internal/application/dto"
	"github.com/aetherdrive/prediction-service/internal/domain/event"
	"github.com/aetherdrive/prediction-service/internal/domain/port"
	"github.com/aetherdrive/prediction-service/internal/domain/service"
)

const instrumentationName = "github.com/aetherdrive/prediction-service/internal/application/usecase"

// Telemetry carries the instrumentation the Predict use case reports to.
// Nil fields fall back to the global providers and slog.Default.
type Telemetry struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger *slog.Logger
}

// Predict is the use case behind POST /predict: canonicalize the payload,
// hash it, score the digest and announce the result.
type Predict struct {
	digester  *service.Digester
	scorer    *service.MemoizedScorer
	publisher port.EventPublisher

	tracer   trace.Tracer
	logger   *slog.Logger
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewPredict creates a new Predict use case and registers its instruments.
func NewPredict(
	digester *service.Digester,
	scorer *service.MemoizedScorer,
	publisher port.EventPublisher,
	tel Telemetry,
) (*Predict, error) {
	if tel.Tracer == nil {
		tel.Tracer = otel.Tracer(instrumentationName)
	}
	if tel.Meter == nil {
		tel.Meter = otel.Meter(instrumentationName)
	}
	if tel.Logger == nil {
		tel.Logger = slog.Default()
	}

	uc := &Predict{
		digester:  digester,
		scorer:    scorer,
		publisher: publisher,
		tracer:    tel.Tracer,
		logger:    tel.Logger,
	}
	if err := uc.registerInstruments(tel.Meter); err != nil {
		return nil, err
	}
	return uc, nil
}

// Execute scores the request payload. It never fails on payload content;
// an error is only returned when ctx is already done.
func (uc *Predict) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.PredictResponse{}, fmt.Errorf("predict: %w", err)
	}

	start := time.Now()
	ctx, span := uc.tracer.Start(ctx, "predict.Execute")
	defer span.End()

	// 1. Canonicalize and hash.
	canonical, digest := uc.digester.DigestPayload(req.Payload)

	// 2. Score, through the cache.
	record, cached := uc.scorer.Lookup(digest)

	span.SetAttributes(
		attribute.String("prediction.digest", digest.String()),
		attribute.Int("prediction.canonical_length", len(canonical)),
		attribute.String("prediction.risk_score", record.Score().String()),
		attribute.Bool("prediction.cached", cached),
	)

	// 3. Announce the result. Failures are not the caller's problem.
	evt := event.NewPredictionScored(record, req.RequestID, cached)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		span.RecordError(err)
		uc.logger.WarnContext(ctx, "failed to publish prediction event",
			"digest", digest.Short(),
			"error", err,
		)
	}

	attrs := metric.WithAttributes(
		attribute.Bool("cached", cached),
		attribute.Bool("follow_up", record.Suggestion().NeedsFollowUp()),
	)
	uc.requests.Add(ctx, 1, attrs)
	uc.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	uc.logger.DebugContext(ctx, "payload scored",
		"digest", digest.Short(),
		"risk_score", record.Score().String(),
		"cached", cached,
		"request_id", req.RequestID,
	)

	return dto.FromRecord(record, req.Payload, cached), nil
}

func (uc *Predict) registerInstruments(meter metric.Meter) error {
	var err error

	uc.requests, err = meter.Int64Counter("predictions",
		metric.WithDescription("Number of scored payloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create predictions counter: %w", err)
	}

	uc.duration, err = meter.Float64Histogram("prediction.duration",
		metric.WithDescription("Time spent scoring a payload"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}

	hits, err := meter.Int64ObservableCounter("score_cache.hits",
		metric.WithDescription("Score cache hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cache hits counter: %w", err)
	}
	misses, err := meter.Int64ObservableCounter("score_cache.misses",
		metric.WithDescription("Score cache misses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cache misses counter: %w", err)
	}
	evictions, err := meter.Int64ObservableCounter("score_cache.evictions",
		metric.WithDescription("Score cache evictions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cache evictions counter: %w", err)
	}
	size, err := meter.Int64ObservableGauge("score_cache.size",
		metric.WithDescription("Entries held by the score cache"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cache size gauge: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := uc.scorer.Stats()
		o.ObserveInt64(hits, stats.Hits)
		o.ObserveInt64(misses, stats.Misses)
		o.ObserveInt64(evictions, stats.Evictions)
		o.ObserveInt64(size, int64(stats.Size))
		return nil
	}, hits, misses, evictions, size)
	if err != nil {
		return fmt.Errorf("failed to register cache callback: %w", err)
	}

	return nil
}
