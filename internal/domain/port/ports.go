package port

import (
	"context"

	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
	"github.com/aetherdrive/prediction-service/pkg/events"
)

// CacheStats is a snapshot of score cache counters.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// ScoreCache defines the memoization port for score records keyed by digest.
// Implementations must be safe for concurrent use.
type ScoreCache interface {
	// Get returns the cached record and marks it most recently used.
	Get(digest valueobject.Digest) (model.ScoreRecord, bool)

	// Add stores a record, evicting the least recently used entry when full.
	// It reports whether an eviction happened.
	Add(digest valueobject.Digest, record model.ScoreRecord) bool

	// Len returns the number of cached records.
	Len() int

	// Stats returns the current counters.
	Stats() CacheStats
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish hands events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
