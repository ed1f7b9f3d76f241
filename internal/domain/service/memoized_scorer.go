package service

import (
	"golang.org/x/sync/singleflight"

	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/port"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// MemoizedScorer caches the records of another Scorer by digest.
// Concurrent misses for the same digest are collapsed into one computation.
type MemoizedScorer struct {
	next  Scorer
	cache port.ScoreCache
	group singleflight.Group
}

// NewMemoizedScorer wraps next with the given cache.
func NewMemoizedScorer(next Scorer, cache port.ScoreCache) *MemoizedScorer {
	return &MemoizedScorer{
		next:  next,
		cache: cache,
	}
}

// Score returns the cached record for digest, computing and storing it on a miss.
func (s *MemoizedScorer) Score(digest valueobject.Digest) model.ScoreRecord {
	record, _ := s.Lookup(digest)
	return record
}

// Lookup is Score that also reports whether the record came from the cache.
func (s *MemoizedScorer) Lookup(digest valueobject.Digest) (model.ScoreRecord, bool) {
	if record, ok := s.cache.Get(digest); ok {
		return record, true
	}

	v, _, _ := s.group.Do(digest.String(), func() (interface{}, error) {
		record := s.next.Score(digest)
		s.cache.Add(digest, record)
		return record, nil
	})
	return v.(model.ScoreRecord), false
}

// Stats returns the cache counters.
func (s *MemoizedScorer) Stats() port.CacheStats {
	return s.cache.Stats()
}
