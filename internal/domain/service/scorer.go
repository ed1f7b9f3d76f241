package service

import (
	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// Scorer defines the interface for digest scoring strategies.
// Both ScoreMapper (direct) and MemoizedScorer (cached) implement this.
type Scorer interface {
	Score(digest valueobject.Digest) model.ScoreRecord
}
