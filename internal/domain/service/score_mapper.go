package service

import (
	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// ScoreMapper maps a digest to a score record: the first eight hex characters
// of the digest, taken as an integer modulo 100, give the score in hundredths.
type ScoreMapper struct{}

// NewScoreMapper creates a new ScoreMapper.
func NewScoreMapper() *ScoreMapper {
	return &ScoreMapper{}
}

// Score computes the record for a digest. It is a pure function.
func (m *ScoreMapper) Score(digest valueobject.Digest) model.ScoreRecord {
	hundredths := int(digest.Prefix() % 100)

	// Always in range, so the error can be ignored.
	score, _ := valueobject.RiskScoreFromHundredths(hundredths)

	return model.NewScoreRecord(digest, score)
}
