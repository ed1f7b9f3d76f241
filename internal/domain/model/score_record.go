package model

import (
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// ScoreRecord is the outcome of mapping a digest to a score. It is a pure
// function of the digest, so records for the same digest are interchangeable.
type ScoreRecord struct {
	digest     valueobject.Digest
	score      valueobject.RiskScore
	suggestion valueobject.Suggestion
}

// NewScoreRecord builds a record, deriving the suggestion from the score.
func NewScoreRecord(digest valueobject.Digest, score valueobject.RiskScore) ScoreRecord {
	return ScoreRecord{
		digest:     digest,
		score:      score,
		suggestion: valueobject.SuggestionFromScore(score),
	}
}

// Digest returns the digest the record was derived from.
func (r ScoreRecord) Digest() valueobject.Digest { return r.digest }

// Score returns the risk score.
func (r ScoreRecord) Score() valueobject.RiskScore { return r.score }

// Suggestion returns the suggestion for the score.
func (r ScoreRecord) Suggestion() valueobject.Suggestion { return r.suggestion }

// IsZero reports whether the record is unset.
func (r ScoreRecord) IsZero() bool { return r.digest.IsZero() }

// Equal compares two records field by field.
func (r ScoreRecord) Equal(other ScoreRecord) bool {
	return r.digest == other.digest &&
		r.score.Equal(other.score) &&
		r.suggestion.Equal(other.suggestion)
}
