package event

import (
	"time"

	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/pkg/events"
)

const (
	// EventTypePredictionScored is emitted after every scored /predict call.
	EventTypePredictionScored = "prediction.scored"
)

// PredictionScored is published when a payload has been scored. It carries
// the digest, never the payload itself.
type PredictionScored struct {
	events.BaseEvent
	Digest     string    `json:"digest"`
	RiskScore  string    `json:"risk_score"`
	Suggestion string    `json:"suggestion"`
	RequestID  string    `json:"request_id,omitempty"`
	Cached     bool      `json:"cached"`
	ScoredAt   time.Time `json:"scored_at"`
}

// NewPredictionScored builds the event for a record.
func NewPredictionScored(record model.ScoreRecord, requestID string, cached bool) PredictionScored {
	base := events.NewBaseEvent(EventTypePredictionScored, record.Digest().String())
	return PredictionScored{
		BaseEvent:  base,
		Digest:     record.Digest().String(),
		RiskScore:  record.Score().String(),
		Suggestion: record.Suggestion().String(),
		RequestID:  requestID,
		Cached:     cached,
		ScoredAt:   base.OccurredAt(),
	}
}
