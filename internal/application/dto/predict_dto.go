package dto

import (
	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/payload"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

// PredictRequest is the input DTO for the Predict use case.
type PredictRequest struct {
	Payload   payload.Value
	RequestID string
}

// PredictResponse is the body returned by POST /predict. Field order is the
// order of the keys on the wire.
type PredictResponse struct {
	RiskScore     valueobject.RiskScore  `json:"risk_score"`
	Suggestion    valueobject.Suggestion `json:"suggestion"`
	InputReceived payload.Value          `json:"input_received"`

	Digest valueobject.Digest `json:"-"`
	Cached bool               `json:"-"`
}

// FromRecord maps a score record and the echoed payload to the response DTO.
func FromRecord(record model.ScoreRecord, input payload.Value, cached bool) PredictResponse {
	return PredictResponse{
		RiskScore:     record.Score(),
		Suggestion:    record.Suggestion(),
		InputReceived: input,
		Digest:        record.Digest(),
		Cached:        cached,
	}
}

// NewPredictRequest builds a request for a decoded payload. Falsy payloads
// (null, false, 0, "", [] and {}) are replaced by the empty object.
func NewPredictRequest(value payload.Value, requestID string) PredictRequest {
	if !value.Truthy() {
		value = payload.EmptyObject()
	}
	return PredictRequest{Payload: value, RequestID: requestID}
}
