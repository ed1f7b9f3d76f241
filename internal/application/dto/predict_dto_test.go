package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherdrive/prediction-service/internal/application/dto"
	"github.com/aetherdrive/prediction-service/internal/domain/model"
	"github.com/aetherdrive/prediction-service/internal/domain/payload"
	"github.com/aetherdrive/prediction-service/internal/domain/valueobject"
)

func TestPredictResponse_KeyOrder(t *testing.T) {
	score, err := valueobject.RiskScoreFromHundredths(35)
	require.NoError(t, err)
	record := model.NewScoreRecord(
		valueobject.MustDigest("d3626ac30a87e6f7a6428233b3c68299976865fa5508e4267c5415c76af7a772"),
		score,
	)
	input, err := payload.Parse([]byte(`{"b":1,"a":2}`))
	require.NoError(t, err)

	body, err := json.Marshal(dto.FromRecord(record, input, true))
	require.NoError(t, err)

	assert.Equal(t,
		`{"risk_score":0.35,"suggestion":"Ingen tiltak nødvendig","input_received":{"b":1,"a":2}}`,
		string(body),
	)
}

func TestFromRecord(t *testing.T) {
	score, err := valueobject.RiskScoreFromHundredths(51)
	require.NoError(t, err)
	digest := valueobject.MustDigest("44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a")

	resp := dto.FromRecord(model.NewScoreRecord(digest, score), payload.EmptyObject(), false)

	assert.Equal(t, "0.51", resp.RiskScore.String())
	assert.Equal(t, valueobject.SuggestionFollowUp, resp.Suggestion)
	assert.Equal(t, digest, resp.Digest)
	assert.False(t, resp.Cached)
	assert.Equal(t, "{}", resp.InputReceived.String())
}

func TestNewPredictRequest_FalsyBecomesEmptyObject(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`null`, `{}`},
		{`false`, `{}`},
		{`0`, `{}`},
		{`0.0`, `{}`},
		{`""`, `{}`},
		{`[]`, `{}`},
		{`{}`, `{}`},
		{`true`, `true`},
		{`1`, `1`},
		{`"x"`, `"x"`},
		{`[0]`, `[0]`},
		{`{"a":null}`, `{"a":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			v, err := payload.Parse([]byte(tt.body))
			require.NoError(t, err)

			req := dto.NewPredictRequest(v, "req-1")

			assert.Equal(t, tt.want, req.Payload.String())
			assert.Equal(t, "req-1", req.RequestID)
		})
	}
}
