package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertPrediction checks a /predict response body against a vector. The
// echoed input is compared as JSON, so whitespace in Body does not matter.
func AssertPrediction(t *testing.T, v Vector, body []byte) {
	t.Helper()

	var resp struct {
		RiskScore     json.Number     `json:"risk_score"`
		Suggestion    string          `json:"suggestion"`
		InputReceived json.RawMessage `json:"input_received"`
	}
	require.NoError(t, json.Unmarshal(body, &resp), "body: %s", body)

	want, err := json.Marshal(json.RawMessage(v.Body))
	require.NoError(t, err)

	assert.Equal(t, v.Score, normalizeScore(resp.RiskScore.String()), "risk_score")
	assert.Equal(t, v.Suggestion, resp.Suggestion, "suggestion")
	assert.JSONEq(t, string(want), string(resp.InputReceived), "input_received")
}

// normalizeScore pads a rendered score such as 0.5 or 0.0 to two places.
func normalizeScore(s string) string {
	for len(s) < 4 {
		s += "0"
	}
	return s
}
