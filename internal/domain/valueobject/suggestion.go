package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Suggestion is an immutable value object for the follow-up advice attached
// to a score. The literals are part of the public API and must not change.
type Suggestion struct {
	value string
}

var (
	SuggestionNoAction = Suggestion{value: "Ingen tiltak nødvendig"}
	SuggestionFollowUp = Suggestion{value: "Vurder oppfølging"}
)

// FollowUpThreshold is the lowest score that asks for follow-up.
var FollowUpThreshold = RiskScore{value: decimal.New(40, -2)}

// SuggestionFromScore derives the suggestion for a score.
func SuggestionFromScore(score RiskScore) Suggestion {
	if score.LessThan(FollowUpThreshold) {
		return SuggestionNoAction
	}
	return SuggestionFollowUp
}

// SuggestionFromString reconstructs a Suggestion from its literal.
func SuggestionFromString(s string) (Suggestion, error) {
	switch s {
	case SuggestionNoAction.value:
		return SuggestionNoAction, nil
	case SuggestionFollowUp.value:
		return SuggestionFollowUp, nil
	default:
		return Suggestion{}, fmt.Errorf("invalid suggestion: %s", s)
	}
}

// String returns the literal.
func (s Suggestion) String() string {
	return s.value
}

// NeedsFollowUp reports whether the suggestion asks for follow-up.
func (s Suggestion) NeedsFollowUp() bool {
	return s == SuggestionFollowUp
}

// IsZero returns true if the Suggestion has not been set.
func (s Suggestion) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Suggestion.
func (s Suggestion) Equal(other Suggestion) bool {
	return s.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (s Suggestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := SuggestionFromString(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
