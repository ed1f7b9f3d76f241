package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskScore is a pseudo-random score in [0.00, 0.99] with two decimal places.
type RiskScore struct {
	value decimal.Decimal
}

var (
	// MinRiskScore is the lowest score a digest can map to.
	MinRiskScore = RiskScore{value: decimal.New(0, -2)}
	// MaxRiskScore is the highest score a digest can map to.
	MaxRiskScore = RiskScore{value: decimal.New(99, -2)}
)

// RiskScoreFromHundredths builds a score from an integer number of hundredths (0-99).
func RiskScoreFromHundredths(n int) (RiskScore, error) {
	if n < 0 || n > 99 {
		return RiskScore{}, fmt.Errorf("risk score out of range: %d hundredths", n)
	}
	return RiskScore{value: decimal.New(int64(n), -2)}, nil
}

// RiskScoreFromString parses a score such as "0.35".
func RiskScoreFromString(s string) (RiskScore, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return RiskScore{}, fmt.Errorf("invalid risk score %q: %w", s, err)
	}
	if d.LessThan(MinRiskScore.value) || d.GreaterThan(MaxRiskScore.value) {
		return RiskScore{}, fmt.Errorf("risk score out of range: %s", s)
	}
	if !d.Equal(d.Round(2)) {
		return RiskScore{}, fmt.Errorf("risk score has more than two decimals: %s", s)
	}
	return RiskScore{value: d.Round(2)}, nil
}

// Decimal returns the exact decimal value.
func (r RiskScore) Decimal() decimal.Decimal {
	return r.value
}

// Float64 returns the score as a float.
func (r RiskScore) Float64() float64 {
	return r.value.InexactFloat64()
}

// Hundredths returns the score as an integer number of hundredths.
func (r RiskScore) Hundredths() int {
	return int(r.value.Shift(2).IntPart())
}

// LessThan reports whether r is strictly below other.
func (r RiskScore) LessThan(other RiskScore) bool {
	return r.value.LessThan(other.value)
}

// Equal checks equality with another RiskScore.
func (r RiskScore) Equal(other RiskScore) bool {
	return r.value.Equal(other.value)
}

// String returns the score with exactly two decimals, e.g. "0.50".
func (r RiskScore) String() string {
	return r.value.StringFixed(2)
}

// MarshalJSON writes the score as a JSON number in shortest form with at
// least one decimal ("0.5", "0.0", "0.35").
func (r RiskScore) MarshalJSON() ([]byte, error) {
	s := r.value.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RiskScore) UnmarshalJSON(data []byte) error {
	parsed, err := RiskScoreFromString(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
