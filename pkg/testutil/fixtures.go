package testutil

import (
	"github.com/google/uuid"
)

// Fixed request id for deterministic testing.
var TestRequestID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Vector is a payload with its known canonical form, digest and response.
type Vector struct {
	Name       string
	Body       string
	Canonical  string
	Digest     string
	Score      string
	Suggestion string
}

// Suggestions returned by the scorer.
const (
	NoAction = "Ingen tiltak nødvendig"
	FollowUp = "Vurder oppfølging"
)

// Known vectors, cross-checked against an independent implementation.
var (
	EmptyObject = Vector{
		Name:       "empty object",
		Body:       `{}`,
		Canonical:  `{}`,
		Digest:     "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a",
		Score:      "0.51",
		Suggestion: FollowUp,
	}
	UnsortedPair = Vector{
		Name:       "unsorted pair",
		Body:       `{"b":1,"a":2}`,
		Canonical:  `{"a":2,"b":1}`,
		Digest:     "d3626ac30a87e6f7a6428233b3c68299976865fa5508e4267c5415c76af7a772",
		Score:      "0.35",
		Suggestion: NoAction,
	}
	Payroll = Vector{
		Name:       "payroll",
		Body:       `{"navn":"Ærlig Øystein","hours":37.5,"employee_id":42}`,
		Canonical:  `{"employee_id":42,"hours":37.5,"navn":"Ærlig Øystein"}`,
		Digest:     "600811e182029ebf1e19219805fe872d97c89a774e9681f283471bf43b774773",
		Score:      "0.01",
		Suggestion: NoAction,
	}
	IntArray = Vector{
		Name:       "integer array",
		Body:       `[1, 2]`,
		Canonical:  `[1,2]`,
		Digest:     "49a64717d5d4cb19952e6eac2946415cf6879adacf9908e7d872332d32c6e684",
		Score:      "0.43",
		Suggestion: FollowUp,
	}
)

// Vectors lists every known vector.
func Vectors() []Vector {
	return []Vector{EmptyObject, UnsortedPair, Payroll, IntArray}
}
