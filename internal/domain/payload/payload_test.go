package payload_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherdrive/prediction-service/internal/domain/payload"
)

func mustParse(t *testing.T, raw string) payload.Value {
	t.Helper()
	v, err := payload.Parse([]byte(raw))
	require.NoError(t, err, "parse %s", raw)
	return v
}

func TestCanonicalize_Vectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty object", input: "{}", want: "{}"},
		{name: "keys sorted", input: "{\"b\":1,\"a\":2}", want: "{\"a\":2,\"b\":1}"},
		{
			name:  "non-ascii kept literally",
			input: "{\"navn\":\"Ærlig Øystein\",\"hours\":37.5,\"employee_id\":42}",
			want:  "{\"employee_id\":42,\"hours\":37.5,\"navn\":\"Ærlig Øystein\"}",
		},
		{
			name:  "nested values and number forms",
			input: "{\"z\":{\"y\":[3,{\"b\":true,\"a\":null}],\"x\":\"<&>\"},\"a\":1e16,\"c\":0.00001,\"d\":1E-4,\"e\":-0.0,\"f\":123456789012345678901234567890,\"g\":\"tab\\there\\u007f\\u0001 \\\"q\\\" \\\\\",\"h\":-0,\"i\":1.50}",
			want:  "{\"a\":1e+16,\"c\":1e-05,\"d\":0.0001,\"e\":-0.0,\"f\":123456789012345678901234567890,\"g\":\"tab\\there\u007f\\u0001 \\\"q\\\" \\\\\",\"h\":0,\"i\":1.5,\"z\":{\"x\":\"<&>\",\"y\":[3,{\"a\":null,\"b\":true}]}}",
		},
		{name: "top-level array", input: "[1,2]", want: "[1,2]"},
		{name: "duplicate keys keep last value", input: "{\"a\":1,\"b\":2,\"a\":3}", want: "{\"a\":3,\"b\":2}"},
		{
			name:  "overflowing float",
			input: "{\"department\":\"lønn\",\"amount\":1e400}",
			want:  "{\"amount\":Infinity,\"department\":\"lønn\"}",
		},
		{name: "whitespace dropped", input: " { \"a\" : [ 1 , 2 ] } \n", want: "{\"a\":[1,2]}"},
		{name: "scalar", input: "\"x\"", want: "\"x\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payload.Canonicalize(mustParse(t, tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalize_KeyOrderIndependent(t *testing.T) {
	a := mustParse(t, `{"outer":{"k2":[{"y":1,"x":2}],"k1":"v"},"first":true}`)
	b := mustParse(t, `{"first":true,"outer":{"k1":"v","k2":[{"x":2,"y":1}]}}`)

	assert.Equal(t, payload.Canonicalize(a), payload.Canonicalize(b))
	assert.True(t, a.Equal(b))
}

func TestCanonicalize_ArrayOrderMatters(t *testing.T) {
	a := mustParse(t, `[1,2]`)
	b := mustParse(t, `[2,1]`)

	assert.NotEqual(t, payload.Canonicalize(a), payload.Canonicalize(b))
}

func TestCanonicalize_Stable(t *testing.T) {
	v := mustParse(t, `{"c":[1.25,{"b":null}],"a":"å"}`)
	first := payload.Canonicalize(v)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, payload.Canonicalize(v))
	}
}

func TestCanonicalize_DoesNotReorderSource(t *testing.T) {
	v := mustParse(t, `{"b":1,"a":2}`)
	_ = payload.Canonicalize(v)

	assert.Equal(t, `{"b":1,"a":2}`, v.String())
}

func TestCanonicalize_FloatForms(t *testing.T) {
	tests := []struct {
		literal string
		want    string
	}{
		{"1e15", "1000000000000000.0"},
		{"1e16", "1e+16"},
		{"1.5e300", "1.5e+300"},
		{"0.1", "0.1"},
		{"100.0", "100.0"},
		{"1e22", "1e+22"},
		{"5e-324", "5e-324"},
		{"2.5e-5", "2.5e-05"},
		{"123.456", "123.456"},
		{"-1.0", "-1.0"},
		{"0.0", "0.0"},
		{"-1e400", "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			assert.Equal(t, tt.want, payload.Canonicalize(mustParse(t, tt.literal)))
		})
	}
}

func TestCanonicalize_ControlCharacters(t *testing.T) {
	v := payload.StringValue("a\x00b\x1fc\nd\re\bf\fg")
	assert.Equal(t, `"a\u0000b\u001fc\nd\re\bf\fg"`, payload.Canonicalize(v))
}

func TestCanonicalize_LineSeparatorsLiteral(t *testing.T) {
	v := payload.StringValue("a\u2028b\u2029c")
	assert.Equal(t, "\"a\u2028b\u2029c\"", payload.Canonicalize(v))
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"garbage":        "not json",
		"truncated":      `{"a":`,
		"trailing data":  `{} {}`,
		"single quotes":  `{'a':1}`,
		"NaN literal":    `{"a":NaN}`,
		"invalid utf8":   "{\"a\":\"\xff\"}",
		"trailing comma": `{"a":1,}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := payload.Parse([]byte(raw))
			assert.ErrorIs(t, err, payload.ErrInvalidJSON)
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	deep := make([]byte, 0, 2*(payload.MaxDepth+1))
	for i := 0; i <= payload.MaxDepth; i++ {
		deep = append(deep, '[')
	}
	for i := 0; i <= payload.MaxDepth; i++ {
		deep = append(deep, ']')
	}

	_, err := payload.Parse(deep)
	assert.ErrorIs(t, err, payload.ErrInvalidJSON)

	_, err = payload.Parse(deep[1 : len(deep)-1])
	assert.NoError(t, err)
}

func TestParse_PreservesInsertionOrder(t *testing.T) {
	v := mustParse(t, `{"z":1,"a":{"y":true,"b":[null,"s"]},"m":2.50}`)

	require.Equal(t, payload.Object, v.Kind())
	members := v.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "z", members[0].Key)
	assert.Equal(t, "a", members[1].Key)
	assert.Equal(t, "m", members[2].Key)

	assert.Equal(t, `{"z":1,"a":{"y":true,"b":[null,"s"]},"m":2.5}`, v.String())
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":2,"a":3}`)

	assert.Equal(t, `{"a":3,"b":2}`, v.String())
	got, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", got.Literal())
}

func TestParse_LargeIntegerPreserved(t *testing.T) {
	v := mustParse(t, `{"id":123456789012345678901234567890}`)

	id, ok := v.Get("id")
	require.True(t, ok)
	assert.True(t, id.IsInteger())
	assert.Equal(t, "123456789012345678901234567890", id.Literal())
	assert.Equal(t, `{"id":123456789012345678901234567890}`, v.String())
}

func TestMarshalJSON_KeepsOverflowLiteral(t *testing.T) {
	v := mustParse(t, `{"amount":1e400}`)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"amount":1e400}`, string(out))
	assert.True(t, json.Valid(out))
}

func TestUnmarshalJSON(t *testing.T) {
	var dst struct {
		Input payload.Value `json:"input"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"input":{"b":1,"a":[true]}}`), &dst))

	assert.Equal(t, `{"b":1,"a":[true]}`, dst.Input.String())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"null", false},
		{"false", false},
		{"true", true},
		{"0", false},
		{"-0", false},
		{"0.0", false},
		{"0e10", false},
		{"1", true},
		{"0.5", true},
		{`""`, false},
		{`"x"`, true},
		{"[]", false},
		{"[0]", true},
		{"{}", false},
		{`{"a":null}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(t, tt.raw).Truthy())
		})
	}
}

func TestConstructors(t *testing.T) {
	v := payload.ObjectValue(
		payload.Member{Key: "name", Value: payload.StringValue("Kari")},
		payload.Member{Key: "age", Value: payload.IntValue(41)},
		payload.Member{Key: "rate", Value: payload.FloatValue(100)},
		payload.Member{Key: "tags", Value: payload.ArrayValue(payload.BoolValue(true), payload.NullValue())},
	)

	assert.Equal(t, `{"name":"Kari","age":41,"rate":100.0,"tags":[true,null]}`, v.String())
	assert.Equal(t, `{"age":41,"name":"Kari","rate":100.0,"tags":[true,null]}`, payload.Canonicalize(v))
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, "{}", payload.EmptyObject().String())
	assert.Equal(t, "object", v.Kind().String())
}
