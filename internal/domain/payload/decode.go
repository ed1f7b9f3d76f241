package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxDepth bounds the nesting of arrays and objects accepted by Parse.
const MaxDepth = 1000

// ErrInvalidJSON is returned by Parse for input that is not a single,
// well-formed UTF-8 JSON document.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Parse decodes exactly one JSON document. Surrounding whitespace is allowed,
// trailing data is not.
func Parse(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return Value{}, fmt.Errorf("%w: not valid UTF-8", ErrInvalidJSON)
	}
	if !json.Valid(data) {
		return Value{}, ErrInvalidJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return Value{kind: Number, text: t.String()}, nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		if depth >= MaxDepth {
			return Value{}, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidJSON, MaxDepth)
		}
		switch t {
		case '[':
			return decodeArray(dec, depth+1)
		case '{':
			return decodeObject(dec, depth+1)
		}
	}
	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	var items []Value
	for dec.More() {
		item, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return Value{}, err
	}
	return Value{kind: Array, items: items}, nil
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	b := newObjectBuilder(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key %v is not a string", ErrInvalidJSON, tok)
		}
		member, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		b.set(key, member)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Value{}, err
	}
	return b.value(), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrInvalidJSON, want, tok)
	}
	return nil
}
