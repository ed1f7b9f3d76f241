// Package payload models an arbitrary JSON document as a tagged variant and
// renders it either canonically (for hashing) or in arrival order (for
// echoing it back to the caller).
package payload

import (
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
//
// Numbers keep their source literal so integers of any size survive the
// round trip; objects keep their members in insertion order.
type Value struct {
	kind    Kind
	boolean bool
	text    string
	items   []Value
	members []Member
}

// NullValue returns the JSON null.
func NullValue() Value {
	return Value{kind: Null}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{kind: Bool, boolean: b}
}

// IntValue wraps an integer.
func IntValue(n int64) Value {
	return Value{kind: Number, text: strconv.FormatInt(n, 10)}
}

// FloatValue wraps a float. Non-finite values are stored as null since they
// have no JSON literal.
func FloatValue(f float64) Value {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return NullValue()
	}
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if isIntegerLiteral(lit) {
		lit += ".0"
	}
	return Value{kind: Number, text: lit}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: String, text: s}
}

// ArrayValue builds an array from the given items.
func ArrayValue(items ...Value) Value {
	return Value{kind: Array, items: append([]Value(nil), items...)}
}

// ObjectValue builds an object from members in the given order. A repeated
// key replaces the earlier value but keeps the earlier position.
func ObjectValue(members ...Member) Value {
	b := newObjectBuilder(len(members))
	for _, m := range members {
		b.set(m.Key, m.Value)
	}
	return b.value()
}

// EmptyObject returns {}.
func EmptyObject() Value {
	return Value{kind: Object}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the JSON null.
func (v Value) IsNull() bool {
	return v.kind == Null
}

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool {
	return v.boolean
}

// Literal returns the source literal of a number, or "" for other kinds.
func (v Value) Literal() string {
	if v.kind != Number {
		return ""
	}
	return v.text
}

// IsInteger reports whether v is a number written without fraction or exponent.
func (v Value) IsInteger() bool {
	return v.kind == Number && isIntegerLiteral(v.text)
}

// Str returns the string held by v, or "" for other kinds.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.text
}

// Len returns the number of items of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns a copy of the items of an array.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Members returns a copy of the members of an object in insertion order.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return append([]Member(nil), v.members...)
}

// Get looks up a member of an object by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Truthy reports whether v counts as present when a request body is read:
// null, false, zero, "", [] and {} do not.
func (v Value) Truthy() bool {
	switch v.kind {
	case Null:
		return false
	case Bool:
		return v.boolean
	case Number:
		if isIntegerLiteral(v.text) {
			return !isZeroInteger(v.text)
		}
		f, err := strconv.ParseFloat(v.text, 64)
		return err != nil || f != 0
	case String:
		return v.text != ""
	default:
		return v.Len() > 0
	}
}

// Equal reports whether two values have the same content. Object member
// order is ignored, array order is not. Numbers compare by canonical form.
func (v Value) Equal(other Value) bool {
	return Canonicalize(v) == Canonicalize(other)
}

type objectBuilder struct {
	members []Member
	index   map[string]int
}

func newObjectBuilder(capacity int) *objectBuilder {
	return &objectBuilder{
		members: make([]Member, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

func (b *objectBuilder) set(key string, v Value) {
	if i, ok := b.index[key]; ok {
		b.members[i].Value = v
		return
	}
	b.index[key] = len(b.members)
	b.members = append(b.members, Member{Key: key, Value: v})
}

func (b *objectBuilder) value() Value {
	return Value{kind: Object, members: b.members}
}

func isIntegerLiteral(lit string) bool {
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return lit != ""
}

func isZeroInteger(lit string) bool {
	return lit == "0" || lit == "-0"
}
