package payload

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const hexDigits = "0123456789abcdef"

// Canonicalize returns the canonical form of v: object keys sorted at every
// level, no insignificant whitespace, non-ASCII text written literally.
// Values with equal content always produce identical bytes.
func Canonicalize(v Value) string {
	return string(AppendCanonical(nil, v))
}

// AppendCanonical appends the canonical form of v to dst.
func AppendCanonical(dst []byte, v Value) []byte {
	return appendValue(dst, v, true)
}

// MarshalJSON renders v compactly with object members in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValue(nil, v, false), nil
}

// String returns the compact insertion-ordered JSON text of v.
func (v Value) String() string {
	return string(appendValue(nil, v, false))
}

func appendValue(dst []byte, v Value, canonical bool) []byte {
	switch v.kind {
	case Bool:
		if v.boolean {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case Number:
		return appendNumber(dst, v.text, canonical)
	case String:
		return appendString(dst, v.text)
	case Array:
		dst = append(dst, '[')
		for i, item := range v.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, item, canonical)
		}
		return append(dst, ']')
	case Object:
		members := v.members
		if canonical && !sort.SliceIsSorted(members, func(i, j int) bool { return members[i].Key < members[j].Key }) {
			members = append([]Member(nil), members...)
			sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		}
		dst = append(dst, '{')
		for i, m := range members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			dst = appendValue(dst, m.Value, canonical)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// appendString quotes s escaping only the quote, the backslash and control
// characters below U+0020.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}

// appendNumber writes integers as their digits and floats in shortest
// round-trip form. Float literals that overflow float64 become Infinity in
// canonical output and keep their literal otherwise.
func appendNumber(dst []byte, lit string, canonical bool) []byte {
	if isIntegerLiteral(lit) {
		if isZeroInteger(lit) {
			return append(dst, '0')
		}
		return append(dst, lit...)
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && math.IsInf(f, 0) {
		if !canonical {
			return append(dst, lit...)
		}
		if f < 0 {
			return append(dst, "-Infinity"...)
		}
		return append(dst, "Infinity"...)
	}
	return append(dst, formatFloat(f)...)
}

// formatFloat renders f with the fewest digits that round-trip. Fixed
// notation is used while the decimal exponent lies in (-4, 16]; integral
// values get a trailing ".0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)

	var b strings.Builder
	if s[0] == '-' {
		b.WriteByte('-')
		s = s[1:]
	}

	mantissa, exponent, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(exponent)
	digits := strings.Replace(mantissa, ".", "", 1)
	point := exp + 1

	switch {
	case point <= -4 || point > 16:
		b.WriteByte(digits[0])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if exp < 0 {
			b.WriteByte('-')
			exp = -exp
		} else {
			b.WriteByte('+')
		}
		if exp < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(exp))
	case point <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -point))
		b.WriteString(digits)
	case point >= len(digits):
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", point-len(digits)))
		b.WriteString(".0")
	default:
		b.WriteString(digits[:point])
		b.WriteByte('.')
		b.WriteString(digits[point:])
	}
	return b.String()
}
