package core

import "strconv"

// Kind is the declared scalar kind of a column.
type Kind int

const (
	KindInt Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a closed variant holding either an integer or a text scalar.
// The zero Value is the integer 0.
type Value struct {
	kind Kind
	i    int64
	s    string
}

// IntValue wraps an integer.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// TextValue wraps a string.
func TextValue(v string) Value { return Value{kind: KindText, s: v} }

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload and whether v holds one.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Text returns the string payload and whether v holds one.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// String returns the raw textual form of the payload, unquoted.
func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	return v.s
}

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindInt {
		return v.i == o.i
	}
	return v.s == o.s
}
