package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindNumber is a floating-point parameter.
	KindNumber ValueKind = iota

	// KindText is a free-form string parameter.
	KindText
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a step parameter: either a number or text.
type Value struct {
	kind ValueKind
	num  float64
	text string
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a textual Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// ParseValue returns a Number when s lexically represents a float, else Text.
// Surrounding whitespace is ignored for the numeric check.
func ParseValue(s string) Value {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Number(f)
	}
	return Text(s)
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Float returns the numeric value and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String formats the value the way it would appear in a step string.
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.text
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
