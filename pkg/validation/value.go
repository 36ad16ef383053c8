package validation

import (
	"strings"
	"time"
)

// Kind identifies what a Value holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Value is the current content of a field: nothing, a string, or a date.
// The zero Value is empty.
type Value struct {
	kind Kind
	text string
	date time.Time
}

// Empty returns a value with no content.
func Empty() Value {
	return Value{}
}

// Text wraps a string value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Date wraps a selected date.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Kind reports what the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// String returns the text content. Dates are rendered as YYYY-MM-DD.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindDate:
		return v.date.Format(time.DateOnly)
	default:
		return ""
	}
}

// Time returns the date content and whether the value holds a date.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// IsEmpty reports whether the value is absent, blank text, or a zero date.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindText:
		return strings.TrimSpace(v.text) == ""
	case KindDate:
		return v.date.IsZero()
	default:
		return true
	}
}
