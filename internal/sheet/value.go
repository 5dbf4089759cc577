package sheet

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a cell.
type Kind int

const (
	KindBlank Kind = iota
	KindNumber
	KindText
)

// Value is a single cell. Numbers keep their parsed float alongside the raw
// text so product codes can be printed the way they were stored.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Blank returns the empty cell.
func Blank() Value { return Value{} }

// Number wraps a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Text wraps a non-numeric cell.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// ParseValue classifies raw cell text. NaN and Inf spellings stay text.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Blank()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Text(s)
	}
	return Value{kind: KindNumber, num: f, text: s}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsBlank() bool { return v.kind == KindBlank }

func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric content and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// FloatOr returns the numeric content or fallback.
func (v Value) FloatOr(fallback float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return fallback
}

// Coerce converts numeric-looking text (thousands separators allowed) and
// falls back to 1 for blank or unreadable cells.
func (v Value) Coerce() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		cleaned := strings.TrimSpace(strings.ReplaceAll(v.text, ",", ""))
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return 1
}

// Equal compares numbers numerically and text exactly. Numbers never equal
// text and blanks never equal anything.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.kind == KindBlank {
		return false
	}
	if v.kind == KindNumber {
		return v.num == other.num
	}
	return v.text == other.text
}

func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}
