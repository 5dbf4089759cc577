package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrInvalidAddress is returned when a reference is not of the form
	// letters followed by an optional row number.
	ErrInvalidAddress = errors.New("sheet: invalid address")
)

// Address is a spreadsheet reference such as "G8". Column and Row are
// 1-based; Row is 0 for a column-only reference such as "Z".
type Address struct {
	Column int
	Row    int
}

// ParseAddress parses "A8", "$T$8", "aa12" or a bare column like "Z".
func ParseAddress(ref string) (Address, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))

	split := 0
	for split < len(s) && s[split] >= 'A' && s[split] <= 'Z' {
		split++
	}
	letters, digits := s[:split], s[split:]
	if letters == "" {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, ref)
	}

	col, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, ref, err)
	}

	if digits == "" {
		return Address{Column: col}, nil
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, ref)
	}

	return Address{Column: col, Row: row}, nil
}

// MustParseAddress is ParseAddress for literals known to be valid.
func MustParseAddress(ref string) Address {
	a, err := ParseAddress(ref)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseColumn returns the 1-based column number of a column name.
func ParseColumn(name string) (int, error) {
	a, err := ParseAddress(name)
	if err != nil {
		return 0, err
	}
	return a.Column, nil
}

// HasRow reports whether the address names a cell rather than a column.
func (a Address) HasRow() bool {
	return a.Row > 0
}

// Offset moves the address down by rowGap rows. Column-only addresses are
// returned unchanged.
func (a Address) Offset(rowGap int) Address {
	if !a.HasRow() {
		return a
	}
	a.Row += rowGap
	return a
}

// Shift moves the address right by n columns.
func (a Address) Shift(n int) Address {
	a.Column += n
	return a
}

// Index returns 0-based matrix coordinates.
func (a Address) Index() (row, col int) {
	return a.Row - 1, a.Column - 1
}

// ColumnName returns the letters of the address, e.g. "AA".
func (a Address) ColumnName() string {
	name, err := excelize.ColumnNumberToName(a.Column)
	if err != nil {
		return ""
	}
	return name
}

func (a Address) String() string {
	if !a.HasRow() {
		return a.ColumnName()
	}
	return a.ColumnName() + strconv.Itoa(a.Row)
}

// OffsetAddress adds rowGap to the row part of ref, keeping its column. A
// reference without a row number, or one that cannot be parsed, comes back
// unchanged.
func OffsetAddress(ref string, rowGap int) string {
	a, err := ParseAddress(ref)
	if err != nil || !a.HasRow() {
		return ref
	}
	return a.Offset(rowGap).String()
}
