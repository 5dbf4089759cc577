package sheet

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Table is a rectangular, header-less sheet. Row 1 of the workbook is index
// 0. Short rows are padded with blanks up to the widest row.
type Table struct {
	name  string
	rows  [][]Value
	width int
}

// NewTable parses raw cell text into a Table.
func NewTable(name string, raw [][]string) *Table {
	rows := make([][]Value, len(raw))
	for i, r := range raw {
		rows[i] = make([]Value, len(r))
		for j, cell := range r {
			rows[i][j] = ParseValue(cell)
		}
	}
	return NewTableFromValues(name, rows)
}

// NewTableFromValues wraps already classified cells.
func NewTableFromValues(name string, rows [][]Value) *Table {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return &Table{name: name, rows: rows, width: width}
}

func (t *Table) Name() string { return t.name }

// Dims returns the number of rows and columns.
func (t *Table) Dims() (rows, cols int) {
	return len(t.rows), t.width
}

// At returns the cell at 0-based coordinates. ok is false outside the table.
func (t *Table) At(row, col int) (v Value, ok bool) {
	if row < 0 || col < 0 || row >= len(t.rows) || col >= t.width {
		return Blank(), false
	}
	r := t.rows[row]
	if col >= len(r) {
		return Blank(), true
	}
	return r[col], true
}

// Cell resolves an address. Column-only addresses and addresses outside the
// table yield ok == false.
func (t *Table) Cell(a Address) (Value, bool) {
	if !a.HasRow() {
		return Blank(), false
	}
	return t.At(a.Index())
}

// CellValue resolves a textual reference such as "T8". Invalid and
// out-of-range references are logged and reported as a blank, not found.
func (t *Table) CellValue(ref string) (Value, bool) {
	a, err := ParseAddress(ref)
	if err != nil || !a.HasRow() {
		log.Warn().Str("sheet", t.name).Str("ref", ref).Msg("invalid cell reference")
		return Blank(), false
	}
	v, ok := t.Cell(a)
	if !ok {
		log.Warn().Str("sheet", t.name).Str("ref", ref).Msg("cell reference out of range")
	}
	return v, ok
}

// Column returns the cells of a 1-based column starting at 0-based row from.
func (t *Table) Column(col, from int) []Value {
	if from < 0 {
		from = 0
	}
	var out []Value
	for i := from; i < len(t.rows); i++ {
		v, _ := t.At(i, col-1)
		out = append(out, v)
	}
	return out
}

// Find emulates VLOOKUP over two parallel columns.
//
// In exact mode the result column of the first row whose key equals key is
// returned. Otherwise key must be numeric and the row with the smallest
// absolute difference wins; non-numeric rows are skipped and ties keep the
// first row encountered.
func (t *Table) Find(key Value, keyCol, resultCol string, exact bool) (Value, bool) {
	kc, err := ParseColumn(keyCol)
	if err != nil {
		log.Warn().Err(err).Str("sheet", t.name).Msg("lookup: bad key column")
		return Blank(), false
	}
	rc, err := ParseColumn(resultCol)
	if err != nil {
		log.Warn().Err(err).Str("sheet", t.name).Msg("lookup: bad result column")
		return Blank(), false
	}

	keys := t.Column(kc, 0)
	results := t.Column(rc, 0)

	if exact {
		for i, v := range keys {
			if v.Equal(key) {
				return results[i], true
			}
		}
		return Blank(), false
	}

	target, ok := key.Float()
	if !ok {
		return Blank(), false
	}

	best := -1
	minDiff := math.Inf(1)
	for i, v := range keys {
		f, ok := v.Float()
		if !ok {
			continue
		}
		if diff := math.Abs(f - target); diff < minDiff {
			minDiff = diff
			best = i
		}
	}
	if best < 0 {
		return Blank(), false
	}
	return results[best], true
}
