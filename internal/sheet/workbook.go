package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook holds the sheets of one file as Tables.
type Workbook struct {
	Path   string
	tables map[string]*Table
	order  []string
}

// NewWorkbook assembles a workbook from tables already in memory.
func NewWorkbook(tables ...*Table) *Workbook {
	wb := &Workbook{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, dup := wb.tables[t.Name()]; !dup {
			wb.order = append(wb.order, t.Name())
		}
		wb.tables[t.Name()] = t
	}
	return wb
}

// OpenWorkbook reads the named sheets (all sheets when none are given) from
// an xlsx file. Raw cell values are used so numbers are not reformatted.
func OpenWorkbook(path string, sheets ...string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb, err := readWorkbook(f, sheets)
	if err != nil {
		return nil, fmt.Errorf("workbook %s: %w", path, err)
	}
	wb.Path = path
	return wb, nil
}

// ReadWorkbook is OpenWorkbook for an in-memory stream.
func ReadWorkbook(r io.Reader, sheets ...string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, sheets)
}

func readWorkbook(f *excelize.File, sheets []string) (*Workbook, error) {
	available := f.GetSheetList()
	if len(available) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if len(sheets) == 0 {
		sheets = available
	}

	known := make(map[string]bool, len(available))
	for _, name := range available {
		known[name] = true
	}

	wb := &Workbook{tables: make(map[string]*Table, len(sheets))}
	for _, name := range sheets {
		if !known[name] {
			return nil, fmt.Errorf("sheet %q not found (have %v)", name, available)
		}
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read rows from sheet %s: %w", name, err)
		}
		wb.tables[name] = NewTable(name, rows)
		wb.order = append(wb.order, name)
	}

	return wb, nil
}

// Sheet returns a loaded sheet by name.
func (w *Workbook) Sheet(name string) (*Table, error) {
	t, ok := w.tables[name]
	if !ok {
		return nil, fmt.Errorf("sheet %q not loaded", name)
	}
	return t, nil
}

// SheetNames lists loaded sheets in load order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.order...)
}
