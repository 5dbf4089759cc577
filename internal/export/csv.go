package export

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes rows as CSV. Cells are formatted with %v; empty rows are
// kept as blank lines.
func WriteCSV(path string, rows [][]any) error {
	return atomicWrite(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		for _, row := range rows {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = fmt.Sprintf("%v", cell)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}
