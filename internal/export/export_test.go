package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() [][]any {
	return [][]any{
		{"P1", ""},
		{"Date", "Product Code", "Order Quantity"},
		{"2026-10-18", "1001", 40},
		{},
		{"P2", ""},
		{"Date", "Product Code", "Order Quantity"},
		{},
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "suggested_orders.xlsx")
	require.NoError(t, WriteXLSX(path, "", sampleRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6, "trailing blank rows are not stored")
	assert.Equal(t, "P1", rows[0][0])
	assert.Equal(t, []string{"Date", "Product Code", "Order Quantity"}, rows[1])
	assert.Equal(t, []string{"2026-10-18", "1001", "40"}, rows[2])
	assert.Empty(t, rows[3])
	assert.Equal(t, "P2", rows[4][0])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggested_orders.csv")
	require.NoError(t, WriteCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"P1,\nDate,Product Code,Order Quantity\n2026-10-18,1001,40\n\nP2,\nDate,Product Code,Order Quantity\n\n",
		string(data))
}
